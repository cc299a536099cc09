package sketch

import "strings"

// Selector decides which of the loaded sketches are reported on
type Selector struct {
	Ksize    int
	Molecule string
	Md5      string // keep sketches whose md5sum contains this substring
	Name     string // keep sketches whose name contains this substring
}

// Compatible returns true if the sketch has the ksize and molecule type asked for
//
// Amino-acid sketches store their ksize in nucleotides, so for them a ksize of k matches 3k on disk.
func (Selector *Selector) Compatible(sketch *Sketch) bool {
	if Selector.Molecule != "" && NormaliseMolecule(sketch.Molecule) != NormaliseMolecule(Selector.Molecule) {
		return false
	}
	if Selector.Ksize == 0 {
		return true
	}
	if IsProtein(sketch.Molecule) {
		return sketch.Ksize == 3*Selector.Ksize
	}
	return sketch.Ksize == Selector.Ksize
}

// Picked returns true if the sketch passes the md5 and name substring filters
func (Selector *Selector) Picked(sketch *Sketch) bool {
	if Selector.Md5 != "" && !strings.Contains(sketch.Md5sum(), Selector.Md5) {
		return false
	}
	if Selector.Name != "" && !strings.Contains(sketch.Name, Selector.Name) {
		return false
	}
	return true
}

// Match returns true if the sketch is compatible and picked
func (Selector *Selector) Match(sketch *Sketch) bool {
	return Selector.Compatible(sketch) && Selector.Picked(sketch)
}

// Filter is a method to split a set of sketches using the Selector
//
// It returns the number of compatible sketches, along with those that were also picked.
func (Selector *Selector) Filter(sketches []*Sketch) (int, []*Sketch) {
	compatible := 0
	picked := []*Sketch{}
	for _, sketch := range sketches {
		if !Selector.Compatible(sketch) {
			continue
		}
		compatible++
		if Selector.Picked(sketch) {
			picked = append(picked, sketch)
		}
	}
	return compatible, picked
}
