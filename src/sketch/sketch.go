// Package sketch contains the signature model used by abundhist, along with the methods needed to load abundance-weighted sketches from disk and select the ones to report on.
package sketch

import (
	"crypto/md5"
	"encoding/hex"
	"sort"
	"strconv"
	"strings"
)

// the molecule types a sketch can be built from
const (
	DNA     = "DNA"
	PROTEIN = "protein"
	DAYHOFF = "dayhoff"
	HP      = "hp"
)

// Signature is a single record in a signature file, which can hold several sketches of the same sequence(s)
type Signature struct {
	Class        string    `json:"class"`
	Email        string    `json:"email"`
	HashFunction string    `json:"hash_function"`
	Filename     string    `json:"filename"`
	Name         string    `json:"name,omitempty"`
	License      string    `json:"license"`
	Version      float64   `json:"version"`
	Sketches     []MinHash `json:"signatures"`
}

// MinHash is the on-disk form of a single sketch
type MinHash struct {
	Num        int      `json:"num"`
	Ksize      int      `json:"ksize"`
	Seed       uint64   `json:"seed"`
	MaxHash    uint64   `json:"max_hash"`
	Mins       []uint64 `json:"mins"`
	Abundances []uint64 `json:"abundances,omitempty"`
	Molecule   string   `json:"molecule"`
	Md5sum     string   `json:"md5sum"`
}

// Sketch is a loaded sketch, flattened out of its signature record
type Sketch struct {
	Name     string
	Filename string
	Ksize    int
	Molecule string
	Hashes   map[uint64]uint64 // hash value -> abundance
	md5      string
	flat     bool // true if the sketch was stored without abundances
}

// NewSketch returns an empty sketch for the given ksize and molecule type
func NewSketch(name string, ksize int, molecule string) *Sketch {
	return &Sketch{
		Name:     name,
		Ksize:    ksize,
		Molecule: molecule,
		Hashes:   make(map[uint64]uint64),
	}
}

// Add is a method to add an abundance to a hash value held by the sketch
func (Sketch *Sketch) Add(hashval, abund uint64) {
	Sketch.Hashes[hashval] += abund
	Sketch.md5 = ""
}

// HasAbundance returns false if the sketch was stored without abundance tracking
func (Sketch *Sketch) HasAbundance() bool {
	return !Sketch.flat
}

// Md5sum returns the md5sum of the sketch
//
// If the signature file recorded one, that is used. Otherwise it is computed over the ksize and sorted hash values.
func (Sketch *Sketch) Md5sum() string {
	if Sketch.md5 != "" {
		return Sketch.md5
	}
	hashes := make([]uint64, 0, len(Sketch.Hashes))
	for hv := range Sketch.Hashes {
		hashes = append(hashes, hv)
	}
	sort.Slice(hashes, func(i, j int) bool { return hashes[i] < hashes[j] })
	hash := md5.New()
	hash.Write([]byte(strconv.Itoa(Sketch.Ksize)))
	for _, hv := range hashes {
		hash.Write([]byte(strconv.FormatUint(hv, 10)))
	}
	Sketch.md5 = hex.EncodeToString(hash.Sum(nil))
	return Sketch.md5
}

// String returns a name to display for the sketch
func (Sketch *Sketch) String() string {
	if Sketch.Name != "" {
		return Sketch.Name
	}
	if Sketch.Filename != "" {
		return Sketch.Filename
	}
	return Sketch.Md5sum()[:8]
}

// NormaliseMolecule converts a molecule name to the form used by abundhist (DNA, protein, dayhoff or hp)
func NormaliseMolecule(molecule string) string {
	switch strings.ToLower(molecule) {
	case "dna", "rna":
		return DNA
	case "protein":
		return PROTEIN
	case "dayhoff":
		return DAYHOFF
	case "hp":
		return HP
	}
	return molecule
}

// IsProtein returns true for the amino-acid molecule types
func IsProtein(molecule string) bool {
	switch NormaliseMolecule(molecule) {
	case PROTEIN, DAYHOFF, HP:
		return true
	}
	return false
}
