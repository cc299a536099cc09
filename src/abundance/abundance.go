// Package abundance aggregates the per-hash abundances of a set of sketches, ready for binning.
package abundance

import (
	"encoding/csv"
	"io"
	"sort"
	"strconv"

	"github.com/will-rowe/abundhist/src/sketch"
)

// HashSet is a set of hash values, used to restrict aggregation to the hashes of an intersect sketch
type HashSet map[uint64]struct{}

// NewHashSet returns the set of hash values held by a sketch
func NewHashSet(s *sketch.Sketch) HashSet {
	hs := make(HashSet, len(s.Hashes))
	for hv := range s.Hashes {
		hs[hv] = struct{}{}
	}
	return hs
}

// Contains returns true if the hash value is in the set
func (hs HashSet) Contains(hv uint64) bool {
	_, ok := hs[hv]
	return ok
}

// Aggregate holds the abundances collected across sketches
type Aggregate struct {
	Version     string
	Ksize       int
	Molecule    string
	NumSketches int
	Counts      map[uint64]int // hash value -> abundance summed across sketches
	Dist        map[int]int    // abundance in a single sketch -> number of hashes seen at it
}

// NewAggregate is the Aggregate constructor
func NewAggregate(ksize int, molecule string) *Aggregate {
	return &Aggregate{
		Ksize:    ksize,
		Molecule: molecule,
		Counts:   make(map[uint64]int),
		Dist:     make(map[int]int),
	}
}

// Add is a method to add the hashes of a sketch to the aggregate
//
// If intersect is not nil, only the hashes also found in it are added.
func (Aggregate *Aggregate) Add(s *sketch.Sketch, intersect HashSet) {
	for hv, abund := range s.Hashes {
		if intersect != nil && !intersect.Contains(hv) {
			continue
		}
		Aggregate.Counts[hv] += int(abund)
		Aggregate.Dist[int(abund)]++
	}
	Aggregate.NumSketches++
}

// Merge is a method to fold another aggregate into this one
func (Aggregate *Aggregate) Merge(other *Aggregate) {
	for hv, count := range other.Counts {
		Aggregate.Counts[hv] += count
	}
	for abund, n := range other.Dist {
		Aggregate.Dist[abund] += n
	}
	Aggregate.NumSketches += other.NumSketches
}

// NumHashes returns the number of distinct hashes aggregated
func (Aggregate *Aggregate) NumHashes() int {
	return len(Aggregate.Counts)
}

// DistTotal returns the number of (sketch, hash) observations
func (Aggregate *Aggregate) DistTotal() int {
	total := 0
	for _, n := range Aggregate.Dist {
		total += n
	}
	return total
}

// Values returns the aggregated abundance of each hash, in ascending order
func (Aggregate *Aggregate) Values() []float64 {
	values := make([]float64, 0, len(Aggregate.Counts))
	for _, count := range Aggregate.Counts {
		values = append(values, float64(count))
	}
	sort.Float64s(values)
	return values
}

// sortedHashes returns the aggregated hash values in ascending order
func (Aggregate *Aggregate) sortedHashes() []uint64 {
	hashes := make([]uint64, 0, len(Aggregate.Counts))
	for hv := range Aggregate.Counts {
		hashes = append(hashes, hv)
	}
	sort.Slice(hashes, func(i, j int) bool { return hashes[i] < hashes[j] })
	return hashes
}

// WriteCSV is a method to write each hash value and its aggregated abundance as CSV
func (Aggregate *Aggregate) WriteCSV(w io.Writer) error {
	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"hashval", "count"}); err != nil {
		return err
	}
	for _, hv := range Aggregate.sortedHashes() {
		row := []string{strconv.FormatUint(hv, 10), strconv.Itoa(Aggregate.Counts[hv])}
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
