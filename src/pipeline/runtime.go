package pipeline

import (
	"fmt"

	"github.com/will-rowe/abundhist/src/abundance"
	"github.com/will-rowe/abundhist/src/sketch"
)

// Info stores the runtime information
type Info struct {
	Version   string
	NumProc   int
	Profiling bool
	Selector  sketch.Selector
	Intersect abundance.HashSet // nil unless an intersect sketch was loaded

	// the following fields are set by the pipeline
	NumLoaded   int // sketches matching ksize & molecule type
	NumSelected int // sketches also passing the name / md5 selectors
	NumFlat     int // selected sketches without abundance tracking
}

// LoadIntersect is a method to load the sketch used to restrict aggregation
//
// Exactly one sketch in the file must match the ksize and molecule type.
func (Info *Info) LoadIntersect(path string) error {
	sketches, err := sketch.Load(path)
	if err != nil {
		return err
	}
	matches := []*sketch.Sketch{}
	for _, s := range sketches {
		if Info.Selector.Compatible(s) {
			matches = append(matches, s)
		}
	}
	switch len(matches) {
	case 0:
		return fmt.Errorf("cannot find a sketch in %q that matches ksize/moltype", path)
	case 1:
		Info.Intersect = abundance.NewHashSet(matches[0])
		return nil
	default:
		return fmt.Errorf("found %d sketches in %q that match ksize/moltype", len(matches), path)
	}
}
