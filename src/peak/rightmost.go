package peak

import (
	"gonum.org/v1/gonum/floats"

	"github.com/will-rowe/abundhist/src/histogram"
)

const (
	// MINABUND is the smallest aggregated abundance used to fit the density estimate
	MINABUND = 5.0

	// BANDWIDTH is the kernel bandwidth used when searching for the rightmost peak
	BANDWIDTH = 20.0

	// MINWIDTH is the minimum width (in abundance units) of a peak
	MINWIDTH = 20.0
)

// Result is the rightmost peak of an abundance distribution
type Result struct {
	X        float64 // abundance at the peak
	Density  float64 // estimated density at the peak
	MaxRange int     // abundance covering 99% of the distribution
	NumPeaks int     // number of peaks found
}

// Found returns true if a peak was found
func (Result *Result) Found() bool {
	return Result.NumPeaks > 0
}

// FindRightmost is a function to locate the rightmost peak in a smoothed abundance distribution
//
// values are the aggregated abundances of each hash and dist is the per-sketch abundance distribution, which sets
// the range searched. The density is estimated from the values >= MINABUND and sampled at maxRange points
// spanning [0, maxRange]. A Result with no peaks (X == 0) is returned when nothing can be estimated.
func FindRightmost(values []float64, dist map[int]int) (*Result, error) {
	maxRange, err := histogram.CoverageKey(dist, histogram.COVERAGE)
	if err != nil {
		return nil, err
	}
	result := &Result{MaxRange: maxRange}

	kept := make([]float64, 0, len(values))
	for _, v := range values {
		if v >= MINABUND {
			kept = append(kept, v)
		}
	}
	if len(kept) == 0 || maxRange < 2 {
		return result, nil
	}
	samples, weights := Collapse(kept)
	kde, err := NewKDE(samples, weights, BANDWIDTH)
	if err != nil {
		return nil, err
	}

	xs := floats.Span(make([]float64, maxRange), 0, float64(maxRange))
	ys := kde.Evaluate(xs)
	peaks := FindPeaks(ys, MINWIDTH)
	result.NumPeaks = len(peaks)
	for _, p := range peaks {
		if xs[p.Index] > float64(maxRange) {
			break
		}
		result.X = xs[p.Index]
		result.Density = ys[p.Index]
	}
	return result, nil
}
