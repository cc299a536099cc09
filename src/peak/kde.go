// Package peak smooths abundance distributions with a gaussian kernel density estimate and locates the peaks in it.
package peak

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// KDE is a gaussian kernel density estimate over a set of weighted samples
type KDE struct {
	Bandwidth float64
	samples   []float64
	weights   []float64
	sumW      float64
	kernel    distuv.Normal
}

// NewKDE is the KDE constructor
//
// weights can be nil, in which case each sample has a weight of 1.
func NewKDE(samples, weights []float64, bandwidth float64) (*KDE, error) {
	if len(samples) == 0 {
		return nil, fmt.Errorf("no samples to estimate density from")
	}
	if weights != nil && len(weights) != len(samples) {
		return nil, fmt.Errorf("have %d samples but %d weights", len(samples), len(weights))
	}
	if !(bandwidth > 0) {
		return nil, fmt.Errorf("bandwidth must be > 0 (got %v)", bandwidth)
	}
	if weights == nil {
		weights = make([]float64, len(samples))
		floats.AddConst(1, weights)
	}
	sumW := floats.Sum(weights)
	if sumW <= 0 {
		return nil, fmt.Errorf("sample weights must sum to > 0")
	}
	return &KDE{
		Bandwidth: bandwidth,
		samples:   samples,
		weights:   weights,
		sumW:      sumW,
		kernel:    distuv.Normal{Mu: 0, Sigma: bandwidth},
	}, nil
}

// Density returns the estimated probability density at x
func (KDE *KDE) Density(x float64) float64 {
	density := 0.0
	for i, s := range KDE.samples {
		density += KDE.weights[i] * KDE.kernel.Prob(x-s)
	}
	return density / KDE.sumW
}

// Evaluate returns the estimated density at each of the points in xs
func (KDE *KDE) Evaluate(xs []float64) []float64 {
	ys := make([]float64, len(xs))
	for i, x := range xs {
		ys[i] = KDE.Density(x)
	}
	return ys
}

// Collapse merges repeated values, returning the distinct values (ascending) and how many times each was seen
func Collapse(values []float64) ([]float64, []float64) {
	tally := make(map[float64]float64)
	for _, v := range values {
		tally[v]++
	}
	samples := make([]float64, 0, len(tally))
	for v := range tally {
		samples = append(samples, v)
	}
	sort.Float64s(samples)
	weights := make([]float64, len(samples))
	for i, v := range samples {
		weights[i] = tally[v]
	}
	return samples, weights
}

// ScottBandwidth returns the bandwidth given by Scott's rule of thumb (std. dev * n^-1/5)
//
// A bandwidth of 1 is returned when there are too few values, or they have no spread.
func ScottBandwidth(values []float64) float64 {
	if len(values) < 2 {
		return 1
	}
	bw := stat.StdDev(values, nil) * math.Pow(float64(len(values)), -0.2)
	if !(bw > 0) || math.IsInf(bw, 0) {
		return 1
	}
	return bw
}
