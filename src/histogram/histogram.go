// Package histogram bins aggregated abundances and renders the result as a text bar chart or CSV table.
package histogram

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// COVERAGE is the fraction of the abundance distribution used to pick the default histogram range
const COVERAGE = 0.99

// BARWIDTH is the maximum number of characters in a bar of the text chart
const BARWIDTH = 40

// CoverageKey returns the smallest abundance at which the cumulative number of hashes reaches frac of the total
func CoverageKey(dist map[int]int, frac float64) (int, error) {
	if len(dist) == 0 {
		return 0, fmt.Errorf("abundance distribution is empty")
	}
	abunds := make([]int, 0, len(dist))
	total := 0
	for abund, n := range dist {
		abunds = append(abunds, abund)
		total += n
	}
	sort.Ints(abunds)
	sofar := 0
	for _, abund := range abunds {
		sofar += dist[abund]
		if float64(sofar) >= frac*float64(total) {
			return abund, nil
		}
	}
	return abunds[len(abunds)-1], nil
}

// DefaultMax returns twice the abundance that covers 99% of the distribution
func DefaultMax(dist map[int]int) (int, error) {
	key, err := CoverageKey(dist, COVERAGE)
	return 2 * key, err
}

// Range sets the span and number of bins for a histogram
type Range struct {
	Min  int
	Max  int
	Bins int
}

// NewRange returns the default range for an abundance distribution (min 1, max from DefaultMax)
func NewRange(dist map[int]int, bins int) (*Range, error) {
	max, err := DefaultMax(dist)
	if err != nil {
		return nil, err
	}
	return &Range{Min: 1, Max: max, Bins: bins}, nil
}

// FitBins is a method to reduce the number of bins so that no bin is narrower than a single abundance value
//
// It returns true if the number of bins was reduced.
func (Range *Range) FitBins() bool {
	span := Range.Max - Range.Min + 1
	if span < Range.Bins {
		Range.Bins = span
		return true
	}
	return false
}

// Check is a method to make sure the range can be binned
func (Range *Range) Check() error {
	if Range.Bins < 1 {
		return fmt.Errorf("number of bins must be > 0 (got %d)", Range.Bins)
	}
	if Range.Min < 0 {
		return fmt.Errorf("histogram min must be >= 0 (got %d)", Range.Min)
	}
	if Range.Max < Range.Min {
		return fmt.Errorf("histogram max (%d) must not be less than min (%d)", Range.Max, Range.Min)
	}
	return nil
}

// bounds returns the outer edges of the histogram, widened when min == max
func (Range *Range) bounds() (float64, float64) {
	lo, hi := float64(Range.Min), float64(Range.Max)
	if lo == hi {
		lo -= 0.5
		hi += 0.5
	}
	return lo, hi
}

// Histogram holds the binned abundances
type Histogram struct {
	Edges  []float64 // Bins+1 bin edges
	Counts []float64 // number of hashes in each bin
}

// New is a function to bin a set of values across a Range
//
// Bins are half open, apart from the last which includes its right edge. Values outside the range are ignored.
func New(values []float64, rng *Range) (*Histogram, error) {
	if err := rng.Check(); err != nil {
		return nil, err
	}
	lo, hi := rng.bounds()
	edges := floats.Span(make([]float64, rng.Bins+1), lo, hi)
	edges[len(edges)-1] = hi

	// stat.Histogram wants sorted values that sit inside the dividers
	x := make([]float64, 0, len(values))
	for _, v := range values {
		if v >= lo && v <= hi {
			x = append(x, v)
		}
	}
	sort.Float64s(x)
	dividers := make([]float64, len(edges))
	copy(dividers, edges)
	dividers[len(dividers)-1] = math.Nextafter(hi, math.Inf(1))
	counts := stat.Histogram(nil, dividers, x, nil)
	return &Histogram{Edges: edges, Counts: counts}, nil
}

// NumBins returns the number of bins in the histogram
func (Histogram *Histogram) NumBins() int {
	return len(Histogram.Counts)
}

// Labels returns the right edge of each bin, truncated to an integer
func (Histogram *Histogram) Labels() []int {
	labels := make([]int, len(Histogram.Counts))
	for i := range labels {
		labels[i] = int(Histogram.Edges[i+1])
	}
	return labels
}

// Total returns the number of values binned
func (Histogram *Histogram) Total() int {
	return int(floats.Sum(Histogram.Counts))
}

// WriteCSV is a method to write the histogram as CSV, one row per bin
func (Histogram *Histogram) WriteCSV(w io.Writer) error {
	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"count", "n_count"}); err != nil {
		return err
	}
	for i, label := range Histogram.Labels() {
		if err := writer.Write([]string{strconv.Itoa(label), strconv.Itoa(int(Histogram.Counts[i]))}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// BarChart is a method to draw the histogram as horizontal bars of asterisks
func (Histogram *Histogram) BarChart(w io.Writer) error {
	labels := Histogram.Labels()
	labelWidth, valWidth := 0, 0
	maxVal := 0.0
	for i, label := range labels {
		if l := len(strconv.Itoa(label)); l > labelWidth {
			labelWidth = l
		}
		if l := len(strconv.Itoa(int(Histogram.Counts[i]))); l > valWidth {
			valWidth = l
		}
		maxVal = math.Max(maxVal, Histogram.Counts[i])
	}
	if maxVal == 0 {
		maxVal = 1
	}
	for i, label := range labels {
		bar := strings.Repeat("*", barLength(Histogram.Counts[i], maxVal))
		line := fmt.Sprintf("%-*d  [%*d]  %s", labelWidth, label, valWidth, int(Histogram.Counts[i]), bar)
		if _, err := fmt.Fprintln(w, strings.TrimRight(line, " ")); err != nil {
			return err
		}
	}
	return nil
}

// barLength returns the number of characters needed for a bar, working in eighths of a character and rounding partial characters up
func barLength(val, maxVal float64) int {
	eighths := int(math.RoundToEven(val / maxVal * BARWIDTH * 8))
	n := eighths / 8
	if eighths%8 != 0 {
		n++
	}
	if n > BARWIDTH {
		n = BARWIDTH
	}
	return n
}
