package peak

import (
	"math"
	"reflect"
	"testing"
)

// triangle returns a curve rising from 0 to height and back, with the apex at index height
func triangle(height int) []float64 {
	y := make([]float64, 2*height+1)
	for i := range y {
		y[i] = float64(height - int(math.Abs(float64(i-height))))
	}
	return y
}

func TestLocalMaxima(t *testing.T) {
	y := []float64{0, 1, 0, 2, 2, 2, 0, 3}
	if maxima := localMaxima(y); !reflect.DeepEqual(maxima, []int{1, 4}) {
		t.Fatalf("expected maxima at [1 4], got %v", maxima)
	}
	if maxima := localMaxima([]float64{1, 2}); len(maxima) != 0 {
		t.Fatalf("curves with fewer than 3 samples have no maxima, got %v", maxima)
	}
	if maxima := localMaxima([]float64{0, 1, 1, 1}); len(maxima) != 0 {
		t.Fatalf("plateau reaching the curve end is not a peak, got %v", maxima)
	}
}

func TestProminence(t *testing.T) {
	y := []float64{0, 5, 1, 3, 0}
	prom, left, right := prominence(y, 3)
	if prom != 2 || left != 2 || right != 4 {
		t.Fatalf("expected prominence 2 with bases 2/4, got %v with bases %d/%d", prom, left, right)
	}
	prom, left, right = prominence(y, 1)
	if prom != 5 || left != 0 || right != 4 {
		t.Fatalf("expected prominence 5 with bases 0/4, got %v with bases %d/%d", prom, left, right)
	}
}

func TestFindPeaks(t *testing.T) {
	y := triangle(10)
	peaks := FindPeaks(y, 10)
	if len(peaks) != 1 {
		t.Fatalf("expected a single peak, got %d", len(peaks))
	}
	if peaks[0].Index != 10 || peaks[0].Prominence != 10 || peaks[0].Width != 10 {
		t.Fatalf("unexpected peak: %+v", peaks[0])
	}
	if peaks := FindPeaks(y, 11); len(peaks) != 0 {
		t.Fatalf("peak is narrower than 11 samples and should be dropped, got %v", peaks)
	}
}

func TestFindPeaksInterpolatedWidth(t *testing.T) {
	y := []float64{0, 4, 0}
	peaks := FindPeaks(y, 0)
	if len(peaks) != 1 {
		t.Fatalf("expected a single peak, got %d", len(peaks))
	}
	if math.Abs(peaks[0].Width-1) > 1e-12 {
		t.Fatalf("expected an interpolated width of 1, got %v", peaks[0].Width)
	}
}

func TestKDE(t *testing.T) {
	if _, err := NewKDE(nil, nil, 1); err == nil {
		t.Fatal("KDE with no samples should fail")
	}
	if _, err := NewKDE([]float64{1}, nil, 0); err == nil {
		t.Fatal("KDE with a zero bandwidth should fail")
	}
	if _, err := NewKDE([]float64{1, 2}, []float64{1}, 1); err == nil {
		t.Fatal("KDE with mismatched weights should fail")
	}

	kde, err := NewKDE([]float64{0}, nil, 1)
	if err != nil {
		t.Fatal(err)
	}
	if d := kde.Density(0); math.Abs(d-1/math.Sqrt(2*math.Pi)) > 1e-9 {
		t.Fatalf("unexpected density at the sample: %v", d)
	}

	// weighting a sample should be the same as repeating it
	weighted, err := NewKDE([]float64{0, 10}, []float64{1, 3}, 2)
	if err != nil {
		t.Fatal(err)
	}
	repeated, err := NewKDE([]float64{0, 10, 10, 10}, nil, 2)
	if err != nil {
		t.Fatal(err)
	}
	for _, x := range []float64{-3, 0, 4.5, 10, 17} {
		if math.Abs(weighted.Density(x)-repeated.Density(x)) > 1e-12 {
			t.Fatalf("weighted and repeated samples differ at %v", x)
		}
	}
	if ys := weighted.Evaluate([]float64{0, 10}); ys[1] <= ys[0] {
		t.Fatalf("density should be higher at the heavier sample: %v", ys)
	}
}

func TestCollapse(t *testing.T) {
	samples, weights := Collapse([]float64{3, 1, 3, 3})
	if !reflect.DeepEqual(samples, []float64{1, 3}) || !reflect.DeepEqual(weights, []float64{1, 3}) {
		t.Fatalf("unexpected collapse: %v %v", samples, weights)
	}
}

func TestScottBandwidth(t *testing.T) {
	if bw := ScottBandwidth([]float64{1}); bw != 1 {
		t.Fatalf("single value should give a bandwidth of 1, got %v", bw)
	}
	if bw := ScottBandwidth([]float64{2, 2, 2}); bw != 1 {
		t.Fatalf("values with no spread should give a bandwidth of 1, got %v", bw)
	}
	expected := math.Sqrt(2.5) * math.Pow(5, -0.2)
	if bw := ScottBandwidth([]float64{1, 2, 3, 4, 5}); math.Abs(bw-expected) > 1e-12 {
		t.Fatalf("expected bandwidth %v, got %v", expected, bw)
	}
}

// bimodalSample returns a set of aggregated abundances with lots of low abundance hashes and a peak at 100x
func bimodalSample() ([]float64, map[int]int) {
	values := []float64{}
	dist := map[int]int{1: 5000}
	for i := 0; i < 5000; i++ {
		values = append(values, 1)
	}
	for abund := 60; abund <= 140; abund++ {
		n := 100 - 2*int(math.Abs(float64(abund-100)))
		dist[abund] = n
		for i := 0; i < n; i++ {
			values = append(values, float64(abund))
		}
	}
	return values, dist
}

func TestFindRightmost(t *testing.T) {
	values, dist := bimodalSample()
	result, err := FindRightmost(values, dist)
	if err != nil {
		t.Fatal(err)
	}
	if result.MaxRange != 136 {
		t.Fatalf("expected the 99%% range to end at 136, got %d", result.MaxRange)
	}
	if !result.Found() || math.Abs(result.X-100) > 3 {
		t.Fatalf("expected the rightmost peak close to 100, got %+v", result)
	}
	if result.Density <= 0 {
		t.Fatalf("density at the peak should be positive, got %v", result.Density)
	}
}

func TestFindRightmostNoSamples(t *testing.T) {
	result, err := FindRightmost([]float64{1, 2, 3}, map[int]int{1: 1, 2: 1, 3: 1})
	if err != nil {
		t.Fatal(err)
	}
	if result.Found() || result.X != 0 {
		t.Fatalf("no abundances >= 5 should give no peak, got %+v", result)
	}
	if _, err := FindRightmost(nil, map[int]int{}); err == nil {
		t.Fatal("empty distribution should give an error")
	}
}

func BenchmarkFindRightmost(b *testing.B) {
	values, dist := bimodalSample()
	for n := 0; n < b.N; n++ {
		if _, err := FindRightmost(values, dist); err != nil {
			b.Fatal(err)
		}
	}
}
