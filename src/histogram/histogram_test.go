package histogram

import (
	"bytes"
	"reflect"
	"strings"
	"testing"
)

func TestCoverageKey(t *testing.T) {
	tests := []struct {
		dist     map[int]int
		frac     float64
		expected int
	}{
		{map[int]int{1: 90, 2: 9, 50: 1}, 0.99, 2},
		{map[int]int{1: 90, 2: 9, 50: 1}, 1.0, 50},
		{map[int]int{3: 1}, 0.99, 3},
		{map[int]int{10: 1, 1: 1}, 0.5, 1},
	}
	for i, test := range tests {
		key, err := CoverageKey(test.dist, test.frac)
		if err != nil {
			t.Fatal(err)
		}
		if key != test.expected {
			t.Fatalf("test %d: expected key %d, got %d", i, test.expected, key)
		}
	}
	if _, err := CoverageKey(map[int]int{}, 0.99); err == nil {
		t.Fatal("empty distribution should give an error")
	}
}

func TestNewRange(t *testing.T) {
	rng, err := NewRange(map[int]int{1: 90, 2: 9, 50: 1}, 10)
	if err != nil {
		t.Fatal(err)
	}
	if rng.Min != 1 || rng.Max != 4 || rng.Bins != 10 {
		t.Fatalf("unexpected default range: %+v", rng)
	}
	if !rng.FitBins() || rng.Bins != 4 {
		t.Fatalf("bins should have been reduced to 4, got %d", rng.Bins)
	}
	if rng.FitBins() {
		t.Fatal("bins should not be reduced twice")
	}
}

func TestRangeCheck(t *testing.T) {
	for _, rng := range []Range{
		{Min: 1, Max: 10, Bins: 0},
		{Min: -1, Max: 10, Bins: 5},
		{Min: 10, Max: 5, Bins: 5},
	} {
		if err := rng.Check(); err == nil {
			t.Fatalf("range %+v should fail the check", rng)
		}
	}
	if err := (&Range{Min: 1, Max: 1, Bins: 1}).Check(); err != nil {
		t.Fatal(err)
	}
}

func TestNew(t *testing.T) {
	values := []float64{9, 0, 1, 2, 2, 3, 7, 8, 8, -1}
	h, err := New(values, &Range{Min: 0, Max: 8, Bins: 4})
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(h.Edges, []float64{0, 2, 4, 6, 8}) {
		t.Fatalf("unexpected edges: %v", h.Edges)
	}
	if !reflect.DeepEqual(h.Counts, []float64{2, 3, 0, 3}) {
		t.Fatalf("unexpected counts: %v", h.Counts)
	}
	if !reflect.DeepEqual(h.Labels(), []int{2, 4, 6, 8}) {
		t.Fatalf("unexpected labels: %v", h.Labels())
	}
	if h.Total() != 8 || h.NumBins() != 4 {
		t.Fatalf("unexpected totals: %d values in %d bins", h.Total(), h.NumBins())
	}
}

func TestNewSingleValueRange(t *testing.T) {
	h, err := New([]float64{1, 1, 2}, &Range{Min: 1, Max: 1, Bins: 1})
	if err != nil {
		t.Fatal(err)
	}
	if h.Counts[0] != 2 {
		t.Fatalf("expected 2 values in the single bin, got %v", h.Counts[0])
	}
}

func TestWriteCSV(t *testing.T) {
	h, err := New([]float64{0, 1, 2, 2, 3, 7, 8, 8}, &Range{Min: 0, Max: 8, Bins: 4})
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := h.WriteCSV(&buf); err != nil {
		t.Fatal(err)
	}
	expected := "count,n_count\n2,2\n4,3\n6,0\n8,3\n"
	if buf.String() != expected {
		t.Fatalf("expected:\n%v\ngot:\n%v", expected, buf.String())
	}
}

func TestBarChart(t *testing.T) {
	h := &Histogram{
		Edges:  []float64{0, 1, 35, 100},
		Counts: []float64{10469, 25, 0},
	}
	var buf bytes.Buffer
	if err := h.BarChart(&buf); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	expected := []string{
		"1    [10469]  " + strings.Repeat("*", 40),
		"35   [   25]  *",
		"100  [    0]",
	}
	if !reflect.DeepEqual(lines, expected) {
		t.Fatalf("expected:\n%q\ngot:\n%q", expected, lines)
	}
}

func TestBarLength(t *testing.T) {
	tests := []struct {
		val, max float64
		expected int
	}{
		{3, 3, 40},
		{2, 3, 27},
		{0, 3, 0},
		{1, 320, 1},
		{1, 1000, 0},
	}
	for _, test := range tests {
		if l := barLength(test.val, test.max); l != test.expected {
			t.Fatalf("barLength(%v, %v) should be %d, not %d", test.val, test.max, test.expected, l)
		}
	}
}

func BenchmarkNew(b *testing.B) {
	values := make([]float64, 100000)
	for i := range values {
		values[i] = float64(i % 250)
	}
	rng := &Range{Min: 1, Max: 200, Bins: 100}
	for n := 0; n < b.N; n++ {
		if _, err := New(values, rng); err != nil {
			b.Fatal(err)
		}
	}
}
