package peak

// Peak is a local maximum found in a sampled curve
type Peak struct {
	Index      int     // sample index of the peak (the middle sample of a plateau)
	Prominence float64 // height of the peak above the higher of its two bases
	LeftBase   int
	RightBase  int
	Width      float64 // width in samples at half prominence
}

// FindPeaks returns the peaks in y that are at least minWidth samples wide at half their prominence
//
// Peaks are found as local maxima, with flat peaks resolving to their middle sample. Curve ends are never peaks.
func FindPeaks(y []float64, minWidth float64) []Peak {
	peaks := []Peak{}
	for _, idx := range localMaxima(y) {
		p := Peak{Index: idx}
		p.Prominence, p.LeftBase, p.RightBase = prominence(y, idx)
		p.Width = width(y, p)
		if p.Width >= minWidth {
			peaks = append(peaks, p)
		}
	}
	return peaks
}

// localMaxima returns the indices of samples that are greater than both neighbours
func localMaxima(y []float64) []int {
	maxima := []int{}
	iMax := len(y) - 1
	for i := 1; i < iMax; i++ {
		if y[i-1] >= y[i] {
			continue
		}
		// walk over any plateau
		ahead := i + 1
		for ahead < iMax && y[ahead] == y[i] {
			ahead++
		}
		if y[ahead] < y[i] {
			maxima = append(maxima, (i+ahead-1)/2)
			i = ahead
		}
	}
	return maxima
}

// prominence returns the prominence of the peak at idx and the bases it was measured from
func prominence(y []float64, idx int) (float64, int, int) {
	// search left until a higher sample or the curve end
	leftBase, leftMin := idx, y[idx]
	for i := idx; i >= 0 && y[i] <= y[idx]; i-- {
		if y[i] < leftMin {
			leftMin = y[i]
			leftBase = i
		}
	}
	rightBase, rightMin := idx, y[idx]
	for i := idx; i < len(y) && y[i] <= y[idx]; i++ {
		if y[i] < rightMin {
			rightMin = y[i]
			rightBase = i
		}
	}
	base := leftMin
	if rightMin > base {
		base = rightMin
	}
	return y[idx] - base, leftBase, rightBase
}

// width returns the interpolated width of the peak at half its prominence
func width(y []float64, p Peak) float64 {
	height := y[p.Index] - p.Prominence*0.5

	i := p.Index
	for p.LeftBase < i && height < y[i] {
		i--
	}
	left := float64(i)
	if y[i] < height {
		left += (height - y[i]) / (y[i+1] - y[i])
	}

	i = p.Index
	for i < p.RightBase && height < y[i] {
		i++
	}
	right := float64(i)
	if y[i] < height {
		right -= (height - y[i]) / (y[i-1] - y[i])
	}
	return right - left
}
