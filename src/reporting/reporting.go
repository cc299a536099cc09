// Package reporting draws the abundance histogram, its smoothed density and the rightmost peak as a figure.
package reporting

import (
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/will-rowe/abundhist/src/histogram"
	"github.com/will-rowe/abundhist/src/peak"
)

// DEFAULTTITLE is the figure title used when none is given
const DEFAULTTITLE = "K-mer abundance histogram"

// KDEPOINTS is the number of points the density curve is drawn with
const KDEPOINTS = 200

// FigureExts are the file extensions a figure can be saved with
var FigureExts = []string{"png", "svg", "pdf", "eps", "jpg", "jpeg", "tif", "tiff"}

// the colours used in the figure
var (
	barColour  = color.RGBA{R: 76, G: 114, B: 176, A: 160}
	kdeColour  = color.RGBA{R: 76, G: 114, B: 176, A: 255}
	peakColour = color.RGBA{R: 221, G: 132, B: 82, A: 255}
)

// Figure holds the settings for drawing an abundance histogram
type Figure struct {
	Title  string
	XLabel string
	YLabel string
	YMax   float64 // top of the y axis, 0 picks it from the histogram
	Width  vg.Length
	Height vg.Length
}

// NewFigure is the Figure constructor
func NewFigure(title string, ymax float64) *Figure {
	if title == "" {
		title = DEFAULTTITLE
	}
	return &Figure{
		Title:  title,
		XLabel: "k-mer abundance",
		YLabel: "N(k-mers at that abundance)",
		YMax:   ymax,
		Width:  6.4 * vg.Inch,
		Height: 4.8 * vg.Inch,
	}
}

// YTop returns the top of the y axis for a histogram
//
// Unless a YMax was given, this is the count in the third bin, which cuts off the tall low abundance bins. The
// tallest bin is used when there are fewer than three bins or the third is empty.
func (Figure *Figure) YTop(hist *histogram.Histogram) float64 {
	if Figure.YMax > 0 {
		return Figure.YMax
	}
	top := 0.0
	if hist.NumBins() >= 3 {
		top = hist.Counts[2]
	}
	if top == 0 {
		for _, count := range hist.Counts {
			top = math.Max(top, count)
		}
	}
	if top == 0 {
		top = 1
	}
	return top
}

// Plot is a method to draw the histogram, a density curve over the values and a marker at the rightmost peak
func (Figure *Figure) Plot(values []float64, hist *histogram.Histogram, rightmost *peak.Result) (*plot.Plot, error) {
	if hist.NumBins() == 0 {
		return nil, fmt.Errorf("histogram has no bins to plot")
	}
	lo, hi := hist.Edges[0], hist.Edges[len(hist.Edges)-1]
	yTop := Figure.YTop(hist)

	p := plot.New()
	p.Title.Text = Figure.Title
	p.X.Label.Text = Figure.XLabel
	p.Y.Label.Text = Figure.YLabel

	// the bars are clipped to the y axis
	bins := make([]plotter.HistogramBin, hist.NumBins())
	for i := range bins {
		bins[i] = plotter.HistogramBin{
			Min:    hist.Edges[i],
			Max:    hist.Edges[i+1],
			Weight: math.Min(hist.Counts[i], yTop),
		}
	}
	bars := &plotter.Histogram{
		Bins:      bins,
		Width:     hist.Edges[1] - hist.Edges[0],
		FillColor: barColour,
		LineStyle: plotter.DefaultLineStyle,
	}
	p.Add(bars)

	// density curve, scaled to the bin counts
	if len(values) > 0 {
		curve, err := densityCurve(values, lo, hi, bars.Width)
		if err != nil {
			return nil, err
		}
		line, err := plotter.NewLine(curve)
		if err != nil {
			return nil, err
		}
		line.LineStyle.Color = kdeColour
		line.LineStyle.Width = vg.Points(1.5)
		p.Add(line)
	}

	// mark the rightmost peak
	if rightmost != nil {
		marker := plotter.XYs{{X: rightmost.X, Y: 0}, {X: rightmost.X, Y: yTop}}
		line, points, err := plotter.NewLinePoints(marker)
		if err != nil {
			return nil, err
		}
		line.LineStyle.Color = peakColour
		line.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(3)}
		points.GlyphStyle.Color = peakColour
		points.GlyphStyle.Shape = draw.CircleGlyph{}
		points.GlyphStyle.Radius = vg.Points(3)
		p.Add(line, points)
		p.Legend.Add(fmt.Sprintf("rightmost peak (%.1f)", rightmost.X), line, points)
		p.Legend.Top = true
	}

	p.X.Min, p.X.Max = lo, hi
	p.Y.Min, p.Y.Max = 0, yTop
	return p, nil
}

// Save is a method to draw the figure and write it to a file, the format is taken from the file extension
func (Figure *Figure) Save(fileName string, values []float64, hist *histogram.Histogram, rightmost *peak.Result) error {
	p, err := Figure.Plot(values, hist, rightmost)
	if err != nil {
		return err
	}
	return p.Save(Figure.Width, Figure.Height, fileName)
}

// densityCurve returns a gaussian KDE of the values (Scott bandwidth) across [lo, hi], scaled so that its area matches the histogram
func densityCurve(values []float64, lo, hi, binWidth float64) (plotter.XYs, error) {
	samples, weights := peak.Collapse(values)
	kde, err := peak.NewKDE(samples, weights, peak.ScottBandwidth(values))
	if err != nil {
		return nil, err
	}
	scale := float64(len(values)) * binWidth
	curve := make(plotter.XYs, KDEPOINTS)
	step := (hi - lo) / float64(KDEPOINTS-1)
	for i := range curve {
		curve[i].X = lo + step*float64(i)
		curve[i].Y = kde.Density(curve[i].X) * scale
	}
	return curve, nil
}
