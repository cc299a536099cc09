// Copyright © 2017 Will Rowe <will.rowe@stfc.ac.uk>
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package cmd

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/will-rowe/abundhist/src/abundance"
	"github.com/will-rowe/abundhist/src/histogram"
	"github.com/will-rowe/abundhist/src/misc"
	"github.com/will-rowe/abundhist/src/peak"
	"github.com/will-rowe/abundhist/src/reporting"
)

// reportFlags are the command line arguments shared by the commands that output a histogram
type reportFlags struct {
	csvFile      *string // histogram CSV
	abundCSVFile *string // hash abundances CSV
	countsFile   *string // msgpack dump of the aggregated counts
	figureFile   *string // figure filename
	figureTitle  *string // figure title
	max          *int    // histogram max
	min          *int    // histogram min
	bins         *int    // number of bins
	ymax         *int    // figure y axis max
	silent       *bool   // don't print the text histogram
	maxSet       bool
	minSet       bool
}

// addReportFlags is a function to register the output flags with a command
func addReportFlags(cmd *cobra.Command) *reportFlags {
	return &reportFlags{
		csvFile:      cmd.Flags().String("csv", "", "output histogram to this file (in CSV format)"),
		abundCSVFile: cmd.Flags().String("abundances-csv", "", "output hashes and abundances to this file (in CSV format)"),
		countsFile:   cmd.Flags().String("counts-out", "", "save the aggregated hash abundances to this file (for use with abundhist replot)"),
		figureFile:   cmd.Flags().String("figure", "", "save figure to this file (png/svg/pdf/eps/jpg/tif)"),
		figureTitle:  cmd.Flags().String("figure-title", reporting.DEFAULTTITLE, "plot title"),
		max:          cmd.Flags().IntP("max", "M", 0, "max value for histogram range (default 2x the abundance covering 99% of hashes)"),
		min:          cmd.Flags().IntP("min", "m", 1, "min value for histogram range"),
		bins:         cmd.Flags().Int("bins", 10, "number of bins"),
		ymax:         cmd.Flags().Int("ymax", 0, "maximum Y value for histogram display (default is the count in the third bin)"),
		silent:       cmd.Flags().Bool("silent", false, "do not output histogram to text"),
	}
}

// check is a method to check the output flags
func (opts *reportFlags) check(cmd *cobra.Command) error {
	opts.maxSet = cmd.Flags().Changed("max")
	opts.minSet = cmd.Flags().Changed("min")
	if *opts.bins < 1 {
		return fmt.Errorf("--bins must be > 0")
	}
	if *opts.min < 0 {
		return fmt.Errorf("--min must be >= 0")
	}
	if opts.maxSet && *opts.max < *opts.min {
		return fmt.Errorf("--max (%d) must not be less than --min (%d)", *opts.max, *opts.min)
	}
	if *opts.ymax < 0 {
		return fmt.Errorf("--ymax must not be negative")
	}
	if *opts.figureFile != "" {
		if err := misc.CheckExt(*opts.figureFile, reporting.FigureExts); err != nil {
			return err
		}
	}
	for _, file := range []string{*opts.csvFile, *opts.abundCSVFile, *opts.countsFile, *opts.figureFile} {
		if file == "" {
			continue
		}
		if err := misc.CheckOutDir(file); err != nil {
			return err
		}
	}
	return nil
}

// logParams is a method to log the output settings
func (opts *reportFlags) logParams() {
	if opts.maxSet {
		log.Printf("\thistogram max: %d", *opts.max)
	}
	log.Printf("\thistogram min: %d", *opts.min)
	log.Printf("\tnumber of bins: %d", *opts.bins)
}

// histRange is a method to set the histogram range for a distribution, applying any user overrides
func (opts *reportFlags) histRange(dist map[int]int) (*histogram.Range, error) {
	rng, err := histogram.NewRange(dist, *opts.bins)
	if err != nil {
		return nil, err
	}
	log.Printf("\tsetting default max range to %d (2x 99%% of counts)", rng.Max)
	if opts.maxSet {
		log.Printf("\toverriding default max range with --max %d", *opts.max)
		rng.Max = *opts.max
	}
	if opts.minSet {
		rng.Min = *opts.min
	}
	log.Printf("\tset number of bins to %d (--bins)", rng.Bins)
	if rng.FitBins() {
		log.Printf("\treducing to %d because of max/min range", rng.Bins)
	}
	return rng, rng.Check()
}

// report is the function that bins the aggregated abundances and writes all requested outputs
func report(agg *abundance.Aggregate, opts *reportFlags, stdout io.Writer) error {
	if agg.NumHashes() == 0 {
		return fmt.Errorf("no hashes found to make a histogram from")
	}
	log.Printf("\tnumber of sketches aggregated: %d", agg.NumSketches)
	log.Printf("\tnumber of distinct hashes: %d", agg.NumHashes())

	log.Printf("binning abundances...")
	rng, err := opts.histRange(agg.Dist)
	if err != nil {
		return err
	}
	values := agg.Values()
	hist, err := histogram.New(values, rng)
	if err != nil {
		return err
	}

	log.Printf("finding the rightmost peak...")
	rightmost, err := peak.FindRightmost(values, agg.Dist)
	if err != nil {
		return err
	}
	log.Printf("\tmax range: %d, number of peaks: %d", rightmost.MaxRange, rightmost.NumPeaks)
	log.Printf("\trightmost peak: %.2f (density %.4g)", rightmost.X, rightmost.Density)

	if !*opts.silent {
		if err := hist.BarChart(stdout); err != nil {
			return err
		}
	}

	log.Printf("writing outputs...")
	if *opts.csvFile != "" {
		if err := misc.WriteOutput(*opts.csvFile, hist.WriteCSV); err != nil {
			return err
		}
		log.Printf("\tsaved histogram to %q", *opts.csvFile)
	}
	if *opts.abundCSVFile != "" {
		if err := misc.WriteOutput(*opts.abundCSVFile, agg.WriteCSV); err != nil {
			return err
		}
		log.Printf("\tsaved hash abundances to %q", *opts.abundCSVFile)
	}
	if *opts.countsFile != "" {
		if err := agg.Dump(*opts.countsFile); err != nil {
			return err
		}
		log.Printf("\tsaved aggregated counts to %q", *opts.countsFile)
	}
	if *opts.figureFile != "" {
		fig := reporting.NewFigure(*opts.figureTitle, float64(*opts.ymax))
		var marker *peak.Result
		if rightmost.Found() {
			marker = rightmost
		}
		if err := fig.Save(*opts.figureFile, values, hist, marker); err != nil {
			return err
		}
		log.Printf("\tsaved figure to %q", *opts.figureFile)
	}
	return nil
}

// reportToStdout is a helper for the commands, which always print the text histogram to STDOUT
func reportToStdout(agg *abundance.Aggregate, opts *reportFlags) error {
	return report(agg, opts, os.Stdout)
}
