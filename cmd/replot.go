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
	"log"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/will-rowe/abundhist/src/abundance"
	"github.com/will-rowe/abundhist/src/misc"
	"github.com/will-rowe/abundhist/src/version"
)

// the command line arguments
var replotOpts *reportFlags

// replotCmd is used by cobra
var replotCmd = &cobra.Command{
	Use:   "replot [flags] COUNTS_FILE...",
	Short: "Re-bin and re-plot the aggregated abundances saved by hist --counts-out",
	Long: `Re-bin and re-plot the aggregated abundances saved by hist --counts-out

 Several counts files can be given, as long as they share a ksize and molecule type;
 their abundances are summed.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runReplot(args)
	},
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return replotOpts.check(cmd)
	},
}

func init() {
	replotOpts = addReportFlags(replotCmd)
	RootCmd.AddCommand(replotCmd)
}

// loadCounts is a function to load and merge a set of counts files
func loadCounts(files []string) (*abundance.Aggregate, error) {
	var merged *abundance.Aggregate
	for _, file := range files {
		if err := misc.CheckFile(file); err != nil {
			return nil, err
		}
		agg := &abundance.Aggregate{}
		if err := agg.Load(file); err != nil {
			return nil, fmt.Errorf("could not load %q: %v", file, err)
		}
		if !strings.HasPrefix(agg.Version, version.GetBaseVersion()+".") {
			return nil, fmt.Errorf("counts file %q was created with a different version of abundhist (%v, you are currently using version %v)", file, agg.Version, version.GetVersion())
		}
		log.Printf("\t%v: %d hashes from %d sketches (k=%d, %v)", file, agg.NumHashes(), agg.NumSketches, agg.Ksize, agg.Molecule)
		if merged == nil {
			merged = agg
			continue
		}
		if agg.Ksize != merged.Ksize || agg.Molecule != merged.Molecule {
			return nil, fmt.Errorf("counts file %q (k=%d, %v) does not match k=%d, %v", file, agg.Ksize, agg.Molecule, merged.Ksize, merged.Molecule)
		}
		merged.Merge(agg)
	}
	merged.Version = version.GetVersion()
	return merged, nil
}

// runReplot is the main function for the replot sub-command
func runReplot(args []string) {
	closeLog := misc.SetupLogging(*logFile, *quiet)
	defer closeLog()
	start := time.Now()
	log.Printf("abundhist (version %s)", version.GetVersion())
	log.Printf("starting the replot subcommand")
	log.Printf("checking parameters...")
	replotOpts.logParams()
	log.Printf("loading counts...")
	agg, err := loadCounts(args)
	misc.ErrorCheck(err)
	misc.ErrorCheck(reportToStdout(agg, replotOpts))
	log.Printf("finished in %s", time.Since(start))
}
