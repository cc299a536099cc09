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
	"os"
	"runtime"

	"github.com/spf13/cobra"
)

// the command line arguments
var (
	proc      *int    // number of processors to use
	profiling *bool   // create profile for go pprof
	logFile   *string // file to write the log to
	quiet     *bool   // suppress the log
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "abundhist",
	Short: "calculate abundance profiles from one or more abund sketches",
	Long: `
#####################################################################################
		abundhist: k-mer abundance histograms from sketches
#####################################################################################

 abundhist displays histograms of k-mer/hash multiplicity in sketches that were
 created with abundance tracking (e.g. sourmash sketch -p abund).

 Abundances are summed for each hash across all of the selected sketches (optionally
 restricted to the hashes of an intersect sketch) and binned. The histogram is printed
 as text and can be written as CSV, or drawn as a figure marking the rightmost peak of
 the smoothed abundance distribution.`,
}

/*
  A function to add all child commands to the root command and sets flags appropriately
*/
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

/*
  A function to initalise the command line arguments
*/
func init() {
	proc = RootCmd.PersistentFlags().IntP("processors", "p", 1, "number of processors to use when loading sketches")
	profiling = RootCmd.PersistentFlags().Bool("profiling", false, "create the files needed to profile abundhist using the go tool pprof")
	logFile = RootCmd.PersistentFlags().String("log", "", "filename for log file (default is STDERR)")
	quiet = RootCmd.PersistentFlags().BoolP("quiet", "q", false, "suppress non-error output")
}

// setProcessors is a function to limit the number of processors to those available
func setProcessors() {
	if *proc <= 0 || *proc > runtime.NumCPU() {
		*proc = runtime.NumCPU()
	}
	runtime.GOMAXPROCS(*proc)
}
