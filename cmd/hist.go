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
	"time"

	"github.com/pkg/profile"
	"github.com/spf13/cobra"
	"github.com/will-rowe/abundhist/src/misc"
	"github.com/will-rowe/abundhist/src/pipeline"
	"github.com/will-rowe/abundhist/src/sketch"
	"github.com/will-rowe/abundhist/src/version"
)

// the command line arguments
var (
	sigFiles      []string // the signature files to load
	ksize         *int     // k-mer size to select
	dna           *bool    // select DNA sketches
	rna           *bool    // select DNA sketches (alias)
	protein       *bool    // select protein sketches
	dayhoff       *bool    // select dayhoff sketches
	hp            *bool    // select hp sketches
	md5Selector   *string  // md5sum substring selector
	nameSelector  *string  // name substring selector
	intersectFile *string  // sketch used to restrict the hashes
	molecule      string   // the molecule type resolved from the flags
	histOpts      *reportFlags
)

// histCmd is used by cobra
var histCmd = &cobra.Command{
	Use:   "hist [flags] SIGNATURE_FILE...",
	Short: "Output abundance histogram and/or raw abundances from abund sketches",
	Long: `Output abundance histogram and/or raw abundances from abund sketches

 Signature files can be JSON (optionally compressed) or zip/tar collections of
 signature files. Use - to read a signature file from STDIN.

 Example:
   abundhist hist abund-sketch.sig.gz --csv hist.csv --figure hist.png`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runHist(args)
	},
	PreRunE: func(cmd *cobra.Command, args []string) error {
		if err := misc.CheckRequiredFlags(cmd.Flags()); err != nil {
			return err
		}
		return histOpts.check(cmd)
	},
}

// init the command line arguments
func init() {
	ksize = histCmd.Flags().IntP("ksize", "k", 31, "k-mer size to select")
	dna = histCmd.Flags().Bool("dna", false, "choose a nucleotide signature (default)")
	rna = histCmd.Flags().Bool("rna", false, "choose a nucleotide signature (same as --dna)")
	protein = histCmd.Flags().Bool("protein", false, "choose a protein signature")
	dayhoff = histCmd.Flags().Bool("dayhoff", false, "choose Dayhoff-encoded amino acid signatures")
	hp = histCmd.Flags().Bool("hp", false, "choose hydrophobic-polar-encoded amino acid signatures")
	md5Selector = histCmd.Flags().String("md5", "", "select signatures whose md5 contains this substring")
	nameSelector = histCmd.Flags().String("name", "", "select signatures whose name contains this substring")
	intersectFile = histCmd.Flags().StringP("intersect", "I", "", "plot only hashes that intersect with this signature")
	histOpts = addReportFlags(histCmd)
	RootCmd.AddCommand(histCmd)
}

// selectMolecule is a function to resolve the molecule type flags, only one can be chosen
func selectMolecule() (string, error) {
	chosen := []string{}
	if *dna || *rna {
		chosen = append(chosen, sketch.DNA)
	}
	if *protein {
		chosen = append(chosen, sketch.PROTEIN)
	}
	if *dayhoff {
		chosen = append(chosen, sketch.DAYHOFF)
	}
	if *hp {
		chosen = append(chosen, sketch.HP)
	}
	switch len(chosen) {
	case 0:
		return sketch.DNA, nil
	case 1:
		return chosen[0], nil
	default:
		return "", fmt.Errorf("please specify only one molecule type (got %v)", chosen)
	}
}

// histParamCheck is a function to check user supplied parameters
func histParamCheck(args []string) error {
	if *ksize < 1 {
		return fmt.Errorf("--ksize must be > 0")
	}
	var err error
	if molecule, err = selectMolecule(); err != nil {
		return err
	}
	stdin := 0
	for _, file := range args {
		if file == "-" {
			stdin++
		}
		if err := misc.CheckFile(file); err != nil {
			return err
		}
	}
	if stdin > 1 {
		return fmt.Errorf("STDIN (-) can only be given once")
	}
	if *intersectFile != "" {
		if err := misc.CheckFile(*intersectFile); err != nil {
			return err
		}
	}
	sigFiles = args
	setProcessors()
	return nil
}

// runHist is the main function for the hist sub-command
func runHist(args []string) {
	closeLog := misc.SetupLogging(*logFile, *quiet)
	defer closeLog()

	// set up profiling
	if *profiling {
		defer profile.Start(profile.ProfilePath("./")).Stop()
	}

	// start sub command
	start := time.Now()
	log.Printf("abundhist (version %s)", version.GetVersion())
	log.Printf("starting the hist subcommand")

	// check the supplied files and then log some stuff
	log.Printf("checking parameters...")
	misc.ErrorCheck(histParamCheck(args))
	log.Printf("\tprocessors: %d", *proc)
	log.Printf("\tk-mer size: %d", *ksize)
	log.Printf("\tmolecule type: %v", molecule)
	log.Printf("\tnumber of signature files: %d", len(sigFiles))
	histOpts.logParams()

	// set up the runtime info
	info := &pipeline.Info{
		Version:   version.GetVersion(),
		NumProc:   *proc,
		Profiling: *profiling,
		Selector: sketch.Selector{
			Ksize:    *ksize,
			Molecule: molecule,
			Md5:      *md5Selector,
			Name:     *nameSelector,
		},
	}

	// do we need to intersect hashes?
	if *intersectFile != "" {
		log.Printf("loading --intersect sketch from %q k=%d moltype=%v", *intersectFile, *ksize, molecule)
		misc.ErrorCheck(info.LoadIntersect(*intersectFile))
		log.Printf("\tnumber of hashes to intersect with: %d", len(info.Intersect))
	}

	// create the pipeline
	log.Printf("initialising hist pipeline...")
	histPipeline := pipeline.NewPipeline()
	sketchReader := pipeline.NewSketchReader(info)
	aggregator := pipeline.NewAggregator(info)
	sketchReader.Connect(sigFiles)
	aggregator.Connect(sketchReader)
	histPipeline.AddProcesses(sketchReader, aggregator)
	log.Printf("\tnumber of processes added to the hist pipeline: %d", histPipeline.GetNumProcesses())
	log.Printf("loading sketches...")
	misc.ErrorCheck(histPipeline.Run())
	log.Printf("\tloaded %d total that matched ksize & molecule type", info.NumLoaded)
	if info.NumSelected != info.NumLoaded {
		log.Printf("\tselected %d via name / md5 selectors", info.NumSelected)
	}
	if info.NumFlat != 0 {
		log.Printf("\t%d selected sketches had no abundances", info.NumFlat)
	}

	// bin and output
	misc.ErrorCheck(reportToStdout(aggregator.Result(), histOpts))
	if *profiling {
		log.Printf("\tmemory: %v", misc.PrintMemUsage())
	}
	log.Printf("finished in %s", time.Since(start))
}
