package pipeline

import (
	"log"
	"sync"

	"github.com/will-rowe/abundhist/src/abundance"
	"github.com/will-rowe/abundhist/src/sketch"
)

// SketchReader is a pipeline process that loads signature files and sends on the selected sketches
type SketchReader struct {
	info   *Info
	input  []string
	output chan *sketch.Sketch
}

// NewSketchReader is the constructor
func NewSketchReader(info *Info) *SketchReader {
	return &SketchReader{info: info, output: make(chan *sketch.Sketch, BUFFERSIZE)}
}

// Connect is the method to connect the SketchReader to the signature files
func (proc *SketchReader) Connect(input []string) {
	proc.input = input
}

// Run is the method to run this process, which satisfies the pipeline interface
//
// Files are loaded by NumProc Go routines. Loading stops at the first file that can't be read.
func (proc *SketchReader) Run() error {
	defer close(proc.output)
	numWorkers := proc.info.NumProc
	if numWorkers < 1 {
		numWorkers = 1
	}
	fileChan := make(chan string)
	done := make(chan struct{})
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for file := range fileChan {
				sketches, err := sketch.Load(file)
				if err != nil {
					mu.Lock()
					if firstErr == nil {
						firstErr = err
						close(done)
					}
					mu.Unlock()
					continue
				}
				compatible, picked := proc.info.Selector.Filter(sketches)
				mu.Lock()
				proc.info.NumLoaded += compatible
				proc.info.NumSelected += len(picked)
				mu.Unlock()
				for _, s := range picked {
					proc.output <- s
				}
			}
		}()
	}
	func() {
		for _, file := range proc.input {
			select {
			case fileChan <- file:
			case <-done:
				return
			}
		}
	}()
	close(fileChan)
	wg.Wait()
	return firstErr
}

// Aggregator is a pipeline process that collects the abundances of the sketches it receives
type Aggregator struct {
	info   *Info
	input  chan *sketch.Sketch
	result *abundance.Aggregate
}

// NewAggregator is the constructor
func NewAggregator(info *Info) *Aggregator {
	return &Aggregator{
		info:   info,
		result: abundance.NewAggregate(info.Selector.Ksize, info.Selector.Molecule),
	}
}

// Connect is the method to join the input of this process with the output of a SketchReader
func (proc *Aggregator) Connect(previous *SketchReader) {
	proc.input = previous.output
}

// Run is the method to run this process, which satisfies the pipeline interface
func (proc *Aggregator) Run() error {
	for s := range proc.input {
		if !s.HasAbundance() {
			log.Printf("\twarning: sketch %q has no abundances, counting each hash once", s.String())
			proc.info.NumFlat++
		}
		proc.result.Add(s, proc.info.Intersect)
	}
	proc.result.Version = proc.info.Version
	return nil
}

// Result returns the aggregated abundances, once the process has run
func (proc *Aggregator) Result() *abundance.Aggregate {
	return proc.result
}
