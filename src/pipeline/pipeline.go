// Package pipeline loads sketch files and aggregates their abundances using a set of connected processes.
//
// The pipeline pattern follows the Gopher Academy article by S. Lampa - Patterns for composable concurrent pipelines in Go (https://blog.gopheracademy.com/advent-2015/composable-pipelines-improvements/)
package pipeline

import "sync"

// BUFFERSIZE is the size of the buffer used by the pipeline channels
const BUFFERSIZE int = 64

// process is the interface used by pipeline
//
// A process must close its output channel when Run returns, including on error, so that downstream processes finish.
type process interface {
	Run() error
}

// Pipeline is the base type, which takes any types that satisfy the process interface
type Pipeline struct {
	processes []process
}

// NewPipeline is the pipeline constructor
func NewPipeline() *Pipeline {
	return &Pipeline{}
}

// AddProcesses is a method to add one or more processes to the pipeline, in the order data flows through them
func (Pipeline *Pipeline) AddProcesses(procs ...process) {
	Pipeline.processes = append(Pipeline.processes, procs...)
}

// GetNumProcesses is a method to return the number of processes registered in a pipeline
func (Pipeline *Pipeline) GetNumProcesses() int {
	return len(Pipeline.processes)
}

// Run is a method that starts the pipeline and waits for every process to finish
//
// All processes but the last run in Go routines, the last runs in the foreground to control the flow. The first
// error returned by any process is returned.
func (Pipeline *Pipeline) Run() error {
	if len(Pipeline.processes) == 0 {
		return nil
	}
	var wg sync.WaitGroup
	errs := make([]error, len(Pipeline.processes))
	last := len(Pipeline.processes) - 1
	for i, proc := range Pipeline.processes[:last] {
		wg.Add(1)
		go func(i int, proc process) {
			defer wg.Done()
			errs[i] = proc.Run()
		}(i, proc)
	}
	errs[last] = Pipeline.processes[last].Run()
	wg.Wait()
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
