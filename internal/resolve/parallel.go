package resolve

import (
	"runtime"
	"sync"

	"github.com/KarchinLab/open-cravat-extras/internal/variant"
)

// WorkItem holds one raw input awaiting resolution.
type WorkItem struct {
	Seq   int
	Line  int
	Input string
}

// WorkResult holds the resolution for a single work item.
type WorkResult struct {
	Seq        int
	Line       int
	Input      string
	Resolution *Resolution
	Err        error
}

// ParallelResolve resolves work items using a pool of workers.
// Results arrive in completion order; use OrderedCollect to restore
// sequence order. If workers is 0, runtime.NumCPU() is used.
func (r *Resolver) ParallelResolve(items <-chan WorkItem, assembly variant.Assembly, workers int) <-chan WorkResult {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	results := make(chan WorkResult, 2*workers)

	var wg sync.WaitGroup
	wg.Add(workers)

	for range workers {
		go func() {
			defer wg.Done()
			for item := range items {
				res, err := r.Resolve(item.Input, assembly)
				if res != nil {
					res.Seq = item.Seq
				}
				results <- WorkResult{
					Seq:        item.Seq,
					Line:       item.Line,
					Input:      item.Input,
					Resolution: res,
					Err:        err,
				}
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	return results
}

// OrderedCollect calls fn for each result in sequence-number order,
// buffering results that arrive early. Blocks until results is closed.
func OrderedCollect(results <-chan WorkResult, fn func(WorkResult) error) error {
	pending := make(map[int]WorkResult)
	nextSeq := 0

	for wr := range results {
		pending[wr.Seq] = wr

		for {
			next, ok := pending[nextSeq]
			if !ok {
				break
			}
			delete(pending, nextSeq)
			nextSeq++
			if err := fn(next); err != nil {
				// Drain so workers can exit.
				for range results {
				}
				return err
			}
		}
	}

	return nil
}
