package runner

import (
	"context"
	"sync"

	"github.com/archlint/archlint/registry"
)

// FileOutcome pairs one input file with its result or error.
type FileOutcome struct {
	Path   string
	Result *Result // nil when Err is set
	Err    error
}

// RunAll validates files concurrently over a bounded worker pool.
// Files are independent by construction (each gets its own model and
// contexts), so no ordering is needed between them; outcomes come back
// in input order regardless of completion order.
//
// Cancellation is caller-scoped: once ctx is done no new file starts,
// but in-flight files finish and report normally.
func (r *Runner) RunAll(ctx context.Context, files []FileInput, reg *registry.Registry, workers int) []FileOutcome {
	if workers <= 0 {
		workers = 1
	}
	if workers > len(files) {
		workers = len(files)
	}

	outcomes := make([]FileOutcome, len(files))
	indexes := make(chan int)

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := range indexes {
				res, err := r.Run(ctx, files[i], reg)
				outcomes[i] = FileOutcome{Path: files[i].Path, Result: res, Err: err}
			}
		}()
	}

	for i := range files {
		select {
		case <-ctx.Done():
			// Mark everything not yet dispatched as cancelled.
			for j := i; j < len(files); j++ {
				outcomes[j] = FileOutcome{Path: files[j].Path, Err: ctx.Err()}
			}
			close(indexes)
			wg.Wait()
			return outcomes
		case indexes <- i:
		}
	}
	close(indexes)
	wg.Wait()
	return outcomes
}
