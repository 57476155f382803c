package dataset

import (
	"fmt"
	"runtime"

	"github.com/sourcegraph/conc/pool"
)

// Map applies fn to every item with a bounded worker pool, preserving
// input order in the result.
//
// Example processing is stateless across items, so fanning it out is
// safe; the first error aborts the whole map, matching the pipeline's
// fail-fast error policy.
func Map[T, R any](items []T, workers int, fn func(T) (R, error)) ([]R, error) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	results := make([]R, len(items))
	p := pool.New().WithMaxGoroutines(workers).WithErrors()

	for i := range items {
		i := i
		p.Go(func() error {
			r, err := fn(items[i])
			if err != nil {
				return fmt.Errorf("example %d: %w", i, err)
			}
			results[i] = r
			return nil
		})
	}

	if err := p.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
