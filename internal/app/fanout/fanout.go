// Package fanout runs independent loads concurrently with a worker bound.
package fanout

import (
	"context"
	"sync"
)

// Task is one unit of work. It must honour ctx itself once started.
type Task func(ctx context.Context) error

// Run executes tasks with at most limit running at once and returns their
// errors indexed like tasks. A task still waiting for a slot when ctx ends
// is not started; its error is ctx.Err(). limit < 1 runs everything at once.
func Run(ctx context.Context, limit int, tasks ...Task) []error {
	errs := make([]error, len(tasks))
	if len(tasks) == 0 {
		return errs
	}
	if limit < 1 || limit > len(tasks) {
		limit = len(tasks)
	}

	slots := make(chan struct{}, limit)
	var wg sync.WaitGroup

	for i, task := range tasks {
		wg.Go(func() {
			if err := ctx.Err(); err != nil {
				errs[i] = err
				return
			}
			select {
			case slots <- struct{}{}:
			case <-ctx.Done():
				errs[i] = ctx.Err()
				return
			}
			defer func() { <-slots }()

			errs[i] = task(ctx)
		})
	}

	wg.Wait()
	return errs
}
