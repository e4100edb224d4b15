// Package parallel fans a fixed set of independent operations out across
// goroutines and joins them, the same WaitGroup-based shape the teacher
// library's own pio package uses for its MultiReadAt fan-out (there,
// individual byte-range reads; here, per-column decode/validation steps),
// generalized from raw I/O ops to arbitrary indexed closures.
package parallel

import "sync"

// Run invokes fn(0), fn(1), ..., fn(n-1) concurrently and waits for all of
// them to finish, returning the first error encountered in index order (if
// any). Every fn is always run to completion; Run does not cancel the
// others once one fails, matching the "tasks here... must not block on
// each other" requirement for independent per-column work.
func Run(n int, fn func(i int) error) error {
	if n == 0 {
		return nil
	}
	if n == 1 {
		return fn(0)
	}

	errs := make([]error, n)
	wg := sync.WaitGroup{}
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func(i int) {
			defer wg.Done()
			errs[i] = fn(i)
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
