package resources

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

// Request names one resource to load and where to decode it.
type Request struct {
	Name     string
	Dst      any
	Optional bool // a missing optional resource is not an error
}

// LoadAll fetches every request concurrently and waits for all of them.
// It returns the first failure in request order. A positive timeout bounds
// the whole batch.
func LoadAll(ctx context.Context, loader Loader, timeout time.Duration, reqs ...Request) error {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	errs := make([]error, len(reqs))
	var wg sync.WaitGroup
	for i, req := range reqs {
		wg.Add(1)
		go func(i int, req Request) {
			defer wg.Done()
			err := loader.Load(ctx, req.Name, req.Dst)
			if err != nil && req.Optional && errors.Is(err, ErrNotFound) {
				err = nil
			}
			errs[i] = err
		}(i, req)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return fmt.Errorf("loading %s: %w", reqs[i].Name, err)
		}
	}
	return nil
}
