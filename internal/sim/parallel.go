package sim

import (
	"context"
	"sync"
)

// Setup prepares a fresh runner for one ensemble member. Engines are not
// safe for concurrent use, so every member must get its own.
type Setup func(cfg Config) (*Runner, error)

// Ensemble runs the same setup under several configs concurrently, e.g. to
// compare how the sub-step count affects stiffness.
type Ensemble struct {
	setup   Setup
	configs []Config
}

func NewEnsemble(setup Setup, configs ...Config) *Ensemble {
	return &Ensemble{setup: setup, configs: configs}
}

// Run returns results in config order. The first error wins.
func (e *Ensemble) Run(ctx context.Context) ([]*Result, error) {
	results := make([]*Result, len(e.configs))
	errs := make([]error, len(e.configs))

	var wg sync.WaitGroup
	for i, cfg := range e.configs {
		wg.Add(1)
		go func(idx int, cfg Config) {
			defer wg.Done()

			runner, err := e.setup(cfg)
			if err != nil {
				errs[idx] = err
				return
			}
			results[idx], errs[idx] = runner.Run(ctx, cfg)
		}(i, cfg)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}
