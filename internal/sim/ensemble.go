package sim

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Ensemble runs independent copies of one configuration with consecutive
// seeds. A zero seed is resolved once, so every run offsets the same clock
// seed. Each run owns its Simulation so runs share nothing.
type Ensemble struct {
	cfg        Config
	setup      []Command
	newMetrics func() []Metric
	runs       int
}

// NewEnsemble prepares runs copies of cfg. setup is applied to every copy
// before it starts ticking; newMetrics builds a fresh metric set per run.
func NewEnsemble(cfg Config, runs int, setup []Command, newMetrics func() []Metric) *Ensemble {
	return &Ensemble{cfg: cfg, setup: setup, newMetrics: newMetrics, runs: runs}
}

func (e *Ensemble) Run(ctx context.Context, ticks int) ([]*Result, error) {
	if e.runs <= 0 {
		return nil, fmt.Errorf("%w: ensemble needs at least one run", ErrInvalidConfig)
	}

	base := ResolveSeed(e.cfg.Seed)
	results := make([]*Result, e.runs)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i := 0; i < e.runs; i++ {
		g.Go(func() error {
			cfg := e.cfg
			cfg.Seed = base + int64(i)

			s, err := New(cfg)
			if err != nil {
				return err
			}
			if e.newMetrics != nil {
				for _, m := range e.newMetrics() {
					s.AddMetric(m)
				}
			}
			for _, cmd := range e.setup {
				if err := s.Apply(cmd); err != nil {
					return err
				}
			}

			res, err := s.Run(ctx, ticks, nil)
			if err != nil {
				return fmt.Errorf("run %d: %w", i, err)
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Mean averages each metric across results.
func Mean(results []*Result) map[string]float64 {
	out := make(map[string]float64)
	if len(results) == 0 {
		return out
	}
	for _, r := range results {
		for k, v := range r.Metrics {
			out[k] += v
		}
	}
	for k := range out {
		out[k] /= float64(len(results))
	}
	return out
}
