// Package experiment wires a config, a scene and the default metrics into a
// headless run.
package experiment

import (
	"context"
	"errors"
	"fmt"

	"github.com/san-kum/verletsim/internal/config"
	"github.com/san-kum/verletsim/internal/metrics"
	"github.com/san-kum/verletsim/internal/physics"
	"github.com/san-kum/verletsim/internal/scene"
	"github.com/san-kum/verletsim/internal/sim"
	"github.com/san-kum/verletsim/internal/storage"
	"github.com/san-kum/verletsim/internal/vector"
)

var ErrNotSetup = errors.New("experiment not setup")

type Experiment struct {
	cfg      config.Config
	preset   string
	registry *scene.Registry
	runner   *sim.Runner
}

// New copies cfg, so later edits to the caller's config do not leak into the
// run.
func New(cfg *config.Config, registry *scene.Registry) *Experiment {
	return &Experiment{cfg: *cfg, registry: registry}
}

// WithPreset records the preset name in saved metadata.
func (e *Experiment) WithPreset(name string) *Experiment {
	e.preset = name
	return e
}

func (e *Experiment) Config() config.Config { return e.cfg }

// Setup builds a fresh engine holding the scene and attaches the default
// metrics plus any extra ones.
func (e *Experiment) Setup(extra ...sim.Metric) error {
	if err := e.cfg.Validate(); err != nil {
		return err
	}
	engine := physics.NewEngine(physics.WithGravity(vector.New(e.cfg.Gravity.X, e.cfg.Gravity.Y)))
	if err := e.registry.Build(e.cfg.Scene, engine, &e.cfg); err != nil {
		return err
	}

	e.runner = sim.New(engine)
	for _, m := range metrics.Default(e.cfg.Height) {
		e.runner.AddMetric(m)
	}
	for _, m := range extra {
		e.runner.AddMetric(m)
	}
	return nil
}

func (e *Experiment) SimConfig() sim.Config {
	return sim.Config{
		Frames:   e.cfg.Frames,
		Substeps: e.cfg.Substeps,
		Width:    e.cfg.Width,
		Height:   e.cfg.Height,
	}
}

func (e *Experiment) Run(ctx context.Context) (*sim.Result, error) {
	if e.runner == nil {
		return nil, ErrNotSetup
	}
	return e.runner.Run(ctx, e.SimConfig())
}

// settleFrames is how many consecutive quiet frames count as resting.
const settleFrames = 30

// Settle steps the scene until its kinetic energy has stayed below threshold
// for settleFrames frames in a row, or the configured frame count runs out,
// and captures the engine at that point. Metrics and observers are not fed.
func (e *Experiment) Settle(ctx context.Context, threshold float64) (*sim.Snapshot, error) {
	if e.runner == nil {
		return nil, ErrNotSetup
	}
	sc := e.SimConfig()
	engine := e.runner.Engine()
	if sc.Frames == 0 {
		return sim.Capture(engine, 0, sc.Width, sc.Height), nil
	}

	energy := metrics.NewKineticEnergy()
	frames, quiet := 0, 0
	err := e.runner.RunWithCallback(ctx, sc, func(en *physics.Engine, frame int) bool {
		frames = frame + 1
		energy.Observe(en, frame)
		if energy.Value() < threshold {
			quiet++
		} else {
			quiet = 0
		}
		return quiet < settleFrames
	})
	if err != nil {
		return nil, err
	}
	return sim.Capture(engine, frames, sc.Width, sc.Height), nil
}

// Runner returns the underlying runner for adding observers.
func (e *Experiment) Runner() *sim.Runner {
	return e.runner
}

// Metadata describes the run for the store. Counts and metrics are filled in
// by the store from the result.
func (e *Experiment) Metadata() storage.RunMetadata {
	return storage.RunMetadata{
		Scene:     e.cfg.Scene,
		Preset:    e.preset,
		Substeps:  e.cfg.Substeps,
		Width:     e.cfg.Width,
		Height:    e.cfg.Height,
		Frames:    e.cfg.Frames,
		GravityX:  e.cfg.Gravity.X,
		GravityY:  e.cfg.Gravity.Y,
		Stiffness: e.cfg.Stiffness,
	}
}

// Sweep runs the scene once per substep count, concurrently.
func Sweep(ctx context.Context, cfg *config.Config, registry *scene.Registry, substeps []int) ([]*sim.Result, error) {
	configs := make([]sim.Config, len(substeps))
	for i, n := range substeps {
		configs[i] = New(cfg, registry).SimConfig()
		configs[i].Substeps = n
	}

	setup := func(sc sim.Config) (*sim.Runner, error) {
		c := *cfg
		c.Substeps = sc.Substeps
		exp := New(&c, registry)
		if err := exp.Setup(); err != nil {
			return nil, fmt.Errorf("substeps %d: %w", sc.Substeps, err)
		}
		return exp.Runner(), nil
	}
	return sim.NewEnsemble(setup, configs...).Run(ctx)
}
