// Package automation scripts batches of headless runs from YAML.
package automation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/verletsim/internal/config"
	"github.com/san-kum/verletsim/internal/experiment"
	"github.com/san-kum/verletsim/internal/scene"
	"github.com/san-kum/verletsim/internal/sim"
	"github.com/san-kum/verletsim/internal/storage"
)

var ErrUnknownParam = errors.New("unknown sweep parameter")

// Scenario defines a scripted sequence of runs.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep is a single run. Zero fields fall back to the preset, or to
// the defaults when no preset is named.
type ScenarioStep struct {
	Scene     string   `yaml:"scene"`
	Preset    string   `yaml:"preset"`
	Frames    int      `yaml:"frames"`
	Substeps  int      `yaml:"substeps"`
	GravityX  *float64 `yaml:"gravity_x"`
	GravityY  *float64 `yaml:"gravity_y"`
	Stiffness float64  `yaml:"stiffness"`
	Save      bool     `yaml:"save"`
}

// StepResult pairs a step's outcome with the id it was stored under, if any.
type StepResult struct {
	Step   int
	Scene  string
	RunID  string
	Result *sim.Result
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return &scenario, nil
}

// Config resolves the step against its preset and the defaults.
func (s ScenarioStep) Config() (*config.Config, error) {
	cfg := config.DefaultConfig()
	if s.Preset != "" {
		p := config.GetPreset(s.Scene, s.Preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset %s for scene %s", s.Preset, s.Scene)
		}
		c := *p
		cfg = &c
	}
	if s.Scene != "" {
		cfg.Scene = s.Scene
	}
	if s.Frames != 0 {
		cfg.Frames = s.Frames
	}
	if s.Substeps != 0 {
		cfg.Substeps = s.Substeps
	}
	if s.GravityX != nil {
		cfg.Gravity.X = *s.GravityX
	}
	if s.GravityY != nil {
		cfg.Gravity.Y = *s.GravityY
	}
	if s.Stiffness != 0 {
		cfg.Stiffness = s.Stiffness
	}
	return cfg, cfg.Validate()
}

// RunScenario executes all steps in order. Steps marked save are written to
// store, which may be nil when nothing is saved.
func RunScenario(ctx context.Context, scenario *Scenario, registry *scene.Registry, store *storage.Store, log *slog.Logger) ([]StepResult, error) {
	results := make([]StepResult, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		log.Info("scenario step", "step", i+1, "of", len(scenario.Steps), "scene", step.Scene)

		cfg, err := step.Config()
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}

		exp := experiment.New(cfg, registry).WithPreset(step.Preset)
		if err := exp.Setup(); err != nil {
			return results, fmt.Errorf("step %d setup: %w", i+1, err)
		}

		result, err := exp.Run(ctx)
		if err != nil {
			return results, fmt.Errorf("step %d run: %w", i+1, err)
		}

		sr := StepResult{Step: i + 1, Scene: cfg.Scene, Result: result}
		if step.Save {
			if store == nil {
				return results, fmt.Errorf("step %d: save requested without a store", i+1)
			}
			if sr.RunID, err = store.Save(exp.Metadata(), result); err != nil {
				return results, fmt.Errorf("step %d save: %w", i+1, err)
			}
		}
		results = append(results, sr)
	}

	return results, nil
}

// ParameterSweep runs one scene across a range of values of a single setting.
type ParameterSweep struct {
	Base      config.Config
	ParamName string
	ParamMin  float64
	ParamMax  float64
	NumSteps  int
}

// SweepResult holds the summary metrics of one sweep point.
type SweepResult struct {
	ParamValue float64
	FramesRun  int
	MaxStress  float64
	Stability  float64
	Errors     int
}

func setParam(cfg *config.Config, name string, v float64) error {
	switch name {
	case "stiffness":
		cfg.Stiffness = v
	case "gravity_x":
		cfg.Gravity.X = v
	case "gravity_y":
		cfg.Gravity.Y = v
	case "substeps":
		cfg.Substeps = int(v)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownParam, name)
	}
	return nil
}

// RunSweep executes a parameter sweep
func RunSweep(ctx context.Context, sweep *ParameterSweep, registry *scene.Registry) ([]SweepResult, error) {
	n := max(sweep.NumSteps, 1)
	results := make([]SweepResult, 0, n)

	paramStep := 0.0
	if n > 1 {
		paramStep = (sweep.ParamMax - sweep.ParamMin) / float64(n-1)
	}

	for i := 0; i < n; i++ {
		paramVal := sweep.ParamMin + float64(i)*paramStep
		cfg := sweep.Base
		if err := setParam(&cfg, sweep.ParamName, paramVal); err != nil {
			return nil, err
		}

		exp := experiment.New(&cfg, registry)
		if err := exp.Setup(); err != nil {
			return nil, fmt.Errorf("%s=%.4f: %w", sweep.ParamName, paramVal, err)
		}

		result, err := exp.Run(ctx)
		if err != nil {
			return nil, err
		}

		results = append(results, SweepResult{
			ParamValue: paramVal,
			FramesRun:  result.FramesRun,
			MaxStress:  result.Metrics["max_stress"],
			Stability:  result.Metrics["stability"],
			Errors:     len(result.Errors),
		})
	}

	return results, nil
}
