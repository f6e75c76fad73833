package automation

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/warpsim/internal/analysis"
	"github.com/san-kum/warpsim/internal/config"
	"github.com/san-kum/warpsim/internal/export"
	"github.com/san-kum/warpsim/internal/metric"
	"github.com/san-kum/warpsim/internal/storage"
	"github.com/san-kum/warpsim/internal/viz"
)

// Scenario is a scripted list of samples to take, save and export.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Theme       string         `yaml:"theme"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep describes one sample. Preset ("mode/name") is applied first,
// then Mode, View and the named slider values in Params.
type ScenarioStep struct {
	Preset string             `yaml:"preset"`
	Mode   *metric.Mode       `yaml:"mode"`
	View   *metric.View       `yaml:"view"`
	Params map[string]float64 `yaml:"params"`
	SaveAs string             `yaml:"save_as"`
	Export string             `yaml:"export"`
}

// StepResult records what a step produced.
type StepResult struct {
	Step       int              `json:"step"`
	Mode       metric.Mode      `json:"mode"`
	View       metric.View      `json:"view"`
	Params     metric.Params    `json:"params"`
	Summary    analysis.Summary `json:"summary"`
	SnapshotID string           `json:"snapshotId,omitempty"`
	Exported   string           `json:"exported,omitempty"`
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
	if len(scenario.Steps) == 0 {
		return nil, fmt.Errorf("%s: scenario has no steps", path)
	}
	return &scenario, nil
}

// Resolve turns a step into a concrete, clamped sampling state.
func (s ScenarioStep) Resolve() (*config.Config, error) {
	cfg := config.DefaultConfig()
	if s.Preset != "" {
		mode, name, ok := strings.Cut(s.Preset, "/")
		if !ok {
			return nil, fmt.Errorf("preset %q: want mode/name", s.Preset)
		}
		p := config.GetPreset(mode, name)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s", s.Preset)
		}
		cfg.ApplyPreset(p)
	}
	if s.Mode != nil {
		cfg.Mode = *s.Mode
	}
	if s.View != nil {
		cfg.View = *s.View
	}

	names := make([]string, 0, len(s.Params))
	for name := range s.Params {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		var err error
		if cfg.Params, err = config.Set(cfg.Params, name, s.Params[name]); err != nil {
			return nil, err
		}
	}
	if err := cfg.Params.Validate(); err != nil {
		return nil, err
	}
	cfg.Params = config.Clamp(cfg.Params)
	return cfg, nil
}

// RunScenario executes all steps in order. store may be nil when no step
// saves a snapshot. The results of completed steps are returned alongside
// any error.
func RunScenario(ctx context.Context, scenario *Scenario, store *storage.Store, log *slog.Logger) ([]StepResult, error) {
	if log == nil {
		log = slog.Default()
	}
	results := make([]StepResult, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		cfg, err := step.Resolve()
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}
		log.Info("running step", "scenario", scenario.Name, "step", i+1, "of", len(scenario.Steps), "mode", cfg.Mode, "view", cfg.View)

		res := StepResult{
			Step:    i + 1,
			Mode:    cfg.Mode,
			View:    cfg.View,
			Params:  cfg.Params,
			Summary: analysis.Summarize(metric.Sample2D(cfg.Mode, cfg.Params, metric.Domain2D)),
		}

		if step.SaveAs != "" {
			if store == nil {
				return results, fmt.Errorf("step %d: save_as needs a snapshot store", i+1)
			}
			snap, err := store.Save(ctx, storage.Snapshot{Name: step.SaveAs, Mode: cfg.Mode, View: cfg.View, Params: cfg.Params})
			if err != nil {
				return results, fmt.Errorf("step %d save: %w", i+1, err)
			}
			res.SnapshotID = snap.ID
		}

		if step.Export != "" {
			if err := exportStep(step.Export, cfg, viz.GetTheme(scenario.Theme)); err != nil {
				return results, fmt.Errorf("step %d export: %w", i+1, err)
			}
			res.Exported = step.Export
		}

		results = append(results, res)
	}

	return results, nil
}

// exportStep writes the step's sample to path; the extension picks the format.
func exportStep(path string, cfg *config.Config, theme viz.Theme) error {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".csv" && ext != ".json" && ext != ".svg" {
		return fmt.Errorf("unsupported export format %q", filepath.Ext(path))
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	is3D := cfg.View == metric.View3D
	switch ext {
	case ".csv":
		if is3D {
			return export.WriteCSV3D(f, metric.Sample3D(cfg.Mode, cfg.Params, metric.Domain3D))
		}
		return export.WriteCSV2D(f, metric.Sample2D(cfg.Mode, cfg.Params, metric.Domain2D))
	case ".json":
		if is3D {
			return export.WriteJSON3D(f, metric.Sample3D(cfg.Mode, cfg.Params, metric.Domain3D))
		}
		return export.WriteJSON2D(f, metric.Sample2D(cfg.Mode, cfg.Params, metric.Domain2D))
	case ".svg":
		var svg string
		if is3D {
			svg = export.CloudSVG(metric.Sample3D(cfg.Mode, cfg.Params, metric.Domain3D), viz.NewCamera(), 800, 600, string(theme.Primary))
		} else {
			svg = export.CurveSVG(metric.Sample2D(cfg.Mode, cfg.Params, metric.Domain2D), 800, 600, string(theme.Primary))
		}
		_, err := f.WriteString(svg)
		return err
	}
	return nil
}
