package automation

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/warpsim/internal/metric"
	"github.com/san-kum/warpsim/internal/storage"
)

func quiet() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func writeScenario(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadScenario(t *testing.T) {
	path := writeScenario(t, `
name: tour
steps:
  - preset: warp/bubble
    view: 3d
  - mode: tensor
    params:
      tensor: 2
      lambda: -1
`)
	sc, err := LoadScenario(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(sc.Steps) != 2 {
		t.Fatalf("expected 2 steps, got %d", len(sc.Steps))
	}

	cfg, err := sc.Steps[0].Resolve()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Mode != metric.Warp || cfg.View != metric.View3D || cfg.Params.WarpStrength != 0.5 {
		t.Errorf("unexpected first step %+v", cfg)
	}

	cfg, err = sc.Steps[1].Resolve()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Mode != metric.Tensor || cfg.Params != (metric.Params{Tensor: 2, Lambda: -1}) {
		t.Errorf("unexpected second step %+v", cfg)
	}
}

func TestLoadScenarioErrors(t *testing.T) {
	if _, err := LoadScenario(writeScenario(t, "name: empty\n")); err == nil {
		t.Error("expected error for a scenario without steps")
	}
	if _, err := LoadScenario(writeScenario(t, "steps:\n  - mode: gravity\n")); err == nil {
		t.Error("expected error for an unknown mode")
	}
}

func TestResolveErrors(t *testing.T) {
	tests := []ScenarioStep{
		{Preset: "bubble"},
		{Preset: "warp/nope"},
		{Params: map[string]float64{"gravity": 1}},
	}
	for _, s := range tests {
		if _, err := s.Resolve(); err == nil {
			t.Errorf("%+v: expected error", s)
		}
	}
}

func TestRunScenario(t *testing.T) {
	dir := t.TempDir()
	store, err := storage.Open(dir, quiet())
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	mode := metric.Time
	sc := &Scenario{
		Name: "run",
		Steps: []ScenarioStep{
			{Mode: &mode, Params: map[string]float64{"time": 5}, SaveAs: "future", Export: filepath.Join(dir, "future.csv")},
			{Preset: "warp/ring", Export: filepath.Join(dir, "ring.svg")},
		},
	}

	results, err := RunScenario(context.Background(), sc, store, quiet())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].SnapshotID == "" {
		t.Error("expected first step to be saved")
	}
	if results[0].Summary.Max != 22.5 {
		t.Errorf("expected max 22.5, got %v", results[0].Summary.Max)
	}

	csv, err := os.ReadFile(filepath.Join(dir, "future.csv"))
	if err != nil || !strings.Contains(string(csv), "-10,22.50") {
		t.Errorf("csv export missing: %v", err)
	}
	svg, err := os.ReadFile(filepath.Join(dir, "ring.svg"))
	if err != nil || !strings.Contains(string(svg), "<circle") {
		t.Errorf("svg export missing: %v", err)
	}

	snaps, _ := store.List(context.Background())
	if len(snaps) != 1 || snaps[0].Name != "future" {
		t.Errorf("unexpected snapshots %+v", snaps)
	}
}

func TestRunScenarioNeedsStore(t *testing.T) {
	sc := &Scenario{Steps: []ScenarioStep{{SaveAs: "x"}}}
	if _, err := RunScenario(context.Background(), sc, nil, quiet()); err == nil {
		t.Error("expected error without store")
	}
}

func TestRunScenarioBadExport(t *testing.T) {
	sc := &Scenario{Steps: []ScenarioStep{{Export: filepath.Join(t.TempDir(), "out.bmp")}}}
	if _, err := RunScenario(context.Background(), sc, nil, quiet()); err == nil {
		t.Error("expected error for unsupported format")
	}
}
