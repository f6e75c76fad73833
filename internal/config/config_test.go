package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/warpsim/internal/metric"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Mode != metric.Time {
		t.Errorf("expected mode time, got %s", cfg.Mode)
	}
	if cfg.View != metric.View2D {
		t.Errorf("expected view 2d, got %s", cfg.View)
	}
	if cfg.Params != (metric.Params{}) {
		t.Errorf("expected zero parameters, got %+v", cfg.Params)
	}
	if cfg.FPS <= 0 {
		t.Error("fps should be positive")
	}
}

func TestLoadSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "warpsim.yaml")
	cfg := DefaultConfig()
	cfg.Mode = metric.Warp
	cfg.View = metric.View3D
	cfg.Params = metric.Params{WarpStrength: 0.4, RotationDeg: 90}

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.Mode != metric.Warp || loaded.View != metric.View3D {
		t.Errorf("mode/view not restored: %s/%s", loaded.Mode, loaded.View)
	}
	if loaded.Params != cfg.Params {
		t.Errorf("params not restored: %+v", loaded.Params)
	}
}

func TestLoadClampsAndDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "warpsim.yaml")
	data := "mode: tensor\nfps: 0\nparams:\n  tensor: 42\n  lambda: -9\n  rotation_deg: 370\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Mode != metric.Tensor {
		t.Errorf("expected tensor mode, got %s", cfg.Mode)
	}
	if cfg.Params.Tensor != 10 || cfg.Params.Lambda != -5 {
		t.Errorf("expected clamped params, got %+v", cfg.Params)
	}
	if cfg.Params.RotationDeg != 10 {
		t.Errorf("expected rotation wrapped to 10, got %v", cfg.Params.RotationDeg)
	}
	if cfg.FPS != DefaultFPS {
		t.Errorf("expected default fps, got %d", cfg.FPS)
	}
}

func TestLoadIntoKeepsUnsetKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "warpsim.yaml")
	if err := os.WriteFile(path, []byte("params:\n  lambda: 2\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg := GetPreset("time", "future").Clone()
	if err := LoadInto(path, cfg); err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Params.Time != 5 {
		t.Errorf("expected preset time to survive, got %v", cfg.Params.Time)
	}
	if cfg.Params.Lambda != 2 {
		t.Errorf("expected lambda from file, got %v", cfg.Params.Lambda)
	}
	if GetPreset("time", "future").Params.Lambda != 1 {
		t.Error("preset table was mutated")
	}
}

func TestLoadRejectsBadInput(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name string
		data string
	}{
		{"unknown mode", "mode: gravity\n"},
		{"nan param", "params:\n  time: .nan\n"},
		{"infinite param", "params:\n  warp_strength: .inf\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name+".yaml")
			if err := os.WriteFile(path, []byte(tt.data), 0644); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(path); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		name string
		in   metric.Params
		want metric.Params
	}{
		{"inside", metric.Params{Time: 1, Lambda: -2}, metric.Params{Time: 1, Lambda: -2}},
		{"upper bounds", metric.Params{Time: 11, Tensor: 10.1, Lambda: 6, WarpStrength: 99}, metric.Params{Time: 10, Tensor: 10, Lambda: 5, WarpStrength: 10}},
		{"lower bounds", metric.Params{Time: -11, Tensor: -10.1, Lambda: -6, WarpStrength: -99}, metric.Params{Time: -10, Tensor: -10, Lambda: -5, WarpStrength: -10}},
		{"rotation 360 wraps", metric.Params{RotationDeg: 360}, metric.Params{RotationDeg: 0}},
		{"negative rotation wraps", metric.Params{RotationDeg: -90}, metric.Params{RotationDeg: 270}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Clamp(tt.in); got != tt.want {
				t.Errorf("Clamp(%+v) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestBoundaryValuesSurviveClamp(t *testing.T) {
	for _, r := range Ranges {
		for _, v := range []float64{r.Min, r.Max} {
			got := r.Clamp(v)
			want := v
			if r.Wrap && v == r.Max {
				want = r.Min
			}
			if got != want {
				t.Errorf("%s: Clamp(%v) = %v, want %v", r.Name, v, got, want)
			}
		}
	}
}

func TestSnap(t *testing.T) {
	p := Snap(metric.Params{Time: 0.30000000000000004, Tensor: 1.26, Lambda: -0.04, RotationDeg: 359.6})
	if p.Time != 0.3 {
		t.Errorf("time: got %v", p.Time)
	}
	if p.Tensor != 1.3 {
		t.Errorf("tensor: got %v", p.Tensor)
	}
	if p.Lambda != 0 {
		t.Errorf("lambda: got %v", p.Lambda)
	}
	if p.RotationDeg != 0 {
		t.Errorf("rotation: got %v", p.RotationDeg)
	}
}

func TestNudge(t *testing.T) {
	p := metric.Params{}
	for i := 0; i < 3; i++ {
		var err error
		p, err = Nudge(p, "time", 1)
		if err != nil {
			t.Fatal(err)
		}
	}
	if p.Time != 0.3 {
		t.Errorf("expected 0.3 after three steps, got %v", p.Time)
	}

	p = metric.Params{Lambda: 5}
	p, _ = Nudge(p, "lambda", 1)
	if p.Lambda != 5 {
		t.Errorf("expected lambda to saturate at 5, got %v", p.Lambda)
	}

	if _, err := Nudge(p, "gravity", 1); err == nil {
		t.Error("expected error for unknown parameter")
	}
}

func TestTick(t *testing.T) {
	p := metric.Params{RotationDeg: 358}
	p = Tick(p)
	if p.RotationDeg != 359 {
		t.Errorf("expected 359, got %v", p.RotationDeg)
	}
	p = Tick(p)
	if p.RotationDeg != 0 {
		t.Errorf("expected wrap to 0, got %v", p.RotationDeg)
	}

	q := metric.Params{}
	for i := 0; i < 720; i++ {
		q = Tick(q)
	}
	if q.RotationDeg != 0 {
		t.Errorf("expected 0 after two turns, got %v", q.RotationDeg)
	}
}

func TestGetSet(t *testing.T) {
	p := metric.Params{}
	for i, name := range ParamNames() {
		var err error
		p, err = Set(p, name, float64(i+1))
		if err != nil {
			t.Fatal(err)
		}
		v, err := Get(p, name)
		if err != nil || v != float64(i+1) {
			t.Errorf("%s: Get = %v, %v", name, v, err)
		}
	}
	if _, err := Get(p, "nope"); err == nil {
		t.Error("expected error for unknown parameter")
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("warp", "bubble")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Params.WarpStrength != 0.5 {
		t.Errorf("expected warp strength 0.5, got %f", cfg.Params.WarpStrength)
	}
	if cfg.Mode != metric.Warp {
		t.Errorf("expected warp mode, got %s", cfg.Mode)
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("time", "nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
	if cfg := GetPreset("nonexistent", "flat"); cfg != nil {
		t.Error("expected nil for nonexistent mode")
	}
}

func TestPresetsAreInRange(t *testing.T) {
	for mode, presets := range Presets {
		for name, cfg := range presets {
			if cfg.Mode.String() != mode {
				t.Errorf("%s/%s: mode %s", mode, name, cfg.Mode)
			}
			if Clamp(cfg.Params) != cfg.Params {
				t.Errorf("%s/%s: params out of range %+v", mode, name, cfg.Params)
			}
		}
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets("tensor")
	if len(presets) == 0 {
		t.Error("expected presets for tensor")
	}
	for i := 1; i < len(presets); i++ {
		if presets[i-1] > presets[i] {
			t.Errorf("presets not sorted: %v", presets)
		}
	}

	if presets := ListPresets("nonexistent"); presets != nil {
		t.Error("expected nil for nonexistent mode")
	}
}

func TestApplyPreset(t *testing.T) {
	cfg := DefaultConfig()
	cfg.FPS = 30
	cfg.ApplyPreset(GetPreset("warp", "ring"))
	if cfg.Mode != metric.Warp || cfg.View != metric.View3D || !cfg.Animate {
		t.Errorf("preset not applied: %+v", cfg)
	}
	if cfg.FPS != 30 || cfg.Theme != DefaultTheme {
		t.Errorf("runtime settings changed: %+v", cfg)
	}
}
