package config

import (
	"sort"

	"github.com/san-kum/warpsim/internal/metric"
)

var Presets = map[string]map[string]*Config{
	"time": {
		"flat": {
			Mode: metric.Time, View: metric.View2D,
			Params: metric.Params{},
		},
		"future": {
			Mode: metric.Time, View: metric.View2D,
			Params: metric.Params{Time: 5, Lambda: 1},
		},
		"past": {
			Mode: metric.Time, View: metric.View2D,
			Params: metric.Params{Time: -5, Lambda: -1},
		},
		"ripple": {
			Mode: metric.Time, View: metric.View3D, Animate: true,
			Params: metric.Params{Time: 2, Lambda: 3},
		},
	},
	"tensor": {
		"dust": {
			Mode: metric.Tensor, View: metric.View2D,
			Params: metric.Params{Tensor: 0.5},
		},
		"dense": {
			Mode: metric.Tensor, View: metric.View2D,
			Params: metric.Params{Tensor: 5, Lambda: 2},
		},
		"exotic": {
			Mode: metric.Tensor, View: metric.View3D,
			Params: metric.Params{Tensor: -4, Lambda: -1.5},
		},
	},
	"warp": {
		"idle": {
			Mode: metric.Warp, View: metric.View2D,
			Params: metric.Params{},
		},
		"bubble": {
			Mode: metric.Warp, View: metric.View2D,
			Params: metric.Params{WarpStrength: 0.5},
		},
		"ring": {
			Mode: metric.Warp, View: metric.View3D, Animate: true,
			Params: metric.Params{WarpStrength: 0.3, RotationDeg: 45},
		},
		"collapse": {
			Mode: metric.Warp, View: metric.View2D,
			Params: metric.Params{WarpStrength: 10},
		},
	},
}

func GetPreset(mode, preset string) *Config {
	modePresets, ok := Presets[mode]
	if !ok {
		return nil
	}
	cfg, ok := modePresets[preset]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets(mode string) []string {
	modePresets, ok := Presets[mode]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(modePresets))
	for name := range modePresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
