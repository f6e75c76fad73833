package config

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/san-kum/warpsim/internal/metric"
)

var ErrUnknownParam = errors.New("config: unknown parameter")

// Range describes one slider. Wrap sliders are half-open [Min, Max) and
// wrap around instead of saturating.
type Range struct {
	Name    string  `yaml:"name" json:"name"`
	Label   string  `yaml:"label" json:"label"`
	Min     float64 `yaml:"min" json:"min"`
	Max     float64 `yaml:"max" json:"max"`
	Step    float64 `yaml:"step" json:"step"`
	Default float64 `yaml:"default" json:"default"`
	Wrap    bool    `yaml:"wrap" json:"wrap"`
}

var Ranges = []Range{
	{Name: "time", Label: "time (t)", Min: -10, Max: 10, Step: 0.1},
	{Name: "tensor", Label: "tensor (T)", Min: -10, Max: 10, Step: 0.1},
	{Name: "lambda", Label: "lambda (Λ)", Min: -5, Max: 5, Step: 0.1},
	{Name: "warp", Label: "warp (W)", Min: -10, Max: 10, Step: 0.1},
	{Name: "rotation", Label: "rotation (°)", Min: 0, Max: 360, Step: 1, Wrap: true},
}

func ParamNames() []string {
	names := make([]string, len(Ranges))
	for i, r := range Ranges {
		names[i] = r.Name
	}
	return names
}

func RangeFor(name string) (Range, error) {
	for _, r := range Ranges {
		if r.Name == name {
			return r, nil
		}
	}
	return Range{}, fmt.Errorf("%w: %s", ErrUnknownParam, name)
}

// Defaults is the ParameterSet every slider starts from.
func Defaults() metric.Params {
	var p metric.Params
	for _, r := range Ranges {
		p, _ = Set(p, r.Name, r.Default)
	}
	return p
}

func Get(p metric.Params, name string) (float64, error) {
	switch name {
	case "time":
		return p.Time, nil
	case "tensor":
		return p.Tensor, nil
	case "lambda":
		return p.Lambda, nil
	case "warp":
		return p.WarpStrength, nil
	case "rotation":
		return p.RotationDeg, nil
	}
	return 0, fmt.Errorf("%w: %s", ErrUnknownParam, name)
}

// Set returns a copy of p with one field replaced; the value is not clamped.
func Set(p metric.Params, name string, v float64) (metric.Params, error) {
	switch name {
	case "time":
		return p.WithTime(v), nil
	case "tensor":
		return p.WithTensor(v), nil
	case "lambda":
		return p.WithLambda(v), nil
	case "warp":
		return p.WithWarpStrength(v), nil
	case "rotation":
		return p.WithRotation(v), nil
	}
	return p, fmt.Errorf("%w: %s", ErrUnknownParam, name)
}

func (r Range) Clamp(v float64) float64 {
	if r.Wrap {
		span := r.Max - r.Min
		v = math.Mod(v-r.Min, span)
		if v < 0 {
			v += span
		}
		return v + r.Min
	}
	return math.Max(r.Min, math.Min(r.Max, v))
}

// Snap moves v to the nearest step boundary, trimmed to the step's decimals
// so 0.1 steps read back as 0.3 rather than 0.30000000000000004.
func (r Range) Snap(v float64) float64 {
	if r.Step <= 0 {
		return v
	}
	n := math.Round((v - r.Min) / r.Step)
	scale := math.Pow(10, float64(stepDecimals(r.Step)))
	return math.Round((r.Min+n*r.Step)*scale) / scale
}

func stepDecimals(step float64) int {
	s := strconv.FormatFloat(step, 'f', -1, 64)
	if i := strings.IndexByte(s, '.'); i >= 0 {
		return len(s) - i - 1
	}
	return 0
}

// Clamp forces every field into its slider range.
func Clamp(p metric.Params) metric.Params {
	for _, r := range Ranges {
		v, _ := Get(p, r.Name)
		p, _ = Set(p, r.Name, r.Clamp(v))
	}
	return p
}

// Snap quantises every field to its slider step and clamps the result.
func Snap(p metric.Params) metric.Params {
	for _, r := range Ranges {
		v, _ := Get(p, r.Name)
		p, _ = Set(p, r.Name, r.Clamp(r.Snap(v)))
	}
	return p
}

// Nudge moves one slider by dir steps, the way arrow keys move a range input.
func Nudge(p metric.Params, name string, dir int) (metric.Params, error) {
	r, err := RangeFor(name)
	if err != nil {
		return p, err
	}
	v, _ := Get(p, name)
	return Set(p, name, r.Clamp(r.Snap(v+float64(dir)*r.Step)))
}

// Tick advances the rotation by one degree, wrapping at 360. It is the
// animation loop's only mutation.
func Tick(p metric.Params) metric.Params {
	next, _ := Nudge(p, "rotation", 1)
	return next
}
