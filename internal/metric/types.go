package metric

import (
	"fmt"
	"math"
	"strings"
)

type Mode int

const (
	Time Mode = iota
	Tensor
	Warp
)

var modeNames = [...]string{"time", "tensor", "warp"}

// Modes lists every mode in selector order.
func Modes() []Mode { return []Mode{Time, Tensor, Warp} }

func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return fmt.Sprintf("mode(%d)", int(m))
	}
	return modeNames[m]
}

// Next cycles time -> tensor -> warp -> time.
func (m Mode) Next() Mode { return (m + 1) % Mode(len(modeNames)) }

func ParseMode(s string) (Mode, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range modeNames {
		if n == name {
			return Mode(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

func (m Mode) MarshalText() ([]byte, error) {
	if m < 0 || int(m) >= len(modeNames) {
		return nil, fmt.Errorf("%w: %d", ErrUnknownMode, int(m))
	}
	return []byte(m.String()), nil
}

func (m *Mode) UnmarshalText(b []byte) error {
	v, err := ParseMode(string(b))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

type View int

const (
	View2D View = iota
	View3D
)

func (v View) String() string {
	if v == View3D {
		return "3d"
	}
	return "2d"
}

func (v View) Toggle() View {
	if v == View3D {
		return View2D
	}
	return View3D
}

func ParseView(s string) (View, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "2d":
		return View2D, nil
	case "3d":
		return View3D, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownView, s)
}

func (v View) MarshalText() ([]byte, error) { return []byte(v.String()), nil }

func (v *View) UnmarshalText(b []byte) error {
	parsed, err := ParseView(string(b))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// Params is an immutable snapshot of the slider values. Copy-modify with the
// With* helpers; the sampler never writes to it.
type Params struct {
	Time         float64 `yaml:"time" json:"time"`
	Tensor       float64 `yaml:"tensor" json:"tensor"`
	Lambda       float64 `yaml:"lambda" json:"lambda"`
	WarpStrength float64 `yaml:"warp_strength" json:"warpStrength"`
	RotationDeg  float64 `yaml:"rotation_deg" json:"rotationAngleDegrees"`
}

func (p Params) WithTime(v float64) Params         { p.Time = v; return p }
func (p Params) WithTensor(v float64) Params       { p.Tensor = v; return p }
func (p Params) WithLambda(v float64) Params       { p.Lambda = v; return p }
func (p Params) WithWarpStrength(v float64) Params { p.WarpStrength = v; return p }
func (p Params) WithRotation(v float64) Params     { p.RotationDeg = v; return p }

// Validate reports NaN or infinite fields. The sampler itself accepts any
// float; this is for callers taking input from outside the process.
func (p Params) Validate() error {
	fields := []struct {
		name string
		v    float64
	}{
		{"time", p.Time},
		{"tensor", p.Tensor},
		{"lambda", p.Lambda},
		{"warp", p.WarpStrength},
		{"rotation", p.RotationDeg},
	}
	for _, f := range fields {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return fmt.Errorf("%w: %s=%v", ErrNonFinite, f.name, f.v)
		}
	}
	return nil
}

// Domain is an inclusive integer grid range.
type Domain struct {
	Min, Max, Step int
}

var (
	Domain2D = Domain{Min: -10, Max: 10, Step: 1}
	Domain3D = Domain{Min: -5, Max: 5, Step: 1}
)

// Len is the number of grid values; zero for a malformed domain.
func (d Domain) Len() int {
	if d.Step <= 0 || d.Min > d.Max {
		return 0
	}
	return (d.Max-d.Min)/d.Step + 1
}

func (d Domain) Values() []int {
	n := d.Len()
	vals := make([]int, n)
	for k := 0; k < n; k++ {
		vals[k] = d.Min + k*d.Step
	}
	return vals
}

type Point2D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type Point3D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// GridSample is one grid cell of a 3D sample. Raw is (i, j, z); Scaled is the
// same triple multiplied by PlotScale for the projection stage.
type GridSample struct {
	I, J    int
	Rotated Point2D
	Raw     Point3D
	Scaled  Point3D
}

type WarpResult struct {
	Shape         float64 `json:"shape"`
	EnergyDensity float64 `json:"energyDensity"`
}
