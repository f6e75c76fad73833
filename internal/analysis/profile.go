package analysis

import (
	"github.com/san-kum/warpsim/internal/config"
	"github.com/san-kum/warpsim/internal/metric"
)

type EnergyPoint struct {
	X             float64 `json:"x"`
	Shape         float64 `json:"shape"`
	EnergyDensity float64 `json:"energyDensity"`
}

// EnergyProfile evaluates WarpMetric along y = 0 for every x in d.
func EnergyProfile(warpStrength float64, d metric.Domain) []EnergyPoint {
	xs := d.Values()
	out := make([]EnergyPoint, len(xs))
	for i, x := range xs {
		r := metric.WarpMetric(float64(x), 0, warpStrength)
		out[i] = EnergyPoint{X: float64(x), Shape: r.Shape, EnergyDensity: r.EnergyDensity}
	}
	return out
}

// TotalEnergy sums the energy density over a profile, one unit per sample.
func TotalEnergy(profile []EnergyPoint) float64 {
	sum := 0.0
	for _, p := range profile {
		sum += p.EnergyDensity
	}
	return sum
}

type SweepPoint struct {
	Param float64 `json:"param"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
}

// Sweep walks one slider across its range in evenly spaced stops and
// records the envelope of the 2D curve at each stop.
func Sweep(mode metric.Mode, base metric.Params, name string, steps int) ([]SweepPoint, error) {
	r, err := config.RangeFor(name)
	if err != nil {
		return nil, err
	}
	if steps < 2 {
		steps = 2
	}
	stride := (r.Max - r.Min) / float64(steps-1)

	out := make([]SweepPoint, 0, steps)
	for i := 0; i < steps; i++ {
		v := r.Clamp(r.Snap(r.Min + float64(i)*stride))
		p, _ := config.Set(base, name, v)
		s := Summarize(metric.Sample2D(mode, p, metric.Domain2D))
		out = append(out, SweepPoint{Param: v, Min: s.Min, Max: s.Max})
	}
	return out, nil
}
