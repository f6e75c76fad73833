package optim

import (
	"fmt"
	"sort"

	"github.com/san-kum/warpsim/internal/analysis"
	"github.com/san-kum/warpsim/internal/metric"
)

// Objectives are the named scores the CLI can minimise. Each samples the
// 2D curve of mode at the candidate parameters.
func Objectives(mode metric.Mode) map[string]Objective {
	summary := func(p metric.Params) analysis.Summary {
		return analysis.Summarize(metric.Sample2D(mode, p, metric.Domain2D))
	}
	return map[string]Objective{
		"min":  func(p metric.Params) float64 { return summary(p).Min },
		"peak": func(p metric.Params) float64 { return -summary(p).Max },
		"mean": func(p metric.Params) float64 { return summary(p).Mean },
		"flat": func(p metric.Params) float64 {
			s := summary(p)
			return s.Max - s.Min
		},
		"energy": func(p metric.Params) float64 {
			return analysis.TotalEnergy(analysis.EnergyProfile(p.WarpStrength, metric.Domain2D))
		},
	}
}

func ObjectiveNames() []string {
	names := make([]string, 0, 5)
	for name := range Objectives(metric.Time) {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func ObjectiveFor(mode metric.Mode, name string) (Objective, error) {
	obj, ok := Objectives(mode)[name]
	if !ok {
		return nil, fmt.Errorf("optim: unknown objective %q (available: %v)", name, ObjectiveNames())
	}
	return obj, nil
}
