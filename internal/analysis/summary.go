package analysis

import (
	"math"

	"github.com/san-kum/warpsim/internal/metric"
)

type Summary struct {
	Count         int     `json:"count"`
	Min           float64 `json:"min"`
	Max           float64 `json:"max"`
	ArgMin        float64 `json:"argmin"`
	ArgMax        float64 `json:"argmax"`
	Mean          float64 `json:"mean"`
	ZeroCrossings int     `json:"zeroCrossings"`
}

// Summarize returns the zero Summary for an empty sample.
func Summarize(pts []metric.Point2D) Summary {
	if len(pts) == 0 {
		return Summary{}
	}

	s := Summary{
		Count:  len(pts),
		Min:    math.Inf(1),
		Max:    math.Inf(-1),
		ArgMin: pts[0].X,
		ArgMax: pts[0].X,
	}
	sum := 0.0
	prev := 0
	for _, p := range pts {
		sum += p.Y
		if p.Y < s.Min {
			s.Min, s.ArgMin = p.Y, p.X
		}
		if p.Y > s.Max {
			s.Max, s.ArgMax = p.Y, p.X
		}
		sign := 0
		if p.Y > 0 {
			sign = 1
		} else if p.Y < 0 {
			sign = -1
		}
		if sign != 0 {
			if prev != 0 && sign != prev {
				s.ZeroCrossings++
			}
			prev = sign
		}
	}
	s.Mean = sum / float64(len(pts))
	return s
}
