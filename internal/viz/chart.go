package viz

import (
	"fmt"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/warpsim/internal/metric"
)

// Chart2D plots a 2D sample as an ASCII line chart. asciigraph spaces the
// points evenly, which matches the unit-step grid.
func Chart2D(pts []metric.Point2D, width, height int, caption string) string {
	if len(pts) == 0 {
		return ""
	}
	ys := make([]float64, len(pts))
	for i, p := range pts {
		ys[i] = p.Y
	}
	opts := []asciigraph.Option{
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Precision(2),
	}
	if caption != "" {
		opts = append(opts, asciigraph.Caption(caption))
	}
	return asciigraph.Plot(ys, opts...)
}

// Caption2D describes the x span of a sample, e.g. "time: x ∈ [-10, 10]".
func Caption2D(mode metric.Mode, pts []metric.Point2D) string {
	if len(pts) == 0 {
		return mode.String()
	}
	return fmt.Sprintf("%s: x ∈ [%g, %g]", mode, pts[0].X, pts[len(pts)-1].X)
}
