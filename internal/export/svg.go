package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/warpsim/internal/metric"
	"github.com/san-kum/warpsim/internal/viz"
)

const svgBackground = "#0a0a0a"

func svgHeader(sb *strings.Builder, width, height int) {
	fmt.Fprintf(sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, svgBackground)
}

// CurveSVG draws a 2D sample as a polyline fitted to the image with 10%
// padding. The y = 0 axis is drawn when it falls inside the frame.
func CurveSVG(points []metric.Point2D, width, height int, strokeColor string) string {
	if len(points) < 2 {
		return ""
	}

	minX, maxX := points[0].X, points[0].X
	minY, maxY := points[0].Y, points[0].Y
	for _, p := range points {
		minX, maxX = min(minX, p.X), max(maxX, p.X)
		minY, maxY = min(minY, p.Y), max(maxY, p.Y)
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	maxX += rangeX * 0.1
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeX = maxX - minX
	rangeY = maxY - minY

	toX := func(x float64) float64 { return (x - minX) / rangeX * float64(width) }
	toY := func(y float64) float64 { return float64(height) - (y-minY)/rangeY*float64(height) }

	var sb strings.Builder
	svgHeader(&sb, width, height)
	if minY < 0 && maxY > 0 {
		fmt.Fprintf(&sb, `<line x1="0" y1="%.1f" x2="%d" y2="%.1f" stroke="#333333" stroke-width="1"/>
`, toY(0), width, toY(0))
	}
	fmt.Fprintf(&sb, `<path fill="none" stroke="%s" stroke-width="1.5" d="M`, strokeColor)
	for i, p := range points {
		if i == 0 {
			fmt.Fprintf(&sb, "%.1f,%.1f", toX(p.X), toY(p.Y))
		} else {
			fmt.Fprintf(&sb, " L%.1f,%.1f", toX(p.X), toY(p.Y))
		}
	}
	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}

// CloudSVG projects a 3D sample through cam and draws the wireframe grid
// with a dot on every visible sample.
func CloudSVG(samples []metric.GridSample, cam *viz.Camera, width, height int, strokeColor string) string {
	if len(samples) == 0 || cam == nil {
		return ""
	}
	pts := viz.ProjectCloud(samples, cam, width, height)

	var sb strings.Builder
	svgHeader(&sb, width, height)
	fmt.Fprintf(&sb, `<g stroke="%s" stroke-width="0.8" stroke-opacity="0.6">
`, strokeColor)
	for _, e := range viz.GridEdges(len(pts)) {
		a, b := pts[e[0]], pts[e[1]]
		if !a.Visible || !b.Visible {
			continue
		}
		fmt.Fprintf(&sb, `<line x1="%d" y1="%d" x2="%d" y2="%d"/>
`, a.X, a.Y, b.X, b.Y)
	}
	fmt.Fprintf(&sb, "</g>\n<g fill=\"%s\">\n", strokeColor)
	for _, p := range pts {
		if p.Visible {
			fmt.Fprintf(&sb, `<circle cx="%d" cy="%d" r="1.5"/>
`, p.X, p.Y)
		}
	}
	sb.WriteString("</g>\n</svg>")
	return sb.String()
}
