package viz

import (
	"math"

	"github.com/san-kum/warpsim/internal/metric"
)

type Vec3 struct {
	X, Y, Z float64
}

func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }

// Camera projects plot-space points to the canvas. World z (the metric
// value) is drawn upward; RotX tilts the grid toward the viewer.
type Camera struct {
	Distance         float64
	RotX, RotY, RotZ float64
	Zoom             float64
}

func NewCamera() *Camera {
	return &Camera{Distance: 4, RotX: -0.6, Zoom: 1}
}

func (c *Camera) RotateX(a float64) { c.RotX += a }
func (c *Camera) RotateY(a float64) { c.RotY += a }
func (c *Camera) ZoomIn()           { c.Zoom = math.Min(10, c.Zoom*1.2) }
func (c *Camera) ZoomOut()          { c.Zoom = math.Max(0.1, c.Zoom/1.2) }

// worldToCamera maps a scaled sample (x, y, z) into camera axes with z up.
func worldToCamera(p metric.Point3D) Vec3 {
	return Vec3{X: p.X, Y: p.Z, Z: p.Y}
}

func (c *Camera) rotate(p Vec3) Vec3 {
	cx, sx := math.Cos(c.RotX), math.Sin(c.RotX)
	p.Y, p.Z = p.Y*cx-p.Z*sx, p.Y*sx+p.Z*cx
	cy, sy := math.Cos(c.RotY), math.Sin(c.RotY)
	p.X, p.Z = p.X*cy+p.Z*sy, -p.X*sy+p.Z*cy
	cz, sz := math.Cos(c.RotZ), math.Sin(c.RotZ)
	p.X, p.Y = p.X*cz-p.Y*sz, p.X*sz+p.Y*cz
	return p
}

// Project converts a point already normalised to roughly [-1, 1] into screen
// coordinates of a w x h surface. It returns x, y, depth and visibility.
func (c *Camera) Project(p Vec3, w, h int) (int, int, float64, bool) {
	rot := c.rotate(p).Scale(c.Zoom)
	if rot.Z >= c.Distance-0.1 {
		return 0, 0, 0, false
	}
	persp := c.Distance / (c.Distance - rot.Z)
	minDim := float64(h)
	if float64(w) < minDim {
		minDim = float64(w)
	}
	pScale := minDim / 3.0
	sx := int(rot.X*persp*pScale) + w/2
	sy := int(-rot.Y*persp*pScale) + h/2
	return sx, sy, rot.Z, sx >= 0 && sx < w && sy >= 0 && sy < h
}

// Extent is the largest absolute scaled coordinate in the cloud, at least 1.
func Extent(samples []metric.GridSample) float64 {
	ext := 1.0
	for _, s := range samples {
		ext = math.Max(ext, math.Max(math.Abs(s.Scaled.X), math.Max(math.Abs(s.Scaled.Y), math.Abs(s.Scaled.Z))))
	}
	return ext
}

// ScreenPoint is a projected sample.
type ScreenPoint struct {
	X, Y    int
	Depth   float64
	Visible bool
}

// ProjectCloud projects every sample onto a w x h surface. The result keeps
// the row-major order of the input.
func ProjectCloud(samples []metric.GridSample, cam *Camera, w, h int) []ScreenPoint {
	norm := 1 / Extent(samples)
	out := make([]ScreenPoint, len(samples))
	for k, s := range samples {
		x, y, d, ok := cam.Project(worldToCamera(s.Scaled).Scale(norm), w, h)
		out[k] = ScreenPoint{X: x, Y: y, Depth: d, Visible: ok}
	}
	return out
}

// GridEdges lists index pairs joining each sample to its right and lower
// neighbour in a square row-major grid.
func GridEdges(n int) [][2]int {
	side := int(math.Round(math.Sqrt(float64(n))))
	if side*side != n {
		return nil
	}
	edges := make([][2]int, 0, 2*side*(side-1))
	for i := 0; i < side; i++ {
		for j := 0; j < side; j++ {
			k := i*side + j
			if j+1 < side {
				edges = append(edges, [2]int{k, k + 1})
			}
			if i+1 < side {
				edges = append(edges, [2]int{k, k + side})
			}
		}
	}
	return edges
}

// RenderCloud draws the sampled surface onto the canvas, as a wireframe
// mesh when mesh is set and as bare points otherwise.
func RenderCloud(c *Canvas, samples []metric.GridSample, cam *Camera, mesh bool) {
	if c == nil || cam == nil || len(samples) == 0 {
		return
	}
	w, h := c.DotSize()
	pts := ProjectCloud(samples, cam, w, h)
	if mesh {
		for _, e := range GridEdges(len(pts)) {
			a, b := pts[e[0]], pts[e[1]]
			if a.Visible && b.Visible {
				c.DrawLine(a.X, a.Y, b.X, b.Y)
			}
		}
		return
	}
	for _, p := range pts {
		if p.Visible {
			c.Set(p.X, p.Y)
		}
	}
}
