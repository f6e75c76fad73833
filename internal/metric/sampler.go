package metric

import "math"

const (
	// Sigma is the width of the warp shape function.
	Sigma = 2.0

	// Thickness is the bubble wall thickness. No formula reads it; it is
	// kept so the warp interface matches the published parameter list.
	Thickness = 1.0

	// PlotScale multiplies 3D samples for the projection stage.
	PlotScale = 20.0
)

// WarpMetric returns the simplified Alcubierre-style shape function and the
// derived energy density at (x, y). This is not the physical shape function.
func WarpMetric(x, y, warpStrength float64) WarpResult {
	r := math.Sqrt(x*x + y*y)
	d := r - warpStrength*10
	shape := math.Exp(-(d * d) / (2 * Sigma * Sigma))
	return WarpResult{
		Shape:         shape,
		EnergyDensity: -math.Abs(warpStrength) * shape / (8 * math.Pi),
	}
}

// Rotate applies a counter-clockwise rotation of deg degrees to (i, j).
// A zero angle returns the inputs untouched.
func Rotate(i, j, deg float64) (float64, float64) {
	if deg == 0 {
		return i, j
	}
	sin, cos := math.Sincos(deg * math.Pi / 180)
	return i*cos - j*sin, i*sin + j*cos
}

// timeSign is -1 for negative t and +1 otherwise, including t == 0.
func timeSign(t float64) float64 {
	if t < 0 {
		return -1
	}
	return 1
}

// Eval2D evaluates the selected curve at x.
func Eval2D(mode Mode, p Params, x float64) float64 {
	switch mode {
	case Time:
		d := x - p.Time
		return timeSign(p.Time)*d*d/10 + p.Lambda*math.Cos(x/2)
	case Tensor:
		return p.Tensor*x*x/10 + p.Lambda*math.Sin(x/2)
	case Warp:
		return WarpMetric(x, 0, p.WarpStrength).Shape * p.WarpStrength * 5
	}
	return 0
}

// Eval3D evaluates the selected surface at an already rotated coordinate.
func Eval3D(mode Mode, p Params, rotX, rotY float64) float64 {
	r := math.Sqrt(rotX*rotX + rotY*rotY)
	switch mode {
	case Time:
		d := r - p.Time
		return d*d/5 + p.Lambda*math.Cos(r/2)
	case Tensor:
		return p.Tensor*r*r/5 + p.Lambda*math.Sin(r/2)
	case Warp:
		return WarpMetric(rotX, rotY, p.WarpStrength).Shape * p.WarpStrength * 5
	}
	return 0
}

// Sample2D evaluates the curve at every value of d in ascending order.
func Sample2D(mode Mode, p Params, d Domain) []Point2D {
	xs := d.Values()
	pts := make([]Point2D, len(xs))
	for k, x := range xs {
		fx := float64(x)
		pts[k] = Point2D{X: fx, Y: Eval2D(mode, p, fx)}
	}
	return pts
}

// Sample3D evaluates the surface over d x d, outer loop over i, inner over j.
// Index k maps back to (d.Min + k/n*d.Step, d.Min + k%n*d.Step).
func Sample3D(mode Mode, p Params, d Domain) []GridSample {
	vals := d.Values()
	out := make([]GridSample, 0, len(vals)*len(vals))
	for _, i := range vals {
		for _, j := range vals {
			fi, fj := float64(i), float64(j)
			rx, ry := Rotate(fi, fj, p.RotationDeg)
			z := Eval3D(mode, p, rx, ry)
			out = append(out, GridSample{
				I:       i,
				J:       j,
				Rotated: Point2D{X: rx, Y: ry},
				Raw:     Point3D{X: fi, Y: fj, Z: z},
				Scaled:  Point3D{X: fi * PlotScale, Y: fj * PlotScale, Z: z * PlotScale},
			})
		}
	}
	return out
}
