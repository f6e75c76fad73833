// Package metric evaluates the toy spacetime fields plotted by warpsim.
//
// The package is a pure sampler: given a [Params] snapshot, a [Mode] and a
// [Domain] it returns a fresh slice of points. Nothing is cached and no call
// shares mutable state with another, so every function is safe for
// concurrent use.
//
//   - [Sample2D]: one row of 21 points over x in [-10, 10]
//   - [GridSample]: an 11x11 row-major grid over (i, j) in [-5, 5]^2
//   - [WarpMetric]: the simplified warp-bubble shape and energy density
//
// # Example
//
//	p := metric.Params{Time: 5}
//	pts := metric.Sample2D(metric.Time, p, metric.Domain2D)
//	recs := metric.Records2D(pts) // {x: 5, y: "0.00"} ...
//
// # Fidelity
//
// The formulas are illustrative stand-ins, not general relativity. They are
// reproduced exactly, including the sign(0) = +1 tie-break in time mode and
// the unused [Thickness] constant.
package metric
