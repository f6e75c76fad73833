// Package analysis derives read-only statistics from sampled curves.
//
//   - [Summarize]: extrema, mean and sign changes of a 2D sample
//   - [Spectrum]: power spectrum of a curve
//   - [EnergyProfile]: warp energy density along the x axis
//   - [Sweep]: slider sweep recording the curve's envelope
//
// Nothing here feeds back into sampling; the results are for display.
package analysis
