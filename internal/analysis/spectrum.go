package analysis

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"github.com/san-kum/warpsim/internal/metric"
)

// Spectrum returns the magnitude of the first half of the FFT of the curve,
// zero-padded to the next power of two.
func Spectrum(pts []metric.Point2D) []float64 {
	if len(pts) == 0 {
		return nil
	}

	n := 1
	for n < len(pts) {
		n *= 2
	}
	padded := make([]float64, n)
	for i, p := range pts {
		padded[i] = p.Y
	}

	coeffs := fft.FFTReal(padded)
	ps := make([]float64, n/2)
	for i := range ps {
		ps[i] = cmplx.Abs(coeffs[i])
	}
	return ps
}

// DominantBin is the strongest non-DC bin, or 0 when there is none.
func DominantBin(ps []float64) int {
	best, idx := 0.0, 0
	for i := 1; i < len(ps); i++ {
		if ps[i] > best {
			best, idx = ps[i], i
		}
	}
	return idx
}
