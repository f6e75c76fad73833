package metric

import (
	"math"
	"math/big"
	"strconv"
	"strings"
)

// Decimals is the fixed precision of the 2D output contract.
const Decimals = 2

// Record2D is the display form of a 2D point: integer x, y as a fixed
// two-decimal string.
type Record2D struct {
	X int    `json:"x"`
	Y string `json:"y"`
}

// Record3D exposes both the raw grid triple and the scaled plotting triple.
type Record3D struct {
	Raw    Point3D `json:"raw"`
	Scaled Point3D `json:"scaled"`
}

func (p Point2D) Record() Record2D {
	return Record2D{X: int(p.X), Y: FormatFixed(p.Y, Decimals)}
}

func (s GridSample) Record() Record3D {
	return Record3D{Raw: s.Raw, Scaled: s.Scaled}
}

func Records2D(pts []Point2D) []Record2D {
	out := make([]Record2D, len(pts))
	for i, p := range pts {
		out[i] = p.Record()
	}
	return out
}

func Records3D(samples []GridSample) []Record3D {
	out := make([]Record3D, len(samples))
	for i, s := range samples {
		out[i] = s.Record()
	}
	return out
}

var ten = big.NewInt(10)

// FormatFixed formats v with the given number of decimals using the same
// rules as ECMAScript Number.prototype.toFixed: the exact binary value is
// rounded with ties away from zero, negative zero prints unsigned, and
// magnitudes of 1e21 or more fall back to exponent form.
func FormatFixed(v float64, digits int) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	}
	if digits < 0 {
		digits = 0
	}

	neg := v < 0
	a := math.Abs(v)
	if a >= 1e21 {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}

	scale := new(big.Int).Exp(ten, big.NewInt(int64(digits)), nil)
	x := new(big.Float).SetPrec(1024).SetFloat64(a)
	x.Mul(x, new(big.Float).SetPrec(1024).SetInt(scale))
	x.Add(x, new(big.Float).SetPrec(1024).SetFloat64(0.5))
	n, _ := x.Int(nil)

	s := n.String()
	if digits > 0 {
		if len(s) <= digits {
			s = strings.Repeat("0", digits-len(s)+1) + s
		}
		s = s[:len(s)-digits] + "." + s[len(s)-digits:]
	}
	if neg {
		s = "-" + s
	}
	return s
}
