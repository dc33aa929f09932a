package utils

import (
	"math"
)

func ConstArray(n int, val float64) (v []float64) {
	v = make([]float64, n)
	for i := range v {
		v[i] = val
	}
	return
}

// POW raises x to an integer power by binary exponentiation, the same
// multiplication sequence math.Pow uses for its integer path, so the two
// agree to within an ulp. Exponents beyond the hot-loop range fall back
// to math.Pow directly.
func POW(x float64, p int) (y float64) {
	var (
		n = p
	)
	if n < 0 {
		n = -n
	}
	if n > 8 {
		return math.Pow(x, float64(p))
	}
	y = 1.
	for ; n != 0; n >>= 1 {
		if n&1 == 1 {
			y *= x
		}
		x *= x
	}
	if p < 0 {
		y = 1. / y
	}
	return
}
