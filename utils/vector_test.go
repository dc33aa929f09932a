package utils

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVector(t *testing.T) {
	{ // Test allocation, backing storage aliasing and the mat interface
		v := NewVector(3, []float64{2, -1, 5})
		assert.Equal(t, 3, v.Len())
		assert.Equal(t, -1., v.AtVec(1))
		v.DataP[1] = 7.
		assert.Equal(t, 7., v.V.AtVec(1)) // DataP aliases the VecDense storage
		r, c := v.Dims()
		assert.Equal(t, 3, r)
		assert.Equal(t, 1, c)
	}
	{ // Test a length mismatch is rejected
		assert.Panics(t, func() { NewVector(2, []float64{1, 2, 3}) })
	}
	{ // Test constant fill
		v := NewVectorConstant(4, 2.5)
		assert.Equal(t, []float64{2.5, 2.5, 2.5, 2.5}, v.DataP)
	}
	{ // Test chainable mutators
		v := NewVector(3, []float64{1, 2, 3}).Scale(2.).Add(1.)
		assert.Equal(t, []float64{3, 5, 7}, v.DataP)
		v.Apply(func(x float64) float64 { return -x })
		assert.Equal(t, []float64{-3, -5, -7}, v.DataP)
	}
	{ // Test Min, Max and Copy independence
		v := NewVector(4, []float64{3, -2, 8, 0})
		assert.Equal(t, -2., v.Min())
		assert.Equal(t, 8., v.Max())
		w := v.Copy()
		w.DataP[0] = 100.
		assert.Equal(t, 3., v.DataP[0])
	}
}

func TestPOW(t *testing.T) {
	{ // Test the unrolled small powers against math.Pow
		for _, x := range []float64{0.3, -1.7, 2.} {
			for p := -8; p <= 8; p++ {
				assert.InDelta(t, math.Pow(x, float64(p)), POW(x, p), 1.e-12)
			}
		}
	}
	{ // Test exact squares and cubes
		assert.Equal(t, 9., POW(3., 2))
		assert.Equal(t, -27., POW(-3., 3))
		assert.Equal(t, 0.25, POW(2., -2))
	}
	{ // Test large exponents fall through to math.Pow
		assert.Equal(t, math.Pow(1.1, 40.), POW(1.1, 40))
	}
	{ // Test Vector.POW applies elementwise
		v := NewVector(3, []float64{1, 2, 3}).POW(2)
		assert.Equal(t, []float64{1, 4, 9}, v.DataP)
	}
}
