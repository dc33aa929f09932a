package utils

import (
	"fmt"

	"gonum.org/v1/gonum/blas/blas64"
	"gonum.org/v1/gonum/mat"
)

type Vector struct {
	V     *mat.VecDense
	DataP []float64
}

func NewVector(n int, dataO ...[]float64) (v Vector) {
	var (
		data []float64
	)
	if len(dataO) != 0 {
		data = dataO[0]
		if len(data) != n {
			err := fmt.Errorf("mismatch in allocation: NewVector n = %v, len(data[0]) = %v\n", n, len(data))
			panic(err)
		}
	} else {
		data = make([]float64, n)
	}
	v = Vector{
		mat.NewVecDense(n, data),
		data,
	}
	return
}

func NewVectorConstant(n int, val float64) (v Vector) {
	v = NewVector(n, ConstArray(n, val))
	return
}

// Dims, At and T minimally satisfy the mat.Matrix interface.
func (v Vector) Dims() (r, c int)         { return v.V.Dims() }
func (v Vector) At(i, j int) float64      { return v.V.At(i, j) }
func (v Vector) T() mat.Matrix            { return v.V.T() }
func (v Vector) AtVec(i int) float64      { return v.V.AtVec(i) }
func (v Vector) RawVector() blas64.Vector { return v.V.RawVector() }
func (v Vector) Len() int                 { return v.V.Len() }

// Chainable (extended) methods
func (v Vector) Add(a float64) Vector {
	for i := range v.DataP {
		v.DataP[i] += a
	}
	return v
}

func (v Vector) Scale(a float64) Vector {
	for i := range v.DataP {
		v.DataP[i] *= a
	}
	return v
}

func (v Vector) Apply(f func(float64) float64) Vector {
	for i, val := range v.DataP {
		v.DataP[i] = f(val)
	}
	return v
}

func (v Vector) POW(p int) Vector {
	for i, val := range v.DataP {
		v.DataP[i] = POW(val, p)
	}
	return v
}

func (v Vector) Copy() (r Vector) {
	r = NewVector(v.Len())
	copy(r.DataP, v.DataP)
	return
}

func (v Vector) Min() (min float64) {
	min = v.DataP[0]
	for _, val := range v.DataP {
		if val < min {
			min = val
		}
	}
	return
}

func (v Vector) Max() (max float64) {
	max = v.DataP[0]
	for _, val := range v.DataP {
		if val > max {
			max = val
		}
	}
	return
}
