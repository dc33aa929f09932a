package variables

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mphflow/goic/field"
	"github.com/mphflow/goic/mesh"
	"github.com/mphflow/goic/types"
)

func TestLayoutOrdering(t *testing.T) {
	{ // Test the five equation layout for two fluids in 2D
		l := NewLayout(2, 2, types.MDL_FiveEqn, 0)
		assert.Equal(t, 0, l.ContBeg())
		assert.Equal(t, 2, l.ContEnd())
		assert.Equal(t, 2, l.MomBeg())
		assert.Equal(t, 4, l.MomEnd())
		assert.Equal(t, 4, l.E())
		assert.Equal(t, 5, l.AdvBeg())
		assert.Equal(t, 7, l.AdvEnd())
		assert.Equal(t, 7, l.NumVars())
	}
	{ // Test the gamma/pi_inf formulation always advects two fields
		l := NewLayout(1, 3, types.MDL_GammaPi, 0)
		assert.Equal(t, 2, l.NumAdv())
		assert.Equal(t, 7, l.NumVars())
	}
	{ // Test trailing extra fields extend the allocation only
		l := NewLayout(1, 1, types.MDL_FourEqn, 3)
		assert.Equal(t, 1, l.NumAdv())
		assert.Equal(t, 4, l.AdvEnd())
		assert.Equal(t, 7, l.NumVars())
	}
	{ // Test invalid shapes are rejected
		assert.Panics(t, func() { NewLayout(0, 2, types.MDL_FiveEqn, 0) })
		assert.Panics(t, func() { NewLayout(1, 4, types.MDL_FiveEqn, 0) })
	}
}

func TestFluidLitGamma(t *testing.T) {
	// stored Gamma = 1/(gamma-1), so gamma = 1.4 stores 2.5
	fl := Fluid{Gamma: 2.5}
	assert.True(t, near(fl.LitGamma(), 1.4))
}

func TestAssignBlend(t *testing.T) {
	var (
		lay = NewLayout(1, 1, types.MDL_FiveEqn, 0)
		g   = mesh.NewUniform(types.GEOM_Cartesian, [3]int{4, 1, 1},
			[3]float64{0, 0, 0}, [3]float64{1, 0, 0})
		mx = NewMixture(g, lay)
		q  = field.NewPrimitive(g.NumCells(), lay.NumVars())
		st = &State{
			Velocity: [3]float64{3, 0, 0},
			Pressure: 10,
			AlphaRho: []float64{2},
			Alpha:    []float64{1},
		}
	)
	{ // Test eta one overwrites the cell outright
		mx.AssignCellState(st, 1, 0, 0, 1., q)
		assert.Equal(t, 2., q.Vars[lay.ContBeg()].DataP[1])
		assert.Equal(t, 3., q.Vars[lay.MomBeg()].DataP[1])
		assert.Equal(t, 10., q.Vars[lay.E()].DataP[1])
		assert.Equal(t, 1., q.Vars[lay.AdvBeg()].DataP[1])
	}
	{ // Test eta zero leaves the cell untouched
		mx.AssignCellState(st, 2, 0, 0, 0., q)
		assert.Equal(t, 0., q.Vars[lay.E()].DataP[2])
	}
	{ // Test a partial blend mixes against the current cell value
		q.Vars[lay.E()].DataP[3] = 4.
		mx.AssignCellState(st, 3, 0, 0, 0.25, q)
		assert.True(t, near(q.Vars[lay.E()].DataP[3], 0.25*10.+0.75*4.))
	}
	{ // Test repeated partial blends compound
		prev := q.Vars[lay.E()].DataP[3]
		mx.AssignCellState(st, 3, 0, 0, 0.5, q)
		assert.True(t, near(q.Vars[lay.E()].DataP[3], 0.5*10.+0.5*prev))
	}
	{ // Test untouched neighbor cells stay zero
		assert.Equal(t, 0., q.Vars[lay.E()].DataP[0])
	}
}

func TestAssignGammaPiFields(t *testing.T) {
	var (
		lay = NewLayout(1, 1, types.MDL_GammaPi, 0)
		g   = mesh.NewUniform(types.GEOM_Cartesian, [3]int{2, 1, 1},
			[3]float64{0, 0, 0}, [3]float64{1, 0, 0})
		mx = NewMixture(g, lay)
		q  = field.NewPrimitive(g.NumCells(), lay.NumVars())
		st = &State{
			Pressure: 1,
			AlphaRho: []float64{1},
			Gamma:    2.5,
			PiInf:    7.2,
		}
	)
	mx.AssignCellState(st, 0, 0, 0, 1., q)
	assert.Equal(t, 2.5, q.Vars[lay.AdvBeg()].DataP[0])
	assert.Equal(t, 7.2, q.Vars[lay.AdvBeg()+1].DataP[0])
}

func near(a, b float64, tolI ...float64) (l bool) {
	var (
		tol = 1.e-08
	)
	if len(tolI) != 0 {
		tol = tolI[0]
	}
	bound := math.Max(tol, tol*math.Abs(a))
	val := math.Abs(a - b)
	if val <= bound {
		l = true
	} else {
		fmt.Printf("Diff = %v, Left = %v, Right = %v\n", val, a, b)
	}
	return
}
