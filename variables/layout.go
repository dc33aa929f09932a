package variables

import (
	"fmt"

	"github.com/mphflow/goic/types"
)

/*
Layout fixes the ordering of the primitive-variable field: partial densities
(one per fluid), velocity components (one per active dimension), pressure,
then the advected fields. For the gamma/pi_inf formulation the advected
fields are the two mixture EOS functions; for the multiphase formulations
they are the fluid volume fractions. NumExtra trailing fields (bubble,
hypoelastic, chemistry extensions) are allocated but left to downstream
initialization.
*/
type Layout struct {
	NumFluids int
	NumDims   int
	ModelEqns types.ModelEqns
	NumExtra  int
}

func NewLayout(numFluids, numDims int, modelEqns types.ModelEqns, numExtra int) (l Layout) {
	if numFluids < 1 {
		panic(fmt.Errorf("unable to build variable layout with %d fluids", numFluids))
	}
	if numDims < 1 || numDims > 3 {
		panic(fmt.Errorf("unable to build variable layout with %d dimensions", numDims))
	}
	l = Layout{
		NumFluids: numFluids,
		NumDims:   numDims,
		ModelEqns: modelEqns,
		NumExtra:  numExtra,
	}
	return
}

func (l Layout) ContBeg() int { return 0 }
func (l Layout) ContEnd() int { return l.NumFluids } // exclusive
func (l Layout) MomBeg() int  { return l.NumFluids }
func (l Layout) MomEnd() int  { return l.NumFluids + l.NumDims } // exclusive
func (l Layout) E() int       { return l.MomEnd() }

func (l Layout) AdvBeg() int { return l.E() + 1 }
func (l Layout) AdvEnd() int { return l.AdvBeg() + l.NumAdv() } // exclusive

// NumAdv is the advected-field count: gamma and pi_inf for the gamma/pi_inf
// formulation, one volume fraction per fluid otherwise.
func (l Layout) NumAdv() int {
	if l.ModelEqns == types.MDL_GammaPi {
		return 2
	}
	return l.NumFluids
}

func (l Layout) NumVars() int { return l.AdvEnd() + l.NumExtra }

// Fluid carries the stiffened-gas EOS functions of one constituent in their
// stored form: Gamma = 1/(gamma-1) and PiInf = gamma*pi_inf/(gamma-1).
type Fluid struct {
	Gamma float64
	PiInf float64
}

// LitGamma recovers the literal specific heat ratio.
func (f Fluid) LitGamma() float64 {
	return 1.0/f.Gamma + 1.0
}

// State is the physical state a patch declares for the cells it claims.
type State struct {
	Velocity [3]float64
	Pressure float64
	Rho      float64   // mixture density, used by analytic overrides
	AlphaRho []float64 // partial densities, one per fluid
	Alpha    []float64 // volume fractions, one per fluid
	Gamma    float64   // mixture EOS functions, gamma/pi_inf formulation only
	PiInf    float64
}
