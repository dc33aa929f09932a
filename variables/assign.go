package variables

import (
	"github.com/mphflow/goic/field"
	"github.com/mphflow/goic/mesh"
	"github.com/mphflow/goic/types"
)

/*
Mixture assigns a patch's declared state to grid cells. For a blend weight
eta in [0,1] every assigned variable becomes

	q_new = eta*patch + (1-eta)*q_old

so eta=1 overwrites the cell outright and eta=0 leaves it untouched.
*/
type Mixture struct {
	Grid   *mesh.Grid
	Layout Layout
}

func NewMixture(grid *mesh.Grid, layout Layout) (mx *Mixture) {
	mx = &Mixture{
		Grid:   grid,
		Layout: layout,
	}
	return
}

func (mx *Mixture) AssignCellState(st *State, i, j, k int, eta float64,
	q *field.Primitive) {
	var (
		l   = mx.Layout
		idx = mx.Grid.Index(i, j, k)
	)
	blend := func(n int, patchVal float64) {
		old := q.Vars[n].DataP[idx]
		q.Vars[n].DataP[idx] = eta*patchVal + (1.0-eta)*old
	}
	for f := 0; f < l.NumFluids; f++ {
		blend(l.ContBeg()+f, st.AlphaRho[f])
	}
	for d := 0; d < l.NumDims; d++ {
		blend(l.MomBeg()+d, st.Velocity[d])
	}
	blend(l.E(), st.Pressure)
	if l.ModelEqns == types.MDL_GammaPi {
		blend(l.AdvBeg(), st.Gamma)
		blend(l.AdvBeg()+1, st.PiInf)
	} else {
		for f := 0; f < l.NumAdv(); f++ {
			blend(l.AdvBeg()+f, st.Alpha[f])
		}
	}
}
