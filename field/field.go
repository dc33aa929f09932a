package field

import (
	"fmt"

	"github.com/mphflow/goic/types"
	"github.com/mphflow/goic/utils"
)

// Primitive holds the primitive-variable state, one flat scalar per
// variable over the grid cells, x-fastest ordering matching mesh.Grid.Index.
type Primitive struct {
	NumCells int
	Vars     []utils.Vector
}

func NewPrimitive(numCells, nVars int) (q *Primitive) {
	if nVars < 1 || numCells < 1 {
		panic(fmt.Errorf("unable to allocate field with %d vars over %d cells", nVars, numCells))
	}
	q = &Primitive{
		NumCells: numCells,
		Vars:     make([]utils.Vector, nVars),
	}
	for n := range q.Vars {
		q.Vars[n] = utils.NewVector(numCells)
	}
	return
}

func (q *Primitive) NumVars() int {
	return len(q.Vars)
}

func (q *Primitive) At(n, idx int) float64 {
	return q.Vars[n].DataP[idx]
}

func (q *Primitive) Set(n, idx int, val float64) {
	q.Vars[n].DataP[idx] = val
}

// Ownership is the persistent per-cell record of which patch last claimed
// the cell in full. It survives across the whole patch sequence, so later
// patches can gate on it and smoothed donors can be recognized. The same
// storage serves as the marker grid for immersed-boundary patches.
type Ownership struct {
	NumCells int
	ID       []types.PatchID
}

func NewOwnership(numCells int) (o *Ownership) {
	o = &Ownership{
		NumCells: numCells,
		ID:       make([]types.PatchID, numCells),
	}
	return
}

func (o *Ownership) Get(idx int) types.PatchID {
	return o.ID[idx]
}

func (o *Ownership) Claim(idx int, id types.PatchID) {
	o.ID[idx] = id
}

// Count reports how many cells the given patch currently owns.
func (o *Ownership) Count(id types.PatchID) (n int) {
	for _, owner := range o.ID {
		if owner == id {
			n++
		}
	}
	return
}
