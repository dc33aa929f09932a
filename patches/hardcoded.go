package patches

import (
	"fmt"
	"math"
)

/*
Analytical patches fill an axis-aligned box matching their dimensionality
and then rewrite cell variables through a hardcoded case formula selected
by CaseID. The formulas are compiled-in case studies; adding a case means
registering a new id in hardcodedCases.
*/

// hardcodedFn rewrites primitive variables at one claimed cell.
type hardcodedFn func(gen *Generator, p *Patch, idx int, x, y, z float64)

var hardcodedCases = map[int]hardcodedFn{
	100: sineDensity1D,
	200: pressureBump2D,
	300: pressureBump3D,
}

func hardcodedCase(id int) hardcodedFn {
	fn, ok := hardcodedCases[id]
	if !ok {
		panic(fmt.Errorf("unable to locate hardcoded analytical case %d", id))
	}
	return fn
}

func (gen *Generator) Analytical1D(p *Patch) {
	var (
		g    = gen.Grid
		fn   = hardcodedCase(p.CaseID)
		xMin = p.Centroid[0] - 0.5*p.Length[0]
		xMax = p.Centroid[0] + 0.5*p.Length[0]
	)
	gen.parallelSweep(func(idx int) {
		i, _, _ := g.Coords(idx)
		x := g.Xcc.DataP[i]
		if !gen.claims(p, x >= xMin && x <= xMax, idx) {
			return
		}
		gen.applyCell(p, 1., idx)
		fn(gen, p, idx, x, 0, 0)
	})
}

func (gen *Generator) Analytical2D(p *Patch) {
	var (
		g    = gen.Grid
		fn   = hardcodedCase(p.CaseID)
		xMin = p.Centroid[0] - 0.5*p.Length[0]
		xMax = p.Centroid[0] + 0.5*p.Length[0]
		yMin = p.Centroid[1] - 0.5*p.Length[1]
		yMax = p.Centroid[1] + 0.5*p.Length[1]
	)
	gen.parallelSweep(func(idx int) {
		i, j, _ := g.Coords(idx)
		x, y := g.Xcc.DataP[i], g.Ycc.DataP[j]
		contained := x >= xMin && x <= xMax && y >= yMin && y <= yMax
		if !gen.claims(p, contained, idx) {
			return
		}
		gen.applyCell(p, 1., idx)
		fn(gen, p, idx, x, y, 0)
	})
}

func (gen *Generator) Analytical3D(p *Patch) {
	var (
		g    = gen.Grid
		fn   = hardcodedCase(p.CaseID)
		xMin = p.Centroid[0] - 0.5*p.Length[0]
		xMax = p.Centroid[0] + 0.5*p.Length[0]
		yMin = p.Centroid[1] - 0.5*p.Length[1]
		yMax = p.Centroid[1] + 0.5*p.Length[1]
		zMin = p.Centroid[2] - 0.5*p.Length[2]
		zMax = p.Centroid[2] + 0.5*p.Length[2]
	)
	gen.parallelSweep(func(idx int) {
		i, j, k := g.Coords(idx)
		x, y, z := g.Xcc.DataP[i], g.Ycc.DataP[j], g.Zcc.DataP[k]
		contained := x >= xMin && x <= xMax &&
			y >= yMin && y <= yMax &&
			z >= zMin && z <= zMax
		if !gen.claims(p, contained, idx) {
			return
		}
		gen.applyCell(p, 1., idx)
		fn(gen, p, idx, x, y, z)
	})
}

// sineDensity1D modulates the first partial density with one sine period
// per patch length.
func sineDensity1D(gen *Generator, p *Patch, idx int, x, _, _ float64) {
	lay := gen.Cfg.Layout
	gen.Q.Vars[lay.ContBeg()].DataP[idx] =
		p.State.AlphaRho[0] * (1. + 0.1*math.Sin(2.*math.Pi*x/p.Length[0]))
}

// pressureBump2D superposes a Gaussian pressure bump centered on the
// patch centroid with length scale Lx.
func pressureBump2D(gen *Generator, p *Patch, idx int, x, y, _ float64) {
	var (
		lay = gen.Cfg.Layout
		dx  = x - p.Centroid[0]
		dy  = y - p.Centroid[1]
		l0  = p.Length[0]
	)
	gen.Q.Vars[lay.E()].DataP[idx] =
		p.State.Pressure * (1. + 0.1*math.Exp(-(dx*dx+dy*dy)/(l0*l0)))
}

// pressureBump3D is the spherical version of pressureBump2D.
func pressureBump3D(gen *Generator, p *Patch, idx int, x, y, z float64) {
	var (
		lay = gen.Cfg.Layout
		dx  = x - p.Centroid[0]
		dy  = y - p.Centroid[1]
		dz  = z - p.Centroid[2]
		l0  = p.Length[0]
	)
	gen.Q.Vars[lay.E()].DataP[idx] =
		p.State.Pressure * (1. + 0.1*math.Exp(-(dx*dx+dy*dy+dz*dz)/(l0*l0)))
}
