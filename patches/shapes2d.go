package patches

import (
	"math"
	"sort"

	"github.com/james-bowman/sparse"
)

/*
Circle claims cells with (x-cx)^2 + (y-cy)^2 <= r^2. With smoothing on,
eta follows the radial distance to the rim so the patch state feathers
into the surroundings over a band set by the smoothing coefficient.
*/
func (gen *Generator) Circle(p *Patch) {
	var (
		g      = gen.Grid
		x0, y0 = p.Centroid[0], p.Centroid[1]
		r      = p.Radius
		h      = g.MinSpacing(2)
	)
	gen.parallelSweep(func(idx int) {
		i, j, _ := g.Coords(idx)
		var (
			x, y = g.Xcc.DataP[i], g.Ycc.DataP[j]
			d2   = (x-x0)*(x-x0) + (y-y0)*(y-y0)
			eta  = 1.
		)
		if p.Smoothen {
			eta = smoothedEta(p.SmoothCoeff, h, math.Sqrt(d2)-r)
		}
		if !gen.claims(p, d2 <= r*r, idx) {
			return
		}
		gen.applyCell(p, eta, idx)
	})
}

// CircleIB stamps the marker grid for a circular solid body. No blend, no
// primitive-field mutation.
func (gen *Generator) CircleIB(p *Patch) {
	var (
		g      = gen.Grid
		x0, y0 = p.Centroid[0], p.Centroid[1]
		r2     = p.Radius * p.Radius
	)
	gen.parallelSweep(func(idx int) {
		i, j, _ := g.Coords(idx)
		x, y := g.Xcc.DataP[i], g.Ycc.DataP[j]
		if (x-x0)*(x-x0)+(y-y0)*(y-y0) <= r2 {
			gen.Markers.ID[idx] = p.ID
		}
	})
}

/*
VarCircle claims the annulus r - t/2 <= dist <= r + t/2 and then overwrites
the first volume-fraction field with a Gaussian bump centered on the ring:

	alpha_1 * exp(-0.5*((dist-r)/(t/3))^2)

The smoothing metric is the distance to the nearer annulus edge.
*/
func (gen *Generator) VarCircle(p *Patch) {
	var (
		g      = gen.Grid
		x0, y0 = p.Centroid[0], p.Centroid[1]
		r      = p.Radius
		t      = p.Thickness
		h      = g.MinSpacing(2)
		lay    = gen.Cfg.Layout
	)
	gen.parallelSweep(func(idx int) {
		i, j, _ := g.Coords(idx)
		var (
			x, y = g.Xcc.DataP[i], g.Ycc.DataP[j]
			dist = math.Sqrt((x-x0)*(x-x0) + (y-y0)*(y-y0))
			eta  = 1.
		)
		if p.Smoothen {
			eta = smoothedEta(p.SmoothCoeff, h, math.Abs(dist-r)-0.5*t)
		}
		contained := dist >= r-0.5*t && dist <= r+0.5*t
		if !gen.claims(p, contained, idx) {
			return
		}
		gen.applyCell(p, eta, idx)
		dev := (dist - r) / (t / 3.)
		gen.Q.Vars[lay.AdvBeg()].DataP[idx] = p.State.Alpha[0] * math.Exp(-0.5*dev*dev)
	})
}

// Ellipse claims cells with ((x-cx)/a)^2 + ((y-cy)/b)^2 <= 1. The smoothing
// metric is the square root of that sum minus one.
func (gen *Generator) Ellipse(p *Patch) {
	var (
		g      = gen.Grid
		x0, y0 = p.Centroid[0], p.Centroid[1]
		a, b   = p.Radii[0], p.Radii[1]
		h      = g.MinSpacing(2)
	)
	gen.parallelSweep(func(idx int) {
		i, j, _ := g.Coords(idx)
		var (
			x, y = g.Xcc.DataP[i], g.Ycc.DataP[j]
			xr   = (x - x0) / a
			yr   = (y - y0) / b
			sum  = xr*xr + yr*yr
			eta  = 1.
		)
		if p.Smoothen {
			eta = smoothedEta(p.SmoothCoeff, h, math.Sqrt(sum)-1.)
		}
		if !gen.claims(p, sum <= 1., idx) {
			return
		}
		gen.applyCell(p, eta, idx)
	})
}

/*
Rectangle claims the axis-aligned box |x-cx| <= Lx/2, |y-cy| <= Ly/2,
boundary inclusive and never smoothed. Underflowed densities are repaired
from the Tait relation under the 4-equation model.
*/
func (gen *Generator) Rectangle(p *Patch) {
	var (
		g    = gen.Grid
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
		gen.taitRepair(idx)
	})
}

// RectangleIB stamps the marker grid for a rectangular solid body,
// unconditionally for every contained cell.
func (gen *Generator) RectangleIB(p *Patch) {
	var (
		g    = gen.Grid
		xMin = p.Centroid[0] - 0.5*p.Length[0]
		xMax = p.Centroid[0] + 0.5*p.Length[0]
		yMin = p.Centroid[1] - 0.5*p.Length[1]
		yMax = p.Centroid[1] + 0.5*p.Length[1]
	)
	gen.parallelSweep(func(idx int) {
		i, j, _ := g.Coords(idx)
		x, y := g.Xcc.DataP[i], g.Ycc.DataP[j]
		if x >= xMin && x <= xMax && y >= yMin && y <= yMax {
			gen.Markers.ID[idx] = p.ID
		}
	})
}

/*
SweepLine claims the half-space a*x + b*y + d >= 0, where (a,b) is the
patch normal and d places the line through the centroid. The half space
extends without bound; a smoothed sweep's apparent thickness comes
entirely from the blend width.
*/
func (gen *Generator) SweepLine(p *Patch) {
	var (
		g    = gen.Grid
		a, b = p.Normal[0], p.Normal[1]
		d    = -(a*p.Centroid[0] + b*p.Centroid[1])
		nrm  = math.Sqrt(a*a + b*b)
		h    = g.MinSpacing(2)
	)
	gen.parallelSweep(func(idx int) {
		i, j, _ := g.Coords(idx)
		var (
			x, y = g.Xcc.DataP[i], g.Ycc.DataP[j]
			v    = a*x + b*y + d
			eta  = 1.
		)
		if p.Smoothen {
			eta = sweepEta(p.SmoothCoeff, h, v/nrm)
		}
		if !gen.claims(p, v >= 0., idx) {
			return
		}
		gen.applyCell(p, eta, idx)
	})
}

/*
TaylorGreenVortex fills an axis-aligned box like Rectangle and then
replaces velocity and pressure with the steady vortex solution

	u =  U0 sin(x/L0) cos(y/L0)
	v = -U0 cos(x/L0) sin(y/L0)
	p =  p0 + rho0*U0^2/16 * (cos(2x/L0) + cos(2y/L0))

with U0 the first declared velocity component and L0 the patch x length.
*/
func (gen *Generator) TaylorGreenVortex(p *Patch) {
	var (
		g    = gen.Grid
		lay  = gen.Cfg.Layout
		xMin = p.Centroid[0] - 0.5*p.Length[0]
		xMax = p.Centroid[0] + 0.5*p.Length[0]
		yMin = p.Centroid[1] - 0.5*p.Length[1]
		yMax = p.Centroid[1] + 0.5*p.Length[1]
		u0   = p.State.Velocity[0]
		l0   = p.Length[0]
		rho0 = 0.
	)
	for _, ar := range p.State.AlphaRho {
		rho0 += ar
	}
	gen.parallelSweep(func(idx int) {
		i, j, _ := g.Coords(idx)
		x, y := g.Xcc.DataP[i], g.Ycc.DataP[j]
		contained := x >= xMin && x <= xMax && y >= yMin && y <= yMax
		if !gen.claims(p, contained, idx) {
			return
		}
		gen.applyCell(p, 1., idx)
		gen.Q.Vars[lay.MomBeg()].DataP[idx] = u0 * math.Sin(x/l0) * math.Cos(y/l0)
		gen.Q.Vars[lay.MomBeg()+1].DataP[idx] = -u0 * math.Cos(x/l0) * math.Sin(y/l0)
		gen.Q.Vars[lay.E()].DataP[idx] = p.State.Pressure +
			rho0*u0*u0/16.*(math.Cos(2.*x/l0)+math.Cos(2.*y/l0))
	})
}

/*
Spiral claims the cells covered by an Archimedes spiral band. The arc with
radius law r(th) = a + (a/pi)*th is sampled densely over the configured
number of turns; at each sample the bounding box of the two band edges
(offset 0 and offset thickness) marks covered cells in a scratch logic
grid, which the compositing pass then reads as the containment predicate.
The spiral is anchored at the origin and never smoothed.
*/
func (gen *Generator) Spiral(p *Patch) {
	var (
		g       = gen.Grid
		m       = g.Nx - 1
		a       = p.Radius
		samples = int(float64(m) * 91. * p.Turns)
		logic   = sparse.NewDOK(g.Nx, g.Ny)
	)
	for s := 0; s <= samples; s++ {
		var (
			th     = float64(s) * 2. * math.Pi / (91. * float64(m))
			rIn    = a + (a/math.Pi)*th
			rOut   = rIn + p.Thickness
			xA, yA = rIn * math.Cos(th), rIn * math.Sin(th)
			xB, yB = rOut * math.Cos(th), rOut * math.Sin(th)
		)
		markBand(logic, g.Xcc.DataP, g.Ycc.DataP,
			math.Min(xA, xB), math.Max(xA, xB),
			math.Min(yA, yB), math.Max(yA, yB))
	}
	gen.parallelSweep(func(idx int) {
		i, j, _ := g.Coords(idx)
		contained := logic.At(i, j) != 0
		if !gen.claims(p, contained, idx) {
			return
		}
		gen.applyCell(p, 1., idx)
	})
}

// markBand sets the logic grid for cell centers strictly inside the box.
// The coordinate arrays are monotone, so the covered index ranges come
// from binary search instead of a full grid scan.
func markBand(logic *sparse.DOK, xcc, ycc []float64, xMin, xMax, yMin, yMax float64) {
	var (
		iLo = sort.Search(len(xcc), func(i int) bool { return xcc[i] > xMin })
		iHi = sort.Search(len(xcc), func(i int) bool { return xcc[i] >= xMax })
		jLo = sort.Search(len(ycc), func(j int) bool { return ycc[j] > yMin })
		jHi = sort.Search(len(ycc), func(j int) bool { return ycc[j] >= yMax })
	)
	for j := jLo; j < jHi; j++ {
		for i := iLo; i < iHi; i++ {
			logic.Set(i, j, 1.)
		}
	}
}
