package patches

import (
	"math"

	"github.com/mphflow/goic/geometry"
	"github.com/mphflow/goic/types"
	"github.com/mphflow/goic/utils"
)

// AirfoilGeom is the sampled surface pair an airfoil patch publishes for
// downstream immersed boundary forcing.
type AirfoilGeom struct {
	PatchID types.PatchID
	Upper   *geometry.PolyLine
	Lower   *geometry.PolyLine
}

/*
Airfoil stamps the marker grid with a NACA 4-digit section. The camber
line and thickness envelope are sampled once into upper and lower surface
chains anchored at the centroid (the leading edge); a cell is inside when
its chordwise station falls between the interpolated surfaces. A nonzero
Theta rotates the section about the centroid by rotating each query point
the opposite way. IB only: no blend weight, no primitive-field mutation.
*/
func (gen *Generator) Airfoil(p *Patch) {
	var (
		g            = gen.Grid
		upper, lower = buildNACASurfaces(p, g.MinSpacing(2))
		x0, y0       = p.Centroid[0], p.Centroid[1]
	)
	gen.publishAirfoil(p, upper, lower)
	gen.parallelSweep(func(idx int) {
		i, j, _ := g.Coords(idx)
		x, y := g.Xcc.DataP[i], g.Ycc.DataP[j]
		if airfoilContains(p, upper, lower, x-x0, y-y0) {
			gen.Markers.ID[idx] = p.ID
		}
	})
}

// Airfoil3D applies the 2D section test to every cell inside the z slab
// |z-cz| <= Lz/2.
func (gen *Generator) Airfoil3D(p *Patch) {
	var (
		g            = gen.Grid
		upper, lower = buildNACASurfaces(p, g.MinSpacing(2))
		x0, y0       = p.Centroid[0], p.Centroid[1]
		zMin         = p.Centroid[2] - 0.5*p.Length[2]
		zMax         = p.Centroid[2] + 0.5*p.Length[2]
	)
	gen.publishAirfoil(p, upper, lower)
	gen.parallelSweep(func(idx int) {
		i, j, k := g.Coords(idx)
		x, y, z := g.Xcc.DataP[i], g.Ycc.DataP[j], g.Zcc.DataP[k]
		if z < zMin || z > zMax {
			return
		}
		if airfoilContains(p, upper, lower, x-x0, y-y0) {
			gen.Markers.ID[idx] = p.ID
		}
	})
}

// publishAirfoil records the surface chains in global coordinates.
func (gen *Generator) publishAirfoil(p *Patch, upper, lower *geometry.PolyLine) {
	shift := func(pl *geometry.PolyLine) *geometry.PolyLine {
		pts := make([]geometry.Point2, len(pl.Geometry))
		for n, pt := range pl.Geometry {
			pts[n] = geometry.Point2{X: pt.X + p.Centroid[0], Y: pt.Y + p.Centroid[1]}
		}
		return geometry.NewPolyLine(pts)
	}
	gen.Airfoils = append(gen.Airfoils, &AirfoilGeom{
		PatchID: p.ID,
		Upper:   shift(upper),
		Lower:   shift(lower),
	})
}

// airfoilContains tests a centroid-relative point against the sampled
// surfaces, rotating it by -Theta into the unrotated section frame first.
func airfoilContains(p *Patch, upper, lower *geometry.PolyLine, xq, yq float64) bool {
	if p.Theta != 0 {
		cosT, sinT := math.Cos(p.Theta), math.Sin(p.Theta)
		xq, yq = xq*cosT+yq*sinT, -xq*sinT+yq*cosT
	}
	if xq < 0 || xq > p.Chord {
		return false
	}
	yu, okU := upper.InterpY(xq)
	yl, okL := lower.InterpY(xq)
	return okU && okL && yq <= yu && yq >= yl
}

/*
buildNACASurfaces samples the NACA 4-digit section in centroid-local
coordinates, leading edge at the origin. At chord fraction xa the
thickness envelope is

	yt = 5*t*c*(0.2969*sqrt(xa) - 0.1260*xa - 0.3516*xa^2 + 0.2843*xa^3 - 0.1015*xa^4)

and the camber line follows the two-branch parabolic law split at the
max-camber station, with the envelope offset normal to the local camber
slope. The sample count scales with chord over grid spacing so the chains
resolve finer than the cells that query them.
*/
func buildNACASurfaces(p *Patch, h float64) (upper, lower *geometry.PolyLine) {
	var (
		c  = p.Chord
		t  = p.ThicknessRatio
		m  = p.Camber
		pa = p.CamberLoc
		np = int(20.*c/h) + 1
	)
	if np < 101 {
		np = 101
	}
	var (
		up = make([]geometry.Point2, np)
		lo = make([]geometry.Point2, np)
	)
	for n := 0; n < np; n++ {
		var (
			xa = float64(n) / float64(np-1)
			yt = 5. * t * c * (0.2969*math.Sqrt(xa) - 0.1260*xa -
				0.3516*utils.POW(xa, 2) + 0.2843*utils.POW(xa, 3) - 0.1015*utils.POW(xa, 4))
			yc, dyc float64
		)
		if xa < pa {
			yc = m / (pa * pa) * (2.*pa*xa - xa*xa) * c
			dyc = 2. * m / (pa * pa) * (pa - xa)
		} else {
			yc = m / ((1.-pa)*(1.-pa)) * ((1.-2.*pa) + 2.*pa*xa - xa*xa) * c
			dyc = 2. * m / ((1.-pa)*(1.-pa)) * (pa - xa)
		}
		th := math.Atan(dyc)
		up[n] = geometry.Point2{X: xa*c - yt*math.Sin(th), Y: yc + yt*math.Cos(th)}
		lo[n] = geometry.Point2{X: xa*c + yt*math.Sin(th), Y: yc - yt*math.Cos(th)}
	}
	upper = geometry.NewPolyLine(up)
	lower = geometry.NewPolyLine(lo)
	return
}
