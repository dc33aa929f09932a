package patches

import (
	"fmt"
	"math"

	"github.com/mphflow/goic/geometry"
	"github.com/mphflow/goic/types"
)

// cellYZ returns the y,z cell-center coordinates in Cartesian space,
// routing through the cylindrical transform when the grid demands it.
func (gen *Generator) cellYZ(j, k int) (y, z float64) {
	y, z = gen.Grid.Ycc.DataP[j], gen.Grid.Zcc.DataP[k]
	if gen.Grid.Geometry == types.GEOM_Cylindrical {
		y, z = geometry.CylindricalToCartesian(y, z)
	}
	return
}

// cellPos is the vector form of cellYZ.
func (gen *Generator) cellPos(i, j, k int) (pos [3]float64) {
	pos = [3]float64{gen.Grid.Xcc.DataP[i], gen.Grid.Ycc.DataP[j], gen.Grid.Zcc.DataP[k]}
	if gen.Grid.Geometry == types.GEOM_Cylindrical {
		pos = geometry.CylindricalToCartesianVec3(pos)
	}
	return
}

// Sphere claims cells with squared distance to the centroid at most r^2.
// The smoothing metric is the radial distance to the surface.
func (gen *Generator) Sphere(p *Patch) {
	var (
		g          = gen.Grid
		x0, y0, z0 = p.Centroid[0], p.Centroid[1], p.Centroid[2]
		r          = p.Radius
		h          = g.MinSpacing(3)
	)
	gen.parallelSweep(func(idx int) {
		i, j, k := g.Coords(idx)
		x := g.Xcc.DataP[i]
		y, z := gen.cellYZ(j, k)
		var (
			d2  = (x-x0)*(x-x0) + (y-y0)*(y-y0) + (z-z0)*(z-z0)
			eta = 1.
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

// SphereIB stamps the marker grid for a spherical solid body.
func (gen *Generator) SphereIB(p *Patch) {
	var (
		g          = gen.Grid
		x0, y0, z0 = p.Centroid[0], p.Centroid[1], p.Centroid[2]
		r2         = p.Radius * p.Radius
	)
	gen.parallelSweep(func(idx int) {
		i, j, k := g.Coords(idx)
		x := g.Xcc.DataP[i]
		y, z := gen.cellYZ(j, k)
		if (x-x0)*(x-x0)+(y-y0)*(y-y0)+(z-z0)*(z-z0) <= r2 {
			gen.Markers.ID[idx] = p.ID
		}
	})
}

// Ellipsoid claims cells with the normalized quadratic sum at most one,
// with semi-axes Radii. Shares the ellipse's smoothing metric.
func (gen *Generator) Ellipsoid(p *Patch) {
	var (
		g          = gen.Grid
		x0, y0, z0 = p.Centroid[0], p.Centroid[1], p.Centroid[2]
		a, b, c    = p.Radii[0], p.Radii[1], p.Radii[2]
		h          = g.MinSpacing(3)
	)
	gen.parallelSweep(func(idx int) {
		i, j, k := g.Coords(idx)
		x := g.Xcc.DataP[i]
		y, z := gen.cellYZ(j, k)
		var (
			xr  = (x - x0) / a
			yr  = (y - y0) / b
			zr  = (z - z0) / c
			sum = xr*xr + yr*yr + zr*zr
			eta = 1.
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

// VarCircle3D is the annular band of VarCircle extruded along z over
// |z-cz| <= Lz/2, including the Gaussian volume-fraction override.
func (gen *Generator) VarCircle3D(p *Patch) {
	var (
		g      = gen.Grid
		x0, y0 = p.Centroid[0], p.Centroid[1]
		r      = p.Radius
		t      = p.Thickness
		zMin   = p.Centroid[2] - 0.5*p.Length[2]
		zMax   = p.Centroid[2] + 0.5*p.Length[2]
		h      = g.MinSpacing(3)
		lay    = gen.Cfg.Layout
	)
	gen.parallelSweep(func(idx int) {
		i, j, k := g.Coords(idx)
		var (
			x, y, z = g.Xcc.DataP[i], g.Ycc.DataP[j], g.Zcc.DataP[k]
			dist    = math.Sqrt((x-x0)*(x-x0) + (y-y0)*(y-y0))
			eta     = 1.
		)
		if p.Smoothen {
			eta = smoothedEta(p.SmoothCoeff, h, math.Abs(dist-r)-0.5*t)
		}
		contained := dist >= r-0.5*t && dist <= r+0.5*t && z >= zMin && z <= zMax
		if !gen.claims(p, contained, idx) {
			return
		}
		gen.applyCell(p, eta, idx)
		dev := (dist - r) / (t / 3.)
		gen.Q.Vars[lay.AdvBeg()].DataP[idx] = p.State.Alpha[0] * math.Exp(-0.5*dev*dev)
	})
}

// Cuboid claims the axis-aligned box, boundary inclusive, never smoothed.
func (gen *Generator) Cuboid(p *Patch) {
	var (
		g    = gen.Grid
		xMin = p.Centroid[0] - 0.5*p.Length[0]
		xMax = p.Centroid[0] + 0.5*p.Length[0]
		yMin = p.Centroid[1] - 0.5*p.Length[1]
		yMax = p.Centroid[1] + 0.5*p.Length[1]
		zMin = p.Centroid[2] - 0.5*p.Length[2]
		zMax = p.Centroid[2] + 0.5*p.Length[2]
	)
	gen.parallelSweep(func(idx int) {
		i, j, k := g.Coords(idx)
		x := g.Xcc.DataP[i]
		y, z := gen.cellYZ(j, k)
		contained := x >= xMin && x <= xMax &&
			y >= yMin && y <= yMax &&
			z >= zMin && z <= zMax
		if !gen.claims(p, contained, idx) {
			return
		}
		gen.applyCell(p, 1., idx)
	})
}

/*
Cylinder claims an infinite cylinder along one coordinate axis clipped to
a finite box along that axis. The axis is the first Length entry the
declaration sets; the other two must stay unset. The smoothing metric is
the radial distance to the lateral surface.
*/
func (gen *Generator) Cylinder(p *Patch) {
	var (
		g    = gen.Grid
		axis = cylinderAxis(p)
		r    = p.Radius
		h    = g.MinSpacing(3)
		aMin = p.Centroid[axis] - 0.5*p.Length[axis]
		aMax = p.Centroid[axis] + 0.5*p.Length[axis]
	)
	gen.parallelSweep(func(idx int) {
		i, j, k := g.Coords(idx)
		pos := gen.cellPos(i, j, k)
		var (
			radial = radialDistance(pos, p.Centroid, axis)
			eta    = 1.
		)
		if p.Smoothen {
			eta = smoothedEta(p.SmoothCoeff, h, radial-r)
		}
		contained := radial*radial <= r*r &&
			pos[axis] >= aMin && pos[axis] <= aMax
		if !gen.claims(p, contained, idx) {
			return
		}
		gen.applyCell(p, eta, idx)
	})
}

// CylinderIB stamps the marker grid for a cylindrical solid body.
func (gen *Generator) CylinderIB(p *Patch) {
	var (
		g    = gen.Grid
		axis = cylinderAxis(p)
		r2   = p.Radius * p.Radius
		aMin = p.Centroid[axis] - 0.5*p.Length[axis]
		aMax = p.Centroid[axis] + 0.5*p.Length[axis]
	)
	gen.parallelSweep(func(idx int) {
		i, j, k := g.Coords(idx)
		pos := gen.cellPos(i, j, k)
		radial := radialDistance(pos, p.Centroid, axis)
		if radial*radial <= r2 && pos[axis] >= aMin && pos[axis] <= aMax {
			gen.Markers.ID[idx] = p.ID
		}
	})
}

func cylinderAxis(p *Patch) int {
	for n := 0; n < 3; n++ {
		if p.Length[n] != 0 {
			return n
		}
	}
	panic(fmt.Errorf("unable to orient cylinder patch %d, no axis length set", p.ID))
}

// radialDistance is the distance from the centroid in the plane normal to
// the cylinder axis.
func radialDistance(pos, centroid [3]float64, axis int) float64 {
	var sum float64
	for n := 0; n < 3; n++ {
		if n == axis {
			continue
		}
		d := pos[n] - centroid[n]
		sum += d * d
	}
	return math.Sqrt(sum)
}

/*
SweepPlane claims the half-space a*x + b*y + c*z + d >= 0, with (a,b,c)
the patch normal and d placing the plane through the centroid.
*/
func (gen *Generator) SweepPlane(p *Patch) {
	var (
		g       = gen.Grid
		a, b, c = p.Normal[0], p.Normal[1], p.Normal[2]
		d       = -(a*p.Centroid[0] + b*p.Centroid[1] + c*p.Centroid[2])
		nrm     = math.Sqrt(a*a + b*b + c*c)
		h       = g.MinSpacing(3)
	)
	gen.parallelSweep(func(idx int) {
		i, j, k := g.Coords(idx)
		var (
			x, y, z = g.Xcc.DataP[i], g.Ycc.DataP[j], g.Zcc.DataP[k]
			v       = a*x + b*y + c*z + d
			eta     = 1.
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
SphericalHarmonic fills a sphere and perturbs the first volume-fraction
field with 1 - |Re(Y_l^m)| of the real spherical harmonic of degree
Epsilon and order Beta. The polar angle comes from the spherical transform
of the raw x,y cell coordinates; the azimuthal angle is taken directly
from the z cell coordinate.
*/
func (gen *Generator) SphericalHarmonic(p *Patch) {
	var (
		g          = gen.Grid
		x0, y0, z0 = p.Centroid[0], p.Centroid[1], p.Centroid[2]
		r2         = p.Radius * p.Radius
		lay        = gen.Cfg.Layout
	)
	gen.parallelSweep(func(idx int) {
		i, j, k := g.Coords(idx)
		x := g.Xcc.DataP[i]
		y, z := gen.cellYZ(j, k)
		d2 := (x-x0)*(x-x0) + (y-y0)*(y-y0) + (z-z0)*(z-z0)
		if !gen.claims(p, d2 <= r2, idx) {
			return
		}
		gen.applyCell(p, 1., idx)
		var (
			polar   = geometry.SphericalPolar(g.Xcc.DataP[i], g.Ycc.DataP[j], gen.Cfg.StrictAngles)
			azimuth = g.Zcc.DataP[k]
			reY     = harmonicRe(p.Epsilon, p.Beta, polar, azimuth)
		)
		gen.Q.Vars[lay.AdvBeg()].DataP[idx] = 1. - math.Abs(reY)
	})
}

/*
harmonicRe evaluates the real part of the normalized spherical harmonic
Y_l^m(polar, azimuth) from the closed forms for degrees 0 through 5,
orders 0 through l, with the Condon-Shortley phase.
*/
func harmonicRe(l, m int, polar, azimuth float64) (re float64) {
	if l < 0 || l > 5 || m < 0 || m > l {
		panic(fmt.Errorf("unable to evaluate spherical harmonic of degree %d, order %d", l, m))
	}
	var (
		c    = math.Cos(polar)
		s    = math.Sin(polar)
		base float64
	)
	switch l {
	case 0:
		base = 0.5 * math.Sqrt(1./math.Pi)
	case 1:
		switch m {
		case 0:
			base = 0.5 * math.Sqrt(3./math.Pi) * c
		case 1:
			base = -0.5 * math.Sqrt(3./(2.*math.Pi)) * s
		}
	case 2:
		switch m {
		case 0:
			base = 0.25 * math.Sqrt(5./math.Pi) * (3.*c*c - 1.)
		case 1:
			base = -0.5 * math.Sqrt(15./(2.*math.Pi)) * s * c
		case 2:
			base = 0.25 * math.Sqrt(15./(2.*math.Pi)) * s * s
		}
	case 3:
		switch m {
		case 0:
			base = 0.25 * math.Sqrt(7./math.Pi) * (5.*c*c - 3.) * c
		case 1:
			base = -0.125 * math.Sqrt(21./math.Pi) * s * (5.*c*c - 1.)
		case 2:
			base = 0.25 * math.Sqrt(105./(2.*math.Pi)) * s * s * c
		case 3:
			base = -0.125 * math.Sqrt(35./math.Pi) * s * s * s
		}
	case 4:
		switch m {
		case 0:
			base = 3. / 16. * math.Sqrt(1./math.Pi) * (35.*c*c*c*c - 30.*c*c + 3.)
		case 1:
			base = -3. / 8. * math.Sqrt(5./math.Pi) * s * (7.*c*c - 3.) * c
		case 2:
			base = 3. / 8. * math.Sqrt(5./(2.*math.Pi)) * s * s * (7.*c*c - 1.)
		case 3:
			base = -3. / 8. * math.Sqrt(35./math.Pi) * s * s * s * c
		case 4:
			base = 3. / 16. * math.Sqrt(35./(2.*math.Pi)) * s * s * s * s
		}
	case 5:
		switch m {
		case 0:
			base = 1. / 16. * math.Sqrt(11./math.Pi) * (63.*c*c*c*c - 70.*c*c + 15.) * c
		case 1:
			base = -1. / 16. * math.Sqrt(165./(2.*math.Pi)) * s * (21.*c*c*c*c - 14.*c*c + 1.)
		case 2:
			base = 1. / 8. * math.Sqrt(1155./(2.*math.Pi)) * s * s * (3.*c*c - 1.) * c
		case 3:
			base = -1. / 32. * math.Sqrt(385./math.Pi) * s * s * s * (9.*c*c - 1.)
		case 4:
			base = 3. / 16. * math.Sqrt(385./(2.*math.Pi)) * s * s * s * s * c
		case 5:
			base = -3. / 32. * math.Sqrt(77./math.Pi) * s * s * s * s * s
		}
	}
	re = base * math.Cos(float64(m)*azimuth)
	return
}
