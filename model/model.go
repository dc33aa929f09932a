package model

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"

	"github.com/mphflow/goic/geometry"
	"github.com/mphflow/goic/types"
)

type Triangle struct {
	Normal [3]float64
	V      [3][3]float64
}

/*
Mesh is a triangle soup loaded from an STL file. The consuming rasterizer
drives the fixed pipeline: Read, TransformMatrix, Transform, BoundingBox,
per-cell InsideFraction queries, Close. Transform precomputes the planar
footprints used by 2D queries, so it must run before InsideFraction even
when the placement is identity.
*/
type Mesh struct {
	Tris  []Triangle
	polys []*geometry.Polygon // z-plane triangle footprints for 2D queries
}

/*
TransformMatrix builds the homogeneous placement matrix: scale, then rotate
about x, y, z in that order, then translate.
*/
func TransformMatrix(t types.ModelTransform) (tm *mat.Dense) {
	var (
		sx, sy, sz = t.Scale[0], t.Scale[1], t.Scale[2]
		scale      = mat.NewDense(4, 4, []float64{
			sx, 0, 0, 0,
			0, sy, 0, 0,
			0, 0, sz, 0,
			0, 0, 0, 1,
		})
		trans = mat.NewDense(4, 4, []float64{
			1, 0, 0, t.Translate[0],
			0, 1, 0, t.Translate[1],
			0, 0, 1, t.Translate[2],
			0, 0, 0, 1,
		})
		m1, m2, m3 = new(mat.Dense), new(mat.Dense), new(mat.Dense)
	)
	m1.Mul(rotationX(t.Rotate[0]), scale)
	m2.Mul(rotationY(t.Rotate[1]), m1)
	m3.Mul(rotationZ(t.Rotate[2]), m2)
	tm = new(mat.Dense)
	tm.Mul(trans, m3)
	return
}

func rotationX(a float64) (r *mat.Dense) {
	c, s := math.Cos(a), math.Sin(a)
	r = mat.NewDense(4, 4, []float64{
		1, 0, 0, 0,
		0, c, -s, 0,
		0, s, c, 0,
		0, 0, 0, 1,
	})
	return
}

func rotationY(a float64) (r *mat.Dense) {
	c, s := math.Cos(a), math.Sin(a)
	r = mat.NewDense(4, 4, []float64{
		c, 0, s, 0,
		0, 1, 0, 0,
		-s, 0, c, 0,
		0, 0, 0, 1,
	})
	return
}

func rotationZ(a float64) (r *mat.Dense) {
	c, s := math.Cos(a), math.Sin(a)
	r = mat.NewDense(4, 4, []float64{
		c, -s, 0, 0,
		s, c, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	})
	return
}

// Transform applies the homogeneous matrix to every vertex in place.
func (m *Mesh) Transform(tm *mat.Dense) {
	for t := range m.Tris {
		for v := 0; v < 3; v++ {
			m.Tris[t].V[v] = applyHomogeneous(tm, m.Tris[t].V[v])
		}
	}
	m.buildFootprints()
}

func applyHomogeneous(tm *mat.Dense, p [3]float64) (pOut [3]float64) {
	for r := 0; r < 3; r++ {
		pOut[r] = tm.At(r, 0)*p[0] + tm.At(r, 1)*p[1] + tm.At(r, 2)*p[2] + tm.At(r, 3)
	}
	return
}

func (m *Mesh) buildFootprints() {
	m.polys = m.polys[:0]
	for _, tri := range m.Tris {
		pts := []geometry.Point2{
			{X: tri.V[0][0], Y: tri.V[0][1]},
			{X: tri.V[1][0], Y: tri.V[1][1]},
			{X: tri.V[2][0], Y: tri.V[2][1]},
		}
		poly := geometry.NewPolygon(pts)
		if poly.Area() == 0 { // edge-on footprint contributes nothing in 2D
			continue
		}
		m.polys = append(m.polys, poly)
	}
}

func (m *Mesh) BoundingBox() (lo, hi [3]float64) {
	if len(m.Tris) == 0 {
		return
	}
	lo, hi = m.Tris[0].V[0], m.Tris[0].V[0]
	for _, tri := range m.Tris {
		for v := 0; v < 3; v++ {
			for n := 0; n < 3; n++ {
				lo[n] = math.Min(lo[n], tri.V[v][n])
				hi[n] = math.Max(hi[n], tri.V[v][n])
			}
		}
	}
	return
}

// Close releases the triangle storage once the oracle sweep is finished.
func (m *Mesh) Close() {
	m.Tris = nil
	m.polys = nil
}

/*
InsideFraction is the point-in-mesh oracle. It scatters samples jittered
uniformly within +-spacing/2 of the cell center and reports the contained
fraction in [0,1]. A zero z spacing selects the planar query, which tests
sample points against the triangle footprints in the z plane; otherwise
containment is crossing parity of an +x ray against the triangle soup.
The jitter sequence is seeded from the query point, so repeated calls are
reproducible regardless of sweep order.
*/
func (m *Mesh) InsideFraction(pt, spacing [3]float64, samples int) (frac float64) {
	if samples < 1 {
		samples = 1
	}
	var (
		rng    = rand.New(rand.NewSource(pointSeed(pt)))
		inside int
		planar = spacing[2] == 0
	)
	for s := 0; s < samples; s++ {
		var q [3]float64
		for n := 0; n < 3; n++ {
			q[n] = pt[n] + (rng.Float64()-0.5)*spacing[n]
		}
		if planar {
			if m.containsPlanar(q) {
				inside++
			}
		} else if m.contains(q) {
			inside++
		}
	}
	frac = float64(inside) / float64(samples)
	return
}

func pointSeed(pt [3]float64) int64 {
	h := uint64(0x9e3779b97f4a7c15)
	for n := 0; n < 3; n++ {
		h ^= math.Float64bits(pt[n])
		h *= 0x100000001b3
	}
	return int64(h)
}

func (m *Mesh) containsPlanar(q [3]float64) bool {
	p2 := geometry.Point2{X: q[0], Y: q[1]}
	for _, poly := range m.polys {
		if poly.PointInside(p2) {
			return true
		}
	}
	return false
}

// contains casts a ray along +x and counts crossing parity.
func (m *Mesh) contains(q [3]float64) bool {
	var crossings int
	for t := range m.Tris {
		if rayCrossesTriangle(q, &m.Tris[t]) {
			crossings++
		}
	}
	return crossings%2 == 1
}

// rayCrossesTriangle is the Moller-Trumbore intersection test specialized
// to the +x ray direction.
func rayCrossesTriangle(o [3]float64, tri *Triangle) bool {
	const eps = 1e-12
	var (
		v0, v1, v2 = tri.V[0], tri.V[1], tri.V[2]
		e1         = [3]float64{v1[0] - v0[0], v1[1] - v0[1], v1[2] - v0[2]}
		e2         = [3]float64{v2[0] - v0[0], v2[1] - v0[1], v2[2] - v0[2]}
	)
	// p = dir x e2 with dir = (1,0,0)
	p := [3]float64{0, -e2[2], e2[1]}
	det := e1[0]*p[0] + e1[1]*p[1] + e1[2]*p[2]
	if math.Abs(det) < eps {
		return false
	}
	inv := 1.0 / det
	tv := [3]float64{o[0] - v0[0], o[1] - v0[1], o[2] - v0[2]}
	u := (tv[0]*p[0] + tv[1]*p[1] + tv[2]*p[2]) * inv
	if u < 0 || u > 1 {
		return false
	}
	q := [3]float64{
		tv[1]*e1[2] - tv[2]*e1[1],
		tv[2]*e1[0] - tv[0]*e1[2],
		tv[0]*e1[1] - tv[1]*e1[0],
	}
	// v = dir . q with dir = (1,0,0)
	v := q[0] * inv
	if v < 0 || u+v > 1 {
		return false
	}
	t := (e2[0]*q[0] + e2[1]*q[1] + e2[2]*q[2]) * inv
	return t > eps
}
