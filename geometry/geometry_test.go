package geometry

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCylindricalTransform(t *testing.T) {
	{ // Test the axis conventions at the cardinal angles
		cartY, cartZ := CylindricalToCartesian(1, 0)
		assert.True(t, near(cartY, 0))
		assert.True(t, near(cartZ, 1))
		cartY, cartZ = CylindricalToCartesian(2, 0.5*math.Pi)
		assert.True(t, near(cartY, 2))
		assert.True(t, near(cartZ, 0))
	}
	{ // Test the vector form passes the axial coordinate through
		pos := CylindricalToCartesianVec3([3]float64{0.7, 2, 0.5 * math.Pi})
		assert.True(t, near(pos[0], 0.7))
		assert.True(t, near(pos[1], 2))
		assert.True(t, near(pos[2], 0))
	}
	{ // Test the round trip over the principal branch
		for _, rad := range []float64{0.25, 1, 3.5} {
			for _, ang := range []float64{-3, -1.5, -0.2, 0, 0.7, 2.9} {
				cartY, cartZ := CylindricalToCartesian(rad, ang)
				cylY, cylZ := CartesianToCylindrical(cartY, cartZ)
				assert.True(t, near(cylY, rad))
				assert.True(t, near(cylZ, ang))
			}
		}
	}
}

func TestSphericalPolar(t *testing.T) {
	{ // Test agreement in the first quadrant
		assert.True(t, near(SphericalPolar(1, 1, false), 0.25*math.Pi))
		assert.True(t, near(SphericalPolar(1, 1, true), 0.25*math.Pi))
	}
	{ // Test the legacy branch folds quadrant II, strict resolves it
		assert.True(t, near(SphericalPolar(-1, 1, false), -0.25*math.Pi))
		assert.True(t, near(SphericalPolar(-1, 1, true), 0.75*math.Pi))
	}
}

func TestPolygonWinding(t *testing.T) {
	var (
		ccw = NewPolygon([]Point2{{0, 0}, {1, 0}, {1, 1}, {0, 1}})
		cw  = NewPolygon([]Point2{{0, 0}, {0, 1}, {1, 1}, {1, 0}})
	)
	{ // Test the chain was closed and the area carries orientation
		assert.Equal(t, ccw.Geometry[0], ccw.Geometry[len(ccw.Geometry)-1])
		assert.True(t, near(ccw.Area(), 1))
		assert.True(t, near(cw.Area(), -1))
	}
	{ // Test containment is orientation independent
		inside := Point2{0.5, 0.5}
		outside := Point2{1.5, 0.5}
		assert.True(t, ccw.PointInside(inside))
		assert.True(t, cw.PointInside(inside))
		assert.False(t, ccw.PointInside(outside))
		assert.False(t, cw.PointInside(outside))
	}
	{ // Test a nonconvex chain
		lshape := NewPolygon([]Point2{{0, 0}, {2, 0}, {2, 1}, {1, 1}, {1, 2}, {0, 2}})
		assert.True(t, lshape.PointInside(Point2{0.5, 1.5}))
		assert.False(t, lshape.PointInside(Point2{1.5, 1.5}))
	}
}

func TestInterpY(t *testing.T) {
	pl := NewPolyLine([]Point2{{0, 0}, {1, 2}, {2, 2}, {3, 0}})
	{ // Test interpolation inside each segment
		y, ok := pl.InterpY(0.5)
		assert.True(t, ok)
		assert.True(t, near(y, 1))
		y, ok = pl.InterpY(1.5)
		assert.True(t, ok)
		assert.True(t, near(y, 2))
		y, ok = pl.InterpY(2.5)
		assert.True(t, ok)
		assert.True(t, near(y, 1))
	}
	{ // Test sample points evaluate exactly
		y, ok := pl.InterpY(1)
		assert.True(t, ok)
		assert.True(t, near(y, 2))
	}
	{ // Test queries beyond the sampled range report not ok
		_, ok := pl.InterpY(-0.1)
		assert.False(t, ok)
		_, ok = pl.InterpY(3.1)
		assert.False(t, ok)
	}
	{ // Test a vertical segment returns its first endpoint
		vert := NewPolyLine([]Point2{{0, 0}, {0, 5}, {1, 5}})
		y, ok := vert.InterpY(0)
		assert.True(t, ok)
		assert.True(t, near(y, 0))
	}
}

func TestBoundingBox(t *testing.T) {
	box := NewBoundingBox([]Point2{{-1, 2}, {3, -4}, {0, 0}})
	assert.Equal(t, [2]float64{-1, -4}, box.XMin)
	assert.Equal(t, [2]float64{3, 2}, box.XMax)
	assert.True(t, box.PointInside(Point2{0, 0}))
	assert.True(t, box.PointInside(Point2{3, 2})) // boundary inclusive
	assert.False(t, box.PointInside(Point2{3.01, 0}))
	assert.Nil(t, NewBoundingBox(nil))
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
