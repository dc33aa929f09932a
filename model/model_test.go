package model

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mphflow/goic/types"
)

func TestTransformMatrix(t *testing.T) {
	{ // Test scale then translate
		tm := TransformMatrix(types.ModelTransform{
			Scale:     [3]float64{2, 2, 2},
			Translate: [3]float64{1, 2, 3},
		})
		p := applyHomogeneous(tm, [3]float64{1, 1, 1})
		assert.True(t, near(p[0], 3))
		assert.True(t, near(p[1], 4))
		assert.True(t, near(p[2], 5))
	}
	{ // Test rotation about z by 90 degrees
		tm := TransformMatrix(types.ModelTransform{
			Scale:  [3]float64{1, 1, 1},
			Rotate: [3]float64{0, 0, 0.5 * math.Pi},
		})
		p := applyHomogeneous(tm, [3]float64{1, 0, 0})
		assert.True(t, near(p[0], 0))
		assert.True(t, near(p[1], 1))
		assert.True(t, near(p[2], 0))
	}
	{ // Test rotation order, x before z
		tm := TransformMatrix(types.ModelTransform{
			Scale:  [3]float64{1, 1, 1},
			Rotate: [3]float64{0.5 * math.Pi, 0, 0.5 * math.Pi},
		})
		// x rotation maps (0,1,0) to (0,0,1), z rotation leaves it there
		p := applyHomogeneous(tm, [3]float64{0, 1, 0})
		assert.True(t, near(p[0], 0))
		assert.True(t, near(p[1], 0))
		assert.True(t, near(p[2], 1))
	}
}

func TestSTLRead(t *testing.T) {
	{ // Test ASCII parse
		fname := filepath.Join(t.TempDir(), "tri.stl")
		text := `solid tri
  facet normal 0 0 1
    outer loop
      vertex 0 0 0
      vertex 1 0 0
      vertex 0 1 0
    endloop
  endfacet
endsolid tri
`
		assert.NoError(t, os.WriteFile(fname, []byte(text), 0644))
		m := Read(fname, false)
		assert.Equal(t, 1, len(m.Tris))
		assert.True(t, near(m.Tris[0].Normal[2], 1))
		assert.True(t, near(m.Tris[0].V[1][0], 1))
		assert.True(t, near(m.Tris[0].V[2][1], 1))
		lo, hi := m.BoundingBox()
		assert.True(t, near(lo[0], 0))
		assert.True(t, near(hi[0], 1))
		assert.True(t, near(hi[1], 1))
	}
	{ // Test binary parse of the same facet
		var buf bytes.Buffer
		buf.Write(make([]byte, 80))
		binary.Write(&buf, binary.LittleEndian, uint32(1))
		facet := []float32{
			0, 0, 1, // normal
			0, 0, 0,
			1, 0, 0,
			0, 1, 0,
		}
		binary.Write(&buf, binary.LittleEndian, facet)
		binary.Write(&buf, binary.LittleEndian, uint16(0))
		fname := filepath.Join(t.TempDir(), "tri_binary.stl")
		assert.NoError(t, os.WriteFile(fname, buf.Bytes(), 0644))
		m := Read(fname, false)
		assert.Equal(t, 1, len(m.Tris))
		assert.True(t, near(m.Tris[0].Normal[2], 1))
		assert.True(t, near(m.Tris[0].V[1][0], 1))
		assert.True(t, near(m.Tris[0].V[2][1], 1))
	}
	{ // Test missing file panics
		assert.Panics(t, func() { Read("no_such_model.stl", false) })
	}
}

func TestInsideFraction(t *testing.T) {
	identity := TransformMatrix(types.ModelTransform{Scale: [3]float64{1, 1, 1}})
	{ // Test clear inside and outside in 3D
		m := unitCube()
		m.Transform(identity)
		spc := [3]float64{0.05, 0.05, 0.05}
		assert.True(t, near(m.InsideFraction([3]float64{0.5, 0.5, 0.5}, spc, 20), 1))
		assert.True(t, near(m.InsideFraction([3]float64{2, 2, 2}, spc, 20), 0))
	}
	{ // Test a cell straddling the x=1 face scores near one half
		m := unitCube()
		m.Transform(identity)
		frac := m.InsideFraction([3]float64{1, 0.5, 0.5}, [3]float64{0.2, 0.05, 0.05}, 400)
		assert.InDelta(t, 0.5, frac, 0.1)
	}
	{ // Test determinism across repeated queries
		m := unitCube()
		m.Transform(identity)
		pt := [3]float64{0.95, 0.5, 0.5}
		spc := [3]float64{0.2, 0.05, 0.05}
		assert.Equal(t, m.InsideFraction(pt, spc, 100), m.InsideFraction(pt, spc, 100))
	}
	{ // Test planar mode against the z-plane footprint
		m := unitCube()
		m.Transform(identity)
		spc := [3]float64{0.05, 0.05, 0}
		assert.True(t, near(m.InsideFraction([3]float64{0.5, 0.5, 0}, spc, 20), 1))
		assert.True(t, near(m.InsideFraction([3]float64{1.5, 0.5, 0}, spc, 20), 0))
	}
	{ // Test translation moves the containment region
		m := unitCube()
		m.Transform(TransformMatrix(types.ModelTransform{
			Scale:     [3]float64{1, 1, 1},
			Translate: [3]float64{10, 0, 0},
		}))
		spc := [3]float64{0.05, 0.05, 0.05}
		assert.True(t, near(m.InsideFraction([3]float64{10.5, 0.5, 0.5}, spc, 20), 1))
		assert.True(t, near(m.InsideFraction([3]float64{0.5, 0.5, 0.5}, spc, 20), 0))
		lo, hi := m.BoundingBox()
		assert.True(t, near(lo[0], 10))
		assert.True(t, near(hi[0], 11))
	}
}

// unitCube builds the [0,1]^3 cube as a 12 triangle soup.
func unitCube() (m *Mesh) {
	var (
		c = [8][3]float64{
			{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0},
			{0, 0, 1}, {1, 0, 1}, {1, 1, 1}, {0, 1, 1},
		}
		faces = [12][3]int{
			{0, 2, 1}, {0, 3, 2}, // z = 0
			{4, 5, 6}, {4, 6, 7}, // z = 1
			{0, 1, 5}, {0, 5, 4}, // y = 0
			{3, 6, 2}, {3, 7, 6}, // y = 1
			{0, 4, 7}, {0, 7, 3}, // x = 0
			{1, 2, 6}, {1, 6, 5}, // x = 1
		}
	)
	m = &Mesh{Tris: make([]Triangle, len(faces))}
	for t, f := range faces {
		for v := 0; v < 3; v++ {
			m.Tris[t].V[v] = c[f[v]]
		}
	}
	return
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
