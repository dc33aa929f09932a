package InputParameters

import (
	"testing"

	"github.com/magiconair/properties/assert"

	"github.com/mphflow/goic/types"
)

func TestParseCase(t *testing.T) {
	var (
		err error
	)
	fileInput := []byte(`
Title: Water Jet Test Case
Cells: [40, 20, 1]
DomainLo: [0., 0., 0.]
DomainHi: [2., 1., 0.]
Geometry: cartesian
ModelEqns: 2
NumFluids: 2
Rhoref: 1000.
Fluids:
  - Gamma: 2.5
    PiInf: 0.
  - Gamma: 0.16
    PiInf: 3430.
Patches:
  - Shape: rectangle
    Centroid: [1., 0.5, 0.]
    Length: [2., 1., 0.]
    Pressure: 101325.
    AlphaRho: [1000., 0.]
    Alpha: [1., 0.]
  - Shape: circle
    Centroid: [0.5, 0.5, 0.]
    Radius: 0.2
    Smoothen: true
    SmoothCoeff: 0.5
    SmoothPatch: 1
    AlterPatch: {1: true}
    Pressure: 3.e+05
    AlphaRho: [0., 1.2]
    Alpha: [0., 1.]
IBPatches:
  - Shape: circle
    Centroid: [1.5, 0.5, 0.]
    Radius: 0.1
`)
	var input ICParameters
	if err = input.Parse(fileInput); err != nil {
		panic(err)
	}
	input.Print()
	assert.Equal(t, input.Title, "Water Jet Test Case")
	assert.Equal(t, input.Cells, [3]int{40, 20, 1})
	assert.Equal(t, input.NumFluids, 2)
	assert.Equal(t, input.Patches[1].AlterPatch[1], true)

	g := input.BuildGrid()
	assert.Equal(t, g.Nx, 40)
	assert.Equal(t, g.Ny, 20)
	assert.Equal(t, g.Dims(), 2)

	cfg := input.BuildConfig(g, 1, false)
	assert.Equal(t, cfg.Layout.NumVars(), 7)
	assert.Equal(t, cfg.Pref, 101325.) // defaulted, not in the file
	assert.Equal(t, cfg.Rhoref, 1000.)
	assert.Equal(t, cfg.Fluids[1].PiInf, 3430.)

	list := input.BuildPatches()
	assert.Equal(t, len(list), 2)
	assert.Equal(t, list[0].ID, types.PatchID(1))
	assert.Equal(t, list[0].Shape, types.SHP_Rectangle)
	assert.Equal(t, list[1].Shape, types.SHP_Circle)
	assert.Equal(t, list[1].SmoothPatchID, types.PatchID(1))
	assert.Equal(t, list[1].State.Pressure, 3.e+05)
	assert.Equal(t, list[1].State.AlphaRho, []float64{0., 1.2})
	// permissions densified over owner ids 0..numPatches
	assert.Equal(t, list[0].AlterPatch, []bool{true, false, false})
	assert.Equal(t, list[1].AlterPatch, []bool{true, true, false})

	ib := input.BuildIBPatches()
	assert.Equal(t, len(ib), 1)
	assert.Equal(t, ib[0].ID, types.PatchID(1))
	assert.Equal(t, len(ib[0].AlterPatch), 0)
}

func TestParseModelPatch(t *testing.T) {
	var (
		err error
	)
	fileInput := []byte(`
Title: STL Placement
Cells: [8, 8, 8]
DomainLo: [-1., -1., -1.]
DomainHi: [1., 1., 1.]
ModelEqns: 2
NumFluids: 1
Fluids:
  - Gamma: 2.5
Patches:
  - Shape: model
    Pressure: 1.
    AlphaRho: [1.]
    Alpha: [1.]
    Model:
      FilePath: shapes/bunny.stl
      Rotate: [0., 1.5707963, 0.]
`)
	var input ICParameters
	if err = input.Parse(fileInput); err != nil {
		panic(err)
	}
	list := input.BuildPatches()
	mp := list[0].Model
	assert.Equal(t, mp.FilePath, "shapes/bunny.stl")
	// unset placement fields take working defaults
	assert.Equal(t, mp.Transform.Scale, [3]float64{1, 1, 1})
	assert.Equal(t, mp.SpcCount, 10)
	assert.Equal(t, mp.Threshold, 0.9)
	assert.Equal(t, mp.Transform.Rotate[1], 1.5707963)
}

func TestCaseValidation(t *testing.T) {
	{ // Test a fluid count higher than the declared fluid list is rejected
		input := &ICParameters{
			Cells:     [3]int{4, 1, 1},
			DomainLo:  [3]float64{0, 0, 0},
			DomainHi:  [3]float64{1, 0, 0},
			ModelEqns: 2,
			NumFluids: 2,
			Fluids:    []FluidSpec{{Gamma: 2.5}},
		}
		g := input.BuildGrid()
		assertPanics(t, func() { input.BuildConfig(g, 1, false) })
	}
	{ // Test an alter entry outside the patch id range is rejected
		input := &ICParameters{
			Patches: []PatchSpec{{
				Shape:      "circle",
				AlterPatch: map[int]bool{5: true},
			}},
		}
		assertPanics(t, func() { input.BuildPatches() })
	}
	{ // Test an unknown shape label is rejected
		input := &ICParameters{
			Patches: []PatchSpec{{Shape: "dodecahedron"}},
		}
		assertPanics(t, func() { input.BuildPatches() })
	}
	{ // Test explicit boundary lists take precedence over the uniform spec
		input := &ICParameters{
			Cells:       [3]int{4, 1, 1},
			XBoundaries: []float64{0., 1., 3., 6.},
		}
		g := input.BuildGrid()
		assert.Equal(t, g.Nx, 3)
	}
}

func assertPanics(t *testing.T, f func()) {
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("expected panic")
		}
	}()
	f()
}
