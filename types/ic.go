package types

import (
	"fmt"
	"strings"
)

// PatchID labels a patch by its 1-based position in the case file.
// Zero marks cells no patch has claimed.
type PatchID int

const UnclaimedID PatchID = 0

type ShapeType uint8

const (
	SHP_LineSegment ShapeType = iota
	SHP_Spiral
	SHP_Circle
	SHP_Airfoil
	SHP_Airfoil3D
	SHP_VarCircle
	SHP_VarCircle3D
	SHP_Ellipse
	SHP_Ellipsoid
	SHP_Rectangle
	SHP_SweepLine
	SHP_SweepPlane
	SHP_TaylorGreen
	SHP_Analytical1D
	SHP_Analytical2D
	SHP_Analytical3D
	SHP_BubblePulse
	SHP_SphericalHarmonic
	SHP_Sphere
	SHP_Cuboid
	SHP_Cylinder
	SHP_Model
)

var (
	ShapeNames = map[string]ShapeType{
		"line_segment":       SHP_LineSegment,
		"spiral":             SHP_Spiral,
		"circle":             SHP_Circle,
		"airfoil":            SHP_Airfoil,
		"3d_airfoil":         SHP_Airfoil3D,
		"var_circle":         SHP_VarCircle,
		"3d_var_circle":      SHP_VarCircle3D,
		"ellipse":            SHP_Ellipse,
		"ellipsoid":          SHP_Ellipsoid,
		"rectangle":          SHP_Rectangle,
		"sweep_line":         SHP_SweepLine,
		"sweep_plane":        SHP_SweepPlane,
		"taylor_green":       SHP_TaylorGreen,
		"1d_analytical":      SHP_Analytical1D,
		"2d_analytical":      SHP_Analytical2D,
		"3d_analytical":      SHP_Analytical3D,
		"bubble_pulse":       SHP_BubblePulse,
		"spherical_harmonic": SHP_SphericalHarmonic,
		"sphere":             SHP_Sphere,
		"cuboid":             SHP_Cuboid,
		"cylinder":           SHP_Cylinder,
		"model":              SHP_Model,
	}
	ShapePrintNames = []string{
		"Line Segment", "Spiral", "Circle", "Airfoil", "3D Airfoil",
		"Variable Circle", "3D Variable Circle", "Ellipse", "Ellipsoid",
		"Rectangle", "Sweep Line", "Sweep Plane", "Taylor-Green Vortex",
		"1D Analytical", "2D Analytical", "3D Analytical", "1D Bubble Pulse",
		"Spherical Harmonic", "Sphere", "Cuboid", "Cylinder", "STL Model",
	}
)

func (st ShapeType) Print() (txt string) {
	txt = ShapePrintNames[st]
	return
}

func NewShapeType(label string) (st ShapeType) {
	var (
		ok  bool
		err error
	)
	if len(label) == 0 {
		err = fmt.Errorf("empty patch shape, must be one of %v", ShapeNames)
		panic(err)
	}
	label = strings.ToLower(label)
	if st, ok = ShapeNames[label]; !ok {
		err = fmt.Errorf("unable to use patch shape named %s", label)
		panic(err)
	}
	return
}

type GridGeometry uint8

const (
	GEOM_Cartesian GridGeometry = iota
	GEOM_Axisymmetric
	GEOM_Cylindrical
)

var (
	GeometryNames = map[string]GridGeometry{
		"cartesian":    GEOM_Cartesian,
		"axisymmetric": GEOM_Axisymmetric,
		"cylindrical":  GEOM_Cylindrical,
	}
	GeometryPrintNames = []string{"Cartesian", "Axisymmetric", "Cylindrical"}
)

func (gg GridGeometry) Print() (txt string) {
	txt = GeometryPrintNames[gg]
	return
}

func NewGridGeometry(label string) (gg GridGeometry) {
	var (
		ok  bool
		err error
	)
	if len(label) == 0 {
		return GEOM_Cartesian
	}
	label = strings.ToLower(label)
	if gg, ok = GeometryNames[label]; !ok {
		err = fmt.Errorf("unable to use grid geometry named %s", label)
		panic(err)
	}
	return
}

// ModelEqns selects the governing-equation layout of the primitive field.
type ModelEqns int

const (
	MDL_GammaPi ModelEqns = iota + 1 // single-fluid gamma / pi_inf formulation
	MDL_FiveEqn
	MDL_SixEqn
	MDL_FourEqn // barotropic Tait formulation
)

var ModelEqnsPrintNames = []string{
	"Gamma/Pi_inf", "5-Equation", "6-Equation", "4-Equation (Tait)",
}

func (me ModelEqns) Print() (txt string) {
	txt = ModelEqnsPrintNames[me-1]
	return
}

func NewModelEqns(n int) (me ModelEqns) {
	if n < 1 || n > 4 {
		panic(fmt.Errorf("unable to use model_eqns = %d, must be 1..4", n))
	}
	me = ModelEqns(n)
	return
}

// ModelTransform carries the affine placement of a surface-mesh patch:
// scale, then rotate about x, y, z (radians), then translate.
type ModelTransform struct {
	Scale     [3]float64
	Rotate    [3]float64
	Translate [3]float64
}
