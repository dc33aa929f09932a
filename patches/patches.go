package patches

import (
	"fmt"
	"math"
	"runtime"
	"sync"

	"github.com/mphflow/goic/field"
	"github.com/mphflow/goic/mesh"
	"github.com/mphflow/goic/types"
	"github.com/mphflow/goic/utils"
	"github.com/mphflow/goic/variables"
)

/*
Package patches rasterizes an ordered list of geometric patch declarations
onto a structured grid, painter's-algorithm style. Each patch claims cells
through its shape's containment predicate, blends its declared state into
the primitive field with a per-cell weight eta, and records full claims in
a persistent ownership grid so later patches can respect or override
earlier ones.
*/

// Ownership transfers only when eta is numerically indistinguishable from
// one. Partial blends leave the prior owner in place so a later smoothed
// patch still blends against it.
const ownershipTol = 1.e-16

// ModelParams locates and places a triangulated surface model for the
// Model patch shape.
type ModelParams struct {
	FilePath  string
	Transform types.ModelTransform
	SpcCount  int     // oracle samples per cell
	Threshold float64 // inside-score level accepted as containment
}

/*
Patch is one declared region. It carries the superset of the geometric
fields the shape catalogue uses; each rasterizer reads only the fields
its shape defines and ignores the rest. Zero values mean "unset", which
the cylinder shape uses to select its axis.
*/
type Patch struct {
	ID       types.PatchID
	Shape    types.ShapeType
	Centroid [3]float64
	Radius   float64
	Radii    [3]float64 // ellipse / ellipsoid semi-axes
	Length   [3]float64
	Normal   [3]float64 // swept half-space orientation

	Thickness float64 // spiral and var-circle annulus width
	Turns     float64

	// NACA 4-digit airfoil parameters
	Chord          float64
	Camber         float64
	CamberLoc      float64
	ThicknessRatio float64
	Theta          float64 // rotation about the centroid, radians

	// spherical harmonic degree and order
	Epsilon int
	Beta    int

	Smoothen      bool
	SmoothCoeff   float64
	SmoothPatchID types.PatchID // donor id whose cells stay blendable
	AlterPatch    []bool        // overwrite permission indexed by owner id

	State  variables.State
	Model  *ModelParams
	CaseID int // hardcoded analytical case selector
}

// mayAlter reports whether this patch is permitted to overwrite a cell
// currently owned by owner. Unclaimed cells are writable by default.
func (p *Patch) mayAlter(owner types.PatchID) bool {
	if int(owner) < len(p.AlterPatch) {
		return p.AlterPatch[owner]
	}
	return owner == types.UnclaimedID
}

/*
Assigner is the variable-assignment collaborator. AssignCellState blends
the declared state st into cell (i,j,k) of q with weight eta: eta=1 is a
full overwrite, eta=0 a no-op. Implementations never touch the ownership
grid; ownership transfer is the rasterizer's job.
*/
type Assigner interface {
	AssignCellState(st *variables.State, i, j, k int, eta float64,
		q *field.Primitive)
}

// Config carries the case-level settings shared by every rasterizer call.
type Config struct {
	Layout         variables.Layout
	Fluids         []variables.Fluid
	Pref, Rhoref   float64 // reference state for the Tait density repair
	StrictAngles   bool    // quadrant-correct spherical angles
	ParallelDegree int
	Verbose        bool
}

/*
Generator owns the mutable state of one IC generation pass: the primitive
field, the patch ownership grid, and the immersed boundary marker grid.
Patches are applied strictly in list order; within one patch, cells are
independent and swept in parallel.
*/
type Generator struct {
	Grid    *mesh.Grid
	Q       *field.Primitive
	Owners  *field.Ownership
	Markers *field.Ownership
	Assign  Assigner
	Cfg     Config

	Airfoils []*AirfoilGeom // surface chains published by airfoil patches
}

func NewGenerator(g *mesh.Grid, assign Assigner, cfg Config) (gen *Generator) {
	if cfg.ParallelDegree < 1 {
		cfg.ParallelDegree = runtime.NumCPU()
	}
	gen = &Generator{
		Grid:    g,
		Q:       field.NewPrimitive(g.NumCells(), cfg.Layout.NumVars()),
		Owners:  field.NewOwnership(g.NumCells()),
		Markers: field.NewOwnership(g.NumCells()),
		Assign:  assign,
		Cfg:     cfg,
	}
	return
}

// Run applies fluid patches in declared order. Later patches see the fully
// applied ownership and field mutations of earlier ones.
func (gen *Generator) Run(patchList []*Patch) {
	for _, p := range patchList {
		gen.checkState(p)
		if gen.Cfg.Verbose {
			fmt.Printf("Processing patch %d, geometry: %s\n", p.ID, p.Shape.Print())
		}
		switch p.Shape {
		case types.SHP_LineSegment:
			gen.LineSegment(p)
		case types.SHP_Spiral:
			gen.Spiral(p)
		case types.SHP_Circle:
			gen.Circle(p)
		case types.SHP_VarCircle:
			gen.VarCircle(p)
		case types.SHP_VarCircle3D:
			gen.VarCircle3D(p)
		case types.SHP_Ellipse:
			gen.Ellipse(p)
		case types.SHP_Ellipsoid:
			gen.Ellipsoid(p)
		case types.SHP_Rectangle:
			gen.Rectangle(p)
		case types.SHP_SweepLine:
			gen.SweepLine(p)
		case types.SHP_SweepPlane:
			gen.SweepPlane(p)
		case types.SHP_TaylorGreen:
			gen.TaylorGreenVortex(p)
		case types.SHP_Analytical1D:
			gen.Analytical1D(p)
		case types.SHP_Analytical2D:
			gen.Analytical2D(p)
		case types.SHP_Analytical3D:
			gen.Analytical3D(p)
		case types.SHP_BubblePulse:
			gen.BubblePulse(p)
		case types.SHP_SphericalHarmonic:
			gen.SphericalHarmonic(p)
		case types.SHP_Sphere:
			gen.Sphere(p)
		case types.SHP_Cuboid:
			gen.Cuboid(p)
		case types.SHP_Cylinder:
			gen.Cylinder(p)
		case types.SHP_Model:
			gen.Model(p)
		default:
			panic(fmt.Errorf("unable to process patch %d, %s is not a fluid patch geometry",
				p.ID, p.Shape.Print()))
		}
	}
}

// RunIB applies immersed boundary patches. IB patches stamp the marker
// grid only; they never touch the primitive field or blend weights.
func (gen *Generator) RunIB(patchList []*Patch) {
	for _, p := range patchList {
		if gen.Cfg.Verbose {
			fmt.Printf("Processing IB patch %d, geometry: %s\n", p.ID, p.Shape.Print())
		}
		switch p.Shape {
		case types.SHP_Circle:
			gen.CircleIB(p)
		case types.SHP_Airfoil:
			gen.Airfoil(p)
		case types.SHP_Airfoil3D:
			gen.Airfoil3D(p)
		case types.SHP_Rectangle:
			gen.RectangleIB(p)
		case types.SHP_Sphere:
			gen.SphereIB(p)
		case types.SHP_Cylinder:
			gen.CylinderIB(p)
		default:
			panic(fmt.Errorf("unable to process IB patch %d, %s is not an immersed boundary geometry",
				p.ID, p.Shape.Print()))
		}
	}
}

// checkState rejects a fluid patch whose state does not declare one entry
// per fluid. The gamma/pi_inf model blends those two fields instead of
// volume fractions, so it only needs the partial densities.
func (gen *Generator) checkState(p *Patch) {
	var (
		lay = gen.Cfg.Layout
		nf  = lay.NumFluids
	)
	if len(p.State.AlphaRho) != nf {
		panic(fmt.Errorf("unable to apply patch %d: %d partial densities declared, layout has %d fluids",
			p.ID, len(p.State.AlphaRho), nf))
	}
	if lay.ModelEqns != types.MDL_GammaPi && len(p.State.Alpha) != nf {
		panic(fmt.Errorf("unable to apply patch %d: %d volume fractions declared, layout has %d fluids",
			p.ID, len(p.State.Alpha), nf))
	}
}

/*
claims evaluates the overwrite permission for one cell: the patch claims
it when the cell is geometrically contained and the current owner grants
permission, or when smoothing is active and the cell belongs to the
declared donor patch. The donor disjunct lets a smoothed patch keep
blending past its strict boundary into cells the donor left behind.
*/
func (gen *Generator) claims(p *Patch, contained bool, idx int) bool {
	owner := gen.Owners.ID[idx]
	if contained && p.mayAlter(owner) {
		return true
	}
	return p.Smoothen && owner == p.SmoothPatchID
}

// applyCell blends the patch state into one cell and transfers ownership
// on a full claim.
func (gen *Generator) applyCell(p *Patch, eta float64, idx int) {
	i, j, k := gen.Grid.Coords(idx)
	gen.Assign.AssignCellState(&p.State, i, j, k, eta, gen.Q)
	if 1.-eta < ownershipTol {
		gen.Owners.ID[idx] = p.ID
	}
}

// parallelSweep visits every cell index across ParallelDegree goroutines.
// Cells are independent within one patch call, so no locking is needed.
func (gen *Generator) parallelSweep(visit func(idx int)) {
	var (
		wg = sync.WaitGroup{}
		nc = gen.Grid.NumCells()
		np = gen.Cfg.ParallelDegree
	)
	if np > nc {
		np = nc
	}
	pm := utils.NewPartitionMap(np, nc)
	for n := 0; n < np; n++ {
		wg.Add(1)
		go func(n int) {
			kMin, kMax := pm.GetBucketRange(n)
			for idx := kMin; idx < kMax; idx++ {
				visit(idx)
			}
			wg.Done()
		}(n)
	}
	wg.Wait()
}

/*
smoothedEta maps a signed distance d, positive outside the boundary, to a
blend weight via the hyperbolic tangent profile. s is the user smoothing
coefficient and h the local minimum grid spacing; larger s sharpens the
interface. At d = 0 the weight is exactly one half.
*/
func smoothedEta(s, h, d float64) float64 {
	return 0.5 - 0.5*math.Tanh((s/h)*d)
}

// sweepEta is the half-space convention: v positive inside, so the sign
// of the tanh flips relative to smoothedEta.
func sweepEta(s, h, v float64) float64 {
	return 0.5 + 0.5*math.Tanh((s/h)*v)
}

/*
taitRepair reconstructs an underflowed density from the cell pressure via
the Tait stiffened-gas relation. Only active for the 4-equation model,
where a patch declaring pressure but leaving density near zero is legal
input. Runs after assignment so it sees the blended cell values.
*/
func (gen *Generator) taitRepair(idx int) {
	if gen.Cfg.Layout.ModelEqns != types.MDL_FourEqn {
		return
	}
	var (
		lay = gen.Cfg.Layout
		rho = gen.Q.Vars[lay.ContBeg()].DataP[idx]
	)
	if rho >= 1.e-10 {
		return
	}
	var (
		fl       = gen.Cfg.Fluids[0]
		litGamma = fl.LitGamma()
		pres     = gen.Q.Vars[lay.E()].DataP[idx]
		alf      = gen.Q.Vars[lay.AdvBeg()].DataP[idx]
	)
	gen.Q.Vars[lay.ContBeg()].DataP[idx] =
		math.Pow((pres+fl.PiInf)/(gen.Cfg.Pref+fl.PiInf), 1./litGamma) *
			gen.Cfg.Rhoref * (1. - alf)
}
