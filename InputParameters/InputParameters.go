package InputParameters

import (
	"fmt"
	"sort"

	"github.com/ghodss/yaml"

	"github.com/mphflow/goic/mesh"
	"github.com/mphflow/goic/patches"
	"github.com/mphflow/goic/types"
	"github.com/mphflow/goic/variables"
)

// Parameters obtained from the YAML case file. Domain extents and cell
// counts describe a uniform grid; the optional per-axis boundary lists
// override them for stretched grids.
type ICParameters struct {
	Title        string      `yaml:"Title"`
	Cells        [3]int      `yaml:"Cells"`
	DomainLo     [3]float64  `yaml:"DomainLo"`
	DomainHi     [3]float64  `yaml:"DomainHi"`
	XBoundaries  []float64   `yaml:"XBoundaries"`
	YBoundaries  []float64   `yaml:"YBoundaries"`
	ZBoundaries  []float64   `yaml:"ZBoundaries"`
	Geometry     string      `yaml:"Geometry"` // cartesian, axisymmetric, cylindrical
	ModelEqns    int         `yaml:"ModelEqns"`
	NumFluids    int         `yaml:"NumFluids"`
	NumExtraVars int         `yaml:"NumExtraVars"`
	Pref         float64     `yaml:"Pref"`
	Rhoref       float64     `yaml:"Rhoref"`
	StrictAngles bool        `yaml:"StrictAngles"`
	Fluids       []FluidSpec `yaml:"Fluids"`
	Patches      []PatchSpec `yaml:"Patches"`
	IBPatches    []PatchSpec `yaml:"IBPatches"`
}

// FluidSpec carries the stiffened-gas EOS functions in stored form,
// Gamma = 1/(gamma-1) and PiInf = gamma*pi_inf/(gamma-1).
type FluidSpec struct {
	Gamma float64 `yaml:"Gamma"`
	PiInf float64 `yaml:"PiInf"`
}

// PatchSpec is the superset of per-shape fields; each shape reads its own
// subset, unset fields stay zero.
type PatchSpec struct {
	Shape          string       `yaml:"Shape"`
	Centroid       [3]float64   `yaml:"Centroid"`
	Radius         float64      `yaml:"Radius"`
	Radii          [3]float64   `yaml:"Radii"`
	Length         [3]float64   `yaml:"Length"`
	Normal         [3]float64   `yaml:"Normal"`
	Thickness      float64      `yaml:"Thickness"`
	Turns          float64      `yaml:"Turns"`
	Chord          float64      `yaml:"Chord"`
	Camber         float64      `yaml:"Camber"`
	CamberLoc      float64      `yaml:"CamberLoc"`
	ThicknessRatio float64      `yaml:"ThicknessRatio"`
	Theta          float64      `yaml:"Theta"`
	Epsilon        int          `yaml:"Epsilon"`
	Beta           int          `yaml:"Beta"`
	Smoothen       bool         `yaml:"Smoothen"`
	SmoothCoeff    float64      `yaml:"SmoothCoeff"`
	SmoothPatch    int          `yaml:"SmoothPatch"`
	AlterPatch     map[int]bool `yaml:"AlterPatch"`
	Velocity       [3]float64   `yaml:"Velocity"`
	Pressure       float64      `yaml:"Pressure"`
	Rho            float64      `yaml:"Rho"`
	AlphaRho       []float64    `yaml:"AlphaRho"`
	Alpha          []float64    `yaml:"Alpha"`
	Gamma          float64      `yaml:"Gamma"`
	PiInf          float64      `yaml:"PiInf"`
	CaseID         int          `yaml:"CaseID"`
	Model          *ModelSpec   `yaml:"Model"`
}

// ModelSpec places a triangulated surface file. Scale defaults to unity,
// rotations are radians about x, y, z applied in that order.
type ModelSpec struct {
	FilePath  string     `yaml:"FilePath"`
	Scale     [3]float64 `yaml:"Scale"`
	Rotate    [3]float64 `yaml:"Rotate"`
	Translate [3]float64 `yaml:"Translate"`
	SpcCount  int        `yaml:"SpcCount"`
	Threshold float64    `yaml:"Threshold"`
}

func (ip *ICParameters) Parse(data []byte) error {
	return yaml.Unmarshal(data, ip)
}

func (ip *ICParameters) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", ip.Title)
	fmt.Printf("[%d,%d,%d]\t= Cells\n", ip.Cells[0], ip.Cells[1], ip.Cells[2])
	fmt.Printf("[%8.5f,%8.5f]\t= X Domain\n", ip.DomainLo[0], ip.DomainHi[0])
	fmt.Printf("[%8.5f,%8.5f]\t= Y Domain\n", ip.DomainLo[1], ip.DomainHi[1])
	fmt.Printf("[%8.5f,%8.5f]\t= Z Domain\n", ip.DomainLo[2], ip.DomainHi[2])
	fmt.Printf("[%s]\t\t= Model Equations\n", types.NewModelEqns(ip.ModelEqns).Print())
	fmt.Printf("[%d]\t\t\t= Number of Fluids\n", ip.numFluids())
	for n, ps := range ip.Patches {
		fmt.Printf("Patch[%d] = %s\n", n+1, types.NewShapeType(ps.Shape).Print())
	}
	for n, ps := range ip.IBPatches {
		fmt.Printf("IBPatch[%d] = %s\n", n+1, types.NewShapeType(ps.Shape).Print())
	}
}

func (ip *ICParameters) numFluids() int {
	if ip.NumFluids < 1 {
		return 1
	}
	return ip.NumFluids
}

// BuildGrid constructs the target grid. Explicit boundary lists take
// precedence over the uniform cell count / domain extent description.
func (ip *ICParameters) BuildGrid() (g *mesh.Grid) {
	geom := types.NewGridGeometry(ip.Geometry)
	if len(ip.XBoundaries) != 0 || len(ip.YBoundaries) != 0 || len(ip.ZBoundaries) != 0 {
		g = mesh.NewFromBoundaries(geom, ip.XBoundaries, ip.YBoundaries, ip.ZBoundaries)
		return
	}
	g = mesh.NewUniform(geom, ip.Cells, ip.DomainLo, ip.DomainHi)
	return
}

// BuildConfig assembles the case-level settings. Parallel degree and
// verbosity come from the command line, not the case file.
func (ip *ICParameters) BuildConfig(g *mesh.Grid, parallelDegree int, verbose bool) (cfg patches.Config) {
	var (
		pref, rhoref = ip.Pref, ip.Rhoref
	)
	if pref == 0 {
		pref = 101325.
	}
	if rhoref == 0 {
		rhoref = 1000.
	}
	cfg = patches.Config{
		Layout: variables.NewLayout(ip.numFluids(), g.Dims(),
			types.NewModelEqns(ip.ModelEqns), ip.NumExtraVars),
		Fluids:         ip.buildFluids(),
		Pref:           pref,
		Rhoref:         rhoref,
		StrictAngles:   ip.StrictAngles,
		ParallelDegree: parallelDegree,
		Verbose:        verbose,
	}
	return
}

func (ip *ICParameters) buildFluids() (fluids []variables.Fluid) {
	if len(ip.Fluids) < ip.numFluids() {
		panic(fmt.Errorf("unable to configure %d fluids, only %d declared",
			ip.numFluids(), len(ip.Fluids)))
	}
	fluids = make([]variables.Fluid, len(ip.Fluids))
	for n, fs := range ip.Fluids {
		fluids[n] = variables.Fluid{Gamma: fs.Gamma, PiInf: fs.PiInf}
	}
	return
}

// BuildPatches converts the declared fluid patch list. Patch ids are the
// 1-based list positions; the overwrite permission map is normalized to a
// dense slice with the unclaimed slot writable by default.
func (ip *ICParameters) BuildPatches() (list []*patches.Patch) {
	list = make([]*patches.Patch, len(ip.Patches))
	for n, ps := range ip.Patches {
		p := ps.build(n + 1)
		p.AlterPatch = normalizeAlter(ps.AlterPatch, n+1, len(ip.Patches))
		list[n] = p
	}
	return
}

// BuildIBPatches converts the immersed boundary list. IB patches stamp the
// marker grid only, so no overwrite permissions apply.
func (ip *ICParameters) BuildIBPatches() (list []*patches.Patch) {
	list = make([]*patches.Patch, len(ip.IBPatches))
	for n, ps := range ip.IBPatches {
		list[n] = ps.build(n + 1)
	}
	return
}

func (ps *PatchSpec) build(id int) (p *patches.Patch) {
	p = &patches.Patch{
		ID:             types.PatchID(id),
		Shape:          types.NewShapeType(ps.Shape),
		Centroid:       ps.Centroid,
		Radius:         ps.Radius,
		Radii:          ps.Radii,
		Length:         ps.Length,
		Normal:         ps.Normal,
		Thickness:      ps.Thickness,
		Turns:          ps.Turns,
		Chord:          ps.Chord,
		Camber:         ps.Camber,
		CamberLoc:      ps.CamberLoc,
		ThicknessRatio: ps.ThicknessRatio,
		Theta:          ps.Theta,
		Epsilon:        ps.Epsilon,
		Beta:           ps.Beta,
		Smoothen:       ps.Smoothen,
		SmoothCoeff:    ps.SmoothCoeff,
		SmoothPatchID:  types.PatchID(ps.SmoothPatch),
		State: variables.State{
			Velocity: ps.Velocity,
			Pressure: ps.Pressure,
			Rho:      ps.Rho,
			AlphaRho: append([]float64{}, ps.AlphaRho...),
			Alpha:    append([]float64{}, ps.Alpha...),
			Gamma:    ps.Gamma,
			PiInf:    ps.PiInf,
		},
		CaseID: ps.CaseID,
		Model:  ps.buildModel(id),
	}
	return
}

func (ps *PatchSpec) buildModel(id int) (mp *patches.ModelParams) {
	if ps.Model == nil {
		return
	}
	var (
		ms = ps.Model
	)
	if len(ms.FilePath) == 0 {
		panic(fmt.Errorf("unable to configure model patch %d, no surface file path", id))
	}
	scale := ms.Scale
	if scale == [3]float64{} {
		scale = [3]float64{1, 1, 1}
	}
	spc := ms.SpcCount
	if spc < 1 {
		spc = 10
	}
	threshold := ms.Threshold
	if threshold == 0 {
		threshold = 0.9
	}
	mp = &patches.ModelParams{
		FilePath: ms.FilePath,
		Transform: types.ModelTransform{
			Scale:     scale,
			Rotate:    ms.Rotate,
			Translate: ms.Translate,
		},
		SpcCount:  spc,
		Threshold: threshold,
	}
	return
}

// normalizeAlter densifies the sparse permission map into a slice indexed
// by owner id 0..numPatches. Slot zero, the unclaimed marker, is always
// writable; earlier patches are protected unless explicitly granted.
func normalizeAlter(m map[int]bool, id, numPatches int) (ap []bool) {
	ap = make([]bool, numPatches+1)
	ap[0] = true
	keys := make([]int, 0, len(m))
	for owner := range m {
		keys = append(keys, owner)
	}
	sort.Ints(keys)
	for _, owner := range keys {
		if owner < 0 || owner > numPatches {
			panic(fmt.Errorf("unable to configure patch %d, alter entry %d is not a patch id",
				id, owner))
		}
		ap[owner] = m[owner]
	}
	return
}
