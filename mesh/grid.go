package mesh

import (
	"fmt"

	"github.com/mphflow/goic/types"
	"github.com/mphflow/goic/utils"
)

/*
Grid is the structured target grid patches are rasterized onto. Cell centers
and cell widths are stored per axis. Collapsed axes (cell count 1) carry a
single zero coordinate and unit width so that 1D and 2D cases share the 3D
storage layout.

For cylindrical geometry the axes are interpreted as x = axial, y = radial,
z = azimuthal angle.
*/
type Grid struct {
	Nx, Ny, Nz    int
	Geometry      types.GridGeometry
	Xcc, Ycc, Zcc utils.Vector // cell center coordinates
	Dx, Dy, Dz    utils.Vector // cell widths
}

func NewUniform(geom types.GridGeometry, nCells [3]int, lo, hi [3]float64) (g *Grid) {
	var (
		nx, ny, nz = normalizeCount(nCells[0]), normalizeCount(nCells[1]), normalizeCount(nCells[2])
	)
	if nx < 2 {
		panic(fmt.Errorf("unable to build grid with %d cells in x", nCells[0]))
	}
	if ny == 1 && nz > 1 {
		panic(fmt.Errorf("unable to build grid with z cells but no y cells"))
	}
	g = &Grid{
		Nx:       nx,
		Ny:       ny,
		Nz:       nz,
		Geometry: geom,
	}
	g.Xcc, g.Dx = uniformAxis(nx, lo[0], hi[0])
	g.Ycc, g.Dy = uniformAxis(ny, lo[1], hi[1])
	g.Zcc, g.Dz = uniformAxis(nz, lo[2], hi[2])
	return
}

// NewFromBoundaries builds a grid from per-axis cell boundary coordinates,
// which need not be uniformly spaced. A nil or single-entry axis is collapsed.
func NewFromBoundaries(geom types.GridGeometry, xb, yb, zb []float64) (g *Grid) {
	var (
		xcc, dx = boundaryAxis("x", xb)
		ycc, dy = boundaryAxis("y", yb)
		zcc, dz = boundaryAxis("z", zb)
	)
	g = &Grid{
		Nx: xcc.Len(), Ny: ycc.Len(), Nz: zcc.Len(),
		Geometry: geom,
		Xcc:      xcc, Ycc: ycc, Zcc: zcc,
		Dx: dx, Dy: dy, Dz: dz,
	}
	if g.Nx < 2 {
		panic(fmt.Errorf("unable to build grid with %d cells in x", g.Nx))
	}
	return
}

func normalizeCount(n int) int {
	if n < 1 {
		return 1
	}
	return n
}

func uniformAxis(n int, x0, x1 float64) (cc, width utils.Vector) {
	if n == 1 { // collapsed axis
		cc = utils.NewVector(1)
		width = utils.NewVectorConstant(1, 1)
		return
	}
	if x1 <= x0 {
		panic(fmt.Errorf("unable to build axis, domain [%v,%v] is empty", x0, x1))
	}
	var (
		h = (x1 - x0) / float64(n)
	)
	cc = utils.NewVector(n)
	for i := 0; i < n; i++ {
		cc.DataP[i] = x0 + h*(float64(i)+0.5)
	}
	width = utils.NewVectorConstant(n, h)
	return
}

func boundaryAxis(label string, xb []float64) (cc, width utils.Vector) {
	if len(xb) < 2 { // collapsed axis
		cc = utils.NewVector(1)
		width = utils.NewVectorConstant(1, 1)
		return
	}
	var (
		n = len(xb) - 1
	)
	cc, width = utils.NewVector(n), utils.NewVector(n)
	for i := 0; i < n; i++ {
		if xb[i+1] <= xb[i] {
			panic(fmt.Errorf("unable to build %s axis, boundaries not increasing at index %d", label, i))
		}
		cc.DataP[i] = 0.5 * (xb[i] + xb[i+1])
		width.DataP[i] = xb[i+1] - xb[i]
	}
	return
}

// Dims reports the grid dimensionality, 1, 2 or 3.
func (g *Grid) Dims() (nDims int) {
	nDims = 1
	if g.Ny > 1 {
		nDims++
	}
	if g.Nz > 1 {
		nDims++
	}
	return
}

func (g *Grid) NumCells() int {
	return g.Nx * g.Ny * g.Nz
}

// Index flattens (i,j,k) in x-fastest order.
func (g *Grid) Index(i, j, k int) int {
	return i + g.Nx*(j+g.Ny*k)
}

// Coords inverts Index.
func (g *Grid) Coords(idx int) (i, j, k int) {
	i = idx % g.Nx
	idx /= g.Nx
	j = idx % g.Ny
	k = idx / g.Ny
	return
}

func (g *Grid) Center(i, j, k int) (x, y, z float64) {
	x = g.Xcc.DataP[i]
	y = g.Ycc.DataP[j]
	z = g.Zcc.DataP[k]
	return
}

// MinSpacing is the smallest cell width over the first nDims axes, the
// length scale used to normalize smoothing distances.
func (g *Grid) MinSpacing(nDims int) (h float64) {
	h = g.Dx.Min()
	if nDims >= 2 && g.Ny > 1 {
		if dy := g.Dy.Min(); dy < h {
			h = dy
		}
	}
	if nDims >= 3 && g.Nz > 1 {
		if dz := g.Dz.Min(); dz < h {
			h = dz
		}
	}
	return
}

func (g *Grid) Print() (txt string) {
	txt = fmt.Sprintf("%s grid, %dD, cells [%d,%d,%d], x [%8.5f,%8.5f]",
		g.Geometry.Print(), g.Dims(), g.Nx, g.Ny, g.Nz,
		g.Xcc.Min(), g.Xcc.Max())
	return
}
