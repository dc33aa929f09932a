package patches

import (
	"fmt"

	"github.com/mphflow/goic/model"
)

/*
Model rasterizes a triangulated surface loaded from an STL file. Each cell
asks the point-in-mesh oracle for the fraction of jittered sample points
falling inside the placed model; the fraction is thresholded into eta.
With smoothing on, scores above the threshold saturate to one and lower
scores pass through as partial blend weights. Without smoothing the test
is binary. The mesh is released once the sweep completes.
*/
func (gen *Generator) Model(p *Patch) {
	mp := p.Model
	if mp == nil {
		panic(fmt.Errorf("unable to process model patch %d, no model file configured", p.ID))
	}
	var (
		g   = gen.Grid
		msh = model.Read(mp.FilePath, gen.Cfg.Verbose)
	)
	msh.Transform(model.TransformMatrix(mp.Transform))
	if gen.Cfg.Verbose {
		lo, hi := msh.BoundingBox()
		fmt.Printf("Transformed model bounds: X[%5.3f,%5.3f] Y[%5.3f,%5.3f] Z[%5.3f,%5.3f]\n",
			lo[0], hi[0], lo[1], hi[1], lo[2], hi[2])
	}
	dims := g.Dims()
	gen.parallelSweep(func(idx int) {
		i, j, k := g.Coords(idx)
		x, y, z := g.Center(i, j, k)
		spc := [3]float64{g.Dx.DataP[i], g.Dy.DataP[j], g.Dz.DataP[k]}
		if dims < 3 {
			spc[2] = 0
		}
		eta := msh.InsideFraction([3]float64{x, y, z}, spc, mp.SpcCount)
		if p.Smoothen {
			if eta > mp.Threshold {
				eta = 1.
			}
		} else {
			if eta > mp.Threshold {
				eta = 1.
			} else {
				eta = 0.
			}
		}
		if !gen.claims(p, eta > 0., idx) {
			return
		}
		gen.applyCell(p, eta, idx)
	})
	msh.Close()
}
