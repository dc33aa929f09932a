package patches

/*
LineSegment claims the 1D interval [cx - L/2, cx + L/2]. The segment is
boundary exact and never smoothed. Densities left near zero by the
assignment are repaired from the Tait relation under the 4-equation model.
*/
func (gen *Generator) LineSegment(p *Patch) {
	var (
		g    = gen.Grid
		xMin = p.Centroid[0] - 0.5*p.Length[0]
		xMax = p.Centroid[0] + 0.5*p.Length[0]
	)
	gen.parallelSweep(func(idx int) {
		i, _, _ := g.Coords(idx)
		x := g.Xcc.DataP[i]
		contained := x >= xMin && x <= xMax
		if !gen.claims(p, contained, idx) {
			return
		}
		gen.applyCell(p, 1., idx)
		gen.taitRepair(idx)
	})
}

/*
BubblePulse is the 1D segment shell used for acoustic pulse cases. It
assigns state like LineSegment but deliberately never records ownership,
so a later patch sees these cells as belonging to whoever owned them
before. Downstream cases depend on that behavior.
*/
func (gen *Generator) BubblePulse(p *Patch) {
	var (
		g    = gen.Grid
		xMin = p.Centroid[0] - 0.5*p.Length[0]
		xMax = p.Centroid[0] + 0.5*p.Length[0]
	)
	gen.parallelSweep(func(idx int) {
		i, j, k := g.Coords(idx)
		x := g.Xcc.DataP[i]
		contained := x >= xMin && x <= xMax
		if !gen.claims(p, contained, idx) {
			return
		}
		gen.Assign.AssignCellState(&p.State, i, j, k, 1., gen.Q)
	})
}
