package geometry

import "math"

type Point2 struct {
	X, Y float64
}

type BoundingBox struct {
	XMin [2]float64
	XMax [2]float64
}

func NewBoundingBox(geom []Point2) (box *BoundingBox) {
	if len(geom) == 0 {
		return nil
	}
	box = new(BoundingBox)
	box.XMin[0], box.XMin[1] = geom[0].X, geom[0].Y
	box.XMax[0], box.XMax[1] = geom[0].X, geom[0].Y
	for _, point := range geom {
		box.XMin[0] = math.Min(box.XMin[0], point.X)
		box.XMax[0] = math.Max(box.XMax[0], point.X)
		box.XMin[1] = math.Min(box.XMin[1], point.Y)
		box.XMax[1] = math.Max(box.XMax[1], point.Y)
	}
	return box
}

func (bb *BoundingBox) PointInside(point Point2) (within bool) {
	if point.X > bb.XMax[0] || point.X < bb.XMin[0] {
		return false
	}
	if point.Y > bb.XMax[1] || point.Y < bb.XMin[1] {
		return false
	}
	return true
}

// PolyLine is an open chain of surface sample points, the form the airfoil
// rasterizer publishes for its upper and lower surfaces.
type PolyLine struct {
	Box      *BoundingBox
	Geometry []Point2
}

func NewPolyLine(geom []Point2) (pl *PolyLine) {
	pl = new(PolyLine)
	pl.Box = NewBoundingBox(geom)
	pl.Geometry = geom
	return
}

/*
InterpY evaluates the chain at x by linear interpolation between the
bracketing sample points. The chain must be monotone in X. Queries outside
the sampled range report ok = false.
*/
func (pl *PolyLine) InterpY(x float64) (y float64, ok bool) {
	for i := 0; i < len(pl.Geometry)-1; i++ {
		pt0 := pl.Geometry[i]
		pt1 := pl.Geometry[i+1]
		if x < math.Min(pt0.X, pt1.X) || x > math.Max(pt0.X, pt1.X) {
			continue
		}
		if pt1.X == pt0.X {
			return pt0.Y, true
		}
		frac := (x - pt0.X) / (pt1.X - pt0.X)
		return pt0.Y + frac*(pt1.Y-pt0.Y), true
	}
	return 0, false
}

type Polygon struct {
	Box      *BoundingBox
	Geometry []Point2
}

func NewPolygon(geom []Point2) (poly *Polygon) {
	/*
		Close off the polygon if needed
	*/
	if geom[len(geom)-1] != geom[0] {
		geom = append(geom, geom[0])
	}
	poly = new(Polygon)
	poly.Box = NewBoundingBox(geom)
	poly.Geometry = geom
	return
}

func (pg *Polygon) Area() (area float64) {
	/*
		Algorithm: Green's theorem in the plane
	*/
	for i := 0; i < len(pg.Geometry)-1; i++ {
		pt0 := pg.Geometry[i]
		pt1 := pg.Geometry[i+1]
		area += pt0.X*pt1.Y - pt1.X*pt0.Y
	}
	return 0.5 * area
}

func (pg *Polygon) PointInside(point Point2) (inside bool) {
	if !pg.Box.PointInside(point) {
		return false
	}
	/*
		Algorithm:
		Winding Number from http://geomalgorithms.com/a03-_inclusion.html#wn_PnPoly()
		if wn = 0, the point is outside
	*/

	/*
		isLeft(): tests if a point is Left|On|Right of an infinite line.
		Input:  three points P0, P1, and P2
		Return:
			>0 for P2 left of the line through P0 and P1
			=0 for P2  on the line
			<0 for P2  right of the line
	*/
	isLeft := func(P0, P1, P2 Point2) float64 {
		return (P1.X-P0.X)*(P2.Y-P0.Y) - (P2.X-P0.X)*(P1.Y-P0.Y)
	}

	var wn int
	for i := 0; i < len(pg.Geometry)-1; i++ {
		pt0 := pg.Geometry[i]
		pt1 := pg.Geometry[i+1]
		if pt0.Y <= point.Y {
			if pt1.Y > point.Y {
				if isLeft(pt0, pt1, point) > 0 {
					wn++
				}
			}
		} else {
			if pt1.Y <= point.Y {
				if isLeft(pt0, pt1, point) < 0 {
					wn--
				}
			}
		}
	}
	return wn != 0
}
