package assign

import (
	"math"

	"github.com/ctessum/geom"
	"github.com/ctessum/geom/op"
	"github.com/rotisserie/eris"
)

// intersectGeom dispatches the intersection of two geometries to the
// geometry engine by their kind. The result is nil when the shapes do not
// overlap.
func intersectGeom(a, b geom.Geom) (geom.Geom, error) {
	switch g := a.(type) {
	case geom.Polygonal:
		switch h := b.(type) {
		case geom.Polygonal:
			return nonEmpty(g.Intersection(h)), nil
		case geom.Linear:
			return nonEmpty(h.Clip(g)), nil
		case geom.PointLike:
			return pointsInPolygonal(h, g), nil
		}
	case geom.Linear:
		switch h := b.(type) {
		case geom.Polygonal:
			return nonEmpty(g.Clip(h)), nil
		case geom.Linear:
			return intersectLinear(g, h), nil
		case geom.PointLike:
			return pointsOnLinear(h, g), nil
		}
	case geom.PointLike:
		switch h := b.(type) {
		case geom.Polygonal:
			return pointsInPolygonal(g, h), nil
		case geom.Linear:
			return pointsOnLinear(g, h), nil
		case geom.PointLike:
			return commonPoints(g, h), nil
		}
	}
	return nil, eris.Errorf("assign: cannot intersect %T with %T", a, b)
}

// nonEmpty maps results without any coordinates to nil.
func nonEmpty(g geom.Geom) geom.Geom {
	if g == nil || g.Len() == 0 {
		return nil
	}
	return g
}

// geomPoints drains the geometry's point iterator.
func geomPoints(g geom.Geom) []geom.Point {
	pts := make([]geom.Point, 0, g.Len())
	next := g.Points()
	for i := 0; i < g.Len(); i++ {
		pts = append(pts, next())
	}
	return pts
}

// pointsInPolygonal returns the points of p inside or on the edge of poly,
// or nil when there are none.
func pointsInPolygonal(p geom.PointLike, poly geom.Polygonal) geom.Geom {
	var hits []geom.Point
	for _, pt := range geomPoints(p) {
		if pt.Within(poly) != geom.Outside {
			hits = append(hits, pt)
		}
	}
	return pointResult(hits)
}

// pointsOnLinear returns the points of p lying on l, or nil when there are
// none. Point-on-line membership is a zero-distance test.
func pointsOnLinear(p geom.PointLike, l geom.Linear) geom.Geom {
	var hits []geom.Point
	for _, pt := range geomPoints(p) {
		if op.Distance(pt, l) == 0 {
			hits = append(hits, pt)
		}
	}
	return pointResult(hits)
}

// commonPoints returns the points shared by a and b, or nil when there are
// none.
func commonPoints(a, b geom.PointLike) geom.Geom {
	bPts := geomPoints(b)
	var hits []geom.Point
	for _, pa := range geomPoints(a) {
		for _, pb := range bPts {
			if pa.Equals(pb) {
				hits = append(hits, pa)
				break
			}
		}
	}
	return pointResult(hits)
}

// intersectLinear intersects two lines segment by segment. The geometry
// engine has no line/line overlay, so crossings and collinear overlaps are
// computed directly: crossings collect as points, collinear overlaps as
// line segments.
func intersectLinear(a, b geom.Linear) geom.Geom {
	bPaths := linearPaths(b)
	var pts []geom.Point
	var segs geom.MultiLineString

	for _, la := range linearPaths(a) {
		for i := 0; i+1 < len(la); i++ {
			for _, lb := range bPaths {
				for j := 0; j+1 < len(lb); j++ {
					hit := segmentIntersection(la[i], la[i+1], lb[j], lb[j+1])
					switch len(hit) {
					case 1:
						pts = appendPointUnique(pts, hit[0])
					case 2:
						segs = append(segs, geom.LineString{hit[0], hit[1]})
					}
				}
			}
		}
	}

	switch len(segs) {
	case 0:
		return pointResult(pts)
	case 1:
		return segs[0]
	default:
		return segs
	}
}

// linearPaths exposes the concrete point sequences of a line geometry.
func linearPaths(l geom.Linear) []geom.LineString {
	switch ll := l.(type) {
	case geom.LineString:
		return []geom.LineString{ll}
	case geom.MultiLineString:
		return ll
	default:
		return nil
	}
}

// segmentIntersection intersects the segments p1p2 and p3p4. The result is
// empty when they do not touch, one point for a crossing or touch, and two
// points (the endpoints of the shared stretch) for a collinear overlap.
func segmentIntersection(p1, p2, p3, p4 geom.Point) []geom.Point {
	d1 := geom.Point{X: p2.X - p1.X, Y: p2.Y - p1.Y}
	d2 := geom.Point{X: p4.X - p3.X, Y: p4.Y - p3.Y}
	w := geom.Point{X: p3.X - p1.X, Y: p3.Y - p1.Y}

	denom := cross(d1, d2)
	if denom != 0 {
		t := cross(w, d2) / denom
		u := cross(w, d1) / denom
		if t < 0 || t > 1 || u < 0 || u > 1 {
			return nil
		}
		return []geom.Point{{X: p1.X + t*d1.X, Y: p1.Y + t*d1.Y}}
	}

	// Parallel; only collinear segments can touch.
	if cross(w, d1) != 0 {
		return nil
	}
	len2 := d1.X*d1.X + d1.Y*d1.Y
	if len2 == 0 {
		// p1p2 is degenerate.
		if op.Distance(p1, geom.LineString{p3, p4}) == 0 {
			return []geom.Point{p1}
		}
		return nil
	}
	t0 := (w.X*d1.X + w.Y*d1.Y) / len2
	t1 := ((p4.X-p1.X)*d1.X + (p4.Y-p1.Y)*d1.Y) / len2
	if t0 > t1 {
		t0, t1 = t1, t0
	}
	t0 = math.Max(t0, 0)
	t1 = math.Min(t1, 1)
	if t0 > t1 {
		return nil
	}
	start := geom.Point{X: p1.X + t0*d1.X, Y: p1.Y + t0*d1.Y}
	end := geom.Point{X: p1.X + t1*d1.X, Y: p1.Y + t1*d1.Y}
	if start.Equals(end) {
		return []geom.Point{start}
	}
	return []geom.Point{start, end}
}

func cross(a, b geom.Point) float64 {
	return a.X*b.Y - a.Y*b.X
}

func appendPointUnique(pts []geom.Point, p geom.Point) []geom.Point {
	for _, q := range pts {
		if q.Equals(p) {
			return pts
		}
	}
	return append(pts, p)
}

func pointResult(hits []geom.Point) geom.Geom {
	switch len(hits) {
	case 0:
		return nil
	case 1:
		return hits[0]
	default:
		return geom.MultiPoint(hits)
	}
}
