package feature

import (
	"strings"

	"github.com/ctessum/geom"
	"github.com/jonas-p/go-shp"
	"github.com/rotisserie/eris"
)

// LoadShapefile reads a .shp/.dbf pair into a feature collection. DBF
// attributes become feature properties; empty attribute values are omitted.
// A record whose shape cannot be represented is an error: no record is ever
// silently dropped.
func LoadShapefile(path string) (*Collection, error) {
	reader, err := shp.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "feature: open shapefile %s", path)
	}
	defer func() { _ = reader.Close() }()

	fields := reader.Fields()
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = strings.TrimRight(f.String(), "\x00")
	}

	c := NewCollection()

	for reader.Next() {
		n, shape := reader.Shape()

		g := shapeGeom(shape)
		if g == nil {
			return nil, eris.Errorf("feature: shapefile record %d has unsupported shape type %T", n, shape)
		}
		raw, err := EncodeGeometry(g)
		if err != nil {
			return nil, eris.Wrapf(err, "feature: shapefile record %d", n)
		}

		props := make(map[string]interface{}, len(names))
		for i, name := range names {
			val := strings.TrimSpace(strings.TrimRight(reader.Attribute(i), "\x00"))
			if val == "" {
				continue
			}
			props[name] = val
		}

		c.Features = append(c.Features, &Feature{
			Type:       "Feature",
			Geometry:   raw,
			Properties: props,
		})
	}

	return c, nil
}

// shapeGeom converts a go-shp shape to a geom value. Unsupported shape types
// return nil.
func shapeGeom(shape shp.Shape) geom.Geom {
	switch s := shape.(type) {
	case *shp.Point:
		return geom.Point{X: s.X, Y: s.Y}
	case *shp.PolyLine:
		return polyLineGeom(s)
	case *shp.Polygon:
		return polygonGeom(s)
	default:
		return nil
	}
}

// polyLineGeom converts a shapefile PolyLine to a MultiLineString.
func polyLineGeom(pl *shp.PolyLine) geom.Geom {
	if pl == nil || pl.NumParts == 0 || len(pl.Points) == 0 {
		return nil
	}
	mls := make(geom.MultiLineString, 0, pl.NumParts)
	for _, part := range shapeParts(pl.Parts, pl.NumParts, len(pl.Points)) {
		line := make(geom.LineString, 0, len(part))
		for _, p := range part {
			line = append(line, geom.Point{X: pl.Points[p].X, Y: pl.Points[p].Y})
		}
		mls = append(mls, line)
	}
	return mls
}

// polygonGeom converts a shapefile Polygon to a MultiPolygon, one
// single-ring polygon per part.
func polygonGeom(p *shp.Polygon) geom.Geom {
	if p == nil || p.NumParts == 0 || len(p.Points) == 0 {
		return nil
	}
	mp := make(geom.MultiPolygon, 0, p.NumParts)
	for _, part := range shapeParts(p.Parts, p.NumParts, len(p.Points)) {
		ring := make([]geom.Point, 0, len(part))
		for _, i := range part {
			ring = append(ring, geom.Point{X: p.Points[i].X, Y: p.Points[i].Y})
		}
		mp = append(mp, geom.Polygon{ring})
	}
	return mp
}

// shapeParts expands the shapefile part offsets into per-part point index
// ranges.
func shapeParts(parts []int32, numParts int32, numPoints int) [][]int32 {
	out := make([][]int32, 0, numParts)
	for i := int32(0); i < numParts; i++ {
		start := parts[i]
		end := int32(numPoints)
		if i+1 < numParts {
			end = parts[i+1]
		}
		idx := make([]int32, 0, end-start)
		for j := start; j < end; j++ {
			idx = append(idx, j)
		}
		out = append(out, idx)
	}
	return out
}
