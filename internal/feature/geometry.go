package feature

import (
	"encoding/json"

	"github.com/ctessum/geom"
	"github.com/rotisserie/eris"
)

// geometry mirrors the GeoJSON geometry object. Coordinates stay raw until
// the type is known.
type geometry struct {
	Type        string          `json:"type"`
	Coordinates json.RawMessage `json:"coordinates"`
}

// ParseGeometry decodes a raw GeoJSON geometry into a geom value. Supported
// types are Point, MultiPoint, LineString, MultiLineString, Polygon, and
// MultiPolygon; anything else is a malformed-geometry error.
func ParseGeometry(raw json.RawMessage) (geom.Geom, error) {
	if len(raw) == 0 {
		return nil, eris.New("feature: missing geometry")
	}
	var g geometry
	if err := json.Unmarshal(raw, &g); err != nil {
		return nil, eris.Wrap(err, "feature: parse geometry")
	}

	switch g.Type {
	case "Point":
		var c []float64
		if err := json.Unmarshal(g.Coordinates, &c); err != nil {
			return nil, eris.Wrap(err, "feature: parse Point coordinates")
		}
		return makePoint(c)
	case "MultiPoint":
		var c [][]float64
		if err := json.Unmarshal(g.Coordinates, &c); err != nil {
			return nil, eris.Wrap(err, "feature: parse MultiPoint coordinates")
		}
		points, err := makePoints(c)
		if err != nil {
			return nil, err
		}
		return geom.MultiPoint(points), nil
	case "LineString":
		var c [][]float64
		if err := json.Unmarshal(g.Coordinates, &c); err != nil {
			return nil, eris.Wrap(err, "feature: parse LineString coordinates")
		}
		points, err := makePoints(c)
		if err != nil {
			return nil, err
		}
		return geom.LineString(points), nil
	case "MultiLineString":
		var c [][][]float64
		if err := json.Unmarshal(g.Coordinates, &c); err != nil {
			return nil, eris.Wrap(err, "feature: parse MultiLineString coordinates")
		}
		mls := make(geom.MultiLineString, len(c))
		for i, line := range c {
			points, err := makePoints(line)
			if err != nil {
				return nil, err
			}
			mls[i] = geom.LineString(points)
		}
		return mls, nil
	case "Polygon":
		var c [][][]float64
		if err := json.Unmarshal(g.Coordinates, &c); err != nil {
			return nil, eris.Wrap(err, "feature: parse Polygon coordinates")
		}
		return makePolygon(c)
	case "MultiPolygon":
		var c [][][][]float64
		if err := json.Unmarshal(g.Coordinates, &c); err != nil {
			return nil, eris.Wrap(err, "feature: parse MultiPolygon coordinates")
		}
		mp := make(geom.MultiPolygon, len(c))
		for i, poly := range c {
			p, err := makePolygon(poly)
			if err != nil {
				return nil, err
			}
			mp[i] = p
		}
		return mp, nil
	default:
		return nil, eris.Errorf("feature: unsupported geometry type %q", g.Type)
	}
}

// EncodeGeometry is the reverse of ParseGeometry. It is used when features
// are built from non-GeoJSON inputs such as shapefiles.
func EncodeGeometry(g geom.Geom) (json.RawMessage, error) {
	switch gg := g.(type) {
	case geom.Point:
		return marshalGeometry("Point", pointCoords(gg))
	case geom.MultiPoint:
		coords := make([][]float64, len(gg))
		for i, p := range gg {
			coords[i] = pointCoords(p)
		}
		return marshalGeometry("MultiPoint", coords)
	case geom.LineString:
		return marshalGeometry("LineString", pathCoords(gg))
	case geom.MultiLineString:
		coords := make([][][]float64, len(gg))
		for i, ls := range gg {
			coords[i] = pathCoords(ls)
		}
		return marshalGeometry("MultiLineString", coords)
	case geom.Polygon:
		return marshalGeometry("Polygon", polygonCoords(gg))
	case geom.MultiPolygon:
		coords := make([][][][]float64, len(gg))
		for i, p := range gg {
			coords[i] = polygonCoords(p)
		}
		return marshalGeometry("MultiPolygon", coords)
	default:
		return nil, eris.Errorf("feature: cannot encode geometry type %T", g)
	}
}

func marshalGeometry(typ string, coords interface{}) (json.RawMessage, error) {
	raw, err := json.Marshal(struct {
		Type        string      `json:"type"`
		Coordinates interface{} `json:"coordinates"`
	}{Type: typ, Coordinates: coords})
	if err != nil {
		return nil, eris.Wrapf(err, "feature: encode %s", typ)
	}
	return raw, nil
}

func makePoint(c []float64) (geom.Point, error) {
	if len(c) < 2 {
		return geom.Point{}, eris.New("feature: point needs at least two coordinates")
	}
	return geom.Point{X: c[0], Y: c[1]}, nil
}

func makePoints(c [][]float64) ([]geom.Point, error) {
	points := make([]geom.Point, len(c))
	for i, pc := range c {
		p, err := makePoint(pc)
		if err != nil {
			return nil, err
		}
		points[i] = p
	}
	return points, nil
}

func makePolygon(c [][][]float64) (geom.Polygon, error) {
	if len(c) == 0 {
		return nil, eris.New("feature: polygon has no rings")
	}
	poly := make(geom.Polygon, len(c))
	for i, ring := range c {
		points, err := makePoints(ring)
		if err != nil {
			return nil, err
		}
		poly[i] = points
	}
	return poly, nil
}

func pointCoords(p geom.Point) []float64 {
	return []float64{p.X, p.Y}
}

func pathCoords(points []geom.Point) [][]float64 {
	coords := make([][]float64, len(points))
	for i, p := range points {
		coords[i] = pointCoords(p)
	}
	return coords
}

func polygonCoords(p geom.Polygon) [][][]float64 {
	coords := make([][][]float64, len(p))
	for i, ring := range p {
		coords[i] = pathCoords(ring)
	}
	return coords
}
