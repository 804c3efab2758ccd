package feature

import (
	"encoding/json"
	"testing"

	"github.com/ctessum/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseGeometry(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want geom.Geom
	}{
		{
			name: "point",
			raw:  `{"type":"Point","coordinates":[1,2]}`,
			want: geom.Point{X: 1, Y: 2},
		},
		{
			name: "multipoint",
			raw:  `{"type":"MultiPoint","coordinates":[[1,2],[3,4]]}`,
			want: geom.MultiPoint{{X: 1, Y: 2}, {X: 3, Y: 4}},
		},
		{
			name: "linestring",
			raw:  `{"type":"LineString","coordinates":[[0,0],[1,1]]}`,
			want: geom.LineString{{X: 0, Y: 0}, {X: 1, Y: 1}},
		},
		{
			name: "multilinestring",
			raw:  `{"type":"MultiLineString","coordinates":[[[0,0],[1,1]],[[2,2],[3,3]]]}`,
			want: geom.MultiLineString{
				{{X: 0, Y: 0}, {X: 1, Y: 1}},
				{{X: 2, Y: 2}, {X: 3, Y: 3}},
			},
		},
		{
			name: "polygon",
			raw:  `{"type":"Polygon","coordinates":[[[0,0],[1,0],[1,1],[0,0]]]}`,
			want: geom.Polygon{{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 0}}},
		},
		{
			name: "multipolygon",
			raw:  `{"type":"MultiPolygon","coordinates":[[[[0,0],[1,0],[1,1],[0,0]]]]}`,
			want: geom.MultiPolygon{{{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 0}}}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := ParseGeometry(json.RawMessage(tt.raw))
			require.NoError(t, err)
			assert.Equal(t, tt.want, g)
		})
	}
}

func TestParseGeometry_Errors(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "empty", raw: ""},
		{name: "not json", raw: "{{"},
		{name: "unsupported type", raw: `{"type":"GeometryCollection","geometries":[]}`},
		{name: "point with one coordinate", raw: `{"type":"Point","coordinates":[1]}`},
		{name: "bad coordinate shape", raw: `{"type":"Polygon","coordinates":[0,0]}`},
		{name: "polygon without rings", raw: `{"type":"Polygon","coordinates":[]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseGeometry(json.RawMessage(tt.raw))
			require.Error(t, err)
		})
	}
}

func TestEncodeGeometry_RoundTrip(t *testing.T) {
	geoms := []geom.Geom{
		geom.Point{X: 1.5, Y: -2},
		geom.MultiPoint{{X: 0, Y: 0}, {X: 1, Y: 1}},
		geom.LineString{{X: 0, Y: 0}, {X: 2, Y: 2}},
		geom.MultiLineString{{{X: 0, Y: 0}, {X: 1, Y: 0}}},
		geom.Polygon{{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 0}}},
		geom.MultiPolygon{{{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 0}}}},
	}
	for _, g := range geoms {
		raw, err := EncodeGeometry(g)
		require.NoError(t, err)

		back, err := ParseGeometry(raw)
		require.NoError(t, err)
		assert.Equal(t, g, back)
	}
}

func TestEncodeGeometry_Unsupported(t *testing.T) {
	_, err := EncodeGeometry(nil)
	require.Error(t, err)
}
