package assign

import (
	"testing"

	"github.com/ctessum/geom"
	"github.com/stretchr/testify/assert"
)

func TestSegmentIntersection(t *testing.T) {
	tests := []struct {
		name           string
		p1, p2, p3, p4 geom.Point
		want           []geom.Point
	}{
		{
			name: "crossing segments",
			p1:   geom.Point{X: 0, Y: 0}, p2: geom.Point{X: 1, Y: 1},
			p3: geom.Point{X: 0, Y: 1}, p4: geom.Point{X: 1, Y: 0},
			want: []geom.Point{{X: 0.5, Y: 0.5}},
		},
		{
			name: "touching at endpoint",
			p1:   geom.Point{X: 0, Y: 0}, p2: geom.Point{X: 1, Y: 0},
			p3: geom.Point{X: 1, Y: 0}, p4: geom.Point{X: 2, Y: 1},
			want: []geom.Point{{X: 1, Y: 0}},
		},
		{
			name: "disjoint segments",
			p1:   geom.Point{X: 0, Y: 0}, p2: geom.Point{X: 1, Y: 0},
			p3: geom.Point{X: 2, Y: 1}, p4: geom.Point{X: 3, Y: 1},
			want: nil,
		},
		{
			name: "parallel segments",
			p1:   geom.Point{X: 0, Y: 0}, p2: geom.Point{X: 1, Y: 0},
			p3: geom.Point{X: 0, Y: 1}, p4: geom.Point{X: 1, Y: 1},
			want: nil,
		},
		{
			name: "collinear overlap",
			p1:   geom.Point{X: 0, Y: 0}, p2: geom.Point{X: 2, Y: 0},
			p3: geom.Point{X: 1, Y: 0}, p4: geom.Point{X: 3, Y: 0},
			want: []geom.Point{{X: 1, Y: 0}, {X: 2, Y: 0}},
		},
		{
			name: "collinear disjoint",
			p1:   geom.Point{X: 0, Y: 0}, p2: geom.Point{X: 1, Y: 0},
			p3: geom.Point{X: 2, Y: 0}, p4: geom.Point{X: 3, Y: 0},
			want: nil,
		},
		{
			name: "collinear touch at a single point",
			p1:   geom.Point{X: 0, Y: 0}, p2: geom.Point{X: 1, Y: 0},
			p3: geom.Point{X: 1, Y: 0}, p4: geom.Point{X: 2, Y: 0},
			want: []geom.Point{{X: 1, Y: 0}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, segmentIntersection(tt.p1, tt.p2, tt.p3, tt.p4))
		})
	}
}

func TestIntersectLinear_MultiSegment(t *testing.T) {
	// A zig-zag crossing a straight line twice yields two distinct points.
	a := geom.LineString{{X: 0, Y: -1}, {X: 1, Y: 1}, {X: 2, Y: -1}}
	b := geom.LineString{{X: -1, Y: 0}, {X: 3, Y: 0}}

	g := intersectLinear(a, b)
	mp, ok := g.(geom.MultiPoint)
	assert.True(t, ok, "expected a MultiPoint, got %T", g)
	assert.Len(t, mp, 2)
}
