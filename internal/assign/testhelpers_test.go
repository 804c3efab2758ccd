package assign

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/stadt-karlsruhe/geo-assigner/internal/feature"
)

func rawGeometry(t *testing.T, typ string, coords interface{}) json.RawMessage {
	t.Helper()
	raw, err := json.Marshal(map[string]interface{}{"type": typ, "coordinates": coords})
	require.NoError(t, err)
	return raw
}

func pointFeature(t *testing.T, x, y float64, props map[string]interface{}) *feature.Feature {
	t.Helper()
	return &feature.Feature{
		Type:       "Feature",
		Geometry:   rawGeometry(t, "Point", []float64{x, y}),
		Properties: props,
	}
}

// squareFeature builds a closed square ring with its lower-left corner at
// (minX, minY).
func squareFeature(t *testing.T, minX, minY, size float64, props map[string]interface{}) *feature.Feature {
	t.Helper()
	ring := [][]float64{
		{minX, minY},
		{minX + size, minY},
		{minX + size, minY + size},
		{minX, minY + size},
		{minX, minY},
	}
	return &feature.Feature{
		Type:       "Feature",
		Geometry:   rawGeometry(t, "Polygon", [][][]float64{ring}),
		Properties: props,
	}
}

func lineFeature(t *testing.T, coords [][]float64, props map[string]interface{}) *feature.Feature {
	t.Helper()
	return &feature.Feature{
		Type:       "Feature",
		Geometry:   rawGeometry(t, "LineString", coords),
		Properties: props,
	}
}

func mustElement(t *testing.T, f *feature.Feature) *Element {
	t.Helper()
	el, err := NewElement(f)
	require.NoError(t, err)
	return el
}

// cloneCollection deep-copies a collection through JSON.
func cloneCollection(t *testing.T, c *feature.Collection) *feature.Collection {
	t.Helper()
	data, err := json.Marshal(c)
	require.NoError(t, err)
	var out feature.Collection
	require.NoError(t, json.Unmarshal(data, &out))
	return &out
}
