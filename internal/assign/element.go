// Package assign copies property values from source features onto the
// target features they spatially intersect, using a pluggable conflict
// resolution strategy.
package assign

import (
	"github.com/ctessum/geom"
	"github.com/rotisserie/eris"

	"github.com/stadt-karlsruhe/geo-assigner/internal/feature"
)

// ErrPropertyNotFound is returned when a property is read or deleted on an
// element that does not carry it.
var ErrPropertyNotFound = eris.New("assign: property not found")

// Element is a view over one feature, pairing its parsed geometry with
// direct access to its property map. The map is the feature's own, so any
// write through the element is immediately visible on the backing feature.
type Element struct {
	feature *feature.Feature
	geom    geom.Geom
}

// NewElement parses the feature's geometry and wraps it. A geometry that
// cannot be parsed is an error; nothing is mutated in that case.
func NewElement(f *feature.Feature) (*Element, error) {
	g, err := feature.ParseGeometry(f.Geometry)
	if err != nil {
		return nil, err
	}
	return &Element{feature: f, geom: g}, nil
}

// Feature returns the backing feature.
func (e *Element) Feature() *feature.Feature { return e.feature }

// Geom returns the parsed geometry.
func (e *Element) Geom() geom.Geom { return e.geom }

// Bounds returns the geometry's bounding box.
func (e *Element) Bounds() *geom.Bounds { return e.geom.Bounds() }

// Property returns the named property, or ErrPropertyNotFound if the
// feature does not carry it.
func (e *Element) Property(key string) (interface{}, error) {
	v, ok := e.feature.Properties[key]
	if !ok {
		return nil, eris.Wrapf(ErrPropertyNotFound, "property %q", key)
	}
	return v, nil
}

// SetProperty stores the property on the backing feature, overwriting any
// existing value.
func (e *Element) SetProperty(key string, value interface{}) {
	if e.feature.Properties == nil {
		e.feature.Properties = make(map[string]interface{})
	}
	e.feature.Properties[key] = value
}

// DeleteProperty removes the property from the backing feature. Deleting an
// absent property returns ErrPropertyNotFound; callers that tolerate
// absence must check for it.
func (e *Element) DeleteProperty(key string) error {
	if _, ok := e.feature.Properties[key]; !ok {
		return eris.Wrapf(ErrPropertyNotFound, "property %q", key)
	}
	delete(e.feature.Properties, key)
	return nil
}

// Intersect returns the geometry of the spatial overlap between e and
// other, or nil when the shapes do not overlap. The computation is
// delegated entirely to the geometry engine.
func (e *Element) Intersect(other *Element) (geom.Geom, error) {
	return intersectGeom(e.geom, other.geom)
}
