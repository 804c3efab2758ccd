package assign

import (
	"sort"
	"sync"

	"github.com/ctessum/geom"
	"github.com/rotisserie/eris"
)

// Strategy resolves conflicts when several source features intersect the
// same target. One instance is bound to exactly one property name for the
// duration of a run. The engine calls Begin once per target before any
// intersection test, Intersection once per intersecting source/target pair
// in source-collection order, and End once per target afterwards. Any
// error aborts the whole run.
type Strategy interface {
	Begin(target *Element) error
	Intersection(source, target *Element, overlap geom.Geom) error
	End(target *Element) error
}

// LastValueStrategy keeps the value from the last intersecting source in
// collection order. Targets with no intersecting source end up without the
// property.
type LastValueStrategy struct {
	Property string
}

// NewLastValueStrategy returns a LastValueStrategy bound to property.
func NewLastValueStrategy(property string) *LastValueStrategy {
	return &LastValueStrategy{Property: property}
}

// Begin clears any pre-existing value, tolerating absence.
func (s *LastValueStrategy) Begin(target *Element) error {
	if err := target.DeleteProperty(s.Property); err != nil && !eris.Is(err, ErrPropertyNotFound) {
		return err
	}
	return nil
}

// Intersection overwrites the target's property with the source's value.
func (s *LastValueStrategy) Intersection(source, target *Element, _ geom.Geom) error {
	v, err := source.Property(s.Property)
	if err != nil {
		return err
	}
	target.SetProperty(s.Property, v)
	return nil
}

// End is a no-op.
func (s *LastValueStrategy) End(_ *Element) error { return nil }

// ListValuesStrategy collects the values from all intersecting sources in
// collection order, duplicates included. Targets with no intersecting
// source end up with an empty list.
type ListValuesStrategy struct {
	Property string
}

// NewListValuesStrategy returns a ListValuesStrategy bound to property.
func NewListValuesStrategy(property string) *ListValuesStrategy {
	return &ListValuesStrategy{Property: property}
}

// Begin resets the property to an empty list, so re-running on the same
// collection does not accumulate values.
func (s *ListValuesStrategy) Begin(target *Element) error {
	target.SetProperty(s.Property, []interface{}{})
	return nil
}

// Intersection appends the source's value to the target's list.
func (s *ListValuesStrategy) Intersection(source, target *Element, _ geom.Geom) error {
	v, err := source.Property(s.Property)
	if err != nil {
		return err
	}
	cur, err := target.Property(s.Property)
	if err != nil {
		return err
	}
	list, ok := cur.([]interface{})
	if !ok {
		return eris.Errorf("assign: property %q is not a list", s.Property)
	}
	target.SetProperty(s.Property, append(list, v))
	return nil
}

// End is a no-op.
func (s *ListValuesStrategy) End(_ *Element) error { return nil }

// StrategyFunc builds a strategy bound to the given property name.
type StrategyFunc func(property string) Strategy

var (
	strategyMu sync.RWMutex
	strategies = map[string]StrategyFunc{
		"last": func(p string) Strategy { return NewLastValueStrategy(p) },
		"list": func(p string) Strategy { return NewListValuesStrategy(p) },
	}
)

// RegisterStrategy makes a strategy constructor available under the given
// selector. Registering an existing selector replaces it.
func RegisterStrategy(name string, fn StrategyFunc) {
	strategyMu.Lock()
	defer strategyMu.Unlock()
	strategies[name] = fn
}

// NewStrategy builds the named strategy bound to property. Unknown
// selectors are a configuration error, surfaced before any geometry work.
func NewStrategy(name, property string) (Strategy, error) {
	strategyMu.RLock()
	fn, ok := strategies[name]
	strategyMu.RUnlock()
	if !ok {
		return nil, eris.Errorf("assign: unknown strategy %q", name)
	}
	return fn(property), nil
}

// StrategyNames returns the registered strategy selectors, sorted.
func StrategyNames() []string {
	strategyMu.RLock()
	defer strategyMu.RUnlock()
	names := make([]string, 0, len(strategies))
	for name := range strategies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
