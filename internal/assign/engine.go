package assign

import (
	"sort"
	"time"

	"github.com/ctessum/geom"
	"github.com/ctessum/geom/index/rtree"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/stadt-karlsruhe/geo-assigner/internal/feature"
)

// ProgressFunc is called once before each target is processed, with the
// number of already processed targets and the total target count.
type ProgressFunc func(done, total int)

// Option configures a single assignment run.
type Option func(*engine)

// WithProgress sets the progress callback.
func WithProgress(fn ProgressFunc) Option {
	return func(e *engine) { e.progress = fn }
}

// WithSpatialIndex prefilters candidate sources per target with a
// bounding-box rtree. Candidates are replayed in source-collection order,
// so strategy hook order and results are identical to the plain scan.
func WithSpatialIndex() Option {
	return func(e *engine) { e.useIndex = true }
}

type engine struct {
	progress ProgressFunc
	useIndex bool
}

// indexedGeom ties a source geometry to its collection position so that
// rtree hits can be replayed in collection order. Embedding the geometry
// satisfies the tree's entry interface.
type indexedGeom struct {
	geom.Geom
	pos int
}

// Assign pairs every target feature with every source feature whose
// geometry intersects it and lets the strategy resolve the target's
// property. Target properties are mutated in place; source features are
// never mutated. Both collections are converted up front, so a malformed
// geometry aborts the run before anything is touched.
func Assign(source, target *feature.Collection, strategy Strategy, opts ...Option) error {
	var e engine
	for _, opt := range opts {
		opt(&e)
	}

	start := time.Now()

	sources, err := toElements(source)
	if err != nil {
		return eris.Wrap(err, "assign: convert source collection")
	}
	targets, err := toElements(target)
	if err != nil {
		return eris.Wrap(err, "assign: convert target collection")
	}

	candidates := func(_ *Element) ([]*Element, error) { return sources, nil }
	if e.useIndex {
		tree := rtree.NewTree(25, 50)
		for i, s := range sources {
			tree.Insert(&indexedGeom{Geom: s.Geom(), pos: i})
		}
		candidates = func(t *Element) ([]*Element, error) {
			hits := tree.SearchIntersect(t.Bounds())
			idx := make([]int, 0, len(hits))
			for _, h := range hits {
				ig, ok := h.(*indexedGeom)
				if !ok {
					return nil, eris.Errorf("assign: unexpected index entry %T", h)
				}
				idx = append(idx, ig.pos)
			}
			sort.Ints(idx)
			ordered := make([]*Element, len(idx))
			for i, j := range idx {
				ordered[i] = sources[j]
			}
			return ordered, nil
		}
	}

	zap.L().Debug("assign: starting run",
		zap.Int("sources", len(sources)),
		zap.Int("targets", len(targets)),
		zap.Bool("spatial_index", e.useIndex),
	)

	for i, t := range targets {
		if e.progress != nil {
			e.progress(i, len(targets))
		}
		if err := strategy.Begin(t); err != nil {
			return eris.Wrapf(err, "assign: begin target %d", i)
		}

		cands, err := candidates(t)
		if err != nil {
			return err
		}
		for _, s := range cands {
			overlap, err := t.Intersect(s)
			if err != nil {
				return eris.Wrapf(err, "assign: intersect target %d", i)
			}
			if overlap == nil {
				continue
			}
			if err := strategy.Intersection(s, t, overlap); err != nil {
				return eris.Wrapf(err, "assign: resolve target %d", i)
			}
		}

		if err := strategy.End(t); err != nil {
			return eris.Wrapf(err, "assign: end target %d", i)
		}
	}

	zap.L().Debug("assign: run complete",
		zap.Int("targets", len(targets)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return nil
}

// toElements converts a collection to elements, order preserved.
func toElements(c *feature.Collection) ([]*Element, error) {
	elements := make([]*Element, len(c.Features))
	for i, f := range c.Features {
		el, err := NewElement(f)
		if err != nil {
			return nil, eris.Wrapf(err, "feature %d", i)
		}
		elements[i] = el
	}
	return elements, nil
}
