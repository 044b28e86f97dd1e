package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/dgallion1/headtree/internal/deps"
	"github.com/dgallion1/headtree/internal/headfinder"
	"github.com/dgallion1/headtree/internal/metrics"
	"github.com/dgallion1/headtree/internal/percolate"
	"github.com/dgallion1/headtree/internal/transform"
	"github.com/dgallion1/headtree/internal/tree"
)

var (
	// ErrNoTree is returned when there is nothing to annotate.
	ErrNoTree = errors.New("no tree to annotate")

	// ErrEmptyAfterTransform is returned when the transforms removed every
	// node, e.g. a tree made only of empty elements.
	ErrEmptyAfterTransform = errors.New("tree is empty after transform")
)

// Result is the annotation of one tree.
type Result struct {
	Tree         string     `json:"tree"`
	Heads        []NodeHead `json:"heads"`
	Dependencies []Arc      `json:"dependencies"`
}

// NodeHead is the head of one phrase. Start and End are word offsets
// (half-open); Index is the 1-based position of the head word.
type NodeHead struct {
	Label string `json:"label"`
	Start int    `json:"start"`
	End   int    `json:"end"`
	Word  string `json:"word"`
	Tag   string `json:"tag"`
	Index int    `json:"index"`
}

type Arc struct {
	Relation  string `json:"relation"`
	Governor  string `json:"governor"`
	GovIndex  int    `json:"gov_index"`
	Dependent string `json:"dependent"`
	DepIndex  int    `json:"dep_index"`
}

func (a Arc) String() string {
	return fmt.Sprintf("%s(%s-%d, %s-%d)", a.Relation, a.Governor, a.GovIndex, a.Dependent, a.DepIndex)
}

// Annotator transforms a tree, percolates heads and reads off dependencies.
// It is safe for concurrent use; every call works on its own copy.
type Annotator struct {
	pipeline *transform.Pipeline
	finder   *headfinder.Finder
	cache    *Cache
	metrics  *metrics.Metrics
	tracer   trace.Tracer
	log      *slog.Logger
}

// NewAnnotator builds the transform pipeline for finder. m may be nil; a
// cacheSize of zero disables caching.
func NewAnnotator(finder *headfinder.Finder, log *slog.Logger, m *metrics.Metrics, cacheSize int) (*Annotator, error) {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	p, err := transform.NewPipeline(
		transform.WithLogger(log),
		transform.WithFinder(finder),
		transform.WithObserver(m.ObserveStage),
	)
	if err != nil {
		return nil, fmt.Errorf("build transform pipeline: %w", err)
	}
	return &Annotator{
		pipeline: p,
		finder:   finder,
		cache:    NewCache(cacheSize),
		metrics:  m,
		tracer:   otel.Tracer("github.com/dgallion1/headtree/internal/pipeline"),
		log:      log,
	}, nil
}

func (a *Annotator) Finder() *headfinder.Finder { return a.finder }

// Annotate never modifies t. Cached results are shared and must be treated
// as read-only.
func (a *Annotator) Annotate(ctx context.Context, t *tree.Tree) (*Result, error) {
	if t == nil {
		return nil, ErrNoTree
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	src := t.String()
	key := CacheKey(src)
	if res, ok := a.cache.Get(key); ok {
		a.metrics.CacheHit()
		return res, nil
	}
	a.metrics.CacheMiss()

	ctx, span := a.tracer.Start(ctx, "pipeline.Annotator.Annotate",
		trace.WithAttributes(
			attribute.String("finder", a.finder.Name()),
			attribute.Int("nodes", t.Size()),
		))
	defer span.End()

	work := t.DeepCopy()
	err := a.step(ctx, "transform", func() error {
		out, err := a.pipeline.Transform(work)
		if err != nil {
			return err
		}
		if out == nil {
			return ErrEmptyAfterTransform
		}
		work = out
		return nil
	})
	if err == nil {
		err = a.step(ctx, "percolate", func() error {
			return percolate.Heads(work, a.finder)
		})
	}
	var arcs []deps.Dependency
	if err == nil {
		err = a.step(ctx, "dependencies", func() error {
			var derr error
			arcs, derr = deps.Extract(work)
			return derr
		})
	}
	if err != nil {
		a.metrics.Annotated("error")
		span.RecordError(err)
		span.SetStatus(codes.Error, "annotation failed")
		return nil, err
	}

	res := buildResult(work, arcs)
	a.cache.Put(key, res)
	a.metrics.Annotated("ok")
	span.SetAttributes(attribute.Int("dependencies", len(res.Dependencies)))
	span.SetStatus(codes.Ok, "annotated")
	return res, nil
}

// step runs one group of work under its own span and timing.
func (a *Annotator) step(ctx context.Context, name string, fn func() error) error {
	_, span := a.tracer.Start(ctx, "annotate."+name)
	defer span.End()
	start := time.Now()
	err := fn()
	a.metrics.ObserveStage(name, time.Since(start))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, name+" failed")
	}
	return err
}

func buildResult(root *tree.Tree, arcs []deps.Dependency) *Result {
	index := map[*tree.Tree]int{}
	for i, l := range root.Leaves() {
		index[l] = i
	}
	res := &Result{Tree: root.String(), Heads: []NodeHead{}, Dependencies: make([]Arc, 0, len(arcs))}
	// Constituents and Walk both visit phrasal nodes in pre-order.
	spans := tree.Constituents(root)
	next := 0
	root.Walk(func(n *tree.Tree) bool {
		if !n.IsPhrasal() {
			return false
		}
		span := spans[next]
		next++
		hw, ht := n.HeadWord(), n.HeadTag()
		if hw == nil {
			return true
		}
		h := NodeHead{
			Label: n.Label,
			Start: span.Start,
			End:   span.End,
			Word:  hw.Label,
			Index: index[hw] + 1,
		}
		if ht != nil {
			h.Tag = ht.Label
		}
		res.Heads = append(res.Heads, h)
		return true
	})
	for _, d := range arcs {
		arc := Arc{Relation: d.Relation, Governor: "ROOT", Dependent: d.Dependent.Label, GovIndex: d.GovIndex, DepIndex: d.DepIndex}
		if d.Governor != nil {
			arc.Governor = d.Governor.Label
		}
		res.Dependencies = append(res.Dependencies, arc)
	}
	return res
}
