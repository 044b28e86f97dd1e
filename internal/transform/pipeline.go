// Package transform normalizes parse trees before head percolation: label
// cleanup, coordination restructuring and a fixed series of pattern
// rewrites.
package transform

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/dgallion1/headtree/internal/surgery"
	"github.com/dgallion1/headtree/internal/tree"
)

// Stage is one step of the pipeline. A stage may return a different root,
// and returns nil for a nil tree.
type Stage interface {
	Name() string
	Transform(t *tree.Tree) (*tree.Tree, error)
}

// Observer is told how long each stage took.
type Observer func(stage string, elapsed time.Duration)

type options struct {
	log        *slog.Logger
	factory    tree.Factory
	copulaHead bool
	limit      int
	observe    Observer
}

// Option configures NewPipeline.
type Option func(*options)

func WithLogger(log *slog.Logger) Option {
	return func(o *options) { o.log = log }
}

func WithFactory(f tree.Factory) Option {
	return func(o *options) { o.factory = f }
}

// WithCopulaHead disables the SQ flattening stage, which only makes sense
// when copulas are not heads.
func WithCopulaHead(copulaHead bool) Option {
	return func(o *options) { o.copulaHead = copulaHead }
}

// WithFinder takes the copula policy from a head finder.
func WithFinder(f interface{ MakesCopulaHead() bool }) Option {
	return func(o *options) { o.copulaHead = f.MakesCopulaHead() }
}

// WithRuleLimit caps how many times one rewrite rule may fire on a tree.
// The default is twice the tree size.
func WithRuleLimit(n int) Option {
	return func(o *options) { o.limit = n }
}

func WithObserver(fn Observer) Option {
	return func(o *options) { o.observe = fn }
}

// Pipeline applies its stages in a fixed order.
type Pipeline struct {
	stages  []Stage
	log     *slog.Logger
	observe Observer
}

// NewPipeline builds the standard stage sequence. Patterns are compiled here,
// so a bad pattern is reported before any tree is seen.
func NewPipeline(opts ...Option) (*Pipeline, error) {
	o := options{factory: tree.DefaultFactory{}}
	for _, opt := range opts {
		opt(&o)
	}
	if o.log == nil {
		o.log = slog.New(slog.DiscardHandler)
	}

	p := &Pipeline{log: o.log, observe: o.observe}
	builders := []func(options) (Stage, error){
		newCleanup, newUCP, newCoordination, newQP, newSQFlatten,
		newDates, newXOverX, newConjP, newMoveRB, newSBARToPP, newNowThat,
	}
	for _, build := range builders {
		st, err := build(o)
		if err != nil {
			return nil, err
		}
		p.stages = append(p.stages, st)
	}
	return p, nil
}

// Stages returns the stages in application order.
func (p *Pipeline) Stages() []Stage {
	return append([]Stage(nil), p.stages...)
}

// Transform runs every stage over t. The first stage error aborts.
func (p *Pipeline) Transform(t *tree.Tree) (*tree.Tree, error) {
	for _, st := range p.stages {
		if t == nil {
			return nil, nil
		}
		start := time.Now()
		out, err := st.Transform(t)
		if p.observe != nil {
			p.observe(st.Name(), time.Since(start))
		}
		if err != nil {
			p.log.Error("transform stage failed", "stage", st.Name(), "error", err)
			return nil, fmt.Errorf("stage %s: %w", st.Name(), err)
		}
		t = out
	}
	return t, nil
}

// ruleStage applies rewrite rules in order, each until it stops matching.
type ruleStage struct {
	name  string
	rules []surgery.Rule
	limit int
}

func (s ruleStage) Name() string { return s.name }

func (s ruleStage) Transform(t *tree.Tree) (*tree.Tree, error) {
	if t == nil {
		return nil, nil
	}
	limit := s.limit
	if limit <= 0 {
		limit = 2 * t.Size()
	}
	return surgery.ApplyAll(s.rules, t, limit)
}

// compile builds rules from pattern and script pairs.
func compile(stage string, pairs ...[2]string) ([]surgery.Rule, error) {
	rules := make([]surgery.Rule, 0, len(pairs))
	for _, pr := range pairs {
		r, err := surgery.NewRule(pr[0], pr[1])
		if err != nil {
			return nil, fmt.Errorf("stage %s: %w", stage, err)
		}
		rules = append(rules, r)
	}
	return rules, nil
}

func newRuleStage(name string, o options, pairs ...[2]string) (Stage, error) {
	rules, err := compile(name, pairs...)
	if err != nil {
		return nil, err
	}
	return ruleStage{name: name, rules: rules, limit: o.limit}, nil
}
