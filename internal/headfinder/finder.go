// Package headfinder picks the head child of a constituent from an ordered
// rule table.
package headfinder

import (
	"strings"

	"github.com/dgallion1/headtree/internal/lang"
	"github.com/dgallion1/headtree/internal/tree"
)

// HeadHook can decide the head of a node with more than one child before the
// table is consulted. It reports false to fall through to the table.
type HeadHook func(f *Finder, node, parent *tree.Tree) (*tree.Tree, bool)

// PostFix may move the chosen head index among children.
type PostFix func(lp lang.Pack, children []*tree.Tree, idx int) int

// Finder determines heads from a rule table. A Finder is immutable after New
// and safe to share between goroutines.
type Finder struct {
	name  string
	lp    lang.Pack
	table Table
	avoid []string

	defaultLeft  Rule
	defaultRight Rule
	defaultRule  *Rule

	marked     func(*tree.Tree) *tree.Tree
	hook       HeadHook
	postFix    PostFix
	copulaHead bool
}

type Option func(*Finder)

// WithAvoid sets the categories the fallback rules avoid as heads.
func WithAvoid(cats ...string) Option {
	return func(f *Finder) { f.avoid = append([]string(nil), cats...) }
}

// WithDefaultRule is applied as a last resort to categories missing from the table.
func WithDefaultRule(r Rule) Option {
	return func(f *Finder) { f.defaultRule = &r }
}

// WithMarkedHead installs a lookup for heads marked in the tree itself.
func WithMarkedHead(fn func(*tree.Tree) *tree.Tree) Option {
	return func(f *Finder) { f.marked = fn }
}

func WithHeadHook(h HeadHook) Option {
	return func(f *Finder) { f.hook = h }
}

// WithPostFix replaces the conjunction fix. Pass nil to disable it.
func WithPostFix(p PostFix) Option {
	return func(f *Finder) { f.postFix = p }
}

func WithName(name string) Option {
	return func(f *Finder) { f.name = name }
}

// New builds a finder over a copy of table.
func New(lp lang.Pack, table Table, opts ...Option) (*Finder, error) {
	if err := table.Validate(); err != nil {
		return nil, err
	}
	f := &Finder{
		name:    "custom",
		lp:      lp,
		table:   table.Clone(),
		postFix: ConjunctionFix,
	}
	for _, o := range opts {
		o(f)
	}
	if f.defaultRule != nil && !f.defaultRule.Dir.valid() {
		return nil, &TableError{Msg: "invalid default rule"}
	}
	if len(f.avoid) > 0 {
		f.defaultLeft = rule(LeftExcept, f.avoid...)
		f.defaultRight = rule(RightExcept, f.avoid...)
	} else {
		f.defaultLeft = rule(Left)
		f.defaultRight = rule(Right)
	}
	return f, nil
}

// WithOverrides returns a copy of f whose table has the categories in
// changes replaced. Hooks, fixes and the copula policy carry over.
func (f *Finder) WithOverrides(changes Table) (*Finder, error) {
	table := f.table.With(changes)
	if err := table.Validate(); err != nil {
		return nil, err
	}
	g := *f
	g.name = f.name + "+rules"
	g.table = table
	return &g, nil
}

func (f *Finder) Name() string { return f.name }

// Table returns a copy of the rule table.
func (f *Finder) Table() Table { return f.table.Clone() }

// MakesCopulaHead reports whether copulas head their clauses.
func (f *Finder) MakesCopulaHead() bool { return f.copulaHead }

// DefaultLeftRule is the fallback for left-scanning last-resort rules.
func (f *Finder) DefaultLeftRule() Rule { return f.defaultLeft }

// DefaultRightRule is the fallback for right-scanning last-resort rules.
func (f *Finder) DefaultRightRule() Rule { return f.defaultRight }

// DetermineHead returns the head child of node. parent may be nil.
func (f *Finder) DetermineHead(node, parent *tree.Tree) (*tree.Tree, error) {
	if node == nil {
		return nil, &InvalidTreeError{}
	}
	if node.IsLeaf() {
		return nil, &InvalidTreeError{Label: node.Label}
	}
	if f.marked != nil {
		if h := f.marked(node); h != nil {
			return h, nil
		}
	}
	if len(node.Children) == 1 {
		return node.Children[0], nil
	}
	if f.hook != nil {
		if h, ok := f.hook(f, node, parent); ok && h != nil {
			return h, nil
		}
	}
	return f.nonTrivialHead(node)
}

func (f *Finder) category(label string) string {
	return strings.TrimPrefix(f.lp.BasicCategory(label), "@")
}

func (f *Finder) nonTrivialHead(node *tree.Tree) (*tree.Tree, error) {
	cat := f.category(node.Label)
	rules, ok := f.table.Lookup(cat)
	if !ok || len(rules) == 0 {
		if f.defaultRule != nil {
			return f.Locate(node.Children, *f.defaultRule, true), nil
		}
		return nil, &NoRuleDefinedError{Category: cat, Label: node.Label}
	}
	for i, r := range rules {
		if h := f.Locate(node.Children, r, i == len(rules)-1); h != nil {
			return h, nil
		}
	}
	return nil, &NoRuleDefinedError{Category: cat, Label: node.Label}
}

// Locate applies one rule to children. A last-resort rule never returns nil
// for a non-empty child list.
func (f *Finder) Locate(children []*tree.Tree, r Rule, lastResort bool) *tree.Tree {
	if len(children) == 0 {
		return nil
	}
	idx := f.scan(children, r)
	if idx < 0 {
		if !lastResort {
			return nil
		}
		fallback := f.defaultRight
		idx = len(children) - 1
		if r.Dir.FromLeft() {
			fallback = f.defaultLeft
			idx = 0
		}
		if h := f.Locate(children, fallback, false); h != nil {
			return h
		}
		return children[idx]
	}
	if f.postFix != nil {
		idx = f.postFix(f.lp, children, idx)
	}
	return children[idx]
}

func (f *Finder) scan(kids []*tree.Tree, r Rule) int {
	cats := make([]string, len(kids))
	for i, k := range kids {
		cats[i] = f.lp.BasicCategory(k.Label)
	}
	switch r.Dir {
	case Left:
		for _, want := range r.Categories {
			for i, c := range cats {
				if c == want {
					return i
				}
			}
		}
	case Right:
		for _, want := range r.Categories {
			for i := len(cats) - 1; i >= 0; i-- {
				if cats[i] == want {
					return i
				}
			}
		}
	case LeftDis:
		for i, c := range cats {
			if contains(r.Categories, c) {
				return i
			}
		}
	case RightDis:
		for i := len(cats) - 1; i >= 0; i-- {
			if contains(r.Categories, cats[i]) {
				return i
			}
		}
	case LeftExcept:
		for i, c := range cats {
			if !contains(r.Categories, c) {
				return i
			}
		}
	case RightExcept:
		for i := len(cats) - 1; i >= 0; i-- {
			if !contains(r.Categories, cats[i]) {
				return i
			}
		}
	}
	return -1
}

func contains(list []string, s string) bool {
	for _, x := range list {
		if x == s {
			return true
		}
	}
	return false
}

// ConjunctionFix moves a head that directly follows a CC or CONJP back to the
// first non-punctuation sibling before the conjunction.
func ConjunctionFix(lp lang.Pack, children []*tree.Tree, idx int) int {
	if idx < 2 {
		return idx
	}
	prev := lp.BasicCategory(children[idx-1].Label)
	if prev != "CC" && prev != "CONJP" {
		return idx
	}
	n := idx - 2
	for n >= 0 && children[n].IsPreTerminal() && lp.IsPunctuationTag(children[n].Label) {
		n--
	}
	if n >= 0 {
		return n
	}
	return idx
}

// HeadMarker returns a marked-head lookup that picks the first child whose
// label ends in suffix, e.g. "^H".
func HeadMarker(suffix string) func(*tree.Tree) *tree.Tree {
	return func(n *tree.Tree) *tree.Tree {
		for _, c := range n.Children {
			if !c.IsLeaf() && strings.HasSuffix(c.Label, suffix) {
				return c
			}
		}
		return nil
	}
}
