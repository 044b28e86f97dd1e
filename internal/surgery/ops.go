// Package surgery rewrites trees at the nodes bound by a pattern match.
package surgery

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/dgallion1/headtree/internal/pattern"
	"github.com/dgallion1/headtree/internal/tree"
)

// ErrLimit is returned by ApplyAll when a rule keeps matching after the
// allowed number of rewrites.
var ErrLimit = errors.New("rewrite limit reached")

// Operation rewrites root at the nodes in b and returns the new root, which
// is nil when the whole tree was removed.
type Operation interface {
	Apply(b pattern.Bindings, root *tree.Tree) (*tree.Tree, error)
}

func lookup(b pattern.Bindings, name string) (*tree.Tree, error) {
	n, ok := b[name]
	if !ok || n == nil {
		return nil, fmt.Errorf("surgery: name %q is not bound", name)
	}
	return n, nil
}

type excise struct{ top, bottom string }

// Excise removes the nodes from top down to bottom, putting bottom's children
// in top's place. top and bottom may be the same node.
func Excise(top, bottom string) Operation { return excise{top, bottom} }

func (e excise) Apply(b pattern.Bindings, root *tree.Tree) (*tree.Tree, error) {
	top, err := lookup(b, e.top)
	if err != nil {
		return nil, err
	}
	bottom, err := lookup(b, e.bottom)
	if err != nil {
		return nil, err
	}
	if !top.Contains(bottom) {
		return nil, fmt.Errorf("surgery: excise %s %s: %s does not dominate %s", e.top, e.bottom, e.top, e.bottom)
	}
	if top == root {
		if len(bottom.Children) != 1 {
			return nil, fmt.Errorf("surgery: cannot excise root %q with %d children", root.Label, len(bottom.Children))
		}
		nr := bottom.Children[0]
		nr.Parent = nil
		return nr, nil
	}
	parent := top.ParentOf(root)
	if parent == nil {
		return nil, fmt.Errorf("surgery: excise %s: node not in tree", e.top)
	}
	parent.ReplaceChild(top, bottom.Children...)
	return root, nil
}

type prune struct{ names []string }

// Prune deletes the named nodes and any ancestor left without children.
func Prune(names ...string) Operation { return prune{names} }

func (p prune) Apply(b pattern.Bindings, root *tree.Tree) (*tree.Tree, error) {
	for _, name := range p.names {
		n, err := lookup(b, name)
		if err != nil {
			return nil, err
		}
		if root == nil {
			return nil, nil
		}
		root = PruneNode(root, n)
	}
	return root, nil
}

// PruneNode removes n from root, and then every ancestor that is left empty.
// It returns nil if the root itself goes.
func PruneNode(root, n *tree.Tree) *tree.Tree {
	for n != root {
		parent := n.ParentOf(root)
		if parent == nil {
			return root
		}
		parent.RemoveChild(parent.ChildIndex(n))
		if len(parent.Children) > 0 {
			return root
		}
		n = parent
	}
	return nil
}

type relabel struct {
	name  string
	label string
}

// Relabel sets the label of the named node.
func Relabel(name, label string) Operation { return relabel{name, label} }

func (r relabel) Apply(b pattern.Bindings, root *tree.Tree) (*tree.Tree, error) {
	n, err := lookup(b, r.name)
	if err != nil {
		return nil, err
	}
	n.Label = r.label
	return root, nil
}

type relabelRegex struct {
	name string
	re   *regexp.Regexp
	repl string
}

// RelabelRegex rewrites the label of the named node with re.ReplaceAllString.
func RelabelRegex(name string, re *regexp.Regexp, repl string) Operation {
	return relabelRegex{name, re, repl}
}

func (r relabelRegex) Apply(b pattern.Bindings, root *tree.Tree) (*tree.Tree, error) {
	n, err := lookup(b, r.name)
	if err != nil {
		return nil, err
	}
	n.Label = r.re.ReplaceAllString(n.Label, r.repl)
	return root, nil
}

type createSubtree struct {
	label       string
	first, last string
	factory     tree.Factory
}

// CreateSubtree groups the sister span from first to last under a new node.
// last may be empty for a one-node span.
func CreateSubtree(label, first, last string) Operation {
	return createSubtree{label: label, first: first, last: last, factory: tree.DefaultFactory{}}
}

func (c createSubtree) Apply(b pattern.Bindings, root *tree.Tree) (*tree.Tree, error) {
	first, err := lookup(b, c.first)
	if err != nil {
		return nil, err
	}
	last := first
	if c.last != "" {
		if last, err = lookup(b, c.last); err != nil {
			return nil, err
		}
	}
	if first == root {
		return c.factory.NewNode(c.label, []*tree.Tree{root}), nil
	}
	parent := first.ParentOf(root)
	if parent == nil {
		return nil, fmt.Errorf("surgery: createSubtree %s: node not in tree", c.first)
	}
	i, j := parent.ChildIndex(first), parent.ChildIndex(last)
	if j < 0 {
		return nil, fmt.Errorf("surgery: createSubtree %s %s: nodes are not sisters", c.first, c.last)
	}
	if j < i {
		i, j = j, i
	}
	span := append([]*tree.Tree(nil), parent.Children[i:j+1]...)
	group := c.factory.NewNode(c.label, span)
	kids := make([]*tree.Tree, 0, len(parent.Children)-len(span)+1)
	kids = append(kids, parent.Children[:i]...)
	kids = append(kids, group)
	kids = append(kids, parent.Children[j+1:]...)
	parent.SetChildren(kids)
	return root, nil
}

// PositionKind says where Move puts a node relative to its destination.
type PositionKind int

const (
	FirstChild PositionKind = iota
	LastChild
	LeftSister
	RightSister
)

// Position is a destination for Move.
type Position struct {
	Kind PositionKind
	Name string
}

func FirstChildOf(name string) Position { return Position{FirstChild, name} }
func LastChildOf(name string) Position  { return Position{LastChild, name} }
func LeftOf(name string) Position       { return Position{LeftSister, name} }
func RightOf(name string) Position      { return Position{RightSister, name} }

type move struct {
	name string
	to   Position
}

// Move detaches the named node and reinserts it at the position.
func Move(name string, to Position) Operation { return move{name, to} }

func (m move) Apply(b pattern.Bindings, root *tree.Tree) (*tree.Tree, error) {
	n, err := lookup(b, m.name)
	if err != nil {
		return nil, err
	}
	dest, err := lookup(b, m.to.Name)
	if err != nil {
		return nil, err
	}
	if n == root || n.Contains(dest) {
		return nil, fmt.Errorf("surgery: cannot move %s into itself", m.name)
	}
	parent := n.ParentOf(root)
	if parent == nil {
		return nil, fmt.Errorf("surgery: move %s: node not in tree", m.name)
	}
	parent.RemoveChild(parent.ChildIndex(n))
	switch m.to.Kind {
	case FirstChild:
		dest.InsertChild(0, n)
	case LastChild:
		dest.AddChild(n)
	case LeftSister, RightSister:
		dp := dest.ParentOf(root)
		if dp == nil {
			return nil, fmt.Errorf("surgery: move %s: destination has no parent", m.name)
		}
		i := dp.ChildIndex(dest)
		if m.to.Kind == RightSister {
			i++
		}
		dp.InsertChild(i, n)
	}
	return root, nil
}

type replace struct{ name, with string }

// Replace puts a copy of the node bound to with in place of the named node.
func Replace(name, with string) Operation { return replace{name, with} }

func (r replace) Apply(b pattern.Bindings, root *tree.Tree) (*tree.Tree, error) {
	n, err := lookup(b, r.name)
	if err != nil {
		return nil, err
	}
	w, err := lookup(b, r.with)
	if err != nil {
		return nil, err
	}
	cp := w.DeepCopy()
	if n == root {
		return cp, nil
	}
	parent := n.ParentOf(root)
	if parent == nil {
		return nil, fmt.Errorf("surgery: replace %s: node not in tree", r.name)
	}
	parent.ReplaceChild(n, cp)
	return root, nil
}

type sequence []Operation

// Sequence applies ops in order with the same bindings.
func Sequence(ops ...Operation) Operation { return sequence(ops) }

func (s sequence) Apply(b pattern.Bindings, root *tree.Tree) (*tree.Tree, error) {
	var err error
	for _, op := range s {
		if root == nil {
			return nil, nil
		}
		if root, err = op.Apply(b, root); err != nil {
			return nil, err
		}
	}
	return root, nil
}

// Rule pairs a pattern with the operation applied at each match.
type Rule struct {
	Pattern *pattern.Pattern
	Op      Operation
}

// MustRule compiles a pattern and an operation script. It panics on error
// and is meant for rules declared in package variables.
func MustRule(pat, script string) Rule {
	r, err := NewRule(pat, script)
	if err != nil {
		panic(err)
	}
	return r
}

// NewRule compiles a pattern and an operation script.
func NewRule(pat, script string) (Rule, error) {
	p, err := pattern.Compile(pat)
	if err != nil {
		return Rule{}, err
	}
	op, err := Parse(script)
	if err != nil {
		return Rule{}, err
	}
	return Rule{Pattern: p, Op: op}, nil
}

func (r Rule) String() string {
	return strings.TrimSpace(r.Pattern.String())
}

// ApplyAll applies each rule in turn until its pattern stops matching. Each
// rule may fire at most limit times.
func ApplyAll(rules []Rule, root *tree.Tree, limit int) (*tree.Tree, error) {
	for _, r := range rules {
		for n := 0; root != nil; n++ {
			b, ok := r.Pattern.FindFirst(root)
			if !ok {
				break
			}
			if n >= limit {
				return root, fmt.Errorf("%w: %s", ErrLimit, r)
			}
			var err error
			if root, err = r.Op.Apply(b, root); err != nil {
				return nil, fmt.Errorf("apply %s: %w", r, err)
			}
		}
	}
	return root, nil
}
