package pattern

import (
	"github.com/dgallion1/headtree/internal/lang"
	"github.com/dgallion1/headtree/internal/tree"
)

// matcher holds per-tree state. Parents are computed once from the root so
// matching does not depend on Tree.Parent being current.
type matcher struct {
	lp      lang.Pack
	parents map[*tree.Tree]*tree.Tree
}

func newMatcher(lp lang.Pack, root *tree.Tree) *matcher {
	m := &matcher{lp: lp, parents: map[*tree.Tree]*tree.Tree{}}
	root.Walk(func(n *tree.Tree) bool {
		for _, c := range n.Children {
			m.parents[c] = n
		}
		return true
	})
	return m
}

func accept(Bindings) bool { return true }

// MatchAt reports whether the pattern matches at node, which must lie within
// root, and returns the first set of bindings found.
func (p *Pattern) MatchAt(node, root *tree.Tree) (Bindings, bool) {
	if node == nil || root == nil {
		return nil, false
	}
	return newMatcher(p.lp, root).first(p.root, node)
}

// FindFirst returns the bindings of the first match in pre-order.
func (p *Pattern) FindFirst(root *tree.Tree) (Bindings, bool) {
	if root == nil {
		return nil, false
	}
	m := newMatcher(p.lp, root)
	var res Bindings
	found := false
	root.Walk(func(n *tree.Tree) bool {
		if found {
			return false
		}
		if b, ok := m.first(p.root, n); ok {
			res, found = b, true
			return false
		}
		return true
	})
	return res, found
}

// Match returns one set of bindings for every node the pattern matches at, in
// pre-order.
func (p *Pattern) Match(root *tree.Tree) []Bindings {
	if root == nil {
		return nil
	}
	m := newMatcher(p.lp, root)
	var out []Bindings
	root.Walk(func(n *tree.Tree) bool {
		if b, ok := m.first(p.root, n); ok {
			out = append(out, b)
		}
		return true
	})
	return out
}

func (m *matcher) first(n *node, t *tree.Tree) (Bindings, bool) {
	var out Bindings
	ok := n.match(m, t, Bindings{}, func(b Bindings) bool {
		out = b
		return true
	})
	return out, ok
}

func (n *node) matchLabel(m *matcher, t *tree.Tree, b Bindings) bool {
	if n.ref != "" {
		return b[n.ref] == t
	}
	ok := false
	switch {
	case n.any:
		ok = true
	case n.re != nil:
		ok = n.re.MatchString(t.Label)
	case n.sameAs != "":
		other := b[n.sameAs]
		ok = other != nil && other.Label == t.Label
	default:
		basic := m.lp.BasicCategory(t.Label)
		for _, l := range n.labels {
			if l == t.Label || l == basic {
				ok = true
				break
			}
		}
	}
	return ok != n.negated
}

func (n *node) match(m *matcher, t *tree.Tree, b Bindings, k func(Bindings) bool) bool {
	if !n.matchLabel(m, t, b) {
		return false
	}
	if n.name != "" {
		if prev, ok := b[n.name]; ok {
			if prev != t {
				return false
			}
		} else {
			b = b.with(n.name, t)
		}
	}
	return matchAll(m, n.cons, t, b, k)
}

func matchAll(m *matcher, cons []constraint, t *tree.Tree, b Bindings, k func(Bindings) bool) bool {
	if len(cons) == 0 {
		return k(b)
	}
	return cons[0].match(m, t, b, func(b2 Bindings) bool {
		return matchAll(m, cons[1:], t, b2, k)
	})
}

func (r *relation) match(m *matcher, t *tree.Tree, b Bindings, k func(Bindings) bool) bool {
	cands := m.related(r, t)
	if r.negated {
		for _, c := range cands {
			if r.target.match(m, c, b, accept) {
				return false
			}
		}
		return k(b)
	}
	for _, c := range cands {
		if r.target.match(m, c, b, k) {
			return true
		}
	}
	if r.optional {
		return k(b)
	}
	return false
}

func (d *disjunction) match(m *matcher, t *tree.Tree, b Bindings, k func(Bindings) bool) bool {
	for _, alt := range d.alts {
		if matchAll(m, alt, t, b, k) {
			return true
		}
	}
	return false
}

// related lists the candidate nodes for a relation, nearest first.
func (m *matcher) related(r *relation, t *tree.Tree) []*tree.Tree {
	kids := t.Children
	switch r.op {
	case relChild:
		return kids
	case relFirstChild:
		if len(kids) > 0 {
			return kids[:1]
		}
	case relLastChild:
		if len(kids) > 0 {
			return kids[len(kids)-1:]
		}
	case relOnlyChild:
		if len(kids) == 1 {
			return kids
		}
	case relNthChild:
		if r.n <= len(kids) {
			return kids[r.n-1 : r.n]
		}
	case relNthLastChild:
		if r.n <= len(kids) {
			i := len(kids) - r.n
			return kids[i : i+1]
		}
	case relDescendant:
		var out []*tree.Tree
		t.Walk(func(n *tree.Tree) bool {
			if n != t {
				out = append(out, n)
			}
			return true
		})
		return out
	case relParent:
		if p := m.parents[t]; p != nil {
			return []*tree.Tree{p}
		}
	case relAncestor:
		var out []*tree.Tree
		for p := m.parents[t]; p != nil; p = m.parents[p] {
			out = append(out, p)
		}
		return out
	default:
		return m.sisters(r.op, t)
	}
	return nil
}

func (m *matcher) sisters(op relOp, t *tree.Tree) []*tree.Tree {
	p := m.parents[t]
	if p == nil {
		return nil
	}
	i := p.ChildIndex(t)
	kids := p.Children
	var out []*tree.Tree
	switch op {
	case relSister:
		for j, k := range kids {
			if j != i {
				out = append(out, k)
			}
		}
	case relRightSister:
		if i+1 < len(kids) {
			out = append(out, kids[i+1])
		}
	case relLeftSister:
		if i > 0 {
			out = append(out, kids[i-1])
		}
	case relRightSisters:
		out = append(out, kids[i+1:]...)
	case relLeftSisters:
		for j := i - 1; j >= 0; j-- {
			out = append(out, kids[j])
		}
	}
	return out
}
