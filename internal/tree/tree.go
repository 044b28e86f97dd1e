package tree

import (
	"strings"
)

// Tree is a node of a constituency parse tree. Leaves carry the terminal word
// in Label and have no children.
type Tree struct {
	Label    string
	Children []*Tree

	// Parent is only maintained after SetParents (or head percolation).
	Parent *Tree

	// Head references set once by percolation. They point into the node's own
	// subtree and are never owning.
	headWord *Tree
	headTag  *Tree
}

// Node creates an internal node with the given children.
func Node(label string, children ...*Tree) *Tree {
	return &Tree{Label: label, Children: children}
}

// Leaf creates a terminal node.
func Leaf(word string) *Tree {
	return &Tree{Label: word}
}

// Pre creates a preterminal: a tag over a single word.
func Pre(tag, word string) *Tree {
	return &Tree{Label: tag, Children: []*Tree{{Label: word}}}
}

func (t *Tree) IsLeaf() bool {
	return len(t.Children) == 0
}

// IsPreTerminal reports whether t is a tag over exactly one leaf.
func (t *Tree) IsPreTerminal() bool {
	return len(t.Children) == 1 && t.Children[0].IsLeaf()
}

// IsPhrasal reports whether t is neither a leaf nor a preterminal.
func (t *Tree) IsPhrasal() bool {
	return !t.IsLeaf() && !t.IsPreTerminal()
}

func (t *Tree) FirstChild() *Tree {
	if len(t.Children) == 0 {
		return nil
	}
	return t.Children[0]
}

func (t *Tree) LastChild() *Tree {
	if len(t.Children) == 0 {
		return nil
	}
	return t.Children[len(t.Children)-1]
}

// ChildIndex returns the position of c among t's children, or -1.
func (t *Tree) ChildIndex(c *Tree) int {
	for i, k := range t.Children {
		if k == c {
			return i
		}
	}
	return -1
}

// Word returns the word under a preterminal, or the label of a leaf.
func (t *Tree) Word() string {
	if t.IsLeaf() {
		return t.Label
	}
	if t.IsPreTerminal() {
		return t.Children[0].Label
	}
	return ""
}

// HeadWord returns the leaf chosen as lexical head, or nil before percolation.
func (t *Tree) HeadWord() *Tree {
	return t.headWord
}

// HeadTag returns the preterminal above the head word, or nil before percolation.
func (t *Tree) HeadTag() *Tree {
	return t.headTag
}

// SetHeads records the head references. Used by head percolation.
func (t *Tree) SetHeads(word, tag *Tree) {
	t.headWord = word
	t.headTag = tag
}

// ClearHeads drops head references in the whole subtree.
func (t *Tree) ClearHeads() {
	t.Walk(func(n *Tree) bool {
		n.headWord = nil
		n.headTag = nil
		return true
	})
}

// SetChildren replaces the children of t in one step.
func (t *Tree) SetChildren(children []*Tree) {
	t.Children = children
	for _, c := range children {
		c.Parent = t
	}
}

// InsertChild inserts c at position i.
func (t *Tree) InsertChild(i int, c *Tree) {
	kids := make([]*Tree, 0, len(t.Children)+1)
	kids = append(kids, t.Children[:i]...)
	kids = append(kids, c)
	kids = append(kids, t.Children[i:]...)
	t.Children = kids
	c.Parent = t
}

// AddChild appends c.
func (t *Tree) AddChild(c *Tree) {
	t.Children = append(t.Children, c)
	c.Parent = t
}

// RemoveChild removes and returns the child at position i.
func (t *Tree) RemoveChild(i int) *Tree {
	c := t.Children[i]
	kids := make([]*Tree, 0, len(t.Children)-1)
	kids = append(kids, t.Children[:i]...)
	kids = append(kids, t.Children[i+1:]...)
	t.Children = kids
	if c.Parent == t {
		c.Parent = nil
	}
	return c
}

// ReplaceChild puts the nodes in with at the position of old. It reports false
// if old is not a child of t.
func (t *Tree) ReplaceChild(old *Tree, with ...*Tree) bool {
	i := t.ChildIndex(old)
	if i < 0 {
		return false
	}
	kids := make([]*Tree, 0, len(t.Children)-1+len(with))
	kids = append(kids, t.Children[:i]...)
	kids = append(kids, with...)
	kids = append(kids, t.Children[i+1:]...)
	t.Children = kids
	for _, w := range with {
		w.Parent = t
	}
	return true
}

// SetParents fixes the Parent field of every node below t. The root keeps
// whatever parent it already has.
func (t *Tree) SetParents() {
	t.Walk(func(n *Tree) bool {
		for _, c := range n.Children {
			c.Parent = n
		}
		return true
	})
}

// ParentOf finds the parent of t by searching down from root. It does not rely
// on the Parent field.
func (t *Tree) ParentOf(root *Tree) *Tree {
	var found *Tree
	root.Walk(func(n *Tree) bool {
		if found != nil {
			return false
		}
		for _, c := range n.Children {
			if c == t {
				found = n
				return false
			}
		}
		return true
	})
	return found
}

// Walk visits the subtree in pre-order. Returning false from fn skips the
// children of that node. The walk uses an explicit stack.
func (t *Tree) Walk(fn func(*Tree) bool) {
	stack := []*Tree{t}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !fn(n) {
			continue
		}
		for i := len(n.Children) - 1; i >= 0; i-- {
			stack = append(stack, n.Children[i])
		}
	}
}

// Leaves returns the terminal nodes in surface order.
func (t *Tree) Leaves() []*Tree {
	var out []*Tree
	t.Walk(func(n *Tree) bool {
		if n.IsLeaf() {
			out = append(out, n)
		}
		return true
	})
	return out
}

// Yield returns the words of the tree in order.
func (t *Tree) Yield() []string {
	leaves := t.Leaves()
	out := make([]string, len(leaves))
	for i, l := range leaves {
		out[i] = l.Label
	}
	return out
}

// PreTerminals returns the tag nodes in surface order.
func (t *Tree) PreTerminals() []*Tree {
	var out []*Tree
	t.Walk(func(n *Tree) bool {
		if n.IsPreTerminal() {
			out = append(out, n)
			return false
		}
		return true
	})
	return out
}

// Size counts all nodes including leaves.
func (t *Tree) Size() int {
	n := 0
	t.Walk(func(*Tree) bool {
		n++
		return true
	})
	return n
}

// Depth is the length of the longest path from t to a leaf.
func (t *Tree) Depth() int {
	type item struct {
		n *Tree
		d int
	}
	max := 0
	stack := []item{{t, 0}}
	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if it.d > max {
			max = it.d
		}
		for _, c := range it.n.Children {
			stack = append(stack, item{c, it.d + 1})
		}
	}
	return max
}

// Contains reports whether n is t or a descendant of t.
func (t *Tree) Contains(n *Tree) bool {
	found := false
	t.Walk(func(x *Tree) bool {
		if x == n {
			found = true
		}
		return !found
	})
	return found
}

// DeepCopy clones the structure and labels. Head references and the root's
// parent are not copied.
func (t *Tree) DeepCopy() *Tree {
	cp := &Tree{Label: t.Label}
	if len(t.Children) > 0 {
		cp.Children = make([]*Tree, len(t.Children))
		for i, c := range t.Children {
			cc := c.DeepCopy()
			cc.Parent = cp
			cp.Children[i] = cc
		}
	}
	return cp
}

// Equal compares labels and shape.
func (t *Tree) Equal(o *Tree) bool {
	if t == nil || o == nil {
		return t == o
	}
	if t.Label != o.Label || len(t.Children) != len(o.Children) {
		return false
	}
	for i := range t.Children {
		if !t.Children[i].Equal(o.Children[i]) {
			return false
		}
	}
	return true
}

// String renders the tree in Penn Treebank bracketed form.
func (t *Tree) String() string {
	if t == nil {
		return "<nil>"
	}
	var sb strings.Builder
	t.write(&sb)
	return sb.String()
}

func (t *Tree) write(sb *strings.Builder) {
	if t.IsLeaf() {
		sb.WriteString(t.Label)
		return
	}
	sb.WriteByte('(')
	sb.WriteString(t.Label)
	for _, c := range t.Children {
		sb.WriteByte(' ')
		c.write(sb)
	}
	sb.WriteByte(')')
}
