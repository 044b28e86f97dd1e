package tree

// Factory builds new structure for transformation stages that synthesize nodes.
type Factory interface {
	NewNode(label string, children []*Tree) *Tree
	NewLeaf(word string) *Tree
}

// DefaultFactory creates plain nodes and sets parent links on the new children.
type DefaultFactory struct{}

func (DefaultFactory) NewNode(label string, children []*Tree) *Tree {
	n := &Tree{Label: label}
	if len(children) > 0 {
		n.Children = make([]*Tree, len(children))
		copy(n.Children, children)
		for _, c := range n.Children {
			c.Parent = n
		}
	}
	return n
}

func (DefaultFactory) NewLeaf(word string) *Tree {
	return &Tree{Label: word}
}
