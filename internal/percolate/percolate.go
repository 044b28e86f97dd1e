// Package percolate attaches head word and head tag references to every node
// of a tree, bottom-up.
package percolate

import (
	"fmt"

	"github.com/dgallion1/headtree/internal/tree"
)

// HeadFinder picks the head child of an internal node.
type HeadFinder interface {
	DetermineHead(node, parent *tree.Tree) (*tree.Tree, error)
}

// Heads sets parent links and then percolates heads from the leaves to root.
// The walk is iterative so tree depth does not consume call stack. On error
// no node keeps a head reference.
func Heads(root *tree.Tree, hf HeadFinder) error {
	if root == nil {
		return nil
	}
	root.SetParents()

	type frame struct {
		n    *tree.Tree
		seen bool
	}
	stack := []frame{{n: root}}
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		n := top.n
		if n.IsLeaf() {
			stack = stack[:len(stack)-1]
			if n.HeadWord() == nil {
				n.SetHeads(n, n.HeadTag())
			}
			continue
		}
		if !top.seen {
			top.seen = true
			for i := len(n.Children) - 1; i >= 0; i-- {
				stack = append(stack, frame{n: n.Children[i]})
			}
			continue
		}
		stack = stack[:len(stack)-1]
		if err := percolateNode(n, hf); err != nil {
			root.ClearHeads()
			return err
		}
	}
	return nil
}

func percolateNode(n *tree.Tree, hf HeadFinder) error {
	head, err := hf.DetermineHead(n, n.Parent)
	if err != nil {
		return fmt.Errorf("percolate heads at %q: %w", n.Label, err)
	}
	if head == nil {
		return nil
	}
	word := head.HeadWord()
	if head.IsLeaf() && word == nil {
		word = head
	}
	tag := head.HeadTag()
	if tag == nil && head.IsLeaf() {
		tag = n
	}
	n.SetHeads(word, tag)
	return nil
}
