// Package deps reads untyped head-to-dependent arcs off a tree whose heads
// have been percolated.
package deps

import (
	"errors"
	"fmt"
	"sort"

	"github.com/dgallion1/headtree/internal/tree"
)

// ErrNoHeads is returned for a tree that has not been through percolation.
var ErrNoHeads = errors.New("deps: tree has no head annotation")

// Dependency is one arc. The root arc has a nil Governor and GovIndex 0;
// other indices are 1-based positions in the yield.
type Dependency struct {
	Relation  string
	Governor  *tree.Tree
	Dependent *tree.Tree
	GovIndex  int
	DepIndex  int
}

func (d Dependency) String() string {
	gov := "ROOT"
	if d.Governor != nil {
		gov = d.Governor.Label
	}
	return fmt.Sprintf("%s(%s-%d, %s-%d)", d.Relation, gov, d.GovIndex, d.Dependent.Label, d.DepIndex)
}

// Extract returns a "root" arc for the head of the whole tree and a "dep" arc
// from each phrase head to the head of every other child, ordered by
// dependent position.
func Extract(root *tree.Tree) ([]Dependency, error) {
	if root == nil {
		return nil, nil
	}
	index := map[*tree.Tree]int{}
	for i, l := range root.Leaves() {
		index[l] = i + 1
	}
	top := root.HeadWord()
	if top == nil {
		return nil, ErrNoHeads
	}

	out := []Dependency{{Relation: "root", Dependent: top, DepIndex: index[top]}}
	var err error
	root.Walk(func(n *tree.Tree) bool {
		if err != nil || n.IsLeaf() || n.IsPreTerminal() {
			return false
		}
		h := n.HeadWord()
		if h == nil {
			err = fmt.Errorf("%w: %q", ErrNoHeads, n.Label)
			return false
		}
		for _, c := range n.Children {
			d := c.HeadWord()
			if d == nil {
				err = fmt.Errorf("%w: %q", ErrNoHeads, c.Label)
				return false
			}
			if d == h {
				continue
			}
			out = append(out, Dependency{Relation: "dep", Governor: h, Dependent: d, GovIndex: index[h], DepIndex: index[d]})
		}
		return true
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].DepIndex < out[j].DepIndex })
	return out, nil
}
