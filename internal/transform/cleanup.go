package transform

import (
	"strings"

	"github.com/dgallion1/headtree/internal/lang"
	"github.com/dgallion1/headtree/internal/surgery"
	"github.com/dgallion1/headtree/internal/tree"
)

// Cleanup normalizes treebank labels. The root becomes ROOT when it is
// unlabeled or TOP, phrase and tag labels lose functional suffixes except the
// temporal and adverbial marks on NPs, and empty elements are removed along
// with any constituent they leave empty.
type Cleanup struct {
	lp lang.Penn
}

func NewCleanup() *Cleanup { return &Cleanup{} }

func newCleanup(options) (Stage, error) { return NewCleanup(), nil }

func (c *Cleanup) Name() string { return "cleanup" }

func (c *Cleanup) Transform(t *tree.Tree) (*tree.Tree, error) {
	if t == nil {
		return nil, nil
	}
	if t.Label == "" || t.Label == "TOP" {
		t.Label = "ROOT"
	}
	var empties []*tree.Tree
	t.Walk(func(n *tree.Tree) bool {
		if n.IsLeaf() {
			return false
		}
		n.Label = c.label(n.Label)
		if n.Label == "-NONE-" {
			empties = append(empties, n)
			return false
		}
		return true
	})
	for _, n := range empties {
		if t = surgery.PruneNode(t, n); t == nil {
			return nil, nil
		}
	}
	return t, nil
}

func (c *Cleanup) label(l string) string {
	basic := c.lp.BasicCategory(l)
	if basic != "NP" {
		return basic
	}
	suffix := c.lp.FunctionalSuffix(l)
	switch {
	case strings.Contains(suffix, "-TMP"):
		return "NP-TMP"
	case strings.Contains(suffix, "-ADV"):
		return "NP-ADV"
	}
	return basic
}
