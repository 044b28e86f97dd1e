package transform

import (
	"strings"

	"github.com/dgallion1/headtree/internal/tree"
)

// qpStage gives flat quantifier phrases internal structure: coordinated QPs
// are merged, multiword comparative prefixes become XS, flat coordinations
// are split at the conjunction and currency amounts are grouped.
type qpStage struct {
	rules   ruleStage
	factory tree.Factory
}

func newQP(o options) (Stage, error) {
	rules, err := compile("qp",
		[2]string{`NP < (QP=left $+ (QP=right < CC))`, "[createSubtree QP left right] [excise left left] [excise right right]"},
		[2]string{`QP < (QP=left <: __ $+ CC)`, "excise left left"},
		[2]string{`QP < (CC $+ (QP=right <: __))`, "excise right right"},
		[2]string{`QP <1 /^(?:RB|JJ|IN|JJR|RBR)$/=left [ <2 /^(?:JJ|IN|RB|JJR|RBR)$/=right | <2 (PP=right <: IN) ] <3 /^(?:CD|DT)$/`, "createSubtree XS left right"},
	)
	if err != nil {
		return nil, err
	}
	return &qpStage{rules: ruleStage{name: "qp", rules: rules, limit: o.limit}, factory: o.factory}, nil
}

func (q *qpStage) Name() string { return "qp" }

func (q *qpStage) Transform(t *tree.Tree) (*tree.Tree, error) {
	t, err := q.rules.Transform(t)
	if err != nil || t == nil {
		return t, err
	}
	for _, n := range quantifierPhrases(t) {
		q.splitConjunction(n)
	}
	for _, n := range quantifierPhrases(t) {
		q.groupMoney(n)
	}
	return t, nil
}

func quantifierPhrases(t *tree.Tree) []*tree.Tree {
	var out []*tree.Tree
	t.Walk(func(n *tree.Tree) bool {
		if n.Label == "QP" {
			out = append(out, n)
		}
		return !n.IsPreTerminal()
	})
	return out
}

func allPreTerminals(kids []*tree.Tree) bool {
	for _, k := range kids {
		if !k.IsPreTerminal() {
			return false
		}
	}
	return true
}

// quantityLabel is QP for spans holding a number or currency sign, NP
// otherwise.
func quantityLabel(kids []*tree.Tree) string {
	for _, k := range kids {
		if k.Label == "CD" || k.Label == "$" {
			return "QP"
		}
	}
	return "NP"
}

// splitConjunction turns (QP $ 5 CC $ 6) into (QP (QP $ 5) CC (QP $ 6)).
// Only sides of two or more tokens are grouped.
func (q *qpStage) splitConjunction(n *tree.Tree) {
	kids := n.Children
	if !allPreTerminals(kids) {
		return
	}
	cc := -1
	for i := 1; i < len(kids)-1; i++ {
		if strings.HasPrefix(kids[i].Label, "CC") {
			cc = i
			break
		}
	}
	if cc < 0 {
		return
	}
	left, right := kids[:cc], kids[cc+1:]
	if len(left) < 2 && len(right) < 2 {
		return
	}
	group := func(side []*tree.Tree) *tree.Tree {
		if len(side) == 1 {
			return side[0]
		}
		return q.factory.NewNode(quantityLabel(side), append([]*tree.Tree(nil), side...))
	}
	n.SetChildren([]*tree.Tree{group(left), kids[cc], group(right)})
}

// groupMoney puts each non-initial currency sign and the numbers after it
// under their own QP. An initial sign already heads the whole phrase.
func (q *qpStage) groupMoney(n *tree.Tree) {
	kids := n.Children
	for i := 1; i < len(kids); i++ {
		if kids[i].Label != "$" || !kids[i].IsPreTerminal() {
			continue
		}
		j := i + 1
		for j < len(kids) && kids[j].Label == "CD" {
			j++
		}
		if j == i+1 {
			continue
		}
		money := q.factory.NewNode("QP", append([]*tree.Tree(nil), kids[i:j]...))
		out := make([]*tree.Tree, 0, len(kids)-(j-i)+1)
		out = append(out, kids[:i]...)
		out = append(out, money)
		out = append(out, kids[j:]...)
		n.SetChildren(out)
		kids = n.Children
	}
}
