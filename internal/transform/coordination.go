package transform

import (
	"log/slog"
	"strings"

	"github.com/dgallion1/headtree/internal/lang"
	"github.com/dgallion1/headtree/internal/tree"
)

// CoordinationRestructurer turns a flat noun phrase with a coordinating conjunction into
// nested conjunct subtrees, e.g.
//
//	(NP (NN soya) (CC and) (NN maize) (NN oil))
//	(NP (NP (NN soya)) (CC and) (NP (NN maize) (NN oil)))
//
// Rewrites only regroup children; the yield never changes.
type CoordinationRestructurer struct {
	factory tree.Factory
	log     *slog.Logger
}

// NewCoordinationRestructurer returns the coordination stage. A nil logger discards.
func NewCoordinationRestructurer(f tree.Factory, log *slog.Logger) *CoordinationRestructurer {
	if f == nil {
		f = tree.DefaultFactory{}
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &CoordinationRestructurer{factory: f, log: log}
}

func (c *CoordinationRestructurer) Name() string { return "coordination" }

// Transform rewrites one conjunction at a time, rescanning from the root after
// each rewrite, until no unprocessed conjunction qualifies.
func (c *CoordinationRestructurer) Transform(t *tree.Tree) (*tree.Tree, error) {
	if t == nil {
		return nil, nil
	}
	done := map[*tree.Tree]bool{}
	limit := 2 * t.Size()
	for i := 0; ; i++ {
		np, cc := findCoordination(t, done)
		if np == nil {
			return t, nil
		}
		if i >= limit {
			c.log.Warn("coordination rewrite limit reached", "limit", limit, "tree", t.String())
			return t, nil
		}
		done[np.Children[cc]] = true
		kids, which := c.restructure(np.Children, cc, done)
		c.log.Debug("coordination rewrite", "case", which, "np", np.Label, "cc", cc)
		np.SetChildren(kids)
	}
}

// findCoordination returns the parent NP and index of the first qualifying
// CC preterminal in pre-order.
func findCoordination(root *tree.Tree, done map[*tree.Tree]bool) (*tree.Tree, int) {
	type frame struct{ n, parent *tree.Tree }
	stack := []frame{{n: root}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if f.n.IsPreTerminal() {
			if p := f.parent; p != nil && strings.HasPrefix(f.n.Label, "CC") && !done[f.n] && strings.HasPrefix(p.Label, "NP") {
				if i := p.ChildIndex(f.n); qualifies(p.Children, i) {
					return p, i
				}
			}
			continue
		}
		for i := len(f.n.Children) - 1; i >= 0; i-- {
			stack = append(stack, frame{n: f.n.Children[i], parent: f.n})
		}
	}
	return nil, -1
}

func qualifies(kids []*tree.Tree, cc int) bool {
	if cc == 0 || len(kids) <= cc+2 {
		return false
	}
	for _, k := range kids[cc:] {
		if strings.HasPrefix(k.Label, "NP") {
			return false
		}
	}
	return !strings.HasPrefix(kids[cc+1].Label, "CC")
}

// HeadTag guesses the phrase label for a group headed by t.
func HeadTag(t *tree.Tree) string {
	switch {
	case lang.IsNounTag(t.Label):
		return "NP"
	case lang.IsAdjectiveTag(t.Label):
		return "ADJP"
	}
	return "NP"
}

func isComma(t *tree.Tree) bool { return t.Label == "," }

func (c *CoordinationRestructurer) node(label string, kids ...*tree.Tree) *tree.Tree {
	return c.factory.NewNode(label, kids)
}

// laterConjunctions lists CC positions after cc that are not the last child.
func laterConjunctions(kids []*tree.Tree, cc int) []int {
	var out []int
	for i := cc + 1; i < len(kids)-1; i++ {
		if strings.HasPrefix(kids[i].Label, "CC") {
			out = append(out, i)
		}
	}
	return out
}

func join(parts ...[]*tree.Tree) []*tree.Tree {
	n := 0
	for _, p := range parts {
		n += len(p)
	}
	out := make([]*tree.Tree, 0, n)
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

// restructure returns the new children for the NP and which case applied.
func (c *CoordinationRestructurer) restructure(s []*tree.Tree, cc int, done map[*tree.Tree]bool) ([]*tree.Tree, int) {
	later := laterConjunctions(s, cc)
	before := s[cc-1].Label
	switch {
	case cc == 1 &&
		(before == "DT" || before == "JJ" || before == "RB" || s[cc+1].Label != "DT") &&
		// any noun tag, not just NNS: "soya and maize oil" must reach the two-heads case
		!(strings.HasPrefix(before, "NP") || before == "ADJP" || lang.IsNounTag(before)):
		return c.leadingConjunct(s, cc, later), 1
	case cc == 2 && strings.HasPrefix(s[0].Label, "DT") && s[cc-1].Label != "NNS" &&
		(len(s) == 5 || (len(later) > 0 && later[0] == 5)):
		return c.determinerTriple(s, cc), 2
	case cc > 2 && isComma(s[cc-2]) && s[cc-1].Label != "NNS":
		return c.commaList(s, cc), 3
	}
	return c.twoHeads(s, cc, later, done), 4
}

// leadingConjunct handles "a CC b c ..." by grouping (a CC b). Further
// conjunctions split off the remainder into its own NP.
func (c *CoordinationRestructurer) leadingConjunct(s []*tree.Tree, cc int, later []int) []*tree.Tree {
	left := c.node(HeadTag(s[cc-1]), s[:cc+2]...)
	if len(later) == 0 {
		return join([]*tree.Tree{left}, s[cc+2:])
	}
	index := later[0]
	comma := false
	if index-1 > cc+1 && isComma(s[index-1]) {
		index--
		comma = true
	}
	first := left
	if cc+2 < index {
		first = c.node(HeadTag(s[index-1]), join([]*tree.Tree{left}, s[cc+2:index])...)
	}
	out := []*tree.Tree{first, s[index]}
	restStart := index + 1
	if comma {
		out = append(out, s[index+1])
		restStart++
	}
	return append(out, c.node("NP", s[restStart:]...))
}

// determinerTriple handles "DT a CC b c" as DT (a CC b) c.
func (c *CoordinationRestructurer) determinerTriple(s []*tree.Tree, cc int) []*tree.Tree {
	child := c.node(HeadTag(s[cc-1]), s[1:cc+2]...)
	return join(s[:1], []*tree.Tree{child}, s[cc+2:])
}

// commaList handles "... a , b CC c ..." by grouping the list, walking left
// over further "x ," pairs.
func (c *CoordinationRestructurer) commaList(s []*tree.Tree, cc int) []*tree.Tree {
	group := append([]*tree.Tree(nil), s[cc-3:cc+2]...)
	i := cc - 4
	for i > 0 && isComma(s[i]) {
		group = join(s[i-1:i+1], group)
		i -= 2
	}
	if i < 0 {
		i = -1
	}
	child := c.node(HeadTag(s[cc-1]), group...)
	return join(s[:i+1], []*tree.Tree{child}, s[cc+2:])
}

var preconjuncts = map[string]bool{"either": true, "neither": true, "both": true}

// twoHeads splits into a left head group and a right head group around the
// conjunction, pulling out a preconjunct and isolated commas.
func (c *CoordinationRestructurer) twoHeads(s []*tree.Tree, cc int, later []int, done map[*tree.Tree]bool) []*tree.Tree {
	var conj *tree.Tree
	begin := 0
	if first := s[0]; cc > 1 && first.IsPreTerminal() && preconjuncts[strings.ToLower(first.Word())] {
		conj = c.node("CC", first.FirstChild())
		done[conj] = true
		begin = 1
	}

	var leftKids []*tree.Tree
	leftKids = append(leftKids, s[begin:cc-1]...)
	commaLeft := isComma(s[cc-1])
	if !commaLeft {
		leftKids = append(leftKids, s[cc-1])
	}

	next := len(s)
	if len(later) > 0 {
		next = later[0]
	}
	var rightKids []*tree.Tree
	rightKids = append(rightKids, s[cc+1:next-1]...)
	commaRight := isComma(s[next-1])
	if !commaRight {
		rightKids = append(rightKids, s[next-1])
	}

	var parts []*tree.Tree
	if conj != nil {
		parts = append(parts, conj)
	}
	if len(leftKids) > 0 {
		parts = append(parts, c.node(HeadTag(s[cc-1]), leftKids...))
	}
	if commaLeft {
		parts = append(parts, s[cc-1])
	}
	parts = append(parts, s[cc])
	if len(rightKids) > 0 {
		parts = append(parts, c.node(HeadTag(s[next-1]), rightKids...))
	}

	if len(later) == 0 {
		if commaRight {
			parts = append(parts, s[next-1])
		}
		return parts
	}
	out := []*tree.Tree{c.node("NP", parts...)}
	if commaRight {
		out = append(out, s[next-1])
	}
	return join(out, s[next:])
}

func newCoordination(o options) (Stage, error) {
	return NewCoordinationRestructurer(o.factory, o.log), nil
}
