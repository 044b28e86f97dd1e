package headfinder

import (
	"strings"

	"github.com/dgallion1/headtree/internal/lang"
	"github.com/dgallion1/headtree/internal/tree"
)

var (
	verbalTags            = []string{"TO", "MD", "VB", "VBD", "VBP", "VBZ", "VBG", "VBN", "AUX", "AUXG"}
	unambiguousAuxiliary  = []string{"TO", "MD"}
	copulaRule            = rule(Left, "VP", "ADJP")
	auxiliaryRule         = rule(Left, "VP")
	copulaPredicateLeft   = rule(Left, "VP", "ADJP", "NP", "WHADJP", "WHNP")
	copulaPredicateRight  = rule(Right, "VP", "ADJP", "NP", "WHADJP", "WHNP")
	semanticClauseHeadCat = []string{"VP", "SQ", "SINV"}
)

// NewSemantic returns a finder that prefers content words as heads. Unless
// copulaHead is set, auxiliaries and copulas do not head their clause.
func NewSemantic(lp lang.Pack, copulaHead bool) *Finder {
	f := mustFinder(New(lp, Semantic,
		WithName("semantic"),
		WithAvoid(lp.PunctuationTags()...),
		WithHeadHook(semanticHook),
	))
	f.copulaHead = copulaHead
	return f
}

func semanticHook(f *Finder, node, parent *tree.Tree) (*tree.Tree, bool) {
	cat := f.category(node.Label)
	if cat == "CONJP" {
		return notHead(node)
	}
	if !contains(semanticClauseHeadCat, cat) {
		return nil, false
	}
	kids := node.Children
	var filtered []*tree.Tree
	filter := func() []*tree.Tree {
		if filtered == nil {
			filtered = removeTemporalAndAdverbial(kids)
		}
		return filtered
	}

	if hasAuxiliary(kids, lang.Auxiliary, true) || hasPassiveProgressive(f.lp, kids) {
		r := auxiliaryRule
		if !f.copulaHead && hasAuxiliary(kids, lang.Copula, true) {
			r = copulaRule
		}
		if h := f.Locate(filter(), r, false); h != nil {
			return h, true
		}
	}

	if f.copulaHead {
		return nil, false
	}
	if hasAuxiliary(kids, lang.Copula, false) && !isExistential(f.lp, cat, parent) && !isWHQuestion(cat, parent) {
		r := copulaPredicateLeft
		if cat == "SQ" {
			r = copulaPredicateRight
		}
		h := f.Locate(filter(), r, false)
		if h != nil && strings.Contains(h.Label, "-TMP") {
			h = nil
		}
		// in SQ an NP is only predicative when another NP precedes it
		if h != nil && cat == "SQ" && strings.HasPrefix(h.Label, "NP") {
			other := false
			for _, k := range kids {
				if k == h {
					break
				}
				if strings.HasPrefix(k.Label, "NP") {
					other = true
					break
				}
			}
			if !other {
				h = nil
			}
		}
		if h != nil {
			return h, true
		}
	}
	return nil, false
}

// notHead makes a leading "not" the head of a CONJP such as "not only".
func notHead(node *tree.Tree) (*tree.Tree, bool) {
	first := node.FirstChild()
	if first != nil && first.IsPreTerminal() && strings.EqualFold(first.Word(), "not") {
		return first, true
	}
	return nil, false
}

func removeTemporalAndAdverbial(kids []*tree.Tree) []*tree.Tree {
	out := make([]*tree.Tree, 0, len(kids))
	for _, k := range kids {
		if strings.Contains(k.Label, "-TMP") || strings.Contains(k.Label, "-ADV") {
			continue
		}
		out = append(out, k)
	}
	return out
}

type wordMatcher interface {
	MatchString(string) bool
}

func isAuxiliary(t *tree.Tree, words wordMatcher, tagOnly bool) bool {
	if !t.IsPreTerminal() {
		return false
	}
	tag := t.Label
	if tagOnly && contains(unambiguousAuxiliary, tag) {
		return true
	}
	return contains(verbalTags, tag) && words.MatchString(strings.ToLower(t.Word()))
}

func hasAuxiliary(kids []*tree.Tree, words wordMatcher, tagOnly bool) bool {
	for _, k := range kids {
		if isAuxiliary(k, words, tagOnly) {
			return true
		}
	}
	return false
}

// hasPassiveProgressive looks for a be/get auxiliary together with a VP
// whose verb is a participle.
func hasPassiveProgressive(lp lang.Pack, kids []*tree.Tree) bool {
	aux, participle := false, false
	for _, k := range kids {
		if isAuxiliary(k, lang.PassiveAuxiliary, false) {
			aux = true
			continue
		}
		if !k.IsPhrasal() || !strings.HasPrefix(k.Label, "VP") {
			continue
		}
		for _, kk := range k.Children {
			c := lp.BasicCategory(kk.Label)
			if c == "VBN" || c == "VBG" {
				participle = true
				break
			}
		}
	}
	return aux && participle
}

// isExistential detects "there is" clauses, where the copula stays head.
func isExistential(lp lang.Pack, cat string, parent *tree.Tree) bool {
	if parent == nil {
		return false
	}
	switch {
	case cat == "VP":
		for _, k := range parent.Children {
			if lp.BasicCategory(k.Label) == "VP" {
				break
			}
			if hasTag(k, "EX") {
				return true
			}
		}
	case strings.HasPrefix(cat, "SQ"):
		for _, k := range parent.Children {
			if strings.HasPrefix(k.Label, "VB") {
				continue
			}
			if hasTag(k, "EX") {
				return true
			}
		}
	}
	return false
}

func hasTag(t *tree.Tree, tag string) bool {
	for _, p := range t.PreTerminals() {
		if p.Label == tag {
			return true
		}
	}
	return false
}

func isWHQuestion(cat string, parent *tree.Tree) bool {
	if cat != "SQ" || parent == nil || parent.Label != "SBARQ" {
		return false
	}
	for _, k := range parent.Children {
		if strings.HasPrefix(k.Label, "WH") {
			return true
		}
	}
	return false
}
