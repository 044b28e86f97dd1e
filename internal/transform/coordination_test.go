package transform

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"
	"testing"

	"github.com/dgallion1/headtree/internal/parser"
	"github.com/dgallion1/headtree/internal/tree"
)

func TestCoordinationCases(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "two heads",
			input: "(NP (NN soya) (CC and) (NN maize) (NN oil))",
			want:  "(NP (NP (NN soya)) (CC and) (NP (NN maize) (NN oil)))",
		},
		{
			name:  "leading conjunct",
			input: "(NP (JJ black) (CC and) (JJ white) (NNS photos))",
			want:  "(NP (ADJP (JJ black) (CC and) (JJ white)) (NNS photos))",
		},
		{
			name:  "leading conjunct with a later conjunction",
			input: "(NP (JJ red) (CC and) (JJ blue) (NNS cars) (CC and) (NNS trucks))",
			want:  "(NP (NP (ADJP (JJ red) (CC and) (JJ blue)) (NNS cars)) (CC and) (NP (NNS trucks)))",
		},
		{
			name:  "determiner triple",
			input: "(NP (DT the) (NN apple) (CC and) (NN pear) (NN tree))",
			want:  "(NP (DT the) (NP (NN apple) (CC and) (NN pear)) (NN tree))",
		},
		{
			name:  "comma list",
			input: "(NP (NN a) (, ,) (NN b) (, ,) (NN c) (CC and) (NN d) (NN e))",
			want:  "(NP (NP (NN a) (, ,) (NN b) (, ,) (NN c) (CC and) (NN d)) (NN e))",
		},
		{
			name:  "preconjunct",
			input: "(NP (CC either) (NN tea) (CC or) (NN coffee) (NNS beans))",
			want:  "(NP (CC either) (NP (NN tea)) (CC or) (NP (NN coffee) (NNS beans)))",
		},
		{
			name:  "comma before the next conjunction",
			input: "(NP (NNS apples) (CC and) (NNS pears) (, ,) (CC or) (NNS plums))",
			want:  "(NP (NP (NP (NNS apples)) (CC and) (NP (NNS pears))) (, ,) (CC or) (NNS plums))",
		},
		{
			name:  "leading conjunct keeps the comma before a later conjunction",
			input: "(NP (JJ red) (CC and) (JJ blue) (NNS cars) (, ,) (CC and) (NNS trucks))",
			want:  "(NP (NP (ADJP (JJ red) (CC and) (JJ blue)) (NNS cars)) (, ,) (CC and) (NP (NNS trucks)))",
		},
		{
			name:  "determiner triple followed by a conjunction",
			input: "(NP (DT the) (NN apple) (CC and) (NN pear) (NN tree) (CC and) (NN x) (NN y))",
			want:  "(NP (NP (DT the) (NP (NN apple) (CC and) (NN pear)) (NN tree)) (CC and) (NP (NN x) (NN y)))",
		},
		{
			name:  "preconjunct with comma separated conjuncts",
			input: "(NP (CC both) (NN a) (, ,) (CC and) (NN b) (, ,) (CC or) (NN c))",
			want:  "(NP (NP (CC both) (NP (NN a)) (, ,) (CC and) (NP (NN b))) (, ,) (CC or) (NN c))",
		},
	}
	c := NewCoordinationRestructurer(nil, nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := parser.MustReadTree(tt.input)
			yield := in.Yield()
			out, err := c.Transform(in)
			if err != nil {
				t.Fatalf("Transform: %v", err)
			}
			if got := out.String(); got != tt.want {
				t.Fatalf("expected %s, got %s", tt.want, got)
			}
			if !slices.Equal(out.Yield(), yield) {
				t.Fatalf("yield changed: %v", out.Yield())
			}
		})
	}
}

func TestCoordinationNotTriggered(t *testing.T) {
	tests := []string{
		// conjunction first
		"(NP (CC and) (NN a) (NN b) (NN c))",
		// a noun phrase after the conjunction
		"(NP (NN a) (CC and) (NP (NN b)) (NN c))",
		// only one sibling to the right
		"(NP (NN a) (CC and) (NN b))",
		// two conjunctions in a row
		"(NP (NN a) (CC and) (CC or) (NN b))",
		// not a noun phrase
		"(VP (VB a) (CC and) (VB b) (NN c))",
	}
	c := NewCoordinationRestructurer(tree.DefaultFactory{}, nil)
	for _, s := range tests {
		out, err := c.Transform(parser.MustReadTree(s))
		if err != nil {
			t.Fatalf("%s: %v", s, err)
		}
		if out.String() != s {
			t.Errorf("expected %s unchanged, got %s", s, out)
		}
	}
}

func TestCoordinationNested(t *testing.T) {
	// each level holds a coordination and a PP with the next level inside
	const depth = 200
	inner := "(NP (NN end))"
	for range depth {
		inner = "(NP (JJ x) (CC and) (JJ y) (NN z) (PP (IN of) " + inner + "))"
	}
	in := parser.MustReadTree(inner)
	yield := in.Yield()

	c := NewCoordinationRestructurer(nil, nil)
	out, err := c.Transform(in)
	if err != nil {
		t.Fatalf("Transform: %v", err)
	}
	if !slices.Equal(out.Yield(), yield) {
		t.Fatal("yield changed")
	}
	if n := strings.Count(out.String(), "(ADJP (JJ x) (CC and) (JJ y))"); n != depth {
		t.Fatalf("expected %d grouped conjuncts, got %d", depth, n)
	}
	again, _ := c.Transform(out.DeepCopy())
	if again.String() != out.String() {
		t.Fatal("second pass changed the tree")
	}
}

func TestCoordinationNil(t *testing.T) {
	out, err := NewCoordinationRestructurer(nil, nil).Transform(nil)
	if out != nil || err != nil {
		t.Fatalf("expected nil, nil; got %v, %v", out, err)
	}
}

func TestHeadTag(t *testing.T) {
	tests := map[string]string{"NNS": "NP", "NN": "NP", "JJR": "ADJP", "DT": "NP", ",": "NP"}
	for tag, want := range tests {
		if got := HeadTag(tree.Pre(tag, "w")); got != want {
			t.Errorf("HeadTag(%s): expected %s, got %s", tag, want, got)
		}
	}
}

// randomNP builds a flat noun phrase from tags that exercise every
// coordination case, with the odd nested NP.
func randomNP(r *rand.Rand) *tree.Tree {
	tags := []string{"DT", "JJ", "NN", "NNS", "CC", "CC", ",", "RB"}
	words := map[string][]string{
		"DT": {"the", "both", "either"},
		"CC": {"and", "or", "but"},
		",":  {","},
	}
	n := 3 + r.IntN(7)
	kids := make([]*tree.Tree, 0, n)
	for i := range n {
		if r.IntN(8) == 0 {
			kids = append(kids, tree.Node("NP", tree.Pre("DT", "a"), tree.Pre("NN", fmt.Sprintf("n%d", i))))
			continue
		}
		tag := tags[r.IntN(len(tags))]
		word := fmt.Sprintf("w%d", i)
		if ws, ok := words[tag]; ok {
			word = ws[r.IntN(len(ws))]
		}
		kids = append(kids, tree.Pre(tag, word))
	}
	return tree.Node("NP", kids...)
}

func TestCoordinationRandomKeepsYield(t *testing.T) {
	r := rand.New(rand.NewPCG(7, 11))
	c := NewCoordinationRestructurer(nil, nil)
	for i := range 2000 {
		in := randomNP(r)
		src := in.String()
		yield := in.Yield()
		size := in.Size()

		out, err := c.Transform(in)
		if err != nil {
			t.Fatalf("%s: %v", src, err)
		}
		if !slices.Equal(out.Yield(), yield) {
			t.Fatalf("tree %d %s: yield changed to %v", i, src, out.Yield())
		}
		if out.Size() > 3*size {
			t.Fatalf("tree %d %s: grew from %d to %d nodes", i, src, size, out.Size())
		}
		out.Walk(func(n *tree.Tree) bool {
			if n.Label == "" {
				t.Fatalf("tree %d %s: unlabeled node in %s", i, src, out)
			}
			return true
		})
	}
}
