package headfinder

import (
	"testing"

	"github.com/dgallion1/headtree/internal/tree"
)

func TestSemanticCopula(t *testing.T) {
	tests := []struct {
		name       string
		node       *tree.Tree
		parent     *tree.Tree
		copulaHead bool
		want       int
	}{
		{
			name: "copula with adjective predicate",
			node: tree.Node("VP", tree.Pre("VBZ", "is"), tree.Node("ADJP", tree.Pre("JJ", "happy"))),
			want: 1,
		},
		{
			name:       "copula head option",
			node:       tree.Node("VP", tree.Pre("VBZ", "is"), tree.Node("ADJP", tree.Pre("JJ", "happy"))),
			copulaHead: true,
			want:       0,
		},
		{
			name: "copula with noun predicate",
			node: tree.Node("VP", tree.Pre("VBZ", "is"), tree.Node("NP", tree.Pre("DT", "a"), tree.Pre("NN", "dog"))),
			want: 1,
		},
		{
			name: "modal auxiliary",
			node: tree.Node("VP", tree.Pre("MD", "will"), tree.Node("VP", tree.Pre("VB", "go"))),
			want: 1,
		},
		{
			name: "progressive",
			node: tree.Node("VP", tree.Pre("VBZ", "is"), tree.Node("VP", tree.Pre("VBG", "running"))),
			want: 1,
		},
		{
			name: "main verb",
			node: tree.Node("VP", tree.Pre("VBD", "ran"), tree.Node("PP", tree.Pre("IN", "home"))),
			want: 0,
		},
		{
			name: "existential there",
			node: tree.Node("VP", tree.Pre("VBZ", "is"), tree.Node("NP", tree.Pre("NN", "hope"))),
			parent: tree.Node("S",
				tree.Node("NP", tree.Pre("EX", "there")),
				tree.Node("VP"),
			),
			want: 0,
		},
		{
			name: "temporal NP never predicate",
			node: tree.Node("VP", tree.Pre("VBD", "was"), tree.Node("NP-TMP", tree.Pre("NN", "yesterday"))),
			want: 0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewSemantic(penn, tt.copulaHead)
			h, err := f.DetermineHead(tt.node, tt.parent)
			if err != nil {
				t.Fatalf("DetermineHead: %v", err)
			}
			if got := tt.node.ChildIndex(h); got != tt.want {
				t.Fatalf("expected %d, got %d (%s)", tt.want, got, h)
			}
		})
	}
}

func TestSemanticConjpNot(t *testing.T) {
	f := NewSemantic(penn, false)
	n := tree.Node("CONJP", tree.Pre("RB", "not"), tree.Pre("RB", "only"))
	if got := headIndex(t, f, n); got != 0 {
		t.Fatalf("expected not as head, got %d", got)
	}
	n = tree.Node("CONJP", tree.Pre("RB", "rather"), tree.Pre("IN", "than"))
	if got := headIndex(t, f, n); got != 0 {
		t.Fatalf("expected rather as head, got %d", got)
	}
}

func TestSemanticSBARPrefersClause(t *testing.T) {
	f := NewSemantic(penn, false)
	n := tree.Node("SBAR", tree.Pre("IN", "that"), tree.Node("S", tree.Node("VP", tree.Pre("VBD", "left"))))
	if got := headIndex(t, f, n); got != 1 {
		t.Fatalf("expected S head, got %d", got)
	}
	if !NewSemantic(penn, true).MakesCopulaHead() || NewSemantic(penn, false).MakesCopulaHead() {
		t.Fatal("MakesCopulaHead should reflect the option")
	}
}
