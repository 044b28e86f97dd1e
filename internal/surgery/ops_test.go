package surgery

import (
	"errors"
	"testing"

	"github.com/dgallion1/headtree/internal/pattern"
	"github.com/dgallion1/headtree/internal/tree"
)

func apply(t *testing.T, pat, script string, root *tree.Tree) *tree.Tree {
	t.Helper()
	r, err := NewRule(pat, script)
	if err != nil {
		t.Fatalf("NewRule: %v", err)
	}
	out, err := ApplyAll([]Rule{r}, root, 100)
	if err != nil {
		t.Fatalf("ApplyAll: %v", err)
	}
	return out
}

func TestOperations(t *testing.T) {
	tests := []struct {
		name   string
		input  *tree.Tree
		pat    string
		script string
		want   string
	}{
		{
			name:   "excise",
			input:  tree.Node("S", tree.Node("VP", tree.Node("VP", tree.Pre("VB", "go")))),
			pat:    "VP=a <: (VP=b)",
			script: "excise a a",
			want:   "(S (VP (VB go)))",
		},
		{
			name:   "excise root",
			input:  tree.Node("X", tree.Node("X", tree.Pre("NN", "a"), tree.Pre("NN", "b"))),
			pat:    "X=r <: X",
			script: "excise r r",
			want:   "(X (NN a) (NN b))",
		},
		{
			name:   "prune empties parent",
			input:  tree.Node("S", tree.Node("NP", tree.Pre("-NONE-", "*T*")), tree.Node("VP", tree.Pre("VB", "go"))),
			pat:    "-NONE-=n",
			script: "prune n",
			want:   "(S (VP (VB go)))",
		},
		{
			name:   "relabel and excise",
			input:  tree.Node("ADVP", tree.Pre("RB", "now"), tree.Node("SBAR", tree.Pre("IN", "that"), tree.Node("S", tree.Pre("VB", "go")))),
			pat:    "ADVP=advp <1 (RB < now) <2 (SBAR=sbar <1 (IN < that))",
			script: "[relabel advp SBAR] [excise sbar sbar]",
			want:   "(SBAR (RB now) (IN that) (S (VB go)))",
		},
		{
			name:   "relabel regex keeps suffix",
			input:  tree.Node("S", tree.Node("UCP-PRD", tree.Pre("JJ", "red"), tree.Pre("CC", "and"), tree.Node("NP", tree.Pre("NN", "ink")))),
			pat:    "/^UCP/=u <, JJ",
			script: "relabel u /^UCP(.*)$/ADJP$1/",
			want:   "(S (ADJP-PRD (JJ red) (CC and) (NP (NN ink))))",
		},
		{
			name:   "create subtree",
			input:  tree.Node("NP", tree.Pre("CC", "and"), tree.Pre("RB", "yet"), tree.Pre("NN", "x")),
			pat:    "NP !< CONJP < (CC=a $+ RB=b)",
			script: "createSubtree CONJP a b",
			want:   "(NP (CONJP (CC and) (RB yet)) (NN x))",
		},
		{
			name:   "move to first child",
			input:  tree.Node("S", tree.Node("S", tree.Pre("VB", "a")), tree.Pre("CC", "and"), tree.Pre("RB", "not"), tree.Node("S", tree.Pre("VB", "b"))),
			pat:    "S < (CC $+ (RB=rb < not $+ S=dest))",
			script: "move rb >0 dest",
			want:   "(S (S (VB a)) (CC and) (S (RB not) (VB b)))",
		},
		{
			name:   "replace",
			input:  tree.Node("NP", tree.Pre("DT", "a"), tree.Pre("NN", "b")),
			pat:    "NP < DT=d < (NN=n !< a)",
			script: "replace n d",
			want:   "(NP (DT a) (DT a))",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := apply(t, tt.pat, tt.script, tt.input)
			if got.String() != tt.want {
				t.Fatalf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestMoveSisters(t *testing.T) {
	root := tree.Node("X", tree.Pre("A", "a"), tree.Pre("B", "b"), tree.Pre("C", "c"))
	b := pattern.Bindings{"a": root.Children[0], "c": root.Children[2]}
	out, err := Move("a", RightOf("c")).Apply(b, root)
	if err != nil {
		t.Fatalf("Move: %v", err)
	}
	if got := out.String(); got != "(X (B b) (C c) (A a))" {
		t.Fatalf("unexpected %s", got)
	}
	out, err = Move("a", LeftOf("c")).Apply(b, out)
	if err != nil {
		t.Fatalf("Move: %v", err)
	}
	if got := out.String(); got != "(X (B b) (A a) (C c))" {
		t.Fatalf("unexpected %s", got)
	}
}

func TestPruneWholeTree(t *testing.T) {
	root := tree.Node("S", tree.Node("NP", tree.Pre("-NONE-", "*")))
	out := apply(t, "-NONE-=n", "prune n", root)
	if out != nil {
		t.Fatalf("expected nil tree, got %s", out)
	}
}

func TestApplyAllLimit(t *testing.T) {
	// relabeling X to X never stops matching
	r := MustRule("X=x", "relabel x X")
	_, err := ApplyAll([]Rule{r}, tree.Node("X", tree.Pre("A", "a")), 5)
	if !errors.Is(err, ErrLimit) {
		t.Fatalf("expected ErrLimit, got %v", err)
	}
}

func TestUnboundName(t *testing.T) {
	_, err := Relabel("nope", "X").Apply(pattern.Bindings{}, tree.Node("X"))
	if err == nil {
		t.Fatal("expected error for unbound name")
	}
}

func TestParseErrors(t *testing.T) {
	tests := []string{
		"",
		"explode a",
		"excise a",
		"[relabel a B",
		"relabel a /x/",
		"move a >5 b",
		"[excise a a] junk",
	}
	for _, s := range tests {
		_, err := Parse(s)
		var mpe *pattern.MalformedPatternError
		if !errors.As(err, &mpe) {
			t.Errorf("%q: expected MalformedPatternError, got %v", s, err)
		}
	}
}
