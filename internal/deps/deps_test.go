package deps

import (
	"errors"
	"testing"

	"github.com/dgallion1/headtree/internal/headfinder"
	"github.com/dgallion1/headtree/internal/lang"
	"github.com/dgallion1/headtree/internal/parser"
	"github.com/dgallion1/headtree/internal/percolate"
)

func TestExtract(t *testing.T) {
	root := parser.MustReadTree("(ROOT (S (NP (DT The) (NN cat)) (VP (VBD sat) (PP (IN on) (NP (DT the) (NN mat)))) (. .)))")
	if err := percolate.Heads(root, headfinder.NewModCollins(lang.Penn{})); err != nil {
		t.Fatalf("Heads: %v", err)
	}
	got, err := Extract(root)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	want := []string{
		"dep(cat-2, The-1)",
		"dep(sat-3, cat-2)",
		"root(ROOT-0, sat-3)",
		"dep(sat-3, on-4)",
		"dep(mat-6, the-5)",
		"dep(on-4, mat-6)",
		"dep(sat-3, .-7)",
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d arcs, got %d: %v", len(want), len(got), got)
	}
	for i := range want {
		if got[i].String() != want[i] {
			t.Errorf("arc %d: expected %s, got %s", i, want[i], got[i])
		}
	}
}

func TestExtractWithoutHeads(t *testing.T) {
	_, err := Extract(parser.MustReadTree("(S (NP (PRP I)) (VP (VBD ran)))"))
	if !errors.Is(err, ErrNoHeads) {
		t.Fatalf("expected ErrNoHeads, got %v", err)
	}
	if deps, err := Extract(nil); deps != nil || err != nil {
		t.Fatalf("nil tree: got %v, %v", deps, err)
	}
}
