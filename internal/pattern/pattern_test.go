package pattern

import (
	"errors"
	"testing"

	"github.com/dgallion1/headtree/internal/tree"
)

func np() *tree.Tree {
	return tree.Node("ROOT",
		tree.Node("S",
			tree.Node("NP-SBJ",
				tree.Pre("DT", "the"),
				tree.Pre("NN", "soya"),
				tree.Pre("CC", "and"),
				tree.Pre("NN", "maize"),
			),
			tree.Node("VP", tree.Pre("VBD", "grew")),
		),
	)
}

func TestCompileErrors(t *testing.T) {
	tests := []struct {
		pattern string
		pos     int
	}{
		{"", 0},
		{"NP <", 4},
		{"NP < (NN", 8},
		{"NP < /[/", 5},
		{"NP < /abc", 5},
		{"NP [ < NN", 3},
		{"NP < =x", 6},
		{"NP ) NN", 3},
		{"NP <0 NN", 3},
	}
	for _, tt := range tests {
		_, err := Compile(tt.pattern)
		var mpe *MalformedPatternError
		if !errors.As(err, &mpe) {
			t.Fatalf("%q: expected MalformedPatternError, got %v", tt.pattern, err)
		}
		if mpe.Pos != tt.pos {
			t.Errorf("%q: expected position %d, got %d (%s)", tt.pattern, tt.pos, mpe.Pos, mpe.Msg)
		}
	}
}

func TestBindings(t *testing.T) {
	p := MustCompile("NP=np < (CC=cc $+ NN=right $- NN=left)")
	root := np()
	b, ok := p.FindFirst(root)
	if !ok {
		t.Fatal("expected a match")
	}
	if b["np"].Label != "NP-SBJ" || b["cc"].Word() != "and" || b["right"].Word() != "maize" || b["left"].Word() != "soya" {
		t.Fatalf("unexpected bindings %v", b)
	}
}

func TestRelations(t *testing.T) {
	root := np()
	tests := []struct {
		pattern string
		want    bool
	}{
		{"NP <, DT", true},
		{"NP <, NN", false},
		{"NP <- NN", true},
		{"NP <2 NN", true},
		{"NP <3 NN", false},
		{"NP <-2 CC", true},
		{"VP <: VBD", true},
		{"NP <: VBD", false},
		{"S << maize", true},
		{"S < maize", false},
		{"DT > NP", true},
		{"DT >> S", true},
		{"DT >> VP", false},
		{"CC $++ NN", true},
		{"CC $-- DT", true},
		{"DT $-- __", false},
		{"DT $ CC", true},
		{"NP !< JJ", true},
		{"NP !< NN", false},
		{"NP ?< JJ=adj < CC", true},
		{"NP < (NN < /^m/)", true},
		{"NP < (NN < !/^[ms]/)", false},
		{"NP < (/^N/ < soya)", true},
		{"NP|VP < VBD", true},
		{"@NP < CC", true},
		{"/^NP-SBJ$/ < CC", true},
		{"/^NP$/ < CC", false},
		{"NP [ < JJ | < CC ]", true},
		{"NP [ < JJ | < VB ]", false},
		{"NP < (CC=c $+ =c)", false},
		{"NP < (NN=a $++ (CC $+ ~a))", true},
		{"__ < (CC $+ !NN)", false},
	}
	for _, tt := range tests {
		p, err := Compile(tt.pattern)
		if err != nil {
			t.Fatalf("%q: %v", tt.pattern, err)
		}
		_, got := p.FindFirst(root)
		if got != tt.want {
			t.Errorf("%q: expected %v, got %v", tt.pattern, tt.want, got)
		}
	}
}

func TestOptionalBinding(t *testing.T) {
	root := np()
	b, ok := MustCompile("NP ?< JJ=adj < DT=det").FindFirst(root)
	if !ok {
		t.Fatal("expected match")
	}
	if _, bound := b["adj"]; bound {
		t.Fatal("optional relation with no match should not bind")
	}
	if b["det"] == nil {
		t.Fatal("det should be bound")
	}
}

func TestDisjunctionSharedName(t *testing.T) {
	p := MustCompile("NP [ < (JJ=x) | < (CC=x) ]")
	b, ok := p.FindFirst(np())
	if !ok || b["x"].Label != "CC" {
		t.Fatalf("expected x bound to CC, got %v", b)
	}
}

func TestMatchAllNodes(t *testing.T) {
	p := MustCompile("/^NN/")
	if got := len(p.Match(np())); got != 2 {
		t.Fatalf("expected 2 matches, got %d", got)
	}
	nn := np().FirstChild().FirstChild().Children[1]
	if _, ok := p.MatchAt(nn, nn); !ok {
		t.Fatal("MatchAt should match the node itself")
	}
	if p.Match(nil) != nil {
		t.Fatal("nil tree has no matches")
	}
}

func TestNegatedRelationDoesNotBind(t *testing.T) {
	b, ok := MustCompile("NP !< (JJ=adj)").FindFirst(np())
	if !ok {
		t.Fatal("expected match")
	}
	if len(b) != 0 {
		t.Fatalf("expected no bindings, got %v", b)
	}
}
