package transform

import (
	"errors"
	"log/slog"
	"slices"
	"testing"
	"time"

	"github.com/dgallion1/headtree/internal/headfinder"
	"github.com/dgallion1/headtree/internal/lang"
	"github.com/dgallion1/headtree/internal/parser"
	"github.com/dgallion1/headtree/internal/surgery"
	"github.com/dgallion1/headtree/internal/tree"
)

func stage(t *testing.T, build func(options) (Stage, error), o options) Stage {
	t.Helper()
	if o.factory == nil {
		o.factory = tree.DefaultFactory{}
	}
	st, err := build(o)
	if err != nil {
		t.Fatalf("build stage: %v", err)
	}
	return st
}

type stageCase struct {
	name  string
	input string
	want  string
}

func runStage(t *testing.T, st Stage, tests []stageCase) {
	t.Helper()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := parser.MustReadTree(tt.input)
			yield := in.Yield()
			out, err := st.Transform(in)
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

func TestStageOrder(t *testing.T) {
	p, err := NewPipeline()
	if err != nil {
		t.Fatalf("NewPipeline: %v", err)
	}
	var names []string
	for _, st := range p.Stages() {
		names = append(names, st.Name())
	}
	want := []string{"cleanup", "ucp", "coordination", "qp", "sq-flatten", "dates", "x-over-x", "conjp", "move-rb", "sbar-to-pp", "now-that"}
	if !slices.Equal(names, want) {
		t.Fatalf("expected %v, got %v", want, names)
	}
}

func TestStagesPassNil(t *testing.T) {
	p, err := NewPipeline()
	if err != nil {
		t.Fatalf("NewPipeline: %v", err)
	}
	for _, st := range p.Stages() {
		out, err := st.Transform(nil)
		if out != nil || err != nil {
			t.Errorf("%s: expected nil, nil; got %v, %v", st.Name(), out, err)
		}
	}
	out, err := p.Transform(nil)
	if out != nil || err != nil {
		t.Fatalf("pipeline: expected nil, nil; got %v, %v", out, err)
	}
}

func TestPipelineSoya(t *testing.T) {
	var seen []string
	p, err := NewPipeline(WithObserver(func(stage string, _ time.Duration) { seen = append(seen, stage) }))
	if err != nil {
		t.Fatalf("NewPipeline: %v", err)
	}
	in := parser.MustReadTree("(TOP (S (NP-SBJ (NN soya) (CC and) (NN maize) (NN oil)) (VP (VBD rose))))")
	out, err := p.Transform(in)
	if err != nil {
		t.Fatalf("Transform: %v", err)
	}
	want := "(ROOT (S (NP (NP (NN soya)) (CC and) (NP (NN maize) (NN oil))) (VP (VBD rose))))"
	if got := out.String(); got != want {
		t.Fatalf("expected %s, got %s", want, got)
	}
	if len(seen) != 11 {
		t.Fatalf("observer saw %d stages", len(seen))
	}
}

type countingFactory struct {
	tree.DefaultFactory
	nodes int
}

func (f *countingFactory) NewNode(label string, children []*tree.Tree) *tree.Tree {
	f.nodes++
	return f.DefaultFactory.NewNode(label, children)
}

func TestWithFactory(t *testing.T) {
	f := &countingFactory{}
	p, err := NewPipeline(WithFactory(f))
	if err != nil {
		t.Fatalf("NewPipeline: %v", err)
	}
	if _, err := p.Transform(parser.MustReadTree("(ROOT (NP (NN soya) (CC and) (NN maize) (NN oil)))")); err != nil {
		t.Fatalf("Transform: %v", err)
	}
	if f.nodes < 2 {
		t.Fatalf("expected the factory to build the conjunct NPs, got %d nodes", f.nodes)
	}
}

func TestPipelineNowThat(t *testing.T) {
	p, err := NewPipeline()
	if err != nil {
		t.Fatalf("NewPipeline: %v", err)
	}
	in := parser.MustReadTree("(ROOT (S (ADVP (RB now) (SBAR (IN that) (S (NP (PRP we)) (VP (VBP know))))) (, ,) (NP (PRP we)) (VP (VBP leave))))")
	out, err := p.Transform(in)
	if err != nil {
		t.Fatalf("Transform: %v", err)
	}
	want := "(ROOT (S (SBAR (RB now) (IN that) (S (NP (PRP we)) (VP (VBP know)))) (, ,) (NP (PRP we)) (VP (VBP leave))))"
	if got := out.String(); got != want {
		t.Fatalf("expected %s, got %s", want, got)
	}
}

type failStage struct{}

func (failStage) Name() string { return "fail" }
func (failStage) Transform(*tree.Tree) (*tree.Tree, error) {
	return nil, errors.New("boom")
}

type countStage struct{ n *int }

func (countStage) Name() string { return "count" }
func (c countStage) Transform(t *tree.Tree) (*tree.Tree, error) {
	*c.n++
	return t, nil
}

func TestPipelineAbortsOnError(t *testing.T) {
	var after int
	p := &Pipeline{stages: []Stage{failStage{}, countStage{&after}}, log: slog.New(slog.DiscardHandler)}
	_, err := p.Transform(tree.Node("X", tree.Leaf("x")))
	if err == nil || err.Error() != "stage fail: boom" {
		t.Fatalf("unexpected error %v", err)
	}
	if after != 0 {
		t.Fatal("stages after a failure must not run")
	}
}

func TestRuleLimit(t *testing.T) {
	p, err := NewPipeline(WithRuleLimit(1))
	if err != nil {
		t.Fatalf("NewPipeline: %v", err)
	}
	in := parser.MustReadTree("(ROOT (S (UCP (JJ big) (CC and) (NN red)) (UCP (JJ small) (CC or) (NN blue))))")
	if _, err := p.Transform(in); !errors.Is(err, surgery.ErrLimit) {
		t.Fatalf("expected ErrLimit, got %v", err)
	}
}

func TestCleanup(t *testing.T) {
	runStage(t, NewCleanup(), []stageCase{
		{
			name:  "labels and empty elements",
			input: "( (S (NP-SBJ-1 (-NONE- *)) (NP-TMP-2 (NN yesterday)) (VP (VBD left) (ADVP-LOC=3 (RB here))) (. .)))",
			want:  "(ROOT (S (NP-TMP (NN yesterday)) (VP (VBD left) (ADVP (RB here))) (. .)))",
		},
		{
			name:  "adverbial noun phrase",
			input: "(TOP (S (NP-ADV (DT a) (NN bit)) (VP (VBD slowed))))",
			want:  "(ROOT (S (NP-ADV (DT a) (NN bit)) (VP (VBD slowed))))",
		},
	})
	out, err := NewCleanup().Transform(parser.MustReadTree("(S (NP (-NONE- *T*)))"))
	if out != nil || err != nil {
		t.Fatalf("tree of empty elements should vanish, got %v, %v", out, err)
	}
}

func TestUCP(t *testing.T) {
	runStage(t, stage(t, newUCP, options{}), []stageCase{
		{"adjective first", "(S (UCP (JJ red) (CC and) (NP (NN ink))))", "(S (ADJP (JJ red) (CC and) (NP (NN ink))))"},
		{"noun first", "(S (UCP (NP (NN ink)) (CC and) (JJ red)))", "(S (NP (NP (NN ink)) (CC and) (JJ red)))"},
		{"determiner then noun", "(S (UCP (DT the) (NN ink) (CC and) (JJ red)))", "(S (NP (DT the) (NN ink) (CC and) (JJ red)))"},
		{"adverb first", "(S (UCP (RB here) (CC and) (PP (IN in) (NN town))))", "(S (ADVP (RB here) (CC and) (PP (IN in) (NN town))))"},
		{"adjective last", "(S (UCP (PP (IN in) (NN town)) (CC and) (ADJP (JJ happy))))", "(S (ADJP (PP (IN in) (NN town)) (CC and) (ADJP (JJ happy))))"},
	})
}

func TestQP(t *testing.T) {
	runStage(t, stage(t, newQP, options{}), []stageCase{
		{"xs", "(NP (QP (RB more) (IN than) (CD 5)) (NNS people))", "(NP (QP (XS (RB more) (IN than)) (CD 5)) (NNS people))"},
		{"split", "(NP (QP ($ $) (CD 5) (CC or) ($ $) (CD 6)))", "(NP (QP (QP ($ $) (CD 5)) (CC or) (QP ($ $) (CD 6))))"},
		{"split one side", "(NP (QP (DT a) (JJ few) (CC or) (CD 5)))", "(NP (QP (NP (DT a) (JJ few)) (CC or) (CD 5)))"},
		{"money", "(NP (QP (IN about) ($ $) (CD 5) (CD million)))", "(NP (QP (IN about) (QP ($ $) (CD 5) (CD million))))"},
		{"merge", "(NP (QP (CD 5)) (QP (CC or) (CD 6)))", "(NP (QP (CD 5) (CC or) (CD 6)))"},
	})
}

const whatIs = "(ROOT (SBARQ (WHNP (WP What)) (SQ (VBZ is) (NP (DT the) (NN time))) (. ?)))"

func TestSQFlatten(t *testing.T) {
	runStage(t, stage(t, newSQFlatten, options{}), []stageCase{
		{"copula", whatIs, "(ROOT (SBARQ (WHNP (WP What)) (VBZ is) (NP (DT the) (NN time)) (. ?)))"},
		{
			"other verb",
			"(ROOT (SBARQ (WHNP (WP What)) (SQ (VBD did) (NP (PRP he)) (VP (VB say))) (. ?)))",
			"(ROOT (SBARQ (WHNP (WP What)) (SQ (VBD did) (NP (PRP he)) (VP (VB say))) (. ?)))",
		},
		{
			"existential",
			"(ROOT (SBARQ (WHNP (WP What)) (SQ (VBZ is) (NP (EX there))) (. ?)))",
			"(ROOT (SBARQ (WHNP (WP What)) (SQ (VBZ is) (NP (EX there))) (. ?)))",
		},
	})
}

func TestSQFlattenCopulaHead(t *testing.T) {
	hf := headfinder.NewSemantic(lang.Penn{}, true)
	p, err := NewPipeline(WithFinder(hf))
	if err != nil {
		t.Fatalf("NewPipeline: %v", err)
	}
	out, err := p.Transform(parser.MustReadTree(whatIs))
	if err != nil {
		t.Fatalf("Transform: %v", err)
	}
	if out.String() != whatIs {
		t.Fatalf("SQ should stay when copulas are heads, got %s", out)
	}
}

func TestDates(t *testing.T) {
	runStage(t, stage(t, newDates, options{}), []stageCase{
		{"month year", "(NP (NP (NNP March)) (NP (CD 1990)))", "(NP (NNP March) (CD 1990))"},
		{"month day year", "(NP (NP (NNP March) (CD 5)) (, ,) (NP (CD 1990)))", "(NP (NNP March) (CD 5) (, ,) (CD 1990))"},
		{"not a month", "(NP (NP (NNP Smith)) (NP (CD 1990)))", "(NP (NP (NNP Smith)) (NP (CD 1990)))"},
	})
}

func TestXOverX(t *testing.T) {
	runStage(t, stage(t, newXOverX, options{}), []stageCase{
		{"vp over vp", "(S (VP (VP (VB go))))", "(S (VP (VB go)))"},
		{"chain", "(S (NP (NP (NP (NN a)))))", "(S (NP (NN a)))"},
		{"preterminal word", "(S (NN NN))", "(S (NN NN))"},
	})
}

func TestConjP(t *testing.T) {
	runStage(t, stage(t, newConjP, options{}), []stageCase{
		{"and yet", "(VP (VP (VB a)) (CC and) (RB yet) (VP (VB b)))", "(VP (VP (VB a)) (CONJP (CC and) (RB yet)) (VP (VB b)))"},
		{"as well as", "(NP (NP (NN x)) (RB as) (RB well) (IN as) (NP (NN y)))", "(NP (NP (NN x)) (CONJP (RB as) (RB well) (IN as)) (NP (NN y)))"},
		{"as well as advp", "(NP (NP (NN x)) (ADVP (RB as) (RB well)) (IN as) (NP (NN y)))", "(NP (NP (NN x)) (CONJP (RB as) (RB well) (IN as)) (NP (NN y)))"},
		{"rather than", "(NP (NP (NN x)) (RB rather) (IN than) (NP (NN y)))", "(NP (NP (NN x)) (CONJP (RB rather) (IN than)) (NP (NN y)))"},
		{"not only", "(S (RB not) (RB only) (S (VB a)))", "(S (CONJP (RB not) (RB only)) (S (VB a)))"},
	})
}

func TestMoveRB(t *testing.T) {
	runStage(t, stage(t, newMoveRB, options{}), []stageCase{
		{
			"and then",
			"(S (S (NP (PRP I)) (VP (VBD went))) (CC and) (RB then) (S (NP (PRP she)) (VP (VBD left))))",
			"(S (S (NP (PRP I)) (VP (VBD went))) (CC and) (S (RB then) (NP (PRP she)) (VP (VBD left))))",
		},
		{
			"comma advp",
			"(VP (VP (VB stay)) (, ,) (ADVP (RB not)) (VP (VB go)))",
			"(VP (VP (VB stay)) (, ,) (VP (ADVP (RB not)) (VB go)))",
		},
		{
			"question conjuncts",
			"(SQ (SQ (VBZ is) (NP (PRP it))) (CC or) (RB not) (SQ (VBZ is) (NP (PRP it))))",
			"(SQ (SQ (VBZ is) (NP (PRP it))) (CC or) (SQ (RB not) (VBZ is) (NP (PRP it))))",
		},
		{
			"inverted conjuncts",
			"(SINV (SINV (VBD said) (NP (PRP he))) (CC and) (RB then) (SINV (VBD left) (NP (PRP she))))",
			"(SINV (SINV (VBD said) (NP (PRP he))) (CC and) (SINV (RB then) (VBD left) (NP (PRP she))))",
		},
		{"frag", "(FRAG (RB not) (VP (VB now)))", "(FRAG (VP (RB not) (VB now)))"},
	})
}

func TestSBARToPP(t *testing.T) {
	runStage(t, stage(t, newSBARToPP, options{}), []stageCase{
		{
			"after",
			"(NP (NP (DT the) (NN day)) (SBAR (IN after) (S (NP (PRP he)) (VP (VBD left)))))",
			"(NP (NP (DT the) (NN day)) (PP (IN after) (S (NP (PRP he)) (VP (VBD left)))))",
		},
		{
			"because",
			"(NP (NP (DT the) (NN day)) (SBAR (IN because) (S (VP (VBD left)))))",
			"(NP (NP (DT the) (NN day)) (SBAR (IN because) (S (VP (VBD left)))))",
		},
	})
}

func TestNowThat(t *testing.T) {
	runStage(t, stage(t, newNowThat, options{}), []stageCase{
		{
			"now that",
			"(ADVP (RB now) (SBAR (IN that) (S (VB go))))",
			"(SBAR (RB now) (IN that) (S (VB go)))",
		},
		{
			"just now",
			"(ADVP (RB just) (RB now))",
			"(ADVP (RB just) (RB now))",
		},
	})
}

func TestPipelineKeepsYield(t *testing.T) {
	p, err := NewPipeline()
	if err != nil {
		t.Fatalf("NewPipeline: %v", err)
	}
	inputs := []string{
		"(ROOT (S (NP (DT the) (JJ new) (NN phone) (NN book) (CC and) (NN tour) (NN guide)) (VP (VBD arrived)) (. .)))",
		"(ROOT (S (NP (NNS apples) (, ,) (NNS pears) (, ,) (CC and) (NNS plums)) (VP (VBD fell))))",
		"(ROOT (NP (QP (IN between) ($ $) (CD 5) (CC and) ($ $) (CD 6)) (NN million)))",
	}
	for _, s := range inputs {
		in := parser.MustReadTree(s)
		yield := in.Yield()
		out, err := p.Transform(in)
		if err != nil {
			t.Fatalf("%s: %v", s, err)
		}
		if !slices.Equal(out.Yield(), yield) {
			t.Errorf("yield changed for %s: %s", s, out)
		}
	}
}
