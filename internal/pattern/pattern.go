// Package pattern compiles and matches structural tree patterns written in a
// subset of the Tregex language.
//
//	NP < (CC $+ NN=noun) !<< -NONE-
//
// A node description is a label, an alternation NP|NX, a regular expression
// /^NN/, __ for any node, or =name referring back to a bound node. A plain
// label matches the full label or its basic category. Regular expressions
// match the full label. A description may be negated with ! and bound with
// =name. ~name matches a node with the same label as the bound node.
//
// Relations follow the node they constrain:
//
//	<  <,  <-  <:  <N  <-N  <<  >  >>  $  $+  $-  $++  $--
//
// A relation may be negated with ! or made optional with ?. Brackets group
// alternatives: [ < A | < B ]. Parentheses group a target node with its own
// relations.
package pattern

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/dgallion1/headtree/internal/lang"
	"github.com/dgallion1/headtree/internal/tree"
)

// MalformedPatternError is returned by Compile.
type MalformedPatternError struct {
	Pattern string
	Pos     int
	Msg     string
}

func (e *MalformedPatternError) Error() string {
	return fmt.Sprintf("malformed pattern %q at %d: %s", e.Pattern, e.Pos, e.Msg)
}

// Bindings maps names from the pattern to matched nodes.
type Bindings map[string]*tree.Tree

func (b Bindings) with(name string, n *tree.Tree) Bindings {
	out := make(Bindings, len(b)+1)
	for k, v := range b {
		out[k] = v
	}
	out[name] = n
	return out
}

// Pattern is a compiled pattern. It is immutable and safe for concurrent use.
type Pattern struct {
	text string
	root *node
	lp   lang.Pack
}

func (p *Pattern) String() string { return p.text }

// Compile parses a pattern using Penn Treebank categories.
func Compile(text string) (*Pattern, error) {
	return CompileWith(text, lang.Penn{})
}

// CompileWith parses a pattern using the categories of lp.
func CompileWith(text string, lp lang.Pack) (*Pattern, error) {
	toks, err := lex(text)
	if err != nil {
		return nil, err
	}
	ps := &parser{text: text, toks: toks, bound: map[string]bool{}}
	n, err := ps.node()
	if err != nil {
		return nil, err
	}
	if t := ps.peek(); t.kind != tokEOF {
		return nil, ps.errorf(t, "unexpected "+t.val)
	}
	for _, ref := range ps.refs {
		if !ps.bound[ref.val] {
			return nil, ps.errorf(ref, "reference to unbound name "+ref.val)
		}
	}
	return &Pattern{text: text, root: n, lp: lp}, nil
}

// MustCompile is like Compile but panics on error. It is meant for patterns
// in package variables.
func MustCompile(text string) *Pattern {
	p, err := Compile(text)
	if err != nil {
		panic(err)
	}
	return p
}

type relOp int

const (
	relChild relOp = iota
	relFirstChild
	relLastChild
	relOnlyChild
	relNthChild
	relNthLastChild
	relDescendant
	relParent
	relAncestor
	relSister
	relRightSister
	relLeftSister
	relRightSisters
	relLeftSisters
)

type node struct {
	any     bool
	negated bool
	labels  []string
	re      *regexp.Regexp
	sameAs  string
	ref     string
	name    string
	cons    []constraint
}

type constraint interface {
	match(m *matcher, t *tree.Tree, b Bindings, k func(Bindings) bool) bool
}

type relation struct {
	op       relOp
	n        int
	negated  bool
	optional bool
	target   *node
}

type disjunction struct {
	alts [][]constraint
}

type parser struct {
	text  string
	toks  []token
	i     int
	bound map[string]bool
	refs  []token
}

func (p *parser) peek() token { return p.toks[p.i] }

func (p *parser) peekAt(off int) token {
	if p.i+off < len(p.toks) {
		return p.toks[p.i+off]
	}
	return p.toks[len(p.toks)-1]
}

func (p *parser) advance() token {
	t := p.toks[p.i]
	if t.kind != tokEOF {
		p.i++
	}
	return t
}

func (p *parser) errorf(t token, msg string) error {
	return &MalformedPatternError{Pattern: p.text, Pos: t.pos, Msg: msg}
}

func (p *parser) isPunct(val string) bool {
	t := p.peek()
	return t.kind == tokPunct && t.val == val
}

func (p *parser) expectPunct(val string) error {
	t := p.advance()
	if t.kind != tokPunct || t.val != val {
		return p.errorf(t, "expected "+val)
	}
	return nil
}

// node = ( "(" node ")" | description ) constraints
func (p *parser) node() (*node, error) {
	var n *node
	var err error
	if p.isPunct("(") {
		p.advance()
		if n, err = p.node(); err != nil {
			return nil, err
		}
		if err := p.expectPunct(")"); err != nil {
			return nil, err
		}
	} else if n, err = p.description(); err != nil {
		return nil, err
	}
	cons, err := p.constraints()
	if err != nil {
		return nil, err
	}
	n.cons = append(n.cons, cons...)
	return n, nil
}

// target = "(" node ")" | description
func (p *parser) target() (*node, error) {
	if p.isPunct("(") {
		p.advance()
		n, err := p.node()
		if err != nil {
			return nil, err
		}
		return n, p.expectPunct(")")
	}
	return p.description()
}

func (p *parser) description() (*node, error) {
	n := &node{}
	if p.isPunct("!") {
		p.advance()
		n.negated = true
	}
	t := p.advance()
	switch {
	case t.kind == tokPunct && t.val == "=":
		name := p.advance()
		if name.kind != tokIdent {
			return nil, p.errorf(name, "expected name after =")
		}
		if n.negated {
			return nil, p.errorf(t, "cannot negate a back reference")
		}
		n.ref = name.val
		p.refs = append(p.refs, name)
		return n, nil
	case t.kind == tokPunct && t.val == "~":
		name := p.advance()
		if name.kind != tokIdent {
			return nil, p.errorf(name, "expected name after ~")
		}
		n.sameAs = name.val
		p.refs = append(p.refs, name)
	case t.kind == tokPunct && t.val == "@":
		if err := p.labels(n); err != nil {
			return nil, err
		}
	case t.kind == tokRegex:
		re, err := regexp.Compile(t.val)
		if err != nil {
			return nil, p.errorf(t, "bad regular expression: "+err.Error())
		}
		n.re = re
	case t.kind == tokIdent && t.val == "__":
		n.any = true
	case t.kind == tokIdent:
		p.i--
		if err := p.labels(n); err != nil {
			return nil, err
		}
	default:
		if t.kind == tokEOF {
			return nil, p.errorf(t, "unexpected end of pattern")
		}
		return nil, p.errorf(t, "expected node description, got "+t.val)
	}
	if p.isPunct("=") && p.peekAt(1).kind == tokIdent {
		p.advance()
		name := p.advance()
		n.name = name.val
		p.bound[name.val] = true
	}
	return n, nil
}

func (p *parser) labels(n *node) error {
	for {
		t := p.advance()
		if t.kind != tokIdent {
			return p.errorf(t, "expected label")
		}
		n.labels = append(n.labels, t.val)
		// "|" continues the alternation only when a label follows; inside
		// brackets it separates alternatives instead
		if !p.isPunct("|") || p.peekAt(1).kind != tokIdent {
			return nil
		}
		p.advance()
	}
}

func (p *parser) constraints() ([]constraint, error) {
	var out []constraint
	for {
		t := p.peek()
		switch {
		case t.kind == tokRel,
			t.kind == tokPunct && (t.val == "!" || t.val == "?") && p.peekAt(1).kind == tokRel:
			r, err := p.relation()
			if err != nil {
				return nil, err
			}
			out = append(out, r)
		case t.kind == tokPunct && t.val == "[":
			d, err := p.disjunction()
			if err != nil {
				return nil, err
			}
			out = append(out, d)
		default:
			return out, nil
		}
	}
}

func (p *parser) relation() (*relation, error) {
	r := &relation{}
	if p.isPunct("!") {
		p.advance()
		r.negated = true
	} else if p.isPunct("?") {
		p.advance()
		r.optional = true
	}
	t := p.advance()
	if err := p.relOp(r, t); err != nil {
		return nil, err
	}
	target, err := p.target()
	if err != nil {
		return nil, err
	}
	r.target = target
	return r, nil
}

func (p *parser) relOp(r *relation, t token) error {
	switch t.val {
	case "<":
		r.op = relChild
	case "<,":
		r.op = relFirstChild
	case "<-":
		r.op = relLastChild
	case "<:":
		r.op = relOnlyChild
	case "<<":
		r.op = relDescendant
	case ">":
		r.op = relParent
	case ">>":
		r.op = relAncestor
	case "$":
		r.op = relSister
	case "$+":
		r.op = relRightSister
	case "$-":
		r.op = relLeftSister
	case "$++":
		r.op = relRightSisters
	case "$--":
		r.op = relLeftSisters
	default:
		num := t.val[1:]
		r.op = relNthChild
		if len(num) > 0 && num[0] == '-' {
			r.op = relNthLastChild
			num = num[1:]
		}
		n, err := strconv.Atoi(num)
		if err != nil || n < 1 {
			return p.errorf(t, "unknown relation "+t.val)
		}
		r.n = n
	}
	return nil
}

func (p *parser) disjunction() (*disjunction, error) {
	open := p.advance()
	d := &disjunction{}
	for {
		cons, err := p.constraints()
		if err != nil {
			return nil, err
		}
		if len(cons) == 0 {
			return nil, p.errorf(p.peek(), "empty alternative")
		}
		d.alts = append(d.alts, cons)
		t := p.advance()
		switch {
		case t.kind == tokPunct && t.val == "|":
			continue
		case t.kind == tokPunct && t.val == "]":
			return d, nil
		case t.kind == tokEOF:
			return nil, p.errorf(open, "unclosed [")
		default:
			return nil, p.errorf(t, "expected | or ]")
		}
	}
}
