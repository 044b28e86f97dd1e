package parser

import (
	"fmt"
	"io"
	"unicode"

	"github.com/dgallion1/headtree/internal/tree"
	"golang.org/x/text/unicode/norm"
)

// SyntaxError reports malformed bracketed input. Line and Col are 1-based.
type SyntaxError struct {
	Line, Col int
	Msg       string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("line %d col %d: %s", e.Line, e.Col, e.Msg)
}

// PennParser reads Penn Treebank bracketed trees, any number per file.
type PennParser struct{}

func (p *PennParser) Parse(r io.Reader, filename string) ([]*tree.Tree, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return ReadTrees(string(src))
}

// ReadTree reads exactly one tree.
func ReadTree(src string) (*tree.Tree, error) {
	ts, err := ReadTrees(src)
	if err != nil {
		return nil, err
	}
	if len(ts) != 1 {
		return nil, &SyntaxError{Line: 1, Col: 1, Msg: fmt.Sprintf("expected one tree, found %d", len(ts))}
	}
	return ts[0], nil
}

type pennToken struct {
	val       string
	line, col int
}

type pennLexer struct {
	src       []rune
	i         int
	line, col int
}

func (l *pennLexer) next() (pennToken, bool) {
	for l.i < len(l.src) && unicode.IsSpace(l.src[l.i]) {
		l.step()
	}
	if l.i >= len(l.src) {
		return pennToken{line: l.line, col: l.col}, false
	}
	tok := pennToken{line: l.line, col: l.col}
	if c := l.src[l.i]; c == '(' || c == ')' {
		l.step()
		tok.val = string(c)
		return tok, true
	}
	start := l.i
	for l.i < len(l.src) && !unicode.IsSpace(l.src[l.i]) && l.src[l.i] != '(' && l.src[l.i] != ')' {
		l.step()
	}
	tok.val = string(l.src[start:l.i])
	return tok, true
}

func (l *pennLexer) step() {
	if l.src[l.i] == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	l.i++
}

// ReadTrees reads every bracketed tree in src. A root written "( (S ...))"
// gets the label ROOT, and words are NFC normalized.
func ReadTrees(src string) ([]*tree.Tree, error) {
	lx := &pennLexer{src: []rune(src), line: 1, col: 1}
	var out []*tree.Tree
	var stack []*tree.Tree
	expectLabel := false
	for {
		tok, ok := lx.next()
		if !ok {
			if len(stack) > 0 {
				return nil, &SyntaxError{Line: tok.line, Col: tok.col, Msg: "unexpected end of input"}
			}
			return out, nil
		}
		switch tok.val {
		case "(":
			n := &tree.Tree{}
			if len(stack) > 0 {
				stack[len(stack)-1].AddChild(n)
			}
			stack = append(stack, n)
			expectLabel = true
		case ")":
			if len(stack) == 0 {
				return nil, &SyntaxError{Line: tok.line, Col: tok.col, Msg: "unbalanced )"}
			}
			n := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if len(n.Children) == 0 {
				return nil, &SyntaxError{Line: tok.line, Col: tok.col, Msg: "constituent has no children"}
			}
			expectLabel = false
			if len(stack) == 0 {
				if n.Label == "" {
					n.Label = "ROOT"
				}
				out = append(out, n)
			}
		default:
			if len(stack) == 0 {
				return nil, &SyntaxError{Line: tok.line, Col: tok.col, Msg: fmt.Sprintf("text %q outside a tree", tok.val)}
			}
			top := stack[len(stack)-1]
			if expectLabel {
				top.Label = tok.val
				expectLabel = false
				continue
			}
			top.AddChild(tree.Leaf(norm.NFC.String(tok.val)))
		}
	}
}

// MustReadTree is ReadTree for trusted literals. It panics on error.
func MustReadTree(src string) *tree.Tree {
	t, err := ReadTree(src)
	if err != nil {
		panic(err)
	}
	return t
}
