package pattern

import (
	"strings"
	"unicode"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokIdent
	tokRegex
	tokRel
	tokPunct
)

type token struct {
	kind tokenKind
	val  string
	pos  int
}

// characters that end an identifier
const identStop = "()/|@!#&=?[]<>~$:{};"

func isIdentChar(c byte) bool {
	return !unicode.IsSpace(rune(c)) && strings.IndexByte(identStop, c) < 0
}

type lexer struct {
	text string
	pos  int
}

func lex(text string) ([]token, error) {
	l := &lexer{text: text}
	var toks []token
	for {
		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		toks = append(toks, tok)
		if tok.kind == tokEOF {
			return toks, nil
		}
	}
}

func (l *lexer) errorf(pos int, msg string) error {
	return &MalformedPatternError{Pattern: l.text, Pos: pos, Msg: msg}
}

func (l *lexer) peekByte(off int) byte {
	if l.pos+off < len(l.text) {
		return l.text[l.pos+off]
	}
	return 0
}

func (l *lexer) next() (token, error) {
	for l.pos < len(l.text) && unicode.IsSpace(rune(l.text[l.pos])) {
		l.pos++
	}
	start := l.pos
	if l.pos >= len(l.text) {
		return token{kind: tokEOF, pos: start}, nil
	}
	ch := l.text[l.pos]
	switch {
	case ch == '/':
		return l.regex()
	case ch == '<' || ch == '>' || ch == '$':
		return l.relation(), nil
	case strings.IndexByte("()[]|!?=~@", ch) >= 0:
		l.pos++
		return token{kind: tokPunct, val: string(ch), pos: start}, nil
	case isIdentChar(ch):
		for l.pos < len(l.text) && isIdentChar(l.text[l.pos]) {
			l.pos++
		}
		return token{kind: tokIdent, val: l.text[start:l.pos], pos: start}, nil
	}
	return token{}, l.errorf(start, "unexpected character "+string(ch))
}

func (l *lexer) regex() (token, error) {
	start := l.pos
	l.pos++
	var sb strings.Builder
	for l.pos < len(l.text) {
		c := l.text[l.pos]
		if c == '\\' && l.pos+1 < len(l.text) && l.text[l.pos+1] == '/' {
			sb.WriteByte('/')
			l.pos += 2
			continue
		}
		if c == '/' {
			l.pos++
			return token{kind: tokRegex, val: sb.String(), pos: start}, nil
		}
		sb.WriteByte(c)
		l.pos++
	}
	return token{}, l.errorf(start, "unterminated regular expression")
}

func (l *lexer) relation() token {
	start := l.pos
	ch := l.text[l.pos]
	l.pos++
	switch ch {
	case '<':
		switch c := l.peekByte(0); {
		case c == '<' || c == ',' || c == ':':
			l.pos++
		case c == '-':
			l.pos++
			l.digits()
		case c >= '0' && c <= '9':
			l.digits()
		}
	case '>':
		if l.peekByte(0) == '>' {
			l.pos++
		}
	case '$':
		switch c := l.peekByte(0); c {
		case '+', '-':
			l.pos++
			if l.peekByte(0) == c {
				l.pos++
			}
		}
	}
	return token{kind: tokRel, val: l.text[start:l.pos], pos: start}
}

func (l *lexer) digits() {
	for l.pos < len(l.text) && l.text[l.pos] >= '0' && l.text[l.pos] <= '9' {
		l.pos++
	}
}
