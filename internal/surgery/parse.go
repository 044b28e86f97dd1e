package surgery

import (
	"errors"
	"regexp"
	"strings"
	"unicode"

	"github.com/dgallion1/headtree/internal/pattern"
)

// Parse reads an operation script. Several operations are written as
// bracketed groups applied in order:
//
//	[relabel advp SBAR] [excise sbar sbar]
//
// Supported operations:
//
//	excise top bottom
//	prune name...
//	relabel name LABEL
//	relabel name /regex/replacement/
//	createSubtree LABEL first [last]
//	move name >0 dest     (first child of dest)
//	move name >-1 dest    (last child of dest)
//	move name $+ dest     (left sister of dest)
//	move name $- dest     (right sister of dest)
//	replace name with
func Parse(script string) (Operation, error) {
	groups, err := splitGroups(script)
	if err != nil {
		return nil, err
	}
	ops := make([]Operation, 0, len(groups))
	for _, g := range groups {
		op, err := parseOne(script, g)
		if err != nil {
			return nil, err
		}
		ops = append(ops, op)
	}
	if len(ops) == 1 {
		return ops[0], nil
	}
	return Sequence(ops...), nil
}

var errBadRegexArg = errors.New("expected /regex/replacement/")

type group struct {
	text string
	pos  int
}

func malformed(script string, pos int, msg string) error {
	return &pattern.MalformedPatternError{Pattern: script, Pos: pos, Msg: msg}
}

func splitGroups(script string) ([]group, error) {
	trimmed := strings.TrimSpace(script)
	if trimmed == "" {
		return nil, malformed(script, 0, "empty operation")
	}
	if trimmed[0] != '[' {
		return []group{{text: trimmed, pos: strings.Index(script, trimmed)}}, nil
	}
	var out []group
	i := 0
	for i < len(script) {
		c := script[i]
		switch {
		case unicode.IsSpace(rune(c)):
			i++
		case c == '[':
			end := strings.IndexByte(script[i:], ']')
			if end < 0 {
				return nil, malformed(script, i, "unclosed [")
			}
			out = append(out, group{text: script[i+1 : i+end], pos: i + 1})
			i += end + 1
		default:
			return nil, malformed(script, i, "expected [")
		}
	}
	return out, nil
}

func parseOne(script string, g group) (Operation, error) {
	f := strings.Fields(g.text)
	if len(f) == 0 {
		return nil, malformed(script, g.pos, "empty operation")
	}
	arity := func(min, max int) error {
		if n := len(f) - 1; n < min || (max >= 0 && n > max) {
			return malformed(script, g.pos, f[0]+": wrong number of arguments")
		}
		return nil
	}
	switch f[0] {
	case "excise":
		if err := arity(2, 2); err != nil {
			return nil, err
		}
		return Excise(f[1], f[2]), nil
	case "prune", "delete":
		if err := arity(1, -1); err != nil {
			return nil, err
		}
		return Prune(f[1:]...), nil
	case "relabel":
		if err := arity(2, 2); err != nil {
			return nil, err
		}
		if strings.HasPrefix(f[2], "/") {
			re, repl, err := splitRegexArg(f[2])
			if err != nil {
				return nil, malformed(script, g.pos, err.Error())
			}
			return RelabelRegex(f[1], re, repl), nil
		}
		return Relabel(f[1], f[2]), nil
	case "createSubtree":
		if err := arity(2, 3); err != nil {
			return nil, err
		}
		last := ""
		if len(f) == 4 {
			last = f[3]
		}
		return CreateSubtree(f[1], f[2], last), nil
	case "move":
		if err := arity(3, 3); err != nil {
			return nil, err
		}
		var pos Position
		switch f[2] {
		case ">0", ">1":
			pos = FirstChildOf(f[3])
		case ">-1":
			pos = LastChildOf(f[3])
		case "$+":
			pos = LeftOf(f[3])
		case "$-":
			pos = RightOf(f[3])
		default:
			return nil, malformed(script, g.pos, "unknown move position "+f[2])
		}
		return Move(f[1], pos), nil
	case "replace":
		if err := arity(2, 2); err != nil {
			return nil, err
		}
		return Replace(f[1], f[2]), nil
	}
	return nil, malformed(script, g.pos, "unknown operation "+f[0])
}

// splitRegexArg reads /regex/replacement/.
func splitRegexArg(arg string) (*regexp.Regexp, string, error) {
	var parts []string
	var cur strings.Builder
	for i := 1; i < len(arg); i++ {
		c := arg[i]
		if c == '\\' && i+1 < len(arg) && arg[i+1] == '/' {
			cur.WriteByte('/')
			i++
			continue
		}
		if c == '/' {
			parts = append(parts, cur.String())
			cur.Reset()
			continue
		}
		cur.WriteByte(c)
	}
	if len(parts) != 2 || cur.Len() != 0 {
		return nil, "", errBadRegexArg
	}
	re, err := regexp.Compile(parts[0])
	if err != nil {
		return nil, "", err
	}
	return re, parts[1], nil
}
