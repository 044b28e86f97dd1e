package headfinder

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strings"
)

// Direction is a head search directive.
type Direction int

const (
	Left Direction = iota
	Right
	LeftDis
	RightDis
	LeftExcept
	RightExcept
)

var directionNames = [...]string{
	Left:        "left",
	Right:       "right",
	LeftDis:     "leftdis",
	RightDis:    "rightdis",
	LeftExcept:  "leftexcept",
	RightExcept: "rightexcept",
}

func (d Direction) String() string {
	if d < 0 || int(d) >= len(directionNames) {
		return fmt.Sprintf("Direction(%d)", int(d))
	}
	return directionNames[d]
}

// FromLeft reports whether the directive scans left to right.
func (d Direction) FromLeft() bool {
	return d == Left || d == LeftDis || d == LeftExcept
}

func (d Direction) valid() bool {
	return d >= Left && d <= RightExcept
}

// ParseDirection reads a directive name such as "leftdis".
func ParseDirection(s string) (Direction, error) {
	for i, name := range directionNames {
		if strings.EqualFold(s, name) {
			return Direction(i), nil
		}
	}
	return 0, fmt.Errorf("unknown head rule direction %q", s)
}

// Rule is one head search directive with its category list. For the Except
// directives the list is an exclusion set.
type Rule struct {
	Dir        Direction
	Categories []string
}

func rule(dir Direction, cats ...string) Rule {
	return Rule{Dir: dir, Categories: cats}
}

func (r Rule) String() string {
	if len(r.Categories) == 0 {
		return r.Dir.String()
	}
	return r.Dir.String() + " " + strings.Join(r.Categories, " ")
}

// Table maps a basic category to its ordered rules. The last rule of each
// list is the last-resort rule. Tables are not modified after construction.
type Table map[string][]Rule

// Lookup returns the rules for a basic category.
func (t Table) Lookup(cat string) ([]Rule, bool) {
	rules, ok := t[cat]
	return rules, ok
}

// Clone returns a deep copy.
func (t Table) Clone() Table {
	out := make(Table, len(t))
	for cat, rules := range t {
		cp := make([]Rule, len(rules))
		for i, r := range rules {
			cp[i] = Rule{Dir: r.Dir, Categories: append([]string(nil), r.Categories...)}
		}
		out[cat] = cp
	}
	return out
}

// With returns a copy of t with the given entries replaced.
func (t Table) With(changes Table) Table {
	out := t.Clone()
	for cat, rules := range changes.Clone() {
		out[cat] = rules
	}
	return out
}

// Validate checks that every category has at least one rule and every
// directive is known.
func (t Table) Validate() error {
	for cat, rules := range t {
		if len(rules) == 0 {
			return &TableError{Category: cat, Msg: "empty rule list"}
		}
		for _, r := range rules {
			if !r.Dir.valid() {
				return &TableError{Category: cat, Msg: fmt.Sprintf("invalid direction %d", int(r.Dir))}
			}
		}
	}
	return nil
}

// Categories returns the table keys in sorted order.
func (t Table) Categories() []string {
	cats := make([]string, 0, len(t))
	for cat := range t {
		cats = append(cats, cat)
	}
	sort.Strings(cats)
	return cats
}

// Format writes the table in the line format read by ParseRules.
func (t Table) Format(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for _, cat := range t.Categories() {
		for _, r := range t[cat] {
			if _, err := fmt.Fprintf(bw, "%s %s\n", cat, r); err != nil {
				return err
			}
		}
	}
	return bw.Flush()
}

// ParseRules reads a table from lines of the form
//
//	CATEGORY direction cat cat ...
//
// Rules for one category are kept in the order they appear. Blank lines and
// lines starting with "//" or "# " are skipped.
func ParseRules(r io.Reader) (Table, error) {
	t := Table{}
	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "//") || strings.HasPrefix(line, "# ") || line == "#" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			return nil, &TableError{Line: lineNo, Msg: "expected category and direction"}
		}
		dir, err := ParseDirection(fields[1])
		if err != nil {
			return nil, &TableError{Line: lineNo, Category: fields[0], Msg: err.Error()}
		}
		t[fields[0]] = append(t[fields[0]], Rule{Dir: dir, Categories: fields[2:]})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read head rules: %w", err)
	}
	if len(t) == 0 {
		return nil, &TableError{Msg: "no rules"}
	}
	return t, nil
}
