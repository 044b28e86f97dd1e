package tree

import "fmt"

// Constituent is a half-open span [Start, End) over word indices with an
// optional label.
type Constituent struct {
	Start    int
	End      int
	Label    string
	HasLabel bool
	Score    float64
}

// Span creates an unlabeled constituent.
func Span(start, end int) Constituent {
	return Constituent{Start: start, End: end}
}

// LabeledSpan creates a labeled constituent.
func LabeledSpan(label string, start, end int) Constituent {
	return Constituent{Start: start, End: end, Label: label, HasLabel: true}
}

// Size is the number of words covered.
func (c Constituent) Size() int {
	return c.End - c.Start
}

// Crosses reports whether the spans overlap without either containing the other.
func (c Constituent) Crosses(o Constituent) bool {
	return (c.Start < o.Start && o.Start < c.End && c.End < o.End) ||
		(o.Start < c.Start && c.Start < o.End && o.End < c.End)
}

// Contains reports whether o lies within c.
func (c Constituent) Contains(o Constituent) bool {
	return c.Start <= o.Start && o.End <= c.End
}

// Equal ignores Score.
func (c Constituent) Equal(o Constituent) bool {
	if c.Start != o.Start || c.End != o.End {
		return false
	}
	if c.HasLabel || o.HasLabel {
		return c.HasLabel && o.HasLabel && c.Label == o.Label
	}
	return true
}

func (c Constituent) String() string {
	if c.HasLabel {
		return fmt.Sprintf("%s(%d,%d)", c.Label, c.Start, c.End)
	}
	return fmt.Sprintf("(%d,%d)", c.Start, c.End)
}

// Constituents returns the labeled spans of all phrasal nodes of t, in
// pre-order. Preterminals and leaves are skipped.
func Constituents(t *Tree) []Constituent {
	var out []Constituent
	collectSpans(t, 0, &out)
	return out
}

func collectSpans(t *Tree, start int, out *[]Constituent) int {
	if t.IsLeaf() {
		return start + 1
	}
	if t.IsPreTerminal() {
		return start + 1
	}
	idx := len(*out)
	*out = append(*out, Constituent{})
	end := start
	for _, c := range t.Children {
		end = collectSpans(c, end, out)
	}
	(*out)[idx] = LabeledSpan(t.Label, start, end)
	return end
}
