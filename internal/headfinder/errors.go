package headfinder

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidTree is returned when a head is requested for a nil or leaf node.
	ErrInvalidTree = errors.New("head requested for nil or leaf node")

	// ErrNoRule is returned when a category has no table entry and the finder
	// has no default rule.
	ErrNoRule = errors.New("no head rule defined")
)

// InvalidTreeError reports a caller error: the node cannot have a head.
type InvalidTreeError struct {
	Label string
}

func (e *InvalidTreeError) Error() string {
	if e.Label == "" {
		return ErrInvalidTree.Error()
	}
	return fmt.Sprintf("%s: %q", ErrInvalidTree, e.Label)
}

func (e *InvalidTreeError) Unwrap() error { return ErrInvalidTree }

// NoRuleDefinedError names the category that is missing from the table.
type NoRuleDefinedError struct {
	Category string
	Label    string
}

func (e *NoRuleDefinedError) Error() string {
	return fmt.Sprintf("%s for category %q (label %q)", ErrNoRule, e.Category, e.Label)
}

func (e *NoRuleDefinedError) Unwrap() error { return ErrNoRule }

// TableError reports a malformed rule table.
type TableError struct {
	Line     int
	Category string
	Msg      string
}

func (e *TableError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("head rules line %d: %s", e.Line, e.Msg)
	}
	if e.Category != "" {
		return fmt.Sprintf("head rules for %s: %s", e.Category, e.Msg)
	}
	return "head rules: " + e.Msg
}
