// Package lang holds per-language lexical data: category normalization,
// punctuation tags and the small word lists the tree transforms consult.
package lang

import (
	"regexp"
	"sort"
	"strings"
)

// Pack is the language data a head finder and the transforms depend on.
type Pack interface {
	// BasicCategory strips functional and cross-reference suffixes.
	BasicCategory(label string) string
	IsPunctuationTag(tag string) bool
	PunctuationTags() []string
}

// Penn is the Penn Treebank English pack.
type Penn struct{}

var pennPunctuation = []string{"''", "``", "-LRB-", "-RRB-", ".", ":", ","}

// annotation introducing characters in Penn labels
const pennAnnotationChars = "-=|#^~_"

func isAnnotationChar(c byte) bool {
	return strings.IndexByte(pennAnnotationChars, c) >= 0
}

// BasicCategory returns the label up to the first annotation character.
// A label that starts with an annotation character keeps it until the same
// character closes it, so "-NONE-" and "-LRB-" survive intact while
// "NP-SBJ=1" becomes "NP".
func (Penn) BasicCategory(label string) string {
	return label[:postBasicIndex(label)]
}

func postBasicIndex(label string) int {
	var open byte
	sawAtZero := false
	i := 0
	for ; i < len(label); i++ {
		c := label[i]
		if !isAnnotationChar(c) {
			continue
		}
		switch {
		case i == 0:
			sawAtZero = true
			open = c
		case sawAtZero && c == open:
			sawAtZero = false
		default:
			return i
		}
	}
	return i
}

// FunctionalSuffix returns what BasicCategory cuts off, including the
// introducing character ("NP-TMP" gives "-TMP").
func (Penn) FunctionalSuffix(label string) string {
	return label[postBasicIndex(label):]
}

func (Penn) IsPunctuationTag(tag string) bool {
	for _, p := range pennPunctuation {
		if p == tag {
			return true
		}
	}
	return false
}

func (Penn) PunctuationTags() []string {
	out := make([]string, len(pennPunctuation))
	copy(out, pennPunctuation)
	return out
}

// IsNounTag reports whether tag is one of the NN* part of speech tags.
func IsNounTag(tag string) bool {
	return strings.HasPrefix(tag, "NN")
}

// IsAdjectiveTag reports whether tag is one of the JJ* part of speech tags.
func IsAdjectiveTag(tag string) bool {
	return strings.HasPrefix(tag, "JJ")
}

// Copula matches the word forms of "be" and the linking verbs treated like it.
var Copula = regexp.MustCompile(`(?i)^(?:am|is|are|r|be|being|'s|'re|'m|was|were|been|s|ai|m|art|ar|wase|seem|seems|seemed|seeming|appear|appears|appeared|stay|stays|stayed|remain|remains|remained|resemble|resembles|resembled|resembling|become|becomes|became|becoming)$`)

// Auxiliary matches auxiliary verb forms other than the copula.
var Auxiliary = regexp.MustCompile(`(?i)^(?:will|wo|shall|sha|may|might|should|would|seem|seems|seemed|appear|appears|appeared|be|being|been|am|are|is|was|were|'s|'re|'m|ca|can|could|do|does|did|'d|d|'ll|ll|need|ought|to|have|has|had|having|'ve|ve)$`)

// PassiveAuxiliary matches forms of "be" and "get" used in passives.
var PassiveAuxiliary = regexp.MustCompile(`(?i)^(?:am|is|are|r|be|being|'s|'re|'m|was|were|been|s|ai|m|art|ar|wase|get|getting|gets|got|gotten)$`)

var months = map[string]bool{}

func init() {
	for _, m := range []string{
		"january", "february", "march", "april", "may", "june", "july",
		"august", "september", "october", "november", "december",
		"jan", "feb", "mar", "apr", "jun", "jul", "aug", "sep", "sept",
		"oct", "nov", "dec",
		"jan.", "feb.", "mar.", "apr.", "jun.", "jul.", "aug.", "sep.", "sept.",
		"oct.", "nov.", "dec.",
	} {
		months[m] = true
	}
}

// IsMonth reports whether word names a calendar month.
func IsMonth(word string) bool {
	return months[strings.ToLower(word)]
}

// MonthPattern returns a case-insensitive regular expression, without
// delimiters, that matches exactly the words IsMonth accepts.
func MonthPattern() string {
	names := make([]string, 0, len(months))
	for m := range months {
		names = append(names, regexp.QuoteMeta(m))
	}
	sort.Strings(names)
	return "^(?i:" + strings.Join(names, "|") + ")$"
}
