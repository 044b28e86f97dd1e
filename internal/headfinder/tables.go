package headfinder

import (
	"fmt"

	"github.com/dgallion1/headtree/internal/lang"
)

// Collins is the head table of Collins (1999), appendix A.
var Collins = Table{
	"ADJP":   {rule(Left, "NNS", "QP", "NN", "$", "ADVP", "JJ", "VBN", "VBG", "ADJP", "JJR", "NP", "JJS", "DT", "FW", "RBR", "RBS", "SBAR", "RB")},
	"ADVP":   {rule(Right, "RB", "RBR", "RBS", "FW", "ADVP", "TO", "CD", "JJR", "JJ", "IN", "NP", "JJS", "NN")},
	"CONJP":  {rule(Right, "CC", "RB", "IN")},
	"FRAG":   {rule(Right)},
	"INTJ":   {rule(Left)},
	"LST":    {rule(Right, "LS", ":")},
	"NAC":    {rule(Left, "NN", "NNS", "NNP", "NNPS", "NP", "NAC", "EX", "$", "CD", "QP", "PRP", "VBG", "JJ", "JJS", "JJR", "ADJP", "FW")},
	"PP":     {rule(Right, "IN", "TO", "VBG", "VBN", "RP", "FW")},
	"PRN":    {rule(Left)},
	"PRT":    {rule(Right, "RP")},
	"QP":     {rule(Left, "$", "IN", "NNS", "NN", "JJ", "RB", "DT", "CD", "NCD", "QP", "JJR", "JJS")},
	"RRC":    {rule(Right, "VP", "NP", "ADVP", "ADJP", "PP")},
	"S":      {rule(Left, "TO", "IN", "VP", "S", "SBAR", "ADJP", "UCP", "NP")},
	"SBAR":   {rule(Left, "WHNP", "WHPP", "WHADVP", "WHADJP", "IN", "DT", "S", "SQ", "SINV", "SBAR", "FRAG")},
	"SBARQ":  {rule(Left, "SQ", "S", "SINV", "SBARQ", "FRAG")},
	"SINV":   {rule(Left, "VBZ", "VBD", "VBP", "VB", "MD", "VP", "S", "SINV", "ADJP", "NP")},
	"SQ":     {rule(Left, "VBZ", "VBD", "VBP", "VB", "MD", "VP", "SQ")},
	"UCP":    {rule(Right)},
	"VP":     {rule(Left, "TO", "VBD", "VBN", "MD", "VBZ", "VB", "VBG", "VBP", "VP", "ADJP", "NN", "NNS", "NP")},
	"WHADJP": {rule(Left, "CC", "WRB", "JJ", "ADJP")},
	"WHADVP": {rule(Right, "CC", "WRB")},
	"WHNP":   {rule(Left, "WDT", "WP", "WP$", "WHADJP", "WHPP", "WHNP")},
	"WHPP":   {rule(Right, "IN", "TO", "FW")},
	"NX":     {rule(Left)},
	"X":      {rule(Right)},
	"XS":     {rule(Right, "IN")},
	"NP": {
		rule(RightDis, "NN", "NNP", "NNPS", "NNS", "NX", "POS", "JJR"),
		rule(Left, "NP"),
		rule(RightDis, "$", "ADJP", "PRN"),
		rule(Right, "CD"),
		rule(RightDis, "JJ", "JJS", "RB", "QP"),
	},
	"TYPO":   {rule(Left)},
	"EDITED": {rule(Left)},
	"ROOT":   {rule(Left, "S", "SQ", "SINV", "SBAR", "FRAG")},
	"TOP":    {rule(Left, "S", "SQ", "SINV", "SBAR", "FRAG")},
}

var npRules = []Rule{
	rule(RightDis, "NN", "NNP", "NNPS", "NNS", "NML", "NX", "POS", "JJR"),
	rule(Left, "NP", "PRP"),
	rule(RightDis, "$", "ADJP", "JJP", "PRN", "FW"),
	rule(Right, "CD"),
	rule(RightDis, "JJ", "JJS", "RB", "QP", "DT", "WDT", "RBR", "ADVP"),
	rule(Left, "POS"),
}

var vpRules = []Rule{
	rule(Left, "TO", "VBD", "VBN", "MD", "VBZ", "VB", "VBG", "VBP", "VP", "AUX", "AUXG", "ADJP", "JJP", "NN", "NNS", "JJ", "NP", "NNP"),
}

// ModCollins revises Collins with NML, JJP and treebank additions and
// is meant to be used with punctuation avoided as head.
var ModCollins = Table{
	"ADJP": {
		rule(Left, "$"),
		rule(RightDis, "NNS", "NN", "JJ", "QP", "VBN", "VBG"),
		rule(Left, "ADJP"),
		rule(RightDis, "JJP", "JJR", "JJS", "DT", "RB", "RBR", "CD", "IN", "VBD"),
		rule(Left, "ADVP", "NP"),
	},
	"JJP": {rule(Left, "NNS", "NN", "$", "QP", "JJ", "VBN", "VBG", "ADJP", "JJP", "JJR", "NP", "JJS", "DT", "FW", "RBR", "RBS", "SBAR", "RB")},
	"ADVP": {
		rule(Left, "ADVP", "IN"),
		rule(RightDis, "RB", "RBR", "RBS", "JJ", "JJR", "JJS"),
		rule(RightDis, "RP", "DT", "NN", "CD", "NP", "VBN", "NNP", "CC", "FW", "NNS", "ADJP", "NML"),
	},
	"CONJP":  {rule(Right, "CC", "RB", "IN")},
	"FRAG":   {rule(Right)},
	"INTJ":   {rule(Left)},
	"LST":    {rule(Right, "LS", ":")},
	"NAC":    {rule(Left, "NN", "NNS", "NML", "NNP", "NNPS", "NP", "NAC", "EX", "$", "CD", "QP", "PRP", "VBG", "JJ", "JJS", "JJR", "ADJP", "JJP", "FW")},
	"PP":     {rule(Right, "IN", "TO", "VBG", "VBN", "RP", "FW", "JJ", "SYM"), rule(Left, "PP")},
	"PRN":    {rule(Left, "VP", "NP", "PP", "SQ", "S", "SINV", "SBAR", "ADJP", "JJP", "ADVP", "INTJ", "WHNP", "NAC", "VBP", "JJ", "NN", "NNP")},
	"PRT":    {rule(Right, "RP")},
	"QP":     {rule(Left, "$", "IN", "NNS", "NN", "JJ", "CD", "PDT", "DT", "RB", "NCD", "QP", "JJR", "JJS")},
	"RRC":    {rule(Left, "RRC"), rule(Right, "VP", "ADJP", "JJP", "NP", "PP", "ADVP")},
	"S":      {rule(Left, "TO", "VP", "S", "FRAG", "SBAR", "ADJP", "JJP", "UCP", "NP", "P")},
	"SBAR":   {rule(Left, "WHNP", "WHPP", "WHADVP", "WHADJP", "IN", "DT", "S", "SQ", "SINV", "SBAR", "FRAG")},
	"SBARQ":  {rule(Left, "SQ", "S", "SINV", "SBARQ", "FRAG", "SBAR")},
	"SINV":   {rule(Left, "VBZ", "VBD", "VBP", "VB", "MD", "VBN", "VP", "S", "SINV", "ADJP", "JJP", "NP")},
	"SQ":     {rule(Left, "VBZ", "VBD", "VBP", "VB", "MD", "AUX", "AUXG", "VP", "SQ")},
	"UCP":    {rule(Right)},
	"VP":     vpRules,
	"VB":     vpRules,
	"WHADJP": {rule(Left, "WRB", "WHADVP", "RB", "JJ", "ADJP", "JJP", "JJR")},
	"WHADVP": {rule(Right, "WRB", "WHADVP")},
	"WHNP":   {rule(Left, "WDT", "WP", "WP$", "WHADJP", "WHPP", "WHNP")},
	"WHPP":   {rule(Right, "IN", "TO", "FW")},
	"X":      {rule(Right, "S", "VP", "ADJP", "JJP", "NP", "SBAR", "PP", "X")},
	"XS":     {rule(Right, "IN")},
	"NP":     npRules,
	"NX":     npRules,
	"NML":    npRules,
	"POSSP":  {rule(Right, "POS")},
	"ROOT":   {rule(Left, "S", "SQ", "SINV", "SBAR", "FRAG")},
	"TOP":    {rule(Left, "S", "SQ", "SINV", "SBAR", "FRAG")},
	"TYPO":   {rule(Left, "NN", "NP", "NML", "NNP", "NNPS", "TO", "VBD", "VBN", "MD", "VBZ", "VB", "VBG", "VBP", "VP", "ADJP", "JJP", "FRAG")},
	"ADV":    {rule(Right, "RB", "RBR", "RBS", "FW", "ADVP", "TO", "CD", "JJR", "JJ", "IN", "NP", "NML", "JJS", "NN")},
	"EDITED": {rule(Left)},
	"META":   {rule(Left)},
	"HYPH":   {rule(Left)},
}

// Semantic prefers content words over function words: S over complementizers
// in SBAR, and main verbs over auxiliaries in VP, SQ and SINV.
var Semantic = ModCollins.With(Table{
	"SBAR":   {rule(Left, "S", "SQ", "SINV", "SBAR", "FRAG", "VP", "WHNP", "WHPP", "WHADVP", "WHADJP", "IN", "DT")},
	"VP":     {rule(Left, "TO", "VBD", "VBN", "MD", "VBZ", "VB", "VBG", "VBP", "VP", "ADJP", "JJP", "NN", "NNS", "JJ", "NP", "NNP")},
	"SQ":     {rule(Left, "VP", "SQ", "ADJP", "VB", "VBZ", "VBD", "VBP", "MD", "AUX", "AUXG")},
	"SINV":   {rule(Left, "VP", "VBZ", "VBD", "VBP", "VB", "MD", "VBN", "S", "SINV", "ADJP", "JJP", "NP")},
	"S":      {rule(Left, "VP", "S", "FRAG", "SBAR", "ADJP", "JJP", "UCP", "TO"), rule(Right, "NP")},
	"CONJP":  {rule(Right, "CC", "VB", "JJ", "RB", "IN")},
	"PP":     {rule(Right, "IN", "TO", "VBG", "VBN", "RP", "FW", "JJ", "SYM"), rule(Left, "PP")},
	"ADVP":   ModCollins["ADVP"],
	"SBARQ":  {rule(Left, "SQ", "S", "SINV", "SBARQ", "FRAG", "SBAR")},
	"WHADVP": {rule(Right, "WRB", "WHADVP", "RB", "JJ")},
})

// NewCollins returns a finder over the Collins table.
func NewCollins(lp lang.Pack) *Finder {
	return mustFinder(New(lp, Collins, WithName("collins")))
}

// NewModCollins returns a finder over the ModCollins table that avoids
// punctuation as head.
func NewModCollins(lp lang.Pack) *Finder {
	return mustFinder(New(lp, ModCollins,
		WithName("modcollins"),
		WithAvoid(lp.PunctuationTags()...),
	))
}

// mustFinder is only used with the built-in tables.
func mustFinder(f *Finder, err error) *Finder {
	if err != nil {
		panic(err)
	}
	return f
}

// ByName builds one of the standard finders.
func ByName(name string, lp lang.Pack, copulaHead bool) (*Finder, error) {
	switch name {
	case "collins":
		return NewCollins(lp), nil
	case "modcollins":
		return NewModCollins(lp), nil
	case "semantic", "":
		return NewSemantic(lp, copulaHead), nil
	}
	return nil, fmt.Errorf("unknown head finder %q", name)
}
