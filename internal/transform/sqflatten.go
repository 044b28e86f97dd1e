package transform

import (
	"strings"

	"github.com/dgallion1/headtree/internal/lang"
	"github.com/dgallion1/headtree/internal/tree"
)

// copula is the copula regex in pattern syntax.
var copula = "/" + strings.ReplaceAll(lang.Copula.String(), "/", `\/`) + "/"

// newSQFlatten removes the SQ under a "what is" question so the copula sits
// next to the wh-phrase: (SBARQ (WHNP (WP What)) (SQ (VBZ is) (NP ...))).
// Questions with any non-copular verb, an existential "there" or a PP after
// the copula keep their SQ.
func newSQFlatten(o options) (Stage, error) {
	st, err := newRuleStage("sq-flatten", o, [2]string{
		`SBARQ < (WHNP=what < WP $+ (SQ=sq < (/^VB/=verb < ` + copula + `) ` +
			`!< (/^VB/ < !` + copula + `) ` +
			`!< (/^V/ < /^VB/ < !` + copula + `) ` +
			`!< (PP $- =verb) ` +
			`!<, (/^VB/ < ` + copula + ` $+ (NP < (EX < /^(?i:there)$/)))))`,
		"excise sq sq",
	})
	if err != nil {
		return nil, err
	}
	return sqFlatten{Stage: st, skip: o.copulaHead}, nil
}

type sqFlatten struct {
	Stage
	skip bool
}

func (s sqFlatten) Transform(t *tree.Tree) (*tree.Tree, error) {
	if s.skip {
		return t, nil
	}
	return s.Stage.Transform(t)
}
