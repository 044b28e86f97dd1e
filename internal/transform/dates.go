package transform

import "github.com/dgallion1/headtree/internal/lang"

// newDates flattens dates split into separate noun phrases:
//
//	(NP (NP (NNP March)) (NP (CD 1990)))           => (NP (NNP March) (CD 1990))
//	(NP (NP (NNP March) (CD 5)) (, ,) (NP (CD 1990))) => (NP (NNP March) (CD 5) (, ,) (CD 1990))
func newDates(o options) (Stage, error) {
	month := "/" + lang.MonthPattern() + "/"
	return newRuleStage("dates", o,
		[2]string{
			`NP < (NP=month <: (NNP < ` + month + `) $+ (NP=year <: (CD < /^[12][0-9]{3}$/)))`,
			"[excise month month] [excise year year]",
		},
		[2]string{
			`NP < (NP=month <1 (NNP < ` + month + `) <2 CD <- CD $+ (/^,$/ $+ (NP=year <: CD)))`,
			"[excise month month] [excise year year]",
		},
	)
}
