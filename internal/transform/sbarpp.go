package transform

// newSBARToPP relabels a temporal SBAR modifying a noun phrase as a PP.
func newSBARToPP(o options) (Stage, error) {
	return newRuleStage("sbar-to-pp", o, [2]string{
		`NP < (NP $++ (SBAR=sbar < (IN < /^(?i:after|before|until|since|during)$/ $++ S)))`,
		"relabel sbar PP",
	})
}
