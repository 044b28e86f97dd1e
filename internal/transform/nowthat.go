package transform

// newNowThat rewrites (ADVP (RB now) (SBAR (IN that) S)) as
// (SBAR (RB now) (IN that) S).
func newNowThat(o options) (Stage, error) {
	return newRuleStage("now-that", o, [2]string{
		`ADVP=advp <1 (RB < /^(?i:now)$/) <2 (SBAR=sbar <1 (IN < /^(?i:that)$/))`,
		"[relabel advp SBAR] [excise sbar sbar]",
	})
}
