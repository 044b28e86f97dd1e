package transform

// newConjP groups multiword conjunctions under CONJP.
func newConjP(o options) (Stage, error) {
	return newRuleStage("conjp", o,
		// and yet, or else, but rather, ...
		[2]string{
			`!CONJP < (CC=start < /^(?i:and|or|but|nor)$/ $+ (RB=end < /^(?i:yet|so|else|rather|not|also)$/))`,
			"createSubtree CONJP start end",
		},
		// as well as
		[2]string{
			`!CONJP < (/^(?:RB|IN)$/=start < /^(?i:as)$/ $+ (RB < /^(?i:well)$/ $+ (IN=end < /^(?i:as)$/)))`,
			"createSubtree CONJP start end",
		},
		[2]string{
			`!CONJP < (ADVP=start <1 (RB < /^(?i:as)$/) <2 (RB < /^(?i:well)$/) $+ (IN=end < /^(?i:as)$/))`,
			"[createSubtree CONJP start end] [excise start start]",
		},
		[2]string{
			`!CONJP < (RB=start < /^(?i:rather)$/ $+ (IN=end < /^(?i:than)$/))`,
			"createSubtree CONJP start end",
		},
		[2]string{
			`!CONJP < (RB=start < /^(?i:not)$/ $+ (RB=end < /^(?i:only|just|merely)$/))`,
			"createSubtree CONJP start end",
		},
	)
}
