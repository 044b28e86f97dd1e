package transform

const conjunct = `/^(?:S|SQ|SINV|PP|VP|NP)(?:$|-)/`

// newMoveRB moves an adverb that follows a conjunction or comma into the
// conjunct after it: "and not (VP ...)" gives "and (VP (RB not) ...)".
func newMoveRB(o options) (Stage, error) {
	return newRuleStage("move-rb", o,
		[2]string{
			conjunct + ` < (/^(?:S|PP|VP|NP)/ $++ (/^(?:,|CC|CONJP)$/ [ $+ (RB=adv [ < /^(?i:not)$/ | < /^(?i:then)$/ ] $+ ` + conjunct + `=dest) | $+ (ADVP=adv <: RB $+ ` + conjunct + `=dest) ]))`,
			"move adv >0 dest",
		},
		[2]string{`/^FRAG/ < (/^(?:ADVP|RB)$/=adv $+ VP=dest)`, "move adv >0 dest"},
	)
}
