package transform

// newXOverX collapses a node whose only child is a phrase with the same label.
func newXOverX(o options) (Stage, error) {
	return newRuleStage("x-over-x", o,
		[2]string{`__=repeat <: (~repeat < __)`, "excise repeat repeat"},
	)
}
