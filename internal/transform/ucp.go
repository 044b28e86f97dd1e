package transform

// UCP nodes take the category their conjuncts suggest. Earlier rules win.
func newUCP(o options) (Stage, error) {
	const (
		adj  = "relabel ucp /^UCP(.*)$/ADJP$1/"
		noun = "relabel ucp /^UCP(.*)$/NP$1/"
		adv  = "relabel ucp /^UCP(.*)$/ADVP$1/"
	)
	return newRuleStage("ucp", o,
		[2]string{`/^UCP/=ucp <, /^(?:JJ|ADJP)/`, adj},
		[2]string{`/^UCP/=ucp <, (DT $+ /^(?:JJ|ADJP)/)`, adj},
		[2]string{`/^UCP/=ucp <, /^N/`, noun},
		[2]string{`/^UCP/=ucp <, (DT $+ /^N/)`, noun},
		[2]string{`/^UCP/=ucp <, /^(?:ADVP|RB)/`, adv},
		[2]string{`/^UCP/=ucp <- /^(?:JJ|ADJP)/`, adj},
		[2]string{`/^UCP/=ucp <- /^N/`, noun},
	)
}
