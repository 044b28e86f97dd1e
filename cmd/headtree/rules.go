package main

import (
	"io"
	"os"

	"github.com/gonuts/commander"
	"github.com/gonuts/flag"

	"github.com/dgallion1/headtree/internal/pipeline"
)

func makeRulesCmd() *commander.Command {
	c := &commander.Command{
		Run:       runRules,
		UsageLine: "rules [options]",
		Short:     "print a head rule table",
		Long: `
rules prints the table of a head finder in the format read by -rules, so a
standard table can be copied and edited.

	$ headtree rules -finder modcollins > my.rules
	$ headtree annotate -finder modcollins -rules my.rules trees.mrg
`,
		Flag: *flag.NewFlagSet("headtree-rules", flag.ExitOnError),
	}
	addFinderFlags(c)
	return c
}

func runRules(cmd *commander.Command, args []string) error {
	return printRules(os.Stdout, opts)
}

func printRules(w io.Writer, o options) error {
	f, err := pipeline.LoadFinder(o.finder, o.copula, o.rules)
	if err != nil {
		return err
	}
	return f.Table().Format(w)
}
