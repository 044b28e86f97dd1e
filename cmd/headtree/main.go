// Command headtree annotates treebank files from the command line.
//
//	headtree annotate [-finder semantic] [-copula] [-rules file] [-format deps] file...
//	headtree transform file...
//	headtree rules [-finder modcollins]
package main

import (
	"fmt"
	"os"

	"github.com/gonuts/commander"
	"github.com/pebbe/util"
)

var (
	x = util.CheckErr

	cmd = &commander.Command{
		UsageLine: os.Args[0] + " <command> [options] [file...]",
		Short:     "head finding and dependency extraction for constituency trees",
	}
)

func init() {
	cmd.Subcommands = []*commander.Command{
		makeAnnotateCmd(),
		makeTransformCmd(),
		makeRulesCmd(),
	}
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, cmd.UsageLine)
		for _, c := range cmd.Subcommands {
			fmt.Fprintf(os.Stderr, "  %-10s %s\n", c.Name(), c.Short)
		}
		os.Exit(2)
	}
	x(cmd.Dispatch(os.Args[1:]))
}
