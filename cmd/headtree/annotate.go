package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/gonuts/commander"
	"github.com/gonuts/flag"
	"github.com/pebbe/util"

	"github.com/dgallion1/headtree/internal/parser"
	"github.com/dgallion1/headtree/internal/pipeline"
	"github.com/dgallion1/headtree/internal/transform"
	"github.com/dgallion1/headtree/internal/tree"
)

type options struct {
	finder  string
	rules   string
	copula  bool
	format  string
	verbose bool
}

var opts options

func addFinderFlags(c *commander.Command) {
	c.Flag.StringVar(&opts.finder, "finder", "semantic", "head finder: collins, modcollins or semantic")
	c.Flag.BoolVar(&opts.copula, "copula", false, "let copulas and auxiliaries head their clause")
	c.Flag.StringVar(&opts.rules, "rules", "", "head rules file overriding categories of the finder")
}

func makeAnnotateCmd() *commander.Command {
	c := &commander.Command{
		Run:       runAnnotate,
		UsageLine: "annotate [options] [file...]",
		Short:     "percolate heads and print dependencies",
		Long: `
annotate reads bracketed trees (or any supported treebank format) from the
named files, or standard input, transforms them and percolates heads.

	$ headtree annotate -format deps wsj_0001.mrg
	$ headtree annotate -format heads -finder modcollins < trees.txt

Formats: deps (one arc per line, blank line between trees), heads, tree, json.
`,
		Flag: *flag.NewFlagSet("headtree-annotate", flag.ExitOnError),
	}
	addFinderFlags(c)
	c.Flag.StringVar(&opts.format, "format", "deps", "output format: deps, heads, tree or json")
	c.Flag.BoolVar(&opts.verbose, "v", false, "log transform decisions to stderr")
	return c
}

func runAnnotate(cmd *commander.Command, args []string) error {
	return annotate(os.Stdout, os.Stdin, args, opts)
}

func annotate(w io.Writer, stdin io.Reader, files []string, o options) error {
	switch o.format {
	case "deps", "heads", "tree", "json":
	default:
		return fmt.Errorf("unknown format %q", o.format)
	}
	finder, err := pipeline.LoadFinder(o.finder, o.copula, o.rules)
	if err != nil {
		return err
	}
	ann, err := pipeline.NewAnnotator(finder, newLogger(o.verbose), nil, 0)
	if err != nil {
		return err
	}

	bw := bufio.NewWriter(w)
	defer bw.Flush()
	enc := json.NewEncoder(bw)

	ctx := context.Background()
	total, failed := 0, 0
	err = eachTree(stdin, files, func(name string, i int, t *tree.Tree) error {
		total++
		res, err := ann.Annotate(ctx, t)
		if err != nil {
			failed++
			util.WarnErr(fmt.Errorf("%s: tree %d: %w", name, i+1, err))
			return nil
		}
		switch o.format {
		case "tree":
			fmt.Fprintln(bw, res.Tree)
		case "json":
			return enc.Encode(res)
		case "heads":
			for _, h := range res.Heads {
				fmt.Fprintf(bw, "%s\t%d\t%d\t%s/%s\n", h.Label, h.Start, h.End, h.Word, h.Tag)
			}
			fmt.Fprintln(bw)
		default:
			for _, d := range res.Dependencies {
				fmt.Fprintln(bw, d.String())
			}
			fmt.Fprintln(bw)
		}
		return nil
	})
	if err != nil {
		return err
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d trees failed", failed, total)
	}
	return nil
}

func makeTransformCmd() *commander.Command {
	c := &commander.Command{
		Run:       runTransform,
		UsageLine: "transform [options] [file...]",
		Short:     "print trees after the transform pipeline",
		Long: `
transform applies label cleanup, coordination restructuring and the
rewrite stages without percolating heads. The -copula flag keeps SQ
constituents, as the copula-head finders expect.
`,
		Flag: *flag.NewFlagSet("headtree-transform", flag.ExitOnError),
	}
	c.Flag.BoolVar(&opts.copula, "copula", false, "skip the SQ flattening stage")
	c.Flag.BoolVar(&opts.verbose, "v", false, "log transform decisions to stderr")
	return c
}

func runTransform(cmd *commander.Command, args []string) error {
	return transformTrees(os.Stdout, os.Stdin, args, opts)
}

func transformTrees(w io.Writer, stdin io.Reader, files []string, o options) error {
	p, err := transform.NewPipeline(
		transform.WithLogger(newLogger(o.verbose)),
		transform.WithCopulaHead(o.copula),
	)
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(w)
	defer bw.Flush()
	return eachTree(stdin, files, func(name string, i int, t *tree.Tree) error {
		out, err := p.Transform(t)
		if err != nil {
			return fmt.Errorf("%s: tree %d: %w", name, i+1, err)
		}
		if out != nil {
			fmt.Fprintln(bw, out)
		}
		return nil
	})
}

// eachTree calls fn for every tree in files, or in stdin when files is
// empty or "-".
func eachTree(stdin io.Reader, files []string, fn func(name string, i int, t *tree.Tree) error) error {
	if len(files) == 0 {
		files = []string{"-"}
	}
	for _, name := range files {
		var trees []*tree.Tree
		var err error
		if name == "-" {
			trees, err = (&parser.PennParser{}).Parse(stdin, "stdin")
		} else {
			trees, err = readFile(name)
		}
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		for i, t := range trees {
			if err := fn(name, i, t); err != nil {
				return err
			}
		}
	}
	return nil
}

func readFile(name string) ([]*tree.Tree, error) {
	p, err := parser.ForFile(name)
	if err != nil {
		return nil, err
	}
	if pp, ok := p.(*parser.PDFParser); ok {
		pp.FallbackPdftotext = true
	}
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return p.Parse(f, name)
}

func newLogger(verbose bool) *slog.Logger {
	if !verbose {
		return slog.New(slog.DiscardHandler)
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
}
