package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const catSat = "(ROOT (S (NP (DT The) (NN cat)) (VP (VBD sat) (PP (IN on) (NP (DT the) (NN mat)))) (. .)))"

func TestAnnotateFormats(t *testing.T) {
	tests := []struct {
		format string
		want   string
	}{
		{"deps", "root(ROOT-0, sat-3)\n"},
		{"heads", "ROOT\t0\t7\tsat/VBD\n"},
		{"tree", catSat + "\n"},
		{"json", `"word":"sat"`},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			var out bytes.Buffer
			o := options{finder: "semantic", format: tt.format}
			if err := annotate(&out, strings.NewReader(catSat), nil, o); err != nil {
				t.Fatalf("annotate: %v", err)
			}
			if !strings.Contains(out.String(), tt.want) {
				t.Fatalf("expected %q in output:\n%s", tt.want, out.String())
			}
		})
	}
}

func TestAnnotateJSONDecodes(t *testing.T) {
	var out bytes.Buffer
	src := catSat + "\n" + catSat
	if err := annotate(&out, strings.NewReader(src), nil, options{finder: "modcollins", format: "json"}); err != nil {
		t.Fatalf("annotate: %v", err)
	}
	dec := json.NewDecoder(&out)
	n := 0
	for dec.More() {
		var res struct {
			Tree string `json:"tree"`
		}
		if err := dec.Decode(&res); err != nil {
			t.Fatalf("decode: %v", err)
		}
		n++
	}
	if n != 2 {
		t.Fatalf("expected 2 results, got %d", n)
	}
}

func TestAnnotateFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sample.mrg")
	if err := os.WriteFile(path, []byte(catSat+"\n(ROOT (FOO (NN a) (NN b)))\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	var out bytes.Buffer
	err := annotate(&out, nil, []string{path}, options{finder: "semantic", format: "deps"})
	if err == nil || !strings.Contains(err.Error(), "1 of 2 trees failed") {
		t.Fatalf("expected one failed tree, got %v", err)
	}
	if !strings.Contains(out.String(), "dep(sat-3, cat-2)") {
		t.Errorf("expected arcs for the good tree, got:\n%s", out.String())
	}
}

func TestAnnotateErrors(t *testing.T) {
	tests := []struct {
		name string
		o    options
		in   string
	}{
		{"bad format", options{finder: "semantic", format: "xml"}, catSat},
		{"bad finder", options{finder: "magic", format: "deps"}, catSat},
		{"syntax error", options{finder: "semantic", format: "deps"}, "(S (NP x)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			if err := annotate(&out, strings.NewReader(tt.in), nil, tt.o); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestTransformTrees(t *testing.T) {
	var out bytes.Buffer
	in := "(ROOT (NP (NN soya) (CC and) (NN maize) (NN oil)))"
	if err := transformTrees(&out, strings.NewReader(in), nil, options{}); err != nil {
		t.Fatalf("transformTrees: %v", err)
	}
	want := "(ROOT (NP (NP (NN soya)) (CC and) (NP (NN maize) (NN oil))))\n"
	if out.String() != want {
		t.Fatalf("expected %s, got %s", want, out.String())
	}
}

func TestPrintRules(t *testing.T) {
	var out bytes.Buffer
	if err := printRules(&out, options{finder: "collins"}); err != nil {
		t.Fatalf("printRules: %v", err)
	}
	if !strings.Contains(out.String(), "PP right IN TO VBG VBN RP FW\n") {
		t.Fatalf("collins PP rule missing:\n%s", out.String())
	}
}

func TestSubcommands(t *testing.T) {
	names := map[string]bool{}
	for _, c := range cmd.Subcommands {
		names[c.Name()] = true
	}
	for _, want := range []string{"annotate", "transform", "rules"} {
		if !names[want] {
			t.Errorf("missing subcommand %s", want)
		}
	}
}
