package pipeline

import (
	"fmt"
	"os"

	"github.com/dgallion1/headtree/internal/headfinder"
	"github.com/dgallion1/headtree/internal/lang"
)

// LoadFinder builds a standard Penn head finder by name. Rules read from
// rulesFile, when given, replace the finder's rules for their categories.
func LoadFinder(name string, copulaHead bool, rulesFile string) (*headfinder.Finder, error) {
	f, err := headfinder.ByName(name, lang.Penn{}, copulaHead)
	if err != nil {
		return nil, err
	}
	if rulesFile == "" {
		return f, nil
	}
	r, err := os.Open(rulesFile)
	if err != nil {
		return nil, fmt.Errorf("open head rules: %w", err)
	}
	defer r.Close()
	overrides, err := headfinder.ParseRules(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", rulesFile, err)
	}
	return f.WithOverrides(overrides)
}
