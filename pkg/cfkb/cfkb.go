// Package cfkb loads certainty-factor production-rule knowledge bases from
// their two text formats: a rules file ("R1: Si h2 o h3 Entonces h1,
// FC = 0.5" lines) and a facts file ("h2, FC = 0.3" lines plus an Objetivo
// goal block). It builds the in-memory model a certainty-factor inference
// engine would consume; the engine itself is not part of this module.
package cfkb

import (
	"fmt"
	"io"
	"os"

	"github.com/cognicore/cfkb/pkg/cfkb/kb"
	"github.com/cognicore/cfkb/pkg/cfkb/parse"
)

// System is a fully loaded model: the rule base, the fact base with its
// seeded working memory, and any non-fatal diagnostics from either loader.
type System struct {
	KB          *kb.KnowledgeBase
	Facts       *kb.FactBase
	Diagnostics []parse.Diagnostic
}

// Load parses both sources. On any fatal parse error no model is returned;
// diagnostics gathered up to that point are discarded with it.
func Load(rules, facts io.Reader) (*System, error) {
	base, ruleDiags, err := parse.LoadRules(rules)
	if err != nil {
		return nil, fmt.Errorf("load rules: %w", err)
	}
	factBase, factDiags, err := parse.LoadFacts(facts)
	if err != nil {
		return nil, fmt.Errorf("load facts: %w", err)
	}
	sys := &System{KB: base, Facts: factBase}
	for _, d := range ruleDiags {
		sys.Diagnostics = append(sys.Diagnostics, parse.Diagnostic{Line: d.Line, Message: "rules: " + d.Message})
	}
	for _, d := range factDiags {
		sys.Diagnostics = append(sys.Diagnostics, parse.Diagnostic{Line: d.Line, Message: "facts: " + d.Message})
	}
	return sys, nil
}

// LoadFiles opens and parses both files. Handles are closed on every path.
func LoadFiles(rulesPath, factsPath string) (*System, error) {
	rf, err := os.Open(rulesPath)
	if err != nil {
		return nil, fmt.Errorf("open rules file: %w", err)
	}
	defer rf.Close()

	ff, err := os.Open(factsPath)
	if err != nil {
		return nil, fmt.Errorf("open facts file: %w", err)
	}
	defer ff.Close()

	sys, err := Load(rf, ff)
	if err != nil {
		return nil, err
	}
	return sys, nil
}
