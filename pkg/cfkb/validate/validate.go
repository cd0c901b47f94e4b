// Package validate holds optional checks layered on top of the parsers. The
// file grammar enforces neither rule-id uniqueness nor the conventional
// [-1, 1] certainty range, so both are opt-in passes here rather than part
// of loading.
package validate

import (
	"fmt"

	"github.com/cognicore/cfkb/pkg/cfkb/kb"
)

// Options selects which passes run. The zero value runs nothing.
type Options struct {
	UniqueRuleIDs  bool `yaml:"unique_rule_ids"`
	CertaintyRange bool `yaml:"certainty_range"`
}

// Problem is one validation finding. Subject is the rule id or fact name it
// concerns. Problems never abort anything; the caller decides severity.
type Problem struct {
	Subject string
	Message string
}

func (p Problem) String() string {
	return p.Subject + ": " + p.Message
}

// Rules runs the selected passes over a knowledge base.
func Rules(base *kb.KnowledgeBase, opts Options) []Problem {
	var problems []Problem
	if opts.UniqueRuleIDs {
		seen := make(map[string]int, len(base.Rules))
		for _, r := range base.Rules {
			seen[r.ID]++
		}
		for _, r := range base.Rules {
			if seen[r.ID] > 1 {
				problems = append(problems, Problem{
					Subject: r.ID,
					Message: fmt.Sprintf("rule id appears %d times", seen[r.ID]),
				})
				seen[r.ID] = 1 // report each duplicate id once
			}
		}
	}
	if opts.CertaintyRange {
		for _, r := range base.Rules {
			if outOfRange(r.Certainty) {
				problems = append(problems, Problem{
					Subject: r.ID,
					Message: fmt.Sprintf("rule certainty %s outside [-1, 1]", kb.FormatCertainty(r.Certainty)),
				})
			}
		}
	}
	return problems
}

// Facts runs the selected passes over a fact base.
func Facts(base *kb.FactBase, opts Options) []Problem {
	var problems []Problem
	if opts.CertaintyRange {
		for _, f := range base.Initial {
			if outOfRange(f.Certainty) {
				problems = append(problems, Problem{
					Subject: f.Name,
					Message: fmt.Sprintf("fact certainty %s outside [-1, 1]", kb.FormatCertainty(f.Certainty)),
				})
			}
		}
	}
	return problems
}

func outOfRange(c float64) bool {
	return c < -1 || c > 1
}
