package validate

import (
	"strings"
	"testing"

	"github.com/cognicore/cfkb/pkg/cfkb/kb"
)

func rule(id string, cf float64) kb.Rule {
	return kb.Rule{
		ID:         id,
		Antecedent: kb.Antecedent{Conditions: []kb.Fact{{Name: "a"}}, Operator: kb.OpNone},
		Consequent: kb.Fact{Name: "b"},
		Certainty:  cf,
	}
}

func TestRulesZeroOptionsRunNothing(t *testing.T) {
	base := &kb.KnowledgeBase{Rules: []kb.Rule{rule("R1", 5), rule("R1", 5)}}
	if problems := Rules(base, Options{}); len(problems) != 0 {
		t.Errorf("zero options reported %v", problems)
	}
}

func TestRulesUniqueIDs(t *testing.T) {
	base := &kb.KnowledgeBase{Rules: []kb.Rule{rule("R1", 0.5), rule("R2", 0.5), rule("R1", 0.7)}}
	problems := Rules(base, Options{UniqueRuleIDs: true})
	if len(problems) != 1 {
		t.Fatalf("got %d problems %v, want 1 for the duplicated id", len(problems), problems)
	}
	if problems[0].Subject != "R1" {
		t.Errorf("subject = %q, want R1", problems[0].Subject)
	}
}

func TestRulesCertaintyRange(t *testing.T) {
	base := &kb.KnowledgeBase{Rules: []kb.Rule{rule("R1", 1), rule("R2", -1), rule("R3", 1.5)}}
	problems := Rules(base, Options{CertaintyRange: true})
	if len(problems) != 1 {
		t.Fatalf("got %d problems %v, want 1", len(problems), problems)
	}
	if problems[0].Subject != "R3" || !strings.Contains(problems[0].Message, "1.5") {
		t.Errorf("unexpected problem %v", problems[0])
	}
}

func TestFactsCertaintyRange(t *testing.T) {
	base := &kb.FactBase{
		Initial: []kb.Fact{{Name: "h2", Certainty: 0.3}, {Name: "h9", Certainty: -2}},
		Memory:  kb.WorkingMemory{},
	}
	problems := Facts(base, Options{CertaintyRange: true})
	if len(problems) != 1 {
		t.Fatalf("got %d problems %v, want 1", len(problems), problems)
	}
	if problems[0].Subject != "h9" {
		t.Errorf("subject = %q, want h9", problems[0].Subject)
	}
}
