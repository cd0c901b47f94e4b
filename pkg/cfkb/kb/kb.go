// Package kb defines the in-memory knowledge representation: facts, rules,
// antecedents and the two passive containers the loaders populate. Nothing
// here parses or infers; a future inference engine consumes these types.
package kb

import (
	"strconv"
	"strings"
)

// Fact is a named proposition with a certainty factor. Certainty is
// conventionally in [-1, 1] but the model does not enforce the range:
// out-of-range values loaded from a file pass through unchanged.
type Fact struct {
	Name      string
	Certainty float64
}

// String renders the fact in facts-file form: "h2, FC = 0.3".
func (f Fact) String() string {
	return f.Name + ", FC = " + FormatCertainty(f.Certainty)
}

// Operator joins the conditions of an antecedent.
type Operator int

const (
	// OpNone marks a single-condition antecedent.
	OpNone Operator = iota
	OpAnd
	OpOr
)

// String returns the operator as it appears in rule text ("y" / "o").
func (op Operator) String() string {
	switch op {
	case OpAnd:
		return "y"
	case OpOr:
		return "o"
	default:
		return ""
	}
}

// Antecedent is the "Si" part of a rule: one or more condition facts joined
// by a single operator. Conditions carry names only; certainties are looked
// up in working memory at inference time. Invariants: Conditions is non-empty
// and OpNone implies exactly one condition.
type Antecedent struct {
	Conditions []Fact
	Operator   Operator
}

// Rule is one production rule. Certainty is the strength of the implication,
// not of any single fact. IDs are not required to be unique; see
// validate.Options for an opt-in uniqueness pass.
type Rule struct {
	ID         string
	Antecedent Antecedent
	Consequent Fact
	Certainty  float64
}

// String renders the rule in rules-file form:
// "R1: Si h2 o h3 Entonces h1, FC = 0.5".
func (r Rule) String() string {
	var b strings.Builder
	b.WriteString(r.ID)
	b.WriteString(": Si ")
	for i, c := range r.Antecedent.Conditions {
		if i > 0 {
			b.WriteByte(' ')
			b.WriteString(r.Antecedent.Operator.String())
			b.WriteByte(' ')
		}
		b.WriteString(c.Name)
	}
	b.WriteString(" Entonces ")
	b.WriteString(r.Consequent.Name)
	b.WriteString(", FC = ")
	b.WriteString(FormatCertainty(r.Certainty))
	return b.String()
}

// KnowledgeBase holds the parsed rules in file order. It is populated by a
// single loader pass and immutable from the parser's perspective afterward.
type KnowledgeBase struct {
	Rules []Rule
}

// FactBase holds the initial observations, the goal fact and the working
// memory seeded from the initial facts. The loader performs only the seeding;
// subsequent updates belong to an inference engine.
type FactBase struct {
	Initial []Fact
	Goal    Fact
	Memory  WorkingMemory
}

// WorkingMemory maps a fact name to its currently known certainty. Iteration
// order is unspecified and nothing in this core depends on it.
type WorkingMemory map[string]float64

// Set records the certainty for a fact name, overwriting any prior value.
func (m WorkingMemory) Set(name string, certainty float64) {
	m[name] = certainty
}

// Get returns the certainty for a fact name and whether it is known.
func (m WorkingMemory) Get(name string) (float64, bool) {
	c, ok := m[name]
	return c, ok
}

// FormatCertainty renders a certainty factor the way the file formats carry
// it: shortest decimal form, no trailing zeros ("1", "0.5", "-0.5").
func FormatCertainty(c float64) string {
	return strconv.FormatFloat(c, 'g', -1, 64)
}
