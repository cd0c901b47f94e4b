// Package parse implements the line grammars for the two knowledge-base text
// formats: a rules file ("R1: Si h2 o h3 Entonces h1, FC = 0.5") and a facts
// file ("h2, FC = 0.3" entries followed by an Objetivo goal block).
//
// Keyword matching is case-insensitive raw substring search over a folded
// scratch copy of the input, exactly like the format it implements. That
// makes the grammar ambiguous when a name contains a reserved token: a fact
// name with " y " inside it will be mis-split, and a consequent containing an
// "FC=" marker will be mis-parsed. Names must avoid the reserved tokens; the
// grammar has no escaping.
package parse

import (
	"strings"

	"github.com/cognicore/cfkb/pkg/cfkb/internalerr"
	"github.com/cognicore/cfkb/pkg/cfkb/kb"
	"github.com/cognicore/cfkb/pkg/cfkb/textutil"
)

const (
	delimAnd = " y "
	delimOr  = " o "
)

// ParseAntecedent splits an "if"-clause into condition facts joined by a
// single operator. The first delimiter found decides the operator: " y "
// wins when it appears before any " o ", otherwise " o " wins, otherwise the
// whole clause is one condition. Mixing both delimiters in one clause is
// undefined behavior inherited from the format; the earlier delimiter's
// operator is used for every split point.
func ParseAntecedent(text string) (kb.Antecedent, error) {
	low := textutil.Fold(text)
	posAnd := strings.Index(low, delimAnd)
	posOr := strings.Index(low, delimOr)

	var ant kb.Antecedent
	var delim string
	pos := -1
	switch {
	case posAnd >= 0 && (posOr < 0 || posAnd < posOr):
		ant.Operator = kb.OpAnd
		delim, pos = delimAnd, posAnd
	case posOr >= 0:
		ant.Operator = kb.OpOr
		delim, pos = delimOr, posOr
	default:
		ant.Operator = kb.OpNone
	}

	var literals []string
	if pos < 0 {
		literals = []string{textutil.Trim(text)}
	} else {
		start := 0
		for pos >= 0 {
			literals = append(literals, textutil.Trim(text[start:pos]))
			start = pos + len(delim)
			next := strings.Index(low[start:], delim)
			if next < 0 {
				pos = -1
			} else {
				pos = start + next
			}
		}
		literals = append(literals, textutil.Trim(text[start:]))
	}

	for _, lit := range literals {
		if lit == "" {
			return kb.Antecedent{}, errAt(0, internalerr.ErrEmptyLiteral, "in antecedent %q", text)
		}
		ant.Conditions = append(ant.Conditions, kb.Fact{Name: lit})
	}
	if len(ant.Conditions) == 0 {
		return kb.Antecedent{}, errAt(0, internalerr.ErrEmptyLiteral, "antecedent %q has no conditions", text)
	}
	return ant, nil
}
