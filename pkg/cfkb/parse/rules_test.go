package parse

import (
	"errors"
	"strings"
	"testing"

	"github.com/cognicore/cfkb/pkg/cfkb/internalerr"
	"github.com/cognicore/cfkb/pkg/cfkb/kb"
)

const sampleRules = `4
R1: Si h2 o h3 Entonces h1, FC = 0.5
R2: Si h4 Entonces h1, FC = 1
R3: Si h5 y h6 Entonces h3, FC = 0.7
R4: Si h7 Entonces h3, FC = -0.5
`

func TestLoadRulesSample(t *testing.T) {
	base, diags, err := LoadRules(strings.NewReader(sampleRules))
	if err != nil {
		t.Fatalf("LoadRules failed: %v", err)
	}
	if len(diags) != 0 {
		t.Errorf("unexpected diagnostics: %v", diags)
	}
	if len(base.Rules) != 4 {
		t.Fatalf("got %d rules, want 4", len(base.Rules))
	}

	want := []struct {
		id         string
		op         kb.Operator
		conds      []string
		consequent string
		cf         float64
	}{
		{"R1", kb.OpOr, []string{"h2", "h3"}, "h1", 0.5},
		{"R2", kb.OpNone, []string{"h4"}, "h1", 1},
		{"R3", kb.OpAnd, []string{"h5", "h6"}, "h3", 0.7},
		{"R4", kb.OpNone, []string{"h7"}, "h3", -0.5},
	}
	for i, w := range want {
		r := base.Rules[i]
		if r.ID != w.id {
			t.Errorf("rule %d id = %q, want %q", i, r.ID, w.id)
		}
		if r.Antecedent.Operator != w.op {
			t.Errorf("rule %s operator = %v, want %v", w.id, r.Antecedent.Operator, w.op)
		}
		if len(r.Antecedent.Conditions) != len(w.conds) {
			t.Fatalf("rule %s got %d conditions, want %d", w.id, len(r.Antecedent.Conditions), len(w.conds))
		}
		for j, name := range w.conds {
			if r.Antecedent.Conditions[j].Name != name {
				t.Errorf("rule %s condition %d = %q, want %q", w.id, j, r.Antecedent.Conditions[j].Name, name)
			}
		}
		if r.Consequent.Name != w.consequent {
			t.Errorf("rule %s consequent = %q, want %q", w.id, r.Consequent.Name, w.consequent)
		}
		if r.Certainty != w.cf {
			t.Errorf("rule %s certainty = %v, want %v", w.id, r.Certainty, w.cf)
		}
	}
}

func TestLoadRulesRoundTrip(t *testing.T) {
	base, _, err := LoadRules(strings.NewReader(sampleRules))
	if err != nil {
		t.Fatalf("LoadRules failed: %v", err)
	}

	// Re-serialize every rule and load the result again: structure must
	// survive, whatever the original whitespace looked like.
	var b strings.Builder
	b.WriteString("4\n")
	for _, r := range base.Rules {
		b.WriteString(r.String())
		b.WriteByte('\n')
	}
	again, _, err := LoadRules(strings.NewReader(b.String()))
	if err != nil {
		t.Fatalf("reload of re-serialized rules failed: %v", err)
	}
	if len(again.Rules) != len(base.Rules) {
		t.Fatalf("got %d rules after round trip, want %d", len(again.Rules), len(base.Rules))
	}
	for i := range base.Rules {
		if base.Rules[i].String() != again.Rules[i].String() {
			t.Errorf("rule %d changed across round trip:\n  %s\n  %s",
				i, base.Rules[i].String(), again.Rules[i].String())
		}
	}
}

func TestLoadRulesCaseInsensitiveKeywords(t *testing.T) {
	in := "1\nr9: si Fiebre O Tos ENTONCES gripe, fc=0.8\n"
	base, _, err := LoadRules(strings.NewReader(in))
	if err != nil {
		t.Fatalf("LoadRules failed: %v", err)
	}
	r := base.Rules[0]
	if r.Antecedent.Operator != kb.OpOr {
		t.Errorf("operator = %v, want OpOr", r.Antecedent.Operator)
	}
	// Condition and consequent names keep original case.
	if r.Antecedent.Conditions[0].Name != "Fiebre" || r.Antecedent.Conditions[1].Name != "Tos" {
		t.Errorf("conditions = %v, want [Fiebre Tos]", r.Antecedent.Conditions)
	}
	if r.Consequent.Name != "gripe" || r.Certainty != 0.8 {
		t.Errorf("consequent %q cf %v, want gripe 0.8", r.Consequent.Name, r.Certainty)
	}
}

func TestLoadRulesBlankLinesNotCounted(t *testing.T) {
	in := "2\n\nR1: Si a Entonces b, FC = 0.1\n\n\nR2: Si c Entonces d, FC = 0.2\n"
	base, diags, err := LoadRules(strings.NewReader(in))
	if err != nil {
		t.Fatalf("LoadRules failed: %v", err)
	}
	if len(base.Rules) != 2 {
		t.Errorf("got %d rules, want 2", len(base.Rules))
	}
	if len(diags) != 0 {
		t.Errorf("unexpected diagnostics: %v", diags)
	}
}

func TestLoadRulesRightmostFCMarker(t *testing.T) {
	// A marker-looking substring inside the clause must not preempt the
	// true suffix marker: the rightmost one wins.
	in := "1\nR1: Si a Entonces b, FC = 0.5, FC = 0.7\n"
	base, _, err := LoadRules(strings.NewReader(in))
	if err != nil {
		t.Fatalf("LoadRules failed: %v", err)
	}
	r := base.Rules[0]
	if r.Certainty != 0.7 {
		t.Errorf("certainty = %v, want 0.7 (rightmost marker)", r.Certainty)
	}
	if r.Consequent.Name != "b, FC = 0.5" {
		t.Errorf("consequent = %q, want %q", r.Consequent.Name, "b, FC = 0.5")
	}
}

func TestLoadRulesDeclaredMoreThanPresent(t *testing.T) {
	in := "3\nR1: Si a Entonces b, FC = 0.1\nR2: Si c Entonces d, FC = 0.2\n"
	_, _, err := LoadRules(strings.NewReader(in))
	if !errors.Is(err, internalerr.ErrUnexpectedEOF) {
		t.Errorf("err = %v, want ErrUnexpectedEOF", err)
	}
}

func TestLoadRulesDeclaredFewerThanPresent(t *testing.T) {
	in := "2\nR1: Si a Entonces b, FC = 0.1\nR2: Si c Entonces d, FC = 0.2\nR3: Si e Entonces f, FC = 0.3\n"
	base, diags, err := LoadRules(strings.NewReader(in))
	if err != nil {
		t.Fatalf("LoadRules failed: %v", err)
	}
	if len(base.Rules) != 2 {
		t.Errorf("got %d rules, want only the declared 2", len(base.Rules))
	}
	if len(diags) != 1 {
		t.Fatalf("got %d diagnostics, want 1 count mismatch, have %v", len(diags), diags)
	}
	if diags[0].Line != 4 {
		t.Errorf("diagnostic line = %d, want 4", diags[0].Line)
	}
}

func TestLoadRulesErrors(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want error
	}{
		{"non-numeric count", "four\nR1: Si a Entonces b, FC = 0.1\n", internalerr.ErrInvalidCount},
		{"empty input", "", internalerr.ErrUnexpectedEOF},
		{"missing colon", "1\nR1 Si a Entonces b, FC = 0.1\n", internalerr.ErrMissingDelimiter},
		{"empty rule id", "1\n: Si a Entonces b, FC = 0.1\n", internalerr.ErrEmptyClause},
		{"missing fc marker", "1\nR1: Si a Entonces b, 0.1\n", internalerr.ErrMissingKeyword},
		{"missing comma before fc", "1\nR1: Si a Entonces b FC = 0.1\n", internalerr.ErrMissingDelimiter},
		{"invalid certainty", "1\nR1: Si a Entonces b, FC = high\n", internalerr.ErrInvalidNumber},
		{"missing si", "1\nR1: Cuando a Entonces b, FC = 0.1\n", internalerr.ErrMissingKeyword},
		{"si not at start", "1\nR1: luego Si a Entonces b, FC = 0.1\n", internalerr.ErrMissingKeyword},
		{"missing entonces", "1\nR1: Si a luego b, FC = 0.1\n", internalerr.ErrMissingKeyword},
		{"empty antecedent", "1\nR1: Si  Entonces b, FC = 0.1\n", internalerr.ErrEmptyClause},
		// A blank consequent leaves no text after " Entonces " once the
		// clause is trimmed, so the marker itself is not found.
		{"blank consequent", "1\nR1: Si a Entonces , FC = 0.1\n", internalerr.ErrMissingKeyword},
		{"empty literal", "1\nR1: Si a y  y b Entonces c, FC = 0.1\n", internalerr.ErrEmptyLiteral},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			base, _, err := LoadRules(strings.NewReader(c.in))
			if !errors.Is(err, c.want) {
				t.Fatalf("err = %v, want %v", err, c.want)
			}
			if base != nil {
				t.Error("no knowledge base should be returned on a fatal error")
			}
		})
	}
}

func TestLoadRulesErrorCarriesLine(t *testing.T) {
	in := "2\nR1: Si a Entonces b, FC = 0.1\nR2: Si c luego d, FC = 0.2\n"
	_, _, err := LoadRules(strings.NewReader(in))
	var pe *Error
	if !errors.As(err, &pe) {
		t.Fatalf("err %v is not a *parse.Error", err)
	}
	if pe.Line != 3 {
		t.Errorf("error line = %d, want 3", pe.Line)
	}
	if !errors.Is(pe, internalerr.ErrMissingKeyword) {
		t.Errorf("error kind = %v, want ErrMissingKeyword", pe.Err)
	}
}
