package parse

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/cognicore/cfkb/pkg/cfkb/internalerr"
	"github.com/cognicore/cfkb/pkg/cfkb/kb"
	"github.com/cognicore/cfkb/pkg/cfkb/textutil"
)

const (
	markerSi       = "si "
	markerEntonces = " entonces "
)

// LoadRules reads a rules file: an integer count header followed by that many
// rule lines of the form
//
//	R1: Si h2 o h3 Entonces h1, FC = 0.5
//
// Blank lines between rules are skipped without counting against the header.
// Any malformed line aborts the whole load; no partial knowledge base is
// returned. A stale count header (more rule lines present than declared) is
// tolerated: the extra lines are ignored and reported as a diagnostic.
func LoadRules(r io.Reader) (*kb.KnowledgeBase, []Diagnostic, error) {
	ls := newLineScanner(r)
	count, err := readCount(ls, "rule")
	if err != nil {
		return nil, nil, err
	}

	base := &kb.KnowledgeBase{}
	for loaded := 0; loaded < count; {
		line, ok := ls.scan()
		if !ok {
			if err := ls.err(); err != nil {
				return nil, nil, err
			}
			return nil, nil, errAt(ls.line, internalerr.ErrUnexpectedEOF,
				"expected %d rules, got %d", count, loaded)
		}
		line = textutil.Trim(line)
		if line == "" {
			continue
		}
		rule, perr := parseRule(line, ls.line)
		if perr != nil {
			return nil, nil, perr
		}
		base.Rules = append(base.Rules, rule)
		loaded++
	}

	extra, extraLine := 0, 0
	for {
		line, ok := ls.scan()
		if !ok {
			break
		}
		if textutil.Trim(line) != "" {
			if extra == 0 {
				extraLine = ls.line
			}
			extra++
		}
	}
	if err := ls.err(); err != nil {
		return nil, nil, err
	}

	var diags []Diagnostic
	if extra > 0 {
		diags = append(diags, Diagnostic{
			Line:    extraLine,
			Message: fmt.Sprintf("declared %d rules but %d more non-blank line(s) follow; extra lines ignored", count, extra),
		})
	}
	return base, diags, nil
}

// parseRule applies the rule line grammar. The FC marker is located by a
// rightmost search over the folded body; the comma separating the clause from
// the certainty suffix is the last comma at or before that marker.
func parseRule(line string, lineNo int) (kb.Rule, error) {
	colon := strings.IndexByte(line, ':')
	if colon < 0 {
		return kb.Rule{}, errAt(lineNo, internalerr.ErrMissingDelimiter, "rule line has no ':': %q", line)
	}
	id := textutil.Trim(line[:colon])
	if id == "" {
		return kb.Rule{}, errAt(lineNo, internalerr.ErrEmptyClause, "rule id is empty: %q", line)
	}
	body := textutil.Trim(line[colon+1:])
	low := textutil.Fold(body)

	fcStart, fcValue, ok := lastFCMarker(low)
	if !ok {
		return kb.Rule{}, errAt(lineNo, internalerr.ErrMissingKeyword, "rule has no 'FC=' marker: %q", body)
	}
	comma := strings.LastIndexByte(body[:fcStart+1], ',')
	if comma < 0 {
		return kb.Rule{}, errAt(lineNo, internalerr.ErrMissingDelimiter, "no ',' before 'FC=': %q", body)
	}
	cfText := textutil.Trim(body[fcValue:])
	cf, err := strconv.ParseFloat(cfText, 64)
	if err != nil {
		return kb.Rule{}, errAt(lineNo, internalerr.ErrInvalidNumber, "rule certainty %q", cfText)
	}

	clause := textutil.Trim(body[:comma])
	lowClause := textutil.Fold(clause)
	if !strings.HasPrefix(lowClause, markerSi) {
		return kb.Rule{}, errAt(lineNo, internalerr.ErrMissingKeyword, "clause does not start with 'Si': %q", clause)
	}
	entRel := strings.Index(lowClause[len(markerSi):], markerEntonces)
	if entRel < 0 {
		return kb.Rule{}, errAt(lineNo, internalerr.ErrMissingKeyword, "clause has no 'Entonces': %q", clause)
	}
	ent := len(markerSi) + entRel

	alfa := textutil.Trim(clause[len(markerSi):ent])
	beta := textutil.Trim(clause[ent+len(markerEntonces):])
	if alfa == "" {
		return kb.Rule{}, errAt(lineNo, internalerr.ErrEmptyClause, "empty antecedent in %q", clause)
	}
	if beta == "" {
		return kb.Rule{}, errAt(lineNo, internalerr.ErrEmptyClause, "empty consequent in %q", clause)
	}

	ant, err := ParseAntecedent(alfa)
	if err != nil {
		var pe *Error
		if errors.As(err, &pe) {
			pe.Line = lineNo
		}
		return kb.Rule{}, err
	}

	return kb.Rule{
		ID:         id,
		Antecedent: ant,
		Consequent: kb.Fact{Name: beta},
		Certainty:  cf,
	}, nil
}
