package parse

import (
	"io"
	"strconv"
	"strings"

	"github.com/cognicore/cfkb/pkg/cfkb/internalerr"
	"github.com/cognicore/cfkb/pkg/cfkb/kb"
	"github.com/cognicore/cfkb/pkg/cfkb/textutil"
)

const keywordObjetivo = "objetivo"

// LoadFacts reads a facts file: an integer count header, that many fact
// lines of the form
//
//	h2, FC = 0.3
//
// then the keyword "Objetivo" on its own line and the goal fact's name on
// the next non-blank line. Each fact is appended to Initial and seeded into
// working memory, last write winning when a name repeats. Unlike the rule
// loader's rightmost marker search, a fact's certainty suffix must start
// with the FC marker exactly; the asymmetry is part of the format.
func LoadFacts(r io.Reader) (*kb.FactBase, []Diagnostic, error) {
	ls := newLineScanner(r)
	count, err := readCount(ls, "fact")
	if err != nil {
		return nil, nil, err
	}

	base := &kb.FactBase{Memory: kb.WorkingMemory{}}
	for loaded := 0; loaded < count; {
		line, ok := ls.scan()
		if !ok {
			if err := ls.err(); err != nil {
				return nil, nil, err
			}
			return nil, nil, errAt(ls.line, internalerr.ErrUnexpectedEOF,
				"expected %d facts, got %d", count, loaded)
		}
		line = textutil.Trim(line)
		if line == "" {
			continue
		}
		fact, perr := parseFact(line, ls.line)
		if perr != nil {
			return nil, nil, perr
		}
		base.Initial = append(base.Initial, fact)
		base.Memory.Set(fact.Name, fact.Certainty)
		loaded++
	}

	// Keyword block: skip blanks, require "Objetivo", then the goal name.
	for {
		line, ok := ls.scan()
		if !ok {
			if err := ls.err(); err != nil {
				return nil, nil, err
			}
			return nil, nil, errAt(ls.line, internalerr.ErrUnexpectedEOF, "'Objetivo' keyword not found")
		}
		line = textutil.Trim(line)
		if line == "" {
			continue
		}
		if textutil.Fold(line) != keywordObjetivo {
			return nil, nil, errAt(ls.line, internalerr.ErrMissingKeyword,
				"expected 'Objetivo', got %q", line)
		}
		break
	}
	for {
		line, ok := ls.scan()
		if !ok {
			if err := ls.err(); err != nil {
				return nil, nil, err
			}
			return nil, nil, errAt(ls.line, internalerr.ErrUnexpectedEOF, "goal fact missing after 'Objetivo'")
		}
		line = textutil.Trim(line)
		if line == "" {
			continue
		}
		base.Goal = kb.Fact{Name: line}
		break
	}
	if base.Goal.Name == "" {
		return nil, nil, errAt(ls.line, internalerr.ErrEmptyClause, "goal fact is empty")
	}
	return base, nil, nil
}

// parseFact splits a fact line on its last comma (names may contain commas)
// and requires the suffix to begin with the FC marker.
func parseFact(line string, lineNo int) (kb.Fact, error) {
	comma := strings.LastIndexByte(line, ',')
	if comma < 0 {
		return kb.Fact{}, errAt(lineNo, internalerr.ErrMissingDelimiter, "fact line has no ',': %q", line)
	}
	name := textutil.Trim(line[:comma])
	suffix := textutil.Trim(line[comma+1:])

	valueStart, ok := fcMarkerAt(textutil.Fold(suffix), 0)
	if !ok {
		return kb.Fact{}, errAt(lineNo, internalerr.ErrMissingKeyword,
			"fact suffix does not start with 'FC=': %q", line)
	}
	cfText := textutil.Trim(suffix[valueStart:])
	cf, err := strconv.ParseFloat(cfText, 64)
	if err != nil {
		return kb.Fact{}, errAt(lineNo, internalerr.ErrInvalidNumber, "fact certainty %q", cfText)
	}
	return kb.Fact{Name: name, Certainty: cf}, nil
}
