package parse

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/cognicore/cfkb/pkg/cfkb/internalerr"
	"github.com/cognicore/cfkb/pkg/cfkb/textutil"
)

// lineScanner wraps bufio.Scanner with a 1-based physical line counter so
// errors and diagnostics can name the exact offending line. Blank lines
// advance the counter even when a loader skips them.
type lineScanner struct {
	s    *bufio.Scanner
	line int
}

func newLineScanner(r io.Reader) *lineScanner {
	return &lineScanner{s: bufio.NewScanner(r)}
}

func (ls *lineScanner) scan() (string, bool) {
	if !ls.s.Scan() {
		return "", false
	}
	ls.line++
	return ls.s.Text(), true
}

func (ls *lineScanner) err() error {
	return ls.s.Err()
}

// readCount consumes the header line and parses it as the declared entry
// count. The header must be exactly an integer after trimming.
func readCount(ls *lineScanner, what string) (int, error) {
	line, ok := ls.scan()
	if !ok {
		if err := ls.err(); err != nil {
			return 0, err
		}
		return 0, errAt(ls.line, internalerr.ErrUnexpectedEOF, "missing %s count header", what)
	}
	trimmed := textutil.Trim(line)
	n, err := strconv.Atoi(trimmed)
	if err != nil {
		return 0, errAt(ls.line, internalerr.ErrInvalidCount, "%s count %q", what, trimmed)
	}
	return n, nil
}

// fcMarkerAt reports whether the folded string carries a certainty marker
// ("fc", optional spaces, "=") starting exactly at index i. Returns the index
// just past the '='.
func fcMarkerAt(low string, i int) (valueStart int, ok bool) {
	if !strings.HasPrefix(low[i:], "fc") {
		return 0, false
	}
	j := i + 2
	for j < len(low) && (low[j] == ' ' || low[j] == '\t') {
		j++
	}
	if j < len(low) && low[j] == '=' {
		return j + 1, true
	}
	return 0, false
}

// lastFCMarker finds the rightmost certainty marker in a folded string. The
// rightmost occurrence is deliberate: a marker-looking substring embedded
// earlier in the text must not preempt the true suffix marker. The flip side
// is that a consequent name containing "FC=" will be mis-parsed.
func lastFCMarker(low string) (start, valueStart int, ok bool) {
	for i := strings.LastIndex(low, "fc"); i >= 0; i = strings.LastIndex(low[:i], "fc") {
		if v, found := fcMarkerAt(low, i); found {
			return i, v, true
		}
	}
	return 0, 0, false
}
