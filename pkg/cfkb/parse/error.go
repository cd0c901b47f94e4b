package parse

import (
	"fmt"
)

// Error is a fatal parse failure. Err is always one of the internalerr
// sentinels, so callers can match with errors.Is while Detail and Line keep
// the diagnostic precise.
type Error struct {
	Line   int // 1-based physical line, 0 when unknown
	Detail string
	Err    error
}

func (e *Error) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %v: %s", e.Line, e.Err, e.Detail)
	}
	return fmt.Sprintf("%v: %s", e.Err, e.Detail)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func errAt(line int, kind error, format string, args ...interface{}) *Error {
	return &Error{Line: line, Detail: fmt.Sprintf(format, args...), Err: kind}
}

// Diagnostic is a non-fatal finding emitted alongside a successful load,
// currently only the count mismatch between a file's declared header and the
// entries actually present. The loaders return diagnostics as values instead
// of writing to a global sink; the caller picks the reporting surface.
type Diagnostic struct {
	Line    int
	Message string
}

func (d Diagnostic) String() string {
	if d.Line > 0 {
		return fmt.Sprintf("line %d: %s", d.Line, d.Message)
	}
	return d.Message
}
