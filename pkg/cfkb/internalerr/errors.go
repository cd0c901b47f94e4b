package internalerr

import "errors"

// Sentinel errors for the fatal parse failure kinds. A count mismatch between
// the declared header and the lines actually parsed is deliberately not here:
// it is a non-fatal diagnostic, not an error.
var (
	ErrInvalidCount     = errors.New("invalid count")
	ErrUnexpectedEOF    = errors.New("unexpected end of input")
	ErrMissingDelimiter = errors.New("missing delimiter")
	ErrMissingKeyword   = errors.New("missing keyword")
	ErrEmptyClause      = errors.New("empty clause")
	ErrEmptyLiteral     = errors.New("empty literal")
	ErrInvalidNumber    = errors.New("invalid number")
)
