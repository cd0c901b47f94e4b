// Package textutil holds the case-folding and trimming primitives shared by
// the rule and fact parsers. Folding is byte-wise ASCII on purpose: keyword
// matching operates on folded scratch copies while names keep their original
// case and bytes.
package textutil

const whitespace = " \t\n\r\f\v"

// Fold lowercases ASCII letters byte by byte. Non-ASCII bytes pass through
// unchanged, so multi-byte runes are never reinterpreted.
func Fold(s string) string {
	b := []byte(s)
	changed := false
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
			changed = true
		}
	}
	if !changed {
		return s
	}
	return string(b)
}

// Trim strips leading and trailing whitespace (space, tab, newline, carriage
// return, form feed, vertical tab). Returns "" for all-whitespace input.
// Internal whitespace is preserved.
func Trim(s string) string {
	start := 0
	for start < len(s) && isSpace(s[start]) {
		start++
	}
	if start == len(s) {
		return ""
	}
	end := len(s)
	for end > start && isSpace(s[end-1]) {
		end--
	}
	return s[start:end]
}

func isSpace(c byte) bool {
	for i := 0; i < len(whitespace); i++ {
		if whitespace[i] == c {
			return true
		}
	}
	return false
}
