package outline

import "strings"

// Span is a half-open byte range [Start, End) of a text.
type Span struct {
	Start int
	End   int
}

// Text returns the spanned part of src.
func (s Span) Text(src string) string {
	return src[s.Start:s.End]
}

// ResolveBodySpan finds the first '{' at or after from and returns the span
// from that brace through its matching '}'. The second result is false when
// no '{' exists at or after from.
//
// Depth counting stops at the end of text when the braces never balance, in
// which case the span runs to len(text).
func ResolveBodySpan(text string, from int) (Span, bool) {
	if from < 0 {
		from = 0
	}
	if from > len(text) {
		return Span{}, false
	}

	rel := strings.IndexByte(text[from:], '{')
	if rel < 0 {
		return Span{}, false
	}
	start := from + rel

	depth := 1
	pos := start + 1
	for pos < len(text) && depth > 0 {
		switch text[pos] {
		case '{':
			depth++
		case '}':
			depth--
		}
		pos++
	}

	return Span{Start: start, End: pos}, true
}
