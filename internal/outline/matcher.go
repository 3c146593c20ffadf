package outline

import (
	"iter"
	"regexp"
)

// space is the ECMAScript \s class. RE2's \s is ASCII only and misses
// vertical tab, no-break space and the other Unicode separators.
const space = `[\s\v\p{Zs}\x{2028}\x{2029}\x{FEFF}]`

var (
	// class Name
	classPattern = regexp.MustCompile(`class` + space + `+(\w+)`)

	// [public|private|protected] [async] name(args) {
	methodPattern = regexp.MustCompile(`(?:public|private|protected)?` + space + `*(?:async` + space + `*)?(\w+)` +
		space + `*\([^)]*\)` + space + `*\{`)
)

// Match is one pattern hit. Start and End are byte offsets of the whole match
// in the scanned text; Name is the captured identifier.
type Match struct {
	Name  string
	Start int
	End   int
}

// ClassDeclarations returns the class declarations in text, in order of
// appearance. Every call starts a new scan from the beginning of text.
func ClassDeclarations(text string) iter.Seq[Match] {
	return scan(classPattern, text)
}

// MethodSignatures returns the method-like signatures in text, in order of
// appearance. Every call starts a new scan from the beginning of text.
func MethodSignatures(text string) iter.Seq[Match] {
	return scan(methodPattern, text)
}

// scan yields non-overlapping matches of re left to right. The cursor lives
// inside the returned sequence, so concurrent or nested scans never share it.
func scan(re *regexp.Regexp, text string) iter.Seq[Match] {
	return func(yield func(Match) bool) {
		pos := 0
		for pos <= len(text) {
			loc := re.FindStringSubmatchIndex(text[pos:])
			if loc == nil {
				return
			}

			m := Match{
				Name:  text[pos+loc[2] : pos+loc[3]],
				Start: pos + loc[0],
				End:   pos + loc[1],
			}
			if !yield(m) {
				return
			}

			// Both patterns consume at least one character, but guard anyway.
			if loc[1] == loc[0] {
				pos += loc[1] + 1
			} else {
				pos += loc[1]
			}
		}
	}
}
