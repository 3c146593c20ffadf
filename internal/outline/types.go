// Package outline extracts a structural summary (class names and their method
// names) from raw source text and renders it as a Markdown document.
//
// Extraction is a heuristic over text, not a parser:
//   - Any "class <Name>" occurrence is a declaration, including nested ones.
//   - A class body is the brace span starting at the first '{' after the
//     declaration. Braces inside strings and comments are counted too.
//   - Any "<name>(...) {" inside the body is a method, so control statements
//     such as "if (x) {" are reported as methods.
//
// Nested classes are reported as siblings of their enclosing class.
package outline

// ClassInfo pairs a class name with the method names found in its body,
// in source order. Duplicate method names are kept.
type ClassInfo struct {
	Name    string   `json:"name"`
	Methods []string `json:"methods"`
}

// SourceFile is one file's location and full text.
type SourceFile struct {
	Path string
	Text string
}
