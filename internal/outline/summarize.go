package outline

// Summarize extracts classes from files in order and renders the document.
// The same files in the same order always produce the same document.
func Summarize(files []SourceFile) string {
	return Render(Extract(files))
}
