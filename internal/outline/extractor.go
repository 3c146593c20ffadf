package outline

// constructorName is never reported as a method.
const constructorName = "constructor"

// ExtractClasses returns one ClassInfo per class declaration in text whose
// body could be resolved, in order of appearance.
func ExtractClasses(text string) []ClassInfo {
	var classes []ClassInfo

	for decl := range ClassDeclarations(text) {
		span, ok := ResolveBodySpan(text, decl.Start)
		if !ok {
			// "class Foo" with no body anywhere after it
			continue
		}

		classes = append(classes, ClassInfo{
			Name:    decl.Name,
			Methods: extractMethods(span.Text(text)),
		})
	}

	return classes
}

// extractMethods lists the method names in a class body, skipping constructors.
func extractMethods(body string) []string {
	methods := []string{}
	for sig := range MethodSignatures(body) {
		if sig.Name == constructorName {
			continue
		}
		methods = append(methods, sig.Name)
	}
	return methods
}

// Extract runs ExtractClasses over each file and aggregates the results.
func Extract(files []SourceFile) []ClassInfo {
	perFile := make([][]ClassInfo, len(files))
	for i, f := range files {
		perFile[i] = ExtractClasses(f.Text)
	}
	return Aggregate(perFile)
}

// Aggregate concatenates per-file extraction results in file order. Classes
// with the same name in different files stay separate entries.
func Aggregate(perFile [][]ClassInfo) []ClassInfo {
	var classes []ClassInfo
	for _, fileClasses := range perFile {
		classes = append(classes, fileClasses...)
	}
	return classes
}
