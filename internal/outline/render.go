package outline

import (
	"fmt"
	"strings"
)

const (
	noClassesLine = "No classes or methods found in the project.\n"
	noMethodsLine = "_No methods found_\n\n"
)

// boilerplate is appended to every document regardless of input.
const boilerplate = "# How to Use\n\n" +
	"Explain how to use the project here.\n\n" +
	"# How to Contribute\n\n" +
	"Explain how to contribute to the project here.\n\n" +
	"# Additional Information\n\n" +
	"Add any other important information about the project here.\n"

// Render formats classes as a Markdown project overview.
func Render(classes []ClassInfo) string {
	var sb strings.Builder

	sb.WriteString("# Project Overview\n\n")

	if len(classes) == 0 {
		sb.WriteString(noClassesLine)
	}

	for _, cls := range classes {
		sb.WriteString(fmt.Sprintf("## Class: %s\n\n", cls.Name))

		if len(cls.Methods) == 0 {
			sb.WriteString(noMethodsLine)
			continue
		}

		sb.WriteString("### Methods:\n")
		for _, method := range cls.Methods {
			sb.WriteString(fmt.Sprintf("- `%s()`\n", method))
		}
		sb.WriteString("\n")
	}

	sb.WriteString(boilerplate)

	return sb.String()
}
