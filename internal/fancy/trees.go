package fancy

import (
	"fmt"

	"github.com/charmbracelet/lipgloss/tree"
	"github.com/gradlekit/scriptdefs/internal/definition"
)

const maxClasspathEntry = 80

// DefinitionTree renders a definition set as a styled tree rooted at the
// project.
func DefinitionTree(projectRoot string, defs []definition.ScriptDefinition) *tree.Tree {
	t := Tree()
	t.Root(RootStyle.Render(projectRoot))

	count := BranchNode("Script Definitions", fmt.Sprintf("(%d)", len(defs)))
	for _, def := range defs {
		count.Child(definitionNode(def))
	}
	t.Child(count)

	return t
}

// definitionNode renders a single definition, placeholder or real.
func definitionNode(def definition.ScriptDefinition) *tree.Tree {
	if definition.IsPlaceholder(def) {
		node := tree.New().Root(ErrorText("unavailable"))
		node.Child(InfoStyle.Render(def.FailureMessage))
		return node
	}

	node := tree.New().Root(DefinitionText(def.Name))
	node.Child("template: " + TemplateText(def.TemplateClass))
	node.Child("pattern: " + PatternText(def.FilePattern))
	node.Child("scope: " + ScopeText(def.Scope.String()))

	cp := BranchNode("classpath", fmt.Sprintf("(%d)", len(def.Classpath)))
	for _, entry := range def.Classpath {
		cp.Child(PathText(TruncateString(entry, maxClasspathEntry)))
	}
	node.Child(cp)

	return node
}

// ClasspathTree renders the aggregated template classpath of a project.
func ClasspathTree(projectRoot string, entries []string) *tree.Tree {
	t := Tree()
	t.Root(RootStyle.Render(projectRoot))

	cp := BranchNode("Template Classpath", fmt.Sprintf("(%d)", len(entries)))
	for _, entry := range entries {
		cp.Child(PathText(entry))
	}
	t.Child(cp)

	return t
}
