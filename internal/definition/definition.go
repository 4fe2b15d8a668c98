// Package definition holds the script definition entity: the descriptor the
// scripting host uses to recognize and compile a category of Kotlin DSL file.
package definition

import (
	"fmt"
	"strings"
)

// ScriptDefinition describes one category of build script. Identity is the
// template class plus the template classpath; definition sets are replaced
// wholesale on reload and never mutated in place.
type ScriptDefinition struct {
	// Name is a human-readable label shown in diagnostics.
	Name string

	// TemplateClass is the fully-qualified template class name.
	TemplateClass string

	// Classpath is the ordered list of jars the template was loaded from.
	Classpath []string

	// FilePattern is the script file name pattern this definition claims.
	FilePattern string

	// Scope restricts where the definition applies.
	Scope Scope

	// FailureMessage carries the diagnostic text of the error placeholder.
	// Empty for real definitions; excluded from identity so repeated
	// failures collapse to a single entry.
	FailureMessage string
}

// Key returns the identity of the definition: template class + classpath.
func (d ScriptDefinition) Key() string {
	return d.TemplateClass + "|" + strings.Join(d.Classpath, ":")
}

// String returns a short description of the definition.
func (d ScriptDefinition) String() string {
	return fmt.Sprintf("ScriptDefinition(%s, template=%s, jars=%d)",
		d.Name, d.TemplateClass, len(d.Classpath))
}

// Equals reports whether two definitions have the same identity.
func (d ScriptDefinition) Equals(other ScriptDefinition) bool {
	return d.Key() == other.Key()
}
