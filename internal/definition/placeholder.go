package definition

// placeholderTemplateClass is the reserved template class of the error
// placeholder. It can never collide with a real template because "<" is not
// valid in a class name.
const placeholderTemplateClass = "<error-placeholder>"

// NewPlaceholder builds the error placeholder definition standing in for a
// failed discovery pass. The message is diagnostic only: placeholders compare
// equal by type, so repeated failures collapse to one cached entry.
func NewPlaceholder(message string) ScriptDefinition {
	return ScriptDefinition{
		Name:           "Gradle script definitions unavailable",
		TemplateClass:  placeholderTemplateClass,
		FailureMessage: message,
	}
}

// IsPlaceholder reports whether the definition is the error placeholder.
func IsPlaceholder(def ScriptDefinition) bool {
	return def.TemplateClass == placeholderTemplateClass
}
