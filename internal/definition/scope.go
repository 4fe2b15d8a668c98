package definition

import "fmt"

// Scope restricts which files a definition may claim.
type Scope int

const (
	// ScopeExactMatch applies the definition only to files matching the
	// pattern exactly, regardless of location.
	ScopeExactMatch Scope = iota

	// ScopeProject applies the definition to any matching file inside the
	// project root.
	ScopeProject
)

// String returns a string representation of the Scope.
func (s Scope) String() string {
	switch s {
	case ScopeExactMatch:
		return "exact-match"
	case ScopeProject:
		return "project"
	default:
		return fmt.Sprintf("unknown(%d)", int(s))
	}
}

// LegacyLocation is the old expected-location attribute some templates still
// carry. The modern Scope attribute supersedes it.
type LegacyLocation string

const (
	LegacyLocationNone    LegacyLocation = ""
	LegacyLocationProject LegacyLocation = "Project"
)

// NormalizeLegacy applies the legacy expected-location rule to a loaded
// definition. A definition already restricted to project scope by the legacy
// attribute is superseded by the modern mechanism and dropped (returns false).
// Any other legacy value is rewritten to project scope, widening the
// definition from exact matches to any file within the project.
func NormalizeLegacy(def ScriptDefinition, legacy LegacyLocation) (ScriptDefinition, bool) {
	switch legacy {
	case LegacyLocationNone:
		return def, true
	case LegacyLocationProject:
		return ScriptDefinition{}, false
	default:
		def.Scope = ScopeProject
		return def, true
	}
}
