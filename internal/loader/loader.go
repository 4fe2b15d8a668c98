// Package loader defines the contract between script definition discovery and
// the external template-to-definition loader.
package loader

import (
	"context"
	"fmt"

	"github.com/gradlekit/scriptdefs/internal/definition"
)

// ResolverConfig captures the installation state a loader needs to materialize
// definitions from a template classpath.
type ResolverConfig struct {
	// GradleHome is the root of the Gradle distribution.
	GradleHome string

	// JavaHome is the JVM home used by the daemon.
	JavaHome string

	// ProjectRoot is the linked project's root directory.
	ProjectRoot string

	// JVMOptions are the tokenized daemon JVM options (blanks and duplicates
	// already removed).
	JVMOptions []string

	// Environment is the environment map passed to the daemon: the full
	// process environment when the installation inherits it, empty otherwise.
	Environment map[string]string
}

// Request describes one template load.
type Request struct {
	// TemplateClass is the fully-qualified template class to materialize.
	TemplateClass string

	// Classpath is the list of matched template support jars.
	Classpath []string

	// Resolver is the configuration snapshot for this load.
	Resolver ResolverConfig

	// SupplementaryClasspath holds additional entries computed from the
	// installation's library directory.
	SupplementaryClasspath []string
}

// String returns a short description of the request.
func (r Request) String() string {
	return fmt.Sprintf("Request(template=%s, jars=%d)", r.TemplateClass, len(r.Classpath))
}

// Loaded is one definition produced by a loader, together with the legacy
// expected-location attribute the template may still carry. Discovery applies
// the legacy-scope normalization; loaders report the raw attribute only.
type Loaded struct {
	Definition definition.ScriptDefinition
	Legacy     definition.LegacyLocation
}

// TemplateLoader materializes script definitions from a template classpath.
// Implementations may block on file or script evaluation; cancellation is the
// caller's context.
type TemplateLoader interface {
	Load(ctx context.Context, req Request) ([]Loaded, error)
}
