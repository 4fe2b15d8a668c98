// Package discovery locates template support jars in a Gradle installation and
// asks the external loader to materialize script definitions from them.
//
// Every failure mode is returned as a tagged Failure value; nothing panics and
// nothing escapes to abort the host's broader pipeline.
package discovery

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gradlekit/scriptdefs/internal/definition"
	"github.com/gradlekit/scriptdefs/internal/loader"
	"github.com/gradlekit/scriptdefs/internal/settings"
)

// Discover runs the full precondition chain for one template class and, on
// success, delegates to the loader and applies the legacy-scope normalization
// to every loaded definition.
func Discover(
	ctx context.Context,
	provider settings.Provider,
	ldr loader.TemplateLoader,
	projectRoot string,
	tmpl Template,
) ([]definition.ScriptDefinition, *Failure) {
	logger := slog.Default().WithGroup("discovery").With(
		"template", tmpl.Class,
		"project", projectRoot,
	)

	if !provider.Linked(projectRoot) {
		return nil, newFailure(FailureNotLinked,
			"project %s is not linked to a Gradle installation", projectRoot)
	}

	execSettings, err := provider.ExecutionSettings(projectRoot)
	if err != nil {
		return nil, wrapFailure(FailureNoExecutionSettings, err,
			"no execution settings for project %s", projectRoot)
	}

	if execSettings.GradleHome == "" {
		return nil, newFailure(FailureNoHomeDirectory,
			"Gradle home directory is not configured for project %s", projectRoot)
	}

	libDir := filepath.Join(execSettings.GradleHome, libDirName)
	info, err := os.Stat(libDir)
	if err != nil || !info.IsDir() {
		return nil, newFailure(FailureInvalidLibraryDirectory,
			"invalid Gradle library directory %s", libDir)
	}

	jars, err := matchJars(libDir, tmpl.JarRule)
	if err != nil {
		return nil, wrapFailure(FailureInvalidLibraryDirectory, err,
			"failed to scan Gradle library directory %s", libDir)
	}
	if len(jars) == 0 {
		return nil, newFailure(FailureNoMatchingJars,
			"no jars matching %q in %s", tmpl.JarRule, libDir)
	}

	supplementary, err := matchJars(libDir, tmpl.SupplementaryRule)
	if err != nil {
		return nil, wrapFailure(FailureInvalidLibraryDirectory, err,
			"failed to scan Gradle library directory %s", libDir)
	}

	req := loader.Request{
		TemplateClass:          tmpl.Class,
		Classpath:              jars,
		Resolver:               BuildResolverConfig(execSettings),
		SupplementaryClasspath: supplementary,
	}

	loaded, err := ldr.Load(ctx, req)
	if err != nil {
		logger.Debug("Template loader failed", "error", err)
		return nil, wrapFailure(FailureLoader, err,
			"failed to load template %s", tmpl.Class)
	}

	defs := make([]definition.ScriptDefinition, 0, len(loaded))
	for _, l := range loaded {
		def, keep := definition.NormalizeLegacy(l.Definition, l.Legacy)
		if !keep {
			logger.Debug("Dropping definition superseded by legacy project scope",
				"definition", l.Definition.TemplateClass)
			continue
		}
		defs = append(defs, def)
	}

	return definition.Dedupe(defs), nil
}

// BuildResolverConfig derives the loader's resolver configuration from a
// settings snapshot.
func BuildResolverConfig(s *settings.Settings) loader.ResolverConfig {
	return loader.ResolverConfig{
		GradleHome:  s.GradleHome,
		JavaHome:    s.JavaHome,
		ProjectRoot: s.ProjectRoot,
		JVMOptions:  s.DaemonVMOptionTokens(),
		Environment: environmentFor(s),
	}
}

// environmentFor returns the full process environment when the installation
// inherits it, otherwise an empty map.
func environmentFor(s *settings.Settings) map[string]string {
	env := map[string]string{}
	if !s.InheritEnv {
		return env
	}
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok {
			env[k] = v
		}
	}
	return env
}

// PlaceholderMessage resolves the user-visible message for a failure. A sync
// in progress takes priority over whatever the failure recorded.
func PlaceholderMessage(provider settings.Provider, projectRoot string, f *Failure) string {
	if provider.SyncInProgress(projectRoot) {
		return "Gradle sync is in progress; script definitions will be reloaded when it completes"
	}
	if f == nil {
		return "script definition discovery failed"
	}
	return f.Message
}
