// Package settings models the linked Gradle installation for a project and
// loads it from the scriptdefs TOML settings file.
package settings

import (
	"errors"
	"fmt"
	"strings"
)

// DistributionType describes how the Gradle distribution was provisioned.
type DistributionType string

const (
	DistributionLocal   DistributionType = "local"
	DistributionWrapper DistributionType = "wrapper"
	DistributionBundled DistributionType = "bundled"
)

// Settings is the installation record for a single linked project. It is a
// snapshot: callers re-read it before every discovery pass and never mutate it.
type Settings struct {
	// ProjectRoot is the absolute path of the linked project.
	ProjectRoot string `toml:"project_root"`

	// GradleHome is the root of the Gradle distribution on disk.
	GradleHome string `toml:"gradle_home"      env_interpolation:"yes"`

	// JavaHome is the JVM used to run the Gradle daemon.
	JavaHome string `toml:"java_home"         env_interpolation:"yes"`

	// ServiceDirectory is the Gradle user home (caches, daemon registry).
	ServiceDirectory string `toml:"service_directory" env_interpolation:"yes"`

	// DistributionType records how the distribution was provisioned.
	DistributionType DistributionType `toml:"distribution_type"`

	// DaemonVMOptions is the raw, space-separated daemon JVM options string.
	DaemonVMOptions string `toml:"daemon_vm_options" env_interpolation:"yes"`

	// InheritEnv controls whether the daemon inherits the parent process environment.
	InheritEnv bool `toml:"inherit_env"`

	// SyncInProgress is set while an import/sync of the project is running.
	SyncInProgress bool `toml:"sync_in_progress"`
}

// Validate checks the settings record for structural problems.
func (s *Settings) Validate() error {
	var errs []error

	if s.ProjectRoot == "" {
		errs = append(errs, ErrNoProjectRoot)
	}

	switch s.DistributionType {
	case DistributionLocal, DistributionWrapper, DistributionBundled, "":
	default:
		errs = append(errs, fmt.Errorf("%w: %q", ErrInvalidDistributionType, s.DistributionType))
	}

	return errors.Join(errs...)
}

// Equals reports whether two settings snapshots are identical.
func (s *Settings) Equals(other *Settings) bool {
	if s == nil || other == nil {
		return s == other
	}
	return *s == *other
}

// String returns a short description of the settings record.
func (s *Settings) String() string {
	if s == nil {
		return "Settings(nil)"
	}
	return fmt.Sprintf("Settings(project=%s, home=%s, dist=%s)",
		s.ProjectRoot, s.GradleHome, s.DistributionType)
}

// DaemonVMOptionTokens splits DaemonVMOptions on whitespace, removing blank
// entries and duplicates while preserving first-seen order.
func (s *Settings) DaemonVMOptionTokens() []string {
	fields := strings.Fields(s.DaemonVMOptions)
	if len(fields) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(fields))
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if _, dup := seen[f]; dup {
			continue
		}
		seen[f] = struct{}{}
		tokens = append(tokens, f)
	}
	return tokens
}
