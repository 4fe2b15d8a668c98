package settings

import "errors"

// Sentinel errors for settings loading and validation
var (
	// ErrNoProjectRoot is returned when a settings record has no project root
	ErrNoProjectRoot = errors.New("settings record has no project root")

	// ErrInvalidDistributionType is returned for an unknown distribution type value
	ErrInvalidDistributionType = errors.New("invalid distribution type")

	// ErrUnsupportedVersion is returned when the settings file declares an unknown version
	ErrUnsupportedVersion = errors.New("unsupported settings file version")

	// ErrProjectNotLinked is returned when no settings record matches the requested project
	ErrProjectNotLinked = errors.New("project is not linked to a Gradle installation")
)
