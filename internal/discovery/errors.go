package discovery

import "fmt"

// FailureKind tags the failure modes of a single template discovery attempt.
// Every kind is non-fatal to the host: callers convert failures into the
// error placeholder definition instead of propagating them.
type FailureKind int

const (
	FailureUnspecified FailureKind = iota

	// FailureNotLinked: the project has no installation link.
	FailureNotLinked

	// FailureNoExecutionSettings: the link exists but no execution settings
	// record could be produced.
	FailureNoExecutionSettings

	// FailureNoHomeDirectory: the installation home directory is not configured.
	FailureNoHomeDirectory

	// FailureInvalidLibraryDirectory: the expected lib subdirectory is missing
	// or not a directory.
	FailureInvalidLibraryDirectory

	// FailureNoMatchingJars: the lib directory exists but no jar matches the
	// template's name rule.
	FailureNoMatchingJars

	// FailureLoader: the external loader returned an error.
	FailureLoader
)

// String returns a string representation of the FailureKind.
func (k FailureKind) String() string {
	switch k {
	case FailureNotLinked:
		return "not_linked"
	case FailureNoExecutionSettings:
		return "no_execution_settings"
	case FailureNoHomeDirectory:
		return "no_home_directory"
	case FailureInvalidLibraryDirectory:
		return "invalid_library_directory"
	case FailureNoMatchingJars:
		return "no_matching_jars"
	case FailureLoader:
		return "loader_failure"
	case FailureUnspecified:
		return "unspecified"
	default:
		return fmt.Sprintf("unknown(%d)", int(k))
	}
}

// Failure is the tagged result of a failed discovery attempt.
type Failure struct {
	Kind    FailureKind
	Message string
	Cause   error
}

// Error implements the error interface.
func (f *Failure) Error() string {
	if f.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", f.Kind, f.Message, f.Cause)
	}
	return fmt.Sprintf("%s: %s", f.Kind, f.Message)
}

// Unwrap returns the wrapped cause, if any.
func (f *Failure) Unwrap() error {
	return f.Cause
}

func newFailure(kind FailureKind, format string, args ...any) *Failure {
	return &Failure{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func wrapFailure(kind FailureKind, cause error, format string, args ...any) *Failure {
	return &Failure{Kind: kind, Message: fmt.Sprintf(format, args...), Cause: cause}
}
