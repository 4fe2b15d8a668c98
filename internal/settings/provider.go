package settings

import "fmt"

// Provider yields the installation settings for a project. Implementations
// must return a fresh snapshot on every call; discovery never caches settings.
type Provider interface {
	// Linked reports whether the project has a Gradle installation link at all.
	Linked(projectRoot string) bool

	// ExecutionSettings returns the installation record for the project, or an
	// error when the link exists but the record cannot be produced.
	ExecutionSettings(projectRoot string) (*Settings, error)

	// SyncInProgress reports whether a project import/sync is currently running.
	SyncInProgress(projectRoot string) bool
}

var _ Provider = (*FileProvider)(nil)

// FileProvider reads the settings file from disk on every call.
type FileProvider struct {
	filePath string
}

// NewFileProvider creates a Provider backed by the given settings file path.
func NewFileProvider(filePath string) *FileProvider {
	return &FileProvider{filePath: filePath}
}

func (p *FileProvider) Linked(projectRoot string) bool {
	file, err := FromFile(p.filePath)
	if err != nil {
		return false
	}
	_, ok := file.Project(projectRoot)
	return ok
}

func (p *FileProvider) ExecutionSettings(projectRoot string) (*Settings, error) {
	file, err := FromFile(p.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	s, ok := file.Project(projectRoot)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrProjectNotLinked, projectRoot)
	}

	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings for %s: %w", projectRoot, err)
	}

	// Return a copy so callers cannot mutate the loaded record.
	snapshot := *s
	return &snapshot, nil
}

func (p *FileProvider) SyncInProgress(projectRoot string) bool {
	file, err := FromFile(p.filePath)
	if err != nil {
		return false
	}
	s, ok := file.Project(projectRoot)
	return ok && s.SyncInProgress
}
