package settings

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/gradlekit/scriptdefs/internal/interpolation"
	"github.com/pelletier/go-toml/v2"
)

// File is the top-level shape of the scriptdefs settings file. One file may
// link several projects, each with its own installation record.
type File struct {
	Version  string     `toml:"version"`
	Projects []Settings `toml:"projects"`
}

// FromFile loads a settings file from disk.
func FromFile(filePath string) (*File, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}
	return FromBytes(data)
}

// FromReader loads a settings file from an io.Reader providing TOML data.
func FromReader(reader io.Reader) (*File, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read settings data from reader: %w", err)
	}
	return FromBytes(data)
}

// FromBytes parses TOML settings data.
func FromBytes(data []byte) (*File, error) {
	var file File
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse TOML settings: %w", err)
	}

	if file.Version == "" {
		file.Version = "v1"
	}
	if file.Version != "v1" {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedVersion, file.Version)
	}

	if err := interpolation.InterpolateStruct(&file); err != nil {
		return nil, fmt.Errorf("failed to interpolate settings: %w", err)
	}

	return &file, nil
}

// Validate checks every project record in the file.
func (f *File) Validate() error {
	var errs []error
	for i := range f.Projects {
		if err := f.Projects[i].Validate(); err != nil {
			errs = append(errs, fmt.Errorf("project at index %d: %w", i, err))
		}
	}
	return errors.Join(errs...)
}

// Project returns the settings record linked to the given project root.
func (f *File) Project(projectRoot string) (*Settings, bool) {
	for i := range f.Projects {
		if f.Projects[i].ProjectRoot == projectRoot {
			return &f.Projects[i], true
		}
	}
	return nil, false
}
