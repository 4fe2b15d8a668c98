// Package jarmanifest loads script definitions from a manifest entry shipped
// inside the template support jars.
//
// Each jar may carry a META-INF/script-templates.toml entry listing the
// templates it provides. The loader reads the manifests of every jar on the
// request classpath and returns the definitions matching the requested
// template class. Jars without a manifest are skipped.
package jarmanifest

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"

	"github.com/gradlekit/scriptdefs/internal/definition"
	"github.com/gradlekit/scriptdefs/internal/loader"
	"github.com/pelletier/go-toml/v2"
)

// ManifestPath is the jar entry holding the template manifest.
const ManifestPath = "META-INF/script-templates.toml"

var _ loader.TemplateLoader = (*Loader)(nil)

// manifest is the TOML shape of a jar's template manifest.
type manifest struct {
	Templates []manifestEntry `toml:"templates"`
}

type manifestEntry struct {
	Name           string `toml:"name"`
	Class          string `toml:"class"`
	FilePattern    string `toml:"file_pattern"`
	LegacyLocation string `toml:"legacy_location"`
}

// Loader reads definition manifests out of jar files.
type Loader struct {
	logger *slog.Logger
}

// New creates a jar manifest loader.
func New(handler slog.Handler) *Loader {
	return &Loader{
		logger: slog.New(handler).WithGroup("jarmanifest.Loader"),
	}
}

// Load implements the loader.TemplateLoader interface.
func (l *Loader) Load(ctx context.Context, req loader.Request) ([]loader.Loaded, error) {
	var loaded []loader.Loaded

	for _, jarPath := range req.Classpath {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		entries, err := l.readManifest(jarPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read manifest from %s: %w", jarPath, err)
		}

		for _, entry := range entries {
			if entry.Class != req.TemplateClass {
				continue
			}
			loaded = append(loaded, loader.Loaded{
				Definition: definition.ScriptDefinition{
					Name:          entry.Name,
					TemplateClass: entry.Class,
					Classpath:     req.Classpath,
					FilePattern:   entry.FilePattern,
				},
				Legacy: definition.LegacyLocation(entry.LegacyLocation),
			})
		}
	}

	return loaded, nil
}

// readManifest returns the manifest entries of one jar, or nil when the jar
// carries no manifest.
func (l *Loader) readManifest(jarPath string) ([]manifestEntry, error) {
	reader, err := zip.OpenReader(jarPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open jar: %w", err)
	}
	defer func() {
		if err := reader.Close(); err != nil {
			l.logger.Warn("Failed to close jar", "jar", jarPath, "error", err)
		}
	}()

	file, err := reader.Open(ManifestPath)
	if errors.Is(err, fs.ErrNotExist) {
		// No manifest entry in this jar.
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open manifest entry: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			l.logger.Warn("Failed to close manifest entry", "jar", jarPath, "error", err)
		}
	}()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest entry: %w", err)
	}

	var m manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}

	return m.Templates, nil
}
