package jarmanifest

import (
	"archive/zip"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/gradlekit/scriptdefs/internal/definition"
	"github.com/gradlekit/scriptdefs/internal/loader"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const buildScriptClass = "org.gradle.kotlin.dsl.KotlinBuildScript"

// writeJar creates a zip file with the given entries (name -> content).
func writeJar(t *testing.T, dir, name string, entries map[string]string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)

	w := zip.NewWriter(f)
	for entryName, content := range entries {
		entry, err := w.Create(entryName)
		require.NoError(t, err)
		_, err = entry.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	require.NoError(t, f.Close())
	return path
}

func newLoader() *Loader {
	return New(slog.NewTextHandler(os.Stderr, nil))
}

func TestLoader_Load(t *testing.T) {
	t.Parallel()

	manifestTOML := `
[[templates]]
name = "Gradle build script"
class = "org.gradle.kotlin.dsl.KotlinBuildScript"
file_pattern = '.*\.gradle\.kts'

[[templates]]
name = "Gradle settings script"
class = "org.gradle.kotlin.dsl.KotlinSettingsScript"
file_pattern = 'settings\.gradle\.kts'
legacy_location = "SourcesOnly"
`

	t.Run("returns definitions matching the requested template class", func(t *testing.T) {
		dir := t.TempDir()
		jar := writeJar(t, dir, "gradle-kotlin-dsl.jar", map[string]string{
			ManifestPath: manifestTOML,
		})

		loaded, err := newLoader().Load(context.Background(), loader.Request{
			TemplateClass: buildScriptClass,
			Classpath:     []string{jar},
		})
		require.NoError(t, err)
		require.Len(t, loaded, 1)

		assert.Equal(t, buildScriptClass, loaded[0].Definition.TemplateClass)
		assert.Equal(t, "Gradle build script", loaded[0].Definition.Name)
		assert.Equal(t, []string{jar}, loaded[0].Definition.Classpath)
		assert.Equal(t, definition.LegacyLocationNone, loaded[0].Legacy)
	})

	t.Run("reports the legacy location attribute", func(t *testing.T) {
		dir := t.TempDir()
		jar := writeJar(t, dir, "gradle-kotlin-dsl.jar", map[string]string{
			ManifestPath: manifestTOML,
		})

		loaded, err := newLoader().Load(context.Background(), loader.Request{
			TemplateClass: "org.gradle.kotlin.dsl.KotlinSettingsScript",
			Classpath:     []string{jar},
		})
		require.NoError(t, err)
		require.Len(t, loaded, 1)
		assert.Equal(t, definition.LegacyLocation("SourcesOnly"), loaded[0].Legacy)
	})

	t.Run("jars without a manifest are skipped", func(t *testing.T) {
		dir := t.TempDir()
		plain := writeJar(t, dir, "gradle-core.jar", map[string]string{
			"org/gradle/Placeholder.class": "bytecode",
		})
		withManifest := writeJar(t, dir, "gradle-kotlin-dsl.jar", map[string]string{
			ManifestPath: manifestTOML,
		})

		loaded, err := newLoader().Load(context.Background(), loader.Request{
			TemplateClass: buildScriptClass,
			Classpath:     []string{plain, withManifest},
		})
		require.NoError(t, err)
		assert.Len(t, loaded, 1)
	})

	t.Run("no manifests yields zero definitions without error", func(t *testing.T) {
		dir := t.TempDir()
		jar := writeJar(t, dir, "gradle-core.jar", map[string]string{"a": "b"})

		loaded, err := newLoader().Load(context.Background(), loader.Request{
			TemplateClass: buildScriptClass,
			Classpath:     []string{jar},
		})
		require.NoError(t, err)
		assert.Empty(t, loaded)
	})

	t.Run("corrupt jar is an error", func(t *testing.T) {
		dir := t.TempDir()
		notAJar := filepath.Join(dir, "broken.jar")
		require.NoError(t, os.WriteFile(notAJar, []byte("not a zip"), 0o644))

		_, err := newLoader().Load(context.Background(), loader.Request{
			TemplateClass: buildScriptClass,
			Classpath:     []string{notAJar},
		})
		assert.Error(t, err)
	})

	t.Run("malformed manifest is an error", func(t *testing.T) {
		dir := t.TempDir()
		jar := writeJar(t, dir, "gradle-kotlin-dsl.jar", map[string]string{
			ManifestPath: "templates = ",
		})

		_, err := newLoader().Load(context.Background(), loader.Request{
			TemplateClass: buildScriptClass,
			Classpath:     []string{jar},
		})
		assert.Error(t, err)
	})

	t.Run("canceled context stops the scan", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		dir := t.TempDir()
		jar := writeJar(t, dir, "gradle-kotlin-dsl.jar", map[string]string{ManifestPath: manifestTOML})

		_, err := newLoader().Load(ctx, loader.Request{
			TemplateClass: buildScriptClass,
			Classpath:     []string{jar},
		})
		assert.ErrorIs(t, err, context.Canceled)
	})
}
