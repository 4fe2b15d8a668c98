package scripted

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gradlekit/scriptdefs/internal/definition"
	"github.com/gradlekit/scriptdefs/internal/loader"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const descriptorScript = `
template := ctx.get("template_class", "")

[
    {
        "name": "Scripted definition",
        "class": template,
        "file_pattern": ".*\\.gradle\\.kts",
    },
    {
        "name": "Other template entry",
        "class": "org.example.SomeOtherTemplate",
        "file_pattern": "other",
    },
    {
        "name": "Legacy entry",
        "class": template,
        "file_pattern": ".*\\.gradle\\.kts",
        "legacy_location": "SourcesOnly",
    },
]
`

func testHandler() slog.Handler {
	return slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError})
}

func testRequest() loader.Request {
	return loader.Request{
		TemplateClass: "org.gradle.kotlin.dsl.KotlinBuildScript",
		Classpath:     []string{"/opt/gradle/lib/gradle-kotlin-dsl.jar"},
		Resolver: loader.ResolverConfig{
			GradleHome:  "/opt/gradle",
			ProjectRoot: "/work/app",
			JVMOptions:  []string{"-Xmx2g"},
			Environment: map[string]string{"PATH": "/usr/bin"},
		},
	}
}

func TestNewFromString(t *testing.T) {
	t.Parallel()

	t.Run("compiles a valid descriptor", func(t *testing.T) {
		l, err := NewFromString(testHandler(), descriptorScript)
		require.NoError(t, err)
		assert.NotNil(t, l)
		assert.Equal(t, DefaultEvalTimeout, l.timeout)
	})

	t.Run("rejects a syntactically broken descriptor", func(t *testing.T) {
		_, err := NewFromString(testHandler(), "func {{{")
		assert.Error(t, err)
	})

	t.Run("applies timeout option", func(t *testing.T) {
		l, err := NewFromString(testHandler(), descriptorScript, WithTimeout(5*time.Second))
		require.NoError(t, err)
		assert.Equal(t, 5*time.Second, l.timeout)
	})
}

func TestNewFromFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "definitions.risor")
	require.NoError(t, os.WriteFile(path, []byte(descriptorScript), 0o644))

	l, err := NewFromFile(testHandler(), path)
	require.NoError(t, err)
	assert.NotNil(t, l)
}

func TestLoader_Load(t *testing.T) {
	t.Parallel()

	t.Run("maps descriptor entries to definitions", func(t *testing.T) {
		l, err := NewFromString(testHandler(), descriptorScript)
		require.NoError(t, err)

		req := testRequest()
		loadedDefs, err := l.Load(context.Background(), req)
		require.NoError(t, err)

		// The entry for another template class is filtered out.
		require.Len(t, loadedDefs, 2)

		assert.Equal(t, "Scripted definition", loadedDefs[0].Definition.Name)
		assert.Equal(t, req.TemplateClass, loadedDefs[0].Definition.TemplateClass)
		assert.Equal(t, req.Classpath, loadedDefs[0].Definition.Classpath)
		assert.Equal(t, definition.LegacyLocationNone, loadedDefs[0].Legacy)

		assert.Equal(t, definition.LegacyLocation("SourcesOnly"), loadedDefs[1].Legacy)
	})

	t.Run("entries without a class default to the requested template", func(t *testing.T) {
		l, err := NewFromString(testHandler(), `[{"name": "Defaulted"}]`)
		require.NoError(t, err)

		loadedDefs, err := l.Load(context.Background(), testRequest())
		require.NoError(t, err)
		require.Len(t, loadedDefs, 1)
		assert.Equal(t, testRequest().TemplateClass, loadedDefs[0].Definition.TemplateClass)
	})

	t.Run("non-list result is an error", func(t *testing.T) {
		l, err := NewFromString(testHandler(), `"not a list"`)
		require.NoError(t, err)

		_, err = l.Load(context.Background(), testRequest())
		assert.ErrorContains(t, err, "must return a list")
	})

	t.Run("non-map entry is an error", func(t *testing.T) {
		l, err := NewFromString(testHandler(), `["just a string"]`)
		require.NoError(t, err)

		_, err = l.Load(context.Background(), testRequest())
		assert.ErrorContains(t, err, "must be a map")
	})
}
