package contributor

import (
	"context"
	"testing"

	"github.com/gradlekit/scriptdefs/internal/definition"
	"github.com/gradlekit/scriptdefs/internal/loader"
	"github.com/gradlekit/scriptdefs/internal/settings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestContributor(t *testing.T, projectRoot string, loaded []loader.Loaded) *Contributor {
	t.Helper()

	home := newGradleHome(t, "gradle-kotlin-dsl-8.7.jar")
	provider := &settings.MockProvider{}
	provider.On("Linked", projectRoot).Return(true)
	provider.On("ExecutionSettings", projectRoot).Return(&settings.Settings{
		ProjectRoot: projectRoot,
		GradleHome:  home,
	}, nil)
	provider.On("SyncInProgress", projectRoot).Return(false).Maybe()

	ldr := &loader.MockLoader{}
	ldr.On("Load", mock.Anything, mock.Anything).Return(loaded, nil)

	c, err := New(projectRoot, provider, ldr, &MockReloadRequester{})
	require.NoError(t, err)
	return c
}

func TestRegistry(t *testing.T) {
	t.Parallel()

	t.Run("register and lookup", func(t *testing.T) {
		r := NewRegistry()
		c := newTestContributor(t, "/work/app", nil)

		require.NoError(t, r.Register(c))

		got, ok := r.Lookup("/work/app")
		assert.True(t, ok)
		assert.Same(t, c, got)

		_, ok = r.Lookup("/work/other")
		assert.False(t, ok)
	})

	t.Run("duplicate registration rejected", func(t *testing.T) {
		r := NewRegistry()
		c := newTestContributor(t, "/work/app", nil)

		require.NoError(t, r.Register(c))
		assert.Error(t, r.Register(c))
	})

	t.Run("nil contributor rejected", func(t *testing.T) {
		assert.Error(t, NewRegistry().Register(nil))
	})

	t.Run("unregister", func(t *testing.T) {
		r := NewRegistry()
		c := newTestContributor(t, "/work/app", nil)
		require.NoError(t, r.Register(c))

		r.Unregister("/work/app")
		_, ok := r.Lookup("/work/app")
		assert.False(t, ok)
	})
}

func TestRegistry_Range(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	require.NoError(t, r.Register(newTestContributor(t, "/work/app", nil)))
	require.NoError(t, r.Register(newTestContributor(t, "/work/library", nil)))

	t.Run("visits every contributor", func(t *testing.T) {
		seen := map[string]bool{}
		r.Range(func(c *Contributor) bool {
			seen[c.ProjectRoot()] = true
			return true
		})
		assert.Equal(t, map[string]bool{"/work/app": true, "/work/library": true}, seen)
	})

	t.Run("stops when fn returns false", func(t *testing.T) {
		visits := 0
		r.Range(func(c *Contributor) bool {
			visits++
			return false
		})
		assert.Equal(t, 1, visits)
	})
}

func TestRegistry_DefinitionsForProject(t *testing.T) {
	t.Parallel()

	loaded := []loader.Loaded{{
		Definition: definition.ScriptDefinition{
			TemplateClass: "org.gradle.kotlin.dsl.KotlinBuildScript",
			Classpath:     []string{"/lib/a.jar", "/lib/b.jar"},
		},
	}}

	r := NewRegistry()
	require.NoError(t, r.Register(newTestContributor(t, "/work/app", loaded)))

	t.Run("delegates to the registered contributor", func(t *testing.T) {
		defs, err := r.DefinitionsForProject(context.Background(), "/work/app")
		require.NoError(t, err)
		require.Len(t, defs, 1)
		assert.Equal(t, "org.gradle.kotlin.dsl.KotlinBuildScript", defs[0].TemplateClass)
	})

	t.Run("unknown project is an error", func(t *testing.T) {
		_, err := r.DefinitionsForProject(context.Background(), "/work/unknown")
		assert.Error(t, err)
	})

	t.Run("aggregate template classpath", func(t *testing.T) {
		cp, err := r.AggregateTemplateClasspath(context.Background(), "/work/app")
		require.NoError(t, err)
		assert.Equal(t, []string{"/lib/a.jar", "/lib/b.jar"}, cp)
	})

	t.Run("aggregate classpath for unknown project is an error", func(t *testing.T) {
		_, err := r.AggregateTemplateClasspath(context.Background(), "/work/unknown")
		assert.Error(t, err)
	})
}
