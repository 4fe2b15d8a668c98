package contributor

import (
	"context"
	"fmt"
	"sync"

	"github.com/gradlekit/scriptdefs/internal/definition"
)

// Registry maps project identity to its contributor instance. Callers pass
// the project root explicitly; there is no ambient lookup.
type Registry struct {
	mu           sync.RWMutex
	contributors map[string]*Contributor
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		contributors: make(map[string]*Contributor),
	}
}

// Register adds the contributor for its project, rejecting duplicates.
func (r *Registry) Register(c *Contributor) error {
	if c == nil {
		return fmt.Errorf("contributor cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	root := c.ProjectRoot()
	if _, exists := r.contributors[root]; exists {
		return fmt.Errorf("contributor already registered for project %s", root)
	}
	r.contributors[root] = c
	return nil
}

// Unregister removes the contributor for the project.
func (r *Registry) Unregister(projectRoot string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.contributors, projectRoot)
}

// Lookup returns the contributor registered for the project.
func (r *Registry) Lookup(projectRoot string) (*Contributor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.contributors[projectRoot]
	return c, ok
}

// Range calls fn for each registered contributor until fn returns false.
func (r *Registry) Range(fn func(c *Contributor) bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, c := range r.contributors {
		if !fn(c) {
			return
		}
	}
}

// DefinitionsForProject returns all definitions for the project by delegating
// to its registered contributor.
func (r *Registry) DefinitionsForProject(
	ctx context.Context,
	projectRoot string,
) ([]definition.ScriptDefinition, error) {
	c, ok := r.Lookup(projectRoot)
	if !ok {
		return nil, fmt.Errorf("no contributor registered for project %s", projectRoot)
	}
	return c.Definitions(ctx), nil
}

// AggregateTemplateClasspath returns the flattened, set-deduplicated template
// classpath across all definitions of the project.
func (r *Registry) AggregateTemplateClasspath(
	ctx context.Context,
	projectRoot string,
) ([]string, error) {
	defs, err := r.DefinitionsForProject(ctx, projectRoot)
	if err != nil {
		return nil, err
	}
	return definition.AggregateClasspath(defs), nil
}
