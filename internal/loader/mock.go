package loader

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// Verify that MockLoader implements the TemplateLoader interface
var _ TemplateLoader = (*MockLoader)(nil)

// MockLoader is a mock implementation of the TemplateLoader interface for testing
type MockLoader struct {
	mock.Mock
}

// Load is a mock implementation of the TemplateLoader.Load method
func (m *MockLoader) Load(ctx context.Context, req Request) ([]Loaded, error) {
	args := m.Called(ctx, req)
	if defs := args.Get(0); defs != nil {
		return defs.([]Loaded), args.Error(1)
	}
	return nil, args.Error(1)
}
