package settings

import "github.com/stretchr/testify/mock"

// Verify that MockProvider implements the Provider interface
var _ Provider = (*MockProvider)(nil)

// MockProvider is a mock implementation of the Provider interface for testing
type MockProvider struct {
	mock.Mock
}

func (m *MockProvider) Linked(projectRoot string) bool {
	args := m.Called(projectRoot)
	return args.Bool(0)
}

func (m *MockProvider) ExecutionSettings(projectRoot string) (*Settings, error) {
	args := m.Called(projectRoot)
	if s := args.Get(0); s != nil {
		return s.(*Settings), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProvider) SyncInProgress(projectRoot string) bool {
	args := m.Called(projectRoot)
	return args.Bool(0)
}
