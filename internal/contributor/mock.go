package contributor

import "github.com/stretchr/testify/mock"

// Verify that MockReloadRequester implements the ReloadRequester interface
var _ ReloadRequester = (*MockReloadRequester)(nil)

// MockReloadRequester is a mock implementation of the ReloadRequester interface for testing
type MockReloadRequester struct {
	mock.Mock
}

// RequestReload is a mock implementation of the ReloadRequester.RequestReload method
func (m *MockReloadRequester) RequestReload(projectRoot string) {
	m.Called(projectRoot)
}
