package llm

import (
	"context"
	"sync"
)

// MockClient is a canned-response Client for tests and local development
// without a Gemini credential.
type MockClient struct {
	mu       sync.Mutex
	Response string
	Err      error
	calls    int
}

func (m *MockClient) Generate(_ context.Context, _ GenerateRequest) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.Err != nil {
		return "", m.Err
	}
	return m.Response, nil
}

func (m *MockClient) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}
