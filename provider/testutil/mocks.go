package testutil

import (
	"context"
	"sync"

	"idea2grow/provider"
)

// MockBackend implements provider.Backend for testing. Responses are taken
// from GenerateFunc when set, otherwise from Response/Err.
type MockBackend struct {
	GenerateFunc func(ctx context.Context, req provider.Request) (*provider.Response, error)
	Response     *provider.Response
	Err          error

	BackendName    string
	ModelName      string
	NeedCredential bool

	mu       sync.Mutex
	requests []provider.Request
}

// NewMockBackend creates a credentialed "gemini" mock answering "Mock response".
func NewMockBackend() *MockBackend {
	return &MockBackend{
		Response:       &provider.Response{Text: "Mock response"},
		BackendName:    "gemini",
		ModelName:      "mock-model",
		NeedCredential: true,
	}
}

func (m *MockBackend) Generate(ctx context.Context, req provider.Request) (*provider.Response, error) {
	m.mu.Lock()
	m.requests = append(m.requests, req)
	m.mu.Unlock()

	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, req)
	}
	return m.Response, m.Err
}

func (m *MockBackend) Name() string {
	return m.BackendName
}

func (m *MockBackend) Model() string {
	return m.ModelName
}

func (m *MockBackend) RequiresCredential() bool {
	return m.NeedCredential
}

// Calls returns how many times Generate ran.
func (m *MockBackend) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.requests)
}

// LastRequest returns the most recent request, if any.
func (m *MockBackend) LastRequest() (provider.Request, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.requests) == 0 {
		return provider.Request{}, false
	}
	return m.requests[len(m.requests)-1], true
}

// StaticCredentials implements provider.CredentialProvider from a map.
type StaticCredentials map[string]string

func (s StaticCredentials) APIKey(providerID string) string {
	return s[providerID]
}
