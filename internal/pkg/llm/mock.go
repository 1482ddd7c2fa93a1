package llm

import (
	"context"
	"errors"
	"sync"
)

// MockModel is an in-memory Model. With no canned responses it behaves like a model
// that never produces output, which lets the service run without an API key.
type MockModel struct {
	mu sync.Mutex

	// Objects maps a schema name to the raw JSON returned for it.
	Objects map[string][]byte
	// ObjectErr, when set, is returned by every GenerateObject call.
	ObjectErr error
	// Image is returned by GenerateImage; nil yields an error.
	Image *Image

	requests []Request
	images   []string
}

// NewMockModel returns an empty MockModel.
func NewMockModel() *MockModel {
	return &MockModel{Objects: map[string][]byte{}}
}

// GenerateObject implements Model.
func (m *MockModel) GenerateObject(_ context.Context, req Request) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests = append(m.requests, req)
	if m.ObjectErr != nil {
		return nil, m.ObjectErr
	}
	if req.Schema == nil {
		return nil, nil
	}
	return m.Objects[req.Schema.Name], nil
}

// GenerateImage implements Model.
func (m *MockModel) GenerateImage(_ context.Context, prompt string) (*Image, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.images = append(m.images, prompt)
	if m.Image == nil {
		return nil, errors.New("mock model has no image")
	}
	return m.Image, nil
}

// Requests returns the structured requests received so far.
func (m *MockModel) Requests() []Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Request(nil), m.requests...)
}

// ImagePrompts returns the image prompts received so far.
func (m *MockModel) ImagePrompts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.images...)
}

// Calls is the total number of model invocations.
func (m *MockModel) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.requests) + len(m.images)
}
