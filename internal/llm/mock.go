package llm

import (
	"context"
	"sync"
)

// MockMessage is what the "mock" provider answers with.
const MockMessage = "Every moment with you is a memory worth keeping."

// MockClient is a test double for the LLM Client interface.
// It can also be used for dry-run mode.
type MockClient struct {
	Response *Response
	Err      error

	// Block, when set, holds Complete until it is closed or ctx ends.
	Block chan struct{}

	mu    sync.Mutex
	Calls []string // records prompts sent
}

// Complete records the call and returns the mock response.
func (m *MockClient) Complete(ctx context.Context, prompt string) (*Response, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, prompt)
	m.mu.Unlock()

	if m.Block != nil {
		select {
		case <-m.Block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return m.Response, m.Err
}

// CallCount returns how many prompts were sent.
func (m *MockClient) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}
