package email

import (
	"context"
	"sync"
)

// MockProvider keeps sent messages in memory.
type MockProvider struct {
	mu   sync.Mutex
	sent []Email
	// Err, when set, is returned by Send.
	Err error
}

func NewMockProvider() *MockProvider {
	return &MockProvider{}
}

func (p *MockProvider) Send(_ context.Context, email *Email) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Err != nil {
		return p.Err
	}
	p.sent = append(p.sent, *email)
	return nil
}

func (p *MockProvider) Validate() error {
	return nil
}

func (p *MockProvider) Sent() []Email {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]Email, len(p.sent))
	copy(out, p.sent)
	return out
}
