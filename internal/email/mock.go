package email

import (
	"context"
	"sync"
)

// MockService is a mock email service implementation for testing.
// It stores sent emails in memory for verification in tests.
type MockService struct {
	mu       sync.Mutex
	Messages []Message
	Attempts int
	err      error
}

// NewMockService creates a new mock email service.
func NewMockService() *MockService {
	return &MockService{
		Messages: make([]Message, 0),
	}
}

// FailWith makes every following Send return err without recording the message.
func (s *MockService) FailWith(err error) *MockService {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
	return s
}

// Send records the message, or returns the primed error.
func (s *MockService) Send(_ context.Context, msg *Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Attempts++
	if s.err != nil {
		return s.err
	}
	s.Messages = append(s.Messages, *msg)
	return nil
}

// Reset clears all stored emails. Useful for test cleanup.
func (s *MockService) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Messages = make([]Message, 0)
	s.Attempts = 0
	s.err = nil
}

// GetMessages returns a copy of all messages sent.
func (s *MockService) GetMessages() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	messages := make([]Message, len(s.Messages))
	copy(messages, s.Messages)
	return messages
}

// GetAttempts returns how many times Send was called.
func (s *MockService) GetAttempts() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Attempts
}
