package mock

import (
	"context"
	"strings"

	"github.com/poiesic/docrag/ai"
)

// MockGenerator is a test double for ai.Generator.
// It allows custom behavior injection via function fields.
type MockGenerator struct {
	// IsRelevantFunc is called by IsRelevant if set.
	// If nil, every question is considered relevant.
	IsRelevantFunc func(ctx context.Context, contextText, question string) (bool, error)

	// StreamAnswerFunc is called by StreamAnswer if set.
	// If nil, Tokens are streamed one by one.
	StreamAnswerFunc func(ctx context.Context, contextText, question string, fn ai.TokenFunc) error

	// Tokens is the default token stream for StreamAnswer.
	Tokens []string

	relevantCalls int
	streamCalls   int
}

// NewMockGenerator creates a mock generator that accepts every question and
// streams a small fixed answer.
// Note: Returns concrete type to allow test assertions.
func NewMockGenerator() *MockGenerator {
	return &MockGenerator{
		Tokens: []string{"mock ", "answer"},
	}
}

// IsRelevant reports the scripted relevance decision (default: relevant).
func (m *MockGenerator) IsRelevant(ctx context.Context, contextText, question string) (bool, error) {
	m.relevantCalls++

	if m.IsRelevantFunc != nil {
		return m.IsRelevantFunc(ctx, contextText, question)
	}
	return true, nil
}

// StreamAnswer streams the scripted tokens in order.
func (m *MockGenerator) StreamAnswer(ctx context.Context, contextText, question string, fn ai.TokenFunc) error {
	m.streamCalls++

	if m.StreamAnswerFunc != nil {
		return m.StreamAnswerFunc(ctx, contextText, question, fn)
	}
	for _, token := range m.Tokens {
		if err := fn(ctx, token); err != nil {
			return err
		}
	}
	return nil
}

// Answer returns the concatenation of the scripted tokens.
func (m *MockGenerator) Answer() string {
	return strings.Join(m.Tokens, "")
}

// RelevantCalls returns how many times IsRelevant was called.
func (m *MockGenerator) RelevantCalls() int {
	return m.relevantCalls
}

// StreamCalls returns how many times StreamAnswer was called.
func (m *MockGenerator) StreamCalls() int {
	return m.streamCalls
}

// Reset clears call counts and injected behavior.
func (m *MockGenerator) Reset() {
	m.relevantCalls = 0
	m.streamCalls = 0
	m.IsRelevantFunc = nil
	m.StreamAnswerFunc = nil
}
