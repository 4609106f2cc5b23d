package llm

import (
	"context"
	"sync"

	"mindcare/support-chat/types"
)

// MockCompleter is a scripted Completer for tests. Each call consumes the
// next entry of Replies/Errors; once exhausted the last entry repeats.
type MockCompleter struct {
	mu       sync.Mutex
	Replies  []string
	Errors   []error
	Requests []CompletionRequest
}

func (m *MockCompleter) Complete(ctx context.Context, req CompletionRequest) (*types.Completion, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	call := len(m.Requests)
	m.Requests = append(m.Requests, req)

	if err := at(m.Errors, call); err != nil {
		return nil, err
	}

	reply := at(m.Replies, call)
	if reply == "" {
		reply = "mock reply"
	}
	return &types.Completion{
		ID:      "mock-completion",
		Object:  "chat.completion",
		Model:   "mock-model",
		Choices: []types.CompletionChoice{{Message: types.ChatMessage{Role: types.RoleAssistant, Content: reply}, FinishReason: "stop"}},
		Source:  types.SourceModel,
	}, nil
}

// Calls returns how many requests were made.
func (m *MockCompleter) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Requests)
}

// LastRequest returns the most recent request.
func (m *MockCompleter) LastRequest() CompletionRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Requests) == 0 {
		return CompletionRequest{}
	}
	return m.Requests[len(m.Requests)-1]
}

func at[T any](items []T, i int) T {
	var zero T
	if len(items) == 0 {
		return zero
	}
	if i >= len(items) {
		return items[len(items)-1]
	}
	return items[i]
}
