package chatmodel

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"mindcare/support-chat/llm"
	"mindcare/support-chat/sessions"
	"mindcare/support-chat/types"
)

// fixedRand always returns the same draw and index.
type fixedRand struct {
	f float64
	i int
}

func (r fixedRand) Intn(n int) int   { return r.i % n }
func (r fixedRand) Float64() float64 { return r.f }

func user(content string) types.ChatMessage {
	return types.ChatMessage{Role: types.RoleUser, Content: content}
}

func assistant(content string) types.ChatMessage {
	return types.ChatMessage{Role: types.RoleAssistant, Content: content}
}

func newTestTracker(mock *llm.MockCompleter) (*RepetitionTracker, *sessions.MemoryStore) {
	store := sessions.NewMemoryStore(time.Hour, nil)
	return NewRepetitionTracker(store, mock, WithTrackerRandom(fixedRand{})), store
}

func loadState(t *testing.T, store sessions.Store, id string) *types.SessionState {
	t.Helper()
	state, err := store.Get(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, state)
	return state
}
