package sessions

import (
	"context"
	"sync"
	"time"

	"mindcare/support-chat/types"
)

type memoryEntry struct {
	state     *types.SessionState
	expiresAt time.Time
}

// MemoryStore keeps sessions in process memory with idle expiry.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]memoryEntry
	ttl      time.Duration
	now      func() time.Time
}

func NewMemoryStore(ttl time.Duration, now func() time.Time) *MemoryStore {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	if now == nil {
		now = time.Now
	}
	return &MemoryStore{
		sessions: make(map[string]memoryEntry),
		ttl:      ttl,
		now:      now,
	}
}

// Get implements Store. Returns a copy so callers can mutate freely.
func (s *MemoryStore) Get(ctx context.Context, id string) (*types.SessionState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.sessions[id]
	if !ok || !s.now().Before(entry.expiresAt) {
		return nil, nil
	}
	return cloneState(entry.state), nil
}

// Put implements Store.
func (s *MemoryStore) Put(ctx context.Context, state *types.SessionState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	stored := cloneState(state)
	stored.UpdatedAt = now
	state.UpdatedAt = now
	s.sessions[state.ID] = memoryEntry{state: stored, expiresAt: now.Add(s.ttl)}
	return nil
}

// Delete implements Store.
func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, id)
	return nil
}

// Close implements Store.
func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions = make(map[string]memoryEntry)
	return nil
}

// Sweep removes expired sessions and returns how many were dropped.
func (s *MemoryStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for id, entry := range s.sessions {
		if !now.Before(entry.expiresAt) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// Len returns the number of stored sessions, expired ones included.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// StartJanitor sweeps expired sessions every interval until ctx is done.
func (s *MemoryStore) StartJanitor(ctx context.Context, interval time.Duration, onSweep func(removed int)) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if removed := s.Sweep(); removed > 0 && onSweep != nil {
					onSweep(removed)
				}
			}
		}
	}()
}

func cloneState(state *types.SessionState) *types.SessionState {
	out := *state
	out.MessageCounts = make(map[string]int, len(state.MessageCounts))
	for k, v := range state.MessageCounts {
		out.MessageCounts[k] = v
	}
	out.UsedResponses = make(map[string][]string, len(state.UsedResponses))
	for k, v := range state.UsedResponses {
		out.UsedResponses[k] = append([]string(nil), v...)
	}
	if state.LastMeaningfulResponse != nil {
		v := *state.LastMeaningfulResponse
		out.LastMeaningfulResponse = &v
	}
	return &out
}
