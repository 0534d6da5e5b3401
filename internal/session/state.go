package session

import (
	"context"
	"sync"

	"github.com/zhubert/threadchat/internal/localstore"
	"github.com/zhubert/threadchat/internal/logger"
)

// State is the active-thread accessor. The zero value is not usable; create
// one with NewState.
type State struct {
	mu     sync.RWMutex
	active string
	store  localstore.Store
}

// NewState loads the persisted active thread from store.
func NewState(ctx context.Context, store localstore.Store) *State {
	s := &State{store: store}
	id, ok, err := store.Get(ctx, localstore.KeyThreadID)
	if err != nil {
		logger.WithComponent("session").Warn("failed to read active thread", "error", err)
	}
	if ok {
		s.active = id
	}
	return s
}

// Active returns the active thread id, or "" when none is active.
func (s *State) Active() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

// IsActive reports whether id is the active thread.
func (s *State) IsActive(id string) bool {
	return id != "" && s.Active() == id
}

// SetActive makes id the active thread and persists it. An empty id clears.
// Persistence failures are logged; the in-memory value is always updated.
func (s *State) SetActive(ctx context.Context, id string) {
	s.mu.Lock()
	s.active = id
	s.mu.Unlock()

	var err error
	if id == "" {
		err = s.store.Delete(ctx, localstore.KeyThreadID)
	} else {
		err = s.store.Set(ctx, localstore.KeyThreadID, id)
	}
	if err != nil {
		logger.WithThread(id).Warn("failed to persist active thread", "error", err)
	}
}

// Clear forgets the active thread.
func (s *State) Clear(ctx context.Context) {
	s.SetActive(ctx, "")
}

// NewThread mints a fresh thread id, makes it active and returns it.
func (s *State) NewThread(ctx context.Context) string {
	id := MintThreadID()
	s.SetActive(ctx, id)
	return id
}

// EnsureActive returns the active thread, minting one first if none is active.
// The bool reports whether a new id was minted.
func (s *State) EnsureActive(ctx context.Context) (string, bool) {
	if id := s.Active(); id != "" {
		return id, false
	}
	return s.NewThread(ctx), true
}
