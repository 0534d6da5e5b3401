package session

import (
	"sync"

	pkgerrors "github.com/zhubert/threadchat/internal/errors"
)

// Guard is a per-thread mutual exclusion token set.
type Guard struct {
	mu       sync.Mutex
	inFlight map[string]string // thread id -> operation holding it
}

// NewGuard returns an empty Guard.
func NewGuard() *Guard {
	return &Guard{inFlight: make(map[string]string)}
}

// Acquire takes the token for threadID on behalf of op. It returns a
// KindBusy error if another operation already holds it.
func (g *Guard) Acquire(threadID, op string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, busy := g.inFlight[threadID]; busy {
		return pkgerrors.ThreadBusy(threadID)
	}
	g.inFlight[threadID] = op
	return nil
}

// Release gives the token back. Releasing a token that is not held is a no-op.
func (g *Guard) Release(threadID string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.inFlight, threadID)
}

// Holder returns the operation holding threadID's token, if any.
func (g *Guard) Holder(threadID string) (string, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	op, ok := g.inFlight[threadID]
	return op, ok
}

// Len returns the number of threads with an operation in flight.
func (g *Guard) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.inFlight)
}
