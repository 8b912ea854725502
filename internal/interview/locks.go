package interview

import (
	"sync"

	"github.com/google/uuid"
)

// sessionLocks serializes mutating operations per session id so each
// load-mutate-persist cycle is atomic. Operations on different sessions
// proceed in parallel; entries are removed once the last holder releases.
type sessionLocks struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*sessionLock
}

type sessionLock struct {
	mu   sync.Mutex
	refs int
}

func newSessionLocks() *sessionLocks {
	return &sessionLocks{locks: make(map[uuid.UUID]*sessionLock)}
}

// acquire blocks until the session's lock is held and returns the release
// function.
func (l *sessionLocks) acquire(id uuid.UUID) func() {
	l.mu.Lock()
	sl, ok := l.locks[id]
	if !ok {
		sl = &sessionLock{}
		l.locks[id] = sl
	}
	sl.refs++
	l.mu.Unlock()

	sl.mu.Lock()

	return func() {
		sl.mu.Unlock()

		l.mu.Lock()
		sl.refs--
		if sl.refs == 0 {
			delete(l.locks, id)
		}
		l.mu.Unlock()
	}
}
