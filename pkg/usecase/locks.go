package usecase

import (
	"sync"

	"github.com/SamWylde/Grant-Tracker-sub000/pkg/domain/types"
)

// grantLocks serializes load-transform-save cycles per grant ID. Two
// collaborators editing the same grant concurrently would otherwise race
// between read and write and lose updates; edits to different grants do not
// contend.
type grantLocks struct {
	mu    sync.Mutex
	locks map[types.GrantID]*sync.Mutex
}

func newGrantLocks() *grantLocks {
	return &grantLocks{
		locks: make(map[types.GrantID]*sync.Mutex),
	}
}

// Lock acquires the mutex for the given grant and returns its unlock func
func (l *grantLocks) Lock(id types.GrantID) func() {
	l.mu.Lock()
	m, ok := l.locks[id]
	if !ok {
		m = &sync.Mutex{}
		l.locks[id] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
