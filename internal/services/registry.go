package services

import (
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
)

// scanToken is the cancellation handle for one scan attempt. The flag is
// atomic because the superseding scan may run on a different goroutine than
// the one polling it.
type scanToken struct {
	id        string
	cancelled atomic.Bool
}

// Cancel marks the scan as superseded. The owning scan observes the flag at
// its next batch boundary; nothing is interrupted synchronously.
func (t *scanToken) Cancel() {
	t.cancelled.Store(true)
}

// Cancelled reports whether the scan has been superseded.
func (t *scanToken) Cancelled() bool {
	return t.cancelled.Load()
}

// scanRegistry tracks the single live scan per repository. It is owned by a
// coordinator instance rather than being process-wide state, so isolated
// coordinators can coexist in tests.
type scanRegistry struct {
	mu     sync.Mutex
	active map[int64]*scanToken
}

func newScanRegistry() *scanRegistry {
	return &scanRegistry{active: make(map[int64]*scanToken)}
}

// Begin cancels any live scan for the repository and installs a fresh token
// for the new one. It never blocks waiting for the old scan to stop.
func (r *scanRegistry) Begin(repositoryID int64) *scanToken {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.active[repositoryID]; ok {
		existing.Cancel()
	}

	token := &scanToken{id: uuid.New().String()}
	r.active[repositoryID] = token
	return token
}

// End removes the registry entry for a finished scan. The entry is removed
// only while the finishing scan still owns it: a superseded scan must not
// evict its successor's token.
func (r *scanRegistry) End(repositoryID int64, token *scanToken) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.active[repositoryID] == token {
		delete(r.active, repositoryID)
	}
}

// Live reports whether a non-cancelled scan is registered for the repository.
func (r *scanRegistry) Live(repositoryID int64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	token, ok := r.active[repositoryID]
	return ok && !token.Cancelled()
}
