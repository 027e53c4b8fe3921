package connect

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// stateTTL bounds how long an issued OAuth state token stays redeemable
const stateTTL = 10 * time.Minute

// stateRegistry tracks issued OAuth state tokens. A token is single-use:
// consuming it removes it, so a replayed callback fails state validation.
type stateRegistry struct {
	mu     sync.Mutex
	issued map[string]time.Time
	ttl    time.Duration

	// now is injectable for expiry tests
	now func() time.Time
}

func newStateRegistry(ttl time.Duration) *stateRegistry {
	return &stateRegistry{
		issued: make(map[string]time.Time),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Issue mints a fresh state token and records its issue time. Expired entries
// are pruned opportunistically so abandoned authorize flows do not accumulate.
func (r *stateRegistry) Issue() string {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	for token, issuedAt := range r.issued {
		if now.Sub(issuedAt) > r.ttl {
			delete(r.issued, token)
		}
	}

	token := uuid.NewString()
	r.issued[token] = now
	return token
}

// Consume redeems a state token, reporting whether it was issued here and is
// still within its TTL
func (r *stateRegistry) Consume(token string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	issuedAt, ok := r.issued[token]
	if !ok {
		return false
	}
	delete(r.issued, token)
	return r.now().Sub(issuedAt) <= r.ttl
}
