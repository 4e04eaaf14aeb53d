package mail

import (
	"sync"
	"time"
)

// Credential is a bearer token for the sender mailbox plus its absolute
// expiry. A zero Expiry means the expiry is unknown (connector-brokered
// tokens); freshness checking is always the reader's responsibility.
type Credential struct {
	AccessToken string
	Expiry      time.Time
}

// TokenStore caches at most one credential for the lifetime of the
// process. It is constructed once at startup and handed to the offline
// token provider. Concurrent refreshes may race across the read/refresh/
// write sequence; the last writer wins, which is harmless because every
// refresh exchanges the same refresh token.
type TokenStore struct {
	mu   sync.Mutex
	cred *Credential
}

// NewTokenStore creates an empty TokenStore.
func NewTokenStore() *TokenStore {
	return &TokenStore{}
}

// Read returns the cached credential if one is present, regardless of
// whether it has expired.
func (s *TokenStore) Read() (Credential, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cred == nil {
		return Credential{}, false
	}
	return *s.cred, true
}

// Write replaces the cached credential unconditionally.
func (s *TokenStore) Write(cred Credential) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cred = &cred
}
