// pkg/memcache/reset_tokens.go
package mem

import (
	"sync"
	"time"
)

// ResetTokenStore keeps single-use password-reset credentials. Keys are
// digests (never raw tokens), values the bound account email.
type ResetTokenStore interface {
	Set(key string, accountEmail string, ttl time.Duration)

	// Consume returns the email for key if not expired,
	// and removes the entry (single-use). Returns "" if missing/expired.
	Consume(key string) string

	// Peek reads without consuming; used by the session-verification
	// endpoint so the credential survives until the password update.
	Peek(key string) (string, bool)
}

type entry struct {
	email     string
	expiresAt time.Time
}

type ResetTokens struct {
	mu   sync.RWMutex
	data map[string]entry
}

func NewResetTokens() *ResetTokens {
	return &ResetTokens{
		data: make(map[string]entry),
	}
}

func (s *ResetTokens) Set(key string, accountEmail string, ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = entry{
		email:     accountEmail,
		expiresAt: time.Now().Add(ttl),
	}
}

func (s *ResetTokens) Consume(key string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.data[key]
	if !ok {
		return ""
	}
	if time.Now().After(e.expiresAt) {
		delete(s.data, key) // cleanup expired
		return ""
	}
	delete(s.data, key) // single-use
	return e.email
}

func (s *ResetTokens) Peek(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.data[key]
	if !ok || time.Now().After(e.expiresAt) {
		return "", false
	}
	return e.email, true
}
