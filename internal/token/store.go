// Package token holds short-lived password-reset tokens. Tokens are
// deliberately transient: they live in process memory and do not survive a
// restart.
package token

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"sync"
	"time"
)

var (
	ErrNotFound = errors.New("token: not found")
	ErrExpired  = errors.New("token: expired")
)

// Data is what a reset token authorizes: one password change for one
// identity.
type Data struct {
	Role     string
	Email    string
	Username string
	IssuedAt time.Time
}

// Store is the single-use-credential storage abstraction. Implementations
// must make Consume atomic per token: of two concurrent Consume calls for
// the same token, at most one may succeed.
type Store interface {
	Save(token string, data Data)
	// Peek returns the token's data without consuming it. An entry past its
	// TTL is removed and reported as ErrExpired.
	Peek(token string) (Data, error)
	// Consume removes the token and returns its data. Expired entries are
	// removed and reported as ErrExpired; a token already consumed (or never
	// issued) is ErrNotFound.
	Consume(token string) (Data, error)
}

// New returns a fresh opaque token: 32 random bytes, hex encoded.
func New() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// MemoryStore is the in-process Store. TTL is checked lazily on access; there
// is no background sweep.
type MemoryStore struct {
	ttl time.Duration
	now func() time.Time

	mu      sync.Mutex
	entries map[string]Data
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]Data),
	}
}

// WithClock overrides the store's time source. Test hook.
func (s *MemoryStore) WithClock(now func() time.Time) *MemoryStore {
	s.now = now
	return s
}

func (s *MemoryStore) Save(token string, data Data) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if data.IssuedAt.IsZero() {
		data.IssuedAt = s.now()
	}
	s.entries[token] = data
}

func (s *MemoryStore) Peek(token string) (Data, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.get(token, false)
}

func (s *MemoryStore) Consume(token string) (Data, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.get(token, true)
}

// get must be called with the mutex held.
func (s *MemoryStore) get(token string, remove bool) (Data, error) {
	data, ok := s.entries[token]
	if !ok {
		return Data{}, ErrNotFound
	}
	if s.now().Sub(data.IssuedAt) > s.ttl {
		delete(s.entries, token)
		return Data{}, ErrExpired
	}
	if remove {
		delete(s.entries, token)
	}
	return data, nil
}
