// Package session keeps the server-side record of each logged-in browser.
package session

import (
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// User is the identity bound to a session. It is never modified after Create.
type User struct {
	ID       int
	Username string
	Role     string
}

// Store holds sessions in process memory, keyed by an opaque token.
type Store struct {
	memory *cache.Cache
}

// NewStore creates a store whose sessions expire after ttl.
func NewStore(ttl time.Duration) *Store {
	return &Store{memory: cache.New(ttl, ttl/2+time.Minute)}
}

// Create registers a new session for u and returns its token.
func (s *Store) Create(u User) string {
	token := uuid.NewString()
	s.memory.Set(token, u, cache.DefaultExpiration)
	return token
}

// Get returns the session bound to token, if it exists and has not expired.
func (s *Store) Get(token string) (User, bool) {
	if token == "" {
		return User{}, false
	}
	v, ok := s.memory.Get(token)
	if !ok {
		return User{}, false
	}
	u, ok := v.(User)
	return u, ok
}

// Destroy removes the session. Unknown tokens are ignored.
func (s *Store) Destroy(token string) {
	s.memory.Delete(token)
}

// count reports the number of live sessions.
func (s *Store) count() int {
	return s.memory.ItemCount()
}
