package intake

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// SessionStore holds in-flight conversations keyed by session id. Keys are
// opaque identifiers generated by the orchestrator; no other component
// calls Put or Remove. Expiry is stamped on the session at write time and
// enforced at read time: an expired session behaves as absent.
//
// The interface exists so a multi-instance deployment can swap in a shared
// TTL-capable key/value store without touching the orchestrator.
type SessionStore interface {
	Put(s *ConversationSession)
	Get(sessionID string) (*ConversationSession, bool)

	// Remove deletes the session and reports whether it was present.
	// Removal is atomic: of two racing calls, exactly one observes true.
	Remove(sessionID string) bool
}

const defaultMaxSessions = 4096

// memorySessionStore is the single-instance SessionStore, backed by a
// size-bounded expirable LRU so abandoned sessions are evicted without a
// dedicated sweeper.
type memorySessionStore struct {
	cache *expirable.LRU[string, *ConversationSession]
	now   func() time.Time
}

// NewMemorySessionStore creates an in-memory store whose entries are
// dropped after ttl even if never read.
func NewMemorySessionStore(ttl time.Duration) SessionStore {
	return &memorySessionStore{
		cache: expirable.NewLRU[string, *ConversationSession](defaultMaxSessions, nil, ttl),
		now:   time.Now,
	}
}

func (m *memorySessionStore) Put(s *ConversationSession) {
	m.cache.Add(s.SessionID, s)
}

func (m *memorySessionStore) Get(sessionID string) (*ConversationSession, bool) {
	s, ok := m.cache.Get(sessionID)
	if !ok {
		return nil, false
	}
	// The LRU's TTL is a memory bound; the session's own stamp is the
	// authoritative expiry.
	if s.Expired(m.now()) {
		m.cache.Remove(sessionID)
		return nil, false
	}
	return s, true
}

func (m *memorySessionStore) Remove(sessionID string) bool {
	return m.cache.Remove(sessionID)
}
