package intake

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func storedSession(id string, expiresAt time.Time) *ConversationSession {
	return &ConversationSession{
		SessionID: id,
		UserID:    "u1",
		ExpiresAt: expiresAt,
	}
}

func TestMemorySessionStore_PutGet(t *testing.T) {
	store := NewMemorySessionStore(time.Hour)

	store.Put(storedSession("s1", time.Now().Add(time.Hour)))

	got, ok := store.Get("s1")
	require.True(t, ok)
	assert.Equal(t, "s1", got.SessionID)

	_, ok = store.Get("missing")
	assert.False(t, ok)
}

func TestMemorySessionStore_ExpiredSessionAbsent(t *testing.T) {
	store := NewMemorySessionStore(time.Hour)

	store.Put(storedSession("stale", time.Now().Add(-time.Minute)))

	_, ok := store.Get("stale")
	assert.False(t, ok)

	// Expiry on read also evicts, so a remove afterwards finds nothing.
	assert.False(t, store.Remove("stale"))
}

func TestMemorySessionStore_RemoveReportsPresence(t *testing.T) {
	store := NewMemorySessionStore(time.Hour)

	store.Put(storedSession("s1", time.Now().Add(time.Hour)))

	assert.True(t, store.Remove("s1"))
	assert.False(t, store.Remove("s1"))

	_, ok := store.Get("s1")
	assert.False(t, ok)
}

func TestMemorySessionStore_PutOverwrites(t *testing.T) {
	store := NewMemorySessionStore(time.Hour)

	first := storedSession("s1", time.Now().Add(time.Hour))
	first.QuestionsAsked = 1
	store.Put(first)

	second := storedSession("s1", time.Now().Add(time.Hour))
	second.QuestionsAsked = 3
	store.Put(second)

	got, ok := store.Get("s1")
	require.True(t, ok)
	assert.Equal(t, 3, got.QuestionsAsked)
}
