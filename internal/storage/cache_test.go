package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Без Redis кеш мусить деградувати до нешкідливого no-op, а не падати.
func TestMessageCache_NilRedis(t *testing.T) {
	cache := NewMessageCache(nil)

	assert.False(t, cache.Available())
	assert.NotPanics(t, func() {
		cache.PushRecent(1, []byte("payload"))
	})
	assert.Nil(t, cache.Recent(1, 10))
}

func TestMessageCache_NilReceiver(t *testing.T) {
	var cache *MessageCache
	assert.False(t, cache.Available())
	assert.NotPanics(t, func() {
		cache.PushRecent(1, []byte("payload"))
	})
	assert.Nil(t, cache.Recent(1, 10))
}

func TestMessageCache_RecentNonPositiveLimit(t *testing.T) {
	cache := NewMessageCache(nil)
	assert.Nil(t, cache.Recent(1, 0))
	assert.Nil(t, cache.Recent(1, -5))
}

func TestChatKey(t *testing.T) {
	assert.Equal(t, "chat:42", chatKey(42))
}
