package mail

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTokenStoreReadEmpty(t *testing.T) {
	store := NewTokenStore()

	_, ok := store.Read()
	assert.False(t, ok)
}

func TestTokenStoreWriteReplacesUnconditionally(t *testing.T) {
	store := NewTokenStore()
	first := Credential{AccessToken: "first", Expiry: time.Now().Add(time.Hour)}
	second := Credential{AccessToken: "second", Expiry: time.Now().Add(-time.Hour)}

	store.Write(first)
	got, ok := store.Read()
	assert.True(t, ok)
	assert.Equal(t, first, got)

	// An already-expired credential still replaces the cached one;
	// freshness is the reader's responsibility.
	store.Write(second)
	got, ok = store.Read()
	assert.True(t, ok)
	assert.Equal(t, second, got)
}
