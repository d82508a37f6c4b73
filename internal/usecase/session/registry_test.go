package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegistryRegisterOverwritesUserMapping(t *testing.T) {
	r := NewRegistry()
	first := newFakeHandle("alice")
	second := newFakeHandle("alice")

	r.Register(first)
	r.Register(second)

	h, ok := r.LookupHandle("alice")
	assert.True(t, ok)
	assert.Equal(t, second.ID(), h.ID())
	assert.False(t, r.IsCurrent(first.ID()))
	assert.True(t, r.IsCurrent(second.ID()))
	assert.Equal(t, 1, r.Users())
	assert.Equal(t, 2, r.Len())
}

func TestRegistryLookupUser(t *testing.T) {
	r := NewRegistry()
	h := newFakeHandle("bob")
	r.Register(h)

	user, ok := r.LookupUser(h.ID())
	assert.True(t, ok)
	assert.Equal(t, "bob", user)

	_, ok = r.LookupUser("missing")
	assert.False(t, ok)
}

func TestRegistryRemoveStaleHandleKeepsNewer(t *testing.T) {
	r := NewRegistry()
	stale := newFakeHandle("alice")
	fresh := newFakeHandle("alice")
	r.Register(stale)
	r.Register(fresh)

	_, ok := r.Remove(stale.ID())
	assert.True(t, ok)

	h, ok := r.LookupHandle("alice")
	assert.True(t, ok)
	assert.Equal(t, fresh.ID(), h.ID())

	_, ok = r.Remove(fresh.ID())
	assert.True(t, ok)
	_, ok = r.LookupHandle("alice")
	assert.False(t, ok)
	assert.Equal(t, 0, r.Len())
}

func TestRegistryRemoveUnknownHandle(t *testing.T) {
	r := NewRegistry()
	_, ok := r.Remove("nope")
	assert.False(t, ok)
}
