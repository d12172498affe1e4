package catalog

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryCreateAndGet(t *testing.T) {
	r := NewRegistry(&mockCatalog{}, SessionOptions{})

	s := r.Create()
	_, err := uuid.Parse(s.ID())
	require.NoError(t, err)

	got, ok := r.Get(s.ID())
	require.True(t, ok)
	assert.Same(t, s, got)
	assert.Equal(t, 1, r.Len())

	_, ok = r.Get("nope")
	assert.False(t, ok)
}

func TestRegistryGetOrCreate(t *testing.T) {
	r := NewRegistry(&mockCatalog{}, SessionOptions{})
	existing := r.Create()

	got, created := r.GetOrCreate(existing.ID())
	assert.False(t, created)
	assert.Same(t, existing, got)

	fresh, created := r.GetOrCreate("evicted-or-forged")
	assert.True(t, created)
	assert.NotEqual(t, "evicted-or-forged", fresh.ID())

	_, created = r.GetOrCreate("")
	assert.True(t, created)
	assert.Equal(t, 3, r.Len())
}

func TestRegistrySessionsShareOptions(t *testing.T) {
	names := LanguageNames{"en": "Inglés"}
	r := NewRegistry(&mockCatalog{}, SessionOptions{Names: names})

	assert.Equal(t, "Inglés", r.Create().Names().DisplayName("en"))
}

func TestRegistryEvictIdle(t *testing.T) {
	r := NewRegistry(&mockCatalog{}, SessionOptions{})
	stale := r.Create()
	active := r.Create()

	stale.lastSeen.Store(time.Now().Add(-2 * time.Hour).UnixNano())

	evicted := r.EvictIdle(30*time.Minute, time.Now())

	assert.Equal(t, []string{stale.ID()}, evicted)
	_, ok := r.Get(stale.ID())
	assert.False(t, ok)
	_, ok = r.Get(active.ID())
	assert.True(t, ok)
}

func TestRegistryEvictIdleSkipsSessionsInUse(t *testing.T) {
	r := NewRegistry(&mockCatalog{}, SessionOptions{})
	open := r.Create()
	closed := r.Create()
	r.KeepWhile(func(id string) bool { return id == open.ID() })

	old := time.Now().Add(-2 * time.Hour).UnixNano()
	open.lastSeen.Store(old)
	closed.lastSeen.Store(old)

	evicted := r.EvictIdle(30*time.Minute, time.Now())

	assert.Equal(t, []string{closed.ID()}, evicted)
	assert.Equal(t, 1, r.Len())
	assert.WithinDuration(t, time.Now(), open.LastSeen(), time.Minute)
}
