package cache

import (
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorePutGet(t *testing.T) {
	s := NewStore()

	_, ok := s.Get(GamesByPlatform, "pc")
	assert.False(t, ok)

	s.Put(GamesByPlatform, "pc", []string{"a", "b"})
	v, ok := s.Get(GamesByPlatform, "pc")
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, v)

	// same key under a different name is independent
	_, ok = s.Get(GamesByGenre, "pc")
	assert.False(t, ok)
}

func TestStorePutOverwrites(t *testing.T) {
	s := NewStore()
	s.Put(Orders, "1", "old")
	s.Put(Orders, "1", "new")

	v, ok := s.Get(Orders, "1")
	require.True(t, ok)
	assert.Equal(t, "new", v)
	assert.Equal(t, 1, s.Len(Orders))
}

func TestStoreEvictAll(t *testing.T) {
	s := NewStore()
	s.Put(GamesByPlatform, "pc", 1)
	s.Put(GamesByPlatform, "switch", 2)
	s.Put(GamesByGenre, "rpg", 3)
	s.Put(Orders, AllOrdersKey, 4)

	s.EvictAll(GamesByPlatform, GamesByGenre)

	assert.Equal(t, 0, s.Len(GamesByPlatform))
	assert.Equal(t, 0, s.Len(GamesByGenre))

	// untouched caches survive
	v, ok := s.Get(Orders, AllOrdersKey)
	require.True(t, ok)
	assert.Equal(t, 4, v)
}

func TestStoreEvictMissingNameIsNoop(t *testing.T) {
	s := NewStore()
	s.EvictAll("neverCreated")
	assert.Equal(t, 0, s.Len("neverCreated"))
}

func TestStoreConcurrentAccess(t *testing.T) {
	s := NewStore()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			key := strconv.Itoa(n)
			for j := 0; j < 1000; j++ {
				s.Put(GamesByPlatform, key, j)
				s.Get(GamesByPlatform, key)
				if j%100 == 0 {
					s.EvictAll(GamesByPlatform)
				}
			}
		}(i)
	}
	wg.Wait()
}
