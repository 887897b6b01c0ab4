package identity

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStore(t *testing.T) {
	s := NewStore()

	_, ok := s.Get("k")
	assert.False(t, ok)

	id, created := s.GetOrCreate("k", func() string { return "v1" })
	assert.True(t, created)
	assert.Equal(t, "v1", id)

	id, created = s.GetOrCreate("k", func() string { return "v2" })
	assert.False(t, created)
	assert.Equal(t, "v1", id)
	assert.Equal(t, 1, s.Len())

	s.Reset()
	assert.Equal(t, 0, s.Len())
}

func TestStoreGetOrCreateOnce(t *testing.T) {
	s := NewStore()
	calls := 0

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.GetOrCreate("k", func() string {
				calls++
				return "v"
			})
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, calls)
	id, ok := s.Get("k")
	assert.True(t, ok)
	assert.Equal(t, "v", id)
}
