package workflow

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStore(t *testing.T) {
	t.Run("put get delete", func(t *testing.T) {
		s := NewStore[int64, string](time.Minute)

		_, ok := s.Get(1)
		assert.False(t, ok)

		s.Put(1, "a")
		v, ok := s.Get(1)
		assert.True(t, ok)
		assert.Equal(t, "a", v)

		s.Put(1, "b")
		v, _ = s.Get(1)
		assert.Equal(t, "b", v)

		s.Delete(1)
		_, ok = s.Get(1)
		assert.False(t, ok)
	})

	t.Run("eviction", func(t *testing.T) {
		s := NewStore[int64, string](time.Minute)
		base := time.Unix(1000, 0)
		s.now = func() time.Time { return base }

		s.Put(1, "stale")
		s.Put(2, "fresh")

		s.now = func() time.Time { return base.Add(30 * time.Second) }
		_, _ = s.Get(2) // touch

		s.evictStale(base.Add(time.Minute))
		_, ok := s.Get(1)
		assert.False(t, ok)
		_, ok = s.Get(2)
		assert.True(t, ok)
		assert.Equal(t, 1, s.Len())
	})

	t.Run("per-key lock serializes", func(t *testing.T) {
		s := NewStore[int64, int](time.Minute)
		var wg sync.WaitGroup

		for i := 0; i < 50; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				unlock := s.Lock(1)
				defer unlock()
				v, _ := s.Get(1)
				s.Put(1, v+1)
			}()
		}
		wg.Wait()

		v, _ := s.Get(1)
		assert.Equal(t, 50, v)
	})
}
