package cache

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_GetSet(t *testing.T) {
	s := New()
	k := Key{Name: "total", Version: 1, Day: "2026-05-20"}

	_, ok := s.Get(k)
	assert.False(t, ok)

	s.Set(k, 12.5)
	v, ok := s.Get(k)
	require.True(t, ok)
	assert.InDelta(t, 12.5, v.(float64), 1e-9)

	assert.Equal(t, Stats{Hits: 1, Misses: 1, Entries: 1}, s.Stats())
}

func TestStore_VersionAndDayInvalidate(t *testing.T) {
	s := New()
	k := Key{Name: "total", Version: 1, Day: "2026-05-20"}
	s.Set(k, 1.0)

	_, ok := s.Get(Key{Name: "total", Version: 2, Day: "2026-05-20"})
	assert.False(t, ok, "new ledger version misses")

	_, ok = s.Get(Key{Name: "total", Version: 1, Day: "2026-05-21"})
	assert.False(t, ok, "new day misses")

	s.Set(Key{Name: "total", Version: 2, Day: "2026-05-20"}, 2.0)
	assert.Equal(t, 1, s.Stats().Entries, "one entry per name")
}

func TestMemo(t *testing.T) {
	s := New()
	k := Key{Name: "streak", Version: 3, Day: "2026-05-20"}
	calls := 0
	compute := func() int {
		calls++
		return 4
	}

	assert.Equal(t, 4, Memo(s, k, compute))
	assert.Equal(t, 4, Memo(s, k, compute))
	assert.Equal(t, 1, calls)

	k.Version++
	assert.Equal(t, 4, Memo(s, k, compute))
	assert.Equal(t, 2, calls)
}

func TestMemo_TypeMismatchRecomputes(t *testing.T) {
	s := New()
	k := Key{Name: "x"}
	s.Set(k, "not an int")
	assert.Equal(t, 7, Memo(s, k, func() int { return 7 }))
}

func TestNewDisabled(t *testing.T) {
	s := NewDisabled()
	k := Key{Name: "total"}
	calls := 0
	for range 3 {
		Memo(s, k, func() int { calls++; return calls })
	}
	assert.Equal(t, 3, calls)
	assert.Zero(t, s.Stats().Entries)
}

func TestStore_Clear(t *testing.T) {
	s := New()
	s.Set(Key{Name: "a"}, 1)
	s.Get(Key{Name: "a"})
	s.Clear()
	assert.Equal(t, Stats{}, s.Stats())
}

func TestStore_Concurrent(t *testing.T) {
	s := New()
	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(1)
		go func(v uint64) {
			defer wg.Done()
			k := Key{Name: "n", Version: v}
			Memo(s, k, func() uint64 { return v })
		}(uint64(i))
	}
	wg.Wait()
	assert.Equal(t, 1, s.Stats().Entries)
}
