package sparse

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TheBitDrifter/depot/buffer"
)

func TestInsertAcrossPages(t *testing.T) {
	s := New[string](1000)
	require.True(t, s.Insert(5, "a"))
	require.True(t, s.Insert(1000, "b"))
	require.True(t, s.Insert(2000, "c"))

	v, ok := s.Get(1000)
	assert.True(t, ok)
	assert.Equal(t, "b", v)
	assert.Equal(t, 3, s.Len())
	assert.Equal(t, 3, s.Set().Pages())
}

func TestInsertExistingIsNoop(t *testing.T) {
	s := New[int](16)
	require.True(t, s.Insert(3, 30))
	assert.False(t, s.Insert(3, 99))
	v, _ := s.Get(3)
	assert.Equal(t, 30, v)
	assert.Equal(t, 1, s.Len())
}

func TestMissingKeys(t *testing.T) {
	s := New[int](16)
	s.Insert(40, 1)

	tests := []struct {
		name string
		key  int
	}{
		{"page never allocated", 100},
		{"allocated page, empty slot", 41},
		{"page below an allocated one", 3},
		{"negative", -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := s.Get(tt.key)
			assert.False(t, ok)
			p, ok := s.GetMut(tt.key)
			assert.False(t, ok)
			assert.Nil(t, p)
			assert.False(t, s.Remove(tt.key))
		})
	}
	assert.Equal(t, 1, s.Len())
}

func TestRemoveKeepsOthersReachable(t *testing.T) {
	keys := []int{0, 7, 8, 15, 64, 65, 1023, 5000}
	for _, victim := range keys {
		s := New[int](8)
		for _, k := range keys {
			s.Insert(k, k*100)
		}
		require.True(t, s.Remove(victim))

		_, ok := s.Get(victim)
		assert.False(t, ok, "removed key %d still present", victim)
		for _, k := range keys {
			if k == victim {
				continue
			}
			v, ok := s.Get(k)
			assert.True(t, ok, "key %d lost after removing %d", k, victim)
			assert.Equal(t, k*100, v)
		}
		assert.Equal(t, len(keys)-1, s.Len())
	}
}

func TestReinsertAfterRemove(t *testing.T) {
	s := New[string](4)
	s.Insert(2, "first")
	s.Remove(2)
	pages := s.Set().Pages()

	require.True(t, s.Insert(2, "second"))
	v, _ := s.Get(2)
	assert.Equal(t, "second", v)
	assert.Equal(t, pages, s.Set().Pages())
}

func TestLengthMatchesModel(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	s := New[int](32)
	model := map[int]int{}

	for step := 0; step < 5000; step++ {
		key := rng.Intn(400)
		if rng.Intn(3) == 0 {
			_, had := model[key]
			assert.Equal(t, had, s.Remove(key))
			delete(model, key)
		} else {
			_, had := model[key]
			assert.Equal(t, !had, s.Insert(key, step))
			if !had {
				model[key] = step
			}
		}
		require.Equal(t, len(model), s.Len())
	}

	seen := map[int]bool{}
	for k, v := range s.All() {
		assert.Equal(t, model[k], v)
		assert.False(t, seen[k], "key %d yielded twice", k)
		seen[k] = true
	}
	assert.Len(t, seen, len(model))
}

func TestIterationFollowsDenseOrder(t *testing.T) {
	s := New[int](10)
	for _, k := range []int{30, 10, 20, 40} {
		s.Insert(k, k)
	}
	s.Remove(10)

	var keys []int
	for k := range s.Set().Keys() {
		keys = append(keys, k)
	}
	assert.Equal(t, []int{30, 40, 20}, keys)
}

func TestAllMutWritesThrough(t *testing.T) {
	s := New[int](10)
	for k := 0; k < 5; k++ {
		s.Insert(k*3, k)
	}
	for k, v := range s.AllMut() {
		*v = k * 2
	}
	for k, v := range s.All() {
		assert.Equal(t, k*2, v)
	}
}

func TestGetOrInsert(t *testing.T) {
	s := New[[]int](8)
	calls := 0
	mk := func() []int { calls++; return []int{1} }

	p := s.GetOrInsert(9, mk)
	*p = append(*p, 2)
	p = s.GetOrInsert(9, mk)

	assert.Equal(t, []int{1, 2}, *p)
	assert.Equal(t, 1, calls)
}

func TestGetOrInsertGrowsInsideFn(t *testing.T) {
	s := New[int](8)
	s.Insert(0, -1)

	p := s.GetOrInsert(500, func() int {
		for k := 1; k < 300; k++ {
			s.Insert(k, k)
		}
		s.Remove(0)
		return 42
	})
	*p++

	got, ok := s.Get(500)
	require.True(t, ok)
	assert.Equal(t, 43, got)
	assert.Equal(t, 300, s.Len())
	for k := 1; k < 300; k++ {
		v, _ := s.Get(k)
		assert.Equal(t, k, v)
	}
}

func TestGetOrInsertKeepsValueStoredByFn(t *testing.T) {
	s := New[int](8)
	p := s.GetOrInsert(3, func() int {
		s.Insert(3, 7)
		return 9
	})
	assert.Equal(t, 7, *p)
	assert.Equal(t, 1, s.Len())
}

func TestClear(t *testing.T) {
	s := New[int](8)
	for k := 0; k < 20; k++ {
		s.Insert(k, k)
	}
	s.Set().Clear()
	assert.Equal(t, 0, s.Len())
	assert.False(t, s.Has(3))
	assert.True(t, s.Insert(3, 3))
}

func TestOfRejectsWrongType(t *testing.T) {
	raw := NewSet(buffer.LayoutOf[float32](), 8)
	_, err := Of[float64](raw)
	var mismatch buffer.TypeMismatchError
	assert.True(t, errors.As(err, &mismatch))

	typed, err := Of[float32](raw)
	require.NoError(t, err)
	typed.Insert(1, 1.5)
	assert.Equal(t, 1, raw.Len())
}

func TestInvalidInput(t *testing.T) {
	assert.Panics(t, func() { New[int](0) })
	assert.Panics(t, func() { New[int](4).Insert(-3, 1) })
}
