package sparse

import (
	"iter"

	"github.com/TheBitDrifter/depot/buffer"
)

// Typed is a Set viewed as holding values of type T. It is a small value that
// can be copied freely; copies share the underlying Set.
type Typed[T any] struct {
	set    *Set
	values buffer.View[T]
}

// New returns an empty typed set with the given page size.
func New[T any](pageSize int) Typed[T] {
	return MustOf[T](NewSet(buffer.LayoutOf[T](), pageSize))
}

// Of returns a typed view of s. It fails with a buffer.TypeMismatchError when s
// was created for a different type.
func Of[T any](s *Set) (Typed[T], error) {
	v, err := buffer.As[T](s.values)
	if err != nil {
		return Typed[T]{}, err
	}
	return Typed[T]{set: s, values: v}, nil
}

func MustOf[T any](s *Set) Typed[T] {
	t, err := Of[T](s)
	if err != nil {
		panic(err)
	}
	return t
}

func (t Typed[T]) Set() *Set           { return t.set }
func (t Typed[T]) Len() int            { return t.set.Len() }
func (t Typed[T]) Has(key int) bool    { return t.set.Has(key) }
func (t Typed[T]) Remove(key int) bool { return t.set.Remove(key) }
func (t Typed[T]) KeyAt(i int) int     { return t.set.KeyAt(i) }

// Insert stores value under key. If key is already present nothing changes
// and Insert reports false.
func (t Typed[T]) Insert(key int, value T) bool {
	d, inserted := t.set.emplace(key)
	if !inserted {
		return false
	}
	*t.values.At(d) = value
	return true
}

// Get returns a copy of the value stored under key.
func (t Typed[T]) Get(key int) (T, bool) {
	if p, ok := t.GetMut(key); ok {
		return *p, true
	}
	var zero T
	return zero, false
}

// GetMut returns a pointer to the value stored under key. The pointer is only
// valid until the next Insert, Remove or Clear on the set.
func (t Typed[T]) GetMut(key int) (*T, bool) {
	d, ok := t.set.IndexOf(key)
	if !ok {
		return nil, false
	}
	return t.values.At(d), true
}

// GetOrInsert returns the value under key, inserting fn() first if needed.
// fn runs before key takes a slot, so it may change the set. If fn itself
// stores key, that value is kept.
func (t Typed[T]) GetOrInsert(key int, fn func() T) *T {
	if d, ok := t.set.IndexOf(key); ok {
		return t.values.At(d)
	}
	v := fn()
	d, inserted := t.set.emplace(key)
	p := t.values.At(d)
	if inserted {
		*p = v
	}
	return p
}

// At returns the value in dense slot i.
func (t Typed[T]) At(i int) *T {
	return t.values.At(i)
}

// All yields (key, value) pairs in dense order. Values are copies.
func (t Typed[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := 0; i < t.set.Len(); i++ {
			if !yield(t.set.KeyAt(i), *t.values.At(i)) {
				return
			}
		}
	}
}

// AllMut yields (key, pointer) pairs in dense order. The set must not gain or
// lose keys while the sequence is running.
func (t Typed[T]) AllMut() iter.Seq2[int, *T] {
	return func(yield func(int, *T) bool) {
		for i := 0; i < t.set.Len(); i++ {
			if !yield(t.set.KeyAt(i), t.values.At(i)) {
				return
			}
		}
	}
}
