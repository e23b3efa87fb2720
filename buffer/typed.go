package buffer

import (
	"reflect"
	"unsafe"
)

// View is a typed window onto a Buffer. The element type is checked once
// when the view is made; later accesses only check bounds.
type View[T any] struct {
	b *Buffer
}

// As returns a typed view of b, or a TypeMismatchError if T is not the type
// b was created with.
func As[T any](b *Buffer) (View[T], error) {
	if err := b.checkType(reflect.TypeFor[T]()); err != nil {
		return View[T]{}, err
	}
	return View[T]{b: b}, nil
}

// MustAs is As for callers that treat a type mismatch as a programming error.
func MustAs[T any](b *Buffer) View[T] {
	v, err := As[T](b)
	if err != nil {
		panic(err)
	}
	return v
}

func (v View[T]) Buffer() *Buffer { return v.b }
func (v View[T]) Len() int        { return v.b.length }

// At returns a pointer to element i. The pointer is invalidated by any call
// that grows, clears, or swap-removes from the buffer.
func (v View[T]) At(i int) *T {
	v.b.checkIndex(i)
	return (*T)(v.b.slot(i))
}

// Push appends x and returns its index.
func (v View[T]) Push(x T) int {
	i := v.b.Emplace()
	*(*T)(v.b.slot(i)) = x
	return i
}

// Slice aliases the live elements. Same lifetime rules as At.
func (v View[T]) Slice() []T {
	if v.b.length == 0 {
		return nil
	}
	return unsafe.Slice((*T)(v.b.base), v.b.length)
}

// Push appends value to b, interpreting b's slots as T.
func Push[T any](b *Buffer, value T) int {
	return MustAs[T](b).Push(value)
}

// Get returns a copy of element i.
func Get[T any](b *Buffer, i int) T {
	return *MustAs[T](b).At(i)
}

// GetMut returns a pointer to element i.
func GetMut[T any](b *Buffer, i int) *T {
	return MustAs[T](b).At(i)
}
