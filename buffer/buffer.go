// Package buffer provides a growable, contiguous store for elements of a
// single fixed layout whose semantic type is only known to the caller.
//
// The backing block is allocated as a typed Go array of the layout's type, so
// pointers held by elements stay visible to the garbage collector, while all
// element access goes through raw offset arithmetic. Callers must use the
// same type for every access to a given buffer; a mismatch panics with a
// TypeMismatchError instead of reinterpreting memory.
package buffer

import (
	"reflect"
	"unsafe"
)

const minGrowth = 4

// Layout describes the element type stored by a Buffer.
type Layout struct {
	typ   reflect.Type
	size  uintptr
	align uintptr
}

// LayoutOf returns the layout of T.
func LayoutOf[T any]() Layout {
	return LayoutFor(reflect.TypeFor[T]())
}

// LayoutFor returns the layout of an element type known only at runtime.
func LayoutFor(t reflect.Type) Layout {
	return Layout{
		typ:   t,
		size:  t.Size(),
		align: uintptr(t.Align()),
	}
}

func (l Layout) Type() reflect.Type { return l.typ }
func (l Layout) Size() uintptr      { return l.size }
func (l Layout) Align() uintptr     { return l.align }

// Buffer is a type-erased vector. The zero value is not usable; call New.
type Buffer struct {
	layout Layout
	block  reflect.Value
	base   unsafe.Pointer
	length int
}

// New returns an empty buffer for elements of the given layout.
func New(layout Layout) *Buffer {
	b := &Buffer{layout: layout}
	b.realloc(0)
	return b
}

func (b *Buffer) Layout() Layout { return b.layout }
func (b *Buffer) Len() int       { return b.length }
func (b *Buffer) Cap() int       { return b.block.Len() }

// ReserveAdditional ensures room for n more elements without reallocating.
// Capacity grows in powers of two.
func (b *Buffer) ReserveAdditional(n int) {
	needed := b.length + n
	if needed <= b.Cap() {
		return
	}
	newCap := max(b.Cap()*2, minGrowth)
	for newCap < needed {
		newCap *= 2
	}
	b.realloc(newCap)
}

// realloc moves the live elements into a fresh block of the given capacity.
// Running out of memory here aborts the process.
func (b *Buffer) realloc(capacity int) {
	block := reflect.MakeSlice(reflect.SliceOf(b.layout.typ), capacity, capacity)
	if b.length > 0 {
		reflect.Copy(block, b.block.Slice(0, b.length))
	}
	b.block = block
	b.base = block.UnsafePointer()
}

// Emplace appends one zeroed slot and returns its index.
func (b *Buffer) Emplace() int {
	b.ReserveAdditional(1)
	b.length++
	return b.length - 1
}

// RemoveSwapWithLast overwrites slot i with the last live slot and shrinks the
// buffer by one. Order is not preserved.
func (b *Buffer) RemoveSwapWithLast(i int) {
	b.checkIndex(i)
	last := b.length - 1
	if i != last {
		reflect.Copy(b.block.Slice(i, i+1), b.block.Slice(last, last+1))
	}
	b.block.Index(last).SetZero()
	b.length--
}

// Clear drops every element but keeps the capacity.
func (b *Buffer) Clear() {
	if b.length > 0 {
		b.block.Slice(0, b.length).Clear()
	}
	b.length = 0
}

// Clone returns an independent copy of b with the same layout and contents.
func (b *Buffer) Clone() *Buffer {
	c := &Buffer{layout: b.layout, length: b.length}
	c.block = reflect.MakeSlice(reflect.SliceOf(b.layout.typ), b.length, b.length)
	reflect.Copy(c.block, b.block.Slice(0, b.length))
	c.base = c.block.UnsafePointer()
	return c
}

// Pointer returns the raw address of slot i.
func (b *Buffer) Pointer(i int) unsafe.Pointer {
	b.checkIndex(i)
	return b.slot(i)
}

func (b *Buffer) slot(i int) unsafe.Pointer {
	return unsafe.Add(b.base, uintptr(i)*b.layout.size)
}

func (b *Buffer) checkIndex(i int) {
	if i < 0 || i >= b.length {
		panic(OutOfRangeError{Index: i, Len: b.length})
	}
}

func (b *Buffer) checkType(t reflect.Type) error {
	if t != b.layout.typ {
		return TypeMismatchError{Want: b.layout.typ, Got: t}
	}
	return nil
}
