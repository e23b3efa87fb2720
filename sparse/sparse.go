// Package sparse implements a paged sparse set: an O(1) map from small
// non-negative integer keys to values packed densely in a type-erased buffer.
//
// The sparse index is a slice of pages, each holding PageSize dense indices.
// Pages are allocated the first time a key in their range is inserted and are
// never released. Every dense slot carries a back-reference to its sparse
// position, so removal swaps the last element into the hole and iteration
// walks only live values.
package sparse

import (
	"iter"
	"math"
	"strconv"

	"github.com/TheBitDrifter/depot/buffer"
)

const DefaultPageSize = 1000

const absent = math.MaxUint32

type backRef struct {
	page, offset uint32
}

// Set is the untyped core of a sparse set. It can locate, count and remove
// keys without knowing the value type; use Of or New for typed access.
type Set struct {
	pageSize int
	pages    [][]uint32
	refs     buffer.View[backRef]
	values   *buffer.Buffer
}

// NewSet returns an empty set storing values of the given layout.
func NewSet(layout buffer.Layout, pageSize int) *Set {
	if pageSize <= 0 {
		panic("sparse: invalid page size " + strconv.Itoa(pageSize))
	}
	return &Set{
		pageSize: pageSize,
		refs:     buffer.MustAs[backRef](buffer.New(buffer.LayoutOf[backRef]())),
		values:   buffer.New(layout),
	}
}

func (s *Set) PageSize() int         { return s.pageSize }
func (s *Set) Layout() buffer.Layout { return s.values.Layout() }
func (s *Set) Len() int              { return s.values.Len() }

// Pages is the length of the sparse index, allocated or not.
func (s *Set) Pages() int { return len(s.pages) }

func (s *Set) locate(key int) (page, offset int) {
	return key / s.pageSize, key % s.pageSize
}

// IndexOf returns the dense slot holding key.
func (s *Set) IndexOf(key int) (int, bool) {
	if key < 0 {
		return 0, false
	}
	p, o := s.locate(key)
	if p >= len(s.pages) || s.pages[p] == nil {
		return 0, false
	}
	d := s.pages[p][o]
	if d == absent {
		return 0, false
	}
	return int(d), true
}

func (s *Set) Has(key int) bool {
	_, ok := s.IndexOf(key)
	return ok
}

// emplace reserves a zeroed dense slot for key. It reports false and the
// existing slot when key is already present.
func (s *Set) emplace(key int) (int, bool) {
	if key < 0 {
		panic("sparse: negative key " + strconv.Itoa(key))
	}
	p, o := s.locate(key)
	if p >= len(s.pages) {
		s.pages = append(s.pages, make([][]uint32, p+1-len(s.pages))...)
	}
	page := s.pages[p]
	if page == nil {
		page = make([]uint32, s.pageSize)
		for i := range page {
			page[i] = absent
		}
		s.pages[p] = page
	}
	if d := page[o]; d != absent {
		return int(d), false
	}
	d := s.values.Emplace()
	s.refs.Push(backRef{page: uint32(p), offset: uint32(o)})
	page[o] = uint32(d)
	return d, true
}

// Remove deletes key by moving the last dense element into its slot.
// Removing an absent key is a no-op that reports false.
func (s *Set) Remove(key int) bool {
	d, ok := s.IndexOf(key)
	if !ok {
		return false
	}
	last := s.Len() - 1
	if d != last {
		moved := *s.refs.At(last)
		s.pages[moved.page][moved.offset] = uint32(d)
	}
	s.values.RemoveSwapWithLast(d)
	s.refs.Buffer().RemoveSwapWithLast(d)

	p, o := s.locate(key)
	s.pages[p][o] = absent
	return true
}

// KeyAt returns the key stored in dense slot i.
func (s *Set) KeyAt(i int) int {
	r := s.refs.At(i)
	return int(r.page)*s.pageSize + int(r.offset)
}

// Keys yields every key in dense order.
func (s *Set) Keys() iter.Seq[int] {
	return func(yield func(int) bool) {
		for i := 0; i < s.Len(); i++ {
			if !yield(s.KeyAt(i)) {
				return
			}
		}
	}
}

// Clear removes every key. Allocated pages are kept.
func (s *Set) Clear() {
	for _, r := range s.refs.Slice() {
		s.pages[r.page][r.offset] = absent
	}
	s.values.Clear()
	s.refs.Buffer().Clear()
}
