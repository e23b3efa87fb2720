// Package bitset implements a growable set of bit flags stored in 64-bit
// words. A BitSet doubles as a structural fingerprint: Equal ignores trailing
// zero words and Signature hashes consistently with Equal.
package bitset

import (
	"encoding/binary"
	"iter"
	"math/bits"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
)

const wordBits = 64

// Signature is a hash of a BitSet's set bits.
type Signature uint64

// BitSet is a dynamic bit set. The zero value is an empty set ready to use.
type BitSet struct {
	words []uint64
}

// New returns an empty set with room for n bits before it needs to grow.
func New(n int) *BitSet {
	return &BitSet{words: make([]uint64, 0, wordsFor(n))}
}

// Of returns a set with the given bits on.
func Of(indices ...int) *BitSet {
	b := &BitSet{}
	for _, i := range indices {
		b.On(i)
	}
	return b
}

func wordsFor(n int) int {
	return (n + wordBits - 1) / wordBits
}

func locate(i int) (word int, mask uint64) {
	if i < 0 {
		panic("bitset: negative index " + strconv.Itoa(i))
	}
	return i / wordBits, 1 << uint(i%wordBits)
}

func (b *BitSet) grow(words int) {
	if words <= len(b.words) {
		return
	}
	if words <= cap(b.words) {
		b.words = b.words[:words]
		return
	}
	grown := make([]uint64, words, max(words, 2*cap(b.words)))
	copy(grown, b.words)
	b.words = grown
}

// Set turns bit i on or off, growing the set if needed to turn it on.
func (b *BitSet) Set(i int, value bool) {
	if value {
		b.On(i)
	} else {
		b.Off(i)
	}
}

func (b *BitSet) On(i int) {
	w, m := locate(i)
	b.grow(w + 1)
	b.words[w] |= m
}

// Off turns bit i off. Bits past the allocated words are already off.
func (b *BitSet) Off(i int) {
	w, m := locate(i)
	if w < len(b.words) {
		b.words[w] &^= m
	}
}

// Get reports whether bit i is on. It never fails for large indices.
func (b *BitSet) Get(i int) bool {
	if i < 0 {
		return false
	}
	w, m := locate(i)
	return w < len(b.words) && b.words[w]&m != 0
}

// Clear releases every word.
func (b *BitSet) Clear() {
	b.words = nil
}

// Len is the number of allocated bits.
func (b *BitSet) Len() int {
	return len(b.words) * wordBits
}

// Count is the number of bits that are on.
func (b *BitSet) Count() int {
	n := 0
	for _, w := range b.words {
		n += bits.OnesCount64(w)
	}
	return n
}

func (b *BitSet) IsEmpty() bool {
	for _, w := range b.words {
		if w != 0 {
			return false
		}
	}
	return true
}

func (b *BitSet) Clone() *BitSet {
	if b.words == nil {
		return &BitSet{}
	}
	words := make([]uint64, len(b.words))
	copy(words, b.words)
	return &BitSet{words: words}
}

// trimmed drops trailing zero words.
func (b *BitSet) trimmed() []uint64 {
	n := len(b.words)
	for n > 0 && b.words[n-1] == 0 {
		n--
	}
	return b.words[:n]
}

// Equal reports whether b and o have the same bits on.
func (b *BitSet) Equal(o *BitSet) bool {
	x, y := b.trimmed(), o.trimmed()
	if len(x) != len(y) {
		return false
	}
	for i := range x {
		if x[i] != y[i] {
			return false
		}
	}
	return true
}

// Signature hashes the set. Sets that are Equal have the same signature.
func (b *BitSet) Signature() Signature {
	d := xxhash.New()
	var buf [8]byte
	for _, w := range b.trimmed() {
		binary.LittleEndian.PutUint64(buf[:], w)
		d.Write(buf[:])
	}
	return Signature(d.Sum64())
}

// All yields every allocated bit with its state, in index order. The set must
// not be mutated until the sequence is exhausted or abandoned.
func (b *BitSet) All() iter.Seq2[int, bool] {
	return func(yield func(int, bool) bool) {
		for w, word := range b.words {
			for bit := 0; bit < wordBits; bit++ {
				if !yield(w*wordBits+bit, word&(1<<uint(bit)) != 0) {
					return
				}
			}
		}
	}
}

// Ones yields the index of every bit that is on, in ascending order.
func (b *BitSet) Ones() iter.Seq[int] {
	return func(yield func(int) bool) {
		for w, word := range b.words {
			for word != 0 {
				bit := bits.TrailingZeros64(word)
				if !yield(w*wordBits + bit) {
					return
				}
				word &= word - 1
			}
		}
	}
}

func (b *BitSet) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	first := true
	for i := range b.Ones() {
		if !first {
			sb.WriteByte(' ')
		}
		sb.WriteString(strconv.Itoa(i))
		first = false
	}
	sb.WriteByte('}')
	return sb.String()
}
