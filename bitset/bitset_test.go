package bitset

import (
	"math/rand"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWordBoundaries(t *testing.T) {
	var b BitSet
	b.Set(0, true)
	b.Set(63, true)
	b.Set(64, true)

	assert.True(t, b.Get(0))
	assert.True(t, b.Get(63))
	assert.True(t, b.Get(64))
	assert.False(t, b.Get(65))
	assert.False(t, b.Get(1<<20), "unallocated bits read as off")
	assert.Equal(t, 128, b.Len())
	assert.Equal(t, 3, b.Count())
}

func TestSetThenGet(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	var b BitSet
	for n := 0; n < 500; n++ {
		i := rng.Intn(4096)
		b.Set(i, true)
		require.True(t, b.Get(i), "bit %d after on", i)
		b.Set(i, false)
		require.False(t, b.Get(i), "bit %d after off", i)
	}
}

func TestOffPastEndIsNoop(t *testing.T) {
	b := Of(3)
	b.Off(1000)
	assert.Equal(t, 64, b.Len())
	assert.True(t, b.Get(3))
}

func TestNegativeIndex(t *testing.T) {
	var b BitSet
	assert.False(t, b.Get(-1))
	assert.Panics(t, func() { b.On(-1) })
}

func TestEqualIgnoresTrailingZeroWords(t *testing.T) {
	a := Of(1, 70)
	b := New(1024)
	b.On(1)
	b.On(70)
	b.On(900)
	b.Off(900)

	assert.NotEqual(t, a.Len(), b.Len())
	assert.True(t, a.Equal(b))
	assert.True(t, b.Equal(a))
	assert.Equal(t, a.Signature(), b.Signature())

	b.On(2)
	assert.False(t, a.Equal(b))
	assert.NotEqual(t, a.Signature(), b.Signature())
}

func TestEmptySetsAreEqual(t *testing.T) {
	var zero BitSet
	cleared := Of(5, 500)
	cleared.Clear()

	assert.True(t, zero.Equal(cleared))
	assert.True(t, zero.Equal(New(256)))
	assert.Equal(t, zero.Signature(), cleared.Signature())
	assert.True(t, cleared.IsEmpty())
	assert.Equal(t, 0, cleared.Len())
}

func TestAlgebraIdentities(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	random := func() *BitSet {
		b := &BitSet{}
		for n := rng.Intn(40); n > 0; n-- {
			b.On(rng.Intn(300))
		}
		return b
	}
	for round := 0; round < 200; round++ {
		a, b := random(), random()

		require.True(t, a.Union(b).Intersection(a).Equal(a), "(A|B)&A == A for %v %v", a, b)
		require.True(t, a.Intersection(a.Complement()).IsEmpty(), "A & ^A empty for %v", a)
		require.True(t, a.Union(b).ContainsAll(a))
		require.True(t, a.Difference(b).Intersection(b).IsEmpty())
	}
}

func TestInPlaceUnionGrows(t *testing.T) {
	a := Of(1)
	b := Of(200)
	a.InPlaceUnion(b)
	assert.Equal(t, 256, a.Len())
	assert.Equal(t, []int{1, 200}, slices.Collect(a.Ones()))
}

func TestInPlaceIntersectionNeverGrows(t *testing.T) {
	a := Of(1, 2)
	b := Of(2, 300)
	a.InPlaceIntersection(b)
	assert.Equal(t, 64, a.Len())
	assert.Equal(t, []int{2}, slices.Collect(a.Ones()))

	c := Of(2, 300)
	c.InPlaceIntersection(Of(2))
	assert.Equal(t, []int{2}, slices.Collect(c.Ones()))
}

func TestInPlaceDifferenceStaysInReceiver(t *testing.T) {
	a := Of(1, 2, 100)
	a.InPlaceDifference(Of(2, 500))
	assert.Equal(t, 128, a.Len())
	assert.Equal(t, []int{1, 100}, slices.Collect(a.Ones()))
}

func TestComplementFlipsAllocatedBits(t *testing.T) {
	a := Of(0, 10)
	c := a.Complement()
	assert.Equal(t, 62, c.Count())
	assert.False(t, c.Get(0))
	assert.True(t, c.Get(1))
	assert.False(t, c.Get(64), "complement does not extend past allocation")

	assert.Equal(t, 2, a.Count(), "value variant leaves receiver alone")
}

func TestAllCoversEveryAllocatedBit(t *testing.T) {
	b := Of(3, 65)
	var seen, on int
	for i, v := range b.All() {
		assert.Equal(t, seen, i)
		seen++
		if v {
			on++
		}
	}
	assert.Equal(t, 128, seen)
	assert.Equal(t, 2, on)
}

func TestOnesStopsEarly(t *testing.T) {
	b := Of(1, 5, 9)
	var got []int
	for i := range b.Ones() {
		got = append(got, i)
		if len(got) == 2 {
			break
		}
	}
	assert.Equal(t, []int{1, 5}, got)
}

func TestString(t *testing.T) {
	assert.Equal(t, "{}", (&BitSet{}).String())
	assert.Equal(t, "{0 64 129}", Of(129, 0, 64).String())
}
