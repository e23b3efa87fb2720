package bitset

// InPlaceUnion sets every bit that is on in o, growing b to o's length.
func (b *BitSet) InPlaceUnion(o *BitSet) {
	b.grow(len(o.words))
	for i, w := range o.words {
		b.words[i] |= w
	}
}

// InPlaceIntersection keeps only bits on in both sets. Words of b beyond o's
// length are zeroed; b never grows.
func (b *BitSet) InPlaceIntersection(o *BitSet) {
	for i := range b.words {
		if i < len(o.words) {
			b.words[i] &= o.words[i]
		} else {
			b.words[i] = 0
		}
	}
}

// InPlaceDifference turns off every bit of b that is on in o.
func (b *BitSet) InPlaceDifference(o *BitSet) {
	n := min(len(b.words), len(o.words))
	for i := 0; i < n; i++ {
		b.words[i] &^= o.words[i]
	}
}

// InPlaceComplement flips every allocated bit.
func (b *BitSet) InPlaceComplement() {
	for i := range b.words {
		b.words[i] = ^b.words[i]
	}
}

func (b *BitSet) Union(o *BitSet) *BitSet {
	c := b.Clone()
	c.InPlaceUnion(o)
	return c
}

func (b *BitSet) Intersection(o *BitSet) *BitSet {
	c := b.Clone()
	c.InPlaceIntersection(o)
	return c
}

func (b *BitSet) Difference(o *BitSet) *BitSet {
	c := b.Clone()
	c.InPlaceDifference(o)
	return c
}

func (b *BitSet) Complement() *BitSet {
	c := b.Clone()
	c.InPlaceComplement()
	return c
}

// ContainsAll reports whether every bit on in o is also on in b.
func (b *BitSet) ContainsAll(o *BitSet) bool {
	for i, w := range o.words {
		var have uint64
		if i < len(b.words) {
			have = b.words[i]
		}
		if have&w != w {
			return false
		}
	}
	return true
}
