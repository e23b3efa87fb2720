package depot

import (
	"github.com/TheBitDrifter/depot/bitset"
)

var _ Archetype = &archetype{}

type archetypeID uint32

// archetype counts the live entities sharing one component set. Component
// values stay in the per-type sparse sets.
type archetype struct {
	id         archetypeID
	signature  bitset.Signature
	components *bitset.BitSet
	size       int
}

type archetypes struct {
	sto         *storage
	nextID      archetypeID
	asSlice     []*archetype
	bySignature map[bitset.Signature]*archetype
}

func newArchetypes(sto *storage) *archetypes {
	return &archetypes{
		sto:         sto,
		nextID:      1,
		bySignature: make(map[bitset.Signature]*archetype),
	}
}

func (a *archetypes) enter(bits *bitset.BitSet) *archetype {
	sig := bits.Signature()
	arch, found := a.bySignature[sig]
	if !found {
		arch = &archetype{
			id:         a.nextID,
			signature:  sig,
			components: bits.Clone(),
		}
		a.asSlice = append(a.asSlice, arch)
		a.bySignature[sig] = arch
		a.nextID++

		a.sto.logger.Debug().
			Uint32("archetype", uint32(arch.id)).
			Stringer("components", arch.components).
			Msg("archetype created")
	}
	arch.size++
	return arch
}

func (a *archetypes) leave(sig bitset.Signature) {
	if arch, ok := a.bySignature[sig]; ok && arch.size > 0 {
		arch.size--
	}
}

func (a *archetypes) move(from bitset.Signature, to *bitset.BitSet) {
	a.leave(from)
	a.enter(to)
}

func (a *archetype) ID() uint32 {
	return uint32(a.id)
}

func (a *archetype) Signature() bitset.Signature {
	return a.signature
}

func (a *archetype) Components() []ComponentID {
	return componentIDs(a.components)
}

func (a *archetype) Len() int {
	return a.size
}
