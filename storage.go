package depot

import (
	"iter"
	"math"

	"github.com/TheBitDrifter/mask"
	"github.com/TheBitDrifter/table"
	"github.com/rs/zerolog"

	"github.com/TheBitDrifter/depot/bitset"
	"github.com/TheBitDrifter/depot/buffer"
	"github.com/TheBitDrifter/depot/sparse"
)

var _ Storage = &storage{}

var noLocks mask.Mask

type storage struct {
	schema   table.Schema
	pageSize int
	logger   zerolog.Logger

	// Storage-local ids of every component type seen so far
	ids map[Component]ComponentID

	// One sparse set per component type, indexed by ComponentID
	components []*sparse.Set

	// Component bits of every live entity
	entities sparse.Typed[bitset.BitSet]
	freeIDs  []EntityID
	nextID   EntityID

	archetypes *archetypes
	defaults   Cache[bitset.Signature, any]
	opQueue    opQueue

	lockCount int
	locks     mask.Mask
}

func newStorage(schema table.Schema) Storage {
	sto := &storage{
		schema:   schema,
		pageSize: Config.pageSize,
		logger:   Config.logger.With().Str("component", "depot").Logger(),
		ids:      make(map[Component]ComponentID),
		entities: sparse.New[bitset.BitSet](Config.pageSize),
		defaults: FactoryNewCache[bitset.Signature, any](math.MaxInt),
		opQueue:  newOpQueue(),
	}
	sto.archetypes = newArchetypes(sto)
	return sto
}

// ComponentIDFor returns the storage-local id of c, assigning one on first use.
func (sto *storage) ComponentIDFor(c Component) ComponentID {
	c = elementOf(c)
	if id, ok := sto.ids[c]; ok {
		return id
	}
	sto.schema.Register(c)
	id := ComponentID(sto.schema.RowIndexFor(c))
	sto.ids[c] = id
	return id
}

// lookup is ComponentIDFor without registration.
func (sto *storage) lookup(c Component) (ComponentID, bool) {
	id, ok := sto.ids[elementOf(c)]
	return id, ok
}

func (sto *storage) setAt(id ComponentID) *sparse.Set {
	if int(id) >= len(sto.components) {
		return nil
	}
	return sto.components[id]
}

func (sto *storage) setFor(id ComponentID, layout buffer.Layout) *sparse.Set {
	if int(id) >= len(sto.components) {
		grown := make([]*sparse.Set, id+1)
		copy(grown, sto.components)
		sto.components = grown
	}
	if sto.components[id] == nil {
		sto.components[id] = sparse.NewSet(layout, sto.pageSize)
		sto.logger.Debug().
			Uint32("component_id", uint32(id)).
			Str("type", layout.Type().String()).
			Msg("component set created")
	}
	return sto.components[id]
}

// Signature returns the signature of the bit set holding exactly the given
// components.
func (sto *storage) Signature(components ...Component) bitset.Signature {
	var bits bitset.BitSet
	for _, c := range components {
		bits.On(int(sto.ComponentIDFor(c)))
	}
	return bits.Signature()
}

func (sto *storage) Archetype(sig bitset.Signature) (Archetype, bool) {
	arch, ok := sto.archetypes.bySignature[sig]
	if !ok {
		return nil, false
	}
	return arch, true
}

func (sto *storage) ArchetypeOf(id EntityID) (Archetype, bool) {
	bits, ok := sto.entities.GetMut(int(id))
	if !ok {
		return nil, false
	}
	return sto.Archetype(bits.Signature())
}

func (sto *storage) Archetypes() iter.Seq[Archetype] {
	return func(yield func(Archetype) bool) {
		for _, arch := range sto.archetypes.asSlice {
			if !yield(arch) {
				return
			}
		}
	}
}

func (sto *storage) Locked() bool {
	return sto.lockCount > 0 || sto.locks != noLocks
}

// Lock defers structural changes until the matching Unlock. Locks nest.
func (sto *storage) Lock() {
	sto.lockCount++
}

// Unlock releases one Lock. Queued changes are committed once nothing holds
// the storage.
func (sto *storage) Unlock() {
	if sto.lockCount == 0 {
		return
	}
	sto.lockCount--
	sto.commitIfUnlocked()
}

// AddLock holds the storage under a caller-chosen bit until RemoveLock.
func (sto *storage) AddLock(bit uint32) error {
	if err := checkLockBit(bit); err != nil {
		return err
	}
	sto.locks.Mark(bit)
	return nil
}

func (sto *storage) RemoveLock(bit uint32) error {
	if err := checkLockBit(bit); err != nil {
		return err
	}
	sto.locks.Unmark(bit)
	sto.commitIfUnlocked()
	return nil
}

func checkLockBit(bit uint32) error {
	if uint64(bit) >= uint64(mask.MaxBits) {
		return LockBitError{Bit: bit, Max: int(mask.MaxBits)}
	}
	return nil
}

func (sto *storage) commitIfUnlocked() {
	if sto.Locked() {
		return
	}
	err := sto.processOperationQueue()
	if err != nil {
		panic(err)
	}
}

// CommitChanges applies every queued change.
func (sto *storage) CommitChanges() error {
	if sto.Locked() {
		return LockedStorageError{}
	}
	return sto.processOperationQueue()
}

func (sto *storage) PendingChanges() int {
	return sto.opQueue.Len()
}

// defaultKey is the signature of the set holding only id.
func defaultKey(id ComponentID) bitset.Signature {
	return bitset.Of(int(id)).Signature()
}

func defaultValue[T any](sto *storage, id ComponentID) T {
	if idx, ok := sto.defaults.GetIndex(defaultKey(id)); ok {
		if fn, ok := (*sto.defaults.GetItem(idx)).(func() T); ok {
			return fn()
		}
	}
	var zero T
	return zero
}

// insertComponent attaches value to an entity. It is shared by direct adds and
// queued adds, so it does not check the lock.
func insertComponent[T any](sto *storage, c Component, id EntityID, value T) error {
	bits, ok := sto.entities.GetMut(int(id))
	if !ok {
		return EntityNotFoundError{Entity: id}
	}
	cid := sto.ComponentIDFor(c)
	set := sparse.MustOf[T](sto.setFor(cid, buffer.LayoutOf[T]()))
	if !set.Insert(int(id), value) {
		return ComponentExistsError{Component: c, Entity: id}
	}
	from := bits.Signature()
	bits.On(int(cid))
	sto.archetypes.move(from, bits)
	return nil
}

func (sto *storage) removeComponent(c Component, id EntityID) error {
	bits, ok := sto.entities.GetMut(int(id))
	if !ok {
		return EntityNotFoundError{Entity: id}
	}
	cid, known := sto.lookup(c)
	if !known {
		return ComponentNotFoundError{Component: c, Entity: id}
	}
	set := sto.setAt(cid)
	if set == nil || !set.Remove(int(id)) {
		return ComponentNotFoundError{Component: c, Entity: id}
	}
	from := bits.Signature()
	bits.Off(int(cid))
	sto.archetypes.move(from, bits)
	return nil
}
