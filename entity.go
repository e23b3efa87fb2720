package depot

import (
	"iter"

	iter_util "github.com/TheBitDrifter/util/iter"

	"github.com/TheBitDrifter/depot/bitset"
)

// NewEntity returns a fresh id with no components. Ids of removed entities are
// reused, most recently removed first. Creating entities is allowed while the
// storage is locked.
func (sto *storage) NewEntity() EntityID {
	var id EntityID
	if n := len(sto.freeIDs); n > 0 {
		id = sto.freeIDs[n-1]
		sto.freeIDs = sto.freeIDs[:n-1]
	} else {
		sto.nextID++
		id = sto.nextID
	}
	sto.entities.Insert(int(id), bitset.BitSet{})
	bits, _ := sto.entities.GetMut(int(id))
	sto.archetypes.enter(bits)
	return id
}

func (sto *storage) NewEntities(n int) []EntityID {
	ids := make([]EntityID, n)
	for i := range ids {
		ids[i] = sto.NewEntity()
	}
	return ids
}

// RemoveEntity drops an entity and all of its components. It reports false
// for ids that are not alive.
func (sto *storage) RemoveEntity(id EntityID) (bool, error) {
	if !sto.entities.Has(int(id)) {
		return false, nil
	}
	if sto.Locked() {
		return false, LockedStorageError{}
	}
	return sto.destroy(id), nil
}

func (sto *storage) destroy(id EntityID) bool {
	bits, ok := sto.entities.GetMut(int(id))
	if !ok {
		return false
	}
	for cid := range bits.Ones() {
		if set := sto.setAt(ComponentID(cid)); set != nil {
			set.Remove(int(id))
		}
	}
	sto.archetypes.leave(bits.Signature())
	sto.entities.Remove(int(id))
	sto.freeIDs = append(sto.freeIDs, id)

	sto.logger.Trace().Uint32("entity", uint32(id)).Msg("entity removed")
	return true
}

func (sto *storage) EnqueueRemoveEntity(id EntityID) {
	sto.opQueue.EnqueueDestroy(id)
}

func (sto *storage) HasEntity(id EntityID) bool {
	return sto.entities.Has(int(id))
}

func (sto *storage) EntityCount() int {
	return sto.entities.Len()
}

// Entities yields live entities in storage order. The storage is locked for
// the duration of the iteration.
func (sto *storage) Entities() iter.Seq[EntityID] {
	return func(yield func(EntityID) bool) {
		sto.Lock()
		defer sto.Unlock()
		for i := 0; i < sto.entities.Len(); i++ {
			if !yield(EntityID(sto.entities.KeyAt(i))) {
				return
			}
		}
	}
}

// ComponentsOf lists the component ids attached to an entity, ascending.
func (sto *storage) ComponentsOf(id EntityID) []ComponentID {
	bits, ok := sto.entities.GetMut(int(id))
	if !ok {
		return nil
	}
	return componentIDs(bits)
}

func componentIDs(bits *bitset.BitSet) []ComponentID {
	ones := iter_util.Collect(bits.Ones())
	ids := make([]ComponentID, len(ones))
	for i, one := range ones {
		ids[i] = ComponentID(one)
	}
	return ids
}
