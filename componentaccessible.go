package depot

import (
	"iter"

	"github.com/TheBitDrifter/depot/sparse"
)

// typedSet returns the storage's set for this component, if one was created.
func (c AccessibleComponent[T]) typedSet(sto *storage) (sparse.Typed[T], bool) {
	cid, ok := sto.lookup(c.Component)
	if !ok {
		return sparse.Typed[T]{}, false
	}
	set := sto.setAt(cid)
	if set == nil {
		return sparse.Typed[T]{}, false
	}
	return sparse.MustOf[T](set), true
}

// Add attaches the component to an entity using the storage's default value
// for T, or the zero value when none is set.
func (c AccessibleComponent[T]) Add(sto Storage, id EntityID) error {
	s := sto.(*storage)
	if s.Locked() {
		return LockedStorageError{}
	}
	return insertComponent(s, c.Component, id, defaultValue[T](s, s.ComponentIDFor(c.Component)))
}

func (c AccessibleComponent[T]) AddWithValue(sto Storage, id EntityID, value T) error {
	s := sto.(*storage)
	if s.Locked() {
		return LockedStorageError{}
	}
	return insertComponent(s, c.Component, id, value)
}

func (c AccessibleComponent[T]) Remove(sto Storage, id EntityID) error {
	s := sto.(*storage)
	if s.Locked() {
		return LockedStorageError{}
	}
	return s.removeComponent(c.Component, id)
}

// EnqueueAdd records an add to run at the next commit. The default value is
// built at commit time.
func (c AccessibleComponent[T]) EnqueueAdd(sto Storage, id EntityID) {
	s := sto.(*storage)
	s.opQueue.EnqueueComponentOp(operation{
		typ:       opAddComponent,
		entity:    id,
		component: c.Component,
		insert: func(s *storage) error {
			return insertComponent(s, c.Component, id, defaultValue[T](s, s.ComponentIDFor(c.Component)))
		},
	})
}

func (c AccessibleComponent[T]) EnqueueAddWithValue(sto Storage, id EntityID, value T) {
	s := sto.(*storage)
	s.opQueue.EnqueueComponentOp(operation{
		typ:       opAddComponent,
		entity:    id,
		component: c.Component,
		insert: func(s *storage) error {
			return insertComponent(s, c.Component, id, value)
		},
	})
}

func (c AccessibleComponent[T]) EnqueueRemove(sto Storage, id EntityID) {
	s := sto.(*storage)
	s.opQueue.EnqueueComponentOp(operation{
		typ:       opRemoveComponent,
		entity:    id,
		component: c.Component,
	})
}

// SetDefault sets the constructor Add uses for this component in sto.
func (c AccessibleComponent[T]) SetDefault(sto Storage, fn func() T) error {
	s := sto.(*storage)
	_, err := s.defaults.Register(defaultKey(s.ComponentIDFor(c.Component)), fn)
	return err
}

func (c AccessibleComponent[T]) Has(sto Storage, id EntityID) bool {
	set, ok := c.typedSet(sto.(*storage))
	return ok && set.Has(int(id))
}

// Len reports how many entities carry the component.
func (c AccessibleComponent[T]) Len(sto Storage) int {
	set, ok := c.typedSet(sto.(*storage))
	if !ok {
		return 0
	}
	return set.Len()
}

// GetFromEntity returns a pointer to the entity's value. The pointer is valid
// until the next structural change of the storage.
func (c AccessibleComponent[T]) GetFromEntity(sto Storage, id EntityID) (*T, bool) {
	set, ok := c.typedSet(sto.(*storage))
	if !ok {
		return nil, false
	}
	return set.GetMut(int(id))
}

func (c AccessibleComponent[T]) ValueFromEntity(sto Storage, id EntityID) (T, bool) {
	set, ok := c.typedSet(sto.(*storage))
	if !ok {
		var zero T
		return zero, false
	}
	return set.Get(int(id))
}

// Iterate yields every entity with the component and a copy of its value. The
// storage is locked while iterating.
func (c AccessibleComponent[T]) Iterate(sto Storage) iter.Seq2[EntityID, T] {
	return func(yield func(EntityID, T) bool) {
		s := sto.(*storage)
		set, ok := c.typedSet(s)
		if !ok {
			return
		}
		s.Lock()
		defer s.Unlock()
		for key, value := range set.All() {
			if !yield(EntityID(key), value) {
				return
			}
		}
	}
}

func (c AccessibleComponent[T]) IterateMut(sto Storage) iter.Seq2[EntityID, *T] {
	return func(yield func(EntityID, *T) bool) {
		s := sto.(*storage)
		set, ok := c.typedSet(s)
		if !ok {
			return
		}
		s.Lock()
		defer s.Unlock()
		for key, value := range set.AllMut() {
			if !yield(EntityID(key), value) {
				return
			}
		}
	}
}
