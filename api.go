package depot

import (
	"iter"

	"github.com/TheBitDrifter/depot/bitset"
	"github.com/TheBitDrifter/depot/sparse"
)

// EntityID identifies an entity. Zero is never a live entity.
type EntityID uint32

// ComponentID is the small integer a storage assigns to a component type. It
// indexes the storage's per-type sparse sets and the bits of entity bit sets.
type ComponentID uint32

type Storage interface {
	NewEntity() EntityID
	NewEntities(n int) []EntityID
	RemoveEntity(EntityID) (bool, error)
	EnqueueRemoveEntity(EntityID)
	HasEntity(EntityID) bool
	EntityCount() int
	Entities() iter.Seq[EntityID]
	ComponentsOf(EntityID) []ComponentID
	ComponentIDFor(Component) ComponentID
	Signature(...Component) bitset.Signature
	Archetype(bitset.Signature) (Archetype, bool)
	ArchetypeOf(EntityID) (Archetype, bool)
	Archetypes() iter.Seq[Archetype]
	CommitChanges() error
	PendingChanges() int
	Locked() bool
	Lock()
	Unlock()
	// Lock bits range over [0, mask.MaxBits).
	AddLock(bit uint32) error
	RemoveLock(bit uint32) error
}

// Archetype groups the entities that carry exactly the same component types.
type Archetype interface {
	ID() uint32
	Signature() bitset.Signature
	Components() []ComponentID
	Len() int
}

type Query interface {
	Terms() []Term
}

// System is a unit of behavior driven once per phase. Embed NopSystem to
// implement only some phases.
type System interface {
	Start(Storage) error
	Update(Storage) error
	FixedUpdate(Storage) error
	Render(Storage) error
}

type iCursor interface {
	Entities() iter.Seq[EntityID]
	Next() bool
}

type Cache[K comparable, T any] interface {
	GetIndex(K) (int, bool)
	GetItem(int) *T
	GetItem32(uint32) *T
	Register(K, T) (int, error)
	Len() int
}

// Warning: internal Dependencies abound!
type Cursor struct {
	// The validated query to join
	query *query

	// The storage to iterate over
	storage *storage

	// Per-term sparse sets; the last one drives iteration
	sets []*sparse.Set

	// key -> dense slot for every term except the driver
	lookups []map[int]int

	// Current iteration state
	slots       []int
	driverIndex int
	current     EntityID

	initialized bool
	matchable   bool
}

type AccessibleComponent[T any] struct {
	Component
}

type SimpleCache[K comparable, T any] struct {
	items       []T
	itemIndices map[K]int
	maxCapacity int
}
