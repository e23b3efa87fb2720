package depot

import "github.com/TheBitDrifter/table"

type factory struct{}

var Factory factory

func (f factory) NewStorage(schema table.Schema) Storage {
	return newStorage(schema)
}

func (f factory) NewQuery(terms ...Term) (Query, error) {
	return newQuery(terms...)
}

func (f factory) NewCursor(query Query, storage Storage) *Cursor {
	return newCursor(query, storage)
}

func (f factory) NewSystems(storage Storage) *Systems {
	return newSystems(storage)
}

// FactoryNewComponent returns the handle for component type T. Calls for the
// same T return equal handles.
func FactoryNewComponent[T any]() AccessibleComponent[T] {
	return AccessibleComponent[T]{
		Component: componentFor[T](),
	}
}

func FactoryNewCache[K comparable, T any](cap int) Cache[K, T] {
	return &SimpleCache[K, T]{
		itemIndices: make(map[K]int),
		maxCapacity: cap,
	}
}
