package depot

import "github.com/TheBitDrifter/depot/sparse"

// Read requests shared access to the component in a query.
func (c AccessibleComponent[T]) Read() Term {
	return Term{component: c.Component, access: AccessRead}
}

// Write requests exclusive access to the component in a query.
func (c AccessibleComponent[T]) Write() Term {
	return Term{component: c.Component, access: AccessWrite}
}

// GetFromCursor returns a mutable pointer to the component of the entity at
// the cursor position. It panics with AccessError unless the cursor's query
// requested the component for write.
func (c AccessibleComponent[T]) GetFromCursor(cursor *Cursor) *T {
	i := c.termIndex(cursor)
	if cursor.query.terms[i].access != AccessWrite {
		panic(AccessError{Component: c.Component, Reason: "requested for read only"})
	}
	return sparse.MustOf[T](cursor.sets[i]).At(cursor.slots[i])
}

// ValueFromCursor returns a copy of the component of the entity at the cursor
// position. Both read and write terms grant it.
func (c AccessibleComponent[T]) ValueFromCursor(cursor *Cursor) T {
	i := c.termIndex(cursor)
	return *sparse.MustOf[T](cursor.sets[i]).At(cursor.slots[i])
}

// CheckCursor reports whether the cursor's query includes the component.
func (c AccessibleComponent[T]) CheckCursor(cursor *Cursor) bool {
	_, ok := cursor.termFor(c.Component)
	return ok
}

func (c AccessibleComponent[T]) termIndex(cursor *Cursor) int {
	i, ok := cursor.termFor(c.Component)
	if !ok {
		panic(AccessError{Component: c.Component, Reason: "not part of the query"})
	}
	if !cursor.positioned() {
		panic(AccessError{Component: c.Component, Reason: "cursor is not on an entity"})
	}
	return i
}
