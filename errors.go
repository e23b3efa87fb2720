package depot

import "fmt"

type LockedStorageError struct{}

func (e LockedStorageError) Error() string {
	return "storage is currently locked"
}

// LockBitError rejects a named lock outside the mask width.
type LockBitError struct {
	Bit uint32
	Max int
}

func (e LockBitError) Error() string {
	return fmt.Sprintf("lock bit %d out of range [0, %d)", e.Bit, e.Max)
}

type EntityNotFoundError struct {
	Entity EntityID
}

func (e EntityNotFoundError) Error() string {
	return fmt.Sprintf("entity %d does not exist", e.Entity)
}

type ComponentExistsError struct {
	Component Component
	Entity    EntityID
}

func (e ComponentExistsError) Error() string {
	return fmt.Sprintf("component already exists on entity %d: %s", e.Entity, componentName(e.Component))
}

type ComponentNotFoundError struct {
	Component Component
	Entity    EntityID
}

func (e ComponentNotFoundError) Error() string {
	return fmt.Sprintf("component does not exist on entity %d: %s", e.Entity, componentName(e.Component))
}

type EmptyQueryError struct{}

func (e EmptyQueryError) Error() string {
	return "query needs at least one term"
}

type InvalidTermError struct {
	Index int
}

func (e InvalidTermError) Error() string {
	return fmt.Sprintf("query term %d has no component made by FactoryNewComponent", e.Index)
}

// DuplicateTermError rejects a query that names the same component twice.
type DuplicateTermError struct {
	Component     Component
	First, Second Access
}

func (e DuplicateTermError) Error() string {
	return fmt.Sprintf("component %s requested twice in one query (%s, then %s)",
		componentName(e.Component), e.First, e.Second)
}

// AccessError is raised (as a panic) when a cursor is asked for a component in
// a way its query did not grant.
type AccessError struct {
	Component Component
	Reason    string
}

func (e AccessError) Error() string {
	return fmt.Sprintf("cannot access %s through cursor: %s", componentName(e.Component), e.Reason)
}

type CacheFullError struct {
	Capacity int
}

func (e CacheFullError) Error() string {
	return fmt.Sprintf("cache at maximum capacity (%d)", e.Capacity)
}
