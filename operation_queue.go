package depot

import (
	"errors"

	"github.com/rotisserie/eris"
)

type operation struct {
	typ       operationType
	entity    EntityID
	component Component

	// insert attaches the typed value for opAddComponent
	insert func(*storage) error
}

type operationType int

const (
	opSkip operationType = iota - 1
	opAddComponent
	opRemoveComponent
	opDestroy
)

func (t operationType) String() string {
	switch t {
	case opAddComponent:
		return "add component"
	case opRemoveComponent:
		return "remove component"
	case opDestroy:
		return "destroy"
	default:
		return "skip"
	}
}

type opKey struct {
	entity    EntityID
	component Component
}

// opQueue records structural changes until the storage commits them. For a
// given entity and component only the most recent intent is kept.
type opQueue struct {
	componentOps   []operation
	destroyOps     []EntityID
	pendingDestroy map[EntityID]struct{}
	pendingMods    map[opKey]int
}

func newOpQueue() opQueue {
	return opQueue{
		pendingDestroy: make(map[EntityID]struct{}),
		pendingMods:    make(map[opKey]int),
	}
}

func (q *opQueue) Len() int {
	return len(q.pendingMods) + len(q.destroyOps)
}

func (q *opQueue) EnqueueComponentOp(op operation) {
	// If entity is pending destroy, ignore component operations
	if _, isDestroyed := q.pendingDestroy[op.entity]; isDestroyed {
		return
	}

	key := opKey{entity: op.entity, component: op.component}
	if existingIdx, exists := q.pendingMods[key]; exists {
		q.componentOps[existingIdx] = op
		return
	}

	q.pendingMods[key] = len(q.componentOps)
	q.componentOps = append(q.componentOps, op)
}

func (q *opQueue) EnqueueDestroy(id EntityID) {
	if _, exists := q.pendingDestroy[id]; exists {
		return
	}
	q.pendingDestroy[id] = struct{}{}
	q.destroyOps = append(q.destroyOps, id)

	// Remove any pending component operations for this entity
	for key, idx := range q.pendingMods {
		if key.entity == id {
			q.componentOps[idx].typ = opSkip
			delete(q.pendingMods, key)
		}
	}
}

func (q *opQueue) reset() {
	q.componentOps = q.componentOps[:0]
	q.destroyOps = q.destroyOps[:0]
	clear(q.pendingDestroy)
	clear(q.pendingMods)
}

// processOperationQueue applies component changes, then destroys. Changes that
// no longer apply, such as adding a component the entity already has, are
// skipped.
func (sto *storage) processOperationQueue() error {
	q := &sto.opQueue
	if len(q.componentOps) == 0 && len(q.destroyOps) == 0 {
		return nil
	}
	defer q.reset()

	applied, skipped := 0, 0
	for _, op := range q.componentOps {
		var err error
		switch op.typ {
		case opAddComponent:
			err = op.insert(sto)
		case opRemoveComponent:
			err = sto.removeComponent(op.component, op.entity)
		default:
			continue
		}
		switch {
		case err == nil:
			applied++
		case isStaleOp(err):
			skipped++
			sto.logger.Trace().Err(err).Stringer("op", op.typ).Msg("queued change skipped")
		default:
			return eris.Wrapf(err, "failed to apply queued %s for entity %d", op.typ, op.entity)
		}
	}

	for _, id := range q.destroyOps {
		if sto.destroy(id) {
			applied++
		} else {
			skipped++
		}
	}

	sto.logger.Debug().Int("applied", applied).Int("skipped", skipped).Msg("queued changes committed")
	return nil
}

func isStaleOp(err error) bool {
	var notFound EntityNotFoundError
	var exists ComponentExistsError
	var missing ComponentNotFoundError
	return errors.As(err, &notFound) || errors.As(err, &exists) || errors.As(err, &missing)
}
