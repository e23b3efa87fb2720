/*
Package depot provides an Entity-Component-System (ECS) storage engine built on
paged sparse sets.

Every component type gets its own sparse set keyed by entity id, so adding or
removing a component never moves the entity's other data. Each entity carries
a bit set of the component types it has, and entities sharing the same bit set
are counted in an archetype.

Core Concepts:

  - Entity: A reusable integer id.
  - Component: Any Go type attached to entities through a typed handle.
  - Query: A list of components with read or write access, validated once.
  - Cursor: Joins the query's sparse sets and walks the matching entities.
  - Systems: Behavior run per phase against a storage.

Basic Usage:

	schema := table.Factory.NewSchema()
	storage := depot.Factory.NewStorage(schema)

	position := depot.FactoryNewComponent[Position]()
	velocity := depot.FactoryNewComponent[Velocity]()

	e := storage.NewEntity()
	position.Add(storage, e)
	velocity.AddWithValue(storage, e, Velocity{X: 1})

	query, _ := depot.Factory.NewQuery(position.Write(), velocity.Read())
	cursor := depot.Factory.NewCursor(query, storage)

	for cursor.Next() {
		pos := position.GetFromCursor(cursor)
		vel := velocity.ValueFromCursor(cursor)
		pos.X += vel.X
	}

The storage is locked while a cursor or component iterator is running.
Structural changes made during iteration go through the Enqueue methods and
are applied when the last lock is released.

The buffer, bitset and sparse subpackages hold the building blocks and can be
used on their own.
*/
package depot
