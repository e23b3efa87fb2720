package depot

import (
	"testing"
)

func TestDeferredAddVisibleAfterCommit(t *testing.T) {
	storage := newTestStorage()
	position := FactoryNewComponent[Position]()
	id := storage.NewEntity()

	position.EnqueueAddWithValue(storage, id, Position{X: 5})
	if position.Has(storage, id) {
		t.Fatal("Queued add applied before commit")
	}
	if storage.PendingChanges() != 1 {
		t.Errorf("PendingChanges = %d, want 1", storage.PendingChanges())
	}

	if err := storage.CommitChanges(); err != nil {
		t.Fatalf("CommitChanges failed: %v", err)
	}
	got, ok := position.ValueFromEntity(storage, id)
	if !ok || got.X != 5 {
		t.Errorf("Got %+v, %v after commit", got, ok)
	}
	if storage.PendingChanges() != 0 {
		t.Errorf("PendingChanges = %d after commit, want 0", storage.PendingChanges())
	}
}

func TestDeferredChangesDuringIteration(t *testing.T) {
	storage := newTestStorage()
	position := FactoryNewComponent[Position]()
	velocity := FactoryNewComponent[Velocity]()

	ids := storage.NewEntities(4)
	for _, id := range ids {
		position.Add(storage, id)
	}

	for id := range position.Iterate(storage) {
		if id%2 == 0 {
			velocity.EnqueueAdd(storage, id)
		} else {
			storage.EnqueueRemoveEntity(id)
		}
	}

	if storage.EntityCount() != 2 {
		t.Errorf("EntityCount = %d, want 2", storage.EntityCount())
	}
	for _, id := range ids {
		if id%2 == 0 && !velocity.Has(storage, id) {
			t.Errorf("Entity %d missing queued velocity", id)
		}
		if id%2 == 1 && storage.HasEntity(id) {
			t.Errorf("Entity %d survived queued removal", id)
		}
	}
}

func TestLastWriteWins(t *testing.T) {
	position := FactoryNewComponent[Position]()

	tests := []struct {
		name        string
		initially   bool
		enqueue     func(sto Storage, id EntityID)
		wantPresent bool
		wantX       float64
	}{
		{
			name: "Add then remove",
			enqueue: func(sto Storage, id EntityID) {
				position.EnqueueAddWithValue(sto, id, Position{X: 1})
				position.EnqueueRemove(sto, id)
			},
			wantPresent: false,
		},
		{
			name:      "Remove then add",
			initially: true,
			enqueue: func(sto Storage, id EntityID) {
				position.EnqueueRemove(sto, id)
				position.EnqueueAddWithValue(sto, id, Position{X: 2})
			},
			// The add is the last intent and the component is still there
			wantPresent: true,
			wantX:       -1,
		},
		{
			name: "Two adds",
			enqueue: func(sto Storage, id EntityID) {
				position.EnqueueAddWithValue(sto, id, Position{X: 3})
				position.EnqueueAddWithValue(sto, id, Position{X: 4})
			},
			wantPresent: true,
			wantX:       4,
		},
		{
			name:      "Remove absent is skipped",
			initially: false,
			enqueue: func(sto Storage, id EntityID) {
				position.EnqueueRemove(sto, id)
			},
			wantPresent: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			storage := newTestStorage()
			id := storage.NewEntity()
			if tt.initially {
				position.AddWithValue(storage, id, Position{X: -1})
			}

			storage.Lock()
			tt.enqueue(storage, id)
			if storage.PendingChanges() != 1 {
				t.Errorf("PendingChanges = %d, want 1", storage.PendingChanges())
			}
			storage.Unlock()

			got, ok := position.ValueFromEntity(storage, id)
			if ok != tt.wantPresent {
				t.Fatalf("Present = %v, want %v", ok, tt.wantPresent)
			}
			if ok && got.X != tt.wantX {
				t.Errorf("X = %v, want %v", got.X, tt.wantX)
			}
		})
	}
}

func TestDestroyDropsComponentIntents(t *testing.T) {
	storage := newTestStorage()
	position := FactoryNewComponent[Position]()
	velocity := FactoryNewComponent[Velocity]()
	id := storage.NewEntity()
	other := storage.NewEntity()

	storage.Lock()
	position.EnqueueAdd(storage, id)
	velocity.EnqueueAdd(storage, other)
	storage.EnqueueRemoveEntity(id)
	// Ignored, the entity is already queued for removal
	velocity.EnqueueAdd(storage, id)
	storage.Unlock()

	if storage.HasEntity(id) {
		t.Error("Entity not removed")
	}
	if position.Len(storage) != 0 {
		t.Errorf("Position stored for %d entities, want 0", position.Len(storage))
	}
	if !velocity.Has(storage, other) {
		t.Error("Unrelated intent was dropped")
	}
	if storage.NewEntity() != id {
		t.Error("Removed id not returned to the free list")
	}
}

func TestQueuedAddForUnknownEntityIsSkipped(t *testing.T) {
	storage := newTestStorage()
	position := FactoryNewComponent[Position]()

	position.EnqueueAdd(storage, 77)
	storage.EnqueueRemoveEntity(78)
	if err := storage.CommitChanges(); err != nil {
		t.Errorf("CommitChanges failed: %v", err)
	}
}
