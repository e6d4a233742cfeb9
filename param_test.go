package ecs

import (
	"testing"

	"github.com/TheBitDrifter/table"
)

func TestQuery1IteratesMatchingEntities(t *testing.T) {
	schema := table.Factory.NewSchema()
	sto := Factory.NewStorage(schema)
	position := FactoryNewComponent[Position]()
	velocity := FactoryNewComponent[Velocity]()

	if _, err := sto.NewEntities(3, position, velocity); err != nil {
		t.Fatalf("NewEntities failed: %v", err)
	}
	if _, err := sto.NewEntities(2, position); err != nil {
		t.Fatalf("NewEntities failed: %v", err)
	}

	q := NewQuery1[Position](sto, position)
	count := 0
	for q.Next() {
		count++
	}
	if count != 5 {
		t.Errorf("Query1 matched %d entities, want 5", count)
	}
}

func TestQuery1GetAndLen(t *testing.T) {
	schema := table.Factory.NewSchema()
	sto := Factory.NewStorage(schema)
	position := FactoryNewComponent[Position]()

	entities, err := sto.NewEntities(2, position)
	if err != nil {
		t.Fatalf("NewEntities failed: %v", err)
	}
	position.GetFromEntity(entities[0]).X = 7

	q := NewQuery1[Position](sto, position)
	if got := q.Len(); got != 2 {
		t.Errorf("Len() = %d, want 2", got)
	}

	pos, err := q.Get(EntityID(entities[0].ID()))
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if pos.X != 7 {
		t.Errorf("Get(entities[0]).X = %v, want 7", pos.X)
	}
}

func TestQuery1GetWithFirstParent(t *testing.T) {
	app := New()
	position := FactoryNewComponent[Position]()

	root, err := app.World().CreateRootEntity(position)
	if err != nil {
		t.Fatalf("CreateRootEntity failed: %v", err)
	}
	position.GetFromEntity(root).X = 42

	health := FactoryNewComponent[Health]()
	child, err := app.World().CreateChild(root, health)
	if err != nil {
		t.Fatalf("CreateChild failed: %v", err)
	}

	q := NewQuery1[Position](app.Storage(), position)
	pos, err := q.GetWithFirstParent(EntityID(child.ID()))
	if err != nil {
		t.Fatalf("GetWithFirstParent failed: %v", err)
	}
	if pos.X != 42 {
		t.Errorf("GetWithFirstParent(child).X = %v, want 42 (inherited from root)", pos.X)
	}
}

func TestQuery1WithoutFilter(t *testing.T) {
	schema := table.Factory.NewSchema()
	sto := Factory.NewStorage(schema)
	position := FactoryNewComponent[Position]()
	velocity := FactoryNewComponent[Velocity]()

	if _, err := sto.NewEntities(3, position, velocity); err != nil {
		t.Fatalf("NewEntities failed: %v", err)
	}
	if _, err := sto.NewEntities(2, position); err != nil {
		t.Fatalf("NewEntities failed: %v", err)
	}

	q := NewQuery1[Position](sto, position, Without(velocity.Component))
	count := 0
	for q.Next() {
		count++
	}
	if count != 2 {
		t.Errorf("Query1 with Without(velocity) matched %d entities, want 2", count)
	}
}
