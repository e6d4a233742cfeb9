package ecs_test

import (
	"testing"

	"github.com/TheBitDrifter/table"
	"github.com/cogwheelgg/ecs"
)

type Position struct {
	X, Y float64
}

type Velocity struct {
	X, Y float64
}

// Example demonstrates the bare storage/query primitives without
// going through App/World — the level most of this package's doc comment
// is written against.
func Example() {
	schema := table.Factory.NewSchema()
	storage := ecs.Factory.NewStorage(schema)

	position := ecs.FactoryNewComponent[Position]()
	velocity := ecs.FactoryNewComponent[Velocity]()

	storage.NewEntities(3, position, velocity)

	query := ecs.Factory.NewQuery()
	queryNode := query.And(position, velocity)
	cursor := ecs.Factory.NewCursor(queryNode, storage)

	for cursor.Next() {
		pos := position.GetFromCursor(cursor)
		vel := velocity.GetFromCursor(cursor)
		pos.X += vel.X
		pos.Y += vel.Y
	}
}

// TestHierarchicalPosition exercises the parent/child relationship: a
// child created under a parent should report a depth one greater than its
// parent, and destroying the parent recursively destroys the child.
func TestHierarchicalPosition(t *testing.T) {
	app := ecs.New()
	position := ecs.FactoryNewComponent[Position]()

	root, err := app.World().CreateRootEntity(position)
	if err != nil {
		t.Fatalf("CreateRootEntity failed: %v", err)
	}
	if root.Depth() != 0 {
		t.Errorf("root depth = %d, want 0", root.Depth())
	}

	child, err := app.World().CreateChild(root, position)
	if err != nil {
		t.Fatalf("CreateChild failed: %v", err)
	}
	if child.Depth() != 1 {
		t.Errorf("child depth = %d, want 1", child.Depth())
	}

	grandchild, err := app.World().CreateChild(child, position)
	if err != nil {
		t.Fatalf("CreateChild (grandchild) failed: %v", err)
	}
	if grandchild.Depth() != 2 {
		t.Errorf("grandchild depth = %d, want 2", grandchild.Depth())
	}

	if err := app.World().DeleteEntity(root); err != nil {
		t.Fatalf("DeleteEntity(root) failed: %v", err)
	}
}
