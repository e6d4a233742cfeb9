/*
Package ecs provides an Entity-Component-System (ECS) runtime for games and
simulations.

ecs offers a performant approach to managing entities through component-based
design. It is built on an archetype-based storage system that keeps entities
with the same component types together for cache-friendly iteration, and adds
a scheduler that runs user-declared systems over that storage while respecting
declared ordering and access conflicts.

Core Concepts:

  - Entity: a unique identifier for an object, with optional parent/child
    relationships.
  - Component: a data container attached to an entity.
  - Archetype: the set of component types shared by a group of entities.
  - Action: a named point in a DAG; systems attach to exactly one action and
    actions run in topological order.
  - System: a function the scheduler dispatches over matching archetypes,
    grouped into conflict-free waves.
  - Query: a way to iterate entities matching a component/filter combination.

Basic storage usage:

	schema := table.Factory.NewSchema()
	storage := ecs.Factory.NewStorage(schema)

	position := ecs.FactoryNewComponent[Position]()
	velocity := ecs.FactoryNewComponent[Velocity]()

	entities, _ := storage.NewEntities(100, position, velocity)

	query := ecs.Factory.NewQuery()
	queryNode := query.And(position, velocity)
	cursor := ecs.Factory.NewCursor(queryNode, storage)

	for cursor.Next() {
		pos := position.GetFromCursor(cursor)
		vel := velocity.GetFromCursor(cursor)
		pos.X += vel.X
		pos.Y += vel.Y
	}

Scheduled systems build on the same storage and query primitives; see App,
World, and the System* types for registering actions and systems and running
update cycles.
*/
package ecs
