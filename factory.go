package ecs

import "github.com/TheBitDrifter/table"

// factory implements the factory pattern for runtime components.
type factory struct{}

// Factory is the global factory instance for creating runtime components.
var Factory factory

// NewStorage creates a new Storage instance with the given schema.
func (f factory) NewStorage(schema table.Schema) Storage {
	return newStorage(schema)
}

// NewQuery creates a new Query instance.
func (f factory) NewQuery() Query {
	return newQuery()
}

// NewCursor creates a new Cursor with the specified query and storage.
func (f factory) NewCursor(query QueryNode, storage Storage) *Cursor {
	return newCursor(query, storage)
}

// NewChangeTracker creates an empty ChangeTracker.
func (f factory) NewChangeTracker() *ChangeTracker {
	return NewChangeTracker()
}

// NewActionGraph creates an empty ActionGraph.
func (f factory) NewActionGraph() *ActionGraph {
	return newActionGraph()
}

// NewSystemRegistry creates an empty SystemRegistry.
func (f factory) NewSystemRegistry() *SystemRegistry {
	return newSystemRegistry()
}

// NewScheduler builds a Scheduler over the given registry, action graph,
// storage and tracker.
func (f factory) NewScheduler(registry *SystemRegistry, graph *ActionGraph, sto Storage, tracker *ChangeTracker) *Scheduler {
	return newScheduler(registry, graph, sto, tracker)
}

// FactoryNewComponent creates a new AccessibleComponent for type T.
func FactoryNewComponent[T any]() AccessibleComponent[T] {
	iden := table.FactoryNewElementType[T]()
	return AccessibleComponent[T]{
		Component: iden,
		Accessor:  table.FactoryNewAccessor[T](iden),
	}
}

// FactoryNewSingletonComponent creates a new AccessibleComponent for type T,
// flagged so the type registry enforces at most one live instance.
func FactoryNewSingletonComponent[T any]() AccessibleComponent[T] {
	c := FactoryNewComponent[T]()
	c.singleton = true
	return c
}

// FactoryNewCache creates a new Cache with the specified capacity.
func FactoryNewCache[T any](cap int) Cache[T] {
	return &SimpleCache[T]{
		itemIndices: make(map[string]int),
		maxCapacity: cap,
	}
}
