package ecs

import "github.com/TheBitDrifter/table"

type archetypeID uint32

// archetype is one columnar bucket: every entity inside shares the exact
// same component set. addEdges/removeEdges and their accessors can record
// the archetype reached by adding or removing a single component type, but
// nothing fills or reads them: entity.AddComponent/RemoveComponent look the
// destination archetype up by full component mask on every call.
type archetype struct {
	id         archetypeID
	table      table.Table
	addEdges   map[ComponentTypeID]archetypeID
	removeEdges map[ComponentTypeID]archetypeID
}

func newArchetype(schema table.Schema, entryIndex table.EntryIndex, id archetypeID, components ...Component) (archetype, error) {
	elementTypes := make([]table.ElementType, len(components))
	for i, comp := range components {
		elementTypes[i] = comp
	}
	tbl, err := table.NewTableBuilder().
		WithSchema(schema).
		WithEntryIndex(entryIndex).
		WithElementTypes(elementTypes...).
		WithEvents(Config.tableEvents).
		Build()
	if err != nil {
		return archetype{}, err
	}
	return archetype{
		table:       tbl,
		id:          id,
		addEdges:    make(map[ComponentTypeID]archetypeID),
		removeEdges: make(map[ComponentTypeID]archetypeID),
	}, nil
}

func (a archetype) ID() uint32 {
	return uint32(a.id)
}

func (a archetype) Table() table.Table {
	return a.table
}

// cachedAdd returns the archetype reached by adding componentType, if known.
func (a archetype) cachedAdd(componentType ComponentTypeID) (archetypeID, bool) {
	id, ok := a.addEdges[componentType]
	return id, ok
}

// cacheAdd records the archetype reached by adding componentType.
func (a archetype) cacheAdd(componentType ComponentTypeID, dest archetypeID) {
	a.addEdges[componentType] = dest
}

// cachedRemove returns the archetype reached by removing componentType, if known.
func (a archetype) cachedRemove(componentType ComponentTypeID) (archetypeID, bool) {
	id, ok := a.removeEdges[componentType]
	return id, ok
}

// cacheRemove records the archetype reached by removing componentType.
func (a archetype) cacheRemove(componentType ComponentTypeID, dest archetypeID) {
	a.removeEdges[componentType] = dest
}
