package ecs

import (
	"fmt"

	"github.com/TheBitDrifter/mask"
	"github.com/TheBitDrifter/table"
	"github.com/cogwheelgg/ecs/internal/diag"
)

// Ensure storage implements Storage interface
var _ Storage = &storage{}

// Storage defines the interface for entity storage and manipulation
type Storage interface {
	Entity(id int) (Entity, error)
	NewEntities(int, ...Component) ([]Entity, error)
	NewOrExistingArchetype(components ...Component) (Archetype, error)
	EnqueueNewEntities(int, ...Component) error
	DestroyEntities(...Entity) error
	EnqueueDestroyEntities(...Entity) error
	RowIndexFor(Component) uint32
	Locked() bool
	AddLock(bit uint32)
	RemoveLock(bit uint32)
	Register(...Component)
	tableFor(...Component) (table.Table, error)

	TransferEntities(target Storage, entities ...Entity) error
	Enqueue(EntityOperation)
	Archetypes() []archetype
}

// storage implements the Storage interface. Each instance owns an
// independent entry index and entity slice — the teacher kept these as
// package-level globals shared across every Storage, which silently
// corrupts entity IDs the moment a second instance is created; scoping
// them per-storage is the one correctness fix carried over from the
// teacher's code (see DESIGN.md).
type storage struct {
	locks          mask.Mask256
	schema         table.Schema
	types          *typeRegistry
	archetypes     *archetypes
	operationQueue EntityOperationsQueue
	entryIndex     table.EntryIndex
	entities       []*entity
}

// archetypes manages archetype collections and identification
type archetypes struct {
	nextID           archetypeID
	asSlice          []archetype
	idsGroupedByMask map[mask.Mask]archetypeID
}

// newStorage creates a new Storage implementation with the given schema
func newStorage(schema table.Schema) Storage {
	archetypes := &archetypes{
		nextID:           1,
		idsGroupedByMask: make(map[mask.Mask]archetypeID),
	}
	return &storage{
		archetypes:     archetypes,
		schema:         schema,
		types:          newTypeRegistry(schema),
		operationQueue: &entityOperationsQueue{},
		entryIndex:     table.Factory.NewEntryIndex(),
	}
}

// Entity retrieves an entity by ID
func (sto *storage) Entity(id int) (Entity, error) {
	if id < 1 || id > len(sto.entities) {
		return nil, ObjectNotFoundError{ID: EntityID(id)}
	}
	return sto.entities[id-1], nil
}

// NewOrExistingArchetype gets an existing archetype matching the component signature or creates a new one
func (sto *storage) NewOrExistingArchetype(components ...Component) (Archetype, error) {
	var entityMask mask.Mask
	for _, component := range components {
		if err := sto.types.register(component); err != nil {
			return nil, err
		}
		bit := sto.schema.RowIndexFor(component)
		entityMask.Mark(bit)
	}
	id, archetypeFound := sto.archetypes.idsGroupedByMask[entityMask]
	if archetypeFound {
		return sto.archetypes.asSlice[id-1], nil
	}

	created, err := newArchetype(sto.schema, sto.entryIndex, sto.archetypes.nextID, components...)
	if err != nil {
		return nil, err
	}
	sto.archetypes.asSlice = append(sto.archetypes.asSlice, created)
	sto.archetypes.idsGroupedByMask[entityMask] = created.id
	sto.archetypes.nextID++
	return created, nil
}

// NewEntities creates n new entities with the specified components
func (sto *storage) NewEntities(n int, components ...Component) ([]Entity, error) {
	if sto.Locked() {
		return nil, LockedStorageError{}
	}
	if len(components) == 0 {
		return nil, fmt.Errorf("cannot create entities with no components")
	}
	entityArchetype, err := sto.NewOrExistingArchetype(components...)
	if err != nil {
		return nil, err
	}
	for _, c := range components {
		sc, ok := c.(singletonComponent)
		if !ok || !sc.IsSingletonComponent() {
			continue
		}
		componentType := sto.RowIndexFor(c)
		if _, has := sto.types.singletonOwner(componentType); has || n > 1 {
			return nil, SingletonAlreadyExistsError{ComponentTypeID: componentType}
		}
	}
	entries, err := entityArchetype.Table().NewEntries(n)
	if err != nil {
		return nil, err
	}
	currentLen := len(sto.entities)
	neededCap := currentLen + n
	if cap(sto.entities) < neededCap {
		newCap := max(neededCap, 2*cap(sto.entities))
		newEntities := make([]*entity, currentLen, newCap)
		copy(newEntities, sto.entities)
		sto.entities = newEntities
	}
	sto.entities = sto.entities[:neededCap]

	entities := make([]Entity, n)
	for i, entry := range entries {
		en := &entity{
			Entry:      entry,
			sto:        sto,
			id:         entry.ID(),
			components: components,
		}
		entities[i] = en
		sto.entities[currentLen+i] = en
		for _, c := range components {
			en.claimSingletonIfNeeded(c)
		}
	}

	return entities, nil
}

// RowIndexFor returns the bit index for a component in the schema
func (sto *storage) RowIndexFor(c Component) uint32 {
	return sto.schema.RowIndexFor(c)
}

// Locked checks if the storage is currently locked
func (sto *storage) Locked() bool {
	return !sto.locks.IsEmpty()
}

func (sto *storage) AddLock(bit uint32) {
	sto.locks.Mark(bit)
}

// RemoveLock releases a specific bit lock and processes queued operations if fully unlocked
func (sto *storage) RemoveLock(bit uint32) {
	sto.locks.Unmark(bit)

	if sto.locks.IsEmpty() {
		if err := sto.operationQueue.ProcessAll(sto); err != nil {
			Config.Logger().Log(diag.Warn, "error draining operation queue: %v", err)
		}
	}
}

// EnqueueNewEntities either creates entities immediately or queues creation if storage is locked
func (s *storage) EnqueueNewEntities(count int, components ...Component) error {
	if !s.Locked() {
		_, err := s.NewEntities(count, components...)
		if err != nil {
			return fmt.Errorf("failed to create entities directly: %w", err)
		}
		return nil
	}
	s.operationQueue.Enqueue(
		NewEntityOperation{
			count:      count,
			components: components,
		},
	)
	return nil
}

// DestroyEntities removes entities from storage
func (s *storage) DestroyEntities(entities ...Entity) error {
	if s.Locked() {
		return LockedStorageError{}
	}
	tableGroups := make(map[table.Table][]int)
	for _, entity := range entities {
		if entity == nil {
			continue
		}
		tableGroups[entity.Table()] = append(tableGroups[entity.Table()], int(entity.ID()))
	}
	for tbl, ids := range tableGroups {
		_, err := tbl.DeleteEntries(ids...)
		if err != nil {
			return fmt.Errorf("failed to delete entries: %w", err)
		}
	}
	for _, en := range entities {
		if en == nil {
			continue
		}
		for _, c := range en.Components() {
			if real, ok := en.(*entity); ok {
				real.releaseSingletonIfNeeded(c)
			}
		}
		index := en.ID() - 1
		if int(index) < len(s.entities) {
			s.entities[index] = &entity{}
		}
	}
	return nil
}

// EnqueueDestroyEntities either destroys entities immediately or queues destruction if storage is locked
func (s *storage) EnqueueDestroyEntities(entities ...Entity) error {
	if !s.Locked() {
		return s.DestroyEntities(entities...)
	}
	for _, en := range entities {
		s.operationQueue.Enqueue(
			DestroyEntityOperation{
				entity:   en,
				recycled: en.Recycled(),
			})
	}
	return nil
}

// TransferEntities moves entities from this storage to the target storage
func (s *storage) TransferEntities(target Storage, entities ...Entity) error {
	if s.Locked() {
		return LockedStorageError{}
	}
	for _, en := range entities {
		comps := en.Components()
		target.Register(comps...)
		targetTbl, err := target.tableFor(comps...)
		if err != nil {
			return err
		}

		err = en.Table().TransferEntries(targetTbl, en.Index())
		if err != nil {
			return err
		}
		en.SetStorage(target)
	}
	return nil
}

// Register adds components to the storage schema
func (s *storage) Register(comps ...Component) {
	for _, c := range comps {
		s.types.register(c)
	}
}

// Enqueue adds an operation to the queue
func (s *storage) Enqueue(op EntityOperation) {
	s.operationQueue.Enqueue(op)
}

// Archetypes returns all archetypes in this storage
func (s *storage) Archetypes() []archetype {
	return s.archetypes.asSlice
}

// tableFor gets or creates a table for the given component set
func (s *storage) tableFor(comps ...Component) (table.Table, error) {
	archeMask := mask.Mask{}
	for _, c := range comps {
		bit := s.RowIndexFor(c)
		archeMask.Mark(bit)
	}

	id, ok := s.archetypes.idsGroupedByMask[archeMask]
	if !ok {
		created, err := newArchetype(s.schema, s.entryIndex, s.archetypes.nextID, comps...)
		if err != nil {
			return nil, err
		}
		s.archetypes.asSlice = append(s.archetypes.asSlice, created)
		s.archetypes.idsGroupedByMask[archeMask] = created.id
		s.archetypes.nextID++
		id = created.id
	}
	arche := s.archetypes.asSlice[id-1]
	return arche.table, nil
}
