package ecs

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/TheBitDrifter/table"
	"github.com/cogwheelgg/ecs/internal/diag"
)

// EntityID is a stable, generation-checked handle to an entity. It is the
// table package's own EntryID directly: table already tracks a slot's
// recycle count and rejects stale reads against it, which is exactly the
// generation-check the entity directory needs, so there is no point
// reinventing a parallel scheme on top.
type EntityID = table.EntryID

// Verify entity implements Entity interface
var _ Entity = &entity{}

// Entity represents a game object with components and hierarchical relationships
type Entity interface {
	table.Entry

	SetParent(parent Entity, callback EntityDestroyCallback) error
	Parent() Entity
	Children() []EntityID
	Depth() int

	SetDestroyCallback(EntityDestroyCallback) error

	AddComponent(Component) error
	AddComponentWithValue(Component, any) error
	RemoveComponent(Component) error

	EnqueueAddComponent(Component) error
	EnqueueAddComponentWithValue(Component, any) error
	EnqueueRemoveComponent(Component) error

	Components() []Component
	ComponentsAsString() string

	Valid() bool
	Storage() Storage
	SetStorage(Storage)
}

// EntityDestroyCallback is called when an entity is destroyed
type EntityDestroyCallback func(Entity)

// entity implements the Entity interface
type entity struct {
	table.Entry
	id            table.EntryID
	sto           Storage
	relationships relationships
	components    []Component
}

// relationships tracks parent-child relationships, depth in the hierarchy,
// and destroy callbacks.
type relationships struct {
	recycled  int
	parent    Entity
	children  []EntityID
	depth     int
	onDestroy EntityDestroyCallback
}

// ID returns the entity's unique identifier
func (e *entity) ID() table.EntryID {
	return e.id
}

// Index returns the entity's index in its table
func (e *entity) Index() int {
	return e.entry().Index()
}

// Recycled returns the entity's recycled count
func (e *entity) Recycled() int {
	return e.entry().Recycled()
}

// Table returns the table this entity belongs to
func (e *entity) Table() table.Table {
	return e.entry().Table()
}

// Storage returns the storage this entity belongs to
func (e *entity) Storage() Storage {
	return e.sto
}

// SetParent establishes a parent-child relationship with another entity.
// The child is registered on the parent's own relationships so the
// directory can walk descendants on deletion (see directory.go).
func (e *entity) SetParent(parent Entity, callback EntityDestroyCallback) error {
	if e.relationships.parent != nil {
		return EntityRelationError{child: e, parent: parent}
	}
	e.relationships.parent = parent
	e.relationships.recycled = parent.Recycled()
	e.relationships.depth = parent.Depth() + 1
	if p, ok := parent.(*entity); ok {
		p.relationships.children = append(p.relationships.children, e.id)
	}
	return e.SetDestroyCallback(callback)
}

// Parent returns the parent entity if it exists and hasn't been recycled
func (e *entity) Parent() Entity {
	if e.relationships.parent != nil {
		if e.relationships.parent.Recycled() != e.relationships.recycled {
			return nil
		}
		return e.relationships.parent
	}
	return nil
}

// Children returns the IDs of entities created as this entity's children,
// in creation order. Stale (already-destroyed) IDs are not filtered here;
// callers walking the hierarchy should check Valid() via Storage().Entity.
func (e *entity) Children() []EntityID {
	return e.relationships.children
}

// Depth returns the entity's distance from its hierarchy root (0 for a
// root entity).
func (e *entity) Depth() int {
	return e.relationships.depth
}

// SetDestroyCallback sets the callback to be invoked when this entity is destroyed
func (e *entity) SetDestroyCallback(callback EntityDestroyCallback) error {
	e.relationships.onDestroy = callback
	return nil
}

// AddComponent adds a component to the entity, moving it to a new archetype if needed
func (e *entity) AddComponent(c Component) error {
	if e.sto.Locked() {
		return LockedStorageError{}
	}

	originTable := e.Table()
	if originTable.Contains(c) {
		return ComponentExistsError{Component: c}
	}
	for _, comp := range e.components {
		if comp.ID() == c.ID() {
			return ComponentExistsError{Component: c}
		}
	}

	e.components = append(e.components, c)
	destArchetype, err := e.sto.NewOrExistingArchetype(e.components...)
	if err != nil {
		return err
	}
	if err := originTable.TransferEntries(destArchetype.Table(), e.Index()); err != nil {
		return err
	}
	e.claimSingletonIfNeeded(c)
	return nil
}

// AddComponentWithValue adds a component with an initial value
func (e *entity) AddComponentWithValue(c Component, value any) error {
	if e.sto.Locked() {
		return LockedStorageError{}
	}

	originTable := e.Table()
	if originTable.Contains(c) {
		return ComponentExistsError{Component: c}
	}
	for _, comp := range e.components {
		if comp.ID() == c.ID() {
			return ComponentExistsError{Component: c}
		}
	}

	e.components = append(e.components, c)
	destArchetype, err := e.sto.NewOrExistingArchetype(e.components...)
	if err != nil {
		return err
	}
	if err := originTable.TransferEntries(destArchetype.Table(), e.Index()); err != nil {
		return err
	}

	valueType := reflect.TypeOf(value)
	for _, row := range destArchetype.Table().Rows() {
		if row.Type().Elem() == valueType {
			reflect.Value(row).Index(e.Index()).Set(reflect.ValueOf(value))
			e.claimSingletonIfNeeded(c)
			return nil
		}
	}
	return fmt.Errorf("invalid value type %v for component %v", valueType, c.Type())
}

// RemoveComponent removes a component from the entity, moving it to a new archetype
func (e *entity) RemoveComponent(c Component) error {
	if e.sto.Locked() {
		return LockedStorageError{}
	}
	originTable := e.Table()
	if !originTable.Contains(c) {
		return ComponentNotFoundError{Component: c}
	}
	newComps := []Component{}
	for _, comp := range e.components {
		if comp.ID() != c.ID() {
			newComps = append(newComps, comp)
		}
	}
	e.components = newComps
	destArchetype, err := e.sto.NewOrExistingArchetype(newComps...)
	if err != nil {
		return fmt.Errorf("failed to get/create archetype: %w", err)
	}
	if err := originTable.TransferEntries(destArchetype.Table(), e.Index()); err != nil {
		return fmt.Errorf("failed to transfer entity: %w", err)
	}
	e.releaseSingletonIfNeeded(c)
	return nil
}

// claimSingletonIfNeeded registers e as the singleton owner of c's type, if
// c is declared singleton. Violations surface from the type registry at
// registration time (DuplicateConflictingRegistrationError) or here
// (SingletonAlreadyExistsError); AddComponent/AddComponentWithValue do not
// currently propagate this error since the component has already been
// transferred — systems should use App.GetSingleton/LockSingleton checks
// before adding a singleton component rather than relying on this as the
// enforcement point.
func (e *entity) claimSingletonIfNeeded(c Component) {
	sc, ok := c.(singletonComponent)
	if !ok || !sc.IsSingletonComponent() {
		return
	}
	if sto, ok := e.sto.(*storage); ok {
		sto.types.claimSingleton(sto.RowIndexFor(c), e.id)
	}
}

func (e *entity) releaseSingletonIfNeeded(c Component) {
	sc, ok := c.(singletonComponent)
	if !ok || !sc.IsSingletonComponent() {
		return
	}
	if sto, ok := e.sto.(*storage); ok {
		sto.types.releaseSingleton(sto.RowIndexFor(c), e.id)
	}
}

// EnqueueAddComponent queues a component addition or executes immediately if storage isn't locked
func (e *entity) EnqueueAddComponent(c Component) error {
	if !e.sto.Locked() {
		return e.AddComponent(c)
	}
	e.sto.Enqueue(AddComponentOperation{
		entity:    e,
		recycled:  e.Recycled(),
		component: c,
		storage:   e.sto,
	})
	return nil
}

// EnqueueAddComponentWithValue queues a component addition with value or executes immediately
func (e *entity) EnqueueAddComponentWithValue(c Component, val any) error {
	if !e.sto.Locked() {
		return e.AddComponentWithValue(c, val)
	}
	e.sto.Enqueue(AddComponentOperation{
		entity:    e,
		recycled:  e.Recycled(),
		component: c,
		value:     val,
		storage:   e.sto,
	})
	return nil
}

// EnqueueRemoveComponent queues a component removal or executes immediately if storage isn't locked
func (e *entity) EnqueueRemoveComponent(c Component) error {
	if !e.sto.Locked() {
		return e.RemoveComponent(c)
	}
	e.sto.Enqueue(RemoveComponentOperation{
		entity:    e,
		recycled:  e.Recycled(),
		component: c,
		storage:   e.sto,
	})
	return nil
}

// entry returns the table entry for this entity, resolved through this
// entity's own storage rather than a package-level global — each Storage
// instance owns an independent entry index, so two App instances never
// collide over entity slots.
func (e *entity) entry() table.Entry {
	sto, ok := e.sto.(*storage)
	if !ok {
		return e.Entry
	}
	en, err := sto.entryIndex.Entry(int(e.id - 1))
	if err != nil {
		panic(diag.Trace(err))
	}
	return en
}

// Components returns all components attached to this entity
func (e *entity) Components() []Component {
	return e.components
}

// ComponentsAsString returns a sorted, formatted string of component names
func (e *entity) ComponentsAsString() string {
	if len(e.components) == 0 {
		return "[]"
	}

	var components []string
	for _, c := range e.components {
		typeName := reflect.TypeOf(c).String()
		typeName = strings.TrimPrefix(typeName, "*")
		parts := strings.Split(typeName, ".")
		name := parts[len(parts)-1]
		name = strings.TrimSuffix(name, "]")

		components = append(components, name)
	}

	sort.Strings(components)

	return "[" + strings.Join(components, ", ") + "]"
}

// Valid returns whether this entity has a valid ID
func (e entity) Valid() bool {
	return e.id != 0
}

// SetStorage sets the storage for this entity
func (e *entity) SetStorage(sto Storage) {
	e.sto = sto
}
