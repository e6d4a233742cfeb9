package ecs

import "fmt"

// LockedStorageError is returned when a direct (non-enqueued) structural
// mutation is attempted while storage is locked.
type LockedStorageError struct{}

func (e LockedStorageError) Error() string {
	return "storage is currently locked"
}

// EntityRelationError is returned by SetParent when the child already has a
// parent.
type EntityRelationError struct {
	child, parent Entity
}

func (e EntityRelationError) Error() string {
	return fmt.Sprintf("child (%v) already has parent %v", e.child, e.parent)
}

// ComponentExistsError is returned by AddComponent when the entity already
// carries the component.
type ComponentExistsError struct {
	Component Component
}

func (e ComponentExistsError) Error() string {
	return fmt.Sprintf("component already exists on entity: %T", e.Component)
}

// ComponentNotFoundError is returned by RemoveComponent when the entity does
// not carry the component.
type ComponentNotFoundError struct {
	Component Component
}

func (e ComponentNotFoundError) Error() string {
	return fmt.Sprintf("component does not exist on entity: %T", e.Component)
}

// ObjectNotFoundError means an EntityID is stale or never existed.
type ObjectNotFoundError struct {
	ID EntityID
}

func (e ObjectNotFoundError) Error() string {
	return fmt.Sprintf("entity %v not found (stale or never existed)", e.ID)
}

// SingletonMissingError means a required Single[T] had no live instance.
type SingletonMissingError struct {
	ComponentTypeID ComponentTypeID
}

func (e SingletonMissingError) Error() string {
	return fmt.Sprintf("no live singleton for component type %d", e.ComponentTypeID)
}

// SingletonAlreadyExistsError means a second instance of a singleton
// component type was about to be created.
type SingletonAlreadyExistsError struct {
	ComponentTypeID ComponentTypeID
}

func (e SingletonAlreadyExistsError) Error() string {
	return fmt.Sprintf("singleton component type %d already has a live instance", e.ComponentTypeID)
}

// CyclicActionError means an action edge was refused because it would close
// a cycle in the action DAG. The edge is dropped; it is never installed.
type CyclicActionError struct {
	Before, After ActionID
}

func (e CyclicActionError) Error() string {
	return fmt.Sprintf("action edge %d -> %d would create a cycle; edge dropped", e.Before, e.After)
}

// ParamConflictError means a system declared two incompatible accesses
// (Write+Write or Read+Write) against the same component type.
type ParamConflictError struct {
	ComponentTypeID ComponentTypeID
}

func (e ParamConflictError) Error() string {
	return fmt.Sprintf("conflicting access modes declared for component type %d in one system", e.ComponentTypeID)
}

// InvalidTypedIDError means a dynamic id was downcast against the wrong
// concrete type.
type InvalidTypedIDError struct {
	Want, Got ComponentTypeID
}

func (e InvalidTypedIDError) Error() string {
	return fmt.Sprintf("invalid typed id: wanted component type %d, got %d", e.Want, e.Got)
}

// DuplicateConflictingRegistrationError means the same concrete component
// type was registered twice with contradictory flags (e.g. singleton once,
// non-singleton the next time).
type DuplicateConflictingRegistrationError struct {
	ComponentTypeID ComponentTypeID
}

func (e DuplicateConflictingRegistrationError) Error() string {
	return fmt.Sprintf("component type %d registered twice with contradictory flags", e.ComponentTypeID)
}
