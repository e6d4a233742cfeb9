package ecs

import (
	"github.com/TheBitDrifter/table"
)

// Component represents a data attribute/state that can be attached to
// entities. Components can be used to create queries for entities.
type Component interface {
	table.ElementType
}

// ComponentTypeID is the dense index the type registry assigns a concrete
// component type on first registration; stable for the lifetime of the
// owning Storage. It is backed directly by the schema's row index, since
// that index is already dense and per-type.
type ComponentTypeID = uint32

// singletonComponent is implemented by AccessibleComponent[T] instances
// created via FactoryNewSingletonComponent. The type registry checks this
// at registration time to flag the component type as singleton.
type singletonComponent interface {
	IsSingletonComponent() bool
}
