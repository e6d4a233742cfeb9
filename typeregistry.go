package ecs

import "github.com/TheBitDrifter/table"

// typeFlags records what the runtime knows about one concrete component
// type beyond its schema row index: whether it was declared singleton, and
// (if so) which live entity currently owns the one instance.
type typeFlags struct {
	singleton bool
	owner     EntityID
	hasOwner  bool
}

// typeRegistry wraps a table.Schema with the singleton bookkeeping the
// table package itself has no notion of. One typeRegistry is owned by
// exactly one Storage.
type typeRegistry struct {
	schema table.Schema
	flags  map[ComponentTypeID]*typeFlags
}

func newTypeRegistry(schema table.Schema) *typeRegistry {
	return &typeRegistry{
		schema: schema,
		flags:  make(map[ComponentTypeID]*typeFlags),
	}
}

// register ensures the schema and flag table both know about c, checking
// for a contradictory re-registration (singleton flag flips between calls).
func (r *typeRegistry) register(c Component) error {
	r.schema.Register(c)
	id := r.schema.RowIndexFor(c)

	singleton := false
	if sc, ok := c.(singletonComponent); ok {
		singleton = sc.IsSingletonComponent()
	}

	existing, known := r.flags[id]
	if !known {
		r.flags[id] = &typeFlags{singleton: singleton}
		return nil
	}
	if existing.singleton != singleton {
		return DuplicateConflictingRegistrationError{ComponentTypeID: id}
	}
	return nil
}

func (r *typeRegistry) isSingleton(id ComponentTypeID) bool {
	f, ok := r.flags[id]
	return ok && f.singleton
}

// claimSingleton reserves the singleton slot for componentType in favor of
// owner, failing if another live entity already holds it.
func (r *typeRegistry) claimSingleton(componentType ComponentTypeID, owner EntityID) error {
	f, ok := r.flags[componentType]
	if !ok {
		f = &typeFlags{singleton: true}
		r.flags[componentType] = f
	}
	if f.hasOwner && f.owner != owner {
		return SingletonAlreadyExistsError{ComponentTypeID: componentType}
	}
	f.owner = owner
	f.hasOwner = true
	return nil
}

// releaseSingleton clears the singleton slot for componentType if owner is
// still the recorded holder. A no-op otherwise (already released/reclaimed).
func (r *typeRegistry) releaseSingleton(componentType ComponentTypeID, owner EntityID) {
	f, ok := r.flags[componentType]
	if !ok || !f.hasOwner || f.owner != owner {
		return
	}
	f.hasOwner = false
}

// reserveSingleton reserves componentType's singleton slot for candidate if
// no live owner exists yet; otherwise it short-circuits and returns the
// existing owner instead of allocating a new reservation — candidate is
// discarded in that case. Mirrors object_ids.rs's reserve-with-short-circuit
// semantics for singleton-typed ids: callers asking "give me the owning
// entity for this singleton type" get the same answer every time, whether
// or not they're the one who first created it.
func (r *typeRegistry) reserveSingleton(componentType ComponentTypeID, candidate EntityID) (owner EntityID, created bool) {
	f, ok := r.flags[componentType]
	if !ok {
		f = &typeFlags{singleton: true}
		r.flags[componentType] = f
	}
	if f.hasOwner {
		return f.owner, false
	}
	f.owner = candidate
	f.hasOwner = true
	f.singleton = true
	return candidate, true
}

// singletonOwner returns the entity currently holding componentType's
// singleton slot, if any.
func (r *typeRegistry) singletonOwner(componentType ComponentTypeID) (EntityID, bool) {
	f, ok := r.flags[componentType]
	if !ok || !f.hasOwner {
		return EntityID(0), false
	}
	return f.owner, true
}
