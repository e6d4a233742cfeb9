package ecs

// World is the handle systems use to request structural changes. Every
// method enqueues against the owning Storage's operation queue when
// storage is locked (mid-update, mid-iteration) and applies immediately
// otherwise — systems never need to know which situation they're in.
type World struct {
	sto Storage
}

func newWorld(sto Storage) *World {
	return &World{sto: sto}
}

// CreateRootEntity creates a new entity with no parent.
func (w *World) CreateRootEntity(components ...Component) (Entity, error) {
	entities, err := w.createEntities(1, components...)
	if err != nil {
		return nil, err
	}
	if len(entities) == 0 {
		return nil, nil
	}
	return entities[0], nil
}

// CreateChild creates a new entity and attaches it under parent.
func (w *World) CreateChild(parent Entity, components ...Component) (Entity, error) {
	child, err := w.CreateRootEntity(components...)
	if err != nil {
		return nil, err
	}
	if child == nil {
		return nil, nil
	}
	if err := child.SetParent(parent, nil); err != nil {
		return nil, err
	}
	return child, nil
}

func (w *World) createEntities(n int, components ...Component) ([]Entity, error) {
	if w.sto.Locked() {
		if err := w.sto.EnqueueNewEntities(n, components...); err != nil {
			return nil, err
		}
		return nil, nil
	}
	return w.sto.NewEntities(n, components...)
}

// AddComponent enqueues (or applies) adding c to entity.
func (w *World) AddComponent(entity Entity, c Component) error {
	return entity.EnqueueAddComponent(c)
}

// AddComponentWithValue enqueues (or applies) adding c with an initial
// value to entity.
func (w *World) AddComponentWithValue(entity Entity, c Component, value any) error {
	return entity.EnqueueAddComponentWithValue(c, value)
}

// DeleteComponent enqueues (or applies) removing c from entity.
func (w *World) DeleteComponent(entity Entity, c Component) error {
	return entity.EnqueueRemoveComponent(c)
}

// DeleteEntity enqueues (or applies) destroying entity and every live
// descendant.
func (w *World) DeleteEntity(entity Entity) error {
	if !w.sto.Locked() {
		return destroyTree(w.sto, entity)
	}
	w.sto.Enqueue(DestroyEntityTreeOperation{entity: entity, recycled: entity.Recycled()})
	return nil
}

// Enqueue schedules an arbitrary storage mutation to run once the current
// lock (if any) clears, for callers that need something none of the typed
// helpers above cover.
func (w *World) Enqueue(fn func(Storage) error) {
	w.sto.Enqueue(CustomOperation{fn: fn})
}

// Storage exposes the underlying Storage, for query construction.
func (w *World) Storage() Storage {
	return w.sto
}
