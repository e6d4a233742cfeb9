package ecs

// Query1, Query2 and Query3 are arity-specialized query binders: each wraps
// a Cursor pre-built from its component set and exposes direct accessors
// for the matched row, rather than making every system hand-roll
// interface{} type switches over query results. Grounded on
// edwinsyarief-lazyecs's own arity-specialized `*_generated.go` query
// types (see DESIGN.md) — that repo generates one file per arity; this
// runtime only needs three, so they're written by hand instead of via a
// generator.
type Query1[T1 any] struct {
	cursor  *Cursor
	a1      AccessibleComponent[T1]
	tracker *ChangeTracker
}

// NewQuery1 builds a Query1 over every entity carrying a1 (and, optionally,
// any extra filter nodes such as Without(...) or Changed(...)).
func NewQuery1[T1 any](sto Storage, a1 AccessibleComponent[T1], extra ...QueryNode) *Query1[T1] {
	q := Factory.NewQuery()
	items := []interface{}{Component(a1.Component)}
	for _, e := range extra {
		items = append(items, e)
	}
	node := q.And(items...)
	return &Query1[T1]{cursor: Factory.NewCursor(node, sto), a1: a1}
}

// Next advances to the next matching entity.
func (q *Query1[T1]) Next() bool { return q.cursor.Next() }

// Entity returns the entity at the cursor's current position.
func (q *Query1[T1]) Entity() (Entity, error) { return q.cursor.CurrentEntity() }

// WithTracker attaches tracker so every subsequent C1() call marks the
// accessed row as written for a1's component type. Systems declaring
// AccessSpec{Mode: Write} against a1's type should chain this in so
// Changed<T> filters elsewhere actually see their writes — without it,
// mutating the pointer C1 returns is invisible to the tracker (Go has no
// way to detect a write through a raw pointer after the fact, so marking
// happens on access rather than on the write itself, the same convention
// Bevy's Mut<T> follows for its change-detection marker).
func (q *Query1[T1]) WithTracker(t *ChangeTracker) *Query1[T1] {
	q.tracker = t
	return q
}

// C1 returns a pointer to T1 on the entity at the cursor's current position.
func (q *Query1[T1]) C1() *T1 {
	q.markWritten()
	return q.a1.GetFromCursor(q.cursor)
}

func (q *Query1[T1]) markWritten() {
	if q.tracker == nil {
		return
	}
	bit := q.cursor.storage.RowIndexFor(q.a1.Component)
	q.tracker.MarkWritten(bit, q.cursor.currentArchetype.id, q.cursor.Row())
}

// Len returns the number of entities this query matches, applying any
// Changed(...) filter precisely (exact rows, not just matching archetypes).
func (q *Query1[T1]) Len() int { return q.cursor.TotalMatched() }

// Get resolves T1 directly for id, bypassing iteration. Returns
// ComponentNotFoundError if id's entity doesn't carry a1's type.
func (q *Query1[T1]) Get(id EntityID) (*T1, error) {
	entity, err := q.cursor.storage.Entity(int(id))
	if err != nil {
		return nil, err
	}
	if !entity.Table().Contains(q.a1.Component) {
		return nil, ComponentNotFoundError{Component: q.a1.Component}
	}
	return q.a1.GetFromEntity(entity), nil
}

// GetWithFirstParent resolves T1 on id's own entity if present; otherwise
// walks Parent() links until it finds the first ancestor that carries it.
// Grounded on original_source/entities.rs's get_with_first_parent_mut.
func (q *Query1[T1]) GetWithFirstParent(id EntityID) (*T1, error) {
	entity, err := q.cursor.storage.Entity(int(id))
	if err != nil {
		return nil, err
	}
	for current := entity; current != nil; current = current.Parent() {
		if current.Table().Contains(q.a1.Component) {
			return q.a1.GetFromEntity(current), nil
		}
	}
	return nil, ObjectNotFoundError{ID: id}
}

// Query2 binds two component types.
type Query2[T1, T2 any] struct {
	cursor  *Cursor
	a1      AccessibleComponent[T1]
	a2      AccessibleComponent[T2]
	tracker *ChangeTracker
}

func NewQuery2[T1, T2 any](sto Storage, a1 AccessibleComponent[T1], a2 AccessibleComponent[T2], extra ...QueryNode) *Query2[T1, T2] {
	q := Factory.NewQuery()
	items := []interface{}{Component(a1.Component), Component(a2.Component)}
	for _, e := range extra {
		items = append(items, e)
	}
	node := q.And(items...)
	return &Query2[T1, T2]{cursor: Factory.NewCursor(node, sto), a1: a1, a2: a2}
}

func (q *Query2[T1, T2]) Next() bool              { return q.cursor.Next() }
func (q *Query2[T1, T2]) Entity() (Entity, error) { return q.cursor.CurrentEntity() }

// WithTracker attaches tracker so C1()/C2() mark their respective rows as
// written; see Query1.WithTracker.
func (q *Query2[T1, T2]) WithTracker(t *ChangeTracker) *Query2[T1, T2] {
	q.tracker = t
	return q
}

func (q *Query2[T1, T2]) C1() *T1 {
	if q.tracker != nil {
		bit := q.cursor.storage.RowIndexFor(q.a1.Component)
		q.tracker.MarkWritten(bit, q.cursor.currentArchetype.id, q.cursor.Row())
	}
	return q.a1.GetFromCursor(q.cursor)
}

func (q *Query2[T1, T2]) C2() *T2 {
	if q.tracker != nil {
		bit := q.cursor.storage.RowIndexFor(q.a2.Component)
		q.tracker.MarkWritten(bit, q.cursor.currentArchetype.id, q.cursor.Row())
	}
	return q.a2.GetFromCursor(q.cursor)
}

// Len returns the number of entities this query matches (exact rows under
// any Changed(...) filter).
func (q *Query2[T1, T2]) Len() int { return q.cursor.TotalMatched() }

// Get resolves (T1, T2) directly for id, bypassing iteration.
func (q *Query2[T1, T2]) Get(id EntityID) (*T1, *T2, error) {
	entity, err := q.cursor.storage.Entity(int(id))
	if err != nil {
		return nil, nil, err
	}
	if !entity.Table().Contains(q.a1.Component) {
		return nil, nil, ComponentNotFoundError{Component: q.a1.Component}
	}
	if !entity.Table().Contains(q.a2.Component) {
		return nil, nil, ComponentNotFoundError{Component: q.a2.Component}
	}
	return q.a1.GetFromEntity(entity), q.a2.GetFromEntity(entity), nil
}

// GetWithFirstParent resolves (T1, T2) on id's own entity if both are
// present there; otherwise walks Parent() links for the first ancestor
// that carries both.
func (q *Query2[T1, T2]) GetWithFirstParent(id EntityID) (*T1, *T2, error) {
	entity, err := q.cursor.storage.Entity(int(id))
	if err != nil {
		return nil, nil, err
	}
	for current := entity; current != nil; current = current.Parent() {
		if current.Table().Contains(q.a1.Component) && current.Table().Contains(q.a2.Component) {
			return q.a1.GetFromEntity(current), q.a2.GetFromEntity(current), nil
		}
	}
	return nil, nil, ObjectNotFoundError{ID: id}
}

// Query3 binds three component types.
type Query3[T1, T2, T3 any] struct {
	cursor  *Cursor
	a1      AccessibleComponent[T1]
	a2      AccessibleComponent[T2]
	a3      AccessibleComponent[T3]
	tracker *ChangeTracker
}

func NewQuery3[T1, T2, T3 any](sto Storage, a1 AccessibleComponent[T1], a2 AccessibleComponent[T2], a3 AccessibleComponent[T3], extra ...QueryNode) *Query3[T1, T2, T3] {
	q := Factory.NewQuery()
	items := []interface{}{Component(a1.Component), Component(a2.Component), Component(a3.Component)}
	for _, e := range extra {
		items = append(items, e)
	}
	node := q.And(items...)
	return &Query3[T1, T2, T3]{cursor: Factory.NewCursor(node, sto), a1: a1, a2: a2, a3: a3}
}

func (q *Query3[T1, T2, T3]) Next() bool              { return q.cursor.Next() }
func (q *Query3[T1, T2, T3]) Entity() (Entity, error) { return q.cursor.CurrentEntity() }

// WithTracker attaches tracker so C1()/C2()/C3() mark their respective rows
// as written; see Query1.WithTracker.
func (q *Query3[T1, T2, T3]) WithTracker(t *ChangeTracker) *Query3[T1, T2, T3] {
	q.tracker = t
	return q
}

func (q *Query3[T1, T2, T3]) C1() *T1 {
	if q.tracker != nil {
		bit := q.cursor.storage.RowIndexFor(q.a1.Component)
		q.tracker.MarkWritten(bit, q.cursor.currentArchetype.id, q.cursor.Row())
	}
	return q.a1.GetFromCursor(q.cursor)
}

func (q *Query3[T1, T2, T3]) C2() *T2 {
	if q.tracker != nil {
		bit := q.cursor.storage.RowIndexFor(q.a2.Component)
		q.tracker.MarkWritten(bit, q.cursor.currentArchetype.id, q.cursor.Row())
	}
	return q.a2.GetFromCursor(q.cursor)
}

func (q *Query3[T1, T2, T3]) C3() *T3 {
	if q.tracker != nil {
		bit := q.cursor.storage.RowIndexFor(q.a3.Component)
		q.tracker.MarkWritten(bit, q.cursor.currentArchetype.id, q.cursor.Row())
	}
	return q.a3.GetFromCursor(q.cursor)
}

// Len returns the number of entities this query matches (exact rows under
// any Changed(...) filter).
func (q *Query3[T1, T2, T3]) Len() int { return q.cursor.TotalMatched() }

// Get resolves (T1, T2, T3) directly for id, bypassing iteration.
func (q *Query3[T1, T2, T3]) Get(id EntityID) (*T1, *T2, *T3, error) {
	entity, err := q.cursor.storage.Entity(int(id))
	if err != nil {
		return nil, nil, nil, err
	}
	if !entity.Table().Contains(q.a1.Component) {
		return nil, nil, nil, ComponentNotFoundError{Component: q.a1.Component}
	}
	if !entity.Table().Contains(q.a2.Component) {
		return nil, nil, nil, ComponentNotFoundError{Component: q.a2.Component}
	}
	if !entity.Table().Contains(q.a3.Component) {
		return nil, nil, nil, ComponentNotFoundError{Component: q.a3.Component}
	}
	return q.a1.GetFromEntity(entity), q.a2.GetFromEntity(entity), q.a3.GetFromEntity(entity), nil
}

// GetWithFirstParent resolves (T1, T2, T3) on id's own entity if all three
// are present there; otherwise walks Parent() links for the first ancestor
// that carries all three.
func (q *Query3[T1, T2, T3]) GetWithFirstParent(id EntityID) (*T1, *T2, *T3, error) {
	entity, err := q.cursor.storage.Entity(int(id))
	if err != nil {
		return nil, nil, nil, err
	}
	for current := entity; current != nil; current = current.Parent() {
		if current.Table().Contains(q.a1.Component) &&
			current.Table().Contains(q.a2.Component) &&
			current.Table().Contains(q.a3.Component) {
			return q.a1.GetFromEntity(current), q.a2.GetFromEntity(current), q.a3.GetFromEntity(current), nil
		}
	}
	return nil, nil, nil, ObjectNotFoundError{ID: id}
}

// Single binds to the one live instance of a singleton component type,
// resolved lazily through the owning entity's current table position on
// every access rather than cached as a fixed (archetype, row) pair — a
// singleton's owner can itself gain/lose unrelated components and move
// archetypes, and a stale cached row would silently read garbage.
type Single[T1 any] struct {
	sto *storage
	a1  AccessibleComponent[T1]
}

// NewSingle resolves the Single binder for a1 against sto, failing if a1's
// component type carries no live singleton instance.
func NewSingle[T1 any](sto Storage, a1 AccessibleComponent[T1]) (Single[T1], error) {
	real, ok := sto.(*storage)
	if !ok {
		return Single[T1]{}, SingletonMissingError{}
	}
	componentType := real.RowIndexFor(a1.Component)
	if _, has := real.types.singletonOwner(componentType); !has {
		return Single[T1]{}, SingletonMissingError{ComponentTypeID: componentType}
	}
	return Single[T1]{sto: real, a1: a1}, nil
}

// Get resolves the singleton's current value, re-looking up its owning
// entity's live table position on every call.
func (s Single[T1]) Get() (*T1, error) {
	componentType := s.sto.RowIndexFor(s.a1.Component)
	owner, ok := s.sto.types.singletonOwner(componentType)
	if !ok {
		return nil, SingletonMissingError{ComponentTypeID: componentType}
	}
	entity, err := s.sto.Entity(int(owner))
	if err != nil {
		return nil, err
	}
	return s.a1.GetFromEntity(entity), nil
}
