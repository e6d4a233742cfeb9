package ecs

import "testing"

func TestWavesSplitConflictingSystems(t *testing.T) {
	posType := ComponentTypeID(1)
	systems := []SystemDescriptor{
		{ID: StringKey("writer-a"), Access: []AccessSpec{{ComponentTypeID: posType, Mode: Write}}},
		{ID: StringKey("writer-b"), Access: []AccessSpec{{ComponentTypeID: posType, Mode: Write}}},
		{ID: StringKey("reader"), Access: []AccessSpec{{ComponentTypeID: ComponentTypeID(2), Mode: Read}}},
	}

	grouped := waves(systems)
	if len(grouped) != 2 {
		t.Fatalf("expected 2 waves for two writers on the same type, got %d: %v", len(grouped), grouped)
	}
	if len(grouped[0]) != 2 {
		t.Errorf("expected first wave to hold the non-conflicting writer+reader pair, got %d systems", len(grouped[0]))
	}
}

// TestAppVelocityIntegration exercises a minimal system updating Position
// from Velocity across an Update cycle, end to end through App.
func TestAppVelocityIntegration(t *testing.T) {
	app := New()
	position := FactoryNewComponent[Position]()
	velocity := FactoryNewComponent[Velocity]()

	entity, err := app.World().CreateRootEntity(position, velocity)
	if err != nil {
		t.Fatalf("CreateRootEntity failed: %v", err)
	}
	velPtr := velocity.GetFromEntity(entity)
	velPtr.X, velPtr.Y = 1, 2

	move := StringKey("move")
	err = app.RegisterSystem(SystemDescriptor{
		ID:     StringKey("integrate-velocity"),
		Action: move,
		Access: []AccessSpec{
			{ComponentTypeID: app.Storage().RowIndexFor(position.Component), Mode: Write},
			{ComponentTypeID: app.Storage().RowIndexFor(velocity.Component), Mode: Read},
		},
		Run: func(a *App) error {
			q := NewQuery2[Position, Velocity](a.Storage(), position, velocity)
			for q.Next() {
				pos := q.C1()
				vel := q.C2()
				pos.X += vel.X
				pos.Y += vel.Y
			}
			return nil
		},
	})
	if err != nil {
		t.Fatalf("RegisterSystem failed: %v", err)
	}

	if err := app.Update(); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	posPtr := position.GetFromEntity(entity)
	if posPtr.X != 1 || posPtr.Y != 2 {
		t.Errorf("Position after one Update = {%v, %v}, want {1, 2}", posPtr.X, posPtr.Y)
	}

	if err := app.Update(); err != nil {
		t.Fatalf("second Update failed: %v", err)
	}
	if posPtr.X != 2 || posPtr.Y != 4 {
		t.Errorf("Position after two Updates = {%v, %v}, want {2, 4}", posPtr.X, posPtr.Y)
	}
}

// TestAppDeferredDeleteUnderIteration ensures an entity destroy requested
// while the storage is locked by an in-flight cursor is deferred and
// applied once iteration completes, rather than corrupting the walk.
func TestAppDeferredDeleteUnderIteration(t *testing.T) {
	app := New()
	position := FactoryNewComponent[Position]()

	var toDelete Entity
	for i := 0; i < 5; i++ {
		e, err := app.World().CreateRootEntity(position)
		if err != nil {
			t.Fatalf("CreateRootEntity failed: %v", err)
		}
		if i == 2 {
			toDelete = e
		}
	}

	cursor := Factory.NewCursor(With(position.Component), app.Storage())
	seen := 0
	for cursor.Next() {
		seen++
		if seen == 3 {
			if err := app.World().DeleteEntity(toDelete); err != nil {
				t.Fatalf("DeleteEntity (deferred) failed: %v", err)
			}
		}
	}
	if seen != 5 {
		t.Errorf("expected to observe all 5 entities during the locked walk, saw %d", seen)
	}

	cursor2 := Factory.NewCursor(With(position.Component), app.Storage())
	remaining := 0
	for cursor2.Next() {
		remaining++
	}
	if remaining != 4 {
		t.Errorf("expected 4 entities after the deferred delete drained, got %d", remaining)
	}
}

// TestAppChangedFilterSeesFirstRunThenExactWrites exercises the worked
// scenario from the ordering section: three entities share Position. A
// writer system (action "write", Write access) mutates exactly one
// Position per cycle. A reader system (action "read", runs after "write")
// iterates Filter<Changed<Position>>. On cycle 1 it must see all three
// (the reader system itself is new), and on cycle 2+ it must see exactly
// the one written that cycle.
func TestAppChangedFilterSeesFirstRunThenExactWrites(t *testing.T) {
	app := New()
	position := FactoryNewComponent[Position]()

	for i := 0; i < 3; i++ {
		if _, err := app.World().CreateRootEntity(position); err != nil {
			t.Fatalf("CreateRootEntity failed: %v", err)
		}
	}

	write := StringKey("write")
	read := StringKey("read")
	if err := app.AddOrder(write, read); err != nil {
		t.Fatalf("AddOrder failed: %v", err)
	}

	var writeTarget int
	writeCalls := 0
	writerID := StringKey("writer")
	err := app.RegisterSystem(SystemDescriptor{
		ID:     writerID,
		Action: write,
		Access: []AccessSpec{{ComponentTypeID: app.Storage().RowIndexFor(position.Component), Mode: Write}},
		Run: func(a *App) error {
			q := NewQuery1[Position](a.Storage(), position).WithTracker(a.Tracker())
			i := 0
			for q.Next() {
				if i == writeTarget {
					pos := q.C1()
					pos.X = float64(writeCalls + 1)
				}
				i++
			}
			writeCalls++
			return nil
		},
	})
	if err != nil {
		t.Fatalf("RegisterSystem(writer) failed: %v", err)
	}

	var seenOnCycle1, seenOnCycle2 int
	cycle := 0
	readerID := StringKey("reader")
	err = app.RegisterSystem(SystemDescriptor{
		ID:     readerID,
		Action: read,
		Access: []AccessSpec{{ComponentTypeID: app.Storage().RowIndexFor(position.Component), Mode: Read}},
		Run: func(a *App) error {
			cycle++
			q := NewQuery1[Position](a.Storage(), position, Changed(position.Component, a.Tracker(), readerID))
			seen := 0
			for q.Next() {
				seen++
			}
			if cycle == 1 {
				seenOnCycle1 = seen
			} else if cycle == 2 {
				seenOnCycle2 = seen
			}
			return nil
		},
	})
	if err != nil {
		t.Fatalf("RegisterSystem(reader) failed: %v", err)
	}

	if err := app.Update(); err != nil {
		t.Fatalf("Update (cycle 1) failed: %v", err)
	}
	if seenOnCycle1 != 3 {
		t.Errorf("cycle 1: Changed<Position> saw %d entities, want 3 (reader system is new)", seenOnCycle1)
	}

	if err := app.Update(); err != nil {
		t.Fatalf("Update (cycle 2) failed: %v", err)
	}
	if seenOnCycle2 != 1 {
		t.Errorf("cycle 2: Changed<Position> saw %d entities, want exactly 1", seenOnCycle2)
	}
}

// TestAppSingletonUniqueness exercises FactoryNewSingletonComponent: a
// second live instance must be rejected while the first remains.
func TestAppSingletonUniqueness(t *testing.T) {
	app := New()
	clock := FactoryNewSingletonComponent[Health]()

	first, err := app.World().CreateRootEntity(clock)
	if err != nil {
		t.Fatalf("creating first singleton owner failed: %v", err)
	}

	got, err := GetSingleton(app, clock)
	if err != nil {
		t.Fatalf("GetSingleton failed: %v", err)
	}
	if got == nil {
		t.Fatalf("GetSingleton returned nil value")
	}
	got.Current = 1

	_, err = app.World().CreateRootEntity(clock)
	if _, ok := err.(SingletonAlreadyExistsError); !ok {
		t.Errorf("second singleton instance: err = %v, want SingletonAlreadyExistsError", err)
	}
	if cur := clock.GetFromEntity(first).Current; cur != 1 {
		t.Errorf("first singleton instance Current = %d, want 1", cur)
	}
	if !LockSingleton(app, clock) {
		t.Errorf("expected LockSingleton to report a live singleton")
	}
}
