package ecs

import "testing"

func TestSystemRegistryRejectsSelfConflict(t *testing.T) {
	r := newSystemRegistry()
	posType := ComponentTypeID(1)

	err := r.Register(SystemDescriptor{
		ID:     StringKey("bad-system"),
		Action: StringKey("update"),
		Access: []AccessSpec{
			{ComponentTypeID: posType, Mode: Write},
			{ComponentTypeID: posType, Mode: Read},
		},
		Run: func(*App) error { return nil },
	})
	if err == nil {
		t.Fatalf("expected conflicting access declaration to be rejected")
	}
	if _, ok := err.(ParamConflictError); !ok {
		t.Errorf("expected ParamConflictError, got %T", err)
	}
}

func TestSystemRegistryByAction(t *testing.T) {
	r := newSystemRegistry()
	move := StringKey("move")
	render := StringKey("render")

	for _, id := range []string{"sys1", "sys2"} {
		if err := r.Register(SystemDescriptor{
			ID:     StringKey(id),
			Action: move,
			Run:    func(*App) error { return nil },
		}); err != nil {
			t.Fatalf("Register(%s) failed: %v", id, err)
		}
	}
	if err := r.Register(SystemDescriptor{
		ID:     StringKey("sys3"),
		Action: render,
		Run:    func(*App) error { return nil },
	}); err != nil {
		t.Fatalf("Register(sys3) failed: %v", err)
	}

	if got := len(r.ByAction(move)); got != 2 {
		t.Errorf("ByAction(move) = %d systems, want 2", got)
	}
	if got := len(r.ByAction(render)); got != 1 {
		t.Errorf("ByAction(render) = %d systems, want 1", got)
	}
}

func TestSystemConflictDetection(t *testing.T) {
	posType := ComponentTypeID(1)
	velType := ComponentTypeID(2)

	a := SystemDescriptor{Access: []AccessSpec{{ComponentTypeID: posType, Mode: Write}}}
	b := SystemDescriptor{Access: []AccessSpec{{ComponentTypeID: posType, Mode: Read}}}
	c := SystemDescriptor{Access: []AccessSpec{{ComponentTypeID: velType, Mode: Write}}}

	if !conflicts(a, b) {
		t.Errorf("expected Write/Read on same component type to conflict")
	}
	if conflicts(a, c) {
		t.Errorf("did not expect disjoint component types to conflict")
	}
}
