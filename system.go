package ecs

// SystemID names a registered system, the same DynamicKey-tagged scheme as
// ActionID (see action.go) since both are caller-named handles into a
// registry rather than dense indices assigned by the runtime.
type SystemID = DynamicKey

// AccessMode tags whether a system's declared access to a component type
// is read-only or read-write.
type AccessMode int

const (
	// Read means the system only observes the component's current value.
	Read AccessMode = iota
	// Write means the system may mutate the component's value.
	Write
)

// AccessSpec is one component-type access declared by a system.
type AccessSpec struct {
	ComponentTypeID ComponentTypeID
	Mode            AccessMode
}

// SystemFunc is the unit of work a registered system runs once per
// schedule wave it participates in.
type SystemFunc func(*App) error

// SystemDescriptor is everything the scheduler needs to know about one
// registered system: its declared component accesses (used for conflict
// analysis between systems sharing an update wave) and the action it
// belongs to (used for ordering against other actions). A system whose
// Access lists a component type as Write and that wants Changed<T> filters
// elsewhere to observe its writes should build its queries with
// .WithTracker(app.Tracker()) inside Run — Access only declares the
// conflict-analysis shape, it doesn't wire the tracker for you, since only
// the system's own query construction knows which component each C1/C2/C3
// accessor actually touches.
type SystemDescriptor struct {
	ID      SystemID
	Action  ActionID
	Access  []AccessSpec
	Run     SystemFunc
}

// SystemRegistry holds every system registered against an App, grouped by
// the action they participate in.
type SystemRegistry struct {
	systems []SystemDescriptor
	byID    map[SystemID]int
}

func newSystemRegistry() *SystemRegistry {
	return &SystemRegistry{byID: make(map[SystemID]int)}
}

// Register adds a system, rejecting it if it declares conflicting access
// modes (e.g. Write and Read, or two Writes) against the same component
// type within its own access list — that's always a bug in the system's
// own declaration, not a cross-system conflict the scheduler should have to
// untangle.
func (r *SystemRegistry) Register(desc SystemDescriptor) error {
	seen := make(map[ComponentTypeID]AccessMode)
	for _, a := range desc.Access {
		if existing, ok := seen[a.ComponentTypeID]; ok {
			if existing != a.Mode || a.Mode == Write {
				return ParamConflictError{ComponentTypeID: a.ComponentTypeID}
			}
		}
		seen[a.ComponentTypeID] = a.Mode
	}
	r.byID[desc.ID] = len(r.systems)
	r.systems = append(r.systems, desc)
	return nil
}

// ByAction returns every system registered under the given action.
func (r *SystemRegistry) ByAction(action ActionID) []SystemDescriptor {
	var out []SystemDescriptor
	for _, s := range r.systems {
		if s.Action == action {
			out = append(out, s)
		}
	}
	return out
}

// All returns every registered system, in registration order.
func (r *SystemRegistry) All() []SystemDescriptor {
	return r.systems
}

// conflicts reports whether a and b declare incompatible access to any
// shared component type (Write+anything, or Write+Write).
func conflicts(a, b SystemDescriptor) bool {
	bAccess := make(map[ComponentTypeID]AccessMode, len(b.Access))
	for _, acc := range b.Access {
		bAccess[acc.ComponentTypeID] = acc.Mode
	}
	for _, acc := range a.Access {
		mode, ok := bAccess[acc.ComponentTypeID]
		if !ok {
			continue
		}
		if acc.Mode == Write || mode == Write {
			return true
		}
	}
	return false
}
