package ecs

import "testing"

func TestChangeTrackerRowGranularity(t *testing.T) {
	tracker := NewChangeTracker()
	const posType ComponentTypeID = 1
	const arche archetypeID = 1

	tracker.MarkWritten(posType, arche, 3)

	if !tracker.IsChanged(posType, arche, 3) {
		t.Errorf("expected row 3 to be marked changed")
	}
	if tracker.IsChanged(posType, arche, 7) {
		t.Errorf("did not expect row 7 to be marked changed")
	}
	if !tracker.IsArchetypeChanged(posType, arche) {
		t.Errorf("expected archetype-level predicate to be true when any row changed")
	}
}

func TestChangeTrackerResetCycle(t *testing.T) {
	tracker := NewChangeTracker()
	const posType ComponentTypeID = 1
	const arche archetypeID = 1

	tracker.MarkWritten(posType, arche, 0)
	tracker.ResetCycle()

	if tracker.IsChanged(posType, arche, 0) {
		t.Errorf("expected ResetCycle to clear prior writes")
	}
}
