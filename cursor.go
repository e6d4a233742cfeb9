package ecs

import (
	"iter"

	"github.com/TheBitDrifter/table"
)

// iterationLockBit is the reserved lock bit cursors hold for their
// lifetime, distinct from any bit a caller might use for its own locking.
// mask.Mask256 has 256 bits; component row indices are dense from 0, so the
// top bit is never assigned to a real component in practice.
const iterationLockBit uint32 = 255

// Cursor provides iteration over filtered entities in storage
type Cursor struct {
	query            QueryNode
	storage          Storage
	currentArchetype archetype
	storageIndex     int
	entityIndex      int
	remaining        int

	initialized     bool
	matchedStorages []archetype

	// changedFilter is the Changed(...) node found in query, if any,
	// extracted once in Initialize so Next doesn't re-walk the query tree
	// on every call. Refines the archetype-level match down to the exact
	// rows written this cycle (or every row, for a new system's first run).
	changedFilter *changedNode
}

// newCursor creates a new cursor for the given query and storage
func newCursor(query QueryNode, storage Storage) *Cursor {
	return &Cursor{
		query:   query,
		storage: storage,
	}
}

// Next advances to the next entity matching both the archetype-level query
// and, if present, the exact-row Changed(...) filter, skipping rows the
// filter rejects.
func (c *Cursor) Next() bool {
	for c.step() {
		if c.matchesChangeFilter() {
			return true
		}
	}
	return false
}

// step advances to the next row in the current archetype, or the next
// matching archetype if the current one is exhausted, without applying the
// Changed(...) row filter.
func (c *Cursor) step() bool {
	if c.entityIndex < c.remaining {
		c.entityIndex++
		return true
	}
	return c.advance()
}

// matchesChangeFilter reports whether the cursor's current row satisfies
// changedFilter, or true unconditionally if the query has no such filter.
func (c *Cursor) matchesChangeFilter() bool {
	if c.changedFilter == nil {
		return true
	}
	if c.changedFilter.tracker.IsNew(c.changedFilter.system) {
		return true
	}
	bit := c.storage.RowIndexFor(c.changedFilter.component)
	return c.changedFilter.tracker.IsChanged(bit, c.currentArchetype.id, c.Row())
}

// advance moves to the next available archetype with entities
func (c *Cursor) advance() bool {
	if !c.initialized {
		c.Initialize()
	}

	for c.storageIndex < len(c.matchedStorages) {
		c.currentArchetype = c.matchedStorages[c.storageIndex]
		c.remaining = c.currentArchetype.table.Length()
		if c.entityIndex < c.remaining {
			c.entityIndex++
			return true
		}
		c.storageIndex++
		c.entityIndex = 0
	}

	c.Reset()
	return false
}

// Entities returns an iterator sequence over entities matching the query
func (c *Cursor) Entities() iter.Seq2[int, table.Table] {
	return func(yield func(int, table.Table) bool) {
		c.Initialize()

		for c.storageIndex < len(c.matchedStorages) {
			c.currentArchetype = c.matchedStorages[c.storageIndex]
			c.remaining = c.currentArchetype.table.Length()

			for c.entityIndex < c.remaining {
				if !yield(c.entityIndex, c.currentArchetype.table) {
					c.Reset()
					return
				}
				c.entityIndex++
			}

			c.entityIndex = 0
			c.storageIndex++
		}

		c.Reset()
	}
}

// Initialize sets up the cursor by finding matching archetypes
func (c *Cursor) Initialize() {
	if c.initialized {
		return
	}

	c.storage.AddLock(iterationLockBit)
	c.matchedStorages = make([]archetype, 0)
	c.changedFilter = extractChangedNode(c.query)

	for _, arch := range c.storage.Archetypes() {
		if c.query == nil || c.query.Evaluate(arch, c.storage) {
			c.matchedStorages = append(c.matchedStorages, arch)
		}
	}

	if len(c.matchedStorages) > 0 {
		c.storageIndex = 0
		c.currentArchetype = c.matchedStorages[0]
		c.remaining = c.currentArchetype.table.Length()
	}

	c.initialized = true
}

// Reset clears cursor state and releases the storage lock
func (c *Cursor) Reset() {
	c.storageIndex = 0
	c.entityIndex = 0
	c.remaining = 0
	c.matchedStorages = nil
	c.initialized = false
	c.storage.RemoveLock(iterationLockBit)
}

// CurrentEntity returns the entity at the current cursor position
func (c *Cursor) CurrentEntity() (Entity, error) {
	entry, err := c.currentArchetype.table.Entry(c.entityIndex - 1)
	if err != nil {
		return nil, err
	}
	return c.storage.Entity(int(entry.ID()))
}

// EntityAtOffset returns an entity at the specified offset from current position
func (c *Cursor) EntityAtOffset(offset int) (Entity, error) {
	entry, err := c.currentArchetype.table.Entry(c.entityIndex - 1 + offset)
	if err != nil {
		return nil, err
	}
	return c.storage.Entity(int(entry.ID()))
}

// EntityIndex returns the current entity index within the current archetype
func (c *Cursor) EntityIndex() int {
	return c.entityIndex
}

// RemainingInArchetype returns the number of entities left in the current archetype
func (c *Cursor) RemainingInArchetype() int {
	return c.remaining - c.entityIndex
}

// TotalMatched returns the total number of entities matching the query,
// including the exact-row Changed(...) filter if the query has one (rather
// than just the coarser archetype-level prefilter).
func (c *Cursor) TotalMatched() int {
	if !c.initialized {
		c.Initialize()
	}

	total := 0
	if c.changedFilter == nil {
		for _, arch := range c.matchedStorages {
			total += arch.table.Length()
		}
	} else {
		bit := c.storage.RowIndexFor(c.changedFilter.component)
		isNew := c.changedFilter.tracker.IsNew(c.changedFilter.system)
		for _, arch := range c.matchedStorages {
			length := arch.table.Length()
			if isNew {
				total += length
				continue
			}
			for row := 0; row < length; row++ {
				if c.changedFilter.tracker.IsChanged(bit, arch.id, row) {
					total++
				}
			}
		}
	}

	c.Reset()
	return total
}

// Row returns the zero-based row the cursor is currently positioned at,
// for callers (ChangeTracker writers, Query1/2/3 param binders) indexing
// the per-row change bitmap rather than going through the Accessor API.
func (c *Cursor) Row() int {
	return c.entityIndex - 1
}
