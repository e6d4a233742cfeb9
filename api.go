package ecs

import "github.com/TheBitDrifter/table"

// Archetype is one columnar bucket of entities sharing an identical
// component set.
type Archetype interface {
	ID() uint32
	Table() table.Table
}

// Cache is a simple capacity-bounded registry keyed by string, for naming
// resources that need a stable lookup index. The scheduler, action graph
// and system registry do not use it.
type Cache[T any] interface {
	GetIndex(string) (int, bool)
	GetItem(int) *T
	GetItem32(uint32) *T
	Register(string, T) (int, error)
}

// CacheLocation pairs a cache key with its resolved slot index.
type CacheLocation struct {
	Key   string
	Index uint32
}

// SimpleCache is the default Cache implementation: an append-only slice
// plus a string->index map, bounded by maxCapacity.
type SimpleCache[T any] struct {
	items       []T
	itemIndices map[string]int
	maxCapacity int
}
