package ecs

import (
	"fmt"

	"github.com/google/uuid"
)

// DynamicKeyKind tags which concrete shape a DynamicKey holds.
type DynamicKeyKind int

const (
	// DynamicKeyString tags a string-backed key.
	DynamicKeyString DynamicKeyKind = iota
	// DynamicKeyInt tags an int-backed key.
	DynamicKeyInt
	// DynamicKeyUUID tags a uuid-backed key, minted fresh per NewDynamicKey
	// call for callers that just want a collision-resistant handle.
	DynamicKeyUUID
)

// DynamicKey is a type-tagged, hashable value used to name resources across
// otherwise-unrelated Go types — the Action graph keys actions by it, and
// the SystemRegistry keys systems by it. The resource Cache (see cache.go)
// is keyed by plain strings and does not accept a DynamicKey.
//
// The original engine this runtime is modeled on represents this as a boxed
// `dyn Any` trait object (see DESIGN.md); Go has no analogous runtime-type
// erasure with equality/hashing built in, so DynamicKey is a tagged variant
// over the handful of concrete shapes the public API actually needs. Being a
// plain comparable struct, it works as a map key with no custom Hash/Eq.
type DynamicKey struct {
	kind DynamicKeyKind
	str  string
	num  int
	id   uuid.UUID
}

// StringKey builds a DynamicKey from a string.
func StringKey(s string) DynamicKey {
	return DynamicKey{kind: DynamicKeyString, str: s}
}

// IntKey builds a DynamicKey from an int.
func IntKey(n int) DynamicKey {
	return DynamicKey{kind: DynamicKeyInt, num: n}
}

// NewDynamicKey mints a fresh, collision-resistant DynamicKey, useful when
// the caller has no natural stable name for a resource (e.g. an anonymous
// action).
func NewDynamicKey() DynamicKey {
	return DynamicKey{kind: DynamicKeyUUID, id: uuid.New()}
}

// String implements fmt.Stringer for debug printing.
func (k DynamicKey) String() string {
	switch k.kind {
	case DynamicKeyString:
		return fmt.Sprintf("key(%q)", k.str)
	case DynamicKeyInt:
		return fmt.Sprintf("key(%d)", k.num)
	case DynamicKeyUUID:
		return fmt.Sprintf("key(%s)", k.id)
	default:
		return "key(?)"
	}
}
