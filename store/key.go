// Package store holds the document's strokes and their parallel component
// tables: trash state, selection state, chronological ordering and the
// rendering cache. Component tables are copy-on-write so history snapshots
// cost O(1) regardless of document size.
package store

import "fmt"

// StrokeKey identifies a stroke slot. The generation guards against stale
// keys: a slot reused after removal carries a bumped generation, so a key
// held across the removal can never alias the new occupant.
//
// The zero value is never issued and acts as an invalid key.
type StrokeKey struct {
	Idx uint32 `json:"idx"`
	Gen uint32 `json:"gen"`
}

// Valid reports whether the key was issued by an allocator.
func (k StrokeKey) Valid() bool {
	return k.Gen != 0
}

func (k StrokeKey) String() string {
	return fmt.Sprintf("stroke(%d.%d)", k.Idx, k.Gen)
}

// keyAllocator issues StrokeKeys. Freed slots are reused with a bumped
// generation. The allocator only moves forward, it is not rolled back by
// undo; resurrected table entries keep working because they store the full
// key, and reused slots are distinguishable by generation.
//
// A resurrected stroke can be removed a second time, so release must be
// idempotent per slot: pushing a slot onto the free list twice would hand
// the same key to two later inserts.
type keyAllocator struct {
	next  uint32
	free  []StrokeKey
	freed map[uint32]struct{}
}

func (a *keyAllocator) allocate() StrokeKey {
	if n := len(a.free); n > 0 {
		k := a.free[n-1]
		a.free = a.free[:n-1]
		delete(a.freed, k.Idx)
		k.Gen++
		return k
	}
	a.next++
	return StrokeKey{Idx: a.next, Gen: 1}
}

func (a *keyAllocator) release(k StrokeKey) {
	if !k.Valid() {
		return
	}
	if _, ok := a.freed[k.Idx]; ok {
		return
	}
	if a.freed == nil {
		a.freed = make(map[uint32]struct{})
	}
	a.freed[k.Idx] = struct{}{}
	a.free = append(a.free, k)
}
