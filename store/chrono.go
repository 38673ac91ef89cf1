package store

import (
	"sort"

	"github.com/gogpu/inkwell"
)

// Chronological ordering. Every stroke carries a monotonically increasing
// stamp; drawing in ascending stamp order gives the painter's algorithm its
// z-order. Re-stamping moves a stroke to the top.

// ChronoStamp returns the ordering stamp for a key.
func (s *StrokeStore) ChronoStamp(key StrokeKey) (uint64, bool) {
	return s.chrono.Get(key)
}

// UpdateChronoToLast moves a stroke to the top of the z-order.
func (s *StrokeStore) UpdateChronoToLast(key StrokeKey) {
	if _, ok := s.strokes.Get(key); !ok {
		return
	}
	s.chrono.Set(key, s.nextChrono())
}

func (s *StrokeStore) sortByChrono(keys []StrokeKey) {
	sort.Slice(keys, func(i, j int) bool {
		ti, _ := s.chrono.Get(keys[i])
		tj, _ := s.chrono.Get(keys[j])
		return ti < tj
	})
}

// KeysUnordered returns every key, trashed included, in no particular
// order.
func (s *StrokeStore) KeysUnordered() []StrokeKey {
	return s.strokes.Keys()
}

// KeysSortedChrono returns every key, trashed included, in z-order.
func (s *StrokeStore) KeysSortedChrono() []StrokeKey {
	keys := s.strokes.Keys()
	s.sortByChrono(keys)
	return keys
}

// StrokeKeysAsRendered returns the non-trashed keys in z-order.
func (s *StrokeStore) StrokeKeysAsRendered() []StrokeKey {
	keys := make([]StrokeKey, 0, s.strokes.Len())
	for _, k := range s.strokes.Keys() {
		if trashed, _ := s.trashed.Get(k); !trashed {
			keys = append(keys, k)
		}
	}
	s.sortByChrono(keys)
	return keys
}

// StrokeKeysAsRenderedIntersectingBounds returns the non-trashed keys whose
// bounds intersect the region, in z-order.
func (s *StrokeStore) StrokeKeysAsRenderedIntersectingBounds(bounds inkwell.AABB) []StrokeKey {
	candidates := s.keyTree.KeysIntersecting(bounds)
	keys := candidates[:0]
	for _, k := range candidates {
		if trashed, _ := s.trashed.Get(k); !trashed {
			keys = append(keys, k)
		}
	}
	s.sortByChrono(keys)
	return keys
}

// StrokeKeysAsRenderedInBounds returns the non-trashed keys whose bounds
// lie fully inside the region, in z-order.
func (s *StrokeStore) StrokeKeysAsRenderedInBounds(bounds inkwell.AABB) []StrokeKey {
	candidates := s.keyTree.KeysContained(bounds)
	keys := candidates[:0]
	for _, k := range candidates {
		if trashed, _ := s.trashed.Get(k); !trashed {
			keys = append(keys, k)
		}
	}
	s.sortByChrono(keys)
	return keys
}

// SelectionKeysAsRendered returns the selected keys in z-order.
func (s *StrokeStore) SelectionKeysAsRendered() []StrokeKey {
	keys := make([]StrokeKey, 0, s.selected.Len())
	s.selected.Range(func(k StrokeKey, sel bool) bool {
		if !sel {
			return true
		}
		if trashed, _ := s.trashed.Get(k); !trashed {
			keys = append(keys, k)
		}
		return true
	})
	s.sortByChrono(keys)
	return keys
}
