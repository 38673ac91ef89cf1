package store

import (
	"github.com/gogpu/inkwell"
	"github.com/gogpu/inkwell/strokes"
)

// EraserMinSurvivingSegments is the smallest number of segments a split-off
// piece of a brush stroke must have to survive an eraser split.
const EraserMinSurvivingSegments = 2

// IsTrashed reports whether a stroke is trashed. Unknown keys report false.
func (s *StrokeStore) IsTrashed(key StrokeKey) bool {
	trashed, _ := s.trashed.Get(key)
	return trashed
}

// SetTrashed trashes or restores a stroke. Trashing deselects, and both
// directions move the stroke to the top of the z-order so a restored stroke
// reappears above what was drawn since.
func (s *StrokeStore) SetTrashed(key StrokeKey, trash bool) {
	if _, ok := s.strokes.Get(key); !ok {
		return
	}
	s.trashed.Set(key, trash)
	if trash {
		s.selected.Set(key, false)
	}
	s.UpdateChronoToLast(key)
}

// SetTrashedKeys trashes or restores a set of strokes.
func (s *StrokeStore) SetTrashedKeys(keys []StrokeKey, trash bool) {
	for _, key := range keys {
		s.SetTrashed(key, trash)
	}
}

// TrashedKeys returns every trashed key, in no particular order.
func (s *StrokeStore) TrashedKeys() []StrokeKey {
	var keys []StrokeKey
	s.trashed.Range(func(k StrokeKey, trashed bool) bool {
		if trashed {
			keys = append(keys, k)
		}
		return true
	})
	return keys
}

// RemoveTrashedStrokes permanently deletes all trashed strokes and returns
// how many were removed. This empties the safety net undo relies on for
// trashed strokes, callers usually clear the history alongside.
func (s *StrokeStore) RemoveTrashedStrokes() int {
	keys := s.TrashedKeys()
	for _, key := range keys {
		s.RemoveStroke(key)
	}
	return len(keys)
}

// TrashCollidingStrokes trashes whole strokes whose hitboxes collide with
// the eraser bounds. Only strokes inside the viewport are considered.
// Returns the trashed keys.
func (s *StrokeStore) TrashCollidingStrokes(eraserBounds, viewport inkwell.AABB) []StrokeKey {
	var trashed []StrokeKey
	for _, key := range s.keyTree.KeysIntersecting(eraserBounds) {
		if s.IsTrashed(key) {
			continue
		}
		stroke, ok := s.strokes.Get(key)
		if !ok || !stroke.Bounds().Intersects(viewport) {
			continue
		}
		for _, hb := range stroke.Hitboxes() {
			if hb.Intersects(eraserBounds) {
				s.SetTrashed(key, true)
				trashed = append(trashed, key)
				break
			}
		}
	}
	return trashed
}

// SplitCollidingStrokes erases the parts of brush strokes hit by the eraser
// bounds, splitting them into surviving pieces. Pieces shorter than the
// minimum surviving segment count are discarded. Stroke variants that cannot be
// split are trashed whole. Returns the keys of newly inserted pieces.
func (s *StrokeStore) SplitCollidingStrokes(eraserBounds, viewport inkwell.AABB) []StrokeKey {
	var inserted []StrokeKey
	for _, key := range s.keyTree.KeysIntersecting(eraserBounds) {
		if s.IsTrashed(key) {
			continue
		}
		stroke, ok := s.strokes.Get(key)
		if !ok || !stroke.Bounds().Intersects(viewport) {
			continue
		}

		hit := false
		for _, hb := range stroke.Hitboxes() {
			if hb.Intersects(eraserBounds) {
				hit = true
				break
			}
		}
		if !hit {
			continue
		}

		brush, ok := stroke.(*strokes.BrushStroke)
		if !ok {
			s.SetTrashed(key, true)
			continue
		}
		inserted = append(inserted, s.splitBrushStroke(key, brush, eraserBounds)...)
	}
	return inserted
}

// splitBrushStroke removes the hit segments from a brush stroke. The first
// surviving piece replaces the original in place so its key stays stable,
// further pieces become new strokes. An original with no surviving piece is
// trashed.
func (s *StrokeStore) splitBrushStroke(key StrokeKey, brush *strokes.BrushStroke, eraserBounds inkwell.AABB) []StrokeKey {
	hitIdx := brush.Path.HitTest(eraserBounds, brush.Style.Width/2)
	if len(hitIdx) == 0 {
		return nil
	}
	hitSet := make(map[int]struct{}, len(hitIdx))
	for _, i := range hitIdx {
		hitSet[i] = struct{}{}
	}

	elements := brush.Path.Elements()
	segCount := brush.Path.Len()

	// Collect maximal runs of surviving segments.
	var runs [][]strokes.Element
	runStart := -1
	flush := func(end int) {
		if runStart < 0 {
			return
		}
		if end-runStart >= s.eraserMinSegments {
			run := make([]strokes.Element, end-runStart+1)
			copy(run, elements[runStart:end+1])
			runs = append(runs, run)
		}
		runStart = -1
	}
	for i := 0; i < segCount; i++ {
		if _, hit := hitSet[i]; hit {
			flush(i)
			continue
		}
		if runStart < 0 {
			runStart = i
		}
	}
	flush(segCount)

	if len(runs) == 0 {
		s.SetTrashed(key, true)
		return nil
	}

	// First piece keeps the original key.
	first, _ := strokes.PenPathFromElements(runs[0])
	replacement := brush.Clone().(*strokes.BrushStroke)
	replacement.ReplacePath(first)
	s.strokes.Set(key, replacement)
	s.keyTree.Update(key, replacement.Bounds())
	s.SetRenderingDirty(key)

	var inserted []StrokeKey
	for _, run := range runs[1:] {
		path, ok := strokes.PenPathFromElements(run)
		if !ok {
			continue
		}
		piece := strokes.NewBrushStroke(path, brush.Style)
		inserted = append(inserted, s.InsertStroke(piece))
	}
	return inserted
}
