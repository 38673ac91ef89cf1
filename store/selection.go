package store

import (
	"github.com/gogpu/inkwell"
	"github.com/gogpu/inkwell/render"
	"github.com/gogpu/inkwell/strokes"
)

// IsSelected reports whether a stroke is selected. Unknown keys report
// false.
func (s *StrokeStore) IsSelected(key StrokeKey) bool {
	sel, _ := s.selected.Get(key)
	return sel
}

// SetSelected selects or deselects a stroke. Trashed strokes cannot be
// selected. Any change moves the stroke to the top of the z-order.
func (s *StrokeStore) SetSelected(key StrokeKey, selected bool) {
	if _, ok := s.strokes.Get(key); !ok {
		return
	}
	if selected && s.IsTrashed(key) {
		return
	}
	s.selected.Set(key, selected)
	s.UpdateChronoToLast(key)
}

// SetSelectedKeys selects or deselects a set of strokes.
func (s *StrokeStore) SetSelectedKeys(keys []StrokeKey, selected bool) {
	for _, key := range keys {
		s.SetSelected(key, selected)
	}
}

// SelectAllStrokes selects every non-trashed stroke.
func (s *StrokeStore) SelectAllStrokes() {
	for _, key := range s.StrokeKeysAsRendered() {
		s.SetSelected(key, true)
	}
}

// DeselectAllStrokes clears the selection.
func (s *StrokeStore) DeselectAllStrokes() {
	for _, key := range s.SelectionKeysAsRendered() {
		s.selected.Set(key, false)
	}
}

// SelectionBounds returns the bounds enclosing the selection.
func (s *StrokeStore) SelectionBounds() (inkwell.AABB, bool) {
	return s.BoundsForStrokes(s.SelectionKeysAsRendered())
}

// DuplicateSelection replaces the selection with translated copies of it.
// The copies inherit the originals' cached images, shifted by the offset,
// so they appear instantly while their own rendering regenerates.
func (s *StrokeStore) DuplicateSelection() []StrokeKey {
	originals := s.SelectionKeysAsRendered()
	if len(originals) == 0 {
		return nil
	}

	offset := strokes.ImportOffset
	duplicated := make([]StrokeKey, 0, len(originals))
	for _, origKey := range originals {
		orig, ok := s.strokes.Get(origKey)
		if !ok {
			continue
		}
		dup := orig.Clone()
		dup.Translate(offset)
		newKey := s.InsertStroke(dup)
		duplicated = append(duplicated, newKey)

		if origComp, ok := s.render[origKey]; ok {
			newComp := s.render[newKey]
			newComp.state = origComp.state
			if newComp.state == RenderCompStateBusy {
				// The original's in-flight job completes for the original
				// only. A busy duplicate would never be scheduled again.
				newComp.state = RenderCompStateDirty
			}
			newComp.viewport = origComp.viewport.Translated(offset)
			newComp.images = make([]render.Image, len(origComp.images))
			copy(newComp.images, origComp.images)
			for i := range newComp.images {
				newComp.images[i].Translate(offset)
			}
		}

		s.SetSelected(origKey, false)
		s.SetSelected(newKey, true)
	}
	return duplicated
}
