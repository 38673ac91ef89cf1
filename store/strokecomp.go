package store

import (
	"github.com/gogpu/inkwell"
	"github.com/gogpu/inkwell/strokes"
)

// ModifyStroke mutates a stroke through fn. The stroke is cloned first so
// history snapshots sharing the table keep the pre-mutation value, then the
// spatial index follows the new bounds and the rendering is invalidated.
func (s *StrokeStore) ModifyStroke(key StrokeKey, fn func(strokes.Stroke)) bool {
	stroke, ok := s.strokes.Get(key)
	if !ok {
		return false
	}
	clone := stroke.Clone()
	fn(clone)
	clone.UpdateGeometry()
	s.strokes.Set(key, clone)
	s.keyTree.Update(key, clone.Bounds())
	s.SetRenderingDirty(key)
	return true
}

// UpdateGeometryForStroke recomputes a stroke's derived geometry and
// refreshes the spatial index, for example after deserialization.
func (s *StrokeStore) UpdateGeometryForStroke(key StrokeKey) {
	s.ModifyStroke(key, func(strokes.Stroke) {})
}

// UpdateGeometryForStrokes recomputes derived geometry for a set of keys.
func (s *StrokeStore) UpdateGeometryForStrokes(keys []StrokeKey) {
	for _, key := range keys {
		s.UpdateGeometryForStroke(key)
	}
}

// TranslateStrokes moves the stroke geometries by the offset. The cached
// images are not touched, use TranslateStrokesImages to move them along.
func (s *StrokeStore) TranslateStrokes(keys []StrokeKey, offset inkwell.Point) {
	for _, key := range keys {
		s.modifyGeometry(key, func(st strokes.Stroke) {
			st.Translate(offset)
		})
	}
}

// TranslateStrokesImages moves the cached images by the offset so a
// translated stroke stays visible without re-rendering.
func (s *StrokeStore) TranslateStrokesImages(keys []StrokeKey, offset inkwell.Point) {
	for _, key := range keys {
		comp, ok := s.render[key]
		if !ok {
			continue
		}
		for i := range comp.images {
			comp.images[i].Translate(offset)
		}
		if comp.state == RenderCompStateForViewport {
			comp.viewport = comp.viewport.Translated(offset)
		}
	}
}

// RotateStrokes rotates the stroke geometries by angle (radians) about
// center.
func (s *StrokeStore) RotateStrokes(keys []StrokeKey, angle float64, center inkwell.Point) {
	for _, key := range keys {
		s.modifyGeometry(key, func(st strokes.Stroke) {
			st.Rotate(angle, center)
		})
	}
}

// RotateStrokesImages rotates the cached images along with their strokes.
func (s *StrokeStore) RotateStrokesImages(keys []StrokeKey, angle float64, center inkwell.Point) {
	for _, key := range keys {
		comp, ok := s.render[key]
		if !ok {
			continue
		}
		for i := range comp.images {
			comp.images[i].Rotate(angle, center)
		}
	}
}

// ScaleStrokes scales the stroke geometries about the document origin.
func (s *StrokeStore) ScaleStrokes(keys []StrokeKey, scale inkwell.Point) {
	for _, key := range keys {
		s.modifyGeometry(key, func(st strokes.Stroke) {
			st.Scale(scale)
		})
	}
}

// ScaleStrokesImages scales the cached images along with their strokes.
func (s *StrokeStore) ScaleStrokesImages(keys []StrokeKey, scale inkwell.Point) {
	for _, key := range keys {
		comp, ok := s.render[key]
		if !ok {
			continue
		}
		for i := range comp.images {
			comp.images[i].Scale(scale)
		}
	}
}

// ScaleStrokesWithPivot scales the stroke geometries about a pivot point.
func (s *StrokeStore) ScaleStrokesWithPivot(keys []StrokeKey, scale, pivot inkwell.Point) {
	for _, key := range keys {
		s.modifyGeometry(key, func(st strokes.Stroke) {
			st.Translate(pivot.Neg())
			st.Scale(scale)
			st.Translate(pivot)
		})
	}
}

// ScaleStrokesImagesWithPivot scales the cached images about a pivot point.
func (s *StrokeStore) ScaleStrokesImagesWithPivot(keys []StrokeKey, scale, pivot inkwell.Point) {
	for _, key := range keys {
		comp, ok := s.render[key]
		if !ok {
			continue
		}
		for i := range comp.images {
			comp.images[i].Translate(pivot.Neg())
			comp.images[i].Scale(scale)
			comp.images[i].Translate(pivot)
		}
	}
}

// modifyGeometry is ModifyStroke without the dirty marking; transform
// callers decide themselves whether the cached images were moved along or
// need regeneration.
func (s *StrokeStore) modifyGeometry(key StrokeKey, fn func(strokes.Stroke)) {
	stroke, ok := s.strokes.Get(key)
	if !ok {
		return
	}
	clone := stroke.Clone()
	fn(clone)
	s.strokes.Set(key, clone)
	s.keyTree.Update(key, clone.Bounds())
}

// ChangeStrokeColors sets the stroke (outline or text) color of the given
// strokes. Image variants are skipped. Returns how many strokes changed.
func (s *StrokeStore) ChangeStrokeColors(keys []StrokeKey, color inkwell.RGBA) int {
	changed := 0
	for _, key := range keys {
		applied := false
		s.ModifyStroke(key, func(st strokes.Stroke) {
			switch v := st.(type) {
			case *strokes.BrushStroke:
				v.Style.Color = color
				applied = true
			case *strokes.ShapeStroke:
				v.Style.Color = color
				applied = true
			case *strokes.TextStroke:
				v.Style.Color = color
				applied = true
			}
		})
		if applied {
			changed++
		}
	}
	return changed
}

// ChangeFillColors sets the fill color of the given strokes. Only brush and
// shape strokes carry a fill. Returns how many strokes changed.
func (s *StrokeStore) ChangeFillColors(keys []StrokeKey, color inkwell.RGBA) int {
	changed := 0
	for _, key := range keys {
		applied := false
		s.ModifyStroke(key, func(st strokes.Stroke) {
			switch v := st.(type) {
			case *strokes.BrushStroke:
				v.Style.Fill = color
				applied = true
			case *strokes.ShapeStroke:
				v.Style.Fill = color
				applied = true
			}
		})
		if applied {
			changed++
		}
	}
	return changed
}

// BoundsForStrokes returns the bounds enclosing the given strokes. The
// second return is false when none of the keys resolve.
func (s *StrokeStore) BoundsForStrokes(keys []StrokeKey) (inkwell.AABB, bool) {
	bounds := inkwell.InvalidAABB()
	for _, key := range keys {
		if stroke, ok := s.strokes.Get(key); ok {
			bounds = bounds.Merge(stroke.Bounds())
		}
	}
	return bounds, bounds.Valid()
}

// CalcWidth returns the rightmost extent of the non-trashed content.
func (s *StrokeStore) CalcWidth() float64 {
	if bounds, ok := s.BoundsForStrokes(s.StrokeKeysAsRendered()); ok && bounds.Max.X > 0 {
		return bounds.Max.X
	}
	return 0
}

// CalcHeight returns the lowest extent of the non-trashed content.
func (s *StrokeStore) CalcHeight() float64 {
	if bounds, ok := s.BoundsForStrokes(s.StrokeKeysAsRendered()); ok && bounds.Max.Y > 0 {
		return bounds.Max.Y
	}
	return 0
}

// KeysBelowY returns all keys whose bounds lie entirely below the
// horizontal line at y.
func (s *StrokeStore) KeysBelowY(y float64) []StrokeKey {
	var keys []StrokeKey
	s.strokes.Range(func(k StrokeKey, st strokes.Stroke) bool {
		if st.Bounds().Min.Y > y {
			keys = append(keys, k)
		}
		return true
	})
	return keys
}

// StrokeHitboxesIntersectAABB returns the non-trashed keys, in z-order,
// with at least one hitbox intersecting the region. Bounds act as a coarse
// filter before the hitboxes are checked.
func (s *StrokeStore) StrokeHitboxesIntersectAABB(bounds inkwell.AABB) []StrokeKey {
	var keys []StrokeKey
	for _, key := range s.keyTree.KeysIntersecting(bounds) {
		if s.IsTrashed(key) {
			continue
		}
		stroke, ok := s.strokes.Get(key)
		if !ok {
			continue
		}
		for _, hb := range stroke.Hitboxes() {
			if hb.Intersects(bounds) {
				keys = append(keys, key)
				break
			}
		}
	}
	s.sortByChrono(keys)
	return keys
}

// StrokeHitboxesContainCoord returns the non-trashed keys, in z-order,
// with at least one hitbox containing the coordinate.
func (s *StrokeStore) StrokeHitboxesContainCoord(coord inkwell.Point) []StrokeKey {
	probe := inkwell.AABB{Min: coord, Max: coord}
	var keys []StrokeKey
	for _, key := range s.keyTree.KeysIntersecting(probe) {
		if s.IsTrashed(key) {
			continue
		}
		stroke, ok := s.strokes.Get(key)
		if !ok {
			continue
		}
		for _, hb := range stroke.Hitboxes() {
			if hb.ContainsPoint(coord) {
				keys = append(keys, key)
				break
			}
		}
	}
	s.sortByChrono(keys)
	return keys
}

// StrokeHitboxesContainedInAABB returns the non-trashed keys, in z-order,
// whose hitboxes all lie inside the region.
func (s *StrokeStore) StrokeHitboxesContainedInAABB(bounds inkwell.AABB) []StrokeKey {
	var keys []StrokeKey
	for _, key := range s.keyTree.KeysIntersecting(bounds) {
		if s.IsTrashed(key) {
			continue
		}
		stroke, ok := s.strokes.Get(key)
		if !ok {
			continue
		}
		hbs := stroke.Hitboxes()
		if len(hbs) == 0 {
			continue
		}
		contained := true
		for _, hb := range hbs {
			if !bounds.Contains(hb) {
				contained = false
				break
			}
		}
		if contained {
			keys = append(keys, key)
		}
	}
	s.sortByChrono(keys)
	return keys
}

// StrokeHitboxesContainedInPolygon returns the non-trashed keys, in
// z-order, whose hitboxes all lie inside the closed polygon.
func (s *StrokeStore) StrokeHitboxesContainedInPolygon(poly []inkwell.Point) []StrokeKey {
	if len(poly) < 3 {
		return nil
	}
	coarse := polygonBounds(poly)
	var keys []StrokeKey
	for _, key := range s.keyTree.KeysIntersecting(coarse) {
		if s.IsTrashed(key) {
			continue
		}
		stroke, ok := s.strokes.Get(key)
		if !ok {
			continue
		}
		hbs := stroke.Hitboxes()
		if len(hbs) == 0 {
			continue
		}
		contained := true
		for _, hb := range hbs {
			if !polygonContainsAABB(poly, hb) {
				contained = false
				break
			}
		}
		if contained {
			keys = append(keys, key)
		}
	}
	s.sortByChrono(keys)
	return keys
}

// StrokeHitboxesIntersectPolygon returns the non-trashed keys, in z-order,
// with at least one hitbox overlapping the closed polygon.
func (s *StrokeStore) StrokeHitboxesIntersectPolygon(poly []inkwell.Point) []StrokeKey {
	if len(poly) < 3 {
		return nil
	}
	coarse := polygonBounds(poly)
	var keys []StrokeKey
	for _, key := range s.keyTree.KeysIntersecting(coarse) {
		if s.IsTrashed(key) {
			continue
		}
		stroke, ok := s.strokes.Get(key)
		if !ok {
			continue
		}
		for _, hb := range stroke.Hitboxes() {
			if polygonIntersectsAABB(poly, hb) {
				keys = append(keys, key)
				break
			}
		}
	}
	s.sortByChrono(keys)
	return keys
}

// StrokeHitboxesIntersectPolyline returns the non-trashed keys, in z-order,
// with at least one hitbox crossed by the open polyline.
func (s *StrokeStore) StrokeHitboxesIntersectPolyline(line []inkwell.Point) []StrokeKey {
	if len(line) == 0 {
		return nil
	}
	coarse := polygonBounds(line)
	var keys []StrokeKey
	for _, key := range s.keyTree.KeysIntersecting(coarse) {
		if s.IsTrashed(key) {
			continue
		}
		stroke, ok := s.strokes.Get(key)
		if !ok {
			continue
		}
		for _, hb := range stroke.Hitboxes() {
			if polylineIntersectsAABB(line, hb) {
				keys = append(keys, key)
				break
			}
		}
	}
	s.sortByChrono(keys)
	return keys
}

// FetchStrokeContent bundles deep copies of the given strokes, for example
// for the clipboard.
func (s *StrokeStore) FetchStrokeContent(keys []StrokeKey) strokes.StrokeContent {
	list := make([]strokes.Stroke, 0, len(keys))
	for _, key := range keys {
		if stroke, ok := s.strokes.Get(key); ok {
			list = append(list, stroke)
		}
	}
	return strokes.NewStrokeContent(list)
}

// CutStrokeContent bundles deep copies of the given strokes and trashes the
// originals.
func (s *StrokeStore) CutStrokeContent(keys []StrokeKey) strokes.StrokeContent {
	content := s.FetchStrokeContent(keys)
	s.SetTrashedKeys(keys, true)
	return content
}

// InsertStrokeContent pastes the content with its top-left corner at pos,
// uniformly rescaled by ratio about pos, and selects the inserted strokes.
// Returns their keys.
func (s *StrokeStore) InsertStrokeContent(content strokes.StrokeContent, ratio float64, pos inkwell.Point) []StrokeKey {
	var offset inkwell.Point
	if content.Bounds != nil {
		offset = pos.Sub(content.Bounds.Min)
	} else {
		offset = pos
	}
	rescale := ratio > 0 && ratio != 1.0

	keys := make([]StrokeKey, 0, len(content.Strokes))
	for _, stroke := range content.Strokes {
		pasted := stroke.Clone()
		pasted.Translate(offset)
		if rescale {
			pasted.Translate(pos.Neg())
			pasted.Scale(inkwell.Pt(ratio, ratio))
			pasted.Translate(pos)
		}
		key := s.InsertStroke(pasted)
		s.SetSelected(key, true)
		keys = append(keys, key)
	}
	return keys
}
