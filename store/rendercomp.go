package store

import (
	"github.com/gogpu/inkwell"
	"github.com/gogpu/inkwell/render"
	"github.com/gogpu/inkwell/strokes"
)

// RenderCompState tracks the lifecycle of a stroke's cached images.
type RenderCompState uint8

const (
	// RenderCompStateDirty marks the cache invalid or absent.
	RenderCompStateDirty RenderCompState = iota
	// RenderCompStateBusy marks a regeneration in flight. No second task
	// is scheduled for the stroke while busy.
	RenderCompStateBusy
	// RenderCompStateComplete marks images covering the whole stroke.
	RenderCompStateComplete
	// RenderCompStateForViewport marks images covering the stroke only
	// within a specific viewport.
	RenderCompStateForViewport
)

func (s RenderCompState) String() string {
	switch s {
	case RenderCompStateDirty:
		return "dirty"
	case RenderCompStateBusy:
		return "busy"
	case RenderCompStateComplete:
		return "complete"
	case RenderCompStateForViewport:
		return "for-viewport"
	default:
		return "unknown"
	}
}

// RenderComponent is the cached rendering of a single stroke.
type RenderComponent struct {
	state    RenderCompState
	viewport inkwell.AABB
	images   []render.Image
}

func newRenderComponent() *RenderComponent {
	return &RenderComponent{state: RenderCompStateDirty}
}

// State returns the cache state.
func (c *RenderComponent) State() RenderCompState { return c.state }

// Viewport returns the viewport the images were generated for. Only
// meaningful in the for-viewport state.
func (c *RenderComponent) Viewport() inkwell.AABB { return c.viewport }

// Images returns the cached tiles. Callers must not mutate them.
func (c *RenderComponent) Images() []render.Image { return c.images }

func (c *RenderComponent) setDirty() {
	c.state = RenderCompStateDirty
}

// Spawner hands rendering jobs to a worker pool.
type Spawner interface {
	Spawn(job func())
}

// ResultSink receives finished rendering results. Implementations forward
// them back to the store-owning goroutine, which applies them.
type ResultSink interface {
	UpdateStrokeWithImages(key StrokeKey, images render.GeneratedImages, imageScale float64)
	AppendImagesToStroke(key StrokeKey, images []render.Image)
	// MarkStrokeRenderingDirty reports a failed regeneration. The owner
	// marks the component dirty so the stroke is retried instead of
	// staying busy forever.
	MarkStrokeRenderingDirty(key StrokeKey)
}

func (s *StrokeStore) threaded() bool {
	return s.spawner != nil && s.sink != nil
}

// RenderState returns the cache state for a key.
func (s *StrokeStore) RenderState(key StrokeKey) (RenderCompState, bool) {
	comp, ok := s.render[key]
	if !ok {
		return RenderCompStateDirty, false
	}
	return comp.state, true
}

// RenderImages returns the cached tiles for a key.
func (s *StrokeStore) RenderImages(key StrokeKey) []render.Image {
	comp, ok := s.render[key]
	if !ok {
		return nil
	}
	return comp.images
}

// SetRenderingDirty invalidates the cache for a key. An in-flight task is
// not cancelled, its stale result gets superseded on arrival.
func (s *StrokeStore) SetRenderingDirty(key StrokeKey) {
	if comp, ok := s.render[key]; ok {
		comp.setDirty()
	}
}

// SetRenderingDirtyAll invalidates every cache.
func (s *StrokeStore) SetRenderingDirtyAll() {
	for _, comp := range s.render {
		comp.setDirty()
	}
}

// SetRenderingDirtyForIntersectingBounds invalidates caches of strokes
// whose bounds intersect the given region.
func (s *StrokeStore) SetRenderingDirtyForIntersectingBounds(bounds inkwell.AABB) {
	for _, key := range s.keyTree.KeysIntersecting(bounds) {
		s.SetRenderingDirty(key)
	}
}

// ClearRendering drops the cached tiles for a key and marks it dirty.
func (s *StrokeStore) ClearRendering(key StrokeKey) {
	if comp, ok := s.render[key]; ok {
		comp.images = nil
		comp.setDirty()
	}
}

// ClearRenderingAll drops every cached tile.
func (s *StrokeStore) ClearRenderingAll() {
	for _, comp := range s.render {
		comp.images = nil
		comp.setDirty()
	}
}

// RegenerateRenderingForStroke schedules (or, without render hooks, runs)
// a full regeneration of a stroke's cache for the viewport. A stroke that
// is already busy is skipped unless force is set.
func (s *StrokeStore) RegenerateRenderingForStroke(key StrokeKey, viewport inkwell.AABB, imageScale float64, force bool) {
	comp, ok := s.render[key]
	if !ok {
		return
	}
	if comp.state == RenderCompStateBusy && !force {
		return
	}
	stroke, ok := s.strokes.Get(key)
	if !ok {
		return
	}

	viewportExtended := viewport.ExtendedByFactor(render.ViewportExtentsMarginFactor)

	if !s.threaded() {
		images, err := stroke.GenImages(viewportExtended, imageScale)
		if err != nil {
			inkwell.Logger().Warn("regenerating stroke rendering failed",
				"key", key, "error", err)
			comp.setDirty()
			return
		}
		s.ReplaceRenderingWithImages(key, images)
		return
	}

	comp.state = RenderCompStateBusy
	// The task owns a deep copy so the worker never touches live state.
	taskStroke := stroke.Clone()
	sink := s.sink
	s.spawner.Spawn(func() {
		images, err := taskStroke.GenImages(viewportExtended, imageScale)
		if err != nil {
			inkwell.Logger().Warn("regenerating stroke rendering failed",
				"key", key, "error", err)
			sink.MarkStrokeRenderingDirty(key)
			return
		}
		sink.UpdateStrokeWithImages(key, images, imageScale)
	})
}

// RegenerateRenderingForStrokes regenerates a set of strokes.
func (s *StrokeStore) RegenerateRenderingForStrokes(keys []StrokeKey, viewport inkwell.AABB, imageScale float64, force bool) {
	for _, key := range keys {
		s.RegenerateRenderingForStroke(key, viewport, imageScale, force)
	}
}

// needsRerender decides whether a cache covering the stroke is still valid
// for the current viewport.
func (c *RenderComponent) needsRerender(viewport inkwell.AABB) bool {
	switch c.state {
	case RenderCompStateDirty:
		return true
	case RenderCompStateBusy, RenderCompStateComplete:
		return false
	case RenderCompStateForViewport:
		// Rerender before the viewport reaches the edge of the cached
		// margin, so panning rarely exposes a blank region.
		tolerated := viewport.ExtendedByFactor(
			render.ViewportExtentsMarginFactor * render.ViewportExtentsMarginRerenderThreshold)
		return !c.viewport.Contains(tolerated)
	default:
		return true
	}
}

// RegenerateRenderingInViewportThreaded refreshes caches for all strokes
// around the viewport and reclaims image memory of strokes far outside it.
func (s *StrokeStore) RegenerateRenderingInViewportThreaded(viewport inkwell.AABB, imageScale float64, force bool) {
	viewportExtended := viewport.ExtendedByFactor(render.ViewportExtentsMarginFactor)

	s.strokes.Range(func(key StrokeKey, stroke strokes.Stroke) bool {
		comp, ok := s.render[key]
		if !ok {
			return true
		}
		if !stroke.Bounds().Intersects(viewportExtended) {
			// Out of reach, drop the tiles to bound cache memory.
			comp.images = nil
			comp.setDirty()
			return true
		}
		if force || comp.needsRerender(viewport) {
			s.RegenerateRenderingForStroke(key, viewport, imageScale, force)
		}
		return true
	})
}

// ReplaceRenderingWithImages installs a finished rendering result,
// transitioning to complete or for-viewport according to its coverage.
func (s *StrokeStore) ReplaceRenderingWithImages(key StrokeKey, images render.GeneratedImages) {
	comp, ok := s.render[key]
	if !ok {
		return
	}
	comp.images = images.Images
	if images.Partial() {
		comp.state = RenderCompStateForViewport
		comp.viewport = *images.Viewport
	} else {
		comp.state = RenderCompStateComplete
	}
}

// AppendRenderingImages appends tiles to the cache without changing its
// state, used for incremental updates while a stroke is being drawn.
func (s *StrokeStore) AppendRenderingImages(key StrokeKey, images []render.Image) {
	comp, ok := s.render[key]
	if !ok {
		return
	}
	comp.images = append(comp.images, images...)
}

// AppendRenderingLastSegments renders only the newest n segments of a brush
// stroke and appends the result. Other stroke variants fall back to a full
// regeneration.
func (s *StrokeStore) AppendRenderingLastSegments(key StrokeKey, n int, viewport inkwell.AABB, imageScale float64) {
	stroke, ok := s.strokes.Get(key)
	if !ok {
		return
	}
	brush, ok := stroke.(*strokes.BrushStroke)
	if !ok {
		s.RegenerateRenderingForStroke(key, viewport, imageScale, false)
		return
	}

	if !s.threaded() {
		img, ok, err := brush.GenImageForLastSegments(n, imageScale)
		if err != nil {
			inkwell.Logger().Warn("appending stroke rendering failed",
				"key", key, "error", err)
			return
		}
		if ok {
			s.AppendRenderingImages(key, []render.Image{img})
		}
		return
	}

	taskStroke := brush.Clone().(*strokes.BrushStroke)
	sink := s.sink
	s.spawner.Spawn(func() {
		img, ok, err := taskStroke.GenImageForLastSegments(n, imageScale)
		if err != nil {
			inkwell.Logger().Warn("appending stroke rendering failed",
				"key", key, "error", err)
			sink.MarkStrokeRenderingDirty(key)
			return
		}
		if ok {
			sink.AppendImagesToStroke(key, []render.Image{img})
		}
	})
}
