package store

import (
	"github.com/gogpu/inkwell"
	"github.com/gogpu/inkwell/internal/cow"
	"github.com/gogpu/inkwell/strokes"
)

// DefaultHistoryMaxLen bounds the undo depth.
const DefaultHistoryMaxLen = 100

// Option configures a StrokeStore.
type Option func(*StrokeStore)

// WithHistoryMaxLen overrides the maximum history depth.
func WithHistoryMaxLen(n int) Option {
	return func(s *StrokeStore) {
		if n > 0 {
			s.historyMaxLen = n
		}
	}
}

// WithEraserMinSurvivingSegments overrides the smallest number of segments
// a split-off brush stroke piece must keep to survive the eraser.
func WithEraserMinSurvivingSegments(n int) Option {
	return func(s *StrokeStore) {
		if n > 0 {
			s.eraserMinSegments = n
		}
	}
}

// WithRenderHooks wires the store to a task spawner and a result sink for
// threaded rendering. Without hooks all regeneration runs synchronously.
func WithRenderHooks(spawner Spawner, sink ResultSink) Option {
	return func(s *StrokeStore) {
		s.spawner = spawner
		s.sink = sink
	}
}

// StrokeStore holds the strokes of a document together with their parallel
// component tables.
//
// The store is single-owner: all methods must be called from the owning
// goroutine. Threaded rendering hands work out through the Spawner and
// results come back through the ResultSink, which the owner drains.
type StrokeStore struct {
	strokes  cow.Map[StrokeKey, strokes.Stroke]
	trashed  cow.Map[StrokeKey, bool]
	selected cow.Map[StrokeKey, bool]
	chrono   cow.Map[StrokeKey, uint64]

	// render components are rebuildable caches and stay out of history.
	render map[StrokeKey]*RenderComponent

	chronoCounter uint64
	alloc         keyAllocator
	keyTree       *KeyTree

	history       []historyEntry
	liveIndex     int
	historyMaxLen int

	eraserMinSegments int

	spawner Spawner
	sink    ResultSink
}

type historyEntry struct {
	strokes  cow.Map[StrokeKey, strokes.Stroke]
	trashed  cow.Map[StrokeKey, bool]
	selected cow.Map[StrokeKey, bool]
	chrono   cow.Map[StrokeKey, uint64]

	chronoCounter uint64
}

// NewStrokeStore creates an empty store whose history starts at the empty
// state.
func NewStrokeStore(opts ...Option) *StrokeStore {
	s := &StrokeStore{
		strokes:           cow.NewMap[StrokeKey, strokes.Stroke](),
		trashed:           cow.NewMap[StrokeKey, bool](),
		selected:          cow.NewMap[StrokeKey, bool](),
		chrono:            cow.NewMap[StrokeKey, uint64](),
		render:            make(map[StrokeKey]*RenderComponent),
		keyTree:           NewKeyTree(),
		historyMaxLen:     DefaultHistoryMaxLen,
		eraserMinSegments: EraserMinSurvivingSegments,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.history = []historyEntry{s.snapshot()}
	s.liveIndex = 0
	return s
}

func (s *StrokeStore) snapshot() historyEntry {
	return historyEntry{
		strokes:       s.strokes.Clone(),
		trashed:       s.trashed.Clone(),
		selected:      s.selected.Clone(),
		chrono:        s.chrono.Clone(),
		chronoCounter: s.chronoCounter,
	}
}

func (s *StrokeStore) sameAs(e historyEntry) bool {
	return cow.Same(s.strokes, e.strokes) &&
		cow.Same(s.trashed, e.trashed) &&
		cow.Same(s.selected, e.selected) &&
		cow.Same(s.chrono, e.chrono) &&
		s.chronoCounter == e.chronoCounter
}

func (s *StrokeStore) restore(e historyEntry) {
	s.strokes = e.strokes.Clone()
	s.trashed = e.trashed.Clone()
	s.selected = e.selected.Clone()
	s.chrono = e.chrono.Clone()
	s.chronoCounter = e.chronoCounter

	s.rebuildKeyTree()
	s.reconcileRenderComponents()
}

func (s *StrokeStore) rebuildKeyTree() {
	bounds := make(map[StrokeKey]inkwell.AABB, s.strokes.Len())
	s.strokes.Range(func(k StrokeKey, st strokes.Stroke) bool {
		bounds[k] = st.Bounds()
		return true
	})
	s.keyTree.Rebuild(bounds)
}

// reconcileRenderComponents aligns the render table with the stroke table
// after a restore. Surviving components keep their cached images and state;
// only strokes reappearing without a component get a fresh dirty one.
func (s *StrokeStore) reconcileRenderComponents() {
	for k := range s.render {
		if _, ok := s.strokes.Get(k); !ok {
			delete(s.render, k)
		}
	}
	s.strokes.Range(func(k StrokeKey, _ strokes.Stroke) bool {
		if _, ok := s.render[k]; !ok {
			s.render[k] = newRenderComponent()
		}
		return true
	})
}

// Record pushes the current state onto the history, dropping any redoable
// future. Recording an unchanged state is a no-op.
func (s *StrokeStore) Record() {
	if s.sameAs(s.history[s.liveIndex]) {
		return
	}
	if s.liveIndex < len(s.history)-1 {
		s.history = s.history[:s.liveIndex+1]
	}
	s.history = append(s.history, s.snapshot())
	s.liveIndex = len(s.history) - 1
	s.capHistory()
}

func (s *StrokeStore) capHistory() {
	if len(s.history) <= s.historyMaxLen {
		return
	}
	drop := len(s.history) - s.historyMaxLen
	s.history = append(s.history[:0:0], s.history[drop:]...)
	s.liveIndex -= drop
	if s.liveIndex < 0 {
		s.liveIndex = 0
	}
}

// CanUndo reports whether an older state exists.
func (s *StrokeStore) CanUndo() bool {
	if s.liveIndex > 0 {
		return true
	}
	return !s.sameAs(s.history[s.liveIndex])
}

// CanRedo reports whether a newer state exists.
func (s *StrokeStore) CanRedo() bool {
	return s.liveIndex < len(s.history)-1
}

// Undo restores the previous state. Unrecorded current changes are first
// pushed onto the history so they can be redone. Returns false when there
// is nothing to undo.
func (s *StrokeStore) Undo() bool {
	if s.liveIndex == len(s.history)-1 && !s.sameAs(s.history[s.liveIndex]) {
		s.history = append(s.history, s.snapshot())
		s.liveIndex = len(s.history) - 1
		s.capHistory()
	}
	if s.liveIndex == 0 {
		return false
	}
	s.liveIndex--
	s.restore(s.history[s.liveIndex])
	return true
}

// Redo restores the next state. Returns false when there is nothing to
// redo.
func (s *StrokeStore) Redo() bool {
	if s.liveIndex >= len(s.history)-1 {
		return false
	}
	s.liveIndex++
	s.restore(s.history[s.liveIndex])
	return true
}

// ClearHistory resets the history to the current state.
func (s *StrokeStore) ClearHistory() {
	s.history = []historyEntry{s.snapshot()}
	s.liveIndex = 0
}

func (s *StrokeStore) nextChrono() uint64 {
	s.chronoCounter++
	return s.chronoCounter
}

// InsertStroke adds a stroke, untrashed and unselected, stamped newest in
// the chronological order.
func (s *StrokeStore) InsertStroke(stroke strokes.Stroke) StrokeKey {
	key := s.alloc.allocate()
	s.strokes.Set(key, stroke)
	s.trashed.Set(key, false)
	s.selected.Set(key, false)
	s.chrono.Set(key, s.nextChrono())
	s.render[key] = newRenderComponent()
	s.keyTree.Insert(key, stroke.Bounds())
	return key
}

// RemoveStroke permanently deletes a stroke and all of its components.
func (s *StrokeStore) RemoveStroke(key StrokeKey) (strokes.Stroke, bool) {
	stroke, ok := s.strokes.Get(key)
	if !ok {
		return nil, false
	}
	s.strokes.Delete(key)
	s.trashed.Delete(key)
	s.selected.Delete(key)
	s.chrono.Delete(key)
	delete(s.render, key)
	s.keyTree.Remove(key)
	s.alloc.release(key)
	return stroke, true
}

// GetStroke returns the stroke for a key. The returned stroke must be
// treated as immutable, mutations go through ModifyStroke.
func (s *StrokeStore) GetStroke(key StrokeKey) (strokes.Stroke, bool) {
	return s.strokes.Get(key)
}

// Len returns the number of strokes, trashed included.
func (s *StrokeStore) Len() int {
	return s.strokes.Len()
}

// Clear removes every stroke and resets the history to the empty state.
func (s *StrokeStore) Clear() {
	s.strokes.Clear()
	s.trashed.Clear()
	s.selected.Clear()
	s.chrono.Clear()
	s.render = make(map[StrokeKey]*RenderComponent)
	s.keyTree.Clear()
	s.chronoCounter = 0
	s.ClearHistory()
}
