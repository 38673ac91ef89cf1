package engine

import (
	"math"

	"github.com/gogpu/inkwell"
	"github.com/gogpu/inkwell/render"
	"github.com/gogpu/inkwell/store"
	"github.com/gogpu/inkwell/strokes"
)

const taskChannelCapacity = 64

// Option configures an Engine.
type Option func(*config)

type config struct {
	workers       int
	historyMaxLen int
}

// WithWorkers sets the number of rendering workers. Zero or negative picks
// one per CPU.
func WithWorkers(n int) Option {
	return func(c *config) { c.workers = n }
}

// WithHistoryMaxLen overrides the store's undo depth.
func WithHistoryMaxLen(n int) Option {
	return func(c *config) { c.historyMaxLen = n }
}

// Engine owns a document, its stroke store, the camera and the rendering
// worker pool.
//
// The engine is single-owner like the store. Workers communicate strictly
// through the task channel, which the owner drains with PollTasks or
// HandleTask.
type Engine struct {
	Store    *store.StrokeStore
	Document *Document
	Camera   Camera

	pool  *WorkerPool
	tasks chan Task
}

// NewEngine creates an engine with an empty document.
func NewEngine(opts ...Option) *Engine {
	cfg := config{}
	for _, opt := range opts {
		opt(&cfg)
	}

	e := &Engine{
		Document: NewDocument(),
		Camera:   NewCamera(inkwell.Pt(1920, 1080)),
		pool:     NewWorkerPool(cfg.workers),
		tasks:    make(chan Task, taskChannelCapacity),
	}
	storeOpts := []store.Option{store.WithRenderHooks(e.pool, (*engineSink)(e))}
	if cfg.historyMaxLen > 0 {
		storeOpts = append(storeOpts, store.WithHistoryMaxLen(cfg.historyMaxLen))
	}
	e.Store = store.NewStrokeStore(storeOpts...)
	return e
}

// engineSink adapts the engine's task channel to store.ResultSink.
// Workers call these methods; they only touch the channel.
type engineSink Engine

func (e *engineSink) UpdateStrokeWithImages(key store.StrokeKey, images render.GeneratedImages, imageScale float64) {
	e.tasks <- UpdateStrokeWithImagesTask{Key: key, Images: images, ImageScale: imageScale}
}

func (e *engineSink) AppendImagesToStroke(key store.StrokeKey, images []render.Image) {
	e.tasks <- AppendImagesToStrokeTask{Key: key, Images: images}
}

func (e *engineSink) MarkStrokeRenderingDirty(key store.StrokeKey) {
	e.tasks <- MarkStrokeRenderingDirtyTask{Key: key}
}

// Tasks exposes the task channel for owners that integrate it into their
// own event loop.
func (e *Engine) Tasks() <-chan Task {
	return e.tasks
}

// PollTasks handles all currently pending tasks without blocking. Returns
// false after a quit task.
func (e *Engine) PollTasks() bool {
	for {
		select {
		case task := <-e.tasks:
			if !e.HandleTask(task) {
				return false
			}
		default:
			return true
		}
	}
}

// HandleTask applies one task to the engine state. Returns false for the
// quit task.
func (e *Engine) HandleTask(task Task) bool {
	switch t := task.(type) {
	case UpdateStrokeWithImagesTask:
		e.handleUpdateStrokeWithImages(t)
	case AppendImagesToStrokeTask:
		if _, ok := e.Store.GetStroke(t.Key); ok {
			e.Store.AppendRenderingImages(t.Key, t.Images)
		}
	case MarkStrokeRenderingDirtyTask:
		e.Store.SetRenderingDirty(t.Key)
	case QuitTask:
		return false
	}
	return true
}

// handleUpdateStrokeWithImages applies a finished rendering unless it has
// gone stale: the stroke may be gone, or the camera may have zoomed while
// the worker ran. A stale result is discarded and the stroke is
// re-rendered at the current scale.
func (e *Engine) handleUpdateStrokeWithImages(t UpdateStrokeWithImagesTask) {
	if _, ok := e.Store.GetStroke(t.Key); !ok {
		return
	}
	currentScale := e.Camera.ImageScale()
	if math.Abs(t.ImageScale-currentScale) > render.ImageScaleTolerance {
		e.Store.SetRenderingDirty(t.Key)
		e.Store.RegenerateRenderingForStroke(t.Key, e.Camera.Viewport(), currentScale, false)
		return
	}
	e.Store.ReplaceRenderingWithImages(t.Key, t.Images)
}

// Quit sends the quit task.
func (e *Engine) Quit() {
	e.tasks <- QuitTask{}
}

// Close stops the worker pool. Pending task results stay in the channel
// and may be drained or dropped.
func (e *Engine) Close() {
	e.pool.Stop()
}

// InsertStroke adds a stroke, expands the document to cover it, and
// schedules its rendering.
func (e *Engine) InsertStroke(stroke strokes.Stroke) store.StrokeKey {
	key := e.Store.InsertStroke(stroke)
	b := stroke.Bounds()
	e.Document.ExpandForPoint(b.Max)
	e.Store.RegenerateRenderingForStroke(key, e.Camera.Viewport(), e.Camera.ImageScale(), false)
	return key
}

// RecordHistory snapshots the current state for undo.
func (e *Engine) RecordHistory() {
	e.Store.Record()
}

// Undo restores the previous state and refreshes the visible rendering.
func (e *Engine) Undo() bool {
	if !e.Store.Undo() {
		return false
	}
	e.Store.RegenerateRenderingInViewportThreaded(e.Camera.Viewport(), e.Camera.ImageScale(), false)
	return true
}

// Redo restores the next state and refreshes the visible rendering.
func (e *Engine) Redo() bool {
	if !e.Store.Redo() {
		return false
	}
	e.Store.RegenerateRenderingInViewportThreaded(e.Camera.Viewport(), e.Camera.ImageScale(), false)
	return true
}

// UpdateRendering refreshes caches around the current viewport, for
// example after panning or zooming.
func (e *Engine) UpdateRendering(force bool) {
	e.Store.RegenerateRenderingInViewportThreaded(e.Camera.Viewport(), e.Camera.ImageScale(), force)
}

// SetZoom changes the zoom and forces a re-render at the new pixel
// density.
func (e *Engine) SetZoom(zoom float64) {
	e.Camera.SetZoom(zoom)
	e.Store.SetRenderingDirtyAll()
	e.UpdateRendering(false)
}

// ClearDocument removes all strokes and resets the document extents.
func (e *Engine) ClearDocument() {
	e.Store.Clear()
	e.Document.ResizeToFitContent(e.Store)
}
