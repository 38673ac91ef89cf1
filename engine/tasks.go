package engine

import (
	"github.com/gogpu/inkwell/render"
	"github.com/gogpu/inkwell/store"
)

// Task is a message from a rendering worker back to the engine owner.
// Tasks carry finished work; the owner revalidates them against the
// current state before applying, since the state may have moved on while
// the worker ran.
type Task interface {
	isTask()
}

// UpdateStrokeWithImagesTask replaces a stroke's cached rendering.
type UpdateStrokeWithImagesTask struct {
	Key        store.StrokeKey
	Images     render.GeneratedImages
	ImageScale float64
}

// AppendImagesToStrokeTask appends incremental tiles to a stroke's cache.
type AppendImagesToStrokeTask struct {
	Key    store.StrokeKey
	Images []render.Image
}

// MarkStrokeRenderingDirtyTask reports a failed regeneration so the
// stroke's cache is invalidated and picked up by the next render pass.
type MarkStrokeRenderingDirtyTask struct {
	Key store.StrokeKey
}

// QuitTask asks the task loop to stop.
type QuitTask struct{}

func (UpdateStrokeWithImagesTask) isTask()   {}
func (AppendImagesToStrokeTask) isTask()     {}
func (MarkStrokeRenderingDirtyTask) isTask() {}
func (QuitTask) isTask()                     {}
