package engine

import (
	"encoding/json"
	"fmt"

	"github.com/gogpu/inkwell"
	"github.com/gogpu/inkwell/render"
	"github.com/gogpu/inkwell/store"
	"github.com/gogpu/inkwell/strokes"
)

// ClipboardContent bundles the selection in the formats a system clipboard
// typically offers. JSON is the lossless form used for pasting back into a
// document, SVG and PNG serve other applications.
type ClipboardContent struct {
	JSON []byte
	SVG  []byte
	PNG  []byte
}

// FetchClipboardContent copies the current selection into clipboard formats.
func (e *Engine) FetchClipboardContent() (ClipboardContent, error) {
	return e.clipboardContent(false)
}

// CutClipboardContent is FetchClipboardContent followed by trashing the
// selected strokes.
func (e *Engine) CutClipboardContent() (ClipboardContent, error) {
	return e.clipboardContent(true)
}

func (e *Engine) clipboardContent(cut bool) (ClipboardContent, error) {
	keys := e.Store.SelectionKeysAsRendered()
	bounds, ok := e.Store.BoundsForStrokes(keys)
	if !ok {
		return ClipboardContent{}, fmt.Errorf("engine: nothing selected")
	}

	export := e.snapshotExportContent(keys, bounds)

	var (
		out     ClipboardContent
		content strokes.StrokeContent
		err     error
	)
	if cut {
		content = e.Store.CutStrokeContent(keys)
	} else {
		content = e.Store.FetchStrokeContent(keys)
	}
	bg := e.Document.Background
	content.Background = &bg
	if out.JSON, err = json.Marshal(content); err != nil {
		return ClipboardContent{}, fmt.Errorf("engine: clipboard json: %w", err)
	}
	if out.SVG, err = export.exportSVG(false); err != nil {
		return ClipboardContent{}, fmt.Errorf("engine: clipboard svg: %w", err)
	}

	img, err := export.rasterize(bounds, e.Camera.ImageScale(), inkwell.Transparent)
	if err != nil {
		return ClipboardContent{}, fmt.Errorf("engine: clipboard png: %w", err)
	}
	if out.PNG, err = render.EncodePNG(img); err != nil {
		return ClipboardContent{}, fmt.Errorf("engine: clipboard png: %w", err)
	}
	return out, nil
}

// PasteClipboardContent inserts clipboard JSON with its top-left corner at
// pos. The pasted strokes become the new selection and get scheduled for
// rendering.
func (e *Engine) PasteClipboardContent(data []byte, pos inkwell.Point) ([]store.StrokeKey, error) {
	var content strokes.StrokeContent
	if err := json.Unmarshal(data, &content); err != nil {
		return nil, fmt.Errorf("engine: clipboard paste: %w", err)
	}
	keys := e.Store.InsertStrokeContent(content, 1.0, pos)
	for _, key := range keys {
		e.Store.RegenerateRenderingForStroke(key, e.Camera.Viewport(), e.Camera.ImageScale(), false)
	}
	return keys, nil
}
