package engine

import (
	"bytes"
	"fmt"
	"image"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/gogpu/inkwell"
	"github.com/gogpu/inkwell/render"
	"github.com/gogpu/inkwell/store"
	"github.com/gogpu/inkwell/strokes"
)

// Pixel density used when rasterizing pages for PDF embedding.
const pdfPageImageScale = 1.5

// ExportResult is the outcome of an asynchronous export.
type ExportResult struct {
	Data []byte
	Err  error
}

// exportContent is an owner-thread snapshot of everything an export needs,
// so the actual work can run on a worker without touching live state.
type exportContent struct {
	strokes    []strokes.Stroke
	background render.Background
	bounds     inkwell.AABB
	pages      []inkwell.AABB
	format     Format
	title      string
}

func (e *Engine) snapshotExportContent(keys []store.StrokeKey, bounds inkwell.AABB) exportContent {
	content := exportContent{
		background: e.Document.Background,
		bounds:     bounds,
		pages:      e.Document.PagesBounds(),
		format:     e.Document.Format,
		title:      e.Document.ID.String(),
	}
	for _, key := range keys {
		if stroke, ok := e.Store.GetStroke(key); ok {
			content.strokes = append(content.strokes, stroke.Clone())
		}
	}
	return content
}

func (e *Engine) docExportContent() exportContent {
	return e.snapshotExportContent(e.Store.StrokeKeysAsRendered(), e.Document.Bounds())
}

func (e *Engine) exportAsync(fn func() ([]byte, error)) <-chan ExportResult {
	out := make(chan ExportResult, 1)
	e.pool.Spawn(func() {
		data, err := fn()
		out <- ExportResult{Data: data, Err: err}
		close(out)
	})
	return out
}

// genSVG merges the fragments of all content strokes, optionally on top of
// the background.
func (c exportContent) genSVG(withBackground bool) (render.SVG, error) {
	var frags []render.SVG
	if withBackground {
		frags = append(frags, c.background.GenSVG(c.bounds))
	}
	for _, stroke := range c.strokes {
		svg, err := stroke.GenSVG()
		if err != nil {
			return render.SVG{}, err
		}
		frags = append(frags, svg)
	}
	merged := render.MergeSVGs(frags)
	merged.Bounds = c.bounds
	return merged, nil
}

// rasterize composites all content strokes over the background color.
func (c exportContent) rasterize(bounds inkwell.AABB, imageScale float64, background inkwell.RGBA) (*image.RGBA, error) {
	var tiles []render.Image
	for _, stroke := range c.strokes {
		if !stroke.Bounds().Intersects(bounds) {
			continue
		}
		imgs, err := stroke.GenImages(bounds, imageScale)
		if err != nil {
			return nil, err
		}
		tiles = append(tiles, imgs.Images...)
	}
	return render.CompositeImages(tiles, bounds, imageScale, background)
}

// ExportDocSVG renders the whole document as a standalone SVG.
func (e *Engine) ExportDocSVG(withBackground bool) ([]byte, error) {
	return e.docExportContent().exportSVG(withBackground)
}

// ExportDocSVGAsync runs ExportDocSVG on the worker pool.
func (e *Engine) ExportDocSVGAsync(withBackground bool) <-chan ExportResult {
	content := e.docExportContent()
	return e.exportAsync(func() ([]byte, error) {
		return content.exportSVG(withBackground)
	})
}

func (c exportContent) exportSVG(withBackground bool) ([]byte, error) {
	svg, err := c.genSVG(withBackground)
	if err != nil {
		return nil, fmt.Errorf("engine: svg export: %w", err)
	}
	return []byte(svg.WrapRoot()), nil
}

// ExportSelectionSVG renders only the selected strokes, without
// background.
func (e *Engine) ExportSelectionSVG() ([]byte, error) {
	keys := e.Store.SelectionKeysAsRendered()
	bounds, ok := e.Store.BoundsForStrokes(keys)
	if !ok {
		return nil, fmt.Errorf("engine: nothing selected")
	}
	return e.snapshotExportContent(keys, bounds).exportSVG(false)
}

// ExportSelectionSVGAsync runs ExportSelectionSVG on the worker pool. The
// selection is snapshotted up front, later edits do not affect the result.
func (e *Engine) ExportSelectionSVGAsync() <-chan ExportResult {
	keys := e.Store.SelectionKeysAsRendered()
	bounds, ok := e.Store.BoundsForStrokes(keys)
	if !ok {
		out := make(chan ExportResult, 1)
		out <- ExportResult{Err: fmt.Errorf("engine: nothing selected")}
		close(out)
		return out
	}
	content := e.snapshotExportContent(keys, bounds)
	return e.exportAsync(func() ([]byte, error) {
		return content.exportSVG(false)
	})
}

// ExportDocPNG rasterizes the whole document to a PNG at the given pixel
// density.
func (e *Engine) ExportDocPNG(imageScale float64) ([]byte, error) {
	return e.docExportContent().exportPNG(imageScale)
}

// ExportDocPNGAsync runs ExportDocPNG on the worker pool.
func (e *Engine) ExportDocPNGAsync(imageScale float64) <-chan ExportResult {
	content := e.docExportContent()
	return e.exportAsync(func() ([]byte, error) {
		return content.exportPNG(imageScale)
	})
}

func (c exportContent) exportPNG(imageScale float64) ([]byte, error) {
	img, err := c.rasterize(c.bounds, imageScale, c.background.Color)
	if err != nil {
		return nil, fmt.Errorf("engine: png export: %w", err)
	}
	return render.EncodePNG(img)
}

// ExportDocJPEG rasterizes the whole document to a JPEG.
func (e *Engine) ExportDocJPEG(imageScale float64, quality int) ([]byte, error) {
	return e.docExportContent().exportJPEG(imageScale, quality)
}

// ExportDocJPEGAsync runs ExportDocJPEG on the worker pool.
func (e *Engine) ExportDocJPEGAsync(imageScale float64, quality int) <-chan ExportResult {
	content := e.docExportContent()
	return e.exportAsync(func() ([]byte, error) {
		return content.exportJPEG(imageScale, quality)
	})
}

func (c exportContent) exportJPEG(imageScale float64, quality int) ([]byte, error) {
	img, err := c.rasterize(c.bounds, imageScale, c.background.Color)
	if err != nil {
		return nil, fmt.Errorf("engine: jpeg export: %w", err)
	}
	return render.EncodeJPEG(img, quality)
}

// ExportDocPDF renders each page of the document into a PDF. Pages are
// rasterized and embedded, which keeps text and images faithful.
func (e *Engine) ExportDocPDF(title string) ([]byte, error) {
	content := e.docExportContent()
	if title != "" {
		content.title = title
	}
	return content.exportPDF()
}

// ExportDocPDFAsync runs ExportDocPDF on the worker pool.
func (e *Engine) ExportDocPDFAsync(title string) <-chan ExportResult {
	content := e.docExportContent()
	if title != "" {
		content.title = title
	}
	return e.exportAsync(content.exportPDF)
}

func (c exportContent) exportPDF() ([]byte, error) {
	// Document units are 96 DPI, PDF points are 72 DPI.
	const ptPerUnit = 72.0 / 96.0
	pageW := c.format.Width * ptPerUnit
	pageH := c.format.Height * ptPerUnit

	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "pt",
		Size:    gofpdf.SizeType{Wd: pageW, Ht: pageH},
	})
	pdf.SetTitle(c.title, true)
	pdf.SetCreationDate(time.Now())

	for i, page := range c.pages {
		img, err := c.rasterize(page, pdfPageImageScale, c.background.Color)
		if err != nil {
			return nil, fmt.Errorf("engine: pdf export page %d: %w", i+1, err)
		}
		png, err := render.EncodePNG(img)
		if err != nil {
			return nil, fmt.Errorf("engine: pdf export page %d: %w", i+1, err)
		}

		pdf.AddPage()
		name := fmt.Sprintf("page-%d", i+1)
		opts := gofpdf.ImageOptions{ImageType: "PNG"}
		pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(png))
		pdf.ImageOptions(name, 0, 0, pageW, pageH, false, opts, 0, "")
	}
	if pdf.Err() {
		return nil, fmt.Errorf("engine: pdf export: %v", pdf.Error())
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("engine: pdf export: %w", err)
	}
	return buf.Bytes(), nil
}
