package engine

import (
	"bytes"
	"compress/gzip"
	"encoding/base64"
	"fmt"
	"math"
	"strings"

	"github.com/gogpu/inkwell"
	"github.com/gogpu/inkwell/render"
	"github.com/gogpu/inkwell/strokes"
)

// Xournal++ files use 72 DPI coordinates, ours are 96 DPI.
const xoppDPIFactor = 72.0 / 96.0

// ExportDocXopp writes the document in the Xournal++ .xopp format: gzipped
// XML, one page element per document page with page-local coordinates.
func (e *Engine) ExportDocXopp(title string) ([]byte, error) {
	content := e.docExportContent()
	if title != "" {
		content.title = title
	}
	return content.exportXopp()
}

// ExportDocXoppAsync runs ExportDocXopp on the worker pool.
func (e *Engine) ExportDocXoppAsync(title string) <-chan ExportResult {
	content := e.docExportContent()
	if title != "" {
		content.title = title
	}
	return e.exportAsync(content.exportXopp)
}

func (c exportContent) exportXopp() ([]byte, error) {
	var sb strings.Builder
	sb.WriteString("<?xml version=\"1.0\" standalone=\"no\"?>\n")
	sb.WriteString("<xournal creator=\"inkwell\" fileversion=\"4\">\n")
	fmt.Fprintf(&sb, "<title>%s</title>\n", render.EscapeText(c.title))

	for _, page := range c.pages {
		c.writeXoppPage(&sb, page)
	}
	sb.WriteString("</xournal>\n")

	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write([]byte(sb.String())); err != nil {
		return nil, fmt.Errorf("engine: xopp export: %w", err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("engine: xopp export: %w", err)
	}
	return buf.Bytes(), nil
}

func (c exportContent) writeXoppPage(sb *strings.Builder, page inkwell.AABB) {
	w := page.Width() * xoppDPIFactor
	h := page.Height() * xoppDPIFactor
	fmt.Fprintf(sb, "<page width=\"%.2f\" height=\"%.2f\">\n", w, h)
	fmt.Fprintf(sb, "<background type=\"solid\" color=\"%s\" style=\"plain\"/>\n",
		xoppColor(c.background.Color))

	// Xournal++ paints layers bottom-up, and its images always belong to a
	// layer below the pen strokes. Split accordingly, keeping chrono order
	// within each layer.
	var images, marks []strokes.Stroke
	for _, stroke := range c.strokes {
		if !stroke.Bounds().Intersects(page) {
			continue
		}
		switch stroke.(type) {
		case *strokes.BitmapImage, *strokes.VectorImage:
			images = append(images, stroke)
		default:
			marks = append(marks, stroke)
		}
	}

	sb.WriteString("<layer>\n")
	for _, stroke := range images {
		writeXoppStroke(sb, stroke, page.Min)
	}
	sb.WriteString("</layer>\n<layer>\n")
	for _, stroke := range marks {
		writeXoppStroke(sb, stroke, page.Min)
	}
	sb.WriteString("</layer>\n</page>\n")
}

func writeXoppStroke(sb *strings.Builder, stroke strokes.Stroke, pageOrigin inkwell.Point) {
	toPage := func(p inkwell.Point) inkwell.Point {
		return p.Sub(pageOrigin).Mul(xoppDPIFactor)
	}

	switch v := stroke.(type) {
	case *strokes.BrushStroke:
		fmt.Fprintf(sb, "<stroke tool=\"pen\" color=\"%s\" width=\"%.2f\">",
			xoppColor(v.Style.Color), v.Style.Width*xoppDPIFactor)
		writeXoppCoords(sb, v.Path.Elements(), toPage)
		sb.WriteString("</stroke>\n")

	case *strokes.ShapeStroke:
		// Shapes become plain pen strokes along their outline.
		fmt.Fprintf(sb, "<stroke tool=\"pen\" color=\"%s\" width=\"%.2f\">",
			xoppColor(v.Style.Color), v.Style.Width*xoppDPIFactor)
		for i, hb := range v.Hitboxes() {
			p := toPage(hb.Center())
			if i > 0 {
				sb.WriteByte(' ')
			}
			fmt.Fprintf(sb, "%.2f %.2f", p.X, p.Y)
		}
		sb.WriteString("</stroke>\n")

	case *strokes.TextStroke:
		pos := toPage(stroke.Bounds().Min)
		fmt.Fprintf(sb, "<text font=\"Sans\" size=\"%.2f\" x=\"%.2f\" y=\"%.2f\" color=\"%s\">%s</text>\n",
			v.Style.FontSize*xoppDPIFactor, pos.X, pos.Y,
			xoppColor(v.Style.Color), render.EscapeText(v.Text))

	case *strokes.BitmapImage:
		writeXoppImage(sb, stroke.Bounds(), v.Data, toPage)

	case *strokes.VectorImage:
		// Xopp has no vector image element, embed a rasterization.
		b := stroke.Bounds()
		pxW := int(math.Ceil(b.Width()))
		pxH := int(math.Ceil(b.Height()))
		rgba, err := render.RasterizeSVGDocument(v.SVGData, pxW, pxH)
		if err != nil {
			inkwell.Logger().Warn("rasterizing vector image for xopp failed", "error", err)
			return
		}
		png, err := render.EncodePNG(rgba)
		if err != nil {
			inkwell.Logger().Warn("encoding vector image for xopp failed", "error", err)
			return
		}
		writeXoppImage(sb, b, png, toPage)

	default:
		inkwell.Logger().Debug("skipping stroke without xopp representation")
	}
}

func writeXoppImage(sb *strings.Builder, bounds inkwell.AABB, data []byte, toPage func(inkwell.Point) inkwell.Point) {
	tl := toPage(bounds.Min)
	br := toPage(bounds.Max)
	fmt.Fprintf(sb, "<image left=\"%.2f\" top=\"%.2f\" right=\"%.2f\" bottom=\"%.2f\">%s</image>\n",
		tl.X, tl.Y, br.X, br.Y, base64.StdEncoding.EncodeToString(data))
}

func writeXoppCoords(sb *strings.Builder, elements []strokes.Element, toPage func(inkwell.Point) inkwell.Point) {
	for i, el := range elements {
		p := toPage(el.Pos)
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(sb, "%.2f %.2f", p.X, p.Y)
	}
}

// xoppColor formats a color as #rrggbbaa.
func xoppColor(c inkwell.RGBA) string {
	to255 := func(v float64) uint8 {
		if v <= 0 {
			return 0
		}
		if v >= 1 {
			return 255
		}
		return uint8(v*255 + 0.5)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", to255(c.R), to255(c.G), to255(c.B), to255(c.A))
}
