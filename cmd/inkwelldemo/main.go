// Command inkwelldemo builds a small document with the inkwell engine
// and exports it to a file.
package main

import (
	"flag"
	"log"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/gogpu/inkwell"
	"github.com/gogpu/inkwell/engine"
	"github.com/gogpu/inkwell/strokes"
)

func main() {
	var (
		output  = flag.String("output", "demo.png", "output file (.png, .jpg, .svg, .pdf or .xopp)")
		verbose = flag.Bool("v", false, "enable debug logging")
	)
	flag.Parse()

	if *verbose {
		inkwell.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	e := engine.NewEngine()
	defer e.Close()

	drawWave(e)
	drawShapes(e)
	drawLabel(e)

	e.Document.ResizeToFitContent(e.Store)

	data, err := export(e, *output)
	if err != nil {
		log.Fatalf("export failed: %v", err)
	}
	if err := os.WriteFile(*output, data, 0o644); err != nil {
		log.Fatalf("write failed: %v", err)
	}
	log.Printf("wrote %s (%d bytes)", *output, len(data))
}

func export(e *engine.Engine, output string) ([]byte, error) {
	title := strings.TrimSuffix(filepath.Base(output), filepath.Ext(output))
	switch ext := strings.ToLower(filepath.Ext(output)); ext {
	case ".svg":
		return e.ExportDocSVG(true)
	case ".pdf":
		return e.ExportDocPDF(title)
	case ".xopp":
		return e.ExportDocXopp(title)
	case ".jpg", ".jpeg":
		return e.ExportDocJPEG(1.0, 92)
	default:
		return e.ExportDocPNG(1.0)
	}
}

// drawWave inserts a freehand sine-like pen stroke.
func drawWave(e *engine.Engine) {
	style := strokes.DefaultStyle()
	style.Width = 3.5
	style.Color = inkwell.RGBA{R: 0.13, G: 0.16, B: 0.53, A: 1}

	path := strokes.NewPenPath(strokes.Element{Pos: inkwell.Pt(60, 180), Pressure: 0.4})
	for i := 1; i <= 48; i++ {
		t := float64(i) / 48
		path.Segments = append(path.Segments, strokes.Segment{End: strokes.Element{
			Pos:      inkwell.Pt(60+t*620, 180+55*math.Sin(t*4*math.Pi)),
			Pressure: 0.3 + 0.6*t,
		}})
	}
	e.InsertStroke(strokes.NewBrushStroke(path, style))
}

func drawShapes(e *engine.Engine) {
	border := strokes.DefaultStyle()
	border.Width = 2
	border.Color = inkwell.RGBA{R: 0.75, G: 0.22, B: 0.17, A: 1}
	border.Fill = inkwell.RGBA{R: 0.99, G: 0.88, B: 0.84, A: 1}

	rect := strokes.NewShapeStroke(strokes.ShapeRectangle,
		inkwell.AABB{Min: inkwell.Pt(90, 320), Max: inkwell.Pt(310, 460)}, border)
	e.InsertStroke(rect)

	border2 := border
	border2.Color = inkwell.RGBA{R: 0.18, G: 0.49, B: 0.2, A: 1}
	border2.Fill = inkwell.RGBA{R: 0.86, G: 0.95, B: 0.87, A: 1}
	ellipse := strokes.NewShapeStroke(strokes.ShapeEllipse,
		inkwell.AABB{Min: inkwell.Pt(400, 320), Max: inkwell.Pt(640, 460)}, border2)
	e.InsertStroke(ellipse)
}

func drawLabel(e *engine.Engine) {
	style := strokes.DefaultTextStyle()
	style.FontSize = 28
	text := strokes.NewTextStroke("inkwell demo", inkwell.Pt(60, 60), style)
	e.InsertStroke(text)
}
