// Package strokes defines the closed set of stroke variants held by the
// store: brush strokes, shape strokes, text strokes, vector images and
// bitmap images. Every variant owns its geometry and style and implements
// the Stroke capability interface.
package strokes

import (
	"encoding/json"
	"fmt"

	"github.com/gogpu/inkwell"
	"github.com/gogpu/inkwell/render"
)

// ImportOffset is the default offset applied to duplicated or pasted
// content so the copy is visually distinguishable from the original.
var ImportOffset = inkwell.Pt(32, 32)

// Stroke is the capability interface implemented by every stroke variant.
// The variant set is closed; the store never needs open-ended dispatch.
type Stroke interface {
	// Bounds returns the AABB enclosing the stroke including its width.
	Bounds() inkwell.AABB
	// Hitboxes returns tighter sub-regions used for precise hit testing.
	// Every hitbox is contained within Bounds.
	Hitboxes() []inkwell.AABB
	// Translate moves the stroke geometry by the offset.
	Translate(offset inkwell.Point)
	// Rotate rotates the stroke geometry by angle (radians) about center.
	Rotate(angle float64, center inkwell.Point)
	// Scale scales the stroke geometry about the document origin.
	Scale(scale inkwell.Point)
	// UpdateGeometry recomputes cached derived geometry (bounds, hitboxes)
	// after direct mutation.
	UpdateGeometry()
	// GenSVG generates an SVG fragment for the whole stroke.
	GenSVG() (render.SVG, error)
	// GenImages rasterizes the stroke for the viewport at the image scale.
	// The result is full when the viewport covers the stroke, otherwise
	// viewport-scoped.
	GenImages(viewport inkwell.AABB, imageScale float64) (render.GeneratedImages, error)
	// Clone returns a deep copy.
	Clone() Stroke
}

// Variant discriminators for the persisted tagged union.
const (
	typeBrushStroke = "brushstroke"
	typeShapeStroke = "shapestroke"
	typeTextStroke  = "textstroke"
	typeVectorImage = "vectorimage"
	typeBitmapImage = "bitmapimage"
)

type strokeEnvelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// MarshalStroke encodes a stroke as a tagged JSON value.
func MarshalStroke(s Stroke) ([]byte, error) {
	var typ string
	switch s.(type) {
	case *BrushStroke:
		typ = typeBrushStroke
	case *ShapeStroke:
		typ = typeShapeStroke
	case *TextStroke:
		typ = typeTextStroke
	case *VectorImage:
		typ = typeVectorImage
	case *BitmapImage:
		typ = typeBitmapImage
	default:
		return nil, fmt.Errorf("strokes: cannot marshal unknown stroke variant %T", s)
	}
	data, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return json.Marshal(strokeEnvelope{Type: typ, Data: data})
}

// UnmarshalStroke decodes a tagged JSON value into a stroke.
func UnmarshalStroke(b []byte) (Stroke, error) {
	var env strokeEnvelope
	if err := json.Unmarshal(b, &env); err != nil {
		return nil, err
	}

	var s Stroke
	switch env.Type {
	case typeBrushStroke:
		s = &BrushStroke{}
	case typeShapeStroke:
		s = &ShapeStroke{}
	case typeTextStroke:
		s = &TextStroke{}
	case typeVectorImage:
		s = &VectorImage{}
	case typeBitmapImage:
		s = &BitmapImage{}
	default:
		return nil, fmt.Errorf("strokes: unknown stroke variant %q", env.Type)
	}
	if err := json.Unmarshal(env.Data, s); err != nil {
		return nil, err
	}
	s.UpdateGeometry()
	return s, nil
}
