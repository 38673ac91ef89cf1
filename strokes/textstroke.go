package strokes

import (
	"bytes"
	"fmt"
	"image"
	"strings"
	"sync"

	"github.com/go-text/typesetting/di"
	tsfont "github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"github.com/gogpu/inkwell"
	"github.com/gogpu/inkwell/render"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/unicode/norm"
)

var (
	shaperOnce sync.Once
	shaperFace *tsfont.Face
	shaperMu   sync.Mutex
	shaper     shaping.HarfbuzzShaper

	rasterOnce sync.Once
	rasterFont *opentype.Font
)

func shapingFace() *tsfont.Face {
	shaperOnce.Do(func() {
		face, err := tsfont.ParseTTF(bytes.NewReader(goregular.TTF))
		if err != nil {
			panic(fmt.Sprintf("strokes: parse builtin font: %v", err))
		}
		shaperFace = face
	})
	return shaperFace
}

func rasterizingFont() *opentype.Font {
	rasterOnce.Do(func() {
		fnt, err := opentype.Parse(goregular.TTF)
		if err != nil {
			panic(fmt.Sprintf("strokes: parse builtin font: %v", err))
		}
		rasterFont = fnt
	})
	return rasterFont
}

// measureAdvance returns the horizontal advance of text at the given font
// size in document units.
func measureAdvance(text string, size float64) float64 {
	runes := []rune(text)
	if len(runes) == 0 {
		return 0
	}
	shaperMu.Lock()
	defer shaperMu.Unlock()
	out := shaper.Shape(shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: di.DirectionLTR,
		Face:      shapingFace(),
		Size:      fixed.Int26_6(size * 64),
		Script:    language.Latin,
		Language:  language.NewLanguage("en"),
	})
	var adv fixed.Int26_6
	for _, g := range out.Glyphs {
		adv += g.XAdvance
	}
	return float64(adv) / 64
}

// TextStroke is a block of shaped text placed in the document by an affine
// transform. Text is stored NFC normalized.
type TextStroke struct {
	Text      string            `json:"text"`
	Transform inkwell.Transform `json:"transform"`
	Style     TextStyle         `json:"style"`

	lines     []textLine
	extents   inkwell.Point
	hitboxes  []inkwell.AABB
}

type textLine struct {
	text  string
	width float64
}

// NewTextStroke creates a text stroke with its top-left corner at pos.
func NewTextStroke(text string, pos inkwell.Point, style TextStyle) *TextStroke {
	t := &TextStroke{
		Text:      norm.NFC.String(text),
		Transform: inkwell.Translation(pos),
		Style:     style,
	}
	t.UpdateGeometry()
	return t
}

// ReplaceText swaps the text content, normalizing it first.
func (t *TextStroke) ReplaceText(text string) {
	t.Text = norm.NFC.String(text)
	t.UpdateGeometry()
}

// layout splits the text into lines, wrapping greedily at Style.MaxWidth
// when it is positive.
func (t *TextStroke) layout() {
	t.lines = t.lines[:0]
	maxW := 0.0
	for _, para := range strings.Split(t.Text, "\n") {
		for _, line := range t.wrapParagraph(para) {
			t.lines = append(t.lines, line)
			if line.width > maxW {
				maxW = line.width
			}
		}
	}
	t.extents = inkwell.Pt(maxW, float64(len(t.lines))*t.Style.lineHeight())
}

func (t *TextStroke) wrapParagraph(para string) []textLine {
	if t.Style.MaxWidth <= 0 {
		return []textLine{{text: para, width: measureAdvance(para, t.Style.FontSize)}}
	}
	words := strings.Fields(para)
	if len(words) == 0 {
		return []textLine{{text: para, width: measureAdvance(para, t.Style.FontSize)}}
	}
	var lines []textLine
	cur := words[0]
	curW := measureAdvance(cur, t.Style.FontSize)
	for _, w := range words[1:] {
		cand := cur + " " + w
		candW := measureAdvance(cand, t.Style.FontSize)
		if candW > t.Style.MaxWidth {
			lines = append(lines, textLine{text: cur, width: curW})
			cur = w
			curW = measureAdvance(cur, t.Style.FontSize)
			continue
		}
		cur, curW = cand, candW
	}
	return append(lines, textLine{text: cur, width: curW})
}

// Bounds returns the transformed text block bounds.
func (t *TextStroke) Bounds() inkwell.AABB {
	return t.Transform.ApplyAABB(inkwell.AABB{Max: t.extents})
}

// Hitboxes returns one transformed box per laid-out line.
func (t *TextStroke) Hitboxes() []inkwell.AABB {
	return t.hitboxes
}

// UpdateGeometry relays out the text and rebuilds the per-line hitboxes.
func (t *TextStroke) UpdateGeometry() {
	t.layout()
	lh := t.Style.lineHeight()
	t.hitboxes = t.hitboxes[:0]
	for i, line := range t.lines {
		local := inkwell.AABB{
			Min: inkwell.Pt(0, float64(i)*lh),
			Max: inkwell.Pt(line.width, float64(i+1)*lh),
		}
		t.hitboxes = append(t.hitboxes, t.Transform.ApplyAABB(local))
	}
	if len(t.hitboxes) == 0 {
		t.hitboxes = append(t.hitboxes, t.Bounds())
	}
}

// Translate moves the text by the offset.
func (t *TextStroke) Translate(offset inkwell.Point) {
	t.Transform = inkwell.Translation(offset).Mul(t.Transform)
	t.UpdateGeometry()
}

// Rotate rotates the text by angle (radians) about center.
func (t *TextStroke) Rotate(angle float64, center inkwell.Point) {
	t.Transform = inkwell.RotationAbout(angle, center).Mul(t.Transform)
	t.UpdateGeometry()
}

// Scale scales the text about the document origin. The font size follows
// the mean axis scale so the glyphs keep pace with the frame.
func (t *TextStroke) Scale(scale inkwell.Point) {
	t.Transform = inkwell.Scaling(scale).Mul(t.Transform)
	t.UpdateGeometry()
}

// Clone returns a deep copy.
func (t *TextStroke) Clone() Stroke {
	out := &TextStroke{Text: t.Text, Transform: t.Transform, Style: t.Style}
	out.UpdateGeometry()
	return out
}

// GenSVG emits one <text> element per line.
func (t *TextStroke) GenSVG() (render.SVG, error) {
	var b strings.Builder
	lh := t.Style.lineHeight()
	ascent := t.Style.FontSize * 0.8
	fmt.Fprintf(&b, `<g transform="%s" fill="%s" font-size="%.3f" font-family="sans-serif">`,
		render.TransformAttr(t.Transform), t.Style.Color.CSS(), t.Style.FontSize)
	for i, line := range t.lines {
		fmt.Fprintf(&b, `<text x="0" y="%.3f">%s</text>`,
			float64(i)*lh+ascent, render.EscapeText(line.text))
	}
	b.WriteString(`</g>`)
	return render.SVG{Data: b.String(), Bounds: t.Bounds()}, nil
}

// GenImages rasterizes the text with the builtin font. The glyphs are drawn
// in the local frame and the image rect carries the stroke transform, so
// rotated text reuses the same pixels.
func (t *TextStroke) GenImages(viewport inkwell.AABB, imageScale float64) (render.GeneratedImages, error) {
	bounds := t.Bounds()
	if !viewport.Intersects(bounds) {
		return render.PartialInViewport(nil, viewport), nil
	}

	w := int(t.extents.X*imageScale) + 1
	h := int(t.extents.Y*imageScale) + 1
	if w < 1 || h < 1 || t.extents.X <= 0 || t.extents.Y <= 0 {
		return render.Full(nil), nil
	}

	face, err := opentype.NewFace(rasterizingFont(), &opentype.FaceOptions{
		Size:    t.Style.FontSize * imageScale,
		DPI:     72,
		Hinting: xfont.HintingFull,
	})
	if err != nil {
		return render.GeneratedImages{}, fmt.Errorf("strokes: text face: %w", err)
	}
	defer face.Close()

	rgba := image.NewRGBA(image.Rect(0, 0, w, h))
	drawer := xfont.Drawer{
		Dst:  rgba,
		Src:  image.NewUniform(t.Style.Color.Color()),
		Face: face,
	}
	lh := t.Style.lineHeight() * imageScale
	ascent := t.Style.FontSize * 0.8 * imageScale
	for i, line := range t.lines {
		drawer.Dot = fixed.Point26_6{
			X: 0,
			Y: fixed.Int26_6((float64(i)*lh + ascent) * 64),
		}
		drawer.DrawString(line.text)
	}

	img := render.Image{
		Data:        rgba.Pix,
		PixelWidth:  w,
		PixelHeight: h,
		Rect: render.Rect{
			HalfExtents: t.extents.Mul(0.5),
			Transform:   t.Transform.Mul(inkwell.Translation(t.extents.Mul(0.5))),
		},
	}
	if viewport.Contains(bounds) {
		return render.Full([]render.Image{img}), nil
	}
	return render.PartialInViewport([]render.Image{img}, viewport), nil
}
