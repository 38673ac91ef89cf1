package render

import (
	"fmt"
	"strings"

	"github.com/gogpu/inkwell"
)

// SVG is a fragment of SVG markup together with the document-space bounds
// it covers. Data holds inner markup without a root <svg> element; export
// callers wrap it themselves, and the rasterizer wraps it with a viewBox
// derived from Bounds.
type SVG struct {
	Data   string
	Bounds inkwell.AABB
}

// Merge concatenates the fragments, folding their bounds together.
func MergeSVGs(svgs []SVG) SVG {
	var sb strings.Builder
	bounds := inkwell.InvalidAABB()
	for _, s := range svgs {
		sb.WriteString(s.Data)
		bounds = bounds.Merge(s.Bounds)
	}
	return SVG{Data: sb.String(), Bounds: bounds}
}

// WrapRoot wraps the fragment in a root <svg> element whose viewBox covers
// the fragment bounds, producing a standalone document.
func (s SVG) WrapRoot() string {
	b := s.Bounds
	return fmt.Sprintf(
		`<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" `+
			`width="%.3f" height="%.3f" viewBox="%.3f %.3f %.3f %.3f">%s</svg>`,
		b.Width(), b.Height(), b.Min.X, b.Min.Y, b.Width(), b.Height(), s.Data,
	)
}

// wrapForTarget wraps the fragment for rasterization into a pixel target of
// the given size, with the viewBox clipped to target document bounds.
func (s SVG) wrapForTarget(target inkwell.AABB, pxW, pxH int) string {
	return fmt.Sprintf(
		`<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" `+
			`width="%d" height="%d" viewBox="%.3f %.3f %.3f %.3f">%s</svg>`,
		pxW, pxH, target.Min.X, target.Min.Y, target.Width(), target.Height(), s.Data,
	)
}

// TransformAttr formats the transform as an SVG transform attribute value.
func TransformAttr(t inkwell.Transform) string {
	return fmt.Sprintf("matrix(%.5f %.5f %.5f %.5f %.5f %.5f)", t.A, t.D, t.B, t.E, t.C, t.F)
}

// EscapeText escapes a string for inclusion as SVG element text.
func EscapeText(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	return r.Replace(s)
}
