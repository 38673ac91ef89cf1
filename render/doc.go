// Package render holds the rasterization boundary of the engine: positioned
// bitmap tiles, SVG markup assembly, and the software rasterizer that turns
// a shape plus style into pixels.
//
// The store treats rasterization as opaque. Strokes generate SVG fragments
// and hand them to [RasterizeSVG]; the resulting [Image] tiles carry their
// own document-space rect with a full affine transform, so cached pixels can
// follow interactive geometry transforms without re-rasterizing.
package render
