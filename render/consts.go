package render

// ViewportExtentsMarginFactor is the factor by which the rendering viewport
// is extended on every side before deciding what needs rasterization.
//
// There is a trade off: a larger value consumes more cached image memory, a
// smaller value means more visible stutter when panning or zooming.
const ViewportExtentsMarginFactor = 0.4

// ViewportExtentsMarginRerenderThreshold is applied on top of the extents
// margin factor when checking cached viewport-scoped images, so that
// rerendering starts a bit before the edge of the cached region is reached.
const ViewportExtentsMarginRerenderThreshold = 0.7

// ImageScaleTolerance is the tolerance within which two image scale factors
// are considered equal when reconciling asynchronous render completions.
const ImageScaleTolerance = 0.01

// ImagesSizeThreshold is the threshold, in pixels on either axis, below
// which a stroke is rasterized as a single image instead of per-segment
// tiles.
const ImagesSizeThreshold = 1000.0

// maxImagePixels caps a single rasterization target to guard against
// degenerate viewports allocating unbounded pixel buffers.
const maxImagePixels = 32_000 * 32_000
