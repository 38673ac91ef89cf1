// Package inkwell provides the document/stroke store and rendering-cache
// engine for vector/raster note-taking applications.
//
// # Overview
//
// inkwell holds potentially tens of thousands of strokes in an
// entity-component-system store, each independently selectable, trashable,
// transformable and rasterizable. Rasterization runs on a worker pool and is
// reconciled asynchronously; the store itself is owned by a single goroutine
// and is never locked on the hot path.
//
// # Architecture
//
// The module is organized into:
//   - Root package: shared geometry primitives (Point, AABB, Transform, RGBA)
//   - strokes/: the closed set of stroke variants and their capabilities
//   - render/: image tiles, SVG assembly and the software rasterizer
//   - store/: component tables, spatial index, history, the mutation/query API
//   - engine/: owner-thread engine, camera, task queue, worker pool, export
//
// # Coordinate System
//
// Uses standard computer graphics coordinates:
//   - Origin (0,0) at top-left
//   - X increases right
//   - Y increases down
//   - Angles in radians
//
// Document coordinates are in pixels at 96 DPI.
package inkwell
