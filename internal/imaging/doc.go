// Package imaging is the image source and sink around the transparency
// transform. It decodes icons from disk and writes results back as lossless
// PNG, with alpha reports and checkerboard previews for inspection.
//
// # Coordinate System
//
// Pixel coordinates are 0-based with (0,0) at the top-left corner. Regions
// use an inclusive (x1,y1) and an exclusive (x2,y2).
//
// # Supported Formats
//
// Decoding: PNG, JPEG, GIF, BMP, TIFF and WebP. Encoding: PNG only, at best
// compression, with the alpha channel preserved.
//
// # Thread Safety
//
// ImageCache is safe for concurrent use. Images returned from the cache are
// shared between callers and must be treated as read-only; use CloneNRGBA to
// obtain a private, mutable copy before running an in-place transform.
//
// # Error Handling
//
// File and codec failures are wrapped with context and returned. ErrNotPNG is
// returned when an in-place replacement would silently change the file
// format.
package imaging
