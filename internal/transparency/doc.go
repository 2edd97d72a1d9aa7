// Package transparency removes flat white or checkerboard backgrounds from icon
// images and cleans up the light fringe ("halo") those backgrounds leave behind.
//
// The transform runs in two phases over a single *image.NRGBA buffer:
//
//  1. Flood fill: starting from every pixel on the four image borders, every
//     4-connected pixel that is background-colored (near white or light grey)
//     or already fully transparent is set to (0,0,0,0). Pixels that fail the
//     test act as walls. Background-colored regions enclosed by the foreground
//     are not reachable from the border and stay opaque.
//
//  2. Edge shaving: for a bounded number of passes, every opaque interior pixel
//     that touches a transparent 4-neighbor and is light (all channels above
//     LightMin) is cleared. Each pass scans the whole image before applying any
//     removal, so the erosion depth per pass is exactly one pixel regardless of
//     scan order.
//
// # Ownership
//
// Process mutates an *image.NRGBA argument in place and returns it. Any other
// image type is first converted into a fresh *image.NRGBA. Callers that keep a
// decoded image in a shared cache must hand Process a copy.
//
// # Concurrency
//
// A Stripper holds only immutable options and may be shared between
// goroutines. A single image buffer must not be processed concurrently.
//
// # Errors
//
// The transform performs no I/O and cannot fail. A zero-area image is
// returned unchanged.
package transparency
