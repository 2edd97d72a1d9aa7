// Package server implements an MCP (Model Context Protocol) server that
// inspects icons and strips their white or checkerboard backgrounds.
//
// # Protocol
//
// The server speaks JSON-RPC 2.0 over stdio, one request per line:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Inspection:
//   - icon_load: Dimensions, format and alpha coverage
//   - icon_sample_color / icon_sample_colors_multi: Pixel colors with their
//     background and halo classification
//   - icon_alpha_coverage: Transparent, partial and opaque pixel counts
//   - icon_crop: Magnified region as base64 PNG
//   - icon_preview: Thumbnail over a checkerboard or solid backdrop
//
// Background removal:
//   - icon_strip_background: Write a stripped copy as PNG
//   - icon_fix: Strip a PNG in place, keeping a .backup of the original
//
// Both removal tools accept white_min, grey_max_diff, grey_min, light_min and
// iterations to override the configured thresholds for a single call.
//
// # Image Caching
//
// Decoded images are cached by path for the life of the process. Removal
// tools always work on a private copy, and evict any path they write so a
// later call sees the new file.
//
// # Error Handling
//
// Tool failures are returned as JSON-RPC errors with code -32000 and the Go
// error string in data. Malformed tools/call params yield -32602 and unknown
// methods -32601. A line that is not JSON gets -32700 with a null id.
package server
