// Package container wraps a cover raster in a minimal PNG and appends the
// full frame after it, producing a PNK artifact that opens as an image and
// still carries the frame.
//
// Layout of a PNK artifact:
//
//	signature | IHDR | IDAT (zlib, stored blocks) | IEND | frame
//
// The writer only ever emits uncompressed (stored) deflate blocks. The end
// scanner skips chunks by length and does not verify checksums.
package container
