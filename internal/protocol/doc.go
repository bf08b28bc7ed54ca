// Package protocol owns the PINK-072 wire contract and its parsing primitives.
//
// Ownership boundary:
// - layout constants shared by every codec (header, cover, block tiling)
// - the error taxonomy returned by frame and container codecs
// - prng/cover/frame/container subpackages
//
// Everything under protocol is a pure transformation of its inputs. Nothing
// here logs, blocks, or keeps state between calls.
package protocol
