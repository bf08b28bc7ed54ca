// Package cover synthesizes the deterministic 72x72 RGBA filler raster that
// sits between the frame header and the payload.
//
// A cover is cosmetic. It carries no payload bits and offers no
// confidentiality; it only has to be reproducible from (seed, strength).
//
// Strategies:
// - block-shuffle (default): noise fill, 16x16 block permutation, channel jitter
// - gradient-blend: two-octave gradient noise blended into a pink ramp
// - palette-noise: gradient noise quantized to a pink palette, then jitter
package cover
