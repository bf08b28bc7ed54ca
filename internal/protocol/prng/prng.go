// Package prng is the single randomness primitive behind cover synthesis.
//
// Every random decision (pixel byte, permutation pivot, jitter delta)
// consumes exactly one Next step. Only reproducibility is guaranteed, not
// statistical quality.
package prng

import "encoding/binary"

// State is a xorshift64 generator state.
type State uint64

// ExpandSeed maps a 9-byte seed to a generator state: the first 8 bytes as
// a little-endian uint64, with the 9th byte XORed in at bit 11.
// Callers validate the seed length; ExpandSeed panics on fewer than 9 bytes.
func ExpandSeed(seed []byte) State {
	_ = seed[8]
	s := binary.LittleEndian.Uint64(seed[:8])
	s ^= uint64(seed[8]) << 11
	return State(s)
}

// Next advances the state and returns it.
func (s *State) Next() uint64 {
	x := uint64(*s)
	x ^= x << 13
	x ^= x >> 7
	x ^= x << 17
	*s = State(x)
	return x
}

// Byte returns the low byte of the next step.
func (s *State) Byte() uint8 {
	return uint8(s.Next())
}

// Permute returns a Fisher-Yates shuffle of 0..n-1, walking i from n-1
// down to 1 and swapping with Next() % (i+1).
func (s *State) Permute(n int) []int {
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	for i := n - 1; i > 0; i-- {
		j := int(s.Next() % uint64(i+1))
		perm[i], perm[j] = perm[j], perm[i]
	}
	return perm
}
