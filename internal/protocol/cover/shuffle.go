package cover

import (
	"github.com/danmuck/pink072/internal/protocol"
	"github.com/danmuck/pink072/internal/protocol/prng"
)

// BlockShuffle is the canonical cover: noise fill, a seeded permutation of
// 16x16 blocks, then bounded per-channel jitter.
type BlockShuffle struct{}

func (BlockShuffle) Synthesize(dst []byte, seed []byte, strength uint8) error {
	if err := checkArgs(dst, seed); err != nil {
		return err
	}
	buf := dst[:protocol.CoverLen]
	state := prng.ExpandSeed(seed)

	fillNoise(buf, &state)
	shuffleBlocks(buf, &state)
	Jitter(buf, &state, strength)
	return nil
}

func fillNoise(buf []byte, state *prng.State) {
	for px := 0; px < protocol.CoverPixels; px++ {
		base := px * protocol.CoverChannels
		buf[base] = state.Byte()
		buf[base+1] = state.Byte()
		buf[base+2] = state.Byte()
		buf[base+3] = 0xFF
	}
}

// shuffleBlocks moves every block to the slot chosen by the permutation.
// Copies are clipped by both the source and destination remainders so a
// partial edge block never writes past the canvas. Destination areas left
// uncovered by a partial source keep their pre-shuffle pixels.
// Covers therefore differ byte-for-byte from a variant that starts from a
// zeroed scratch buffer, which leaves those areas transparent black.
func shuffleBlocks(buf []byte, state *prng.State) {
	const (
		w  = protocol.CoverWidth
		h  = protocol.CoverHeight
		bs = protocol.BlockSize
	)
	blocksW := (w + bs - 1) / bs
	blocksH := (h + bs - 1) / bs
	perm := state.Permute(blocksW * blocksH)

	tmp := make([]byte, len(buf))
	copy(tmp, buf)
	for by := 0; by < blocksH; by++ {
		for bx := 0; bx < blocksW; bx++ {
			dst := perm[by*blocksW+bx]
			srcX, srcY := bx*bs, by*bs
			dstX, dstY := (dst%blocksW)*bs, (dst/blocksW)*bs
			cw := min(bs, w-srcX, w-dstX)
			ch := min(bs, h-srcY, h-dstY)
			n := cw * protocol.CoverChannels
			for row := 0; row < ch; row++ {
				so := ((srcY+row)*w + srcX) * protocol.CoverChannels
				do := ((dstY+row)*w + dstX) * protocol.CoverChannels
				copy(tmp[do:do+n], buf[so:so+n])
			}
		}
	}
	copy(buf, tmp)
}
