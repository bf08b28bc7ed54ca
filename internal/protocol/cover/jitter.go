package cover

import (
	"github.com/danmuck/pink072/internal/protocol"
	"github.com/danmuck/pink072/internal/protocol/prng"
)

// Ceilings are the per-channel jitter maxima derived from a strength.
type Ceilings struct {
	R, G, B uint8
}

// CeilingsFor clamps strength and derives the red, green and blue ceilings.
func CeilingsFor(strength uint8) Ceilings {
	s := protocol.ClampStrength(strength)
	return Ceilings{
		R: min(s, 12),
		G: min(s/2, 6),
		B: min(s*5/6, 10),
	}
}

// Jitter raises red and lowers green and blue of every pixel by a bounded
// random delta, three steps per pixel. Alpha is left alone.
func Jitter(buf []byte, state *prng.State, strength uint8) {
	c := CeilingsFor(strength)
	for px := 0; px < protocol.CoverPixels; px++ {
		base := px * protocol.CoverChannels
		dr := int(state.Byte() % (c.R + 1))
		dg := int(state.Byte() % (c.G + 1))
		db := int(state.Byte() % (c.B + 1))

		buf[base] = clampByte(int(buf[base]) + dr)
		buf[base+1] = clampByte(int(buf[base+1]) - dg)
		buf[base+2] = clampByte(int(buf[base+2]) - db)
	}
}

func clampByte(v int) uint8 {
	return uint8(max(0, min(v, 255)))
}
