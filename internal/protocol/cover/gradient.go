package cover

import (
	"github.com/danmuck/pink072/internal/protocol"
	"github.com/danmuck/pink072/internal/protocol/prng"
)

// GradientBlend maps two-octave gradient noise onto a pink ramp. Strength
// only scales a final jitter pass.
type GradientBlend struct{}

func (GradientBlend) Synthesize(dst []byte, seed []byte, strength uint8) error {
	if err := checkArgs(dst, seed); err != nil {
		return err
	}
	buf := dst[:protocol.CoverLen]
	state := prng.ExpandSeed(seed)
	table := newGradientTable(&state)

	for y := 0; y < protocol.CoverHeight; y++ {
		for x := 0; x < protocol.CoverWidth; x++ {
			n := table.octaves(x, y)
			base := (y*protocol.CoverWidth + x) * protocol.CoverChannels
			buf[base] = uint8(190 + n*65)
			buf[base+1] = uint8(70 + n*110)
			buf[base+2] = uint8(120 + n*90)
			buf[base+3] = 0xFF
		}
	}
	Jitter(buf, &state, strength)
	return nil
}

// PaletteNoise quantizes gradient noise to a fixed pink palette and then
// applies the canonical jitter.
type PaletteNoise struct{}

var palette = [...][3]uint8{
	{0x8B, 0x1E, 0x4F},
	{0xC2, 0x3B, 0x6E},
	{0xE0, 0x60, 0x8E},
	{0xF2, 0x8F, 0xB1},
	{0xF8, 0xBB, 0xD0},
	{0xFD, 0xE4, 0xEC},
}

func (PaletteNoise) Synthesize(dst []byte, seed []byte, strength uint8) error {
	if err := checkArgs(dst, seed); err != nil {
		return err
	}
	buf := dst[:protocol.CoverLen]
	state := prng.ExpandSeed(seed)
	table := newGradientTable(&state)

	for y := 0; y < protocol.CoverHeight; y++ {
		for x := 0; x < protocol.CoverWidth; x++ {
			idx := min(int(table.octaves(x, y)*float32(len(palette))), len(palette)-1)
			c := palette[idx]
			base := (y*protocol.CoverWidth + x) * protocol.CoverChannels
			buf[base] = c[0]
			buf[base+1] = c[1]
			buf[base+2] = c[2]
			buf[base+3] = 0xFF
		}
	}
	Jitter(buf, &state, strength)
	return nil
}
