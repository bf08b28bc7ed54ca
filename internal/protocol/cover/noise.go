package cover

import (
	"math"

	"github.com/danmuck/pink072/internal/protocol/prng"
)

// gradientTable is a seeded 256-entry lattice permutation for 2D gradient noise.
type gradientTable [256]uint8

func newGradientTable(state *prng.State) *gradientTable {
	var t gradientTable
	for i, v := range state.Permute(len(t)) {
		t[i] = uint8(v)
	}
	return &t
}

var gradients = [8][2]float32{
	{1, 0},
	{-1, 0},
	{0, 1},
	{0, -1},
	{math.Sqrt2 / 2, math.Sqrt2 / 2},
	{-math.Sqrt2 / 2, math.Sqrt2 / 2},
	{math.Sqrt2 / 2, -math.Sqrt2 / 2},
	{-math.Sqrt2 / 2, -math.Sqrt2 / 2},
}

func fade(t float32) float32 {
	return t * t * t * (t*(t*6-15) + 10)
}

func lerp(a, b, t float32) float32 {
	return a + t*(b-a)
}

func grad(hash uint8, x, y float32) float32 {
	g := gradients[hash&7]
	return g[0]*x + g[1]*y
}

// at samples gradient noise at (x, y), scaled to [0, 1].
func (t *gradientTable) at(x, y float32) float32 {
	fx := float32(math.Floor(float64(x)))
	fy := float32(math.Floor(float64(y)))
	xi := int(fx) & 255
	yi := int(fy) & 255
	xf := x - fx
	yf := y - fy

	u := fade(xf)
	v := fade(yf)

	x0 := int(t[xi])
	x1 := int(t[(xi+1)&255])
	aa := t[(x0+yi)&255]
	ab := t[(x0+yi+1)&255]
	ba := t[(x1+yi)&255]
	bb := t[(x1+yi+1)&255]

	top := lerp(grad(aa, xf, yf), grad(ba, xf-1, yf), u)
	bottom := lerp(grad(ab, xf, yf-1), grad(bb, xf-1, yf-1), u)
	return (lerp(top, bottom, v) + 1) * 0.5
}

// octaves blends a coarse and a fine sample, weighted 0.65/0.35.
func (t *gradientTable) octaves(x, y int) float32 {
	const (
		coarse = 1.0 / 18
		fine   = 1.0 / 6
	)
	fxv, fyv := float32(x), float32(y)
	n := 0.65*t.at(fxv*coarse, fyv*coarse) + 0.35*t.at(fxv*fine+31.7, fyv*fine+17.3)
	return max(0, min(n, 1))
}
