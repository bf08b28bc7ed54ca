package protocol

// Frame layout.
const (
	FormatVersion uint8 = 1
	HeaderLen           = 32
	SeedLen             = 9
	MaxStrength   uint8 = 12
)

// Header field offsets.
const (
	OffsetVersion     = 0
	OffsetPayloadType = 1
	OffsetBlockSize   = 2
	OffsetStrength    = 3
	OffsetPayloadLen  = 4
	OffsetReserved    = 12
)

// Cover raster geometry. The container codec derives its chunk dimensions
// from these, the frame codec derives its offsets from CoverLen.
const (
	CoverWidth    = 72
	CoverHeight   = 72
	CoverChannels = 4
	CoverPixels   = CoverWidth * CoverHeight
	CoverStride   = CoverWidth * CoverChannels
	CoverLen      = CoverPixels * CoverChannels
	BlockSize     = 16
)

// PrefixLen is the fixed part of every frame: header plus cover.
const PrefixLen = HeaderLen + CoverLen

// ClampStrength limits strength to [0, MaxStrength].
func ClampStrength(strength uint8) uint8 {
	return min(strength, MaxStrength)
}
