package frame

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/danmuck/pink072/internal/protocol"
	"github.com/danmuck/pink072/internal/protocol/cover"
)

var ErrPayloadTooLarge = errors.New("frame: payload too large")

// Header is the fixed 32-byte frame header. Bytes 12..31 are reserved and
// always zero on the wire.
type Header struct {
	Version     uint8
	PayloadType uint8
	BlockSize   uint8
	Strength    uint8
	PayloadLen  uint64
}

// Frame is a parsed view over header, cover and payload.
type Frame struct {
	Header  Header
	Cover   []byte
	Payload []byte
}

// Limits constrains stream decode memory use.
type Limits struct {
	MaxPayloadBytes uint64
}

func DefaultLimits() Limits {
	return Limits{
		MaxPayloadBytes: 1 << 30,
	}
}

// Len returns the total frame size for a payload of n bytes.
func Len(n int) int {
	return protocol.PrefixLen + n
}

// Codec wraps payloads using a fixed cover strategy.
type Codec struct {
	cover cover.Strategy
}

// NewCodec returns a codec that synthesizes covers with s. A nil s selects
// cover.Default.
func NewCodec(s cover.Strategy) *Codec {
	if s == nil {
		s = cover.Default
	}
	return &Codec{cover: s}
}

var defaultCodec = NewCodec(nil)

// Wrap builds header || cover || payload using the default cover strategy.
func Wrap(payload []byte, payloadType uint8, seed []byte, strength uint8) ([]byte, error) {
	return defaultCodec.Wrap(payload, payloadType, seed, strength)
}

// WrapInto is Wrap writing into out. See Codec.WrapInto.
func WrapInto(payload []byte, payloadType uint8, seed []byte, strength uint8, out []byte) (int, error) {
	return defaultCodec.WrapInto(payload, payloadType, seed, strength, out)
}

func (c *Codec) Wrap(payload []byte, payloadType uint8, seed []byte, strength uint8) ([]byte, error) {
	if err := cover.ValidateSeed(seed); err != nil {
		return nil, err
	}
	out := make([]byte, Len(len(payload)))
	if _, err := c.WrapInto(payload, payloadType, seed, strength, out); err != nil {
		return nil, err
	}
	return out, nil
}

// WrapInto writes the frame into out and returns the bytes written. Nothing
// is written unless the seed is valid and out can hold the whole frame. out
// must not alias payload.
func (c *Codec) WrapInto(payload []byte, payloadType uint8, seed []byte, strength uint8, out []byte) (int, error) {
	if err := cover.ValidateSeed(seed); err != nil {
		return 0, err
	}
	strength = protocol.ClampStrength(strength)
	total := Len(len(payload))
	if len(out) < total {
		return 0, protocol.ErrBufferTooSmall
	}

	PutHeader(out, Header{
		Version:     protocol.FormatVersion,
		PayloadType: payloadType,
		BlockSize:   protocol.BlockSize,
		Strength:    strength,
		PayloadLen:  uint64(len(payload)),
	})
	if err := c.cover.Synthesize(out[protocol.HeaderLen:protocol.PrefixLen], seed, strength); err != nil {
		return 0, err
	}
	copy(out[protocol.PrefixLen:total], payload)
	return total, nil
}

// Unwrap returns the payload type and a copy of the payload. The embedded
// cover is never checked.
func Unwrap(frame []byte) (uint8, []byte, error) {
	f, err := Parse(frame)
	if err != nil {
		return 0, nil, err
	}
	return f.Header.PayloadType, bytes.Clone(f.Payload), nil
}

// Parse validates frame bounds and returns slices into frame without
// copying.
func Parse(frame []byte) (Frame, error) {
	if len(frame) < protocol.PrefixLen {
		return Frame{}, protocol.ErrFrameTooSmall
	}
	h, err := DecodeHeader(frame[:protocol.HeaderLen])
	if err != nil {
		return Frame{}, err
	}
	end, err := payloadEnd(h.PayloadLen)
	if err != nil {
		return Frame{}, err
	}
	if len(frame) < end {
		return Frame{}, protocol.ErrTruncatedFrame
	}
	return Frame{
		Header:  h,
		Cover:   frame[protocol.HeaderLen:protocol.PrefixLen],
		Payload: frame[protocol.PrefixLen:end:end],
	}, nil
}

func payloadEnd(declared uint64) (int, error) {
	if declared > math.MaxInt {
		return 0, protocol.ErrPayloadLengthOverflow
	}
	n := int(declared)
	if n > math.MaxInt-protocol.PrefixLen {
		return 0, protocol.ErrPayloadLengthOverflow
	}
	return protocol.PrefixLen + n, nil
}

// ReadFrame reads one bare frame from r. Trailing bytes after the declared
// payload are left unread.
func ReadFrame(r io.Reader, limits Limits) (Frame, error) {
	prefix := make([]byte, protocol.PrefixLen)
	if _, err := io.ReadFull(r, prefix); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
			return Frame{}, protocol.ErrFrameTooSmall
		}
		return Frame{}, err
	}

	h, err := DecodeHeader(prefix[:protocol.HeaderLen])
	if err != nil {
		return Frame{}, err
	}
	if _, err := payloadEnd(h.PayloadLen); err != nil {
		return Frame{}, err
	}
	if h.PayloadLen > limits.MaxPayloadBytes {
		return Frame{}, ErrPayloadTooLarge
	}

	payload := make([]byte, h.PayloadLen)
	if h.PayloadLen > 0 {
		if _, err := io.ReadFull(r, payload); err != nil {
			if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
				return Frame{}, protocol.ErrTruncatedFrame
			}
			return Frame{}, err
		}
	}

	return Frame{Header: h, Cover: prefix[protocol.HeaderLen:], Payload: payload}, nil
}

// WriteFrame writes f, recomputing PayloadLen from f.Payload.
func WriteFrame(w io.Writer, f Frame) error {
	if len(f.Cover) != protocol.CoverLen {
		return fmt.Errorf("frame: invalid cover length: %d", len(f.Cover))
	}
	h := f.Header
	h.PayloadLen = uint64(len(f.Payload))

	if _, err := w.Write(EncodeHeader(h)); err != nil {
		return err
	}
	if _, err := w.Write(f.Cover); err != nil {
		return err
	}
	if len(f.Payload) > 0 {
		if _, err := w.Write(f.Payload); err != nil {
			return err
		}
	}
	return nil
}

func EncodeHeader(h Header) []byte {
	buf := make([]byte, protocol.HeaderLen)
	PutHeader(buf, h)
	return buf
}

// PutHeader writes h into the first 32 bytes of buf, zeroing the reserved
// range.
func PutHeader(buf []byte, h Header) {
	buf[protocol.OffsetVersion] = h.Version
	buf[protocol.OffsetPayloadType] = h.PayloadType
	buf[protocol.OffsetBlockSize] = h.BlockSize
	buf[protocol.OffsetStrength] = h.Strength
	binary.LittleEndian.PutUint64(buf[protocol.OffsetPayloadLen:protocol.OffsetReserved], h.PayloadLen)
	clear(buf[protocol.OffsetReserved:protocol.HeaderLen])
}

func DecodeHeader(b []byte) (Header, error) {
	if len(b) != protocol.HeaderLen {
		return Header{}, fmt.Errorf("frame: invalid fixed header length: %d", len(b))
	}
	return Header{
		Version:     b[protocol.OffsetVersion],
		PayloadType: b[protocol.OffsetPayloadType],
		BlockSize:   b[protocol.OffsetBlockSize],
		Strength:    b[protocol.OffsetStrength],
		PayloadLen:  binary.LittleEndian.Uint64(b[protocol.OffsetPayloadLen:protocol.OffsetReserved]),
	}, nil
}
