package container

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/danmuck/pink072/internal/protocol"
)

// FindEnd returns the offset just past the IEND chunk. Chunks are skipped
// by declared length; checksums are not verified.
func FindEnd(data []byte) (int, error) {
	if len(data) < len(Signature) || !bytes.Equal(data[:len(Signature)], Signature[:]) {
		return 0, fmt.Errorf("%w: missing signature", protocol.ErrInvalidFormat)
	}
	pos := len(Signature)
	for pos+chunkOverhead <= len(data) {
		n := binary.BigEndian.Uint32(data[pos : pos+4])
		if uint64(n) > uint64(len(data)-pos-chunkOverhead) {
			return 0, fmt.Errorf("%w: chunk at %d overruns data", protocol.ErrInvalidFormat, pos)
		}
		end := pos + chunkOverhead + int(n)
		if string(data[pos+4:pos+8]) == chunkIEND {
			return end, nil
		}
		pos = end
	}
	return 0, fmt.Errorf("%w: no IEND chunk", protocol.ErrInvalidFormat)
}

// EncodePNK emits the frame's cover as a PNG followed by the whole frame.
func EncodePNK(frame []byte) ([]byte, error) {
	if len(frame) < protocol.PrefixLen {
		return nil, protocol.ErrFrameTooSmall
	}
	img, err := Encode(frame[protocol.HeaderLen:protocol.PrefixLen])
	if err != nil {
		return nil, err
	}
	out := make([]byte, 0, len(img)+len(frame))
	out = append(out, img...)
	return append(out, frame...), nil
}

// DecodePNK returns the frame bytes trailing the PNG. The result aliases
// data. A PNG with nothing after IEND is rejected.
func DecodePNK(data []byte) ([]byte, error) {
	end, err := FindEnd(data)
	if err != nil {
		return nil, err
	}
	if end >= len(data) {
		return nil, fmt.Errorf("%w: no frame after image", protocol.ErrInvalidFormat)
	}
	return data[end:], nil
}

// IsPNK reports whether data starts with the PNG signature.
func IsPNK(data []byte) bool {
	return len(data) >= len(Signature) && bytes.Equal(data[:len(Signature)], Signature[:])
}
