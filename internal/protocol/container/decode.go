package container

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/klauspost/compress/zlib"

	"github.com/danmuck/pink072/internal/protocol"
)

// DecodePixels reads back the 72x72 RGBA raster from a container. Unlike
// FindEnd it verifies every chunk checksum and the image header.
func DecodePixels(data []byte) ([]byte, error) {
	if !IsPNK(data) {
		return nil, fmt.Errorf("%w: missing signature", protocol.ErrInvalidFormat)
	}
	var (
		idat     bytes.Buffer
		seenIHDR bool
	)
	pos := len(Signature)
	for {
		if pos+chunkOverhead > len(data) {
			return nil, fmt.Errorf("%w: no IEND chunk", protocol.ErrInvalidFormat)
		}
		n := binary.BigEndian.Uint32(data[pos : pos+4])
		if uint64(n) > uint64(len(data)-pos-chunkOverhead) {
			return nil, fmt.Errorf("%w: chunk at %d overruns data", protocol.ErrInvalidFormat, pos)
		}
		name := string(data[pos+4 : pos+8])
		body := data[pos+8 : pos+8+int(n)]
		want := binary.BigEndian.Uint32(data[pos+8+int(n) : pos+chunkOverhead+int(n)])
		if got := chunkCRC(name, body); got != want {
			return nil, fmt.Errorf("%w: %s crc mismatch", protocol.ErrInvalidFormat, name)
		}
		pos += chunkOverhead + int(n)

		switch name {
		case chunkIHDR:
			if err := checkIHDR(body); err != nil {
				return nil, err
			}
			seenIHDR = true
		case chunkIDAT:
			if !seenIHDR {
				return nil, fmt.Errorf("%w: IDAT before IHDR", protocol.ErrInvalidFormat)
			}
			idat.Write(body)
		case chunkIEND:
			if idat.Len() == 0 {
				return nil, fmt.Errorf("%w: no IDAT chunk", protocol.ErrInvalidFormat)
			}
			return unfilter(&idat)
		}
	}
}

func checkIHDR(b []byte) error {
	if len(b) != 13 ||
		binary.BigEndian.Uint32(b[0:4]) != protocol.CoverWidth ||
		binary.BigEndian.Uint32(b[4:8]) != protocol.CoverHeight ||
		b[8] != bitDepth || b[9] != colorTypeRGBA || b[12] != 0 {
		return fmt.Errorf("%w: unsupported image header", protocol.ErrInvalidFormat)
	}
	return nil
}

func unfilter(stream io.Reader) ([]byte, error) {
	zr, err := zlib.NewReader(stream)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", protocol.ErrInvalidFormat, err)
	}
	defer zr.Close()

	raw := make([]byte, protocol.CoverHeight*scanlineLen)
	if _, err := io.ReadFull(zr, raw); err != nil {
		return nil, fmt.Errorf("%w: short pixel stream: %v", protocol.ErrInvalidFormat, err)
	}
	// one byte of lookahead reaches EOF, which also checks the Adler trailer
	extra, err := io.Copy(io.Discard, io.LimitReader(zr, 1))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", protocol.ErrInvalidFormat, err)
	}
	if extra != 0 {
		return nil, fmt.Errorf("%w: pixel stream longer than raster", protocol.ErrInvalidFormat)
	}

	rgba := make([]byte, 0, protocol.CoverLen)
	for y := 0; y < protocol.CoverHeight; y++ {
		line := raw[y*scanlineLen : (y+1)*scanlineLen]
		if line[0] != filterNone {
			return nil, fmt.Errorf("%w: unsupported filter %d on row %d", protocol.ErrInvalidFormat, line[0], y)
		}
		rgba = append(rgba, line[1:]...)
	}
	return rgba, nil
}
