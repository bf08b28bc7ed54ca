package container

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/danmuck/pink072/internal/protocol"
)

// Signature opens every PNG stream.
var Signature = [8]byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

const (
	chunkIHDR = "IHDR"
	chunkIDAT = "IDAT"
	chunkIEND = "IEND"

	// chunk overhead: length + type + crc
	chunkOverhead = 4 + 4 + 4

	bitDepth      = 8
	colorTypeRGBA = 6
	filterNone    = 0

	// zlib CMF/FLG: deflate, 32K window, fastest, checksum-valid.
	zlibCMF = 0x78
	zlibFLG = 0x01

	maxStoredBlock = 0xFFFF
)

var ErrRasterSize = errors.New("container: raster must be 72x72 RGBA")

// scanlineLen is one filtered row: filter byte plus pixels.
const scanlineLen = 1 + protocol.CoverStride

// chunkWriter appends length-type-data-crc chunks. word is scratch for the
// length and CRC fields only; chunk data must not alias it.
type chunkWriter struct {
	buf  bytes.Buffer
	word [4]byte
}

func (w *chunkWriter) writeChunk(name string, data []byte) {
	binary.BigEndian.PutUint32(w.word[:], uint32(len(data)))
	w.buf.Write(w.word[:])
	w.buf.WriteString(name)
	w.buf.Write(data)
	binary.BigEndian.PutUint32(w.word[:], chunkCRC(name, data))
	w.buf.Write(w.word[:])
}

// EncodedLen is the exact size of Encode's output.
func EncodedLen() int {
	raw := protocol.CoverHeight * scanlineLen
	blocks := (raw + maxStoredBlock - 1) / maxStoredBlock
	idat := 2 + blocks*5 + raw + 4
	return len(Signature) + (chunkOverhead + 13) + (chunkOverhead + idat) + chunkOverhead
}

// Encode serializes a 72x72 RGBA raster as a PNG with a single stored IDAT.
func Encode(rgba []byte) ([]byte, error) {
	if len(rgba) != protocol.CoverLen {
		return nil, fmt.Errorf("%w: got %d bytes", ErrRasterSize, len(rgba))
	}
	var w chunkWriter
	w.buf.Grow(EncodedLen())
	w.buf.Write(Signature[:])

	var ihdr [13]byte
	binary.BigEndian.PutUint32(ihdr[0:4], protocol.CoverWidth)
	binary.BigEndian.PutUint32(ihdr[4:8], protocol.CoverHeight)
	ihdr[8] = bitDepth
	ihdr[9] = colorTypeRGBA
	ihdr[10] = 0 // deflate
	ihdr[11] = 0 // adaptive filtering
	ihdr[12] = 0 // no interlace
	w.writeChunk(chunkIHDR, ihdr[:])

	w.writeChunk(chunkIDAT, storedZlib(scanlines(rgba)))
	w.writeChunk(chunkIEND, nil)
	return w.buf.Bytes(), nil
}

func scanlines(rgba []byte) []byte {
	raw := make([]byte, 0, protocol.CoverHeight*scanlineLen)
	for y := 0; y < protocol.CoverHeight; y++ {
		start := y * protocol.CoverStride
		raw = append(raw, filterNone)
		raw = append(raw, rgba[start:start+protocol.CoverStride]...)
	}
	return raw
}

// storedZlib wraps raw in a zlib stream made only of stored deflate blocks.
func storedZlib(raw []byte) []byte {
	blocks := max(1, (len(raw)+maxStoredBlock-1)/maxStoredBlock)
	out := make([]byte, 0, 2+blocks*5+len(raw)+4)
	out = append(out, zlibCMF, zlibFLG)

	pos := 0
	for {
		n := min(len(raw)-pos, maxStoredBlock)
		final := byte(0)
		if pos+n >= len(raw) {
			final = 1
		}
		out = append(out, final)
		out = binary.LittleEndian.AppendUint16(out, uint16(n))
		out = binary.LittleEndian.AppendUint16(out, ^uint16(n))
		out = append(out, raw[pos:pos+n]...)
		pos += n
		if final == 1 {
			break
		}
	}
	return binary.BigEndian.AppendUint32(out, Adler32(raw))
}
