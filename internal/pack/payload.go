package pack

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

const (
	TypeRaw     uint8 = 0
	TypeFile    uint8 = 1
	TypeArchive uint8 = 2
)

// RawFileName is the name given to extracted raw payloads.
const RawFileName = "data.bin"

var (
	ErrUnexpectedType = errors.New("pack: unexpected payload type")
	ErrNameTooLong    = errors.New("pack: file name too long")
	ErrShortPayload   = errors.New("pack: file payload too short")
	ErrInvalidName    = errors.New("pack: invalid file name")
	ErrUnsafePath     = errors.New("pack: path escapes output directory")
)

func TypeName(t uint8) string {
	switch t {
	case TypeRaw:
		return "raw"
	case TypeFile:
		return "file"
	case TypeArchive:
		return "archive"
	default:
		return fmt.Sprintf("unknown(%d)", t)
	}
}

// BuildFilePayload prefixes data with its file name.
func BuildFilePayload(name string, data []byte) ([]byte, error) {
	if len(name) > math.MaxUint16 {
		return nil, fmt.Errorf("%w: %d bytes", ErrNameTooLong, len(name))
	}
	if !utf8.ValidString(name) {
		return nil, ErrInvalidName
	}
	out := make([]byte, 0, 2+len(name)+len(data))
	out = binary.LittleEndian.AppendUint16(out, uint16(len(name)))
	out = append(out, name...)
	return append(out, data...), nil
}

// ParseFilePayload splits a file payload into its name and content. The
// content aliases payload.
func ParseFilePayload(payload []byte) (string, []byte, error) {
	if len(payload) < 2 {
		return "", nil, ErrShortPayload
	}
	n := int(binary.LittleEndian.Uint16(payload[:2]))
	if len(payload) < 2+n {
		return "", nil, fmt.Errorf("%w: name length %d exceeds payload", ErrShortPayload, n)
	}
	name := payload[2 : 2+n]
	if !utf8.Valid(name) {
		return "", nil, ErrInvalidName
	}
	return string(name), payload[2+n:], nil
}

// safeBaseName rejects names that would land outside the output directory.
func safeBaseName(name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) || !filepath.IsLocal(name) {
		return fmt.Errorf("%w: %q", ErrUnsafePath, name)
	}
	return nil
}
