package protocol

import "errors"

var (
	ErrSeedLength            = errors.New("pink072: seed must be exactly 9 bytes")
	ErrBufferTooSmall        = errors.New("pink072: buffer too small")
	ErrFrameTooSmall         = errors.New("pink072: frame too small")
	ErrPayloadLengthOverflow = errors.New("pink072: payload length overflow")
	ErrTruncatedFrame        = errors.New("pink072: truncated frame")
	ErrInvalidFormat         = errors.New("pink072: invalid PNK format")
)

// Kind is the stable name of an error class. Outer layers use it for exit
// codes and metric labels.
type Kind string

const (
	KindNone                  Kind = ""
	KindSeedLength            Kind = "seed_length"
	KindBufferTooSmall        Kind = "buffer_too_small"
	KindFrameTooSmall         Kind = "frame_too_small"
	KindPayloadLengthOverflow Kind = "payload_length_overflow"
	KindTruncatedFrame        Kind = "truncated_frame"
	KindInvalidFormat         Kind = "invalid_format"
	KindOther                 Kind = "other"
)

var kinds = []struct {
	err  error
	kind Kind
}{
	{ErrSeedLength, KindSeedLength},
	{ErrBufferTooSmall, KindBufferTooSmall},
	{ErrFrameTooSmall, KindFrameTooSmall},
	{ErrPayloadLengthOverflow, KindPayloadLengthOverflow},
	{ErrTruncatedFrame, KindTruncatedFrame},
	{ErrInvalidFormat, KindInvalidFormat},
}

// KindOf classifies err, looking through any wrapping.
func KindOf(err error) Kind {
	if err == nil {
		return KindNone
	}
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.kind
		}
	}
	return KindOther
}
