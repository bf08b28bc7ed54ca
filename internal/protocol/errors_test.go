package protocol

import (
	"errors"
	"fmt"
	"io"
	"testing"
)

func TestKindOfLooksThroughWrapping(t *testing.T) {
	cases := []struct {
		err  error
		want Kind
	}{
		{nil, KindNone},
		{ErrSeedLength, KindSeedLength},
		{fmt.Errorf("wrap: %w", ErrBufferTooSmall), KindBufferTooSmall},
		{fmt.Errorf("outer: %w", fmt.Errorf("inner: %w", ErrTruncatedFrame)), KindTruncatedFrame},
		{ErrFrameTooSmall, KindFrameTooSmall},
		{ErrPayloadLengthOverflow, KindPayloadLengthOverflow},
		{ErrInvalidFormat, KindInvalidFormat},
		{io.EOF, KindOther},
	}
	for _, tc := range cases {
		if got := KindOf(tc.err); got != tc.want {
			t.Fatalf("KindOf(%v)=%q want %q", tc.err, got, tc.want)
		}
	}
}

func TestErrorsAreDistinct(t *testing.T) {
	all := []error{ErrSeedLength, ErrBufferTooSmall, ErrFrameTooSmall, ErrPayloadLengthOverflow, ErrTruncatedFrame, ErrInvalidFormat}
	for i, a := range all {
		for j, b := range all {
			if i != j && errors.Is(a, b) {
				t.Fatalf("%v unexpectedly matches %v", a, b)
			}
		}
	}
}

func TestLayoutConstants(t *testing.T) {
	if CoverLen != 20736 {
		t.Fatalf("cover len: got %d", CoverLen)
	}
	if PrefixLen != 32+20736 {
		t.Fatalf("prefix len: got %d", PrefixLen)
	}
	if ClampStrength(200) != MaxStrength || ClampStrength(8) != 8 || ClampStrength(0) != 0 {
		t.Fatalf("clamp strength mismatch")
	}
}
