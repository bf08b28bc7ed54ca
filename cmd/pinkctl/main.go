package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/danmuck/pink072/internal/pack"
	"github.com/danmuck/pink072/internal/protocol"
	"github.com/danmuck/pink072/internal/protocol/frame"
)

func main() {
	cmd := newRootCommand()
	err := cmd.Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
	os.Exit(exitCode(err))
}

// exitCode maps codec error kinds to stable process exit statuses.
func exitCode(err error) int {
	if err == nil {
		return 0
	}
	switch protocol.KindOf(err) {
	case protocol.KindSeedLength:
		return 3
	case protocol.KindBufferTooSmall:
		return 4
	case protocol.KindFrameTooSmall:
		return 5
	case protocol.KindPayloadLengthOverflow:
		return 6
	case protocol.KindTruncatedFrame:
		return 7
	case protocol.KindInvalidFormat:
		return 8
	}
	switch {
	case errors.Is(err, frame.ErrPayloadTooLarge):
		return 9
	case errors.Is(err, pack.ErrUnexpectedType), errors.Is(err, pack.ErrUnsafePath):
		return 10
	case errors.Is(err, pack.ErrLocked):
		return 11
	}
	return 1
}
