package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/danmuck/pink072/internal/observability"
	"github.com/danmuck/pink072/internal/pack"
	"github.com/danmuck/pink072/internal/protocol/container"
	"github.com/danmuck/pink072/internal/protocol/frame"
)

func newUnwrapCommand(ctx *commandContext) *cobra.Command {
	var outDir string

	cmd := &cobra.Command{
		Use:   "unwrap <artifact>",
		Short: "Extract the payload of a PNK artifact or bare frame",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := args[0]
			target := strings.TrimSpace(outDir)
			if target == "" {
				target = strings.TrimSuffix(input, filepath.Ext(input)) + "_extracted"
			}

			pnk, err := hasSignature(input)
			if err != nil {
				return err
			}

			var names []string
			if pnk {
				p, err := ctx.packer()
				if err != nil {
					return err
				}
				names, err = p.DecodeAuto(input, target)
				if err != nil {
					return err
				}
			} else {
				op := observability.Start(ctx.logger, "unpack")
				f, err := readBareFrame(input, frame.Limits{MaxPayloadBytes: ctx.config.MaxPayloadBytes})
				if err = op.Done(len(f.Payload), err); err != nil {
					return err
				}
				ctx.logger.Debug().
					Str("path", input).
					Str("payload_type", pack.TypeName(f.Header.PayloadType)).
					Uint64("payload_bytes", f.Header.PayloadLen).
					Msg("read bare frame")
				names, err = pack.Extract(f.Header.PayloadType, f.Payload, target)
				if err != nil {
					return err
				}
			}

			out := cmd.OutOrStdout()
			for _, name := range names {
				fmt.Fprintln(out, filepath.Join(target, filepath.FromSlash(name)))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outDir, "output", "o", "", "Output directory (default <artifact>_extracted)")
	return cmd
}

func hasSignature(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()
	head := make([]byte, len(container.Signature))
	n, _ := io.ReadFull(f, head)
	return container.IsPNK(head[:n]), nil
}

func readBareFrame(path string, limits frame.Limits) (frame.Frame, error) {
	f, err := os.Open(path)
	if err != nil {
		return frame.Frame{}, err
	}
	defer f.Close()
	fr, err := frame.ReadFrame(bufio.NewReader(f), limits)
	if err != nil {
		return frame.Frame{}, fmt.Errorf("read frame %s: %w", path, err)
	}
	return fr, nil
}

func baseName(path string) string {
	return filepath.Base(filepath.Clean(path))
}
