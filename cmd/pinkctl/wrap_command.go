package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/danmuck/pink072/internal/pack"
)

func newWrapCommand(ctx *commandContext) *cobra.Command {
	var output string
	var raw bool
	var bare bool
	var payloadType uint8

	cmd := &cobra.Command{
		Use:   "wrap <input>",
		Short: "Wrap a file, directory or raw bytes into an artifact",
		Long: "Wrap a file or directory into a PNK artifact. Directories are zipped.\n" +
			"With --raw the input bytes are carried as-is under --type.\n" +
			"With --bare the bare frame is written without the PNG prefix.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := args[0]
			target := strings.TrimSpace(output)
			if target == "" {
				target = filepath.Clean(input) + ".pnk"
			}
			p, err := ctx.packer()
			if err != nil {
				return err
			}

			if !raw && !bare {
				if err := p.EncodeAuto(input, target); err != nil {
					return err
				}
				return reportWritten(cmd, target)
			}

			data, typ, err := bareInput(input, raw, payloadType)
			if err != nil {
				return err
			}

			var artifact []byte
			if bare {
				artifact, err = p.WrapFrame(data, typ)
			} else {
				artifact, err = p.Pack(data, typ)
			}
			if err != nil {
				return err
			}
			if err := pack.WriteArtifact(target, artifact); err != nil {
				return err
			}
			return reportWritten(cmd, target)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output path (default <input>.pnk)")
	cmd.Flags().BoolVar(&raw, "raw", false, "Carry input bytes without a file name")
	cmd.Flags().BoolVar(&bare, "bare", false, "Write a bare frame without the PNG prefix")
	cmd.Flags().Uint8Var(&payloadType, "type", pack.TypeRaw, "Payload type byte used with --raw")
	return cmd
}

func reportWritten(cmd *cobra.Command, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%s)\n", path, humanize.Bytes(uint64(info.Size())))
	return nil
}

// bareInput builds the payload for --raw or --bare. Without --raw the input
// keeps its usual file or archive encoding.
func bareInput(input string, raw bool, rawType uint8) ([]byte, uint8, error) {
	info, err := os.Stat(input)
	if err != nil {
		return nil, 0, err
	}
	if info.IsDir() {
		if raw {
			return nil, 0, fmt.Errorf("--raw needs a file, got directory %s", input)
		}
		data, err := pack.ArchiveDir(input)
		return data, pack.TypeArchive, err
	}
	data, err := os.ReadFile(input)
	if err != nil {
		return nil, 0, err
	}
	if raw {
		return data, rawType, nil
	}
	data, err = pack.BuildFilePayload(baseName(input), data)
	return data, pack.TypeFile, err
}
