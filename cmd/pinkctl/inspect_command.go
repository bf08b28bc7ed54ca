package main

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/danmuck/pink072/internal/pack"
	"github.com/danmuck/pink072/internal/protocol"
	"github.com/danmuck/pink072/internal/protocol/container"
	"github.com/danmuck/pink072/internal/protocol/frame"
)

type inspection struct {
	Container    string
	ContainerLen int
	ImageOK      bool
	ImageErr     error
	Header       frame.Header
	FrameLen     int
	PayloadOK    bool
	PayloadErr   error
}

func newInspectCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <artifact>",
		Short: "Describe the container and frame header of an artifact",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			info, err := inspect(data)
			if err != nil {
				return err
			}
			ctx.logger.Debug().Str("path", args[0]).Str("container", info.Container).Msg("inspected artifact")
			fmt.Fprintln(cmd.OutOrStdout(), renderInspection(info))
			if info.PayloadErr != nil {
				return info.PayloadErr
			}
			return nil
		},
	}
}

// inspect reads the header without requiring the payload to be intact so a
// truncated artifact can still be described.
func inspect(data []byte) (inspection, error) {
	info := inspection{Container: "bare frame"}
	f := data
	if container.IsPNK(data) {
		info.Container = "pnk"
		end, err := container.FindEnd(data)
		if err != nil {
			return info, err
		}
		info.ContainerLen = end
		_, info.ImageErr = container.DecodePixels(data[:end])
		info.ImageOK = info.ImageErr == nil
		f = data[end:]
	}
	if len(f) < protocol.HeaderLen {
		return info, protocol.ErrFrameTooSmall
	}
	h, err := frame.DecodeHeader(f[:protocol.HeaderLen])
	if err != nil {
		return info, err
	}
	info.Header = h
	info.FrameLen = len(f)
	_, info.PayloadErr = frame.Parse(f)
	info.PayloadOK = info.PayloadErr == nil
	return info, nil
}

func renderInspection(info inspection) string {
	rows := [][2]string{
		{"container", info.Container},
	}
	if info.Container == "pnk" {
		rows = append(rows,
			[2]string{"image bytes", humanize.Comma(int64(info.ContainerLen))},
			[2]string{"image", status(info.ImageOK, info.ImageErr)},
		)
	}
	h := info.Header
	rows = append(rows,
		[2]string{"version", fmt.Sprintf("%d", h.Version)},
		[2]string{"payload type", pack.TypeName(h.PayloadType)},
		[2]string{"block size", fmt.Sprintf("%d", h.BlockSize)},
		[2]string{"strength", fmt.Sprintf("%d", h.Strength)},
		[2]string{"payload length", humanize.Bytes(h.PayloadLen)},
		[2]string{"frame bytes", humanize.Comma(int64(info.FrameLen))},
		[2]string{"payload", status(info.PayloadOK, info.PayloadErr)},
	)
	return renderKeyValue("Field", "Value", rows, true)
}

func status(ok bool, err error) string {
	if ok {
		return "ok"
	}
	return err.Error()
}
