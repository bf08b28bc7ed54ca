package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/danmuck/pink072/internal/observability"
	"github.com/danmuck/pink072/internal/pack"
	"github.com/danmuck/pink072/internal/protocol"
	"github.com/danmuck/pink072/internal/protocol/container"
	"github.com/danmuck/pink072/internal/protocol/cover"
)

func newCoverCommand(ctx *commandContext) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "cover",
		Short: "Render the cover for the configured seed as a PNG",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			target := strings.TrimSpace(output)
			if target == "" {
				target = "cover.png"
			}
			strategy, err := cover.Lookup(ctx.config.Cover)
			if err != nil {
				return err
			}

			op := observability.Start(ctx.logger, "cover")
			pixels := make([]byte, protocol.CoverLen)
			err = strategy.Synthesize(pixels, ctx.config.Seed, ctx.config.Strength)
			if err = op.Done(0, err); err != nil {
				return err
			}
			img, err := container.Encode(pixels)
			if err != nil {
				return err
			}
			if err := pack.WriteArtifact(target, img); err != nil {
				return err
			}
			return reportWritten(cmd, target)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output path (default cover.png)")
	return cmd
}
