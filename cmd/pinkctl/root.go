package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/danmuck/pink072/internal/protocol/cover"
)

func newRootCommand() *cobra.Command {
	ctx := &commandContext{}

	rootCmd := &cobra.Command{
		Use:           "pinkctl",
		Short:         "Wrap payloads in PINK-072 frames and PNG polyglots",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Annotations["skipConfigLoad"] == "true" {
				return nil
			}
			return ctx.load(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			ctx.flushMetrics()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&ctx.configPath, "config", "c", "", "Configuration file path")
	flags.StringVar(&ctx.logLevel, "log-level", "", "Log level (trace|debug|info|warn|error)")
	flags.StringVar(&ctx.seedHex, "seed", "", "Cover seed as 18 hex characters")
	flags.IntVar(&ctx.strength, "strength", 8, "Cover jitter strength (clamped to 12)")
	flags.StringVar(&ctx.coverName, "cover", cover.NameBlockShuffle, "Cover strategy ("+strings.Join(cover.Names(), "|")+")")

	rootCmd.AddCommand(newWrapCommand(ctx))
	rootCmd.AddCommand(newUnwrapCommand(ctx))
	rootCmd.AddCommand(newInspectCommand(ctx))
	rootCmd.AddCommand(newCoverCommand(ctx))
	rootCmd.AddCommand(newConfigCommand())

	return rootCmd
}

func errStrengthRange(v int) error {
	return fmt.Errorf("strength out of range: %d", v)
}
