package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/danmuck/pink072/internal/config"
	"github.com/danmuck/pink072/internal/protocol/cover"
)

const defaultConfigFile = "pink072.toml"

func newConfigCommand() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration utilities",
	}

	configCmd.AddCommand(newConfigInitCommand())
	configCmd.AddCommand(newConfigValidateCommand())

	return configCmd
}

func newConfigInitCommand() *cobra.Command {
	var targetPath string
	var overwrite bool

	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Create a sample configuration file",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			target := strings.TrimSpace(targetPath)
			if target == "" {
				target = defaultConfigFile
			}
			dir := filepath.Dir(target)
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("create config directory %q: %w", dir, err)
			}
			if err := config.WriteTemplate(target, overwrite); err != nil {
				return fmt.Errorf("create sample config: %w (use --overwrite to replace it)", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote sample configuration to %s\n", target)
			return nil
		},
	}

	cmd.Flags().StringVarP(&targetPath, "path", "p", "", "Destination for the configuration file")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Overwrite existing configuration if present")
	return cmd
}

func newConfigValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "validate <path>",
		Short:       "Validate a configuration file",
		Args:        cobra.ExactArgs(1),
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(args[0])
			if err != nil {
				return err
			}
			rows := [][2]string{
				{"seed", fmt.Sprintf("%x", cfg.Seed)},
				{"strength", fmt.Sprintf("%d", cfg.Strength)},
				{"cover", coverLabel(cfg.Cover)},
				{"log level", cfg.LogLevel},
				{"max payload bytes", fmt.Sprintf("%d", cfg.MaxPayloadBytes)},
				{"metrics file", cfg.MetricsFile},
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderKeyValue("Key", "Value", rows, false))
			fmt.Fprintln(out, "Configuration valid")
			return nil
		},
	}
}

func coverLabel(name string) string {
	if name == "" {
		return cover.NameBlockShuffle + " (default)"
	}
	return name
}
