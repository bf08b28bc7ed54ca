package main

import (
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/danmuck/pink072/internal/config"
	"github.com/danmuck/pink072/internal/logging"
	"github.com/danmuck/pink072/internal/observability"
	"github.com/danmuck/pink072/internal/pack"
	"github.com/danmuck/pink072/internal/protocol/cover"
)

type commandContext struct {
	configPath string
	logLevel   string
	seedHex    string
	strength   int
	coverName  string

	config config.Config
	logger zerolog.Logger
}

// load resolves the config file and flag overrides, then installs the logger.
func (c *commandContext) load(cmd *cobra.Command) error {
	cfg := config.DefaultConfig()
	if path := strings.TrimSpace(c.configPath); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("seed") {
		seed, err := config.ParseSeed(c.seedHex)
		if err != nil {
			return err
		}
		cfg.Seed = seed
	}
	if flags.Changed("strength") {
		if c.strength < 0 || c.strength > 255 {
			return errStrengthRange(c.strength)
		}
		cfg.Strength = uint8(c.strength)
	}
	if flags.Changed("cover") {
		cfg.Cover = c.coverName
	}
	fileLevel := cfg.LogLevel
	if flags.Changed("log-level") {
		cfg.LogLevel = c.logLevel
	}
	if err := config.Validate(cfg); err != nil {
		return err
	}
	c.config = cfg

	// file level < environment < --log-level
	logCfg := logging.DefaultConfig(logging.ProfileRuntime)
	logCfg.Out = cmd.ErrOrStderr()
	if lvl, ok := logging.ParseLevel(fileLevel); ok {
		logCfg.Level = lvl
	}
	logging.ApplyEnvOverrides(&logCfg)
	if lvl, ok := logging.ParseLevel(c.logLevel); ok && flags.Changed("log-level") {
		logCfg.Level = lvl
	}
	c.logger = logging.Apply(logCfg).With().Str("run_id", uuid.NewString()).Logger()
	log.Logger = c.logger
	return nil
}

func (c *commandContext) packer() (*pack.Packer, error) {
	strategy, err := cover.Lookup(c.config.Cover)
	if err != nil {
		return nil, err
	}
	return pack.New(pack.Options{
		Seed:     c.config.Seed,
		Strength: c.config.Strength,
		Cover:    strategy,
		Logger:   c.logger,
	})
}

// flushMetrics writes the textfile when one is configured.
func (c *commandContext) flushMetrics() {
	path := c.config.MetricsFile
	if path == "" {
		return
	}
	if err := observability.WriteTextfile(path); err != nil {
		c.logger.Warn().Err(err).Str("path", path).Msg("metrics textfile write failed")
	}
}
