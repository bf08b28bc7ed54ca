package config

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/danmuck/pink072/internal/logging"
	"github.com/danmuck/pink072/internal/protocol"
	"github.com/danmuck/pink072/internal/protocol/cover"
)

// DefaultSeedHex is the seed used when none is configured. Seeds only shape
// the cover texture, so a fixed default is harmless.
const DefaultSeedHex = "123456789abcdef011"

// Config drives pinkctl.
type Config struct {
	Seed            []byte
	Strength        uint8
	Cover           string
	MetricsFile     string
	LogLevel        string
	MaxPayloadBytes uint64
}

type fileConfig struct {
	Seed            string `toml:"seed"`
	Strength        int    `toml:"strength"`
	Cover           string `toml:"cover"`
	MetricsFile     string `toml:"metrics_file"`
	LogLevel        string `toml:"log_level"`
	MaxPayloadBytes int64  `toml:"max_payload_bytes"`
}

func DefaultConfig() Config {
	seed, _ := hex.DecodeString(DefaultSeedHex)
	return Config{
		Seed:            seed,
		Strength:        8,
		Cover:           cover.NameBlockShuffle,
		LogLevel:        "info",
		MaxPayloadBytes: 1 << 30,
	}
}

// Load reads path over DefaultConfig. Only keys present in the file
// override defaults.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("config load failed (%s): %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("config parse failed (%s): unknown key %q", path, undecoded[0].String())
	}

	if meta.IsDefined("seed") {
		seed, err := ParseSeed(raw.Seed)
		if err != nil {
			return Config{}, fmt.Errorf("parse seed: %w", err)
		}
		cfg.Seed = seed
	}
	if meta.IsDefined("strength") {
		if raw.Strength < 0 || raw.Strength > 255 {
			return Config{}, fmt.Errorf("strength out of range: %d", raw.Strength)
		}
		cfg.Strength = uint8(raw.Strength)
	}
	if meta.IsDefined("cover") {
		cfg.Cover = strings.TrimSpace(raw.Cover)
	}
	if meta.IsDefined("metrics_file") {
		cfg.MetricsFile = strings.TrimSpace(raw.MetricsFile)
	}
	if meta.IsDefined("log_level") {
		cfg.LogLevel = strings.TrimSpace(raw.LogLevel)
	}
	if meta.IsDefined("max_payload_bytes") {
		if raw.MaxPayloadBytes <= 0 {
			return Config{}, fmt.Errorf("max_payload_bytes must be positive: %d", raw.MaxPayloadBytes)
		}
		cfg.MaxPayloadBytes = uint64(raw.MaxPayloadBytes)
	}

	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func Validate(cfg Config) error {
	if len(cfg.Seed) != protocol.SeedLen {
		return fmt.Errorf("config seed invalid: %w", protocol.ErrSeedLength)
	}
	if _, err := cover.Lookup(cfg.Cover); err != nil {
		return fmt.Errorf("config cover invalid: %w", err)
	}
	if cfg.LogLevel != "" {
		if _, ok := logging.ParseLevel(cfg.LogLevel); !ok {
			return fmt.Errorf("config log_level invalid: %q", cfg.LogLevel)
		}
	}
	if cfg.MaxPayloadBytes == 0 {
		return fmt.Errorf("config max_payload_bytes must be positive")
	}
	return nil
}

// ParseSeed decodes an 18-character hex seed.
func ParseSeed(raw string) ([]byte, error) {
	raw = strings.TrimPrefix(strings.TrimSpace(raw), "0x")
	seed, err := hex.DecodeString(raw)
	if err != nil {
		return nil, fmt.Errorf("seed is not hex: %w", err)
	}
	if len(seed) != protocol.SeedLen {
		return nil, fmt.Errorf("seed has %d bytes: %w", len(seed), protocol.ErrSeedLength)
	}
	return seed, nil
}
