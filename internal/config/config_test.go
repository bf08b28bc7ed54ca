package config

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/danmuck/pink072/internal/protocol"
	"github.com/danmuck/pink072/internal/protocol/cover"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pink072.toml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadTemplateMatchesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pink072.toml")
	if err := WriteTemplate(path, false); err != nil {
		t.Fatalf("write template: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	def := DefaultConfig()
	if !bytes.Equal(cfg.Seed, def.Seed) || cfg.Strength != def.Strength || cfg.Cover != def.Cover {
		t.Fatalf("template differs from defaults: %+v", cfg)
	}
	if cfg.MaxPayloadBytes != 1<<30 || cfg.MetricsFile != "" || cfg.LogLevel != "info" {
		t.Fatalf("unexpected template values: %+v", cfg)
	}
	if err := WriteTemplate(path, false); err == nil {
		t.Fatalf("expected refusal to overwrite")
	}
	if err := WriteTemplate(path, true); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
}

func TestLoadOverridesOnlyDefinedKeys(t *testing.T) {
	path := writeConfig(t, `
seed = "0x000102030405060708"
cover = "palette-noise"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !bytes.Equal(cfg.Seed, []byte{0, 1, 2, 3, 4, 5, 6, 7, 8}) {
		t.Fatalf("unexpected seed: %x", cfg.Seed)
	}
	if cfg.Cover != cover.NamePaletteNoise {
		t.Fatalf("unexpected cover: %q", cfg.Cover)
	}
	if cfg.Strength != 8 {
		t.Fatalf("strength should keep default, got %d", cfg.Strength)
	}
}

func TestLoadZeroStrengthIsHonored(t *testing.T) {
	cfg, err := Load(writeConfig(t, "strength = 0\n"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Strength != 0 {
		t.Fatalf("explicit zero strength overridden: %d", cfg.Strength)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	cases := map[string]string{
		"short seed":  `seed = "0102"`,
		"not hex":     `seed = "zz3456789abcdef011"`,
		"strength":    `strength = 300`,
		"cover":       `cover = "sparkle"`,
		"log level":   `log_level = "loud"`,
		"unknown key": `colour = "pink"`,
		"max payload": `max_payload_bytes = 0`,
		"bad toml":    `seed = `,
	}
	for name, body := range cases {
		if _, err := Load(writeConfig(t, body)); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestParseSeed(t *testing.T) {
	seed, err := ParseSeed(DefaultSeedHex)
	if err != nil {
		t.Fatalf("parse seed: %v", err)
	}
	if !bytes.Equal(seed, []byte{0x12, 0x34, 0x56, 0x78, 0x9A, 0xBC, 0xDE, 0xF0, 0x11}) {
		t.Fatalf("unexpected seed: %x", seed)
	}
	if _, err := ParseSeed("1234"); !errors.Is(err, protocol.ErrSeedLength) {
		t.Fatalf("expected ErrSeedLength, got %v", err)
	}
}
