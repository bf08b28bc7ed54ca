package config

import (
	"fmt"
	"os"
)

func Template() string {
	return defaultTemplate
}

func WriteTemplate(path string, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config already exists: %s", path)
		}
	}
	return os.WriteFile(path, []byte(defaultTemplate), 0o600)
}

const defaultTemplate = `# 9-byte cover seed, hex encoded
seed = "123456789abcdef011"

# cover jitter strength, clamped to 0-12
strength = 8

# block-shuffle | gradient-blend | palette-noise
cover = "block-shuffle"

log_level = "info"

# refuse bare frames declaring more than this many payload bytes
max_payload_bytes = 1073741824

# node_exporter textfile output; empty disables
metrics_file = ""
`
