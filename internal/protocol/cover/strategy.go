package cover

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/danmuck/pink072/internal/protocol"
)

// Strategy produces a cover raster. Synthesize writes exactly
// protocol.CoverLen bytes into dst and must be a pure function of
// (seed, strength).
type Strategy interface {
	Synthesize(dst []byte, seed []byte, strength uint8) error
}

const (
	NameBlockShuffle  = "block-shuffle"
	NameGradientBlend = "gradient-blend"
	NamePaletteNoise  = "palette-noise"
)

var ErrUnknownStrategy = errors.New("cover: unknown strategy")

// Default is the strategy wired to the frame codec.
var Default Strategy = BlockShuffle{}

var registry = map[string]Strategy{
	NameBlockShuffle:  BlockShuffle{},
	NameGradientBlend: GradientBlend{},
	NamePaletteNoise:  PaletteNoise{},
}

// Lookup resolves a strategy by name. The empty name selects Default.
func Lookup(name string) (Strategy, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return Default, nil
	}
	s, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (known: %s)", ErrUnknownStrategy, name, strings.Join(Names(), ", "))
	}
	return s, nil
}

// Names lists registered strategy names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Synthesize allocates a cover using the default strategy.
func Synthesize(seed []byte, strength uint8) ([]byte, error) {
	buf := make([]byte, protocol.CoverLen)
	if err := Default.Synthesize(buf, seed, strength); err != nil {
		return nil, err
	}
	return buf, nil
}

// ValidateSeed reports ErrSeedLength unless seed is exactly protocol.SeedLen bytes.
func ValidateSeed(seed []byte) error {
	if len(seed) != protocol.SeedLen {
		return protocol.ErrSeedLength
	}
	return nil
}

func checkArgs(dst, seed []byte) error {
	if err := ValidateSeed(seed); err != nil {
		return err
	}
	if len(dst) < protocol.CoverLen {
		return protocol.ErrBufferTooSmall
	}
	return nil
}
