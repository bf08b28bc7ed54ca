package pack

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/rs/zerolog"

	"github.com/danmuck/pink072/internal/observability"
	"github.com/danmuck/pink072/internal/protocol/container"
	"github.com/danmuck/pink072/internal/protocol/cover"
	"github.com/danmuck/pink072/internal/protocol/frame"
)

var ErrLocked = errors.New("pack: output is locked by another writer")

// Options configures a Packer. A nil Cover selects cover.Default.
type Options struct {
	Seed     []byte
	Strength uint8
	Cover    cover.Strategy
	Logger   zerolog.Logger
}

// Packer builds and reads PNK artifacts with one seed and cover strategy.
type Packer struct {
	codec    *frame.Codec
	seed     []byte
	strength uint8
	logger   zerolog.Logger
}

func New(opts Options) (*Packer, error) {
	if err := cover.ValidateSeed(opts.Seed); err != nil {
		return nil, err
	}
	return &Packer{
		codec:    frame.NewCodec(opts.Cover),
		seed:     append([]byte(nil), opts.Seed...),
		strength: opts.Strength,
		logger:   opts.Logger,
	}, nil
}

// Pack wraps payload into a frame and returns the PNK artifact.
func (p *Packer) Pack(payload []byte, payloadType uint8) ([]byte, error) {
	op := observability.Start(p.logger, "pack")
	f, err := p.codec.Wrap(payload, payloadType, p.seed, p.strength)
	if err != nil {
		return nil, op.Done(len(payload), err)
	}
	out, err := container.EncodePNK(f)
	if err != nil {
		return nil, op.Done(len(payload), err)
	}
	return out, op.Done(len(payload), nil)
}

// WrapFrame returns the bare frame for payload without the PNG prefix.
func (p *Packer) WrapFrame(payload []byte, payloadType uint8) ([]byte, error) {
	op := observability.Start(p.logger, "wrap")
	f, err := p.codec.Wrap(payload, payloadType, p.seed, p.strength)
	return f, op.Done(len(payload), err)
}

// Unpack accepts a PNK artifact or a bare frame and returns its payload.
func (p *Packer) Unpack(data []byte) (uint8, []byte, error) {
	op := observability.Start(p.logger, "unpack")
	f := data
	if container.IsPNK(data) {
		var err error
		if f, err = container.DecodePNK(data); err != nil {
			return 0, nil, op.Done(0, err)
		}
	}
	typ, payload, err := frame.Unwrap(f)
	if err != nil {
		return 0, nil, op.Done(0, err)
	}
	return typ, payload, op.Done(len(payload), nil)
}

func (p *Packer) EncodeRaw(data []byte, outPath string) error {
	return p.encode(data, TypeRaw, outPath)
}

func (p *Packer) EncodeFile(inPath, outPath string) error {
	data, err := os.ReadFile(inPath)
	if err != nil {
		return err
	}
	payload, err := BuildFilePayload(filepath.Base(inPath), data)
	if err != nil {
		return err
	}
	return p.encode(payload, TypeFile, outPath)
}

func (p *Packer) EncodeDir(inPath, outPath string) error {
	payload, err := ArchiveDir(inPath)
	if err != nil {
		return err
	}
	return p.encode(payload, TypeArchive, outPath)
}

// EncodeAuto picks EncodeDir or EncodeFile from the input's type.
func (p *Packer) EncodeAuto(inPath, outPath string) error {
	info, err := os.Stat(inPath)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return p.EncodeDir(inPath, outPath)
	}
	return p.EncodeFile(inPath, outPath)
}

func (p *Packer) DecodeRaw(inPath string) ([]byte, error) {
	typ, payload, err := p.read(inPath)
	if err != nil {
		return nil, err
	}
	if err := expectType(typ, TypeRaw); err != nil {
		return nil, err
	}
	return payload, nil
}

func (p *Packer) DecodeFile(inPath, outDir string) (string, error) {
	typ, payload, err := p.read(inPath)
	if err != nil {
		return "", err
	}
	if err := expectType(typ, TypeFile); err != nil {
		return "", err
	}
	return writeFilePayload(payload, outDir)
}

func (p *Packer) DecodeDir(inPath, outDir string) ([]string, error) {
	typ, payload, err := p.read(inPath)
	if err != nil {
		return nil, err
	}
	if err := expectType(typ, TypeArchive); err != nil {
		return nil, err
	}
	return ExtractArchive(payload, outDir)
}

// DecodeAuto extracts whatever the artifact carries into outDir and returns
// the names written.
func (p *Packer) DecodeAuto(inPath, outDir string) ([]string, error) {
	typ, payload, err := p.read(inPath)
	if err != nil {
		return nil, err
	}
	return Extract(typ, payload, outDir)
}

// Extract writes a decoded payload into outDir according to its type.
func Extract(payloadType uint8, payload []byte, outDir string) ([]string, error) {
	switch payloadType {
	case TypeRaw:
		if err := os.MkdirAll(outDir, 0o755); err != nil {
			return nil, err
		}
		if err := os.WriteFile(filepath.Join(outDir, RawFileName), payload, 0o644); err != nil {
			return nil, err
		}
		return []string{RawFileName}, nil
	case TypeFile:
		name, err := writeFilePayload(payload, outDir)
		if err != nil {
			return nil, err
		}
		return []string{name}, nil
	case TypeArchive:
		return ExtractArchive(payload, outDir)
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnexpectedType, payloadType)
	}
}

func (p *Packer) encode(payload []byte, payloadType uint8, outPath string) error {
	artifact, err := p.Pack(payload, payloadType)
	if err != nil {
		return fmt.Errorf("pack %s: %w", outPath, err)
	}
	if err := WriteArtifact(outPath, artifact); err != nil {
		return err
	}
	p.logger.Info().
		Str("path", outPath).
		Str("payload_type", TypeName(payloadType)).
		Int("payload_bytes", len(payload)).
		Int("artifact_bytes", len(artifact)).
		Msg("wrote artifact")
	return nil
}

func (p *Packer) read(inPath string) (uint8, []byte, error) {
	data, err := os.ReadFile(inPath)
	if err != nil {
		return 0, nil, err
	}
	typ, payload, err := p.Unpack(data)
	if err != nil {
		return 0, nil, fmt.Errorf("unpack %s: %w", inPath, err)
	}
	p.logger.Debug().
		Str("path", inPath).
		Str("payload_type", TypeName(typ)).
		Int("payload_bytes", len(payload)).
		Msg("read artifact")
	return typ, payload, nil
}

func expectType(got, want uint8) error {
	if got != want {
		return fmt.Errorf("%w: expected %s, got %s", ErrUnexpectedType, TypeName(want), TypeName(got))
	}
	return nil
}

func writeFilePayload(payload []byte, outDir string) (string, error) {
	name, data, err := ParseFilePayload(payload)
	if err != nil {
		return "", err
	}
	if err := safeBaseName(name); err != nil {
		return "", err
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(filepath.Join(outDir, name), data, 0o644); err != nil {
		return "", err
	}
	return name, nil
}

// WriteArtifact atomically replaces path with data while holding an
// exclusive lock on path+".lock".
func WriteArtifact(path string, data []byte) error {
	lock := flock.New(path + ".lock")
	ok, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w: %s", ErrLocked, path)
	}
	defer func() {
		_ = lock.Unlock()
		_ = os.Remove(lock.Path())
	}()

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return nil
}
