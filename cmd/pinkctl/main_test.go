package main

import (
	"bytes"
	"errors"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/danmuck/pink072/internal/observability"
	"github.com/danmuck/pink072/internal/pack"
	"github.com/danmuck/pink072/internal/protocol"
	"github.com/danmuck/pink072/internal/protocol/frame"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "pink072.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestWrapUnwrapFile(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "note.txt")
	if err := os.WriteFile(in, []byte("Hello, Pink072!"), 0o644); err != nil {
		t.Fatal(err)
	}
	artifact := filepath.Join(dir, "note.pnk")
	out, err := runCLI(t, "wrap", in, "-o", artifact, "--seed", "0x123456789abcdef011")
	if err != nil {
		t.Fatalf("wrap: %v", err)
	}
	if !strings.Contains(out, "Wrote "+artifact) {
		t.Fatalf("unexpected wrap output: %q", out)
	}

	f, err := os.Open(artifact)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if _, err := png.Decode(f); err != nil {
		t.Fatalf("artifact is not a decodable png: %v", err)
	}

	extracted := filepath.Join(dir, "out")
	if _, err := runCLI(t, "unwrap", artifact, "-o", extracted); err != nil {
		t.Fatalf("unwrap: %v", err)
	}
	got, err := os.ReadFile(filepath.Join(extracted, "note.txt"))
	if err != nil || string(got) != "Hello, Pink072!" {
		t.Fatalf("restored: %q %v", got, err)
	}
}

func TestWrapBareRawAndUnwrap(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "blob")
	if err := os.WriteFile(in, []byte{0, 1, 2, 3}, 0o644); err != nil {
		t.Fatal(err)
	}
	bare := filepath.Join(dir, "blob.frame")
	if _, err := runCLI(t, "wrap", in, "-o", bare, "--raw", "--bare"); err != nil {
		t.Fatalf("wrap: %v", err)
	}
	data, err := os.ReadFile(bare)
	if err != nil {
		t.Fatal(err)
	}
	if len(data) != frame.Len(4) || data[protocol.OffsetPayloadType] != pack.TypeRaw {
		t.Fatalf("unexpected bare frame: len=%d type=%d", len(data), data[protocol.OffsetPayloadType])
	}

	extracted := filepath.Join(dir, "out")
	out, err := runCLI(t, "unwrap", bare, "-o", extracted)
	if err != nil {
		t.Fatalf("unwrap: %v", err)
	}
	if !strings.Contains(out, pack.RawFileName) {
		t.Fatalf("unexpected unwrap output: %q", out)
	}
	got, _ := os.ReadFile(filepath.Join(extracted, pack.RawFileName))
	if !bytes.Equal(got, []byte{0, 1, 2, 3}) {
		t.Fatalf("restored: %v", got)
	}
}

func TestUnwrapBareFrameHonorsPayloadLimit(t *testing.T) {
	dir := t.TempDir()
	cfg := writeConfig(t, dir, "max_payload_bytes = 4\n")
	in := filepath.Join(dir, "blob")
	if err := os.WriteFile(in, make([]byte, 10), 0o644); err != nil {
		t.Fatal(err)
	}
	bare := filepath.Join(dir, "blob.frame")
	if _, err := runCLI(t, "wrap", in, "-o", bare, "--raw", "--bare"); err != nil {
		t.Fatalf("wrap: %v", err)
	}
	_, err := runCLI(t, "unwrap", bare, "-o", filepath.Join(dir, "out"), "--config", cfg)
	if !errors.Is(err, frame.ErrPayloadTooLarge) || exitCode(err) != 9 {
		t.Fatalf("expected ErrPayloadTooLarge, got %v", err)
	}
}

func TestInspectReportsHeader(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "a.txt")
	if err := os.WriteFile(in, []byte("abc"), 0o644); err != nil {
		t.Fatal(err)
	}
	artifact := filepath.Join(dir, "a.pnk")
	if _, err := runCLI(t, "wrap", in, "-o", artifact, "--strength", "40"); err != nil {
		t.Fatalf("wrap: %v", err)
	}
	out, err := runCLI(t, "inspect", artifact)
	if err != nil {
		t.Fatalf("inspect: %v", err)
	}
	for _, want := range []string{"pnk", "file", "12", "16"} {
		if !strings.Contains(out, want) {
			t.Fatalf("inspect output missing %q:\n%s", want, out)
		}
	}
}

func TestInspectTruncatedFrame(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "blob")
	if err := os.WriteFile(in, []byte("0123456789"), 0o644); err != nil {
		t.Fatal(err)
	}
	bare := filepath.Join(dir, "blob.frame")
	if _, err := runCLI(t, "wrap", in, "-o", bare, "--raw", "--bare"); err != nil {
		t.Fatalf("wrap: %v", err)
	}
	data, _ := os.ReadFile(bare)
	if err := os.WriteFile(bare, data[:len(data)-3], 0o644); err != nil {
		t.Fatal(err)
	}
	out, err := runCLI(t, "inspect", bare)
	if !errors.Is(err, protocol.ErrTruncatedFrame) || exitCode(err) != 7 {
		t.Fatalf("expected ErrTruncatedFrame, got %v", err)
	}
	if !strings.Contains(out, "bare frame") {
		t.Fatalf("header not rendered:\n%s", out)
	}
}

func TestCoverCommandWritesPNG(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "cover.png")
	if _, err := runCLI(t, "cover", "-o", target, "--cover", "gradient-blend"); err != nil {
		t.Fatalf("cover: %v", err)
	}
	f, err := os.Open(target)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != protocol.CoverWidth || b.Dy() != protocol.CoverHeight {
		t.Fatalf("unexpected bounds: %v", b)
	}
}

func TestConfigInitAndValidate(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "conf", "pink072.toml")
	if _, err := runCLI(t, "config", "init", "-p", path); err != nil {
		t.Fatalf("init: %v", err)
	}
	if _, err := runCLI(t, "config", "init", "-p", path); err == nil {
		t.Fatalf("expected init to refuse overwrite")
	}
	out, err := runCLI(t, "config", "validate", path)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if !strings.Contains(out, "Configuration valid") || !strings.Contains(out, "123456789abcdef011") {
		t.Fatalf("unexpected validate output:\n%s", out)
	}
}

func TestConfigRejectsBadSeedFlag(t *testing.T) {
	_, err := runCLI(t, "cover", "-o", filepath.Join(t.TempDir(), "c.png"), "--seed", "abcd")
	if !errors.Is(err, protocol.ErrSeedLength) || exitCode(err) != 3 {
		t.Fatalf("expected ErrSeedLength, got %v", err)
	}
}

func TestMetricsTextfileWritten(t *testing.T) {
	dir := t.TempDir()
	metrics := filepath.Join(dir, "pink072.prom")
	cfg := writeConfig(t, dir, fmt.Sprintf("metrics_file = %q\n", metrics))
	if _, err := runCLI(t, "cover", "-o", filepath.Join(dir, "c.png"), "--config", cfg); err != nil {
		t.Fatalf("cover: %v", err)
	}
	data, err := os.ReadFile(metrics)
	if err != nil {
		t.Fatalf("read metrics: %v", err)
	}
	if !strings.Contains(string(data), "pink072_codec_operations_total") {
		t.Fatalf("metrics missing codec counter:\n%s", data)
	}
}

func operationCount(t *testing.T, op, result string) float64 {
	t.Helper()
	families, err := observability.Registry.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	for _, mf := range families {
		if mf.GetName() != "pink072_codec_operations_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			labels := map[string]string{}
			for _, lp := range m.GetLabel() {
				labels[lp.GetName()] = lp.GetValue()
			}
			if labels["op"] == op && labels["result"] == result {
				return m.GetCounter().GetValue()
			}
		}
	}
	return 0
}

func TestUnwrapBareFrameRecordsOperation(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "blob")
	if err := os.WriteFile(in, []byte("abc"), 0o644); err != nil {
		t.Fatal(err)
	}
	bare := filepath.Join(dir, "blob.frame")
	if _, err := runCLI(t, "wrap", in, "-o", bare, "--raw", "--bare"); err != nil {
		t.Fatalf("wrap: %v", err)
	}
	before := operationCount(t, "unpack", "ok")
	if _, err := runCLI(t, "unwrap", bare, "-o", filepath.Join(dir, "out")); err != nil {
		t.Fatalf("unwrap: %v", err)
	}
	if after := operationCount(t, "unpack", "ok"); after != before+1 {
		t.Fatalf("unpack ok count: before %v after %v", before, after)
	}
}

func TestRenderKeyValue(t *testing.T) {
	out := renderKeyValue("Field", "Value", [][2]string{{"strength", "12"}, {"payload", "ok"}}, true)
	for _, want := range []string{"field", "value", "strength", "12", "payload", "ok"} {
		if !strings.Contains(strings.ToLower(out), want) {
			t.Fatalf("table missing %q:\n%s", want, out)
		}
	}
}

func TestExitCode(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{nil, 0},
		{fmt.Errorf("x: %w", protocol.ErrTruncatedFrame), 7},
		{protocol.ErrInvalidFormat, 8},
		{pack.ErrLocked, 11},
		{pack.ErrUnexpectedType, 10},
		{errors.New("boom"), 1},
	}
	for _, tc := range cases {
		if got := exitCode(tc.err); got != tc.want {
			t.Fatalf("exitCode(%v): got %d want %d", tc.err, got, tc.want)
		}
	}
}
