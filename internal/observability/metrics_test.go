package observability

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"

	"github.com/danmuck/pink072/internal/protocol"
)

func TestRegisterMetricsAndRecordersAreSafe(t *testing.T) {
	RegisterMetrics()
	RegisterMetrics()

	before := testutil.ToFloat64(codecOps.WithLabelValues("unwrap", "truncated_frame"))
	RecordOperation("wrap", 128, 2*time.Millisecond, nil)
	RecordOperation("unwrap", 0, time.Millisecond, fmt.Errorf("read: %w", protocol.ErrTruncatedFrame))
	after := testutil.ToFloat64(codecOps.WithLabelValues("unwrap", "truncated_frame"))
	if after != before+1 {
		t.Fatalf("expected truncated_frame counter to increase by 1: %v -> %v", before, after)
	}
}

func TestOperationDoneReturnsErr(t *testing.T) {
	op := Start(zerolog.Nop(), "decode")
	want := errors.New("boom")
	if got := op.Done(0, want); got != want {
		t.Fatalf("Done should pass the error through, got %v", got)
	}
	before := testutil.ToFloat64(codecOps.WithLabelValues("decode", "other"))
	_ = Start(zerolog.Nop(), "decode").Done(0, want)
	if testutil.ToFloat64(codecOps.WithLabelValues("decode", "other")) != before+1 {
		t.Fatalf("unknown errors should count as other")
	}
}

func TestWriteTextfile(t *testing.T) {
	RecordOperation("wrap", 64, time.Millisecond, nil)
	path := filepath.Join(t.TempDir(), "pink072.prom")
	if err := WriteTextfile(path); err != nil {
		t.Fatalf("write textfile: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read textfile: %v", err)
	}
	if !strings.Contains(string(data), "pink072_codec_operations_total") {
		t.Fatalf("textfile missing codec counter:\n%s", data)
	}
}
