package httputil

import (
	"bytes"
	"io"
	"strings"
	"testing"
	"time"
)

func TestFastClient(t *testing.T) {
	if FastClient() != FastClient() {
		t.Error("FastClient returned different instances")
	}
	if FastClient().Transport != sharedTransport {
		t.Error("client does not use the pooled transport")
	}
	if got := FastClient().Timeout; got != 5*time.Second {
		t.Errorf("timeout = %v, want 5s", got)
	}
}

func TestReadResponseBody(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		maxSize int64
		wantLen int
	}{
		{"normal read", "hello world", 1024, 11},
		{"truncated read", strings.Repeat("x", 1000), 100, 100},
		{"zero means default cap", "test", 0, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadResponseBody(strings.NewReader(tt.input), tt.maxSize)
			if err != nil {
				t.Fatalf("ReadResponseBody: %v", err)
			}
			if len(got) != tt.wantLen {
				t.Errorf("len = %d, want %d", len(got), tt.wantLen)
			}
		})
	}
}

func TestReadErrorBody(t *testing.T) {
	large := strings.Repeat("error details ", 100000) // well past 1MB
	got, err := ReadErrorBody(strings.NewReader(large))
	if err != nil {
		t.Fatalf("ReadErrorBody: %v", err)
	}
	if len(got) > 1024*1024 {
		t.Errorf("error body not capped at 1MB, got %d bytes", len(got))
	}
}

func TestDrainAndClose(t *testing.T) {
	r := &trackingReader{Reader: bytes.NewReader([]byte("leftover body"))}
	DrainAndClose(io.NopCloser(r))
	if !r.fullyRead {
		t.Error("body not fully drained")
	}

	// Nil body must be a no-op.
	DrainAndClose(nil)
}

type trackingReader struct {
	io.Reader
	fullyRead bool
}

func (r *trackingReader) Read(p []byte) (n int, err error) {
	n, err = r.Reader.Read(p)
	if err == io.EOF {
		r.fullyRead = true
	}
	return
}
