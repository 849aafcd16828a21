package telemetry

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"strings"
	"testing"
)

func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	orig := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	os.Stdout = w
	defer func() { os.Stdout = orig }()

	fn()

	_ = w.Close()
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		t.Fatalf("read: %v", err)
	}
	return strings.TrimSpace(buf.String())
}

func TestInfoWritesJSONLine(t *testing.T) {
	out := captureStdout(t, func() {
		Info("export.complete", map[string]any{"resume_id": "r1", "pages": 2})
	})

	var payload map[string]any
	if err := json.Unmarshal([]byte(out), &payload); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if payload["msg"] != "export.complete" || payload["level"] != "info" {
		t.Fatalf("unexpected payload %v", payload)
	}
	if payload["resume_id"] != "r1" || payload["pages"] != float64(2) {
		t.Fatalf("missing fields in %v", payload)
	}
	if _, ok := payload["ts"]; !ok {
		t.Fatalf("missing ts in %v", payload)
	}
}

func TestDebugSuppressedByDefault(t *testing.T) {
	out := captureStdout(t, func() {
		Debug("noisy", nil)
	})
	if out != "" {
		t.Fatalf("expected no output, got %q", out)
	}
}
