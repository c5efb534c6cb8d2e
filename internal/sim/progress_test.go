package sim

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestProgressLog(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	r := New(fallingEngine())
	r.AddObserver(NewProgressLog(log, 25))
	if _, err := r.Run(context.Background(), Config{Frames: 25, Substeps: 2, Width: 200, Height: 200}); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 13 {
		t.Fatalf("expected 13 progress lines, got %d:\n%s", len(lines), buf.String())
	}
	if !strings.Contains(lines[0], "frame=2 ") || !strings.Contains(lines[0], "of=25") {
		t.Errorf("unexpected first line %q", lines[0])
	}
	if !strings.Contains(lines[len(lines)-1], "frame=25 ") {
		t.Errorf("last frame not logged: %q", lines[len(lines)-1])
	}
}
