package transcript

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCaptureRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.log")

	c, err := Start(path, "session-1")
	if err != nil {
		t.Fatalf("Failed to start capture: %v", err)
	}

	fmt.Fprintln(os.Stdout, "stdout line")
	fmt.Fprintln(os.Stderr, "stderr line")

	if err := c.Stop(); err != nil {
		t.Fatalf("Failed to stop capture: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read transcript: %v", err)
	}
	content := string(data)

	for _, want := range []string{
		"Transcript started",
		"[session-1]",
		"stdout line",
		"stderr line",
		"Transcript stopped",
	} {
		if !strings.Contains(content, want) {
			t.Errorf("Transcript missing %q:\n%s", want, content)
		}
	}
}

func TestStopIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.log")

	c, err := Start(path, "session-2")
	if err != nil {
		t.Fatalf("Failed to start capture: %v", err)
	}
	if err := c.Stop(); err != nil {
		t.Fatalf("First stop failed: %v", err)
	}
	if err := c.Stop(); err != nil {
		t.Errorf("Second stop should be a no-op, got %v", err)
	}
}

func TestStartAppendsToExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.log")
	if err := os.WriteFile(path, []byte("previous run\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	c, err := Start(path, "session-3")
	if err != nil {
		t.Fatalf("Failed to start capture: %v", err)
	}
	if err := c.Stop(); err != nil {
		t.Fatalf("Failed to stop capture: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "previous run\n") {
		t.Errorf("Existing content was overwritten:\n%s", data)
	}
}

func TestStartFailsOnBadPath(t *testing.T) {
	if _, err := Start(filepath.Join(t.TempDir(), "missing", "run.log"), "x"); err == nil {
		t.Fatal("Expected an error for a missing parent directory")
	}
}
