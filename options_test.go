package runlog

import (
	"errors"
	"os"
	"testing"
)

func TestInvalidOptions(t *testing.T) {
	cases := []struct {
		name string
		opt  Option
	}{
		{"empty dir", WithDir("")},
		{"empty prefix", WithPrefix("")},
		{"nil clock", WithClock(nil)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(tc.opt)
			if err == nil {
				t.Fatal("Expected an error")
			}
			if !errors.Is(err, ErrSessionInit) {
				t.Errorf("Expected ErrSessionInit, got %v", err)
			}
		})
	}
}

func TestInitFailureOnUnwritableDir(t *testing.T) {
	// A file where the directory should go makes MkdirAll fail.
	tmp := t.TempDir() + "/blocked"
	if err := os.WriteFile(tmp, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := New(WithDir(tmp + "/logs"))
	if err == nil {
		t.Fatal("Expected an error")
	}
	if !errors.Is(err, ErrSessionInit) {
		t.Errorf("Expected ErrSessionInit, got %v", err)
	}
}
