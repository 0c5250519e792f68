// Package retention implements the housekeeping policy for session log
// directories. The logging session itself never deletes anything; a
// sweep is a separate task that removes error, debug, and transcript
// files older than the configured age.
package retention

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"runlog/internal/logger"
	"runlog/monitoring"
)

// fileStamp extracts the date stamp from a session log file name,
// e.g. runlog_errors_20250107.log or runlog_transcript_20250107_093015.log.
var fileStamp = regexp.MustCompile(`_(errors|debug|transcript)_(\d{8})(?:_\d{6})?\.log$`)

// Policy describes one log directory to sweep.
type Policy struct {
	Dir    string
	Prefix string
	MaxAge time.Duration

	// now is overridable in tests.
	now func() time.Time
}

// NewPolicy returns a sweep policy for the given directory and prefix.
func NewPolicy(dir, prefix string, maxAge time.Duration) (*Policy, error) {
	if dir == "" {
		return nil, fmt.Errorf("sweep directory is required")
	}
	if maxAge <= 0 {
		return nil, fmt.Errorf("max age must be positive")
	}
	if prefix == "" {
		prefix = "runlog"
	}
	return &Policy{Dir: dir, Prefix: prefix, MaxAge: maxAge, now: time.Now}, nil
}

// Sweep removes session log files older than MaxAge and returns how many
// were deleted. A file's age comes from the date stamp in its name; the
// modification time is the fallback when the name does not parse.
// Removal failures are logged and do not abort the sweep.
func (p *Policy) Sweep() (int, error) {
	pattern := filepath.Join(p.Dir, p.Prefix+"_*.log")
	matches, err := filepath.Glob(pattern)
	if err != nil {
		monitoring.SweepsRun.WithLabelValues("failure").Inc()
		return 0, fmt.Errorf("failed to list log files: %w", err)
	}

	cutoff := p.now().Add(-p.MaxAge)
	removed := 0

	for _, path := range matches {
		stamp, ok := p.stampFor(path)
		if !ok {
			continue
		}
		if !stamp.Before(cutoff) {
			continue
		}
		if err := os.Remove(path); err != nil {
			logger.Log.Warn("Failed to remove {path}: {error}", path, err)
			continue
		}
		removed++
		monitoring.FilesRemoved.Inc()
	}

	monitoring.SweepsRun.WithLabelValues("success").Inc()
	if removed > 0 {
		logger.Log.Info("Retention sweep removed {count} file(s) from {dir}", removed, p.Dir)
	}
	return removed, nil
}

// stampFor resolves the effective timestamp of a log file.
func (p *Policy) stampFor(path string) (time.Time, bool) {
	if m := fileStamp.FindStringSubmatch(filepath.Base(path)); m != nil {
		if t, err := time.Parse("20060102", m[2]); err == nil {
			// A daily log keeps collecting records until the day ends.
			return t.Add(24 * time.Hour), true
		}
	}
	stat, err := os.Stat(path)
	if err != nil {
		return time.Time{}, false
	}
	return stat.ModTime(), true
}
