package runlog

import (
	"fmt"
	"time"
)

// Option configures a Session at creation time.
type Option func(*config) error

type config struct {
	dir        string
	prefix     string
	transcript bool
	dirPerm    uint32
	now        func() time.Time
}

func defaultConfig() *config {
	return &config{
		dir:     "logs",
		prefix:  "runlog",
		dirPerm: 0o755,
		now:     time.Now,
	}
}

// WithDir sets the base log directory. It is created on demand,
// including parents.
func WithDir(dir string) Option {
	return func(c *config) error {
		if dir == "" {
			return fmt.Errorf("log directory must not be empty")
		}
		c.dir = dir
		return nil
	}
}

// WithPrefix sets the log file name prefix.
func WithPrefix(prefix string) Option {
	return func(c *config) error {
		if prefix == "" {
			return fmt.Errorf("prefix must not be empty")
		}
		c.prefix = prefix
		return nil
	}
}

// WithTranscript starts full console transcript capture for the session.
// Everything written to the process stdout and stderr is copied to the
// transcript file until Close.
func WithTranscript() Option {
	return func(c *config) error {
		c.transcript = true
		return nil
	}
}

// WithClock overrides the session clock. Log file paths and record
// timestamps derive from it; tests use it to pin rotation dates.
func WithClock(now func() time.Time) Option {
	return func(c *config) error {
		if now == nil {
			return fmt.Errorf("clock must not be nil")
		}
		c.now = now
		return nil
	}
}

// RecordOption attaches optional data to a single record.
type RecordOption func(*recordConfig)

type recordConfig struct {
	detail   *Detail
	severity string
	caller   *Caller
}

// WithDetail attaches structured failure metadata to an error record.
// Warning records are single-line by contract; RecordWarning ignores
// this option.
func WithDetail(d Detail) RecordOption {
	return func(rc *recordConfig) {
		rc.detail = &d
	}
}

// WithSeverity overrides the severity tag in an error record's text.
// The override is cosmetic: an error record counts toward the error
// counter regardless of the tag it carries. Warning records always
// carry the WARNING tag; RecordWarning ignores this option.
func WithSeverity(severity string) RecordOption {
	return func(rc *recordConfig) {
		rc.severity = severity
	}
}

// WithCaller attaches explicit call-site identity to a record, replacing
// the runtime-derived caller.
func WithCaller(c Caller) RecordOption {
	return func(rc *recordConfig) {
		rc.caller = &c
	}
}
