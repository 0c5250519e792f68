package runlog

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"runlog/internal/logger"
	"runlog/monitoring"
	"runlog/transcript"
)

// Session owns the state for one script run: the error/warning counters,
// the daily-rotated log file paths, and the optional console transcript.
// Paths are fixed when the session is created and never change. A Session
// is safe for use from multiple goroutines.
type Session struct {
	mu sync.Mutex

	id             string
	errorLog       string
	debugLog       string
	transcriptPath string

	errorCount   int
	warningCount int

	capture *transcript.Capture
	closed  bool

	now        func() time.Time
	appendFile func(path string, data []byte) error
}

// Summary is a read-only snapshot of a session's counters and paths.
type Summary struct {
	SessionID    string `json:"session_id"`
	ErrorCount   int    `json:"error_count"`
	WarningCount int    `json:"warning_count"`
	ErrorLog     string `json:"error_log"`
	DebugLog     string `json:"debug_log"`
	Transcript   string `json:"transcript"`
}

// New creates a logging session. The log directory is created on demand
// and the three file paths are derived from the session clock: error and
// debug logs rotate per calendar day, the transcript path is unique per
// run. With WithTranscript, console capture starts immediately; any
// failure aborts creation with ErrSessionInit rather than returning a
// half-configured session.
func New(opts ...Option) (*Session, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, fmt.Errorf("%w: invalid option: %w", ErrSessionInit, err)
		}
	}

	if err := os.MkdirAll(cfg.dir, os.FileMode(cfg.dirPerm)); err != nil {
		return nil, fmt.Errorf("%w: create log directory %s: %w", ErrSessionInit, cfg.dir, err)
	}

	start := cfg.now()
	day := start.Format("20060102")
	s := &Session{
		id:             uuid.NewString(),
		errorLog:       filepath.Join(cfg.dir, fmt.Sprintf("%s_errors_%s.log", cfg.prefix, day)),
		debugLog:       filepath.Join(cfg.dir, fmt.Sprintf("%s_debug_%s.log", cfg.prefix, day)),
		transcriptPath: filepath.Join(cfg.dir, fmt.Sprintf("%s_transcript_%s.log", cfg.prefix, start.Format("20060102_150405"))),
		now:            cfg.now,
		appendFile:     appendFile,
	}

	if cfg.transcript {
		capture, err := transcript.Start(s.transcriptPath, s.id)
		if err != nil {
			return nil, fmt.Errorf("%w: start transcript: %w", ErrSessionInit, err)
		}
		s.capture = capture
	}

	monitoring.SessionsStarted.Inc()
	return s, nil
}

// ID returns the session's run identifier.
func (s *Session) ID() string {
	return s.id
}

// RecordError appends a multi-line error block to the error log and
// echoes the message through the console error channel. The error
// counter is incremented before the write is attempted, so the visible
// count stays accurate even when the log file is unwritable; a failed
// append is reported and swallowed, never propagated. A severity
// override changes the record text only.
func (s *Session) RecordError(msg string, opts ...RecordOption) error {
	rc := buildRecordConfig("ERROR", opts)
	caller := rc.caller
	if caller == nil {
		c := callSite(2)
		caller = &c
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrSessionFinalized
	}

	s.errorCount++
	monitoring.RecordsWritten.WithLabelValues("error").Inc()

	record := formatErrorRecord(s.now(), rc.severity, *caller, msg, rc.detail)
	s.appendRecord(s.errorLog, "errors", record)

	logger.Log.Error("[{caller}] {message}", caller.String(), msg)
	return nil
}

// RecordWarning appends a single-line warning record to the error log
// (shared with errors), echoes it through the console warning channel,
// and increments the warning counter. Failure semantics match
// RecordError: count first, best-effort write. Of the record options
// only WithCaller applies; warnings are single-line records with a
// fixed WARNING tag, so WithSeverity and WithDetail are ignored.
func (s *Session) RecordWarning(msg string, opts ...RecordOption) error {
	rc := buildRecordConfig("WARNING", opts)
	caller := rc.caller
	if caller == nil {
		c := callSite(2)
		caller = &c
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrSessionFinalized
	}

	s.warningCount++
	monitoring.RecordsWritten.WithLabelValues("warning").Inc()

	s.appendRecord(s.errorLog, "errors", formatWarningRecord(s.now(), *caller, msg))

	logger.Log.Warn("[{caller}] {message}", caller.String(), msg)
	return nil
}

// RecordInfo appends a single-line info record to the debug log. Info
// records carry no call-site identity and touch neither counter; the
// console echo goes to the debug channel, hidden at the default minimum
// level.
func (s *Session) RecordInfo(msg string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrSessionFinalized
	}

	monitoring.RecordsWritten.WithLabelValues("info").Inc()

	s.appendRecord(s.debugLog, "debug", formatInfoRecord(s.now(), msg))

	logger.Log.Debug("{message}", msg)
	return nil
}

// Summary returns a snapshot of the current counters and paths.
func (s *Session) Summary() Summary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.summaryLocked()
}

// Close finalizes the session: the one-line count summary goes to the
// process stdout, transcript capture stops if one is active, and further
// record calls return ErrSessionFinalized. Close never fails; a
// transcript that is already stopped or was never started is not an
// error. The summary line is written before capture stops so it lands in
// the transcript.
func (s *Session) Close() Summary {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.closed {
		s.closed = true
		fmt.Fprintf(os.Stdout, "Session complete: %d error(s), %d warning(s)\n",
			s.errorCount, s.warningCount)
		if s.capture != nil {
			if err := s.capture.Stop(); err != nil {
				logger.Log.Warn("Failed to stop transcript: {error}", err)
			}
		}
	}

	return s.summaryLocked()
}

func (s *Session) summaryLocked() Summary {
	return Summary{
		SessionID:    s.id,
		ErrorCount:   s.errorCount,
		WarningCount: s.warningCount,
		ErrorLog:     s.errorLog,
		DebugLog:     s.debugLog,
		Transcript:   s.transcriptPath,
	}
}

// appendRecord performs the best-effort append. Write failures are
// counted, echoed to the console error channel, and swallowed: a logging
// failure must never abort the work being logged.
func (s *Session) appendRecord(path, label, record string) {
	if err := s.appendFile(path, []byte(record)); err != nil {
		monitoring.WriteFailures.WithLabelValues(label).Inc()
		logger.Log.Error("Failed to append to {path}: {error}", path, err)
	}
}

func buildRecordConfig(severity string, opts []RecordOption) *recordConfig {
	rc := &recordConfig{severity: severity}
	for _, opt := range opts {
		opt(rc)
	}
	return rc
}

func appendFile(path string, data []byte) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("%w: open %s: %w", ErrLogWrite, path, err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return fmt.Errorf("%w: write %s: %w", ErrLogWrite, path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: close %s: %w", ErrLogWrite, path, err)
	}
	return nil
}
