// Package runlog provides session-scoped logging for automation scripts:
// daily-rotated error and debug log files, optional full console transcript
// capture, and a count summary at the end of a run.
package runlog

import "errors"

var (
	// ErrSessionInit indicates the session could not be initialized
	// (log directory creation or transcript start failed).
	ErrSessionInit = errors.New("session init failed")

	// ErrSessionFinalized is returned when recording on a closed session.
	ErrSessionFinalized = errors.New("session is finalized")

	// ErrLogWrite indicates an append to a log file failed.
	ErrLogWrite = errors.New("log write failed")
)
