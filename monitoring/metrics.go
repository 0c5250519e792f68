// Package monitoring provides Prometheus metrics for runlog sessions.
package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// SessionsStarted tracks the total number of sessions created.
	SessionsStarted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "runlog_sessions_total",
		Help: "Total number of logging sessions started",
	})

	// RecordsWritten tracks records by severity.
	RecordsWritten = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "runlog_records_total",
		Help: "Total number of log records written",
	}, []string{"severity"})

	// WriteFailures tracks failed log file appends by target log.
	WriteFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "runlog_write_failures_total",
		Help: "Total number of failed log file appends",
	}, []string{"log"})

	// SweepsRun tracks retention sweeps by status.
	SweepsRun = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "runlog_retention_sweeps_total",
		Help: "Total number of retention sweeps",
	}, []string{"status"})

	// FilesRemoved tracks log files removed by retention sweeps.
	FilesRemoved = promauto.NewCounter(prometheus.CounterOpts{
		Name: "runlog_retention_files_removed_total",
		Help: "Total number of log files removed by retention sweeps",
	})
)
