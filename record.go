package runlog

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
	"time"
)

// timestampLayout is the record timestamp format, millisecond precision.
const timestampLayout = "2006-01-02 15:04:05.000"

// separator terminates every error block in the error log.
var separator = strings.Repeat("=", 80)

// Caller identifies the call site that produced a record.
type Caller struct {
	Function string
	Line     int
}

func (c Caller) String() string {
	return fmt.Sprintf("%s:%d", c.Function, c.Line)
}

// Here returns the Caller for the line it is invoked on. It is the
// explicit way to attach call-site identity to a record:
//
//	s.RecordError("copy failed", runlog.WithCaller(runlog.Here()))
func Here() Caller {
	return callSite(2)
}

// callSite resolves a caller skip frames up the stack. Records carry an
// explicit Caller when the caller supplies one; this is the fallback so
// the record format is always populated.
func callSite(skip int) Caller {
	pc, _, line, ok := runtime.Caller(skip)
	if !ok {
		return Caller{Function: "unknown"}
	}
	fn := runtime.FuncForPC(pc)
	if fn == nil {
		return Caller{Function: "unknown", Line: line}
	}
	name := fn.Name()
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	return Caller{Function: name, Line: line}
}

// Detail carries structured failure metadata attached to an error record:
// the failure's type, message, stack trace, and source location.
type Detail struct {
	Type       string
	Message    string
	StackTrace string
	File       string
	Line       int
	Column     int
}

// DetailFromError builds a Detail from a live error, capturing the
// dynamic type, message, and the current stack trace.
func DetailFromError(err error) Detail {
	return Detail{
		Type:       fmt.Sprintf("%T", err),
		Message:    err.Error(),
		StackTrace: string(debug.Stack()),
	}
}

// formatErrorRecord renders the multi-line error block. The detail
// section and trailing separator are omitted when detail is nil.
func formatErrorRecord(ts time.Time, severity string, caller Caller, msg string, detail *Detail) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] [%s] [%s]\n", ts.Format(timestampLayout), severity, caller)
	fmt.Fprintf(&b, "Message: %s\n", msg)

	if detail != nil {
		fmt.Fprintf(&b, "\nException: %s\n", detail.Type)
		fmt.Fprintf(&b, "Details: %s\n", detail.Message)
		fmt.Fprintf(&b, "StackTrace:\n%s\n", strings.TrimRight(detail.StackTrace, "\n"))
		b.WriteString("\nInvocationInfo:\n")
		fmt.Fprintf(&b, "  File: %s\n", detail.File)
		fmt.Fprintf(&b, "  Line: %d\n", detail.Line)
		fmt.Fprintf(&b, "  Column: %d\n", detail.Column)
		b.WriteString(separator)
		b.WriteString("\n")
	}
	return b.String()
}

// formatWarningRecord renders the single-line warning record.
func formatWarningRecord(ts time.Time, caller Caller, msg string) string {
	return fmt.Sprintf("[%s] [WARNING] [%s] %s\n", ts.Format(timestampLayout), caller, msg)
}

// formatInfoRecord renders the single-line info record. Info records do
// not carry call-site identity.
func formatInfoRecord(ts time.Time, msg string) string {
	return fmt.Sprintf("[%s] [INFO] %s\n", ts.Format(timestampLayout), msg)
}
