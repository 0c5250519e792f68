package logger

import (
	"fmt"
	"os"
	"regexp"

	"github.com/willibrandon/mtlog"
	"github.com/willibrandon/mtlog/core"
)

// Log is the console channel for runlog. Error and warning records are
// echoed through it regardless of file-write success; info records echo
// at debug level and stay hidden at the default minimum level.
var Log core.Logger

func init() {
	Log = mtlog.New(
		mtlog.WithSink(&consoleSink{}),
		mtlog.WithMinimumLevel(core.InformationLevel),
	)
}

// consoleSink writes rendered events to the process stderr. It looks up
// os.Stderr on every emit rather than binding the handle once, so
// console echoes follow an active transcript capture when the session
// swaps the standard streams for its tee pipes.
type consoleSink struct{}

var _ core.LogEventSink = (*consoleSink)(nil)

func (s *consoleSink) Emit(event *core.LogEvent) {
	fmt.Fprintf(os.Stderr, "[%s %s] %s\n",
		event.Timestamp.Format("15:04:05"), levelTag(event.Level), render(event))
}

func (s *consoleSink) Close() error { return nil }

var templateToken = regexp.MustCompile(`\{[^{}]+\}`)

// render substitutes {name} tokens in the message template with their
// properties, leaving unknown tokens as-is.
func render(event *core.LogEvent) string {
	return templateToken.ReplaceAllStringFunc(event.MessageTemplate, func(tok string) string {
		if v, ok := event.Properties[tok[1:len(tok)-1]]; ok {
			return fmt.Sprint(v)
		}
		return tok
	})
}

func levelTag(level core.LogEventLevel) string {
	switch level {
	case core.VerboseLevel:
		return "VRB"
	case core.DebugLevel:
		return "DBG"
	case core.InformationLevel:
		return "INF"
	case core.WarningLevel:
		return "WRN"
	case core.ErrorLevel:
		return "ERR"
	case core.FatalLevel:
		return "FTL"
	default:
		return "INF"
	}
}
