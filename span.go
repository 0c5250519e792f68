package runlog

import (
	"fmt"
	"time"
)

// Span tracks one timed operation within a session. Starting a span
// writes a START info record; End writes COMPLETE with the elapsed time,
// or a FAILED error record carrying the failure's detail.
type Span struct {
	session *Session
	name    string
	start   time.Time
}

// StartSpan begins a timed operation.
func (s *Session) StartSpan(name string) *Span {
	s.RecordInfo(fmt.Sprintf("START: %s", name))
	return &Span{session: s, name: name, start: s.now()}
}

// End finishes the span. A nil err records completion; otherwise the
// failure is recorded with its type, message, and stack trace.
func (sp *Span) End(err error) {
	elapsed := sp.session.now().Sub(sp.start).Seconds()
	if err == nil {
		sp.session.RecordInfo(fmt.Sprintf("COMPLETE: %s (%.2fs)", sp.name, elapsed))
		return
	}
	sp.session.RecordError(
		fmt.Sprintf("FAILED: %s after %.2fs - %v", sp.name, elapsed, err),
		WithDetail(DetailFromError(err)),
	)
}
