package happylog

import (
	"fmt"
	"time"
)

// LogEvent builds the details of one record field by field. Nothing is
// written until Msg, Msgf or Send is called; each returns the emit error.
// An event below the channel threshold is a no-op.
//
// Example: ch.InfoWith().Str("user_id", id).Int("count", 5).Msg("user processed")
type LogEvent interface {
	Str(key, val string) LogEvent
	Strs(key string, vals []string) LogEvent
	Int(key string, val int) LogEvent
	Int64(key string, val int64) LogEvent
	Uint64(key string, val uint64) LogEvent
	Float64(key string, val float64) LogEvent
	Bool(key string, val bool) LogEvent
	Time(key string, val time.Time) LogEvent
	Dur(key string, val time.Duration) LogEvent
	Err(err error) LogEvent
	AnErr(key string, err error) LogEvent
	Interface(key string, val any) LogEvent
	Fields(f Fields) LogEvent
	Msg(msg string) error
	Msgf(format string, v ...any) error
	Send() error
}

// logEvent accumulates fields for a channel. A nil channel makes it a no-op.
type logEvent struct {
	channel  *Channel
	severity Severity
	fields   Fields
}

func newLogEvent(c *Channel, sev Severity) LogEvent {
	if c == nil || !sev.Enabled(c.min) {
		return &logEvent{}
	}
	return &logEvent{channel: c, severity: sev}
}

func (e *logEvent) set(key string, val any) LogEvent {
	if e.channel == nil {
		return e
	}
	if e.fields == nil {
		e.fields = Fields{}
	}
	e.fields[key] = val
	return e
}

func (e *logEvent) Str(key, val string) LogEvent             { return e.set(key, val) }
func (e *logEvent) Strs(key string, vals []string) LogEvent  { return e.set(key, vals) }
func (e *logEvent) Int(key string, val int) LogEvent         { return e.set(key, val) }
func (e *logEvent) Int64(key string, val int64) LogEvent     { return e.set(key, val) }
func (e *logEvent) Uint64(key string, val uint64) LogEvent   { return e.set(key, val) }
func (e *logEvent) Float64(key string, val float64) LogEvent { return e.set(key, val) }
func (e *logEvent) Bool(key string, val bool) LogEvent       { return e.set(key, val) }
func (e *logEvent) Dur(key string, val time.Duration) LogEvent {
	return e.set(key, val)
}
func (e *logEvent) Interface(key string, val any) LogEvent { return e.set(key, val) }

func (e *logEvent) Time(key string, val time.Time) LogEvent {
	return e.set(key, val.Format(TimestampLayout))
}

// Err records err under "error". The rendered value is the full cause chain.
func (e *logEvent) Err(err error) LogEvent {
	return e.AnErr("error", err)
}

func (e *logEvent) AnErr(key string, err error) LogEvent {
	if err == nil {
		return e
	}
	return e.set(key, err)
}

func (e *logEvent) Fields(f Fields) LogEvent {
	for k, v := range f {
		e.set(k, v)
	}
	return e
}

func (e *logEvent) Msg(msg string) error {
	if e.channel == nil {
		return nil
	}
	return e.channel.Emit(e.severity, msg, e.fields)
}

func (e *logEvent) Msgf(format string, v ...any) error {
	if e.channel == nil {
		return nil
	}
	return e.Msg(fmt.Sprintf(format, v...))
}

func (e *logEvent) Send() error {
	return e.Msg(emptyString)
}

// DebugWith returns a LogEvent for structured Debug-level logging.
func (c *Channel) DebugWith() LogEvent { return newLogEvent(c, Debug) }

// InfoWith returns a LogEvent for structured Info-level logging.
func (c *Channel) InfoWith() LogEvent { return newLogEvent(c, Info) }

// WarnWith returns a LogEvent for structured Warning-level logging.
func (c *Channel) WarnWith() LogEvent { return newLogEvent(c, Warning) }

// ErrorWith returns a LogEvent for structured Error-level logging.
// Example: ch.ErrorWith().Err(err).Str("operation", "database").Msg("query failed")
func (c *Channel) ErrorWith() LogEvent { return newLogEvent(c, Error) }

// CriticalWith returns a LogEvent for structured Critical-level logging.
func (c *Channel) CriticalWith() LogEvent { return newLogEvent(c, Critical) }
