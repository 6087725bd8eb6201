package happylog

import (
	stderrs "errors"
	"fmt"
	"io"
	"time"

	pkgerrors "github.com/pkg/errors"
)

// Signaler raises notices, warnings and errors on one channel. Each call
// writes exactly one record before it returns; Error additionally hands
// back the *Failure for the caller to propagate.
type Signaler struct {
	svc     *Service
	channel string
}

// Signals returns a Signaler for DefaultChannel.
func (s *Service) Signals() *Signaler {
	return &Signaler{svc: s, channel: DefaultChannel}
}

// On returns a Signaler for another channel.
func (g *Signaler) On(channel string) *Signaler {
	return &Signaler{svc: g.svc, channel: channel}
}

// Channel returns the channel name signals are written to.
func (g *Signaler) Channel() string { return g.channel }

// Notice logs msg at Info. It never disrupts control flow: a failed write
// is reported on the diagnostics logger only.
func (g *Signaler) Notice(msg string, details ...Fields) {
	g.emit(Info, msg, mergeFields(details))
}

// Warn logs msg at Warning and returns normally.
func (g *Signaler) Warn(msg string, details ...Fields) {
	g.emit(Warning, msg, mergeFields(details))
}

func (g *Signaler) emit(sev Severity, msg string, details Fields) {
	ch, err := g.svc.Channel(g.channel)
	if err != nil {
		g.svc.reportSignalError(g.channel, err)
		return
	}
	// Sink failures reach the diagnostics logger through the registry.
	_ = ch.Emit(sev, msg, details)
}

// reportSignalError notes a signal that could not reach its channel.
func (s *Service) reportSignalError(channel string, err error) {
	if s == nil {
		return
	}
	if diag := s.diag.Load(); diag != nil {
		diag.Error().Str("channel", channel).Err(err).Msg("signal not logged")
	}
}

// SignalOption configures Error.
type SignalOption func(*signalConfig)

type signalConfig struct {
	severity Severity
	details  Fields
	cause    error
	origin   *Origin
	skip     int
}

// WithSeverity logs the failure at sev instead of Error.
func WithSeverity(sev Severity) SignalOption {
	return func(c *signalConfig) { c.severity = sev }
}

// WithDetails attaches structured details; they are embedded in the message.
func WithDetails(f Fields) SignalOption {
	return func(c *signalConfig) {
		if c.details == nil {
			c.details = Fields{}
		}
		for k, v := range f {
			c.details[k] = v
		}
	}
}

// WithCause records err as the underlying cause. The cause is annotated
// with the current stack, printed by the %+v verb.
func WithCause(err error) SignalOption {
	return func(c *signalConfig) { c.cause = pkgerrors.WithStack(err) }
}

// WithOrigin uses an explicit location instead of capturing the caller.
func WithOrigin(o Origin) SignalOption {
	return func(c *signalConfig) { c.origin = &o }
}

// WithCallerSkip skips n additional frames when capturing the origin, for
// helpers that wrap Error.
func WithCallerSkip(n int) SignalOption {
	return func(c *signalConfig) { c.skip = n }
}

// Error captures the caller's location, logs
// "Trace:{origin}: {details} {message}" at the configured severity and
// returns the resulting *Failure. The record is written before Error
// returns, so whoever catches the failure sees something already logged.
func (g *Signaler) Error(msg string, opts ...SignalOption) error {
	cfg := signalConfig{severity: Error}
	for _, opt := range opts {
		opt(&cfg)
	}

	var origin Origin
	if cfg.origin != nil {
		origin = *cfg.origin
	} else {
		origin = Caller(1 + cfg.skip)
	}

	f := &Failure{
		severity: cfg.severity,
		message:  msg,
		details:  cfg.details,
		origin:   origin,
		cause:    cfg.cause,
	}
	f.text = composeTrace(origin, traceDetails(cfg.details, cfg.cause), msg)

	ch, err := g.svc.Channel(g.channel)
	if err != nil {
		g.svc.reportSignalError(g.channel, err)
		f.logErr = err
		return f
	}
	f.logErr = ch.EmitRecord(Record{
		Time:     time.Now(),
		Severity: cfg.severity,
		Channel:  g.channel,
		Message:  f.text,
		Origin:   &origin,
	})
	return f
}

func traceDetails(details Fields, cause error) string {
	if cause == nil {
		return renderFields(details)
	}
	all := Fields{}
	for k, v := range details {
		all[k] = v
	}
	all["cause"] = cause
	return renderFields(all)
}

func composeTrace(origin Origin, details, msg string) string {
	if details == emptyString {
		return "Trace:" + origin.String() + ": " + msg
	}
	return "Trace:" + origin.String() + ": " + details + " " + msg
}

// Failure is the error produced by Signaler.Error. By the time a caller
// holds one, its record has already been written.
type Failure struct {
	severity Severity
	message  string
	text     string
	details  Fields
	origin   Origin
	cause    error
	logErr   error
}

// Error returns the composed trace message.
func (f *Failure) Error() string { return f.text }

// Message returns the message passed to Error, without the trace prefix.
func (f *Failure) Message() string { return f.message }

func (f *Failure) Severity() Severity { return f.severity }
func (f *Failure) Origin() Origin     { return f.origin }

// Details returns a copy of the attached details, or nil.
func (f *Failure) Details() Fields {
	if f.details == nil {
		return nil
	}
	return copyFields(f.details)
}

// Logged returns the outcome of writing the failure's record: nil, an
// *EmitError, or the reason the channel was unavailable.
func (f *Failure) Logged() error { return f.logErr }

func (f *Failure) Unwrap() error { return f.cause }

// Cause returns the cause, for github.com/pkg/errors.Cause.
func (f *Failure) Cause() error { return f.cause }

// Format prints the trace message; %+v also prints the cause with its stack.
func (f *Failure) Format(s fmt.State, verb rune) {
	switch verb {
	case 'v':
		_, _ = io.WriteString(s, f.text)
		if s.Flag('+') && f.cause != nil {
			_, _ = fmt.Fprintf(s, "\n%+v", f.cause)
		}
	case 's':
		_, _ = io.WriteString(s, f.text)
	case 'q':
		_, _ = fmt.Fprintf(s, "%q", f.text)
	}
}

// AsFailure finds the first *Failure in err's chain.
func AsFailure(err error) (*Failure, bool) {
	var f *Failure
	if stderrs.As(err, &f) {
		return f, true
	}
	return nil, false
}
