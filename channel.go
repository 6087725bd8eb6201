package happylog

import (
	stderrs "errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/atomic"
)

// EmitError aggregates the sink failures of a single emit. Every sink was
// attempted before it was returned.
type EmitError struct {
	Channel  string
	Failures []*SinkIOError
}

func (e *EmitError) Error() string {
	msgs := make([]string, 0, len(e.Failures))
	for _, f := range e.Failures {
		msgs = append(msgs, f.Error())
	}
	return fmt.Sprintf("happylog: channel %q: %d sink(s) failed: %s",
		e.Channel, len(e.Failures), strings.Join(msgs, "; "))
}

// Unwrap exposes every SinkIOError to errors.Is and errors.As.
func (e *EmitError) Unwrap() []error {
	errs := make([]error, 0, len(e.Failures))
	for _, f := range e.Failures {
		errs = append(errs, f)
	}
	return errs
}

// Channel is a named set of sinks sharing one threshold. Emits on the same
// channel are serialized, so lines from concurrent callers never interleave.
// Channels are created by a Registry and live as long as it does.
type Channel struct {
	name      string
	min       Severity
	sinks     []Sink
	onFailure func(*EmitError)

	mu       sync.Mutex
	emitted  atomic.Int64
	failures atomic.Int64
}

func newChannel(name string, min Severity, sinks []Sink, onFailure func(*EmitError)) *Channel {
	return &Channel{
		name:      name,
		min:       min,
		sinks:     sinks,
		onFailure: onFailure,
	}
}

// Name returns the channel name.
func (c *Channel) Name() string { return c.name }

// MinSeverity returns the channel-wide threshold applied before any sink.
func (c *Channel) MinSeverity() Severity { return c.min }

// Sinks returns the attached sinks in attach order.
func (c *Channel) Sinks() []Sink {
	out := make([]Sink, len(c.sinks))
	copy(out, c.sinks)
	return out
}

// Emitted returns how many records passed the channel threshold.
func (c *Channel) Emitted() int64 { return c.emitted.Load() }

// Failures returns how many emits reported at least one sink failure.
func (c *Channel) Failures() int64 { return c.failures.Load() }

// Emit builds a record stamped with the current time and writes it to every
// sink. See EmitRecord for the failure policy.
func (c *Channel) Emit(sev Severity, msg string, details ...Fields) error {
	if !sev.Enabled(c.min) {
		return nil
	}
	return c.EmitRecord(newRecord(c.name, sev, msg, mergeFields(details)))
}

// EmitRecord writes rec to every sink in attach order while holding the
// channel lock. A failing sink never stops delivery to the others; all
// failures are returned together as an *EmitError.
func (c *Channel) EmitRecord(rec Record) error {
	if !rec.Severity.Enabled(c.min) {
		return nil
	}
	if rec.Channel == emptyString {
		rec.Channel = c.name
	}

	var failures []*SinkIOError
	c.mu.Lock()
	for _, s := range c.sinks {
		if err := writeSink(s, rec); err != nil {
			failures = append(failures, err)
		}
	}
	c.mu.Unlock()
	c.emitted.Inc()

	if len(failures) == 0 {
		return nil
	}
	c.failures.Inc()
	emitErr := &EmitError{Channel: c.name, Failures: failures}
	if c.onFailure != nil {
		c.onFailure(emitErr)
	}
	return emitErr
}

// writeSink isolates one sink: errors and panics become a SinkIOError.
func writeSink(s Sink, rec Record) (sinkErr *SinkIOError) {
	defer func() {
		if r := recover(); r != nil {
			sinkErr = &SinkIOError{Sink: s.Name(), Op: "write", Err: fmt.Errorf("panic: %v", r)}
		}
	}()
	err := s.Write(rec)
	if err == nil {
		return nil
	}
	if stderrs.As(err, &sinkErr) {
		return sinkErr
	}
	return &SinkIOError{Sink: s.Name(), Op: "write", Err: err}
}

func (c *Channel) Debug(msg string, details ...Fields) error {
	return c.Emit(Debug, msg, details...)
}

func (c *Channel) Info(msg string, details ...Fields) error {
	return c.Emit(Info, msg, details...)
}

func (c *Channel) Warning(msg string, details ...Fields) error {
	return c.Emit(Warning, msg, details...)
}

func (c *Channel) Error(msg string, details ...Fields) error {
	return c.Emit(Error, msg, details...)
}

func (c *Channel) Critical(msg string, details ...Fields) error {
	return c.Emit(Critical, msg, details...)
}

// Close closes every sink and joins their errors.
func (c *Channel) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	var errs []error
	for _, s := range c.sinks {
		if err := s.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return stderrs.Join(errs...)
}
