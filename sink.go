package happylog

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
)

// Sink is a single append target with its own threshold and format.
// Write must ignore records below MinSeverity without touching the
// underlying resource, and must append exactly one line per eligible record.
type Sink interface {
	Name() string
	MinSeverity() Severity
	Write(rec Record) error
	Close() error
}

// SinkIOError reports that a sink's resource could not be written.
type SinkIOError struct {
	Sink string
	Path string
	Op   string
	Err  error
}

func (e *SinkIOError) Error() string {
	if e.Path != emptyString {
		return fmt.Sprintf("happylog: %s sink %s: %s: %v", e.Sink, e.Path, e.Op, e.Err)
	}
	return fmt.Sprintf("happylog: %s sink: %s: %v", e.Sink, e.Op, e.Err)
}

func (e *SinkIOError) Unwrap() error { return e.Err }

// ColorMode controls console coloring.
type ColorMode int

const (
	// ColorAuto colors only when writing to a terminal and NO_COLOR is unset.
	ColorAuto ColorMode = iota
	ColorAlways
	ColorNever
)

// ParseColorMode maps "auto", "always" and "never" to a ColorMode; anything
// else is ColorAuto.
func ParseColorMode(s string) ColorMode {
	switch s {
	case "always":
		return ColorAlways
	case "never":
		return ColorNever
	default:
		return ColorAuto
	}
}

// ConsoleSink writes color-coded lines to a stream, os.Stdout by default.
type ConsoleSink struct {
	out       io.Writer
	min       Severity
	formatter ConsoleFormatter
}

// NewConsoleSink creates a console sink writing to out. A nil out means
// os.Stdout. An empty timeLayout uses TimestampLayout.
func NewConsoleSink(out io.Writer, min Severity, mode ColorMode, timeLayout string) *ConsoleSink {
	if out == nil {
		out = os.Stdout
	}
	w, colored := colorWriter(out, mode)
	return &ConsoleSink{
		out:       w,
		min:       min,
		formatter: ConsoleFormatter{Color: colored, TimeLayout: timeLayout},
	}
}

// colorWriter decides whether out gets escape codes. Terminal files are
// wrapped so escape codes also work on Windows consoles.
func colorWriter(out io.Writer, mode ColorMode) (io.Writer, bool) {
	switch mode {
	case ColorAlways:
		return out, true
	case ColorNever:
		return out, false
	}
	f, ok := out.(*os.File)
	if !ok || os.Getenv("NO_COLOR") != emptyString {
		return out, false
	}
	fd := f.Fd()
	if !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
		return out, false
	}
	return colorable.NewColorable(f), true
}

func (s *ConsoleSink) Name() string          { return "console" }
func (s *ConsoleSink) MinSeverity() Severity { return s.min }

// Colored reports whether the sink emits escape codes.
func (s *ConsoleSink) Colored() bool { return s.formatter.Color }

func (s *ConsoleSink) Write(rec Record) error {
	if !rec.Severity.Enabled(s.min) {
		return nil
	}
	if _, err := io.WriteString(s.out, s.formatter.Format(rec)+"\n"); err != nil {
		return &SinkIOError{Sink: s.Name(), Op: "write", Err: err}
	}
	return nil
}

// Close is a no-op; the stream belongs to the process.
func (s *ConsoleSink) Close() error { return nil }

// FileSink appends plain lines to a file opened in append mode. Every line
// is handed to the kernel in a single write before Write returns. A sink
// whose file cannot be opened keeps retrying the open on each eligible
// write and reports a SinkIOError until it succeeds.
type FileSink struct {
	path      string
	min       Severity
	formatter FileFormatter

	mu     sync.Mutex
	f      *os.File
	closed bool
}

// NewFileSink creates a file sink for path and tries to open it right away.
// The returned error, if any, is informational: the sink is still usable.
func NewFileSink(path string, min Severity) (*FileSink, error) {
	s := &FileSink{path: path, min: min}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.open(); err != nil {
		return s, err
	}
	return s, nil
}

func (s *FileSink) open() error {
	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return &SinkIOError{Sink: s.Name(), Path: s.path, Op: "open", Err: err}
	}
	s.f = f
	return nil
}

func (s *FileSink) Name() string          { return "file" }
func (s *FileSink) MinSeverity() Severity { return s.min }

// Path returns the file the sink appends to.
func (s *FileSink) Path() string { return s.path }

func (s *FileSink) Write(rec Record) error {
	if !rec.Severity.Enabled(s.min) {
		return nil
	}
	line := s.formatter.Format(rec) + "\n"

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return &SinkIOError{Sink: s.Name(), Path: s.path, Op: "write", Err: os.ErrClosed}
	}
	if s.f == nil {
		if err := s.open(); err != nil {
			return err
		}
	}
	if _, err := s.f.WriteString(line); err != nil {
		return &SinkIOError{Sink: s.Name(), Path: s.path, Op: "write", Err: err}
	}
	return nil
}

// Close releases the file handle. It is safe to call more than once.
func (s *FileSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	if s.f == nil {
		return nil
	}
	err := s.f.Close()
	s.f = nil
	if err != nil {
		return &SinkIOError{Sink: s.Name(), Path: s.path, Op: "close", Err: err}
	}
	return nil
}
