package happylog

import (
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/Station-Manager/errors"
	"github.com/rs/zerolog"
	"go.uber.org/atomic"
)

// Service is the process-scoped logging state: the configuration, the
// channel registry and a diagnostics logger. Create one at startup, pass it
// to whatever needs to log, and Close it at shutdown.
type Service struct {
	Config *Config
	// Console overrides the console sink stream (os.Stdout by default).
	Console io.Writer
	// Diagnostics receives reports about failing sinks (os.Stderr by default).
	Diagnostics io.Writer

	initOnce      sync.Once
	initErr       error
	isInitialized atomic.Bool
	isClosed      atomic.Bool
	levels        levels
	registry      *Registry
	diag          atomic.Pointer[zerolog.Logger]
	sinkFailures  atomic.Int64
}

// NewService returns a service for cfg. Call Initialize before use.
func NewService(cfg *Config) *Service {
	return &Service{Config: cfg}
}

// Initialize validates the configuration, prepares the log directory and
// the diagnostics logger. Subsequent calls return the first result.
func (s *Service) Initialize() error {
	const op errors.Op = "happylog.Service.Initialize"
	if s == nil {
		return errors.New(op).Msg(errMsgNilService)
	}

	s.initOnce.Do(func() {
		s.initErr = s.initialize()
	})
	return s.initErr
}

func (s *Service) initialize() error {
	const op errors.Op = "happylog.Service.initialize"
	if err := validateConfig(s.Config); err != nil {
		return errors.New(op).Err(err).Msg(errMsgConfigInvalid)
	}

	lv, err := s.Config.levels()
	if err != nil {
		return errors.New(op).Err(err).Msg(errMsgConfigInvalid)
	}
	s.levels = lv

	if s.Config.CreateDir {
		if err = os.MkdirAll(s.Config.Dir, 0o755); err != nil {
			return errors.New(op).Err(err).Msg(errMsgLogDir)
		}
	}

	out := s.Diagnostics
	if out == nil {
		out = os.Stderr
	}
	diag := zerolog.New(zerolog.ConsoleWriter{Out: out, NoColor: true}).
		With().Timestamp().Str("component", ServiceName).Logger()
	s.diag.Store(&diag)

	s.registry = NewRegistry(WithFailureHandler(s.reportFailure))
	s.isInitialized.Store(true)
	return nil
}

// reportFailure records a failed emit on the diagnostics logger. It never
// returns an error and never exits.
func (s *Service) reportFailure(e *EmitError) {
	s.sinkFailures.Add(int64(len(e.Failures)))
	diag := s.diag.Load()
	if diag == nil {
		return
	}
	for _, f := range e.Failures {
		diag.Warn().
			Str("channel", e.Channel).
			Str("sink", f.Sink).
			Str("path", f.Path).
			Str("op", f.Op).
			AnErr("error", f.Err).
			Msg("sink write failed")
	}
}

// SinkFailures returns the number of sink failures reported so far.
func (s *Service) SinkFailures() int64 { return s.sinkFailures.Load() }

// Registry returns the channel registry. It is nil before Initialize.
func (s *Service) Registry() *Registry { return s.registry }

// LogFilePath returns the file a channel appends to.
func (s *Service) LogFilePath(channel string) string {
	if s == nil || s.Config == nil {
		return LogFileName(channel)
	}
	return filepath.Join(s.Config.Dir, LogFileName(channel))
}

// Channel returns the channel called name, creating it on first use with a
// file sink followed by a console sink.
func (s *Service) Channel(name string) (*Channel, error) {
	const op errors.Op = "happylog.Service.Channel"
	if s == nil || !s.isInitialized.Load() {
		return nil, errors.New(op).Msg(errMsgNotInitialized)
	}
	if s.isClosed.Load() {
		return nil, ErrClosed
	}
	if ch, ok := s.registry.Lookup(name); ok {
		return ch, nil
	}
	return s.registry.GetOrCreate(name, s.levels.channel, s.sinkSpecs(name)...)
}

func (s *Service) sinkSpecs(name string) []SinkSpec {
	specs := []SinkSpec{FileSpec(s.LogFilePath(name), s.levels.file)}
	if !s.Config.ConsoleDisabled {
		console := ConsoleSpec(s.Console, s.levels.console, ParseColorMode(s.Config.ConsoleColor))
		console.TimeLayout = s.Config.ConsoleTimeLayout
		specs = append(specs, console)
	}
	return specs
}

// Emit writes a record to the named channel. The returned error is an
// *EmitError when one or more sinks failed; the failure has already been
// reported on the diagnostics logger.
func (s *Service) Emit(channel string, sev Severity, msg string, details ...Fields) error {
	ch, err := s.Channel(channel)
	if err != nil {
		return err
	}
	return ch.Emit(sev, msg, details...)
}

func (s *Service) Debug(channel, msg string, details ...Fields) error {
	return s.Emit(channel, Debug, msg, details...)
}

func (s *Service) Info(channel, msg string, details ...Fields) error {
	return s.Emit(channel, Info, msg, details...)
}

func (s *Service) Warning(channel, msg string, details ...Fields) error {
	return s.Emit(channel, Warning, msg, details...)
}

func (s *Service) Error(channel, msg string, details ...Fields) error {
	return s.Emit(channel, Error, msg, details...)
}

func (s *Service) Critical(channel, msg string, details ...Fields) error {
	return s.Emit(channel, Critical, msg, details...)
}

// Close releases every sink. It is safe to call Close multiple times.
func (s *Service) Close() error {
	if s == nil || !s.isInitialized.Load() {
		return nil
	}
	if !s.isClosed.CompareAndSwap(false, true) {
		return nil
	}
	return s.registry.Close()
}
