package happylog

// Logger is the emission surface of a channel: plain calls with optional
// details, and field-by-field builders for structured records.
type Logger interface {
	Debug(msg string, details ...Fields) error
	Info(msg string, details ...Fields) error
	Warning(msg string, details ...Fields) error
	Error(msg string, details ...Fields) error
	Critical(msg string, details ...Fields) error

	DebugWith() LogEvent
	InfoWith() LogEvent
	WarnWith() LogEvent
	ErrorWith() LogEvent
	CriticalWith() LogEvent
}

var _ Logger = (*Channel)(nil)

// Logger returns the channel called name as a Logger.
func (s *Service) Logger(name string) (Logger, error) {
	ch, err := s.Channel(name)
	if err != nil {
		return nil, err
	}
	return ch, nil
}
