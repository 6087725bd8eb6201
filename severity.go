package happylog

import (
	"strings"

	"github.com/Station-Manager/errors"
	"github.com/rs/zerolog"
)

// Severity is the ordered level of a record. Filtering compares with >=.
type Severity int8

const (
	Debug Severity = iota
	Info
	Warning
	Error
	Critical
)

var severityNames = [...]string{
	Debug:    "DEBUG",
	Info:     "INFO",
	Warning:  "WARNING",
	Error:    "ERROR",
	Critical: "CRITICAL",
}

// Severities lists every severity in ascending order.
func Severities() []Severity {
	return []Severity{Debug, Info, Warning, Error, Critical}
}

func (s Severity) String() string {
	if s.valid() {
		return severityNames[s]
	}
	return "UNKNOWN"
}

func (s Severity) valid() bool {
	return s >= Debug && s <= Critical
}

// Enabled reports whether a record of severity s passes a threshold of min.
func (s Severity) Enabled(min Severity) bool {
	return s >= min
}

// ZerologLevel maps s onto the closest zerolog level.
func (s Severity) ZerologLevel() zerolog.Level {
	switch s {
	case Debug:
		return zerolog.DebugLevel
	case Info:
		return zerolog.InfoLevel
	case Warning:
		return zerolog.WarnLevel
	case Error:
		return zerolog.ErrorLevel
	case Critical:
		return zerolog.FatalLevel
	default:
		return zerolog.NoLevel
	}
}

// ParseSeverity parses a level name case-insensitively. Besides the names
// printed by String it accepts the zerolog spellings (trace, warn, fatal,
// panic).
func ParseSeverity(name string) (Severity, error) {
	const op errors.Op = "happylog.ParseSeverity"
	upper := strings.ToUpper(strings.TrimSpace(name))
	for i, n := range severityNames {
		if n == upper {
			return Severity(i), nil
		}
	}
	if upper == emptyString {
		return Debug, errors.New(op).Msg(errMsgBadSeverity)
	}

	lvl, err := zerolog.ParseLevel(strings.ToLower(upper))
	if err != nil {
		return Debug, errors.New(op).Err(err).Msg(errMsgBadSeverity)
	}
	switch lvl {
	case zerolog.TraceLevel, zerolog.DebugLevel:
		return Debug, nil
	case zerolog.InfoLevel:
		return Info, nil
	case zerolog.WarnLevel:
		return Warning, nil
	case zerolog.ErrorLevel:
		return Error, nil
	case zerolog.FatalLevel, zerolog.PanicLevel:
		return Critical, nil
	default:
		return Debug, errors.New(op).Msg(errMsgBadSeverity)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Severity) UnmarshalText(text []byte) error {
	parsed, err := ParseSeverity(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
