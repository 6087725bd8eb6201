package happylog

import "errors"

const (
	// ServiceName is the DI/service locator name for the logging service.
	ServiceName = "happylog"

	// DefaultChannel receives signals when no other channel is chosen.
	DefaultChannel = "application"

	// TimestampLayout is used for every rendered timestamp unless a console
	// sink overrides it.
	TimestampLayout = "2006-01-02 15:04:05,000"

	// FieldSeparator separates the parts of a file line.
	FieldSeparator = " - "

	emptyString   = ""
	logFilePrefix = "log_"
	logFileExt    = ".log"
	labelWidth    = 9
)

const (
	errMsgNilConfig      = "Logging config is nil."
	errMsgNilService     = "Logger service is nil."
	errMsgConfigInvalid  = "Logging configuration is invalid."
	errMsgBadSeverity    = "Unknown severity."
	errMsgLogDir         = "Failed to create log directory."
	errMsgNotInitialized = "Logger service is not initialized."
	errMsgUnknownSink    = "Unknown sink kind."
)

var (
	// ErrClosed is returned by emission calls made after Close.
	ErrClosed = errors.New("happylog: service closed")

	// ErrEmptyChannelName is returned when a channel is requested without a name.
	ErrEmptyChannelName = errors.New("happylog: empty channel name")
)
