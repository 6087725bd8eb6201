package happylog

// Config holds the settings a Service reads once when it is initialized.
// Loading them (files, flags, environment) is left to the caller.
type Config struct {
	// Dir is the folder holding one log_<channel>.log file per channel.
	Dir string `validate:"required"`
	// CreateDir creates Dir on Initialize when it does not exist.
	CreateDir bool

	// Level is the channel-wide threshold, applied before any sink.
	Level string `validate:"omitempty,severity"`
	// FileLevel is the threshold of every file sink.
	FileLevel string `validate:"omitempty,severity"`
	// ConsoleLevel is the threshold of every console sink.
	ConsoleLevel string `validate:"omitempty,severity"`

	// ConsoleColor is one of auto, always or never.
	ConsoleColor      string `validate:"omitempty,oneof=auto always never"`
	ConsoleTimeLayout string
	// ConsoleDisabled leaves channels with their file sink only.
	ConsoleDisabled bool
}

const (
	defaultLevel        = "debug"
	defaultFileLevel    = "debug"
	defaultConsoleLevel = "error"
)

// DefaultConfig returns a config logging everything to files under dir and
// errors and above to the console.
func DefaultConfig(dir string) *Config {
	return &Config{
		Dir:          dir,
		CreateDir:    true,
		Level:        defaultLevel,
		FileLevel:    defaultFileLevel,
		ConsoleLevel: defaultConsoleLevel,
		ConsoleColor: "auto",
	}
}

// levels is the parsed form of the severity settings.
type levels struct {
	channel Severity
	file    Severity
	console Severity
}

func (c *Config) levels() (levels, error) {
	var lv levels
	var err error
	if lv.channel, err = ParseSeverity(orDefault(c.Level, defaultLevel)); err != nil {
		return lv, err
	}
	if lv.file, err = ParseSeverity(orDefault(c.FileLevel, defaultFileLevel)); err != nil {
		return lv, err
	}
	if lv.console, err = ParseSeverity(orDefault(c.ConsoleLevel, defaultConsoleLevel)); err != nil {
		return lv, err
	}
	return lv, nil
}

func orDefault(v, def string) string {
	if v == emptyString {
		return def
	}
	return v
}
