package happylog

import (
	"io"
	"path/filepath"

	"github.com/Station-Manager/errors"
)

// SinkKind selects the sink a SinkSpec builds.
type SinkKind int

const (
	SinkConsole SinkKind = iota
	SinkFile
	// SinkCustom calls SinkSpec.Factory.
	SinkCustom
)

// SinkSpec describes a sink without opening anything, so that only the
// caller that wins channel creation actually builds it.
type SinkSpec struct {
	Kind        SinkKind
	MinSeverity Severity

	// Path is the file of a SinkFile.
	Path string

	// Out, Color and TimeLayout configure a SinkConsole. A nil Out is os.Stdout.
	Out        io.Writer
	Color      ColorMode
	TimeLayout string

	// Factory builds a SinkCustom.
	Factory func() Sink
}

// ConsoleSpec describes a console sink on out.
func ConsoleSpec(out io.Writer, min Severity, mode ColorMode) SinkSpec {
	return SinkSpec{Kind: SinkConsole, MinSeverity: min, Out: out, Color: mode}
}

// FileSpec describes a file sink appending to path.
func FileSpec(path string, min Severity) SinkSpec {
	return SinkSpec{Kind: SinkFile, MinSeverity: min, Path: path}
}

// LogFileName returns the deterministic file name of a channel.
func LogFileName(channel string) string {
	return logFilePrefix + channel + logFileExt
}

func buildSinks(specs []SinkSpec) ([]Sink, error) {
	const op errors.Op = "happylog.buildSinks"
	sinks := make([]Sink, 0, len(specs))
	for _, spec := range specs {
		switch spec.Kind {
		case SinkConsole:
			sinks = append(sinks, NewConsoleSink(spec.Out, spec.MinSeverity, spec.Color, spec.TimeLayout))
		case SinkFile:
			// An open failure is retried on every write and reported there.
			fs, _ := NewFileSink(filepath.Clean(spec.Path), spec.MinSeverity)
			sinks = append(sinks, fs)
		case SinkCustom:
			if spec.Factory == nil {
				closeSinks(sinks)
				return nil, errors.New(op).Msg(errMsgUnknownSink)
			}
			sinks = append(sinks, spec.Factory())
		default:
			closeSinks(sinks)
			return nil, errors.New(op).Msg(errMsgUnknownSink)
		}
	}
	return sinks, nil
}

func closeSinks(sinks []Sink) {
	for _, s := range sinks {
		_ = s.Close()
	}
}
