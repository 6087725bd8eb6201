package happylog

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileSink_FiltersBeforeTouchingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log_app.log")
	sink, err := NewFileSink(path, Warning)
	require.NoError(t, err)
	t.Cleanup(func() { _ = sink.Close() })

	require.NoError(t, sink.Write(newRecord("app", Debug, "quiet", nil)))
	require.NoError(t, sink.Write(newRecord("app", Info, "quiet", nil)))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Zero(t, info.Size())

	require.NoError(t, sink.Write(newRecord("app", Warning, "loud", nil)))
	lines := readLines(t, path)
	require.Len(t, lines, 1)
	assert.True(t, strings.HasPrefix(lines[0], "WARNING - "))
	assert.True(t, strings.HasSuffix(lines[0], " - loud"))
}

func TestFileSink_AppendsToExistingContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log_app.log")
	require.NoError(t, os.WriteFile(path, []byte("previous run\n"), 0o644))

	sink, err := NewFileSink(path, Debug)
	require.NoError(t, err)
	require.NoError(t, sink.Write(newRecord("app", Info, "this run", nil)))
	require.NoError(t, sink.Close())

	lines := readLines(t, path)
	require.Len(t, lines, 2)
	assert.Equal(t, "previous run", lines[0])
	assert.Contains(t, lines[1], "this run")
}

func TestFileSink_OneLinePerRecord(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log_app.log")
	sink, err := NewFileSink(path, Debug)
	require.NoError(t, err)
	t.Cleanup(func() { _ = sink.Close() })

	require.NoError(t, sink.Write(newRecord("app", Error, "multi\nline\nmessage", nil)))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 1, bytes.Count(data, []byte("\n")))
	assert.True(t, bytes.HasSuffix(data, []byte("multi line message\n")))
}

func TestFileSink_RetriesOpen(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "later")
	path := filepath.Join(dir, "log_app.log")

	sink, err := NewFileSink(path, Debug)
	require.Error(t, err)
	require.NotNil(t, sink)
	t.Cleanup(func() { _ = sink.Close() })

	err = sink.Write(newRecord("app", Info, "lost", nil))
	var sinkErr *SinkIOError
	require.ErrorAs(t, err, &sinkErr)
	assert.Equal(t, "open", sinkErr.Op)
	assert.Equal(t, path, sinkErr.Path)
	assert.ErrorIs(t, err, os.ErrNotExist)

	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, sink.Write(newRecord("app", Info, "found", nil)))
	lines := readLines(t, path)
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "found")
}

func TestFileSink_Close(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log_app.log")
	sink, err := NewFileSink(path, Debug)
	require.NoError(t, err)

	assert.NoError(t, sink.Close())
	assert.NoError(t, sink.Close())

	err = sink.Write(newRecord("app", Info, "too late", nil))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrClosed))

	// filtered writes never touch the file, even when closed
	sink.min = Critical
	assert.NoError(t, sink.Write(newRecord("app", Info, "filtered", nil)))
}

func TestConsoleSink_Write(t *testing.T) {
	var buf bytes.Buffer
	sink := NewConsoleSink(&buf, Info, ColorAuto, "")
	assert.False(t, sink.Colored(), "a buffer is not a terminal")

	require.NoError(t, sink.Write(newRecord("app", Debug, "hidden", nil)))
	assert.Zero(t, buf.Len())

	require.NoError(t, sink.Write(newRecord("app", Info, "shown", Fields{"k": "v"})))
	lines := splitLines(buf.String())
	require.Len(t, lines, 1)
	assert.True(t, strings.HasPrefix(lines[0], "INFO:     "))
	assert.True(t, strings.HasSuffix(lines[0], " - shown - k=v"))
	assert.NoError(t, sink.Close())
}

func TestConsoleSink_ColorModes(t *testing.T) {
	var buf bytes.Buffer
	always := NewConsoleSink(&buf, Debug, ColorAlways, "")
	assert.True(t, always.Colored())
	require.NoError(t, always.Write(newRecord("app", Warning, "w", nil)))
	assert.Contains(t, buf.String(), "\x1b[33m")

	never := NewConsoleSink(&buf, Debug, ColorNever, "")
	assert.False(t, never.Colored())

	assert.Equal(t, ColorAlways, ParseColorMode("always"))
	assert.Equal(t, ColorNever, ParseColorMode("never"))
	assert.Equal(t, ColorAuto, ParseColorMode("auto"))
	assert.Equal(t, ColorAuto, ParseColorMode(""))
}

func TestConsoleSink_NoColorWhenNotTerminal(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "console")
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })

	sink := NewConsoleSink(f, Debug, ColorAuto, "")
	assert.False(t, sink.Colored())
}

type errWriter struct{ err error }

func (w errWriter) Write([]byte) (int, error) { return 0, w.err }

func TestConsoleSink_WriteError(t *testing.T) {
	boom := errors.New("stream gone")
	sink := NewConsoleSink(errWriter{err: boom}, Debug, ColorNever, "")

	err := sink.Write(newRecord("app", Info, "x", nil))
	var sinkErr *SinkIOError
	require.ErrorAs(t, err, &sinkErr)
	assert.Equal(t, "console", sinkErr.Sink)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, "happylog: console sink: write: stream gone", err.Error())
}
