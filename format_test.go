package happylog

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedRecord(sev Severity, msg string, details Fields) Record {
	return Record{
		Time:     time.Date(2024, 3, 9, 14, 5, 7, 123_000_000, time.UTC),
		Severity: sev,
		Channel:  "application",
		Message:  msg,
		Details:  details,
	}
}

func TestFileFormatter_Layout(t *testing.T) {
	rec := fixedRecord(Warning, "low disk", Fields{"free": "3%", "device": "sda1"})
	line := FileFormatter{}.Format(rec)
	assert.Equal(t, "WARNING - 2024-03-09 14:05:07,123 - low disk - device=sda1 free=3%", line)

	rec.Details = nil
	assert.Equal(t, "WARNING - 2024-03-09 14:05:07,123 - low disk", FileFormatter{}.Format(rec))
}

func TestFileFormatter_RoundTrip(t *testing.T) {
	for _, sev := range Severities() {
		rec := newRecord("application", sev, "round trip", nil)
		parts := strings.Split(FileFormatter{}.Format(rec), FieldSeparator)
		require.Len(t, parts, 3)

		parsed, err := ParseSeverity(parts[0])
		require.NoError(t, err)
		assert.Equal(t, sev, parsed)

		ts, err := time.ParseInLocation(TimestampLayout, parts[1], rec.Time.Location())
		require.NoError(t, err)
		assert.WithinDuration(t, rec.Time, ts, time.Millisecond)

		assert.Equal(t, "round trip", parts[2])
	}
}

func TestFormatters_ArePure(t *testing.T) {
	details := Fields{"b": 2, "a": 1}
	rec := fixedRecord(Error, "same in, same out", details)

	formatters := []Formatter{FileFormatter{}, ConsoleFormatter{}, ConsoleFormatter{Color: true}}
	for _, f := range formatters {
		first := f.Format(rec)
		for i := 0; i < 10; i++ {
			assert.Equal(t, first, f.Format(rec))
		}
	}
	assert.Equal(t, Fields{"b": 2, "a": 1}, rec.Details)
	assert.Equal(t, "same in, same out", rec.Message)
}

func TestFormatters_CollapseLineBreaks(t *testing.T) {
	rec := fixedRecord(Info, "first\nsecond\r\n\nthird", Fields{"k": "a\nb"})

	line := FileFormatter{}.Format(rec)
	assert.NotContains(t, line, "\n")
	assert.NotContains(t, line, "\r")
	assert.Contains(t, line, "first second third - k=a b")

	console := ConsoleFormatter{}.Format(rec)
	assert.NotContains(t, console, "\n")
}

func TestConsoleFormatter_Plain(t *testing.T) {
	cases := map[Severity]string{
		Debug:    "DEBUG:    ",
		Info:     "INFO:     ",
		Warning:  "WARNING:  ",
		Error:    "ERROR:    ",
		Critical: "CRITICAL: ",
	}
	for sev, prefix := range cases {
		line := ConsoleFormatter{}.Format(fixedRecord(sev, "msg", nil))
		assert.Equal(t, prefix+"2024-03-09 14:05:07,123 - msg", line)
		assert.NotContains(t, line, "\x1b[")
	}
}

func TestConsoleFormatter_Color(t *testing.T) {
	f := ConsoleFormatter{Color: true}

	info := f.Format(fixedRecord(Info, "ok", nil))
	assert.Contains(t, info, "\x1b[32mINFO\x1b[0m:     ")
	assert.Contains(t, info, "\x1b[37m2024-03-09 14:05:07,123\x1b[0m")
	assert.Contains(t, info, "\x1b[32mok\x1b[0m")

	crit := f.Format(fixedRecord(Critical, "down", nil))
	assert.Contains(t, crit, "\x1b[31;47mCRITICAL\x1b[")

	assert.Contains(t, f.Format(fixedRecord(Debug, "d", nil)), "\x1b[36m")
	assert.Contains(t, f.Format(fixedRecord(Warning, "w", nil)), "\x1b[33m")
	assert.Contains(t, f.Format(fixedRecord(Error, "e", nil)), "\x1b[31m")
}

func TestConsoleFormatter_TimeLayout(t *testing.T) {
	line := ConsoleFormatter{TimeLayout: time.Kitchen}.Format(fixedRecord(Info, "m", nil))
	assert.Equal(t, "INFO:     2:05PM - m", line)
}

func TestRender(t *testing.T) {
	rec := fixedRecord(Info, "render", Fields{"n": 1})
	assert.Equal(t, FileFormatter{}.Format(rec), Render(rec, TargetFile))
	assert.Equal(t, ConsoleFormatter{}.Format(rec), Render(rec, TargetConsole))
}

func TestRenderFields_Values(t *testing.T) {
	inner := errors.New("connection refused")
	outer := fmt.Errorf("dial: %w", inner)

	got := renderFields(Fields{
		"err":   outer,
		"nil":   nil,
		"dur":   1500 * time.Millisecond,
		"count": 3,
	})
	assert.Equal(t, "count=3 dur=1.5s err=dial: connection refused -> connection refused nil=<nil>", got)
	assert.Empty(t, renderFields(nil))
}
