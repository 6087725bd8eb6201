package happylog

import (
	"strings"

	"github.com/fatih/color"
)

// Formatter renders a record into the text a sink writes. Implementations
// must be pure: the same record always yields the same string and the
// record is never modified.
type Formatter interface {
	Format(rec Record) string
}

// Target selects the rendering used by Render.
type Target int

const (
	TargetFile Target = iota
	TargetConsole
)

// Render renders rec for the given target. Console output is rendered
// without color.
func Render(rec Record, target Target) string {
	if target == TargetConsole {
		return ConsoleFormatter{}.Format(rec)
	}
	return FileFormatter{}.Format(rec)
}

// FileFormatter renders "SEVERITY - timestamp - message[ - details]".
type FileFormatter struct{}

func (FileFormatter) Format(rec Record) string {
	var b strings.Builder
	b.WriteString(rec.Severity.String())
	b.WriteString(FieldSeparator)
	b.WriteString(rec.Time.Format(TimestampLayout))
	b.WriteString(FieldSeparator)
	b.WriteString(rec.Message)
	if details := renderFields(rec.Details); details != emptyString {
		b.WriteString(FieldSeparator)
		b.WriteString(details)
	}
	return sanitizeLine(b.String())
}

// palette holds the colors of one severity.
type palette struct {
	label   *color.Color
	message *color.Color
}

var (
	palettes  = map[Severity]palette{}
	timeColor = forced(color.New(color.FgWhite))
)

func init() {
	attrs := map[Severity][]color.Attribute{
		Debug:    {color.FgCyan},
		Info:     {color.FgGreen},
		Warning:  {color.FgYellow},
		Error:    {color.FgRed},
		Critical: {color.FgRed, color.BgWhite},
	}
	for sev, a := range attrs {
		palettes[sev] = palette{
			label:   forced(color.New(a...)),
			message: forced(color.New(a...)),
		}
	}
}

// forced pins c to always emit escape codes; whether color is wanted is
// decided per formatter, not by the process-wide color.NoColor switch.
func forced(c *color.Color) *color.Color {
	c.EnableColor()
	return c
}

// ConsoleFormatter renders a column aligned line: the severity label padded
// to a fixed width, the timestamp, then the message. With Color set the label
// and message take the severity's color and the timestamp is dimmed.
type ConsoleFormatter struct {
	Color bool
	// TimeLayout overrides TimestampLayout when set.
	TimeLayout string
}

func (f ConsoleFormatter) Format(rec Record) string {
	layout := f.TimeLayout
	if layout == emptyString {
		layout = TimestampLayout
	}

	label := rec.Severity.String()
	pad := labelWidth - len(label)
	if pad < 1 {
		pad = 1
	}
	ts := rec.Time.Format(layout)
	msg := rec.Message
	if details := renderFields(rec.Details); details != emptyString {
		msg += FieldSeparator + details
	}
	msg = sanitizeLine(msg)

	p, ok := palettes[rec.Severity]
	if f.Color && ok {
		label = p.label.Sprint(label)
		ts = timeColor.Sprint(ts)
		msg = p.message.Sprint(msg)
	}

	var b strings.Builder
	b.WriteString(label)
	b.WriteByte(':')
	b.WriteString(strings.Repeat(" ", pad))
	b.WriteString(ts)
	b.WriteString(FieldSeparator)
	b.WriteString(msg)
	return b.String()
}
