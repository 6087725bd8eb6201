package happylog

import (
	"path/filepath"
	"runtime"
	"strconv"
	"time"
)

// Fields carries optional structured details for a record.
type Fields map[string]any

// mergeFields flattens a variadic details argument into one map. Later keys win.
// It returns nil when there is nothing to carry.
func mergeFields(details []Fields) Fields {
	switch len(details) {
	case 0:
		return nil
	case 1:
		if len(details[0]) == 0 {
			return nil
		}
		return copyFields(details[0])
	}
	out := Fields{}
	for _, d := range details {
		for k, v := range d {
			out[k] = v
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func copyFields(f Fields) Fields {
	out := make(Fields, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}

// Origin is the source location a record was emitted from.
type Origin struct {
	File     string
	Line     int
	Function string
}

// String renders the origin as "function:line", falling back to the file
// base name when the function is unknown.
func (o Origin) String() string {
	where := o.Function
	if where == emptyString {
		where = filepath.Base(o.File)
	}
	return where + ":" + strconv.Itoa(o.Line)
}

// IsZero reports whether no location was captured.
func (o Origin) IsZero() bool {
	return o.File == emptyString && o.Function == emptyString && o.Line == 0
}

// Caller captures the location of the function skip frames above the caller
// of Caller. Caller(0) describes the function that called Caller.
func Caller(skip int) Origin {
	pc, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return Origin{}
	}
	o := Origin{File: file, Line: line}
	if fn := runtime.FuncForPC(pc); fn != nil {
		o.Function = fn.Name()
	}
	return o
}

// Record is one log entry. It is built once per emit and not retained after
// the emit call returns.
type Record struct {
	Time     time.Time
	Severity Severity
	Channel  string
	Message  string
	Details  Fields
	Origin   *Origin
}

func newRecord(channel string, sev Severity, msg string, details Fields) Record {
	return Record{
		Time:     time.Now(),
		Severity: sev,
		Channel:  channel,
		Message:  msg,
		Details:  details,
	}
}
