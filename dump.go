package happylog

import (
	stderrs "errors"
	"fmt"
	"reflect"
)

const (
	maxDumpDepth    = 10
	maxDumpElements = 10
)

// Dump writes the contents of v at Debug level, one record per line of
// output: exported struct fields, map entries and the first elements of
// slices are walked recursively. Cycles and excessive depth are cut short.
// Nothing is walked when the channel threshold is above Debug.
func (c *Channel) Dump(v any) error {
	if !Debug.Enabled(c.min) {
		return nil
	}
	d := &dumper{channel: c, visited: map[uintptr]bool{}}
	if v == nil {
		d.line("Dump: <nil>")
		return d.err()
	}
	d.walk(reflect.ValueOf(v), emptyString, 0)
	return d.err()
}

type dumper struct {
	channel *Channel
	visited map[uintptr]bool
	errs    []error
}

func (d *dumper) line(format string, args ...any) {
	if err := d.channel.Emit(Debug, fmt.Sprintf(format, args...)); err != nil {
		d.errs = append(d.errs, err)
	}
}

func (d *dumper) err() error { return stderrs.Join(d.errs...) }

func (d *dumper) walk(val reflect.Value, prefix string, depth int) {
	if depth > maxDumpDepth {
		d.line("%s: <max depth reached>", prefix)
		return
	}

	for val.Kind() == reflect.Interface || val.Kind() == reflect.Pointer {
		if val.IsNil() {
			d.line("%s: <nil>", prefix)
			return
		}
		if val.Kind() == reflect.Pointer {
			ptr := val.Pointer()
			if d.visited[ptr] {
				d.line("%s: <circular reference>", prefix)
				return
			}
			d.visited[ptr] = true
		}
		val = val.Elem()
	}
	if !val.IsValid() {
		d.line("%s: <invalid>", prefix)
		return
	}
	typ := val.Type()

	switch val.Kind() {
	case reflect.Struct:
		if prefix == emptyString {
			d.line("Struct: %s", typ.Name())
		} else {
			d.line("%s: %s {", prefix, typ.Name())
		}
		for i := 0; i < val.NumField(); i++ {
			field := typ.Field(i)
			if !field.IsExported() {
				continue
			}
			d.walk(val.Field(i), join(prefix, field.Name), depth+1)
		}
		if prefix != emptyString {
			d.line("%s: }", prefix)
		}

	case reflect.Map:
		d.line("%s: %s (len: %d) {", prefix, typ.String(), val.Len())
		iter := val.MapRange()
		for iter.Next() {
			key := fmt.Sprintf("%s[%v]", prefix, iter.Key().Interface())
			d.walk(iter.Value(), key, depth+1)
		}
		d.line("%s: }", prefix)

	case reflect.Slice, reflect.Array:
		d.line("%s: %s (len: %d) {", prefix, typ.String(), val.Len())
		for i := 0; i < val.Len() && i < maxDumpElements; i++ {
			d.walk(val.Index(i), fmt.Sprintf("%s[%d]", prefix, i), depth+1)
		}
		if val.Len() > maxDumpElements {
			d.line("%s: ... (%d more elements)", prefix, val.Len()-maxDumpElements)
		}
		d.line("%s: }", prefix)

	default:
		if val.CanInterface() {
			d.line("%s: %v", prefix, val.Interface())
		} else {
			d.line("%s: <unexported>", prefix)
		}
	}
}

func join(prefix, name string) string {
	if prefix == emptyString {
		return name
	}
	return prefix + "." + name
}
