package happylog

import (
	stderrs "errors"
	"fmt"
	"sort"
	"strings"

	smerrors "github.com/Station-Manager/errors"
)

// buildErrorChain walks an error's cause chain and returns the messages from
// outermost to innermost. Station-Manager DetailedError causes are followed
// first, then stdlib errors.Unwrap. Depth and repeated messages are bounded
// so cyclic chains terminate.
func buildErrorChain(err error) []string {
	const maxDepth = 50
	var chain []string
	seen := map[string]bool{}

	for depth := 0; err != nil && depth < maxDepth; depth++ {
		if dErr, ok := smerrors.AsDetailedError(err); ok && dErr != nil {
			chain = append(chain, dErr.Error())
			err = dErr.Cause()
			continue
		}

		msg := err.Error()
		if seen[msg] {
			break
		}
		seen[msg] = true
		chain = append(chain, msg)
		err = stderrs.Unwrap(err)
	}
	return chain
}

// joinChain returns a single string for the error chain separated by " -> ".
func joinChain(chain []string) string {
	return strings.Join(chain, " -> ")
}

// renderValue prints a detail value. Errors render their whole cause chain.
func renderValue(v any) string {
	switch tv := v.(type) {
	case nil:
		return "<nil>"
	case error:
		return joinChain(buildErrorChain(tv))
	case fmt.Stringer:
		return tv.String()
	case string:
		return tv
	default:
		return fmt.Sprintf("%v", tv)
	}
}

// renderFields prints details as space separated key=value pairs sorted by key.
func renderFields(f Fields) string {
	if len(f) == 0 {
		return emptyString
	}
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(renderValue(f[k]))
	}
	return b.String()
}

// sanitizeLine collapses every run of line terminators into one space so a
// record never spans more than one line.
func sanitizeLine(s string) string {
	if !strings.ContainsAny(s, "\r\n") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	inBreak := false
	for _, r := range s {
		if r == '\r' || r == '\n' {
			if !inBreak {
				b.WriteByte(' ')
				inBreak = true
			}
			continue
		}
		inBreak = false
		b.WriteRune(r)
	}
	return b.String()
}
