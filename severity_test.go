package happylog

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeverity_Order(t *testing.T) {
	all := Severities()
	for i := 1; i < len(all); i++ {
		assert.Less(t, all[i-1], all[i])
		assert.True(t, all[i].Enabled(all[i-1]))
		assert.False(t, all[i-1].Enabled(all[i]))
		assert.True(t, all[i].Enabled(all[i]))
	}
}

func TestSeverity_String(t *testing.T) {
	assert.Equal(t, "DEBUG", Debug.String())
	assert.Equal(t, "INFO", Info.String())
	assert.Equal(t, "WARNING", Warning.String())
	assert.Equal(t, "ERROR", Error.String())
	assert.Equal(t, "CRITICAL", Critical.String())
	assert.Equal(t, "UNKNOWN", Severity(42).String())
}

func TestParseSeverity(t *testing.T) {
	cases := map[string]Severity{
		"DEBUG":     Debug,
		"info":      Info,
		" Warning ": Warning,
		"warn":      Warning,
		"error":     Error,
		"critical":  Critical,
		"fatal":     Critical,
		"panic":     Critical,
		"trace":     Debug,
	}
	for in, want := range cases {
		got, err := ParseSeverity(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	for _, bad := range []string{"", "loud", "disabled"} {
		_, err := ParseSeverity(bad)
		assert.Error(t, err, bad)
	}
}

func TestSeverity_Text(t *testing.T) {
	var s Severity
	require.NoError(t, s.UnmarshalText([]byte("warning")))
	assert.Equal(t, Warning, s)

	text, err := Critical.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "CRITICAL", string(text))

	assert.Error(t, s.UnmarshalText([]byte("nope")))
	assert.Equal(t, Warning, s)
}

func TestSeverity_ZerologLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, Debug.ZerologLevel())
	assert.Equal(t, zerolog.WarnLevel, Warning.ZerologLevel())
	assert.Equal(t, zerolog.FatalLevel, Critical.ZerologLevel())
	assert.Equal(t, zerolog.NoLevel, Severity(-3).ZerologLevel())
}
