package format

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFloatToleratesLegacyNaN(t *testing.T) {
	v, err := parseFloat("NAN(017)", 1)
	require.NoError(t, err)
	assert.Equal(t, 0.0, v)

	_, err = parseFloat("not-a-number", 3)
	require.Error(t, err)
	var ioErr *IoError
	require.ErrorAs(t, err, &ioErr)
	assert.Equal(t, "BadToken", ioErr.Kind)
	assert.Equal(t, 3, ioErr.Line)
}

func TestFormatFloatFixedPoint(t *testing.T) {
	assert.Equal(t, "1.5000000000", formatFloat(1.5))
	assert.Equal(t, "-0.2500000000", formatFloat(-0.25))
}

func TestStringEscapes(t *testing.T) {
	cases := []struct {
		raw     string
		escaped string
	}{
		{"plain", "plain"},
		{"", ""},
		{"two\nlines", `two\nlines`},
		{"cr\rhere", `cr\rhere`},
		{`back\slash`, `back\\slash`},
	}
	for _, tc := range cases {
		t.Run(tc.escaped, func(t *testing.T) {
			assert.Equal(t, tc.escaped, escapeString(tc.raw))
			back, err := unescapeString(tc.escaped, 1)
			require.NoError(t, err)
			assert.Equal(t, tc.raw, back)
		})
	}
}

func TestUnescapeRejectsBadEscapes(t *testing.T) {
	for _, bad := range []string{`trailing\`, `unknown\q`} {
		_, err := unescapeString(bad, 7)
		require.Error(t, err, bad)
		var ioErr *IoError
		require.ErrorAs(t, err, &ioErr)
		assert.Equal(t, "BadEscape", ioErr.Kind)
	}
}

func TestParseBool(t *testing.T) {
	v, err := parseBool("true", 1)
	require.NoError(t, err)
	assert.True(t, v)
	v, err = parseBool("false", 1)
	require.NoError(t, err)
	assert.False(t, v)
	_, err = parseBool("1", 1)
	assert.Error(t, err)
}

func TestLineScannerStripsCR(t *testing.T) {
	ls := newLineScanner(strings.NewReader("a\r\nb\n"))
	s, ok := ls.next()
	require.True(t, ok)
	assert.Equal(t, "a", s)
	s, ok = ls.next()
	require.True(t, ok)
	assert.Equal(t, "b", s)
	_, ok = ls.next()
	assert.False(t, ok)
}
