package cli

import (
	"bufio"
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rdr(s string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(s))
}

func TestGetSimpleText(t *testing.T) {
	var out bytes.Buffer
	got, err := GetSimpleText(rdr("hello world\n"), "Name?", &out)
	require.NoError(t, err)
	assert.Equal(t, "hello world", got)
	assert.Equal(t, "Name?\n> ", out.String())
}

func TestGetSimpleTextEOF(t *testing.T) {
	var out bytes.Buffer
	got, err := GetSimpleText(rdr("lastline"), "Name?", &out)
	require.NoError(t, err)
	assert.Equal(t, "lastline", got)

	_, err = GetSimpleText(rdr(""), "Name?", &out)
	assert.Error(t, err)
}

func TestGetSecret(t *testing.T) {
	old := readPassword
	t.Cleanup(func() { readPassword = old })

	readPassword = func(int) ([]byte, error) { return []byte("s3cret"), nil }
	var out bytes.Buffer
	got, err := GetSecret("Device secret", &out)
	require.NoError(t, err)
	assert.Equal(t, []byte("s3cret"), got)
	assert.Contains(t, out.String(), "Device secret: ")

	readPassword = func(int) ([]byte, error) { return nil, errors.New("boom") }
	_, err = GetSecret("Device secret", &out)
	assert.Error(t, err)
}

func TestGetYesNo(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"YES\n", true},
		{"n\n", false},
		{"\n", false},
		{"maybe\n", false},
	}
	for _, tt := range tests {
		t.Run(strings.TrimSpace(tt.input), func(t *testing.T) {
			var out bytes.Buffer
			got, err := GetYesNo(rdr(tt.input), "NSFW?", &out)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseOnOff(t *testing.T) {
	v, err := parseOnOff("ON")
	require.NoError(t, err)
	assert.True(t, v)

	v, err = parseOnOff("off")
	require.NoError(t, err)
	assert.False(t, v)

	_, err = parseOnOff("maybe")
	assert.Error(t, err)
}
