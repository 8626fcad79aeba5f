package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{
		"debug":   Debug,
		"":        Info,
		"INFO":    Info,
		"warning": Warn,
		"error":   Error,
		"bogus":   Info,
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseLevel(in), "ParseLevel(%q)", in)
	}
}

func TestJSONOutput_IncludesBaseAndFields(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Level: Debug, Format: FormatJSON, App: "adoptions", Output: &buf})

	log.With(map[string]any{"request_id": "r-1"}).Info("hello", map[string]any{
		"err": errors.New("boom"),
		"":    "ignored",
	})

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "hello", entry["msg"])
	assert.Equal(t, "adoptions", entry["app"])
	assert.Equal(t, "r-1", entry["request_id"])
	assert.Equal(t, "boom", entry["err"])
	assert.Contains(t, entry, "ts")
	assert.NotContains(t, entry, "")
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Level: Warn, Format: FormatText, Output: &buf})

	log.Info("skip me", nil)
	log.Warn("keep me", nil)

	out := buf.String()
	assert.False(t, strings.Contains(out, "skip me"))
	assert.True(t, strings.Contains(out, "keep me"))
}
