package logging

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want log.Level
	}{
		{"", DefaultLevel},
		{"debug", log.DebugLevel},
		{"INFO", log.InfoLevel},
		{" warn ", log.WarnLevel},
		{"error", log.ErrorLevel},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("unknown level", func(t *testing.T) {
		_, err := ParseLevel("chatty")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "chatty")
	})
}

func TestNew(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, log.WarnLevel)

	logger.Debug("hidden")
	logger.Warn("rename fell back", "dst", "/tmp/b")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "rename fell back")
	assert.Contains(t, out, "fsshell")
	assert.Contains(t, out, "/tmp/b")
}

func TestDiscard(t *testing.T) {
	logger := Discard()
	assert.NotPanics(t, func() { logger.Error("nothing") })
}
