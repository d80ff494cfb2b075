package logging

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriterLogger(&buf, LevelWarn)

	l.Debug("debug %d", 1)
	l.Info("info %d", 2)
	assert.Empty(t, buf.String())

	l.Warn("warn %d", 3)
	l.Error("error %d", 4)
	assert.Contains(t, buf.String(), "warn 3")
	assert.Contains(t, buf.String(), "error 4")
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{"default", *DefaultConfig(), false},
		{"bad level", Config{Level: "trace"}, true},
		{"file without size", Config{Level: LevelInfo, File: "/tmp/x.log"}, true},
		{"negative backups", Config{Level: LevelInfo, MaxBackups: -1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLogHTTPError(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriterLogger(&buf, LevelError)

	l.LogHTTPError("PUT", "/api/v1/membership/me", "10.0.0.1", 500, "Failed to save", errors.New("boom"))
	assert.Contains(t, buf.String(), "Failed to save: boom")
	assert.Contains(t, buf.String(), "/api/v1/membership/me")
}
