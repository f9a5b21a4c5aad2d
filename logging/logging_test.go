package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func env(values map[string]string) func(string) string {
	return func(key string) string { return values[key] }
}

func TestNewLevel(t *testing.T) {
	tests := []struct {
		name    string
		profile string
		env     map[string]string
		want    zerolog.Level
	}{
		{"default", "", nil, zerolog.InfoLevel},
		{"profile", "warn", nil, zerolog.WarnLevel},
		{"env overrides profile", "warn", map[string]string{EnvLevel: "debug"}, zerolog.DebugLevel},
		{"upper case", "ERROR", nil, zerolog.ErrorLevel},
		{"unknown falls back to info", "chatty", nil, zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := New(Profile{Level: tt.profile, Out: &bytes.Buffer{}}, env(tt.env))
			if logger.GetLevel() != tt.want {
				t.Errorf("level = %v, want %v", logger.GetLevel(), tt.want)
			}
		})
	}
}

func TestNewOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Profile{App: "crazycodec", Out: &buf}, env(map[string]string{EnvNoColor: "true"}))

	logger.Info().Str("port", "log").Msg("decoded")
	out := buf.String()
	for _, want := range []string{"decoded", "port=log", "app=crazycodec"} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q does not contain %q", out, want)
		}
	}
	if strings.Contains(out, "\x1b[") {
		t.Errorf("NoColor output contains escape codes: %q", out)
	}

	buf.Reset()
	logger.Debug().Msg("hidden")
	if buf.Len() != 0 {
		t.Errorf("debug message written at info level: %q", buf.String())
	}
}
