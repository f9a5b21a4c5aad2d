package crazyserver

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/urfave/cli"

	"github.com/mikehamer/crazycodec/config"
)

// resolveServeConfig runs the serve flags through a cli app and returns the
// configuration serve would start with.
func resolveServeConfig(t *testing.T, args ...string) (config.Config, error) {
	t.Helper()
	var cfg config.Config
	app := cli.NewApp()
	app.Flags = []cli.Flag{cli.StringFlag{Name: "log-level", Value: "info"}}
	app.Commands = []cli.Command{{
		Name:  ServeCommand.Name,
		Flags: ServeCommand.Flags,
		Action: func(ctx *cli.Context) error {
			var err error
			cfg, err = serveConfig(ctx)
			return err
		},
	}}
	err := app.Run(append([]string{"crazycodec"}, args...))
	return cfg, err
}

func TestServeConfigOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "serve.toml")
	if err := os.WriteFile(path, []byte("listen = \"0.0.0.0:9000\"\nlog_level = \"warn\"\n"), 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		args   []string
		listen string
		level  string
	}{
		{"defaults", []string{"serve"}, "127.0.0.1:8000", "info"},
		{"config file", []string{"serve", "--config", path}, "0.0.0.0:9000", "warn"},
		{"global log level", []string{"--log-level", "debug", "serve", "--config", path}, "0.0.0.0:9000", "debug"},
		{"listen flag", []string{"serve", "--config", path, "--listen", "127.0.0.1:9100"}, "127.0.0.1:9100", "warn"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := resolveServeConfig(t, tt.args...)
			if err != nil {
				t.Fatalf("error = %v", err)
			}
			if cfg.Listen != tt.listen || cfg.LogLevel != tt.level {
				t.Errorf("listen = %q, log_level = %q, want %q, %q", cfg.Listen, cfg.LogLevel, tt.listen, tt.level)
			}
		})
	}
}

func TestServeConfigInvalidLogLevel(t *testing.T) {
	if _, err := resolveServeConfig(t, "--log-level", "loud", "serve"); err == nil {
		t.Error("invalid log level should fail")
	}
}
