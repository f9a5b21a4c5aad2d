package logging

import (
	"io"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	EnvLevel     = "CRAZYCODEC_LOG_LEVEL"
	EnvTimestamp = "CRAZYCODEC_LOG_TIMESTAMP"
	EnvNoColor   = "CRAZYCODEC_LOG_NOCOLOR"
)

// Profile is the logger setup before environment overrides.
type Profile struct {
	App       string
	Level     string
	Timestamp bool
	NoColor   bool
	Out       io.Writer // defaults to stderr
}

var configureOnce sync.Once

// Configure installs the global logger on first use and returns it. Later
// calls return the installed logger unchanged.
func Configure(p Profile) zerolog.Logger {
	configureOnce.Do(func() {
		log.Logger = New(p, os.Getenv)
	})
	return log.Logger
}

// New builds a console logger for p, with overrides read through getenv.
func New(p Profile, getenv func(string) string) zerolog.Logger {
	if v := strings.TrimSpace(getenv(EnvLevel)); v != "" {
		p.Level = v
	}
	if v, err := strconv.ParseBool(getenv(EnvTimestamp)); err == nil {
		p.Timestamp = v
	}
	if v, err := strconv.ParseBool(getenv(EnvNoColor)); err == nil {
		p.NoColor = v
	}
	if p.Out == nil {
		p.Out = os.Stderr
	}

	level, err := zerolog.ParseLevel(strings.ToLower(p.Level))
	if err != nil || p.Level == "" {
		level = zerolog.InfoLevel
	}

	output := zerolog.ConsoleWriter{
		Out:        p.Out,
		NoColor:    p.NoColor,
		TimeFormat: time.RFC3339,
	}
	ctx := zerolog.New(output).Level(level).With()
	if p.Timestamp {
		ctx = ctx.Timestamp()
	}
	if p.App != "" {
		ctx = ctx.Str("app", p.App)
	}
	return ctx.Logger()
}
