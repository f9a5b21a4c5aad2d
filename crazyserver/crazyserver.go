package crazyserver

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"github.com/urfave/cli"

	"github.com/mikehamer/crazycodec/cache"
	"github.com/mikehamer/crazycodec/config"
	"github.com/mikehamer/crazycodec/logging"
)

var ServeCommand cli.Command = cli.Command{
	Name:   "serve",
	Usage:  "Start the HTTP/REST codec server",
	Action: serveCommandHandler,
	Flags: []cli.Flag{
		cli.StringFlag{
			Name:  "config, c",
			Value: "",
			Usage: "Optional TOML configuration file",
		},
		cli.StringFlag{
			Name:  "listen, l",
			Value: "",
			Usage: "HTTP listening address, overrides the configuration (default 127.0.0.1:8000)",
		},
		cli.StringFlag{
			Name:  "static, s",
			Value: "",
			Usage: "Optional static folder. Served on /static with index.html accessible on /",
		},
	},
}

func serveCommandHandler(ctx *cli.Context) error {
	cfg, err := serveConfig(ctx)
	if err != nil {
		return err
	}

	logger := logging.Configure(logging.Profile{App: "crazycodec", Level: cfg.LogLevel, Timestamp: true})

	if err := cache.Init(cfg.CacheDir); err != nil {
		logger.Warn().Err(err).Msg("toc cache disabled")
	}

	server := New(Options{Static: cfg.Static, Metrics: cfg.Metrics, Logger: logger})

	logger.Info().Str("addr", cfg.Listen).Msg("starting the server")
	return http.ListenAndServe(cfg.Listen, server)
}

// serveConfig reads the configuration file and applies the command line
// overrides on top of it.
func serveConfig(ctx *cli.Context) (config.Config, error) {
	cfg, err := config.Load(ctx.String("config"))
	if err != nil {
		return config.Config{}, err
	}
	if ctx.IsSet("listen") {
		cfg.Listen = ctx.String("listen")
	}
	if ctx.IsSet("static") {
		cfg.Static = ctx.String("static")
	}
	if ctx.GlobalIsSet("log-level") {
		cfg.LogLevel = ctx.GlobalString("log-level")
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

type Options struct {
	Static  string // served on /static when set
	Metrics bool   // expose /metrics
	Logger  zerolog.Logger
}

// Server is the codec service: JSON encode endpoints, hex decode endpoints
// and a websocket decode stream.
type Server struct {
	router  *mux.Router
	logger  zerolog.Logger
	metrics *metrics

	socketsLock sync.Mutex
	sockets     map[string]socket
	wsID        uint
}

func New(opts Options) *Server {
	s := &Server{
		router:  mux.NewRouter(),
		logger:  opts.Logger,
		metrics: newMetrics(),
		sockets: map[string]socket{},
	}

	r := s.router
	r.Use(s.requestLogger)

	commanderInitRoute(r, s)
	logInitRoute(r, s)
	paramInitRoute(r, s)
	decodeInitRoute(r, s)
	socketsInitRoute(r, s)

	if opts.Metrics {
		r.Handle("/metrics", s.metrics.handler()).Methods("GET")
	}

	if len(opts.Static) > 0 {
		r.PathPrefix("/static").Handler(http.StripPrefix("/static", http.FileServer(http.Dir(opts.Static))))
		r.Handle("/", http.FileServer(http.Dir(opts.Static)))
		r.Handle("/favicon.ico", http.FileServer(http.Dir(opts.Static)))
	}

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

type errorResponse struct {
	Error string `json:"error"`
}

type frameResponse struct {
	Hex string `json:"hex"`
}

func respondError(w http.ResponseWriter, r *http.Request, httpStatus int, msg string) {
	respondJSON(w, httpStatus, errorResponse{Error: msg})
}

func respondJSON(w http.ResponseWriter, httpStatus int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	w.WriteHeader(httpStatus)

	json.NewEncoder(w).Encode(v)
}

// respondFrame answers an encode request with the frame as upper case hex.
func (s *Server) respondFrame(w http.ResponseWriter, kind string, frame []byte) {
	s.metrics.encoded(kind)
	respondJSON(w, http.StatusOK, frameResponse{Hex: fmt.Sprintf("%X", frame)})
}

// decodeBody reads a JSON request body into v. An empty body leaves v as is.
func decodeBody(r *http.Request, v interface{}) error {
	err := json.NewDecoder(r.Body).Decode(v)
	if err == io.EOF {
		return nil
	}
	return err
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// Hijack lets the websocket upgrade through the logger.
func (r *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	h, ok := r.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, fmt.Errorf("crazyserver: response writer cannot be hijacked")
	}
	r.status = http.StatusSwitchingProtocols
	return h.Hijack()
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		path := r.URL.Path
		if route := mux.CurrentRoute(r); route != nil {
			if template, err := route.GetPathTemplate(); err == nil {
				path = template
			}
		}

		event := s.logger.Debug()
		if rec.status >= 500 {
			event = s.logger.Error()
		} else if rec.status >= 400 {
			event = s.logger.Warn()
		}

		event.
			Str("method", r.Method).
			Str("path", path).
			Int("status", rec.status).
			Dur("duration", time.Since(start)).
			Msg("http_request")
	})
}
