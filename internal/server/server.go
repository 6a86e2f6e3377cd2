package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/microcosm-cc/bluemonday"

	"github.com/deusflow/ainews/internal/app"
	"github.com/deusflow/ainews/internal/cache"
	"github.com/deusflow/ainews/internal/metrics"
)

const (
	ModeFast = "fast"
	ModeFull = "full"
)

// Runner executes one pipeline pass.
type Runner interface {
	Run(ctx context.Context, opts app.Options) (*app.Result, error)
}

// Options tunes the HTTP layer.
type Options struct {
	DefaultDays int
	// CacheTTL keeps run responses for identical requests; 0 disables caching.
	CacheTTL time.Duration
}

// Server exposes the pipeline over HTTP.
type Server struct {
	echo     *echo.Echo
	runner   Runner
	metrics  *metrics.Metrics
	logger   *slog.Logger
	opts     Options
	policy   *bluemonday.Policy
	runs     *cache.Cache[*RunResponse]
	latest   atomic.Pointer[RunResponse]
	runMutex sync.Mutex
}

func New(runner Runner, m *metrics.Metrics, logger *slog.Logger, opts Options) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if m == nil {
		m = metrics.New()
	}
	if opts.DefaultDays <= 0 {
		opts.DefaultDays = 7
	}

	s := &Server{
		echo:    echo.New(),
		runner:  runner,
		metrics: m,
		logger:  logger,
		opts:    opts,
		policy:  bluemonday.StrictPolicy(),
	}
	if opts.CacheTTL > 0 {
		s.runs = cache.New[*RunResponse](opts.CacheTTL)
	}

	e := s.echo
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:   true,
		LogURI:      true,
		LogError:    true,
		LogMethod:   true,
		LogLatency:  true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			if v.Error == nil {
				logger.Info("request completed",
					"method", v.Method,
					"uri", v.URI,
					"status", v.Status,
					"latency_ms", v.Latency.Milliseconds())
			} else {
				logger.Error("request failed",
					"method", v.Method,
					"uri", v.URI,
					"status", v.Status,
					"latency_ms", v.Latency.Milliseconds(),
					"error", v.Error.Error())
			}
			return nil
		},
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	e.POST("/run", s.handleRun)
	e.GET("/api/v1/report/latest", s.handleLatest)
	e.GET("/health", s.handleHealth)
	e.GET("/metrics", echo.WrapHandler(m.Handler()))

	return s
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start listens on addr until Shutdown is called.
func (s *Server) Start(addr string) error {
	s.logger.Info("starting server", "address", addr)
	if err := s.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// RunRequest is the body of POST /run.
type RunRequest struct {
	Days         *int   `json:"days"`
	Mode         string `json:"mode"`
	FetchContent bool   `json:"fetchContent"`
}

func (s *Server) handleRun(c echo.Context) error {
	var req RunRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}

	days := s.opts.DefaultDays
	if req.Days != nil {
		days = *req.Days
	}
	if days <= 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "days must be positive"})
	}

	mode := req.Mode
	if mode == "" {
		mode = ModeFast
	}
	if mode != ModeFast && mode != ModeFull {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "mode must be fast or full"})
	}

	opts := app.Options{
		Days:              days,
		FetchFullContent:  mode == ModeFull && req.FetchContent,
		GenerateSummaries: mode == ModeFull,
	}
	key := cache.GenerateKey(strconv.Itoa(opts.Days), mode, strconv.FormatBool(opts.FetchFullContent))
	if s.runs != nil {
		if resp, ok := s.runs.Get(key); ok {
			s.logger.Debug("serving cached run", "days", days, "mode", mode)
			return c.JSON(http.StatusOK, resp)
		}
	}

	s.runMutex.Lock()
	res, err := s.runner.Run(c.Request().Context(), opts)
	s.runMutex.Unlock()
	if err != nil {
		s.logger.Error("error in run endpoint", "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	resp := s.buildResponse(res)
	s.latest.Store(resp)
	if s.runs != nil {
		s.runs.Set(key, resp)
		s.logger.Debug("cached run response", "days", days, "mode", mode, "entries", s.runs.Len())
	}
	return c.JSON(http.StatusOK, resp)
}

func (s *Server) handleLatest(c echo.Context) error {
	resp := s.latest.Load()
	if resp == nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "no report generated yet"})
	}
	return c.JSON(http.StatusOK, resp)
}

func (s *Server) handleHealth(c echo.Context) error {
	h := s.metrics.Health()

	status := http.StatusOK
	body := map[string]interface{}{
		"status":     "ok",
		"last_run":   h["last_run_time"],
		"last_error": h["last_error"],
	}
	if healthy, _ := h["is_healthy"].(bool); !healthy {
		status = http.StatusServiceUnavailable
		body["status"] = "unhealthy"
	}
	return c.JSON(status, body)
}
