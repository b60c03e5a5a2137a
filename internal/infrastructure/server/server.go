package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/klauspost/compress/gzhttp"
	"go.uber.org/zap"
	"golang.org/x/net/netutil"

	apihttp "github.com/GriffinCanCode/imageview/internal/api/http"
	"github.com/GriffinCanCode/imageview/internal/api/middleware"
	"github.com/GriffinCanCode/imageview/internal/domain/gallery"
	"github.com/GriffinCanCode/imageview/internal/domain/registry"
	"github.com/GriffinCanCode/imageview/internal/infrastructure/config"
	"github.com/GriffinCanCode/imageview/internal/infrastructure/logging"
	"github.com/GriffinCanCode/imageview/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/imageview/internal/infrastructure/tracing"
	"github.com/GriffinCanCode/imageview/internal/providers/filesystem"
	"github.com/GriffinCanCode/imageview/internal/shared/id"
)

// Server wraps the HTTP server and dependencies
type Server struct {
	router   *gin.Engine
	handler  http.Handler
	gallery  *gallery.Service
	registry *registry.Registry
	tracer   *tracing.Tracer
	logger   *logging.Logger
	config   *config.Config
	metrics  *monitoring.Metrics

	closeOnce sync.Once
}

// NewServer creates a new server instance. cfg.Gallery is resolved in place.
func NewServer(cfg *config.Config) (*Server, error) {
	logger, err := newLogger(cfg.Logging)
	if err != nil {
		return nil, err
	}

	if err := cfg.Gallery.Resolve(); err != nil {
		return nil, err
	}

	fs, err := filesystem.NewProvider().WithIgnore(cfg.Gallery.Ignore...)
	if err != nil {
		return nil, err
	}

	logger.Info("Initializing gallery server",
		zap.String("addr", cfg.Addr()),
		zap.String("base_dir", cfg.Gallery.BaseDir),
		zap.String("static_dir", cfg.Gallery.StaticDir),
	)

	// Initialize metrics first (needed by other components)
	metrics := monitoring.NewMetrics()

	tracer := tracing.New("gallery", logger.Component("http"))

	reg := registry.New(cfg.Gallery.BaseDir).
		WithGenerator(id.NewGenerator()).
		WithObserver(metrics).
		WithLogger(logger.Component("registry"))
	svc := gallery.NewService(fs, reg).
		WithLogger(logger.Component("gallery"))

	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	// Add middleware
	router.Use(gin.Recovery())
	router.Use(tracing.HTTPMiddleware(tracer))
	router.Use(monitoring.Middleware(metrics))
	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	if cfg.RateLimit.Enabled {
		logger.Info("Rate limiting enabled",
			zap.Int("rps", cfg.RateLimit.RequestsPerSecond),
			zap.Int("burst", cfg.RateLimit.Burst),
		)
		rl := middleware.DefaultRateLimitConfig()
		rl.RequestsPerSecond = cfg.RateLimit.RequestsPerSecond
		rl.Burst = cfg.RateLimit.Burst
		router.Use(middleware.RateLimit(rl))
	}

	handlers := apihttp.NewHandlers(svc, apihttp.NewHandlerMetrics(metrics), logger.Component("http")).
		WithStatic(cfg.Gallery.StaticDir)

	router.GET("/metrics", gin.WrapH(metrics.Handler()))
	apihttp.RegisterRoutes(router, handlers, apihttp.RouteOptions{
		LegacyPaths: cfg.Gallery.LegacyPaths,
	})
	if cfg.Gallery.LegacyPaths {
		logger.Warn("Legacy path route enabled", zap.String("route", "/api/raw/*path"))
	}

	handler, err := compress(router, cfg.Server.Compression)
	if err != nil {
		tracer.Close()
		return nil, err
	}

	logger.Info("Server initialized successfully")

	return &Server{
		router:   router,
		handler:  handler,
		gallery:  svc,
		registry: reg,
		tracer:   tracer,
		logger:   logger,
		config:   cfg,
		metrics:  metrics,
	}, nil
}

// compressibleTypes are gzipped; images are already compressed and
// pass through untouched.
var compressibleTypes = []string{
	"application/json",
	"text/html",
	"text/css",
	"text/javascript",
	"application/javascript",
	"text/plain",
}

func compress(h http.Handler, enabled bool) (http.Handler, error) {
	if !enabled {
		return h, nil
	}
	wrap, err := gzhttp.NewWrapper(
		gzhttp.MinSize(1024),
		gzhttp.ContentTypes(compressibleTypes),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create gzip wrapper: %w", err)
	}
	return wrap(h), nil
}

func newLogger(cfg config.LogConfig) (*logging.Logger, error) {
	logCfg := logging.DefaultConfig()
	if cfg.Development {
		logCfg = logging.DevelopmentConfig()
	}
	if cfg.Level != "" {
		logCfg.Level = cfg.Level
	}
	logger, err := logging.New(logCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return logger, nil
}

// Handler returns the full handler chain, for tests and embedding
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Gallery returns the gallery service
func (s *Server) Gallery() *gallery.Service {
	return s.gallery
}

// Start launches the background registry tasks. They stop when ctx is done.
func (s *Server) Start(ctx context.Context) {
	if s.config.Registry.Prewarm {
		go func() {
			start := time.Now()
			n, err := s.gallery.Prewarm(ctx)
			if err != nil && !errors.Is(err, context.Canceled) {
				s.logger.Warn("Registry prewarm failed", zap.Int("registered", n), zap.Error(err))
				return
			}
			s.logger.Info("Registry prewarmed",
				zap.Int("registered", n),
				zap.Duration("took", time.Since(start)),
			)
		}()
	}

	if interval := s.config.Registry.SweepInterval; interval > 0 {
		s.logger.Info("Registry sweeper enabled", zap.Duration("interval", interval))
		go s.registry.Run(ctx, interval)
	}
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.config.Addr())
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.config.Addr(), err)
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	s.Start(ctx)

	if limit := s.config.Server.MaxConnections; limit > 0 {
		ln = netutil.LimitListener(ln, limit)
		s.logger.Info("Connection limit enabled", zap.Int("max_connections", limit))
	}

	httpServer := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Starting HTTP server", zap.String("addr", ln.Addr().String()))
		errCh <- httpServer.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, stop := context.WithTimeout(context.Background(), s.config.Server.ShutdownTimeout)
	defer stop()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down: %w", err)
	}
	return nil
}

// Close flushes the tracer and logger
func (s *Server) Close() error {
	s.closeOnce.Do(func() {
		s.logger.Info("Shutting down server...")
		s.tracer.Close()
	})
	return s.logger.Sync()
}
