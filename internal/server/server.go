package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/NYTimes/gziphandler"
	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/alexanderramin/throughput/internal/service"
)

// DefaultMaxUploadBytes bounds an upload when Options leaves it unset.
const DefaultMaxUploadBytes = 10 << 20

// Options configures the HTTP transport.
type Options struct {
	MaxUploadBytes int64
	CORSOrigins    []string
	// Metrics is served on GET /metrics when non-nil.
	Metrics http.Handler
	Logger  *zap.Logger
}

// Server exposes the import and read-side services over HTTP.
type Server struct {
	router   *gin.Engine
	handler  http.Handler
	imports  service.ImportService
	projects service.ProjectService
	opts     Options
	log      *zap.Logger
}

func New(imports service.ImportService, projects service.ProjectService, opts Options) *Server {
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = DefaultMaxUploadBytes
	}
	if len(opts.CORSOrigins) == 0 {
		opts.CORSOrigins = []string{"*"}
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	s := &Server{
		router:   gin.New(),
		imports:  imports,
		projects: projects,
		opts:     opts,
		log:      opts.Logger,
	}
	s.setupRoutes()

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: opts.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
	}).Handler(s.router)
	s.handler = gziphandler.GzipHandler(corsHandler)
	return s
}

func (s *Server) setupRoutes() {
	s.router.HandleMethodNotAllowed = true
	s.router.Use(requestLogger(s.log), gin.Recovery())
	s.router.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, errorResponse{Error: "Method not allowed"})
	})
	s.router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, errorResponse{Error: "Not found"})
	})

	api := s.router.Group("/api")
	{
		api.POST("/import", s.handleImport)
		api.GET("/template", s.handleTemplate)
		api.GET("/projects", s.handleListProjects)
		api.GET("/projects/:id", s.handleGetProject)
		api.GET("/runs", s.handleListRuns)
		api.GET("/upload-check", s.handleUploadCheck)
		api.POST("/upload-check", s.handleUploadCheck)
	}

	if s.opts.Metrics != nil {
		s.router.GET("/metrics", gin.WrapH(s.opts.Metrics))
	}
}

// Handler returns the router wrapped with CORS and gzip compression.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Run listens on addr and serves until ctx is cancelled.
func (s *Server) Run(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()
	s.log.Info("http server listening", zap.String("addr", ln.Addr().String()))

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func requestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Debug("http request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}
