// Package server exposes a catalog session over HTTP: the HTML page, a
// JSON API mirroring the commands, a websocket toast stream and metrics.
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/blackwell-systems/paperctl/internal/command"
)

// ShutdownTimeout bounds how long Run waits for in-flight requests.
const ShutdownTimeout = 5 * time.Second

// Options configures a Server.
type Options struct {
	Controller *command.Controller
	// Gatherer backs /metrics. Nil serves the default registry.
	Gatherer prometheus.Gatherer
	Logger   *zap.Logger
}

// Server serves one controller's session.
type Server struct {
	ctl      *command.Controller
	gatherer prometheus.Gatherer
	log      *zap.Logger
	upgrader websocket.Upgrader
	engine   *gin.Engine
}

// New builds the server and its routes.
func New(opts Options) *Server {
	s := &Server{
		ctl:      opts.Controller,
		gatherer: opts.Gatherer,
		log:      opts.Logger,
		upgrader: websocket.Upgrader{ReadBufferSize: 1024, WriteBufferSize: 1024},
	}
	if s.gatherer == nil {
		s.gatherer = prometheus.DefaultGatherer
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}
	s.engine = s.routes()
	return s
}

// Handler returns the HTTP handler with every route mounted.
func (s *Server) Handler() http.Handler { return s.engine }

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())

	r.GET("/", s.index)
	r.GET("/ws", s.streamToasts)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{})))

	api := r.Group("/api")
	{
		api.GET("/papers", s.listPapers)
		api.POST("/papers", s.uploadPaper)
		api.POST("/papers/generate", s.generatePaper)
		api.GET("/papers/:id", s.openEdit)
		api.PUT("/papers/:id", s.editPaper)
		api.DELETE("/papers/:id", s.deletePaper)
		api.POST("/papers/:id/download", s.downloadPaper)
		api.POST("/papers/:id/share", s.sharePaper)
		api.GET("/papers/:id/cite", s.citePaper)
		api.GET("/templates", s.listTemplates)
		api.GET("/notifications", s.listNotifications)
		api.DELETE("/notifications/:id", s.dismissNotification)
	}
	return r
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.Debug("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("elapsed", time.Since(start)),
		)
	}
}

// Run listens on addr until ctx is cancelled, then shuts down gracefully.
// Request contexts derive from ctx so open websockets close with it.
func (s *Server) Run(ctx context.Context, addr string) error {
	g, ctx := errgroup.WithContext(ctx)
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	g.Go(func() error {
		s.log.Info("listening", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()
		s.log.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
