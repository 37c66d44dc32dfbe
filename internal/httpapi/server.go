package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

type RouterConfig struct {
	Generator      RoadmapGenerator
	Logger         *zap.Logger
	AllowedOrigins []string
	// RequestTimeout bounds each roadmap generation; zero means no limit.
	RequestTimeout time.Duration
	// MCPHandler, when set, is mounted at /mcp.
	MCPHandler http.Handler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(otelgin.Middleware("futureforged"))
	r.Use(RequestID())
	r.Use(RequestLogger(log))
	r.Use(CORS(cfg.AllowedOrigins))

	r.GET("/healthz", HealthCheck)

	api := r.Group("/api")
	{
		api.GET("/schema", Schema)
		if cfg.Generator != nil {
			h := NewRoadmapHandler(cfg.Generator, cfg.RequestTimeout)
			api.POST("/roadmaps", h.CreateRoadmap)
			api.POST("/roadmaps/export", h.ExportRoadmap)
		}
	}

	if cfg.MCPHandler != nil {
		r.Any("/mcp", gin.WrapH(cfg.MCPHandler))
	}

	return r
}

type Server struct {
	httpServer *http.Server
	logger     *zap.Logger
}

func NewServer(addr string, cfg RouterConfig) *Server {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{
		httpServer: &http.Server{
			Addr:              addr,
			Handler:           NewRouter(cfg),
			ReadHeaderTimeout: 10 * time.Second,
		},
		logger: log,
	}
}

func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Run serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info("http server listening", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		s.logger.Info("http server shutting down")
		return s.httpServer.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
