// Package httpapi exposes the intake and approval boundary operations over
// HTTP. Authentication is out of scope: the caller identifies itself with
// the X-User-ID header.
package httpapi

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dmarovic/inflow/internal/approval"
	"github.com/dmarovic/inflow/internal/intake"
)

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr         string
	Debug        bool
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// DefaultServerConfig returns local-dev defaults.
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Addr:         ":8080",
		Debug:        false,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
	}
}

// Server wires the orchestrator and approval service behind a gin engine.
type Server struct {
	orch     *intake.Orchestrator
	approval *approval.Service
	engine   *gin.Engine
	http     *http.Server
	log      *slog.Logger
}

// NewServer builds the router. Approval may be nil when no database is
// configured; the apply route then returns 503.
func NewServer(orch *intake.Orchestrator, appr *approval.Service, cfg ServerConfig, log *slog.Logger) *Server {
	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery())

	s := &Server{
		orch:     orch,
		approval: appr,
		engine:   engine,
		log:      log,
		http: &http.Server{
			Addr:         cfg.Addr,
			Handler:      engine,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
		},
	}

	engine.Use(s.requestLogger())

	engine.GET("/healthz", s.handleHealth)
	v1 := engine.Group("/v1")
	{
		v1.POST("/intake", s.handleProcessInput)
		v1.POST("/intake/:sessionID/answers", s.handleSubmitAnswers)
		v1.POST("/intake/:sessionID/confirm", s.handleConfirmAlternative)
		v1.POST("/drafts/:draftID/apply", s.handleApplyDraft)
	}

	return s
}

// Start blocks serving HTTP until the listener fails or Shutdown is called.
func (s *Server) Start() error {
	s.log.Info("http_listening", "addr", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
