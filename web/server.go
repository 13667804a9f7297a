package web

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/emberlit/afterglow/engine"
	"github.com/emberlit/afterglow/parameter"
	"github.com/emberlit/afterglow/stage"
)

// Server is the HTTP bridge for browser collaborators: it accepts the
// inbound event taxonomy as JSON and streams frame snapshots out over
// SSE
// It never mutates simulation state directly; everything goes through
// the event queue and the snapshot copy
type Server struct {
	world  *engine.World
	script *stage.Script
	log    *zap.Logger

	engine *gin.Engine
	http   *http.Server
}

// NewServer builds the router; Run starts listening
func NewServer(world *engine.World, script *stage.Script, log *zap.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)

	s := &Server{
		world:  world,
		script: script,
		log:    log,
	}

	router := gin.New()
	router.Use(gin.Recovery())
	if log != nil {
		router.Use(requestLogger(log))
	}

	api := router.Group("/api")
	api.POST("/events", s.handleEvents)
	api.GET("/stream", s.handleStream)
	api.GET("/stages", s.handleStages)
	api.GET("/status", s.handleStatus)

	s.engine = router
	return s
}

// Handler exposes the router for tests and embedding
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until the listener fails or Shutdown is called
func (s *Server) Run(addr string) error {
	s.http = &http.Server{Addr: addr, Handler: s.engine}
	err := s.http.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Shutdown drains in-flight requests
func (s *Server) Shutdown(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	return s.http.Shutdown(ctx)
}

// handleEvents accepts one interaction event
// Bad payload shape or an unknown type is a 4xx; out-of-range field
// values are accepted and clamped by the aggregator
func (s *Server) handleEvents(c *gin.Context) {
	var in InboundEvent
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event payload"})
		return
	}
	if err := Ingest(s.world, in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusAccepted)
}

// handleStream pushes frame snapshots as SSE until the client leaves
func (s *Server) handleStream(c *gin.Context) {
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	ticker := time.NewTicker(parameter.SnapshotStreamInterval)
	defer ticker.Stop()

	ctx := c.Request.Context()
	c.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case <-ticker.C:
			c.SSEvent("frame", s.world.Snapshot())
			return true
		}
	})
}

// handleStages returns the loaded stage script
func (s *Server) handleStages(c *gin.Context) {
	c.JSON(http.StatusOK, s.script)
}

// handleStatus returns the telemetry registry and cascade layout
func (s *Server) handleStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"frame":   s.world.FrameNumber(),
		"metrics": s.world.Resource.Status.Export(),
		"layout":  s.world.Resource.Cascade.Nodes,
	})
}

// requestLogger logs each request with zap, skipping the stream
// endpoint whose requests are intentionally long-lived
func requestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.FullPath() == "/api/stream" {
			c.Next()
			return
		}
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
