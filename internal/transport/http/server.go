// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-10-19
// Last Modified: 2026-10-19

// Package httptransport binds the notifier to an HTTP endpoint so a crash
// reporting webhook can trigger it.
package httptransport

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/similigh/crashbot/internal/core/pipeline"
	"github.com/similigh/crashbot/internal/crash"
	"github.com/similigh/crashbot/internal/integrations/github"
	"github.com/similigh/crashbot/internal/issue"
)

// EventHandler processes a single crash event.
type EventHandler interface {
	Handle(ctx context.Context, ev *crash.Event) (*pipeline.Result, error)
}

// Server exposes POST /api/events and GET /healthz.
type Server struct {
	addr   string
	router *gin.Engine
}

// NewServer builds the HTTP server.
func NewServer(addr string, handler EventHandler) (*Server, error) {
	if handler == nil {
		return nil, errors.New("http server requires an event handler")
	}
	if addr == "" {
		addr = ":8080"
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger())

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.POST("/api/events", handleEvent(handler))

	return &Server{addr: addr, router: router}, nil
}

// Handler returns the underlying http.Handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Addr returns the listen address.
func (s *Server) Addr() string {
	return s.addr
}

// Start serves until ctx is cancelled or the listener fails.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{Addr: s.addr, Handler: s.router}
	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		shCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shCtx)
	case err := <-errCh:
		return err
	}
}

type errorResponse struct {
	Error        string `json:"error"`
	RemoteStatus int    `json:"remote_status,omitempty"`
}

func handleEvent(handler EventHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		var ev crash.Event
		if err := c.ShouldBindJSON(&ev); err != nil {
			log.Printf("[http] event bind failed ip=%s err=%v", c.ClientIP(), err)
			c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid JSON: " + err.Error()})
			return
		}

		log.Printf("[http] crash event %s ip=%s", ev.String(), c.ClientIP())
		result, err := handler.Handle(c.Request.Context(), &ev)
		if err != nil {
			log.Printf("[http] event %s failed: %v", ev.IssueID, err)
			status, body := errorStatus(err)
			c.JSON(status, body)
			return
		}

		c.JSON(http.StatusCreated, result)
	}
}

// errorStatus maps notifier failures onto HTTP responses for the caller.
func errorStatus(err error) (int, errorResponse) {
	body := errorResponse{Error: err.Error()}

	var remote *github.RemoteError
	switch {
	case errors.Is(err, crash.ErrMalformedEvent):
		return http.StatusBadRequest, body
	case errors.Is(err, issue.ErrMissingCredentials):
		return http.StatusInternalServerError, body
	case errors.As(err, &remote):
		body.RemoteStatus = remote.StatusCode
		return http.StatusBadGateway, body
	default:
		return http.StatusBadGateway, body
	}
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Printf("[http] %s %s status=%d ip=%s dur=%s",
			c.Request.Method, c.Request.URL.Path, c.Writer.Status(), c.ClientIP(), time.Since(start))
	}
}
