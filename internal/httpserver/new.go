package httpserver

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"

	"docpilot/internal/assistant"
	"docpilot/internal/memory"
	"docpilot/internal/middleware"
	"docpilot/pkg/log"
)

// HTTPServer holds all dependencies for the HTTP server.
type HTTPServer struct {
	gin         *gin.Engine
	l           log.Logger
	port        int
	mode        string
	environment string

	assistantUC assistant.UseCase
	memoryStore memory.Store
	mw          middleware.Middleware
}

// Config is the dependency bag passed to New().
type Config struct {
	Port        int
	Mode        string
	Environment string

	AssistantUC assistant.UseCase
	MemoryStore memory.Store
	Middleware  middleware.Middleware
}

// New creates a new HTTPServer instance.
func New(logger log.Logger, cfg Config) (*HTTPServer, error) {
	gin.SetMode(cfg.Mode)

	srv := &HTTPServer{
		l:           logger,
		gin:         gin.Default(),
		port:        cfg.Port,
		mode:        cfg.Mode,
		environment: cfg.Environment,
		assistantUC: cfg.AssistantUC,
		memoryStore: cfg.MemoryStore,
		mw:          cfg.Middleware,
	}

	if err := srv.validate(); err != nil {
		return nil, err
	}

	return srv, nil
}

func (srv HTTPServer) validate() error {
	if srv.l == nil {
		return errors.New("logger is required")
	}
	if srv.mode == "" {
		return errors.New("mode is required")
	}
	if srv.port == 0 {
		return errors.New("port is required")
	}
	if srv.assistantUC == nil {
		return errors.New("assistant use case is required")
	}
	if srv.memoryStore == nil {
		return errors.New("memory store is required")
	}
	return nil
}

// Run maps all handlers and serves until the listener stops.
func (srv HTTPServer) Run() error {
	if err := srv.mapHandlers(); err != nil {
		return err
	}
	return srv.gin.Run(fmt.Sprintf(":%d", srv.port))
}
