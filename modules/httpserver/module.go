package httpserver

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/example/portfolio-uploads/modules/content"
	"github.com/example/portfolio-uploads/modules/uploads"
	"github.com/gin-gonic/gin"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/types"
)

// Module implements the HTTP API using the Gin framework.
type Module struct {
	port               int
	maxMultipartMemory int64
	server             *http.Server
	engine             *gin.Engine
	handlers           *Handlers
	tokens             *TokenManager
	uploadsModule      *uploads.Module
	contentModule      *content.Module
	logger             types.Logger
}

// Compile-time interface checks
var _ mono.Module = (*Module)(nil)

// NewModule creates a new HTTP server module.
func NewModule(port int, maxMultipartMemory int64, tokens *TokenManager, logger types.Logger) *Module {
	return &Module{
		port:               port,
		maxMultipartMemory: maxMultipartMemory,
		tokens:             tokens,
		logger:             logger,
	}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "http-server"
}

// SetUploadsModule sets the uploads module dependency.
func (m *Module) SetUploadsModule(uploadsModule *uploads.Module) {
	m.uploadsModule = uploadsModule
}

// SetContentModule sets the content module dependency.
func (m *Module) SetContentModule(contentModule *content.Module) {
	m.contentModule = contentModule
}

// Start initializes and starts the HTTP server.
func (m *Module) Start(_ context.Context) error {
	if err := m.buildEngine(); err != nil {
		return err
	}

	m.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", m.port),
		Handler:           m.engine,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		m.logger.Info("HTTP server starting", "port", m.port)
		if err := m.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			m.logger.Error("HTTP server error", "error", err)
		}
	}()

	return nil
}

// Stop gracefully shuts down the HTTP server.
func (m *Module) Stop(ctx context.Context) error {
	if m.server != nil {
		m.logger.Info("Shutting down HTTP server")
		return m.server.Shutdown(ctx)
	}
	return nil
}

// buildEngine wires handlers to the started services and builds the gin engine.
func (m *Module) buildEngine() error {
	if m.uploadsModule == nil || m.uploadsModule.Service() == nil {
		return fmt.Errorf("uploads module not set")
	}
	if m.contentModule == nil || m.contentModule.Service() == nil {
		return fmt.Errorf("content module not set")
	}

	gin.SetMode(gin.ReleaseMode)

	m.handlers = NewHandlers(
		m.contentModule.Service(),
		m.uploadsModule.Service(),
		map[string]mono.HealthCheckableModule{
			m.uploadsModule.Name(): m.uploadsModule,
			m.contentModule.Name(): m.contentModule,
		},
	)

	m.engine = gin.New()
	m.engine.Use(gin.Recovery())
	m.engine.Use(m.loggingMiddleware())
	m.engine.Use(m.corsMiddleware())
	m.engine.MaxMultipartMemory = m.maxMultipartMemory

	m.registerRoutes(m.engine)
	return nil
}

// registerRoutes sets up all HTTP routes.
func (m *Module) registerRoutes(engine *gin.Engine) {
	h := m.handlers

	engine.GET("/health", h.HealthCheck)
	engine.GET("/uploads/*filepath", h.ServeUpload)

	v1 := engine.Group("/api/v1")
	{
		v1.GET("/projects", h.ListProjects)
		v1.GET("/projects/:id", h.GetProject)
		v1.GET("/testimonials", h.ListTestimonials)
		v1.GET("/testimonials/:id", h.GetTestimonial)
		v1.GET("/team", h.ListTeam)
		v1.GET("/team/:id", h.GetTeamMember)
	}

	admin := v1.Group("/admin", adminMiddleware(m.tokens))
	{
		admin.POST("/projects", h.CreateProject)
		admin.PUT("/projects/:id", h.UpdateProject)
		admin.DELETE("/projects/:id", h.DeleteProject)

		admin.POST("/testimonials", h.CreateTestimonial)
		admin.PUT("/testimonials/:id", h.UpdateTestimonial)
		admin.DELETE("/testimonials/:id", h.DeleteTestimonial)

		admin.POST("/team", h.CreateTeamMember)
		admin.PUT("/team/:id", h.UpdateTeamMember)
		admin.DELETE("/team/:id", h.DeleteTeamMember)
	}
}

// loggingMiddleware provides request logging.
func (m *Module) loggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		m.logger.Info("HTTP request",
			"method", method,
			"path", path,
			"status", c.Writer.Status(),
			"latency_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		)
	}
}

// corsMiddleware lets the public site read records and the admin UI send bearer tokens.
func (m *Module) corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
