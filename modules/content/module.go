package content

import (
	"context"
	"fmt"

	"github.com/example/portfolio-uploads/modules/uploads"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/types"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Module provides portfolio records via GORM + SQLite.
type Module struct {
	dbPath        string
	debug         bool
	profiles      Profiles
	db            *gorm.DB
	repo          *Repository
	service       *Service
	uploadsModule *uploads.Module
	cleanup       uploads.CleanupPort
	logger        types.Logger
}

// Compile-time interface checks.
var _ mono.Module = (*Module)(nil)
var _ mono.DependentModule = (*Module)(nil)
var _ mono.HealthCheckableModule = (*Module)(nil)

// NewModule creates a new content module backed by the SQLite file at dbPath.
func NewModule(dbPath string, debug bool, profiles Profiles, logger types.Logger) *Module {
	return &Module{
		dbPath:   dbPath,
		debug:    debug,
		profiles: profiles,
		logger:   logger,
	}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "content"
}

// Dependencies returns the modules that must start before this one.
func (m *Module) Dependencies() []string {
	return []string{"uploads"}
}

// SetDependencyServiceContainer receives service containers from dependencies.
func (m *Module) SetDependencyServiceContainer(dependency string, container mono.ServiceContainer) {
	if dependency == "uploads" {
		m.cleanup = uploads.NewCleanupAdapter(container)
	}
}

// SetUploadsModule sets the uploads module that stores incoming files.
// File content is passed in-process because request payloads are size-limited.
func (m *Module) SetUploadsModule(uploadsModule *uploads.Module) {
	m.uploadsModule = uploadsModule
}

// Start opens the database, runs migrations and builds the service.
func (m *Module) Start(_ context.Context) error {
	if m.uploadsModule == nil || m.uploadsModule.Service() == nil {
		return fmt.Errorf("uploads module not set")
	}

	m.logger.Info("Connecting to SQLite database", "path", m.dbPath)

	logLevel := logger.Silent
	if m.debug {
		logLevel = logger.Info
	}

	db, err := gorm.Open(sqlite.Open(m.dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	m.db = db

	// SQLite allows a single writer; one connection also keeps ":memory:" databases intact.
	sqlDB, err := m.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := m.db.AutoMigrate(&Project{}, &Testimonial{}, &TeamMember{}); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	cleanup := m.cleanup
	if cleanup == nil {
		cleanup = uploads.LocalCleanup{Service: m.uploadsModule.Service()}
	}

	m.repo = NewRepository(m.db)
	m.service = NewService(m.repo, m.uploadsModule.Service(), cleanup, m.profiles, m.logger)

	m.logger.Info("Content module started")
	return nil
}

// Stop closes the database connection.
func (m *Module) Stop(_ context.Context) error {
	if m.db == nil {
		return nil
	}

	sqlDB, err := m.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}
	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}

	m.logger.Info("Database connection closed")
	return nil
}

// Health performs a health check on the database connection.
func (m *Module) Health(ctx context.Context) mono.HealthStatus {
	if m.db == nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: "database not initialized",
		}
	}

	sqlDB, err := m.db.DB()
	if err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("failed to get sql.DB: %v", err),
		}
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("database ping failed: %v", err),
		}
	}

	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"driver": "sqlite",
			"path":   m.dbPath,
		},
	}
}

// Service returns the content service instance.
func (m *Module) Service() *Service {
	return m.service
}
