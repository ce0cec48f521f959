package uploads

import (
	"context"
	"encoding/json"
	"fmt"

	domain "github.com/example/portfolio-uploads/domain/upload"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"github.com/go-monolith/mono/pkg/types"
	"github.com/spf13/afero"
)

// Module owns the application storage root and exposes upload operations.
type Module struct {
	root    string
	base    afero.Fs
	fs      afero.Fs
	service *Service
	logger  types.Logger
}

// Compile-time interface checks
var (
	_ mono.Module                = (*Module)(nil)
	_ mono.ServiceProviderModule = (*Module)(nil)
	_ mono.HealthCheckableModule = (*Module)(nil)
)

// NewModule creates an uploads module writing under root on the local filesystem.
func NewModule(root string, logger types.Logger) *Module {
	return NewModuleWithFs(afero.NewOsFs(), root, logger)
}

// NewModuleWithFs creates an uploads module over an arbitrary base filesystem.
func NewModuleWithFs(base afero.Fs, root string, logger types.Logger) *Module {
	return &Module{
		root:   root,
		base:   base,
		logger: logger,
	}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "uploads"
}

// RegisterServices registers request-reply services in the service container.
func (m *Module) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container,
		"delete-files",
		json.Unmarshal,
		json.Marshal,
		m.deleteFiles,
	); err != nil {
		return fmt.Errorf("failed to register delete-files service: %w", err)
	}

	m.logger.Info("Registered services", "services", "delete-files")
	return nil
}

// Start prepares the storage root.
func (m *Module) Start(_ context.Context) error {
	if err := EnsureDir(m.base, m.root); err != nil {
		return fmt.Errorf("failed to prepare storage root: %w", err)
	}

	m.fs = afero.NewBasePathFs(m.base, m.root)
	m.service = NewService(m.fs, m.logger)

	m.logger.Info("Uploads module started", "root", m.root)
	return nil
}

// Stop shuts down the module.
func (m *Module) Stop(_ context.Context) error {
	m.logger.Info("Uploads module stopped")
	return nil
}

// Health reports whether the storage root is still a directory.
func (m *Module) Health(_ context.Context) mono.HealthStatus {
	ok, err := afero.DirExists(m.base, m.root)
	healthy := m.service != nil && err == nil && ok
	message := "operational"
	if !healthy {
		message = "storage root unavailable"
	}
	return mono.HealthStatus{
		Healthy: healthy,
		Message: message,
		Details: map[string]any{
			"root": m.root,
		},
	}
}

// Service returns the upload service instance.
func (m *Module) Service() *Service {
	return m.service
}

// deleteFiles handles the delete-files service request.
func (m *Module) deleteFiles(ctx context.Context, req DeleteFilesRequest, _ *mono.Msg) (DeleteFilesResponse, error) {
	if m.service == nil {
		return DeleteFilesResponse{}, fmt.Errorf("uploads module not started")
	}

	outcome := m.service.Delete(ctx, domain.References(req.References...), req.UploadRoot)
	return toDeleteFilesResponse(outcome), nil
}

// toDeleteFilesResponse flattens a delete outcome into wire values.
func toDeleteFilesResponse(outcome domain.DeleteOutcome) DeleteFilesResponse {
	resp := DeleteFilesResponse{
		Deleted: make([]string, 0, len(outcome.Deleted)),
		Failed:  make([]string, 0, len(outcome.Failed)),
	}
	for _, ref := range outcome.Deleted {
		resp.Deleted = append(resp.Deleted, ref.Value)
	}
	for _, ref := range outcome.Failed {
		resp.Failed = append(resp.Failed, ref.Value)
	}
	return resp
}
