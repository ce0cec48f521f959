package uploads

import (
	"context"
	"encoding/json"
	"fmt"

	domain "github.com/example/portfolio-uploads/domain/upload"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// CleanupPort releases stored references on behalf of other modules.
type CleanupPort interface {
	DeleteFiles(ctx context.Context, refs []string, uploadRoot string) (domain.DeleteOutcome, error)
}

// cleanupAdapter wraps ServiceContainer for type-safe cross-module communication.
type cleanupAdapter struct {
	container mono.ServiceContainer
}

// NewCleanupAdapter creates a new adapter for the uploads delete-files service.
func NewCleanupAdapter(container mono.ServiceContainer) CleanupPort {
	if container == nil {
		panic("uploads adapter requires non-nil ServiceContainer")
	}
	return &cleanupAdapter{container: container}
}

// DeleteFiles deletes stored files via the delete-files service.
func (a *cleanupAdapter) DeleteFiles(ctx context.Context, refs []string, uploadRoot string) (domain.DeleteOutcome, error) {
	req := DeleteFilesRequest{References: refs, UploadRoot: uploadRoot}
	var resp DeleteFilesResponse
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		"delete-files",
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return domain.DeleteOutcome{}, fmt.Errorf("delete-files service call failed: %w", err)
	}
	return domain.DeleteOutcome{
		Deleted: domain.References(resp.Deleted...),
		Failed:  domain.References(resp.Failed...),
	}, nil
}

// LocalCleanup adapts a Service to CleanupPort without a service container.
type LocalCleanup struct {
	Service *Service
}

// DeleteFiles deletes stored files directly through the service.
func (l LocalCleanup) DeleteFiles(ctx context.Context, refs []string, uploadRoot string) (domain.DeleteOutcome, error) {
	return l.Service.Delete(ctx, domain.References(refs...), uploadRoot), nil
}
