package uploads

import (
	"context"
	"time"

	domain "github.com/example/portfolio-uploads/domain/upload"
	"github.com/go-monolith/mono/pkg/types"
	"github.com/spf13/afero"
)

// Service is the entry point for upload, delete and read-back operations.
type Service struct {
	orchestrator *Orchestrator
	deleter      *Deleter
	reader       *Reader
	logger       types.Logger
}

// NewService creates a service over fs, which must be rooted at the storage root.
func NewService(fs afero.Fs, logger types.Logger) *Service {
	return &Service{
		orchestrator: NewOrchestrator(fs),
		deleter:      NewDeleter(fs),
		reader:       NewReader(fs),
		logger:       logger,
	}
}

// Upload stores a batch of files under cfg. Per-file problems are reported in the
// result; an error is returned only for an unusable profile or storage directory.
func (s *Service) Upload(_ context.Context, files []domain.IncomingFile, cfg domain.Config) (domain.Result, error) {
	start := time.Now()

	if err := cfg.Validate(); err != nil {
		return domain.Result{}, err
	}

	result, err := s.orchestrator.Upload(files, cfg)
	if err != nil {
		s.logger.Error("Upload storage unavailable",
			"profile", cfg.Name,
			"root", cfg.UploadRoot,
			"error", err)
		return result, err
	}

	s.logger.Info("Upload batch processed",
		"profile", cfg.Name,
		"files", len(files),
		"stored", len(result.Succeeded),
		"errors", len(result.Errors),
		"duration_ms", time.Since(start).Milliseconds())
	return result, nil
}

// Delete releases stored references under uploadRoot. It never fails; the outcome
// lists which references were removed.
func (s *Service) Delete(_ context.Context, refs []domain.StoredReference, uploadRoot string) domain.DeleteOutcome {
	outcome := s.deleter.Delete(refs, uploadRoot)
	if len(outcome.Failed) > 0 {
		s.logger.Warn("Some stored files could not be deleted",
			"root", uploadRoot,
			"deleted", len(outcome.Deleted),
			"failed", len(outcome.Failed))
	}
	return outcome
}

// Open resolves a request path for the read-back serving route.
func (s *Service) Open(_ context.Context, logicalPath string) (*StoredFile, error) {
	return s.reader.Open(logicalPath)
}
