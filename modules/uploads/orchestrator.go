package uploads

import (
	domain "github.com/example/portfolio-uploads/domain/upload"
	"github.com/spf13/afero"
)

// Orchestrator runs validation and storage for a batch of files under one profile.
type Orchestrator struct {
	fs     afero.Fs
	writer *Writer
}

// NewOrchestrator creates an orchestrator over fs, which must be rooted at the storage root.
func NewOrchestrator(fs afero.Fs) *Orchestrator {
	return &Orchestrator{fs: fs, writer: NewWriter(fs)}
}

// Upload validates the batch, writes every file that passed and aggregates the outcome.
//
// A batch larger than the profile allows is rejected as a whole. Otherwise files that
// fail validation are skipped and their siblings are still written. Files already
// written stay on disk regardless of sibling failures. The only returned error is
// ErrStorageUnavailable, when the profile directory cannot be created.
func (o *Orchestrator) Upload(files []domain.IncomingFile, cfg domain.Config) (domain.Result, error) {
	result := domain.Result{
		Succeeded: []domain.StoredReference{},
		Errors:    []string{},
	}

	v := validateBatch(files, cfg)
	for _, verr := range v.errors {
		result.Errors = append(result.Errors, verr.Error())
	}
	if v.tooMany || len(v.rejected) == len(files) {
		return result, nil
	}

	if err := EnsureDir(o.fs, uploadDir(cfg)); err != nil {
		return result, err
	}

	for i, f := range files {
		if v.rejected[i] {
			continue
		}
		ref, err := o.writer.Write(f, cfg)
		if err != nil {
			result.Errors = append(result.Errors, err.Error())
			continue
		}
		result.Succeeded = append(result.Succeeded, ref)
	}

	result.OverallSuccess = len(result.Succeeded) > 0
	return result, nil
}
