package uploads

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"
	domain "github.com/example/portfolio-uploads/domain/upload"
)

// Validate checks a batch against a profile without reading any content.
// Every violation is reported: a batch-level error when the batch is too large,
// then per-file size and type errors.
func Validate(files []domain.IncomingFile, cfg domain.Config) []domain.ValidationError {
	return validateBatch(files, cfg).errors
}

// batchValidation is the outcome of one validation pass over a batch.
type batchValidation struct {
	errors   []domain.ValidationError
	tooMany  bool
	rejected map[int]bool
}

func validateBatch(files []domain.IncomingFile, cfg domain.Config) batchValidation {
	v := batchValidation{rejected: make(map[int]bool, len(files))}

	if len(files) > cfg.MaxFiles {
		v.tooMany = true
		v.errors = append(v.errors, domain.ValidationError{
			Reason: fmt.Sprintf("too many files: at most %d allowed, got %d", cfg.MaxFiles, len(files)),
		})
	}

	for i, f := range files {
		if errs := validateFile(f, cfg); len(errs) > 0 {
			v.rejected[i] = true
			v.errors = append(v.errors, errs...)
		}
	}

	return v
}

// validateFile returns the size and type violations of a single file.
func validateFile(f domain.IncomingFile, cfg domain.Config) []domain.ValidationError {
	var errs []domain.ValidationError

	if f.Size > cfg.MaxFileSize {
		errs = append(errs, domain.ValidationError{
			FileName: f.Name,
			Reason:   fmt.Sprintf("file exceeds the maximum size of %s", humanize.IBytes(uint64(cfg.MaxFileSize))),
		})
	}

	if _, ok := cfg.AllowedTypes[f.MimeType]; !ok {
		errs = append(errs, domain.ValidationError{
			FileName: f.Name,
			Reason: fmt.Sprintf("file type %q is not allowed (allowed: %s)",
				f.MimeType, strings.Join(allowedTypeList(cfg), ", ")),
		})
	}

	return errs
}

// allowedTypeList returns the profile's MIME types in a stable order.
func allowedTypeList(cfg domain.Config) []string {
	types := make([]string, 0, len(cfg.AllowedTypes))
	for t := range cfg.AllowedTypes {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}
