package upload

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// ReferenceStyle selects how a stored file is referenced by the record that owns it.
type ReferenceStyle int

const (
	// ReferenceFilename stores the bare generated filename ("<uuid>.png").
	ReferenceFilename ReferenceStyle = iota
	// ReferencePath stores a relative URL path ("/<root>/<uuid>.png").
	ReferencePath
)

// Config is an upload profile: size, type, location and count rules for one feature.
// Profiles are passed by value and must not be mutated once built.
type Config struct {
	Name           string              `json:"name"`
	MaxFileSize    int64               `json:"max_file_size"`
	AllowedTypes   map[string][]string `json:"allowed_types"`
	UploadRoot     string              `json:"upload_root"`
	MaxFiles       int                 `json:"max_files"`
	ReferenceStyle ReferenceStyle      `json:"reference_style"`
}

// Validate reports whether the profile is usable.
func (c Config) Validate() error {
	if c.MaxFileSize <= 0 {
		return fmt.Errorf("%w: profile %q: max file size must be positive", ErrInvalidProfile, c.Name)
	}
	if c.MaxFiles <= 0 {
		return fmt.Errorf("%w: profile %q: max files must be positive", ErrInvalidProfile, c.Name)
	}
	if len(c.AllowedTypes) == 0 {
		return fmt.Errorf("%w: profile %q: no allowed types", ErrInvalidProfile, c.Name)
	}
	for mimeType, exts := range c.AllowedTypes {
		if len(exts) == 0 {
			return fmt.Errorf("%w: profile %q: no extensions for %s", ErrInvalidProfile, c.Name, mimeType)
		}
	}
	root := strings.Trim(c.UploadRoot, "/")
	if root == "" {
		return fmt.Errorf("%w: profile %q: upload root is required", ErrInvalidProfile, c.Name)
	}
	for _, segment := range strings.Split(root, "/") {
		if segment == ".." || segment == "." || segment == "" {
			return fmt.Errorf("%w: profile %q: invalid upload root %q", ErrInvalidProfile, c.Name, c.UploadRoot)
		}
	}
	return nil
}

// IncomingFile is a caller-supplied file for one upload call. Content is read exactly once.
type IncomingFile struct {
	Name     string
	MimeType string
	Size     int64
	Content  io.Reader
}

// StoredReference identifies a file after it has been written. The owning record persists Value.
type StoredReference struct {
	Value string `json:"value"`
}

func (r StoredReference) String() string {
	return r.Value
}

// ValidationError describes one rejected file, or a whole-batch violation when FileName is empty.
type ValidationError struct {
	FileName string `json:"file_name,omitempty"`
	Reason   string `json:"reason"`
}

func (e ValidationError) Error() string {
	if e.FileName == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.FileName, e.Reason)
}

// WriteError is an I/O failure while persisting a single file.
type WriteError struct {
	FileName string
	Err      error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("failed to store %s: %v", e.FileName, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// Result is the outcome of one upload batch.
// OverallSuccess is true when at least one file was stored, even if siblings failed.
type Result struct {
	Succeeded      []StoredReference `json:"succeeded"`
	Errors         []string          `json:"errors"`
	OverallSuccess bool              `json:"overall_success"`
}

// Values returns the stored reference strings in order.
func (r Result) Values() []string {
	values := make([]string, 0, len(r.Succeeded))
	for _, ref := range r.Succeeded {
		values = append(values, ref.Value)
	}
	return values
}

// DeleteOutcome partitions the references passed to a delete call.
type DeleteOutcome struct {
	Deleted []StoredReference `json:"deleted"`
	Failed  []StoredReference `json:"failed"`
}

// ErrInvalidProfile is returned for an unknown or unusable profile.
var ErrInvalidProfile = errors.New("invalid upload profile")

// References wraps raw values as stored references.
func References(values ...string) []StoredReference {
	refs := make([]StoredReference, 0, len(values))
	for _, v := range values {
		refs = append(refs, StoredReference{Value: v})
	}
	return refs
}
