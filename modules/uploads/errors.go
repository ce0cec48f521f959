package uploads

import "errors"

// Sentinel errors for upload storage operations.
var (
	// ErrStorageUnavailable is returned when a profile's directory cannot be created.
	ErrStorageUnavailable = errors.New("upload storage unavailable")

	// ErrEmptyContent is returned when an incoming file has no content reader.
	ErrEmptyContent = errors.New("file content is missing")

	// ErrForbiddenPath is returned when a requested path escapes the storage root.
	ErrForbiddenPath = errors.New("forbidden path")

	// ErrUnsupportedType is returned when a requested file's extension is not servable.
	ErrUnsupportedType = errors.New("unsupported file type")

	// ErrNotFound is returned when a requested file does not exist.
	ErrNotFound = errors.New("file not found")
)
