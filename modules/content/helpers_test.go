package content

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	domain "github.com/example/portfolio-uploads/domain/upload"
	"github.com/go-monolith/mono/pkg/types"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// mockLogger implements types.Logger for testing
type mockLogger struct{}

func (m *mockLogger) Debug(_ string, _ ...any) {}
func (m *mockLogger) Info(_ string, _ ...any)  {}
func (m *mockLogger) Warn(_ string, _ ...any)  {}
func (m *mockLogger) Error(_ string, _ ...any) {}
func (m *mockLogger) With(_ ...any) types.Logger {
	return m
}
func (m *mockLogger) WithModule(_ string) types.Logger {
	return m
}
func (m *mockLogger) WithError(_ error) types.Logger {
	return m
}

// setupTestDB creates an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.AutoMigrate(&Project{}, &Testimonial{}, &TeamMember{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// fakeUploader stores every file whose name does not start with "bad" and
// hands out sequential references.
type fakeUploader struct {
	mu    sync.Mutex
	next  int
	calls int
	err   error
}

func (f *fakeUploader) Upload(_ context.Context, files []domain.IncomingFile, cfg domain.Config) (domain.Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls++
	result := domain.Result{Succeeded: []domain.StoredReference{}, Errors: []string{}}
	if f.err != nil {
		return result, f.err
	}
	for _, file := range files {
		if strings.HasPrefix(file.Name, "bad") {
			result.Errors = append(result.Errors, file.Name+": rejected")
			continue
		}
		f.next++
		name := "stored-" + string(rune('a'+f.next-1)) + ".png"
		if cfg.ReferenceStyle == domain.ReferencePath {
			name = "/" + cfg.UploadRoot + "/" + name
		}
		result.Succeeded = append(result.Succeeded, domain.StoredReference{Value: name})
	}
	result.OverallSuccess = len(result.Succeeded) > 0
	return result, nil
}

// fakeCleanup records released references.
type fakeCleanup struct {
	mu       sync.Mutex
	released map[string][]string
	err      error
}

func newFakeCleanup() *fakeCleanup {
	return &fakeCleanup{released: make(map[string][]string)}
}

func (f *fakeCleanup) DeleteFiles(_ context.Context, refs []string, uploadRoot string) (domain.DeleteOutcome, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.err != nil {
		return domain.DeleteOutcome{}, f.err
	}
	f.released[uploadRoot] = append(f.released[uploadRoot], refs...)
	return domain.DeleteOutcome{Deleted: domain.References(refs...), Failed: []domain.StoredReference{}}, nil
}

func (f *fakeCleanup) releasedUnder(root string) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.released[root]
}

var errBoom = errors.New("boom")

func photo(name string) *domain.IncomingFile {
	return &domain.IncomingFile{Name: name, MimeType: "image/png", Size: 1, Content: strings.NewReader("x")}
}

func photos(names ...string) []domain.IncomingFile {
	files := make([]domain.IncomingFile, 0, len(names))
	for _, name := range names {
		files = append(files, *photo(name))
	}
	return files
}

func strPtr(s string) *string {
	return &s
}
