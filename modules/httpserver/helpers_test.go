package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"
	"time"

	"github.com/example/portfolio-uploads/modules/content"
	"github.com/example/portfolio-uploads/modules/uploads"
	"github.com/gin-gonic/gin"
	"github.com/go-monolith/mono/pkg/types"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
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

const testSecret = "test-secret"

var pngData = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\x0dIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")

type testServer struct {
	engine *gin.Engine
	tokens *TokenManager
	fs     afero.Fs
}

// newTestServer wires uploads, content and HTTP modules over an in-memory
// filesystem and an in-memory database.
func newTestServer(t *testing.T) *testServer {
	t.Helper()
	ctx := context.Background()
	logger := &mockLogger{}
	fs := afero.NewMemMapFs()

	up := uploads.NewModuleWithFs(fs, "public", logger)
	require.NoError(t, up.Start(ctx))

	cm := content.NewModule(":memory:", false, content.DefaultProfiles(), logger)
	cm.SetUploadsModule(up)
	require.NoError(t, cm.Start(ctx))
	t.Cleanup(func() { _ = cm.Stop(ctx) })

	tokens := NewTokenManager(testSecret, "portfolio-test")
	m := NewModule(0, 8<<20, tokens, logger)
	m.SetUploadsModule(up)
	m.SetContentModule(cm)
	require.NoError(t, m.buildEngine())

	return &testServer{engine: m.engine, tokens: tokens, fs: fs}
}

func (s *testServer) adminToken(t *testing.T) string {
	t.Helper()
	token, err := s.tokens.Issue("admin@example.com", RoleAdmin, time.Hour)
	require.NoError(t, err)
	return token
}

func (s *testServer) do(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

// part is one multipart file part. An empty contentType sends no Content-Type header.
type part struct {
	field       string
	filename    string
	contentType string
	data        []byte
}

func multipartRequest(t *testing.T, method, target, token string, fields map[string][]string, parts ...part) *http.Request {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for key, values := range fields {
		for _, v := range values {
			require.NoError(t, mw.WriteField(key, v))
		}
	}
	for _, p := range parts {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, p.field, p.filename))
		if p.contentType != "" {
			header.Set("Content-Type", p.contentType)
		}
		w, err := mw.CreatePart(header)
		require.NoError(t, err)
		_, err = w.Write(p.data)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(method, target, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func decode[T any](t *testing.T, body io.Reader) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(body).Decode(&v))
	return v
}
