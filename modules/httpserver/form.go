package httpserver

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	domain "github.com/example/portfolio-uploads/domain/upload"
	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"
)

// genericContentType is what multipart writers send when the client does not know the type.
const genericContentType = "application/octet-stream"

// requestForm parses a multipart body. Bodies that are not multipart yield a form with values only.
func requestForm(c *gin.Context) (*multipart.Form, error) {
	form, err := c.MultipartForm()
	if errors.Is(err, http.ErrNotMultipart) {
		if err := c.Request.ParseForm(); err != nil {
			return nil, err
		}
		return &multipart.Form{
			Value: c.Request.PostForm,
			File:  map[string][]*multipart.FileHeader{},
		}, nil
	}
	return form, err
}

// formValue returns the first value of key, or "".
func formValue(form *multipart.Form, key string) string {
	if values := form.Value[key]; len(values) > 0 {
		return values[0]
	}
	return ""
}

// optionalValue returns the first value of key, or nil when the field was not sent.
func optionalValue(form *multipart.Form, key string) *string {
	values, ok := form.Value[key]
	if !ok || len(values) == 0 {
		return nil
	}
	v := values[0]
	return &v
}

// openFiles opens every part under key as an incoming file. The returned closer
// must be called once the files have been consumed.
func openFiles(form *multipart.Form, key string) ([]domain.IncomingFile, func(), error) {
	headers := form.File[key]
	opened := make([]multipart.File, 0, len(headers))
	closeAll := func() {
		for _, f := range opened {
			f.Close()
		}
	}

	files := make([]domain.IncomingFile, 0, len(headers))
	for _, header := range headers {
		f, err := header.Open()
		if err != nil {
			closeAll()
			return nil, func() {}, fmt.Errorf("failed to open %s: %w", header.Filename, err)
		}
		opened = append(opened, f)

		mimeType, err := partContentType(header, f)
		if err != nil {
			closeAll()
			return nil, func() {}, fmt.Errorf("failed to read %s: %w", header.Filename, err)
		}

		files = append(files, domain.IncomingFile{
			Name:     header.Filename,
			MimeType: mimeType,
			Size:     header.Size,
			Content:  f,
		})
	}
	return files, closeAll, nil
}

// partContentType returns the declared media type of a part, sniffing the content
// when the client sent none or only the generic binary type.
func partContentType(header *multipart.FileHeader, f multipart.File) (string, error) {
	declared, _, _ := strings.Cut(header.Header.Get("Content-Type"), ";")
	declared = strings.ToLower(strings.TrimSpace(declared))
	if declared != "" && declared != genericContentType {
		return declared, nil
	}

	detected, err := mimetype.DetectReader(f)
	if err != nil {
		return "", err
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return "", err
	}

	sniffed, _, _ := strings.Cut(detected.String(), ";")
	return sniffed, nil
}
