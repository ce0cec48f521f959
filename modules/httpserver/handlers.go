package httpserver

import (
	"context"
	"errors"
	"net/http"

	domain "github.com/example/portfolio-uploads/domain/upload"
	"github.com/example/portfolio-uploads/modules/content"
	"github.com/example/portfolio-uploads/modules/uploads"
	"github.com/gin-gonic/gin"
	"github.com/go-monolith/mono"
)

// Handlers contains HTTP request handlers for records and stored files.
type Handlers struct {
	content *content.Service
	uploads *uploads.Service
	checks  map[string]mono.HealthCheckableModule
}

// NewHandlers creates a new handlers instance.
func NewHandlers(contentService *content.Service, uploadService *uploads.Service, checks map[string]mono.HealthCheckableModule) *Handlers {
	return &Handlers{
		content: contentService,
		uploads: uploadService,
		checks:  checks,
	}
}

// writeError maps service errors to HTTP status codes.
func writeError(c *gin.Context, err error, result domain.Result) {
	switch {
	case errors.Is(err, content.ErrNotFound), errors.Is(err, uploads.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "not_found", Message: err.Error()})
	case errors.Is(err, content.ErrInvalidInput), errors.Is(err, uploads.ErrUnsupportedType):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "bad_request", Message: err.Error()})
	case errors.Is(err, uploads.ErrForbiddenPath):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "forbidden", Message: "Path is not allowed"})
	case errors.Is(err, content.ErrUploadRejected):
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "upload_rejected",
			Message: "None of the files could be stored",
			Errors:  result.Errors,
		})
	case errors.Is(err, uploads.ErrStorageUnavailable):
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "storage_unavailable", Message: err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal_error", Message: err.Error()})
	}
}

// respondRecord writes a created or updated record along with per-file upload errors.
func respondRecord(c *gin.Context, status int, record any, result domain.Result) {
	errs := result.Errors
	if errs == nil {
		errs = []string{}
	}
	c.JSON(status, RecordResponse{Success: true, Data: record, Errors: errs})
}

// HealthCheck handles GET /health.
func (h *Handlers) HealthCheck(c *gin.Context) {
	resp := HealthResponse{Status: "healthy", Modules: make(map[string]ModuleHealth, len(h.checks))}
	status := http.StatusOK
	for name, module := range h.checks {
		health := module.Health(c.Request.Context())
		resp.Modules[name] = ModuleHealth{Healthy: health.Healthy, Message: health.Message}
		if !health.Healthy {
			resp.Status = "unhealthy"
			status = http.StatusServiceUnavailable
		}
	}
	c.JSON(status, resp)
}

// ServeUpload streams a stored file (GET /uploads/*filepath).
func (h *Handlers) ServeUpload(c *gin.Context) {
	stored, err := h.uploads.Open(c.Request.Context(), c.Param("filepath"))
	if err != nil {
		writeError(c, err, domain.Result{})
		return
	}
	defer stored.File.Close()

	c.DataFromReader(http.StatusOK, stored.Size, stored.ContentType, stored.File, map[string]string{
		"X-Content-Type-Options": "nosniff",
		"Cache-Control":          "public, max-age=31536000, immutable",
	})
}

// ListProjects handles GET /api/v1/projects.
func (h *Handlers) ListProjects(c *gin.Context) {
	list(c, h.content.ListProjects)
}

// GetProject handles GET /api/v1/projects/:id.
func (h *Handlers) GetProject(c *gin.Context) {
	get(c, h.content.GetProject)
}

// CreateProject handles POST /api/v1/admin/projects.
func (h *Handlers) CreateProject(c *gin.Context) {
	form, err := requestForm(c)
	if err != nil {
		badForm(c, err)
		return
	}
	files, closeFiles, err := openFiles(form, "files")
	defer closeFiles()
	if err != nil {
		badForm(c, err)
		return
	}

	p, result, err := h.content.CreateProject(c.Request.Context(), content.ProjectInput{
		Title:       formValue(form, "title"),
		Description: formValue(form, "description"),
		Files:       files,
	})
	if err != nil {
		writeError(c, err, result)
		return
	}
	respondRecord(c, http.StatusCreated, p, result)
}

// UpdateProject handles PUT /api/v1/admin/projects/:id.
func (h *Handlers) UpdateProject(c *gin.Context) {
	form, err := requestForm(c)
	if err != nil {
		badForm(c, err)
		return
	}
	files, closeFiles, err := openFiles(form, "files")
	defer closeFiles()
	if err != nil {
		badForm(c, err)
		return
	}

	p, result, err := h.content.UpdateProject(c.Request.Context(), c.Param("id"), content.ProjectUpdate{
		Title:       optionalValue(form, "title"),
		Description: optionalValue(form, "description"),
		Add:         files,
		Remove:      form.Value["remove"],
	})
	if err != nil {
		writeError(c, err, result)
		return
	}
	respondRecord(c, http.StatusOK, p, result)
}

// DeleteProject handles DELETE /api/v1/admin/projects/:id.
func (h *Handlers) DeleteProject(c *gin.Context) {
	remove(c, h.content.DeleteProject)
}

// ListTestimonials handles GET /api/v1/testimonials.
func (h *Handlers) ListTestimonials(c *gin.Context) {
	list(c, h.content.ListTestimonials)
}

// GetTestimonial handles GET /api/v1/testimonials/:id.
func (h *Handlers) GetTestimonial(c *gin.Context) {
	get(c, h.content.GetTestimonial)
}

// CreateTestimonial handles POST /api/v1/admin/testimonials.
func (h *Handlers) CreateTestimonial(c *gin.Context) {
	form, err := requestForm(c)
	if err != nil {
		badForm(c, err)
		return
	}
	photos, closeFiles, err := openFiles(form, "photo")
	defer closeFiles()
	if err != nil {
		badForm(c, err)
		return
	}

	t, result, err := h.content.CreateTestimonial(c.Request.Context(), content.TestimonialInput{
		Author: formValue(form, "author"),
		Role:   formValue(form, "role"),
		Quote:  formValue(form, "quote"),
		Photos: photos,
	})
	if err != nil {
		writeError(c, err, result)
		return
	}
	respondRecord(c, http.StatusCreated, t, result)
}

// UpdateTestimonial handles PUT /api/v1/admin/testimonials/:id.
func (h *Handlers) UpdateTestimonial(c *gin.Context) {
	form, err := requestForm(c)
	if err != nil {
		badForm(c, err)
		return
	}
	photos, closeFiles, err := openFiles(form, "photo")
	defer closeFiles()
	if err != nil {
		badForm(c, err)
		return
	}

	t, result, err := h.content.UpdateTestimonial(c.Request.Context(), c.Param("id"), content.TestimonialUpdate{
		Author:      optionalValue(form, "author"),
		Role:        optionalValue(form, "role"),
		Quote:       optionalValue(form, "quote"),
		Photos:      photos,
		RemovePhoto: formValue(form, "remove_photo") == "true",
	})
	if err != nil {
		writeError(c, err, result)
		return
	}
	respondRecord(c, http.StatusOK, t, result)
}

// DeleteTestimonial handles DELETE /api/v1/admin/testimonials/:id.
func (h *Handlers) DeleteTestimonial(c *gin.Context) {
	remove(c, h.content.DeleteTestimonial)
}

// ListTeam handles GET /api/v1/team.
func (h *Handlers) ListTeam(c *gin.Context) {
	list(c, h.content.ListTeamMembers)
}

// GetTeamMember handles GET /api/v1/team/:id.
func (h *Handlers) GetTeamMember(c *gin.Context) {
	get(c, h.content.GetTeamMember)
}

// CreateTeamMember handles POST /api/v1/admin/team.
func (h *Handlers) CreateTeamMember(c *gin.Context) {
	form, err := requestForm(c)
	if err != nil {
		badForm(c, err)
		return
	}
	photos, closeFiles, err := openFiles(form, "photo")
	defer closeFiles()
	if err != nil {
		badForm(c, err)
		return
	}

	m, result, err := h.content.CreateTeamMember(c.Request.Context(), content.TeamMemberInput{
		Name:     formValue(form, "name"),
		Position: formValue(form, "position"),
		Bio:      formValue(form, "bio"),
		Photos:   photos,
	})
	if err != nil {
		writeError(c, err, result)
		return
	}
	respondRecord(c, http.StatusCreated, m, result)
}

// UpdateTeamMember handles PUT /api/v1/admin/team/:id.
func (h *Handlers) UpdateTeamMember(c *gin.Context) {
	form, err := requestForm(c)
	if err != nil {
		badForm(c, err)
		return
	}
	photos, closeFiles, err := openFiles(form, "photo")
	defer closeFiles()
	if err != nil {
		badForm(c, err)
		return
	}

	m, result, err := h.content.UpdateTeamMember(c.Request.Context(), c.Param("id"), content.TeamMemberUpdate{
		Name:        optionalValue(form, "name"),
		Position:    optionalValue(form, "position"),
		Bio:         optionalValue(form, "bio"),
		Photos:      photos,
		RemovePhoto: formValue(form, "remove_photo") == "true",
	})
	if err != nil {
		writeError(c, err, result)
		return
	}
	respondRecord(c, http.StatusOK, m, result)
}

// DeleteTeamMember handles DELETE /api/v1/admin/team/:id.
func (h *Handlers) DeleteTeamMember(c *gin.Context) {
	remove(c, h.content.DeleteTeamMember)
}

func list[T any](c *gin.Context, fetch func(context.Context) ([]*T, error)) {
	records, err := fetch(c.Request.Context())
	if err != nil {
		writeError(c, err, domain.Result{})
		return
	}
	c.JSON(http.StatusOK, ListResponse{Data: records, Count: len(records)})
}

func get[T any](c *gin.Context, fetch func(context.Context, string) (*T, error)) {
	record, err := fetch(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err, domain.Result{})
		return
	}
	c.JSON(http.StatusOK, record)
}

func remove(c *gin.Context, del func(context.Context, string) error) {
	if err := del(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err, domain.Result{})
		return
	}
	c.Status(http.StatusNoContent)
}

func badForm(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid_form", Message: err.Error()})
}
