package content

import (
	"context"
	"fmt"
	"slices"
	"strings"

	domain "github.com/example/portfolio-uploads/domain/upload"
	"github.com/example/portfolio-uploads/modules/uploads"
	"github.com/go-monolith/mono/pkg/types"
	"github.com/google/uuid"
)

// Uploader stores a batch of incoming files under an upload profile.
type Uploader interface {
	Upload(ctx context.Context, files []domain.IncomingFile, cfg domain.Config) (domain.Result, error)
}

// Service ties the stored files of each record to the record's lifecycle.
//
// Files are written before the record that references them is saved, and replaced
// or removed files are released only after the record no longer references them.
// A failed save releases the files written for it.
type Service struct {
	repo     *Repository
	uploader Uploader
	cleanup  uploads.CleanupPort
	profiles Profiles
	logger   types.Logger
}

// NewService creates a new content service.
func NewService(repo *Repository, uploader Uploader, cleanup uploads.CleanupPort, profiles Profiles, logger types.Logger) *Service {
	return &Service{
		repo:     repo,
		uploader: uploader,
		cleanup:  cleanup,
		profiles: profiles,
		logger:   logger,
	}
}

// CreateProject stores the attachments and saves a new project referencing them.
func (s *Service) CreateProject(ctx context.Context, in ProjectInput) (*Project, domain.Result, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, domain.Result{}, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}

	cfg := s.profiles.Projects
	result, err := s.store(ctx, in.Files, cfg)
	if err != nil {
		return nil, result, err
	}

	p := &Project{
		ID:          uuid.NewString(),
		Title:       in.Title,
		Description: in.Description,
		Attachments: result.Values(),
	}
	if err := s.repo.CreateProject(p); err != nil {
		s.release(ctx, p.Attachments, cfg.UploadRoot)
		return nil, result, err
	}

	s.logger.Info("Project created", "id", p.ID, "attachments", len(p.Attachments))
	return p, result, nil
}

// GetProject returns a project by ID.
func (s *Service) GetProject(_ context.Context, id string) (*Project, error) {
	return s.repo.FindProject(id)
}

// ListProjects returns all projects.
func (s *Service) ListProjects(_ context.Context) ([]*Project, error) {
	return s.repo.ListProjects()
}

// UpdateProject applies field changes, appends new attachments and drops the listed ones.
func (s *Service) UpdateProject(ctx context.Context, id string, in ProjectUpdate) (*Project, domain.Result, error) {
	p, err := s.repo.FindProject(id)
	if err != nil {
		return nil, domain.Result{}, err
	}

	if in.Title != nil {
		if strings.TrimSpace(*in.Title) == "" {
			return nil, domain.Result{}, fmt.Errorf("%w: title is required", ErrInvalidInput)
		}
		p.Title = *in.Title
	}
	if in.Description != nil {
		p.Description = *in.Description
	}

	for _, ref := range in.Remove {
		if !slices.Contains(p.Attachments, ref) {
			return nil, domain.Result{}, fmt.Errorf("%w: %q is not an attachment of this project", ErrInvalidInput, ref)
		}
	}
	kept := make([]string, 0, len(p.Attachments))
	for _, ref := range p.Attachments {
		if !slices.Contains(in.Remove, ref) {
			kept = append(kept, ref)
		}
	}

	cfg := s.profiles.Projects
	result, err := s.store(ctx, in.Add, cfg)
	if err != nil {
		return nil, result, err
	}

	removed := slices.Compact(slices.Sorted(slices.Values(in.Remove)))
	added := result.Values()
	p.Attachments = append(kept, added...)

	if err := s.repo.UpdateProject(p); err != nil {
		s.release(ctx, added, cfg.UploadRoot)
		return nil, result, err
	}
	s.release(ctx, removed, cfg.UploadRoot)

	s.logger.Info("Project updated", "id", p.ID, "added", len(added), "removed", len(removed))
	return p, result, nil
}

// DeleteProject removes a project and then releases its attachments.
func (s *Service) DeleteProject(ctx context.Context, id string) error {
	p, err := s.repo.FindProject(id)
	if err != nil {
		return err
	}
	if err := s.repo.DeleteProject(id); err != nil {
		return err
	}
	s.release(ctx, p.Attachments, s.profiles.Projects.UploadRoot)

	s.logger.Info("Project deleted", "id", id)
	return nil
}

// CreateTestimonial stores the optional photo and saves a new testimonial.
func (s *Service) CreateTestimonial(ctx context.Context, in TestimonialInput) (*Testimonial, domain.Result, error) {
	if strings.TrimSpace(in.Author) == "" || strings.TrimSpace(in.Quote) == "" {
		return nil, domain.Result{}, fmt.Errorf("%w: author and quote are required", ErrInvalidInput)
	}

	cfg := s.profiles.Testimonials
	photo, result, err := s.storePhoto(ctx, in.Photos, cfg)
	if err != nil {
		return nil, result, err
	}

	t := &Testimonial{
		ID:     uuid.NewString(),
		Author: in.Author,
		Role:   in.Role,
		Quote:  in.Quote,
		Photo:  photo,
	}
	if err := s.repo.CreateTestimonial(t); err != nil {
		s.release(ctx, refList(photo), cfg.UploadRoot)
		return nil, result, err
	}

	s.logger.Info("Testimonial created", "id", t.ID, "photo", t.Photo != "")
	return t, result, nil
}

// GetTestimonial returns a testimonial by ID.
func (s *Service) GetTestimonial(_ context.Context, id string) (*Testimonial, error) {
	return s.repo.FindTestimonial(id)
}

// ListTestimonials returns all testimonials.
func (s *Service) ListTestimonials(_ context.Context) ([]*Testimonial, error) {
	return s.repo.ListTestimonials()
}

// UpdateTestimonial applies field changes and replaces or removes the photo.
func (s *Service) UpdateTestimonial(ctx context.Context, id string, in TestimonialUpdate) (*Testimonial, domain.Result, error) {
	t, err := s.repo.FindTestimonial(id)
	if err != nil {
		return nil, domain.Result{}, err
	}

	if in.Author != nil {
		t.Author = *in.Author
	}
	if in.Role != nil {
		t.Role = *in.Role
	}
	if in.Quote != nil {
		t.Quote = *in.Quote
	}
	if strings.TrimSpace(t.Author) == "" || strings.TrimSpace(t.Quote) == "" {
		return nil, domain.Result{}, fmt.Errorf("%w: author and quote are required", ErrInvalidInput)
	}

	cfg := s.profiles.Testimonials
	result, err := s.replacePhoto(ctx, &t.Photo, in.Photos, in.RemovePhoto, cfg, func() error {
		return s.repo.UpdateTestimonial(t)
	})
	if err != nil {
		return nil, result, err
	}

	s.logger.Info("Testimonial updated", "id", t.ID)
	return t, result, nil
}

// DeleteTestimonial removes a testimonial and then releases its photo.
func (s *Service) DeleteTestimonial(ctx context.Context, id string) error {
	t, err := s.repo.FindTestimonial(id)
	if err != nil {
		return err
	}
	if err := s.repo.DeleteTestimonial(id); err != nil {
		return err
	}
	s.release(ctx, refList(t.Photo), s.profiles.Testimonials.UploadRoot)

	s.logger.Info("Testimonial deleted", "id", id)
	return nil
}

// CreateTeamMember stores the optional photo and saves a new team member.
func (s *Service) CreateTeamMember(ctx context.Context, in TeamMemberInput) (*TeamMember, domain.Result, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, domain.Result{}, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}

	cfg := s.profiles.Team
	photo, result, err := s.storePhoto(ctx, in.Photos, cfg)
	if err != nil {
		return nil, result, err
	}

	m := &TeamMember{
		ID:       uuid.NewString(),
		Name:     in.Name,
		Position: in.Position,
		Bio:      in.Bio,
		Photo:    photo,
	}
	if err := s.repo.CreateTeamMember(m); err != nil {
		s.release(ctx, refList(photo), cfg.UploadRoot)
		return nil, result, err
	}

	s.logger.Info("Team member created", "id", m.ID, "photo", m.Photo != "")
	return m, result, nil
}

// GetTeamMember returns a team member by ID.
func (s *Service) GetTeamMember(_ context.Context, id string) (*TeamMember, error) {
	return s.repo.FindTeamMember(id)
}

// ListTeamMembers returns all team members.
func (s *Service) ListTeamMembers(_ context.Context) ([]*TeamMember, error) {
	return s.repo.ListTeamMembers()
}

// UpdateTeamMember applies field changes and replaces or removes the photo.
func (s *Service) UpdateTeamMember(ctx context.Context, id string, in TeamMemberUpdate) (*TeamMember, domain.Result, error) {
	m, err := s.repo.FindTeamMember(id)
	if err != nil {
		return nil, domain.Result{}, err
	}

	if in.Name != nil {
		m.Name = *in.Name
	}
	if in.Position != nil {
		m.Position = *in.Position
	}
	if in.Bio != nil {
		m.Bio = *in.Bio
	}
	if strings.TrimSpace(m.Name) == "" {
		return nil, domain.Result{}, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}

	cfg := s.profiles.Team
	result, err := s.replacePhoto(ctx, &m.Photo, in.Photos, in.RemovePhoto, cfg, func() error {
		return s.repo.UpdateTeamMember(m)
	})
	if err != nil {
		return nil, result, err
	}

	s.logger.Info("Team member updated", "id", m.ID)
	return m, result, nil
}

// DeleteTeamMember removes a team member and then releases the photo.
func (s *Service) DeleteTeamMember(ctx context.Context, id string) error {
	m, err := s.repo.FindTeamMember(id)
	if err != nil {
		return err
	}
	if err := s.repo.DeleteTeamMember(id); err != nil {
		return err
	}
	s.release(ctx, refList(m.Photo), s.profiles.Team.UploadRoot)

	s.logger.Info("Team member deleted", "id", id)
	return nil
}

// store uploads files under cfg. Supplying files of which none could be stored is an error.
func (s *Service) store(ctx context.Context, files []domain.IncomingFile, cfg domain.Config) (domain.Result, error) {
	if len(files) == 0 {
		return domain.Result{Succeeded: []domain.StoredReference{}, Errors: []string{}}, nil
	}

	result, err := s.uploader.Upload(ctx, files, cfg)
	if err != nil {
		return result, err
	}
	if !result.OverallSuccess {
		return result, fmt.Errorf("%w: %s", ErrUploadRejected, strings.Join(result.Errors, "; "))
	}
	return result, nil
}

// storePhoto uploads the submitted photos as one batch and returns the stored reference.
// Photo profiles allow a single file, so a larger batch is rejected by the uploader.
func (s *Service) storePhoto(ctx context.Context, photos []domain.IncomingFile, cfg domain.Config) (string, domain.Result, error) {
	result, err := s.store(ctx, photos, cfg)
	if err != nil || len(result.Succeeded) == 0 {
		return "", result, err
	}
	if len(result.Succeeded) > 1 {
		extra := make([]string, 0, len(result.Succeeded)-1)
		for _, ref := range result.Succeeded[1:] {
			extra = append(extra, ref.Value)
		}
		s.release(ctx, extra, cfg.UploadRoot)
	}
	return result.Succeeded[0].Value, result, nil
}

// replacePhoto writes the new photo, saves the record, and only then releases the old photo.
func (s *Service) replacePhoto(
	ctx context.Context,
	current *string,
	photos []domain.IncomingFile,
	removePhoto bool,
	cfg domain.Config,
	save func() error,
) (domain.Result, error) {
	old := *current

	next, result, err := s.storePhoto(ctx, photos, cfg)
	if err != nil {
		return result, err
	}
	switch {
	case next != "":
		*current = next
	case removePhoto:
		*current = ""
	}

	if err := save(); err != nil {
		*current = old
		s.release(ctx, refList(next), cfg.UploadRoot)
		return result, err
	}

	if old != "" && old != *current {
		s.release(ctx, refList(old), cfg.UploadRoot)
	}
	return result, nil
}

// release deletes stored references best-effort. Failures are logged, never returned.
func (s *Service) release(ctx context.Context, refs []string, uploadRoot string) {
	if len(refs) == 0 {
		return
	}

	outcome, err := s.cleanup.DeleteFiles(ctx, refs, uploadRoot)
	if err != nil {
		s.logger.Warn("Failed to release stored files",
			"root", uploadRoot,
			"references", refs,
			"error", err)
		return
	}
	if len(outcome.Failed) > 0 {
		failed := make([]string, 0, len(outcome.Failed))
		for _, ref := range outcome.Failed {
			failed = append(failed, ref.Value)
		}
		s.logger.Warn("Some stored files were not released",
			"root", uploadRoot,
			"failed", failed)
	}
}

func refList(ref string) []string {
	if ref == "" {
		return nil
	}
	return []string{ref}
}
