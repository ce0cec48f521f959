package content

import (
	"errors"

	domain "github.com/example/portfolio-uploads/domain/upload"
)

var (
	// ErrInvalidInput is returned when required record fields are missing.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUploadRejected is returned when files were supplied but none of them were stored.
	ErrUploadRejected = errors.New("upload rejected")
)

// Profiles holds the upload profile used for each record kind.
type Profiles struct {
	Projects     domain.Config
	Testimonials domain.Config
	Team         domain.Config
}

// DefaultProfiles returns the built-in profile for each record kind.
func DefaultProfiles() Profiles {
	return Profiles{
		Projects:     domain.ProjectAttachments(),
		Testimonials: domain.TestimonialPhoto(),
		Team:         domain.TeamPhoto(),
	}
}

// ProjectInput carries the fields for a new project.
type ProjectInput struct {
	Title       string
	Description string
	Files       []domain.IncomingFile
}

// ProjectUpdate carries a partial project update. Nil fields are left unchanged.
type ProjectUpdate struct {
	Title       *string
	Description *string
	Add         []domain.IncomingFile
	Remove      []string
}

// TestimonialInput carries the fields for a new testimonial.
type TestimonialInput struct {
	Author string
	Role   string
	Quote  string
	Photos []domain.IncomingFile
}

// TestimonialUpdate carries a partial testimonial update. A stored photo replaces the old one.
type TestimonialUpdate struct {
	Author      *string
	Role        *string
	Quote       *string
	Photos      []domain.IncomingFile
	RemovePhoto bool
}

// TeamMemberInput carries the fields for a new team member.
type TeamMemberInput struct {
	Name     string
	Position string
	Bio      string
	Photos   []domain.IncomingFile
}

// TeamMemberUpdate carries a partial team member update. A stored photo replaces the old one.
type TeamMemberUpdate struct {
	Name        *string
	Position    *string
	Bio         *string
	Photos      []domain.IncomingFile
	RemovePhoto bool
}
