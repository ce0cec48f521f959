package upload

import "fmt"

// Profile names.
const (
	ProfileProjectAttachments = "project-attachments"
	ProfileTestimonialPhoto   = "testimonial-photo"
	ProfileTeamPhoto          = "team-photo"
)

const (
	mebibyte = 1024 * 1024

	photoMaxSize      = 5 * mebibyte
	attachmentMaxSize = 10 * mebibyte
	maxAttachments    = 20
)

func photoTypes() map[string][]string {
	return map[string][]string{
		"image/jpeg": {".jpg", ".jpeg"},
		"image/png":  {".png"},
		"image/webp": {".webp"},
	}
}

// ProjectAttachments accepts images and documents for a portfolio project.
func ProjectAttachments() Config {
	types := photoTypes()
	types["image/gif"] = []string{".gif"}
	types["application/pdf"] = []string{".pdf"}
	types["application/msword"] = []string{".doc"}
	types["application/vnd.openxmlformats-officedocument.wordprocessingml.document"] = []string{".docx"}
	return Config{
		Name:           ProfileProjectAttachments,
		MaxFileSize:    attachmentMaxSize,
		AllowedTypes:   types,
		UploadRoot:     "projects",
		MaxFiles:       maxAttachments,
		ReferenceStyle: ReferencePath,
	}
}

// TestimonialPhoto accepts a single image for a testimonial author.
func TestimonialPhoto() Config {
	return Config{
		Name:           ProfileTestimonialPhoto,
		MaxFileSize:    photoMaxSize,
		AllowedTypes:   photoTypes(),
		UploadRoot:     "testimonials",
		MaxFiles:       1,
		ReferenceStyle: ReferenceFilename,
	}
}

// TeamPhoto accepts a single image for a team member.
func TeamPhoto() Config {
	return Config{
		Name:           ProfileTeamPhoto,
		MaxFileSize:    photoMaxSize,
		AllowedTypes:   photoTypes(),
		UploadRoot:     "team",
		MaxFiles:       1,
		ReferenceStyle: ReferenceFilename,
	}
}

// Profiles returns fresh copies of all built-in profiles keyed by name.
func Profiles() map[string]Config {
	return map[string]Config{
		ProfileProjectAttachments: ProjectAttachments(),
		ProfileTestimonialPhoto:   TestimonialPhoto(),
		ProfileTeamPhoto:          TeamPhoto(),
	}
}

// ProfileByName returns the built-in profile with the given name.
func ProfileByName(name string) (Config, error) {
	cfg, ok := Profiles()[name]
	if !ok {
		return Config{}, fmt.Errorf("%w: unknown name %q", ErrInvalidProfile, name)
	}
	return cfg, nil
}

// WithLimits returns a copy of c with overridden limits. Non-positive values keep the current limit.
func (c Config) WithLimits(maxFileSize int64, maxFiles int) Config {
	out := c
	out.AllowedTypes = make(map[string][]string, len(c.AllowedTypes))
	for mimeType, exts := range c.AllowedTypes {
		out.AllowedTypes[mimeType] = append([]string(nil), exts...)
	}
	if maxFileSize > 0 {
		out.MaxFileSize = maxFileSize
	}
	if maxFiles > 0 {
		out.MaxFiles = maxFiles
	}
	return out
}
