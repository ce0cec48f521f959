package content

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// ErrNotFound is returned when a record is not found.
var ErrNotFound = errors.New("record not found")

// Repository provides access to portfolio records.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new content repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateProject saves a new project.
func (r *Repository) CreateProject(p *Project) error {
	return create(r.db, p, "project")
}

// FindProject retrieves a project by its ID.
func (r *Repository) FindProject(id string) (*Project, error) {
	return findByID[Project](r.db, id, "project")
}

// ListProjects retrieves all projects, oldest first.
func (r *Repository) ListProjects() ([]*Project, error) {
	return findAll[Project](r.db, "projects")
}

// UpdateProject overwrites every mutable column of an existing project.
func (r *Repository) UpdateProject(p *Project) error {
	return update(r.db, p, p.ID, "project")
}

// DeleteProject removes a project by ID.
func (r *Repository) DeleteProject(id string) error {
	return remove[Project](r.db, id, "project")
}

// CreateTestimonial saves a new testimonial.
func (r *Repository) CreateTestimonial(t *Testimonial) error {
	return create(r.db, t, "testimonial")
}

// FindTestimonial retrieves a testimonial by its ID.
func (r *Repository) FindTestimonial(id string) (*Testimonial, error) {
	return findByID[Testimonial](r.db, id, "testimonial")
}

// ListTestimonials retrieves all testimonials, oldest first.
func (r *Repository) ListTestimonials() ([]*Testimonial, error) {
	return findAll[Testimonial](r.db, "testimonials")
}

// UpdateTestimonial overwrites every mutable column of an existing testimonial.
func (r *Repository) UpdateTestimonial(t *Testimonial) error {
	return update(r.db, t, t.ID, "testimonial")
}

// DeleteTestimonial removes a testimonial by ID.
func (r *Repository) DeleteTestimonial(id string) error {
	return remove[Testimonial](r.db, id, "testimonial")
}

// CreateTeamMember saves a new team member.
func (r *Repository) CreateTeamMember(m *TeamMember) error {
	return create(r.db, m, "team member")
}

// FindTeamMember retrieves a team member by its ID.
func (r *Repository) FindTeamMember(id string) (*TeamMember, error) {
	return findByID[TeamMember](r.db, id, "team member")
}

// ListTeamMembers retrieves all team members, oldest first.
func (r *Repository) ListTeamMembers() ([]*TeamMember, error) {
	return findAll[TeamMember](r.db, "team members")
}

// UpdateTeamMember overwrites every mutable column of an existing team member.
func (r *Repository) UpdateTeamMember(m *TeamMember) error {
	return update(r.db, m, m.ID, "team member")
}

// DeleteTeamMember removes a team member by ID.
func (r *Repository) DeleteTeamMember(id string) error {
	return remove[TeamMember](r.db, id, "team member")
}

func create[T any](db *gorm.DB, record *T, kind string) error {
	if err := db.Create(record).Error; err != nil {
		return fmt.Errorf("failed to create %s: %w", kind, err)
	}
	return nil
}

func findByID[T any](db *gorm.DB, id, kind string) (*T, error) {
	var record T
	if err := db.First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find %s: %w", kind, err)
	}
	return &record, nil
}

func findAll[T any](db *gorm.DB, kind string) ([]*T, error) {
	records := []*T{}
	if err := db.Order("created_at").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to find %s: %w", kind, err)
	}
	return records, nil
}

// update writes zero values too, so a cleared photo or an emptied attachment list is persisted.
func update[T any](db *gorm.DB, record *T, id, kind string) error {
	result := db.Model(record).Where("id = ?", id).Select("*").Omit("id", "created_at").Updates(record)
	if err := result.Error; err != nil {
		return fmt.Errorf("failed to update %s: %w", kind, err)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func remove[T any](db *gorm.DB, id, kind string) error {
	result := db.Delete(new(T), "id = ?", id)
	if err := result.Error; err != nil {
		return fmt.Errorf("failed to delete %s: %w", kind, err)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
