package content

import "time"

// Project is a portfolio project with downloadable attachments.
type Project struct {
	ID          string    `gorm:"primarykey;size:36" json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Title       string    `gorm:"size:200;not null" json:"title"`
	Description string    `gorm:"size:2000" json:"description"`
	Attachments []string  `gorm:"type:text;serializer:json" json:"attachments"`
}

// TableName returns the table name for Project model.
func (Project) TableName() string {
	return "projects"
}

// Testimonial is a client quote with an optional author photo.
type Testimonial struct {
	ID        string    `gorm:"primarykey;size:36" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Author    string    `gorm:"size:100;not null" json:"author"`
	Role      string    `gorm:"size:100" json:"role"`
	Quote     string    `gorm:"size:2000;not null" json:"quote"`
	Photo     string    `gorm:"size:255" json:"photo"`
}

// TableName returns the table name for Testimonial model.
func (Testimonial) TableName() string {
	return "testimonials"
}

// TeamMember is a member of the team page with an optional photo.
type TeamMember struct {
	ID        string    `gorm:"primarykey;size:36" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	Position  string    `gorm:"size:100" json:"position"`
	Bio       string    `gorm:"size:2000" json:"bio"`
	Photo     string    `gorm:"size:255" json:"photo"`
}

// TableName returns the table name for TeamMember model.
func (TeamMember) TableName() string {
	return "team_members"
}
