package certificates

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Layout positions the text overlay for one template. Coordinates are in mm
// on a landscape A4 page (297x210). The course line is currently not drawn
// but its position is kept so templates that want it can opt back in.
type Layout struct {
	NameX      float64 `json:"name_x"`
	NameY      float64 `json:"name_y"`
	NameSize   float64 `json:"name_size"`
	CourseY    float64 `json:"course_y"`
	CourseSize float64 `json:"course_size"`
	DateY      float64 `json:"date_y"`
	DateSize   float64 `json:"date_size"`
}

// Category maps a template category to the course-name keywords that select it.
// Categories are matched in table order, keywords in listed order.
type Category struct {
	Name     string   `json:"name"`
	Keywords []string `json:"keywords"`
}

// DefaultLayouts returns the layout table keyed by template base name.
// The "template" entry doubles as the fallback for templates with no
// registered layout.
func DefaultLayouts() map[string]Layout {
	return map[string]Layout{
		"template": {
			NameX: 30, NameY: 90, NameSize: 25,
			CourseY: 116, CourseSize: 20,
			DateY: 200, DateSize: 10,
		},
		"template_programming": {
			NameX: 50, NameY: 95, NameSize: 40,
			CourseY: 140, CourseSize: 26,
			DateY: 175, DateSize: 16,
		},
		"template_design": {
			NameX: 50, NameY: 105, NameSize: 38,
			CourseY: 150, CourseSize: 22,
			DateY: 172, DateSize: 14,
		},
	}
}

// DefaultCategories returns the ordered category keyword table
func DefaultCategories() []Category {
	return []Category{
		{Name: "programming", Keywords: []string{"programming", "development", "php", "javascript", "python", "java"}},
		{Name: "design", Keywords: []string{"design", "graphic", "photoshop", "illustrator"}},
		{Name: "database", Keywords: []string{"database", "sql", "mysql", "oracle", "mongodb"}},
		{Name: "web", Keywords: []string{"html", "css", "web", "frontend", "backend"}},
		{Name: "office", Keywords: []string{"excel", "word", "powerpoint", "office"}},
	}
}

// Certificate is the registry row for the current generated file of a
// participant. Regeneration overwrites the row (latest wins); superseded
// files on disk are left for housekeeping.
type Certificate struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	ParticipantID uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex" json:"participant_id"`
	Filename      string         `gorm:"not null" json:"filename"`
	Path          string         `gorm:"not null" json:"path"`
	Size          int64          `json:"size"`
	TemplateUsed  string         `json:"template_used"`
	Metadata      datatypes.JSON `json:"metadata,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

// Generated describes one freshly rendered certificate file
type Generated struct {
	Filename     string `json:"filename"`
	Path         string `json:"path"`
	Size         int64  `json:"size"`
	TemplateUsed string `json:"template_used"`
}

// GeneratedItem is the per-participant entry of a successful batch item
type GeneratedItem struct {
	ParticipantID uuid.UUID `json:"participant_id"`
	Participant   string    `json:"participant"`
	Filename      string    `json:"filename"`
	Path          string    `json:"path"`
	Template      string    `json:"template"`
}

// BatchResult is the tally of one generation batch. Per-item failures are
// collected in Errors; the batch itself always completes.
type BatchResult struct {
	Generated    int             `json:"generated"`
	Errors       []string        `json:"errors"`
	Certificates []GeneratedItem `json:"certificates"`
}

// TemplateInfo describes one available template file
type TemplateInfo struct {
	Filename string `json:"filename"`
	Name     string `json:"name"`
	Path     string `json:"path"`
}
