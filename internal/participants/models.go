package participants

import (
	"time"

	"github.com/google/uuid"
)

// Participant represents a course participant eligible for a certificate.
// Records are created on import or manual entry and are read-only afterwards,
// except for the reference to the currently generated certificate file.
type Participant struct {
	ID                  uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name                string    `gorm:"not null" json:"name"`
	Email               string    `gorm:"not null" json:"email"`
	Course              string    `gorm:"not null" json:"course"`
	DateCompleted       time.Time `gorm:"not null" json:"date_completed"`
	CertificateFilename *string   `json:"certificate_filename,omitempty"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// CreateParticipantRequest is the payload for manual participant entry
type CreateParticipantRequest struct {
	Name          string `json:"name" binding:"required"`
	Email         string `json:"email" binding:"required,email"`
	Course        string `json:"course" binding:"required"`
	DateCompleted string `json:"date_completed" binding:"required"`
}
