package participants

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository defines the interface for participant data access
type Repository interface {
	Create(ctx context.Context, p *Participant) error
	GetByID(ctx context.Context, id uuid.UUID) (*Participant, error)
	List(ctx context.Context) ([]Participant, error)
	SetCertificate(ctx context.Context, id uuid.UUID, filename string) error
}

type gormRepository struct {
	db *gorm.DB
}

// NewRepository creates a gorm-backed participant repository
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Create(ctx context.Context, p *Participant) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *gormRepository) GetByID(ctx context.Context, id uuid.UUID) (*Participant, error) {
	var p Participant
	if err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *gormRepository) List(ctx context.Context) ([]Participant, error) {
	var list []Participant
	if err := r.db.WithContext(ctx).Order("created_at desc").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *gormRepository) SetCertificate(ctx context.Context, id uuid.UUID, filename string) error {
	return r.db.WithContext(ctx).
		Model(&Participant{}).
		Where("id = ?", id).
		Update("certificate_filename", filename).Error
}
