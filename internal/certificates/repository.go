package certificates

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository defines the interface for certificate registry access
type Repository interface {
	Upsert(ctx context.Context, cert *Certificate) error
	GetByID(ctx context.Context, id uuid.UUID) (*Certificate, error)
	GetByParticipant(ctx context.Context, participantID uuid.UUID) (*Certificate, error)
	ListAll(ctx context.Context) ([]Certificate, error)
	ActiveFilenames(ctx context.Context) ([]string, error)
}

type gormRepository struct {
	db *gorm.DB
}

// NewRepository creates a gorm-backed certificate repository
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

// Upsert replaces the participant's current certificate row. Latest wins:
// one row per participant, keyed by the unique participant index.
func (r *gormRepository) Upsert(ctx context.Context, cert *Certificate) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "participant_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"filename", "path", "size", "template_used", "metadata", "updated_at",
		}),
	}).Create(cert).Error
}

func (r *gormRepository) GetByID(ctx context.Context, id uuid.UUID) (*Certificate, error) {
	var cert Certificate
	if err := r.db.WithContext(ctx).First(&cert, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &cert, nil
}

func (r *gormRepository) GetByParticipant(ctx context.Context, participantID uuid.UUID) (*Certificate, error) {
	var cert Certificate
	if err := r.db.WithContext(ctx).First(&cert, "participant_id = ?", participantID).Error; err != nil {
		return nil, err
	}
	return &cert, nil
}

func (r *gormRepository) ListAll(ctx context.Context) ([]Certificate, error) {
	var list []Certificate
	if err := r.db.WithContext(ctx).Order("updated_at desc").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *gormRepository) ActiveFilenames(ctx context.Context) ([]string, error) {
	var names []string
	if err := r.db.WithContext(ctx).Model(&Certificate{}).Pluck("filename", &names).Error; err != nil {
		return nil, err
	}
	return names, nil
}
