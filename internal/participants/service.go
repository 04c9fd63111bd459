package participants

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service provides business logic for participant management
type Service struct {
	repo   Repository
	logger *zap.Logger
}

// NewService creates a new participants service
func NewService(repo Repository, logger *zap.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// Create registers a single manually entered participant
func (s *Service) Create(ctx context.Context, req *CreateParticipantRequest) (*Participant, error) {
	completed, err := time.Parse("2006-01-02", req.DateCompleted)
	if err != nil {
		return nil, fmt.Errorf("invalid completion date %q: %w", req.DateCompleted, err)
	}

	p := &Participant{
		ID:            uuid.New(),
		Name:          req.Name,
		Email:         req.Email,
		Course:        req.Course,
		DateCompleted: completed,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to create participant: %w", err)
	}

	s.logger.Info("Participant created",
		zap.String("participant_id", p.ID.String()),
		zap.String("name", p.Name),
		zap.String("course", p.Course))

	return p, nil
}

// Get retrieves a participant by ID
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Participant, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns all participants, newest first
func (s *Service) List(ctx context.Context) ([]Participant, error) {
	return s.repo.List(ctx)
}
