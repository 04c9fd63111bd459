package mailer

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"cert-scribe/certificate-portal/certificate-portal-backend/internal/certificates"
	"cert-scribe/certificate-portal/certificate-portal-backend/internal/participants"
)

// Service resolves participants and their current certificate files into
// dispatch calls
type Service struct {
	participants participants.Repository
	certificates certificates.Repository
	sender       Sender
	batch        *BatchDispatcher
	logger       *zap.Logger
}

// NewService creates a new mailer service
func NewService(
	participantRepo participants.Repository,
	certificateRepo certificates.Repository,
	sender Sender,
	batch *BatchDispatcher,
	logger *zap.Logger,
) *Service {
	return &Service{
		participants: participantRepo,
		certificates: certificateRepo,
		sender:       sender,
		batch:        batch,
		logger:       logger,
	}
}

// SendToParticipant emails one participant their current certificate
func (s *Service) SendToParticipant(ctx context.Context, id uuid.UUID) error {
	p, err := s.participants.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("participant not found: %w", err)
	}

	cert, err := s.certificates.GetByParticipant(ctx, id)
	if err != nil {
		return fmt.Errorf("no generated certificate for %s", p.Name)
	}

	return s.sender.Send(ctx, p, cert.Path)
}

// SendBatch emails every listed participant in request order. Participants
// without a record or without a generated certificate become failed entries;
// the rest of the batch still runs.
func (s *Service) SendBatch(ctx context.Context, ids []uuid.UUID) *BatchSendResult {
	var (
		items     []BatchItem
		preResult = &BatchSendResult{Errors: []string{}}
	)

	for _, id := range ids {
		p, err := s.participants.GetByID(ctx, id)
		if err != nil {
			preResult.Failed++
			preResult.Errors = append(preResult.Errors,
				fmt.Sprintf("error sending to participant %s: not found", id))
			continue
		}

		cert, err := s.certificates.GetByParticipant(ctx, id)
		if err != nil {
			preResult.Failed++
			preResult.Errors = append(preResult.Errors,
				fmt.Sprintf("error sending to %s: no generated certificate", p.Email))
			continue
		}

		items = append(items, BatchItem{Participant: p, CertificatePath: cert.Path})
	}

	result := s.batch.SendBatch(ctx, items)
	result.Failed += preResult.Failed
	result.Errors = append(preResult.Errors, result.Errors...)

	s.logger.Info("Email batch finished",
		zap.Int("requested", len(ids)),
		zap.Int("sent", result.Sent),
		zap.Int("failed", result.Failed))

	return result
}
