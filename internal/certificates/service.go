package certificates

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"cert-scribe/certificate-portal/certificate-portal-backend/internal/certificates/export"
	"cert-scribe/certificate-portal/certificate-portal-backend/internal/participants"
)

// Service orchestrates certificate generation and the issued-certificate
// registry. Regeneration follows latest-wins semantics: the registry row and
// the participant's certificate reference are overwritten, superseded files
// are left on disk for housekeeping.
type Service struct {
	repo         Repository
	participants participants.Repository
	generator    *BatchGenerator
	resolver     *Resolver
	logger       *zap.Logger
}

// NewService creates a new certificates service
func NewService(
	repo Repository,
	participantRepo participants.Repository,
	generator *BatchGenerator,
	resolver *Resolver,
	logger *zap.Logger,
) *Service {
	return &Service{
		repo:         repo,
		participants: participantRepo,
		generator:    generator,
		resolver:     resolver,
		logger:       logger,
	}
}

// GenerateForParticipants renders certificates for the given participant IDs
// in request order. Unknown IDs become per-item errors; the batch always
// runs to completion and the full tally is returned.
func (s *Service) GenerateForParticipants(ctx context.Context, ids []uuid.UUID) (*BatchResult, error) {
	var (
		found      []*participants.Participant
		missErrors []string
	)

	for _, id := range ids {
		p, err := s.participants.GetByID(ctx, id)
		if err != nil {
			missErrors = append(missErrors,
				fmt.Sprintf("error generating certificate for participant %s: not found", id))
			continue
		}
		found = append(found, p)
	}

	result := s.generator.GenerateBatch(ctx, found)
	result.Errors = append(missErrors, result.Errors...)

	for _, item := range result.Certificates {
		meta, _ := json.Marshal(map[string]string{"participant": item.Participant})
		cert := &Certificate{
			ID:            uuid.New(),
			ParticipantID: item.ParticipantID,
			Filename:      item.Filename,
			Path:          item.Path,
			TemplateUsed:  item.Template,
			Metadata:      meta,
		}
		if info, err := os.Stat(item.Path); err == nil {
			cert.Size = info.Size()
		}
		if err := s.repo.Upsert(ctx, cert); err != nil {
			s.logger.Error("Failed to record certificate",
				zap.String("participant_id", item.ParticipantID.String()),
				zap.Error(err))
			result.Errors = append(result.Errors,
				fmt.Sprintf("error recording certificate for %s: %v", item.Participant, err))
			continue
		}
		if err := s.participants.SetCertificate(ctx, item.ParticipantID, item.Filename); err != nil {
			s.logger.Error("Failed to attach certificate to participant",
				zap.String("participant_id", item.ParticipantID.String()),
				zap.Error(err))
		}
	}

	s.logger.Info("Certificate batch finished",
		zap.Int("requested", len(ids)),
		zap.Int("generated", result.Generated),
		zap.Int("errors", len(result.Errors)))

	return result, nil
}

// List returns every registry row, most recently updated first
func (s *Service) List(ctx context.Context) ([]Certificate, error) {
	return s.repo.ListAll(ctx)
}

// GetFile returns the path and download filename for one certificate
func (s *Service) GetFile(ctx context.Context, id uuid.UUID) (path, filename string, err error) {
	cert, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return "", "", fmt.Errorf("certificate not found: %w", err)
	}
	if _, err := os.Stat(cert.Path); err != nil {
		return "", "", fmt.Errorf("certificate file missing on disk: %w", err)
	}
	return cert.Path, cert.Filename, nil
}

// ListTemplates lists the provisioned template files
func (s *Service) ListTemplates() ([]TemplateInfo, error) {
	return s.resolver.ListTemplates()
}

var exportLabels = []string{"Participant ID", "Filename", "Template", "Size (bytes)", "Issued At"}

// ExportCSV writes the issued-certificate registry as CSV
func (s *Service) ExportCSV(ctx context.Context, w io.Writer) error {
	certs, err := s.repo.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to load registry: %w", err)
	}

	exporter := export.NewCSVExporter(w, export.DefaultCSVOptions())
	if err := exporter.WriteHeader(exportLabels); err != nil {
		return err
	}
	for _, c := range certs {
		if err := exporter.WriteRow(exportRow(c)); err != nil {
			return err
		}
	}
	return exporter.Flush()
}

// ExportExcel writes the issued-certificate registry as an XLSX workbook
func (s *Service) ExportExcel(ctx context.Context, w io.Writer) error {
	certs, err := s.repo.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to load registry: %w", err)
	}

	exporter := export.NewExcelExporter(export.DefaultExcelOptions())
	if err := exporter.WriteHeader(exportLabels); err != nil {
		return err
	}
	for _, c := range certs {
		if err := exporter.WriteRow(exportRow(c)); err != nil {
			return err
		}
	}
	return exporter.WriteTo(w)
}

func exportRow(c Certificate) []interface{} {
	return []interface{}{
		c.ParticipantID.String(),
		c.Filename,
		c.TemplateUsed,
		c.Size,
		c.CreatedAt,
	}
}
