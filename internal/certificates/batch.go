package certificates

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"cert-scribe/certificate-portal/certificate-portal-backend/internal/participants"
)

// BatchGenerator drives the renderer over an ordered list of participants.
// Items are processed strictly sequentially with a fixed pacing delay; a
// single item's failure never aborts the rest of the batch.
type BatchGenerator struct {
	renderer *Renderer
	delay    time.Duration
	logger   *zap.Logger
}

// NewBatchGenerator creates a batch generator. A zero delay disables pacing.
func NewBatchGenerator(renderer *Renderer, delay time.Duration, logger *zap.Logger) *BatchGenerator {
	return &BatchGenerator{
		renderer: renderer,
		delay:    delay,
		logger:   logger,
	}
}

// GenerateBatch renders one certificate per participant in input order and
// returns the complete tally. No early exit: every item is attempted.
func (g *BatchGenerator) GenerateBatch(ctx context.Context, list []*participants.Participant) *BatchResult {
	result := &BatchResult{
		Errors:       []string{},
		Certificates: []GeneratedItem{},
	}

	for i, p := range list {
		g.logger.Info("Processing batch item",
			zap.Int("item", i+1),
			zap.Int("total", len(list)))

		gen, err := g.renderer.Render(p)
		if err != nil {
			msg := fmt.Sprintf("error generating certificate for %s: %v", p.Name, err)
			result.Errors = append(result.Errors, msg)
			g.logger.Warn("Batch item failed", zap.String("participant", p.Name), zap.Error(err))
		} else {
			result.Generated++
			result.Certificates = append(result.Certificates, GeneratedItem{
				ParticipantID: p.ID,
				Participant:   p.Name,
				Filename:      gen.Filename,
				Path:          gen.Path,
				Template:      gen.TemplateUsed,
			})
		}

		if g.delay > 0 && i < len(list)-1 {
			time.Sleep(g.delay)
		}
	}

	return result
}
