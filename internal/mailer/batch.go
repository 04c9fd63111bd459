package mailer

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"cert-scribe/certificate-portal/certificate-portal-backend/internal/participants"
)

// BatchItem pairs one participant with their certificate file
type BatchItem struct {
	Participant     *participants.Participant
	CertificatePath string
}

// BatchSendResult is the tally of one send batch
type BatchSendResult struct {
	Sent   int      `json:"sent"`
	Failed int      `json:"failed"`
	Errors []string `json:"errors"`
}

// BatchDispatcher drives a Sender over an ordered list of items, strictly
// sequentially, with a fixed delay between sends. A failed item never aborts
// the rest of the batch.
type BatchDispatcher struct {
	sender Sender
	delay  time.Duration
	logger *zap.Logger
}

// NewBatchDispatcher creates a batch dispatcher. A zero delay disables pacing.
func NewBatchDispatcher(sender Sender, delay time.Duration, logger *zap.Logger) *BatchDispatcher {
	return &BatchDispatcher{
		sender: sender,
		delay:  delay,
		logger: logger,
	}
}

// SendBatch sends one email per item in input order and returns the complete
// tally. Every item is attempted; there is no early exit.
func (b *BatchDispatcher) SendBatch(ctx context.Context, items []BatchItem) *BatchSendResult {
	result := &BatchSendResult{Errors: []string{}}

	for i, item := range items {
		b.logger.Info("Processing send batch item",
			zap.Int("item", i+1),
			zap.Int("total", len(items)))

		if err := b.sender.Send(ctx, item.Participant, item.CertificatePath); err != nil {
			result.Failed++
			result.Errors = append(result.Errors,
				fmt.Sprintf("error sending to %s: %v", item.Participant.Email, err))
		} else {
			result.Sent++
		}

		if b.delay > 0 && i < len(items)-1 {
			time.Sleep(b.delay)
		}
	}

	return result
}
