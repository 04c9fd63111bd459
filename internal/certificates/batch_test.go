package certificates

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"cert-scribe/certificate-portal/certificate-portal-backend/internal/participants"
)

func TestGenerateBatchAllSucceed(t *testing.T) {
	renderer, _, _ := newTestRenderer(t)
	generator := NewBatchGenerator(renderer, 0, zap.NewNop())

	list := []*participants.Participant{
		testParticipant("Ana Pérez", "Curso de PHP Avanzado"),
		testParticipant("Bob Smith", "Curso de Excel"),
	}

	result := generator.GenerateBatch(context.Background(), list)

	assert.Equal(t, 2, result.Generated)
	assert.Empty(t, result.Errors)
	require.Len(t, result.Certificates, 2)
	assert.Equal(t, "Ana Pérez", result.Certificates[0].Participant)
	assert.Equal(t, "Bob Smith", result.Certificates[1].Participant)
}

func TestGenerateBatchContinuesPastFailures(t *testing.T) {
	renderer, templatesDir, _ := newTestRenderer(t)
	generator := NewBatchGenerator(renderer, 0, zap.NewNop())

	// a corrupt course-specific template makes exactly one item fail
	broken := filepath.Join(templatesDir, "template_curso_roto.png")
	require.NoError(t, os.WriteFile(broken, []byte("not a png"), 0o644))

	list := []*participants.Participant{
		testParticipant("Ana Pérez", "Curso de PHP Avanzado"),
		testParticipant("Carlos Ruiz", "Curso Roto"),
		testParticipant("Bob Smith", "Curso de Excel"),
	}

	result := generator.GenerateBatch(context.Background(), list)

	assert.Equal(t, 2, result.Generated)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "error generating certificate for Carlos Ruiz:")

	// the item after the failure was still processed, order preserved
	require.Len(t, result.Certificates, 2)
	assert.Equal(t, "Ana Pérez", result.Certificates[0].Participant)
	assert.Equal(t, "Bob Smith", result.Certificates[1].Participant)
}

func TestGenerateBatchEmpty(t *testing.T) {
	renderer, _, _ := newTestRenderer(t)
	generator := NewBatchGenerator(renderer, 0, zap.NewNop())

	result := generator.GenerateBatch(context.Background(), nil)

	assert.Equal(t, 0, result.Generated)
	assert.Empty(t, result.Errors)
	assert.Empty(t, result.Certificates)
}
