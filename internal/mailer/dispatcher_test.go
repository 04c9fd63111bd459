package mailer

import (
	"context"
	"encoding/base64"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"cert-scribe/certificate-portal/certificate-portal-backend/internal/config"
	"cert-scribe/certificate-portal/certificate-portal-backend/internal/participants"
)

func testEmailConfig() config.EmailConfig {
	return config.EmailConfig{
		Host:           "smtp.example.com",
		Port:           587,
		Username:       "mailer@example.com",
		Password:       "secret",
		Security:       "starttls",
		FromAddress:    "certificados@example.com",
		FromName:       "Certificados",
		ReplyToAddress: "soporte@example.com",
		ReplyToName:    "Soporte",
		Subject:        "Tu Certificado de Participación",
	}
}

func mailTestParticipant() *participants.Participant {
	return &participants.Participant{
		ID:            uuid.New(),
		Name:          "Ana Pérez",
		Email:         "ana@example.com",
		Course:        "Curso de PHP Avanzado",
		DateCompleted: time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
	}
}

func TestNewDispatcherRejectsIncompleteConfig(t *testing.T) {
	cfg := testEmailConfig()
	cfg.Password = ""

	_, err := NewDispatcher(cfg, zap.NewNop())

	assert.Error(t, err)
}

func TestSendMissingAttachmentFailsFast(t *testing.T) {
	dispatcher, err := NewDispatcher(testEmailConfig(), zap.NewNop())
	require.NoError(t, err)

	missing := filepath.Join(t.TempDir(), "gone.pdf")
	err = dispatcher.Send(context.Background(), mailTestParticipant(), missing)

	// the missing file is detected before any connection attempt
	assert.ErrorIs(t, err, ErrMissingAttachment)
	assert.Contains(t, err.Error(), missing)
}

func TestBuildMessage(t *testing.T) {
	dispatcher, err := NewDispatcher(testEmailConfig(), zap.NewNop())
	require.NoError(t, err)

	p := mailTestParticipant()
	attachment := []byte("%PDF-1.4 fake certificate body")
	htmlPart, textPart, err := renderBodies(p)
	require.NoError(t, err)

	msg := string(dispatcher.buildMessage(p, htmlPart, textPart, attachment, "Certificado_Ana_Pérez.pdf"))

	assert.Contains(t, msg, "From: Certificados <certificados@example.com>\r\n")
	assert.Contains(t, msg, "To: Ana Pérez <ana@example.com>\r\n")
	assert.Contains(t, msg, "Reply-To: Soporte <soporte@example.com>\r\n")
	assert.Contains(t, msg, "MIME-Version: 1.0\r\n")
	assert.Contains(t, msg, "Content-Type: multipart/mixed;")
	assert.Contains(t, msg, "Content-Type: multipart/alternative;")
	assert.Contains(t, msg, "Content-Type: text/plain; charset=utf-8")
	assert.Contains(t, msg, "Content-Type: text/html; charset=utf-8")
	assert.Contains(t, msg, `Content-Disposition: attachment; filename="Certificado_Ana_Pérez.pdf"`)

	// attachment bytes travel base64 encoded
	assert.Contains(t, msg, base64.StdEncoding.EncodeToString(attachment))
}

func TestRenderBodies(t *testing.T) {
	htmlPart, textPart, err := renderBodies(mailTestParticipant())

	require.NoError(t, err)
	assert.Contains(t, htmlPart, "Ana Pérez")
	assert.Contains(t, htmlPart, "Curso de PHP Avanzado")
	assert.Contains(t, htmlPart, "15/03/2024")
	assert.Contains(t, textPart, "Ana Pérez")
	assert.Contains(t, textPart, "15/03/2024")
	assert.False(t, strings.Contains(textPart, "<"), "text alternative must be plain")
}
