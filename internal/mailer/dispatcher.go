package mailer

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/base64"
	"errors"
	"fmt"
	"mime"
	"net/smtp"
	"os"
	"strings"

	"go.uber.org/zap"

	"cert-scribe/certificate-portal/certificate-portal-backend/internal/config"
	"cert-scribe/certificate-portal/certificate-portal-backend/internal/participants"
)

// ErrMissingAttachment means the certificate file is gone from disk. The
// dispatcher refuses to open a transport connection in that case.
var ErrMissingAttachment = errors.New("certificate file does not exist")

// Sender sends one certificate email to one participant
type Sender interface {
	Send(ctx context.Context, p *participants.Participant, certPath string) error
}

// Dispatcher delivers certificate emails over authenticated SMTP. Every Send
// assembles a fresh message, so no recipient or attachment state survives
// between calls.
type Dispatcher struct {
	cfg    config.EmailConfig
	logger *zap.Logger
}

// NewDispatcher creates an SMTP dispatcher from validated configuration
func NewDispatcher(cfg config.EmailConfig, logger *zap.Logger) (*Dispatcher, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Dispatcher{cfg: cfg, logger: logger}, nil
}

// Send emails the participant their certificate as a PDF attachment.
// Fails fast on a missing attachment before any connection is made.
// Transport and auth failures surface the server's diagnostic text verbatim;
// nothing is retried here.
func (d *Dispatcher) Send(ctx context.Context, p *participants.Participant, certPath string) error {
	if _, err := os.Stat(certPath); err != nil {
		return fmt.Errorf("%w: %s", ErrMissingAttachment, certPath)
	}

	attachment, err := os.ReadFile(certPath)
	if err != nil {
		return fmt.Errorf("failed to read certificate file: %w", err)
	}

	htmlPart, textPart, err := renderBodies(p)
	if err != nil {
		return err
	}

	attachmentName := "Certificado_" + strings.ReplaceAll(p.Name, " ", "_") + ".pdf"
	msg := d.buildMessage(p, htmlPart, textPart, attachment, attachmentName)

	d.logger.Info("Sending certificate email",
		zap.String("to", p.Email),
		zap.String("attachment", attachmentName))

	if err := d.submit(p.Email, msg); err != nil {
		d.logger.Error("Failed to send email",
			zap.String("to", p.Email),
			zap.Error(err))
		return fmt.Errorf("failed to send email: %w", err)
	}

	d.logger.Info("Email sent successfully", zap.String("to", p.Email))
	return nil
}

// TestConnection opens, authenticates and closes an SMTP session without
// sending anything
func (d *Dispatcher) TestConnection(ctx context.Context) error {
	client, err := d.connect()
	if err != nil {
		return fmt.Errorf("smtp connection failed: %w", err)
	}
	defer client.Close()

	if err := client.Auth(d.auth()); err != nil {
		return fmt.Errorf("smtp authentication failed: %w", err)
	}
	return client.Quit()
}

func (d *Dispatcher) submit(recipient string, msg []byte) error {
	if d.cfg.Security == "starttls" {
		// SendMail upgrades to TLS automatically when the server advertises it
		return smtp.SendMail(d.cfg.Addr(), d.auth(), d.cfg.FromAddress, []string{recipient}, msg)
	}

	client, err := d.connect()
	if err != nil {
		return err
	}
	defer client.Close()

	if err := client.Auth(d.auth()); err != nil {
		return err
	}
	if err := client.Mail(d.cfg.FromAddress); err != nil {
		return err
	}
	if err := client.Rcpt(recipient); err != nil {
		return err
	}
	w, err := client.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(msg); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	return client.Quit()
}

func (d *Dispatcher) connect() (*smtp.Client, error) {
	if d.cfg.Security == "tls" {
		conn, err := tls.Dial("tcp", d.cfg.Addr(), &tls.Config{ServerName: d.cfg.Host})
		if err != nil {
			return nil, err
		}
		return smtp.NewClient(conn, d.cfg.Host)
	}

	client, err := smtp.Dial(d.cfg.Addr())
	if err != nil {
		return nil, err
	}
	if ok, _ := client.Extension("STARTTLS"); ok {
		if err := client.StartTLS(&tls.Config{ServerName: d.cfg.Host}); err != nil {
			client.Close()
			return nil, err
		}
	}
	return client, nil
}

func (d *Dispatcher) auth() smtp.Auth {
	return smtp.PlainAuth("", d.cfg.Username, d.cfg.Password, d.cfg.Host)
}

// buildMessage assembles the full MIME message: a multipart/alternative body
// (plain text plus HTML) and the PDF attachment, base64 encoded.
func (d *Dispatcher) buildMessage(p *participants.Participant, htmlPart, textPart string, attachment []byte, attachmentName string) []byte {
	var buf bytes.Buffer
	mixed := "----=_Part_mixed_" + fmt.Sprintf("%x", len(attachment))
	alt := "----=_Part_alt_0"

	buf.WriteString(fmt.Sprintf("From: %s <%s>\r\n", d.cfg.FromName, d.cfg.FromAddress))
	buf.WriteString(fmt.Sprintf("To: %s <%s>\r\n", p.Name, p.Email))
	if d.cfg.ReplyToAddress != "" {
		buf.WriteString(fmt.Sprintf("Reply-To: %s <%s>\r\n", d.cfg.ReplyToName, d.cfg.ReplyToAddress))
	}
	buf.WriteString(fmt.Sprintf("Subject: %s\r\n", mime.QEncoding.Encode("utf-8", d.cfg.Subject)))
	buf.WriteString("MIME-Version: 1.0\r\n")
	buf.WriteString(fmt.Sprintf("Content-Type: multipart/mixed; boundary=\"%s\"\r\n", mixed))
	buf.WriteString("\r\n")

	// body: text and html alternatives
	buf.WriteString(fmt.Sprintf("--%s\r\n", mixed))
	buf.WriteString(fmt.Sprintf("Content-Type: multipart/alternative; boundary=\"%s\"\r\n", alt))
	buf.WriteString("\r\n")

	buf.WriteString(fmt.Sprintf("--%s\r\n", alt))
	buf.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	buf.WriteString("Content-Transfer-Encoding: base64\r\n")
	buf.WriteString("\r\n")
	writeBase64(&buf, []byte(textPart))

	buf.WriteString(fmt.Sprintf("--%s\r\n", alt))
	buf.WriteString("Content-Type: text/html; charset=utf-8\r\n")
	buf.WriteString("Content-Transfer-Encoding: base64\r\n")
	buf.WriteString("\r\n")
	writeBase64(&buf, []byte(htmlPart))

	buf.WriteString(fmt.Sprintf("--%s--\r\n", alt))

	// attachment
	buf.WriteString(fmt.Sprintf("--%s\r\n", mixed))
	buf.WriteString(fmt.Sprintf("Content-Type: application/pdf; name=\"%s\"\r\n", attachmentName))
	buf.WriteString("Content-Transfer-Encoding: base64\r\n")
	buf.WriteString(fmt.Sprintf("Content-Disposition: attachment; filename=\"%s\"\r\n", attachmentName))
	buf.WriteString("\r\n")
	writeBase64(&buf, attachment)

	buf.WriteString(fmt.Sprintf("--%s--\r\n", mixed))

	return buf.Bytes()
}

// writeBase64 encodes data in 76-column lines per RFC 2045
func writeBase64(buf *bytes.Buffer, data []byte) {
	encoded := base64.StdEncoding.EncodeToString(data)
	const lineLen = 76
	for i := 0; i < len(encoded); i += lineLen {
		end := i + lineLen
		if end > len(encoded) {
			end = len(encoded)
		}
		buf.WriteString(encoded[i:end])
		buf.WriteString("\r\n")
	}
}
