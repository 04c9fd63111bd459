package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("")

	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "certportal", cfg.Database.DBName)
	assert.Equal(t, 587, cfg.Email.Port)
	assert.Equal(t, "starttls", cfg.Email.Security)
	assert.Equal(t, "Tu Certificado de Participación", cfg.Email.Subject)
	assert.Equal(t, 500*time.Millisecond, cfg.Email.SendDelay)
	assert.Equal(t, "certificates", cfg.Certificates.TemplatesDir)
	assert.Equal(t, "generated", cfg.Certificates.OutputDir)
	assert.Equal(t, 100*time.Millisecond, cfg.Certificates.GenerateDelay)
	assert.Equal(t, "0 0 3 * * *", cfg.Housekeeping.Schedule)
	assert.Equal(t, 30, cfg.Housekeeping.RetentionDays)
}

func TestLoadConfigFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	data := `{
		"server": {"port": 9090},
		"email": {"host": "smtp.example.com", "security": "tls"},
		"housekeeping": {"retention_days": 7}
	}`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := LoadConfig(path)

	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "smtp.example.com", cfg.Email.Host)
	assert.Equal(t, "tls", cfg.Email.Security)
	assert.Equal(t, 7, cfg.Housekeeping.RetentionDays)
	// untouched fields keep defaults
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 587, cfg.Email.Port)
}

func TestLoadConfigInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := LoadConfig(path)

	assert.Error(t, err)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "3000")
	t.Setenv("SMTP_HOST", "mail.example.com")
	t.Setenv("SMTP_PORT", "465")
	t.Setenv("SMTP_SECURITY", "tls")
	t.Setenv("EMAIL_FROM_ADDRESS", "certs@example.com")
	t.Setenv("CERT_OUTPUT_DIR", "/var/certs")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := LoadConfig("")

	require.NoError(t, err)
	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, "mail.example.com", cfg.Email.Host)
	assert.Equal(t, 465, cfg.Email.Port)
	assert.Equal(t, "tls", cfg.Email.Security)
	assert.Equal(t, "certs@example.com", cfg.Email.FromAddress)
	assert.Equal(t, "/var/certs", cfg.Certificates.OutputDir)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestEmailConfigValidate(t *testing.T) {
	valid := EmailConfig{
		Host:        "smtp.example.com",
		Port:        587,
		Username:    "certs@example.com",
		Password:    "secret",
		Security:    "starttls",
		FromAddress: "certs@example.com",
	}
	assert.NoError(t, valid.Validate())

	noHost := valid
	noHost.Host = ""
	assert.ErrorContains(t, noHost.Validate(), "host is required")

	noPassword := valid
	noPassword.Password = ""
	assert.ErrorContains(t, noPassword.Validate(), "password is required")

	badSecurity := valid
	badSecurity.Security = "ssl3"
	assert.ErrorContains(t, badSecurity.Validate(), "unknown security mode")
}

func TestEmailConfigAddr(t *testing.T) {
	cfg := EmailConfig{Host: "smtp.example.com", Port: 465}
	assert.Equal(t, "smtp.example.com:465", cfg.Addr())
}

func TestHousekeepingRetention(t *testing.T) {
	cfg := HousekeepingConfig{RetentionDays: 30}
	assert.Equal(t, 30*24*time.Hour, cfg.Retention())
}
