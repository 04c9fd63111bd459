package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config represents the application configuration
type Config struct {
	Server       ServerConfig       `json:"server"`
	Database     DatabaseConfig     `json:"database"`
	Email        EmailConfig        `json:"email"`
	Certificates CertificatesConfig `json:"certificates"`
	Housekeeping HousekeepingConfig `json:"housekeeping"`
	Logging      LoggingConfig      `json:"logging"`
}

// ServerConfig represents server configuration
type ServerConfig struct {
	Host         string        `json:"host"`
	Port         int           `json:"port"`
	ReadTimeout  time.Duration `json:"read_timeout"`
	WriteTimeout time.Duration `json:"write_timeout"`
	IdleTimeout  time.Duration `json:"idle_timeout"`
}

// DatabaseConfig represents database configuration
type DatabaseConfig struct {
	Host         string        `json:"host"`
	Port         int           `json:"port"`
	User         string        `json:"user"`
	Password     string        `json:"password"`
	DBName       string        `json:"db_name"`
	SSLMode      string        `json:"ssl_mode"`
	MaxIdleConns int           `json:"max_idle_conns"`
	MaxLifetime  time.Duration `json:"max_lifetime"`
}

// EmailConfig holds the SMTP transport settings used for certificate delivery.
// Security selects the session mode: "starttls" (explicit upgrade) or "tls"
// (implicit TLS on connect).
type EmailConfig struct {
	Host           string        `json:"host"`
	Port           int           `json:"port"`
	Username       string        `json:"username"`
	Password       string        `json:"password"`
	Security       string        `json:"security"`
	FromAddress    string        `json:"from_address"`
	FromName       string        `json:"from_name"`
	ReplyToAddress string        `json:"reply_to_address"`
	ReplyToName    string        `json:"reply_to_name"`
	Subject        string        `json:"subject"`
	SendDelay      time.Duration `json:"send_delay"`
}

// CertificatesConfig represents certificate generation configuration
type CertificatesConfig struct {
	TemplatesDir  string        `json:"templates_dir"`
	OutputDir     string        `json:"output_dir"`
	GenerateDelay time.Duration `json:"generate_delay"`
}

// HousekeepingConfig controls the purge job for aged generated files
type HousekeepingConfig struct {
	Enabled       bool   `json:"enabled"`
	Schedule      string `json:"schedule"`
	RetentionDays int    `json:"retention_days"`
}

// LoggingConfig
type LoggingConfig struct {
	Level string `json:"level"`
}

// LoadConfig loads configuration from file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	// Default config
	config := &Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Database: DatabaseConfig{
			Host:    "localhost",
			Port:    5432,
			User:    os.Getenv("USER"),
			DBName:  "certportal",
			SSLMode: "disable",
		},
		Email: EmailConfig{
			Port:      587,
			Security:  "starttls",
			Subject:   "Tu Certificado de Participación",
			SendDelay: 500 * time.Millisecond,
		},
		Certificates: CertificatesConfig{
			TemplatesDir:  "certificates",
			OutputDir:     "generated",
			GenerateDelay: 100 * time.Millisecond,
		},
		Housekeeping: HousekeepingConfig{
			Schedule:      "0 0 3 * * *",
			RetentionDays: 30,
		},
	}

	// Load from file if exists
	if configPath != "" {
		if data, err := os.ReadFile(configPath); err == nil {
			if err := json.Unmarshal(data, config); err != nil {
				return nil, fmt.Errorf("failed to parse config file: %w", err)
			}
		}
	}

	// Override with environment variables
	overrideWithEnv(config)

	return config, nil
}

func overrideWithEnv(config *Config) {
	if host := os.Getenv("SERVER_HOST"); host != "" {
		config.Server.Host = host
	}
	if port := os.Getenv("SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}
	if dbHost := os.Getenv("DATABASE_HOST"); dbHost != "" {
		config.Database.Host = dbHost
	}
	if dbUser := os.Getenv("DATABASE_USER"); dbUser != "" {
		config.Database.User = dbUser
	}
	if dbPass := os.Getenv("DATABASE_PASSWORD"); dbPass != "" {
		config.Database.Password = dbPass
	}
	if dbName := os.Getenv("DATABASE_DBNAME"); dbName != "" {
		config.Database.DBName = dbName
	}
	if host := os.Getenv("SMTP_HOST"); host != "" {
		config.Email.Host = host
	}
	if port := os.Getenv("SMTP_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Email.Port = p
		}
	}
	if user := os.Getenv("SMTP_USERNAME"); user != "" {
		config.Email.Username = user
	}
	if pass := os.Getenv("SMTP_PASSWORD"); pass != "" {
		config.Email.Password = pass
	}
	if sec := os.Getenv("SMTP_SECURITY"); sec != "" {
		config.Email.Security = sec
	}
	if from := os.Getenv("EMAIL_FROM_ADDRESS"); from != "" {
		config.Email.FromAddress = from
	}
	if name := os.Getenv("EMAIL_FROM_NAME"); name != "" {
		config.Email.FromName = name
	}
	if replyTo := os.Getenv("EMAIL_REPLY_TO_ADDRESS"); replyTo != "" {
		config.Email.ReplyToAddress = replyTo
	}
	if name := os.Getenv("EMAIL_REPLY_TO_NAME"); name != "" {
		config.Email.ReplyToName = name
	}
	if subject := os.Getenv("EMAIL_SUBJECT"); subject != "" {
		config.Email.Subject = subject
	}
	if dir := os.Getenv("CERT_TEMPLATES_DIR"); dir != "" {
		config.Certificates.TemplatesDir = dir
	}
	if dir := os.Getenv("CERT_OUTPUT_DIR"); dir != "" {
		config.Certificates.OutputDir = dir
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
}

// Validate checks that every field required to open an SMTP session is set
func (c *EmailConfig) Validate() error {
	if c.Host == "" {
		return fmt.Errorf("email: host is required")
	}
	if c.Port == 0 {
		return fmt.Errorf("email: port is required")
	}
	if c.Username == "" {
		return fmt.Errorf("email: username is required")
	}
	if c.Password == "" {
		return fmt.Errorf("email: password is required")
	}
	if c.FromAddress == "" {
		return fmt.Errorf("email: from_address is required")
	}
	switch c.Security {
	case "starttls", "tls":
	default:
		return fmt.Errorf("email: unknown security mode %q", c.Security)
	}
	return nil
}

// Addr returns the SMTP server address
func (c *EmailConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// GetDatabaseURL returns the database connection string
func (c *DatabaseConfig) GetDatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode)
}

// GetServerAddr returns the server address
func (c *ServerConfig) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Retention returns the housekeeping retention window as a duration
func (c *HousekeepingConfig) Retention() time.Duration {
	return time.Duration(c.RetentionDays) * 24 * time.Hour
}
