package main

import (
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"cert-scribe/certificate-portal/certificate-portal-backend/internal/certificates"
	"cert-scribe/certificate-portal/certificate-portal-backend/internal/config"
	"cert-scribe/certificate-portal/certificate-portal-backend/internal/housekeeping"
	"cert-scribe/certificate-portal/certificate-portal-backend/internal/mailer"
	"cert-scribe/certificate-portal/certificate-portal-backend/internal/participants"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.LoadConfig(os.Getenv("CONFIG_PATH"))
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	logger, err := buildLogger(cfg.Logging.Level)
	if err != nil {
		log.Fatal("Failed to build logger:", err)
	}
	defer logger.Sync()

	db, err := gorm.Open(postgres.Open(cfg.Database.GetDatabaseURL()), &gorm.Config{})
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	if err := db.AutoMigrate(&participants.Participant{}, &certificates.Certificate{}); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	// ---------------- PARTICIPANTS ----------------
	participantRepo := participants.NewRepository(db)
	participantService := participants.NewService(participantRepo, logger)
	participantHandler := participants.NewHandler(participantService, logger)

	// ---------------- CERTIFICATES ----------------
	resolver := certificates.NewResolver(
		cfg.Certificates.TemplatesDir,
		certificates.DefaultCategories(),
		certificates.DefaultLayouts(),
		logger,
	)
	renderer := certificates.NewRenderer(resolver, cfg.Certificates.OutputDir, logger)
	generator := certificates.NewBatchGenerator(renderer, cfg.Certificates.GenerateDelay, logger)
	certRepo := certificates.NewRepository(db)
	certService := certificates.NewService(certRepo, participantRepo, generator, resolver, logger)
	certHandler := certificates.NewHandler(certService, logger)

	// ---------------- MAILER ----------------
	dispatcher, err := mailer.NewDispatcher(cfg.Email, logger)
	if err != nil {
		logger.Fatal("Invalid email configuration", zap.Error(err))
	}
	batchDispatcher := mailer.NewBatchDispatcher(dispatcher, cfg.Email.SendDelay, logger)
	mailService := mailer.NewService(participantRepo, certRepo, dispatcher, batchDispatcher, logger)
	mailHandler := mailer.NewHandler(mailService, dispatcher, logger)

	// ---------------- HOUSEKEEPING ----------------
	if cfg.Housekeeping.Enabled {
		purger := housekeeping.NewPurger(
			cfg.Certificates.OutputDir,
			cfg.Housekeeping.Retention(),
			certRepo,
			logger,
		)
		runner, err := housekeeping.NewRunner(cfg.Housekeeping.Schedule, purger, logger)
		if err != nil {
			logger.Fatal("Failed to schedule housekeeping", zap.Error(err))
		}
		runner.Start()
		defer runner.Stop()
	}

	r := gin.Default()

	api := r.Group("/api/v1")
	participantHandler.RegisterRoutes(api)
	certHandler.RegisterRoutes(api)
	mailHandler.RegisterRoutes(api)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "API alive!"})
	})

	logger.Info("Server running", zap.String("addr", cfg.Server.GetServerAddr()))
	if err := r.Run(cfg.Server.GetServerAddr()); err != nil {
		logger.Fatal("Server exited", zap.Error(err))
	}
}

func buildLogger(level string) (*zap.Logger, error) {
	if level == "debug" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
