package bootstrap

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/qpsphere/paperbank/internal/app/controllers"
	appRepos "github.com/qpsphere/paperbank/internal/app/repositories"
	appRoutes "github.com/qpsphere/paperbank/internal/app/routes"
	appServices "github.com/qpsphere/paperbank/internal/app/services"
	"github.com/qpsphere/paperbank/internal/config"
	appMiddleware "github.com/qpsphere/paperbank/internal/middleware"
	"github.com/qpsphere/paperbank/internal/pkg/analytics"
	"github.com/qpsphere/paperbank/internal/pkg/drive"
	"github.com/qpsphere/paperbank/internal/pkg/email"
	"github.com/qpsphere/paperbank/internal/pkg/filestorage"
	"github.com/qpsphere/paperbank/internal/pkg/helpers"
	"github.com/qpsphere/paperbank/internal/pkg/logger"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	PaperService      appServices.PaperService   // Interface type
	UploadService     appServices.UploadService  // Interface type
	ContactService    appServices.ContactService // Interface type
	PaperController   *appControllers.PaperController
	UploadController  *appControllers.UploadController
	ContactController *appControllers.ContactController
	PaperRepository   *appRepos.PaperRepository
	FileStorage       *filestorage.LocalStorage
	Mailer            email.Mailer
	Tracker           analytics.Tracker
	Logger            zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	// A .env file is a development convenience; its absence is not an error.
	_ = godotenv.Load()

	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  strings.ToLower(cfg.Logging.Level),
		Pretty: prettyLog,
	})

	lgr := log.Logger // Get the configured global logger
	lgr.Info().Str("logLevel", cfg.Logging.Level).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// BuildDependencies initializes the catalog source, repositories, services
// and controllers.
func BuildDependencies(cfg *config.Config, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	// Initialize File Storage
	// Configure baseURL to match the static file serving endpoint
	var err error
	baseURL := cfg.Server.BaseURL
	if baseURL == "" {
		baseURL = "http://localhost:" + cfg.Server.Port
	}
	fileStorageBaseURL := baseURL + "/uploads" // This must match the static file serving URL path
	deps.FileStorage, err = filestorage.NewLocalStorage(cfg.Server.StoragePath, fileStorageBaseURL, lgr)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize file storage")
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	driveClient := drive.NewClient(drive.Config{
		APIKey:   cfg.Drive.APIKey,
		FolderID: cfg.Drive.FolderID,
		BaseURL:  cfg.Drive.BaseURL,
	}, lgr)

	refreshTTL := helpers.ParseDuration(cfg.Catalog.RefreshTTL, 5*time.Minute)
	deps.PaperRepository = appRepos.NewPaperRepository(driveClient, refreshTTL, lgr)

	deps.Mailer = email.NewSMTPMailer(email.SMTPConfig{
		Host:      cfg.SMTP.Host,
		Port:      cfg.SMTP.Port,
		Username:  cfg.SMTP.Username,
		Password:  cfg.SMTP.Password,
		FromName:  cfg.SMTP.FromName,
		FromEmail: cfg.SMTP.FromEmail,
		ToEmail:   cfg.SMTP.ToEmail,
		UseTLS:    cfg.SMTP.UseTLS,
	}, lgr)

	deps.Tracker = analytics.NewLogTracker(lgr)

	// Initialize services
	deps.PaperService = appServices.NewPaperService(deps.PaperRepository, cfg.Catalog.DisplayLimit, deps.Tracker)
	deps.UploadService = appServices.NewUploadService(deps.FileStorage, deps.Mailer, cfg.Server.MaxUploadBytes, deps.Tracker, lgr)
	deps.ContactService = appServices.NewContactService(deps.Mailer, deps.Tracker, lgr)

	deps.PaperController = appControllers.NewPaperController(deps.PaperService)
	deps.UploadController = appControllers.NewUploadController(deps.UploadService)
	deps.ContactController = appControllers.NewContactController(deps.ContactService)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(appMiddleware.RequestLogger(lgr))

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization", "X-Request-ID")
	router.Use(cors.New(corsConfig))

	// Setup API routes using the dependencies
	appRoutes.SetupRouter(router,
		deps.PaperController,
		deps.UploadController,
		deps.ContactController,
	)

	return router
}
