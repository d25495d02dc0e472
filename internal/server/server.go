// Package server - справочный REST backend: gin + gorm
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"hirehub/internal/ai"
	"hirehub/internal/auth"
	"hirehub/internal/config"
	"hirehub/internal/email"
	"hirehub/internal/handlers"
	"hirehub/internal/imageprocessor"
	"hirehub/internal/logger"
	"hirehub/internal/middleware"
	"hirehub/internal/models"
	"hirehub/internal/repositories"
	"hirehub/internal/routes"
	"hirehub/internal/storage"
	"hirehub/internal/validator"
	"hirehub/internal/workers"
	"hirehub/pkg/apperrors"
	"hirehub/ws"
)

// avatarSide - максимальная сторона аватара в пикселях
const avatarSide = 400

// Deps - все, что нужно роутеру. Репозитории подменяются в тестах.
type Deps struct {
	DB           *gorm.DB
	Users        repositories.UserRepository
	Jobs         repositories.JobRepository
	Applications repositories.ApplicationRepository
	Tokens       *auth.JWTManager
	Mailer       email.Provider
	Storage      storage.Storage
	AI           ai.Provider
	Auth         handlers.AuthSettings
	UploadLimit  int64
	Limiter      *middleware.LimiterStore
	// Hub - лента изменений /api/ws, nil отключает ее
	Hub *ws.Hub
}

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)
	apperrors.DebugErrors = cfg.Server.Env != "production"

	if cfg.JWT.Secret == "" {
		logger.Fatal("JWT_SECRET is not set")
	}

	logger.Info("Connecting to database...", "driver", cfg.Database.Driver)
	db, err := OpenDB(cfg.Database.Driver, cfg.Database.DSN)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	if err := Migrate(db); err != nil {
		logger.Fatal("Failed to migrate database", "error", err)
	}
	logger.Info("Database connected")

	if err := seedFirstAdmin(db, cfg); err != nil {
		logger.Fatal("Failed to seed first admin user", "error", err)
	}

	deps, err := buildDeps(cfg, db)
	if err != nil {
		logger.Fatal("Failed to initialize dependencies", "error", err)
	}
	defer deps.Limiter.Stop()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	workers.NewOTPWorker(db, time.Hour).Start(ctx)
	go deps.Hub.Run(ctx)

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           SetupRouter(deps),
		ReadHeaderTimeout: 10 * time.Second,
		ErrorLog:          slog.NewLogLogger(logger.GetLogger().Handler(), slog.LevelWarn),
	}

	go func() {
		logger.Info("Server starting", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server startup error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("Server shutdown error")
	}
}

// OpenDB открывает gorm по драйверу из конфига и проверяет соединение
func OpenDB(driver, dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case "", "postgres":
		dialector = postgres.Open(dsn)
	case "mysql":
		dialector = mysql.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("database unavailable: %w", err)
	}
	return db, nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&models.User{}, &models.Job{}, &models.Application{})
}

func buildDeps(cfg *config.Config, db *gorm.DB) (*Deps, error) {
	st, err := storage.NewStorage(storage.Config{
		Type:     cfg.Storage.Type,
		BasePath: cfg.Storage.BasePath,
		BaseURL:  cfg.Storage.BaseURL,
		MaxSize:  cfg.Storage.MaxSize,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	logger.Info("Storage initialized", "type", cfg.Storage.Type)

	var mailer email.Provider = email.NoopProvider{}
	if cfg.Email.Enabled {
		smtp, err := email.NewGomailProvider(&email.SMTPConfig{
			Host:      cfg.Email.SMTPHost,
			Port:      cfg.Email.SMTPPort,
			Username:  cfg.Email.SMTPUsername,
			Password:  cfg.Email.SMTPPassword,
			FromEmail: cfg.Email.FromEmail,
			FromName:  cfg.Email.FromName,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize email: %w", err)
		}
		mailer = smtp
	} else {
		logger.Warn("Email is disabled, verification codes are written to the log")
	}

	return &Deps{
		DB:           db,
		Users:        repositories.NewUserRepository(),
		Jobs:         repositories.NewJobRepository(),
		Applications: repositories.NewApplicationRepository(),
		Tokens:       auth.NewJWTManager(cfg.JWT.Secret, time.Duration(cfg.JWT.TTL)*time.Minute),
		Mailer:       mailer,
		Storage:      st,
		AI: ai.NewClaudeProvider(ai.ClaudeConfig{
			APIKey:      cfg.AI.APIKey,
			Model:       cfg.AI.Model,
			MaxTokens:   cfg.AI.MaxTokens,
			Temperature: cfg.AI.Temperature,
		}),
		Auth: handlers.AuthSettings{
			RequireVerification: cfg.Auth.RequireVerification,
			OTPTTL:              time.Duration(cfg.Auth.OTPTTL) * time.Minute,
		},
		UploadLimit: cfg.Storage.MaxSize,
		Limiter:     middleware.NewLimiterStore(cfg.Auth.LoginRatePerMinute, 0, 5*time.Minute),
		Hub:         ws.NewHub(),
	}, nil
}

func SetupRouter(deps *Deps) *gin.Engine {
	var events handlers.Publisher
	if deps.Hub != nil {
		events = deps.Hub
	}
	base := handlers.NewBaseHandler(validator.New(), events)

	appHandlers := &handlers.AppHandlers{
		AuthHandler:        handlers.NewAuthHandler(base, deps.Users, deps.Tokens, deps.Mailer, deps.Auth),
		JobHandler:         handlers.NewJobHandler(base, deps.Jobs),
		ApplicationHandler: handlers.NewApplicationHandler(base, deps.Applications, deps.Jobs),
		UserHandler:        handlers.NewUserHandler(base, deps.Users),
		UploadHandler:      handlers.NewUploadHandler(base, deps.Storage, imageprocessor.NewProcessor(85, avatarSide), deps.UploadLimit),
		AIHandler:          handlers.NewAIHandler(base, deps.AI),
	}
	if deps.Hub != nil {
		appHandlers.LiveHandler = ws.NewHandler(deps.Hub, deps.Tokens)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.DBMiddleware(deps.DB))

	mw := routes.Middlewares{Auth: middleware.AuthMiddleware(deps.Tokens)}
	if deps.Limiter != nil {
		mw.RateLimit = middleware.RateLimitMiddleware(deps.Limiter)
	}
	routes.RegisterRoutes(router, appHandlers, mw)
	return router
}
