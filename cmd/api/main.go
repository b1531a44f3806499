package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/noah-isme/tutoring-api/internal/auth"
	"github.com/noah-isme/tutoring-api/internal/config"
	"github.com/noah-isme/tutoring-api/internal/database"
	"github.com/noah-isme/tutoring-api/internal/events"
	"github.com/noah-isme/tutoring-api/internal/handler"
	"github.com/noah-isme/tutoring-api/internal/middleware"
	"github.com/noah-isme/tutoring-api/internal/repository"
	"github.com/noah-isme/tutoring-api/internal/router"
	"github.com/noah-isme/tutoring-api/internal/service"
	"github.com/noah-isme/tutoring-api/internal/storage"
	cloud "github.com/noah-isme/tutoring-api/pkg/cloudinary"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Str("service", "tutoring-api").Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load configuration")
	}
	if cfg.AppEnv == "development" {
		logger = logger.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer func() {
		if err := database.Close(db); err != nil {
			logger.Error().Err(err).Msg("failed to close database")
		}
	}()

	if err := database.Migrate(db); err != nil {
		logger.Fatal().Err(err).Msg("failed to migrate database")
	}

	startupCtx, cancelStartup := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelStartup()

	redisClient, err := database.ConnectRedis(startupCtx, cfg.RedisURL)
	if err != nil {
		// The dashboard works uncached, so a missing redis is not fatal.
		logger.Warn().Err(err).Msg("redis unavailable, dashboard cache disabled")
		redisClient = nil
	}
	if redisClient != nil {
		defer func(client *redis.Client) { _ = client.Close() }(redisClient)
	}

	publisher, natsConn, err := events.Connect(cfg.NATSURL, cfg.EventSubjectPrefix, logger)
	if err != nil {
		logger.Warn().Err(err).Msg("nats unavailable, domain events disabled")
		publisher = events.Nop{}
	}
	if natsConn != nil {
		defer func() {
			if err := natsConn.Drain(); err != nil {
				logger.Error().Err(err).Msg("failed to drain nats connection")
			}
		}()
	}

	files, err := newFileStorage(cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialise file storage")
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTRefreshSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)

	userRepo := repository.NewUserRepository(db)
	studentRepo := repository.NewStudentRepository(db)
	lessonRepo := repository.NewLessonRepository(db)
	assignmentRepo := repository.NewAssignmentRepository(db)
	classRepo := repository.NewClassRepository(db)
	resourceRepo := repository.NewResourceRepository(db)
	statsRepo := repository.NewStatsRepository(db)
	refreshRepo := repository.NewRefreshTokenRepository(db)

	seeder := service.NewSeedService(userRepo, studentRepo, service.SeedConfig{
		AdminEmail:       cfg.SeedAdminEmail,
		AdminPassword:    cfg.SeedAdminPassword,
		AdminName:        cfg.SeedAdminName,
		DemoStudentEmail: cfg.SeedDemoStudentEmail,
		StudentPassword:  cfg.StudentDefaultPassword,
	}, logger)
	seeder.Run(startupCtx)

	dashboardService := service.NewDashboardService(statsRepo, redisClient, cfg.DashboardCacheTTL, logger)
	dashboardService.Invalidate(startupCtx)

	authService := service.NewAuthService(userRepo, studentRepo, refreshRepo, tokens, validate, logger)
	studentService := service.NewStudentService(studentRepo, validate, publisher, dashboardService, cfg.StudentDefaultPassword, logger)
	lessonService := service.NewLessonService(lessonRepo, validate, dashboardService, logger)
	assignmentService := service.NewAssignmentService(assignmentRepo, studentRepo, lessonRepo, validate, publisher, dashboardService, logger)
	classService := service.NewClassService(classRepo, studentRepo, lessonRepo, validate, publisher, logger)
	resourceService := service.NewResourceService(resourceRepo, files, validate, publisher, cfg.UploadMaxSizeMB, logger)
	portalService := service.NewStudentPortalService(studentRepo, assignmentRepo, classRepo, lessonRepo, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
		BodyLimit:    (cfg.UploadMaxSizeMB + 1) * 1024 * 1024,
	})

	middleware.Register(app, middleware.Config{Logger: &logger, AllowOrigins: cfg.AllowOrigins})
	router.Register(app, cfg, router.Dependencies{
		Tokens:               tokens,
		HealthProbe:          func(ctx context.Context) error { return database.Ping(ctx, db) },
		AuthHandler:          handler.NewAuthHandler(authService, logger),
		StudentHandler:       handler.NewStudentHandler(studentService, logger),
		LessonHandler:        handler.NewLessonHandler(lessonService, logger),
		AssignmentHandler:    handler.NewAssignmentHandler(assignmentService, logger),
		ClassHandler:         handler.NewClassHandler(classService, logger),
		ResourceHandler:      handler.NewResourceHandler(resourceService, logger),
		DashboardHandler:     handler.NewDashboardHandler(dashboardService, logger),
		StudentPortalHandler: handler.NewStudentPortalHandler(portalService, logger),
	})

	go func() {
		logger.Info().Str("address", cfg.HTTPAddress()).Str("env", cfg.AppEnv).Msg("server listening")
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			logger.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	waitForShutdown(app, logger)
}

func newFileStorage(cfg config.Config, logger zerolog.Logger) (service.FileStorage, error) {
	if cfg.StorageDriver == "cloudinary" {
		store, err := cloud.New(cloud.Config{
			CloudName: cfg.CloudinaryCloudName,
			APIKey:    cfg.CloudinaryAPIKey,
			APISecret: cfg.CloudinaryAPISecret,
			Folder:    cfg.CloudinaryUploadFolder,
		}, logger)
		if err != nil {
			return nil, err
		}
		return store, nil
	}

	store, err := storage.NewLocal(cfg.UploadsDir, cfg.UploadsPublicPath, logger)
	if err != nil {
		return nil, err
	}
	return store, nil
}

func waitForShutdown(app *fiber.App, logger zerolog.Logger) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}

	logger.Info().Msg("server stopped")
}
