package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-clinic-scheduling/config"
	deliveryHttp "go-clinic-scheduling/internal/delivery/http"
	"go-clinic-scheduling/internal/delivery/http/handler"
	"go-clinic-scheduling/internal/delivery/http/middleware"
	"go-clinic-scheduling/internal/infrastructure/cache"
	"go-clinic-scheduling/internal/infrastructure/database"
	"go-clinic-scheduling/internal/repository"
	"go-clinic-scheduling/internal/service"
	"go-clinic-scheduling/internal/usecase"
	"go-clinic-scheduling/pkg/jwt"
	"go-clinic-scheduling/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	DB          *gorm.DB
	RedisClient *redis.Client
	Server      *http.Server
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	app := &App{}

	// Setup logger
	setupLogger()

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg
	logrus.Info("Configuration loaded successfully")

	// Resolve the clinic timezone once; all scheduling math uses it
	loc, err := time.LoadLocation(cfg.Clinic.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid clinic timezone %q: %w", cfg.Clinic.Timezone, err)
	}

	// Apply pending migrations before opening the pool
	if err := database.RunMigrations(cfg.DB); err != nil {
		return nil, err
	}

	// Initialize database
	db, err := database.NewPostgresConnection(cfg.DB, cfg.Clinic.Timezone)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db
	logrus.Info("Database connected successfully")

	// Initialize Redis
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient
	logrus.Info("Redis connected successfully")

	// Initialize all layers
	server := initializeServer(cfg, db, redisClient, loc)
	app.Server = server

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger() {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)
}

// initializeServer creates and configures the HTTP server
func initializeServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, loc *time.Location) *http.Server {
	// Initialize JWT service
	jwtService := jwt.NewJWTService(cfg.JWT)

	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize repositories
	userRepo := repository.NewUserRepository()
	roleRepo := repository.NewRoleRepository()
	professionalRepo := repository.NewProfessionalRepository()
	patientRepo := repository.NewPatientRepository()
	appointmentRepo := repository.NewAppointmentRepository()
	recurrenceRepo := repository.NewRecurrenceRepository()
	availabilityRepo := repository.NewAvailabilityRepository()
	groupRepo := repository.NewGroupRepository()
	serviceCatalogRepo := repository.NewServiceCatalogRepository()
	auditLogRepo := repository.NewAuditLogRepository()

	// Initialize logger
	log := logrus.StandardLogger()

	// Initialize domain services
	conflictChecker := service.NewConflictChecker(log, appointmentRepo)
	availabilityChecker := service.NewAvailabilityChecker(log, availabilityRepo)
	auditService := service.NewAuditService(db, log, auditLogRepo)
	tokenService := service.NewActionTokenService(log, redisClient)

	// SMTP when configured, log-only otherwise
	var dispatcher service.NotificationDispatcher
	if cfg.SMTP.Host != "" {
		dispatcher = service.NewSMTPDispatcher(log, cfg.SMTP)
	} else {
		dispatcher = service.NewLogDispatcher(log)
		logrus.Warn("SMTP not configured, notifications will only be logged")
	}

	defaultBuffer := cfg.Clinic.DefaultBufferMinutes

	// Initialize usecases
	authUsecase := usecase.NewAuthUsecase(db, log, userRepo, roleRepo, professionalRepo, jwtService, redisClient)
	appointmentUsecase := usecase.NewAppointmentUsecase(db, log, loc, defaultBuffer, appointmentRepo, recurrenceRepo, patientRepo, professionalRepo, serviceCatalogRepo, conflictChecker, availabilityChecker, auditService, tokenService, dispatcher)
	recurrenceUsecase := usecase.NewRecurrenceUsecase(db, log, loc, defaultBuffer, recurrenceRepo, appointmentRepo, professionalRepo, conflictChecker, auditService)
	availabilityUsecase := usecase.NewAvailabilityUsecase(db, log, loc, availabilityRepo, auditService)
	groupUsecase := usecase.NewGroupUsecase(db, log, loc, defaultBuffer, groupRepo, appointmentRepo, patientRepo, conflictChecker, auditService)
	reminderUsecase := usecase.NewReminderUsecase(db, log, loc, appointmentRepo, redisClient, dispatcher)
	patientUsecase := usecase.NewPatientUsecase(db, log, loc, patientRepo, auditService)
	professionalUsecase := usecase.NewProfessionalUsecase(db, log, professionalRepo, userRepo)
	serviceCatalogUsecase := usecase.NewServiceCatalogUsecase(db, log, serviceCatalogRepo)
	auditLogUsecase := usecase.NewAuditLogUsecase(db, log, auditLogRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authUsecase, customValidator, jwtService)
	appointmentHandler := handler.NewAppointmentHandler(appointmentUsecase, customValidator)
	recurrenceHandler := handler.NewRecurrenceHandler(recurrenceUsecase, customValidator)
	availabilityHandler := handler.NewAvailabilityHandler(availabilityUsecase, customValidator)
	groupHandler := handler.NewGroupHandler(groupUsecase, customValidator)
	patientHandler := handler.NewPatientHandler(patientUsecase, customValidator)
	professionalHandler := handler.NewProfessionalHandler(professionalUsecase, customValidator)
	serviceCatalogHandler := handler.NewServiceCatalogHandler(serviceCatalogUsecase, customValidator)
	auditLogHandler := handler.NewAuditLogHandler(auditLogUsecase)
	jobsHandler := handler.NewJobsHandler(recurrenceUsecase, reminderUsecase)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService, redisClient)
	corsMiddleware := middleware.NewCORSMiddleware(cfg.App.CORSOrigin)

	// Initialize router
	router := deliveryHttp.NewRouter(
		authHandler,
		appointmentHandler,
		recurrenceHandler,
		availabilityHandler,
		groupHandler,
		patientHandler,
		professionalHandler,
		serviceCatalogHandler,
		auditLogHandler,
		jobsHandler,
		authMiddleware,
		corsMiddleware,
	)
	httpRouter := router.Setup()

	// Create server
	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	return &http.Server{
		Addr:    serverAddr,
		Handler: httpRouter,
	}
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	// Start server in goroutine
	go func() {
		logrus.Infof("Server starting on port %s", app.Config.App.Port)
		logrus.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	app.waitForShutdown()
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown HTTP server gracefully
	if err := app.Server.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	// Close connections
	app.Close()

	logrus.Info("Server shutdown complete")
}

// Close closes all connections (database, redis, etc.)
func (app *App) Close() {
	// Close database connection
	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	// Close Redis connection
	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}
