package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/sannyeinphyo/internlink-sub001/internal/config"
	"github.com/sannyeinphyo/internlink-sub001/internal/domain/access"
	"github.com/sannyeinphyo/internlink-sub001/internal/infrastructure/datasources/postgres"
	"github.com/sannyeinphyo/internlink-sub001/internal/infrastructure/jobs"
	"github.com/sannyeinphyo/internlink-sub001/internal/infrastructure/notification"
	"github.com/sannyeinphyo/internlink-sub001/internal/infrastructure/repositories"
	"github.com/sannyeinphyo/internlink-sub001/internal/interfaces/http/handlers"
	"github.com/sannyeinphyo/internlink-sub001/internal/interfaces/http/middleware"
	"github.com/sannyeinphyo/internlink-sub001/internal/usecases"
	"github.com/sannyeinphyo/internlink-sub001/pkg/jwt"
	"github.com/sannyeinphyo/internlink-sub001/pkg/logger"
	"github.com/sannyeinphyo/internlink-sub001/pkg/redis"
)

const shutdownTimeout = 10 * time.Second

var (
	loadDotenv = godotenv.Load
	loadCfg    = config.Load
	initLog    = func(cfg config.LogConfig, env string) {
		logger.InitWithFile(env, logger.FileOptions{
			Path:       cfg.File,
			MaxSizeMB:  cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAgeDays: cfg.MaxAgeDays,
		})
	}
	initRedis = redis.Init
	openDB    = func(cfg config.DatabaseConfig) (*gorm.DB, error) {
		sqlDB, err := postgres.NewConnection(cfg)
		if err != nil {
			return nil, err
		}
		return postgres.NewGorm(sqlDB)
	}
	migrate   = postgres.Migrate
	runServer = func(srv *http.Server) error { return srv.ListenAndServe() }
	getStdDB  = func(db *gorm.DB) (*sql.DB, error) { return db.DB() }
)

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

func runMainProcess() error {
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := loadCfg()

	initLog(cfg.Log, cfg.Server.Env)
	logger.Info(context.Background(), "Logger initialized", zap.String("env", cfg.Server.Env))

	// Redis only backs the OTP throttle; it must be reachable at boot.
	if err := initRedis(cfg.Redis.URL, cfg.Redis.PASSWORD); err != nil {
		logger.Error(context.Background(), "Failed to initialize Redis", zap.Error(err))
		return fmt.Errorf("failed to initialize redis: %w", err)
	}
	logger.Info(context.Background(), "Redis initialized")

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := openDB(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := getStdDB(db)
	if err != nil {
		return fmt.Errorf("failed to get generic database object: %w", err)
	}
	defer sqlDB.Close()

	if err := migrate(db); err != nil {
		return err
	}
	logger.Info(context.Background(), "Database ready")

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.Expiry)

	// Repositories
	accountRepo := repositories.NewAccountRepository(db)
	profileRepo := repositories.NewProfileRepository(db)
	resetRepo := repositories.NewPasswordResetRepository(db)
	uow := repositories.NewUnitOfWork(db)

	dispatcher := notification.NewDispatcher(newMailer(cfg.SMTP), cfg.App.Name)
	throttle := redis.NewOTPThrottle(cfg.OTP.ResendInterval)

	// Usecases
	verificationUsecase := usecases.NewVerificationUsecase(accountRepo, profileRepo, resetRepo, uow, dispatcher, throttle)
	authUsecase := usecases.NewAuthUsecase(accountRepo, profileRepo, jwtService)
	approvalUsecase := usecases.NewApprovalUsecase(accountRepo, dispatcher)

	// Handlers
	policy := access.DefaultPolicy(cfg.App.Locales, cfg.App.DefaultLocale)
	authHandler := handlers.NewAuthHandler(verificationUsecase, authUsecase, handlers.SessionCookie{
		Name:   cfg.Cookie.Name,
		Domain: cfg.Cookie.Domain,
		Secure: cfg.Cookie.Secure,
		MaxAge: cfg.JWT.Expiry,
	})
	adminHandler := handlers.NewAdminHandler(approvalUsecase)
	pagesHandler := handlers.NewPagesHandler(policy)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	expiryJob := jobs.NewOTPExpiryJob(accountRepo, resetRepo, cfg.OTP.SweepInterval)
	go expiryJob.Start(ctx)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.Metrics())

	applyCORSMiddleware(r)
	registerHealthRoute(r)
	registerMetricsRoute(r)

	r.Use(middleware.PageGate(jwtService, policy, cfg.Cookie.Name))
	registerAPIV1Routes(r, routeDeps{
		authHandler:    authHandler,
		adminHandler:   adminHandler,
		pagesHandler:   pagesHandler,
		authMiddleware: middleware.AuthMiddleware(jwtService, cfg.Cookie.Name),
	})

	for _, route := range r.Routes() {
		logger.Debug(ctx, "Route registered", zap.String("method", route.Method), zap.String("path", route.Path))
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		logger.Info(context.Background(), "Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error(context.Background(), "Server shutdown failed", zap.Error(err))
		}
	}()

	logger.Info(ctx, "InternLink backend starting", zap.String("port", cfg.Server.Port))

	err = runServer(srv)
	stop()
	expiryJob.Stop()
	dispatcher.Wait()

	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

func newMailer(cfg config.SMTPConfig) notification.Mailer {
	if cfg.Host == "" {
		return notification.NewLogMailer()
	}
	return notification.NewSMTPMailer(cfg.Host, cfg.Port, cfg.Username, cfg.Password, cfg.From)
}
