package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	firebase "firebase.google.com/go"
	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/shenikar/emergency_reporting_system/internal/auth"
	"github.com/shenikar/emergency_reporting_system/internal/config"
	"github.com/shenikar/emergency_reporting_system/internal/feed"
	"github.com/shenikar/emergency_reporting_system/internal/geocode"
	"github.com/shenikar/emergency_reporting_system/internal/handler/http/legacy"
	v1 "github.com/shenikar/emergency_reporting_system/internal/handler/http/v1"
	"github.com/shenikar/emergency_reporting_system/internal/repository"
	"github.com/shenikar/emergency_reporting_system/internal/service"
	"github.com/shenikar/emergency_reporting_system/internal/storage"
	firebaseapp "github.com/shenikar/emergency_reporting_system/pkg/firebase"
	"github.com/shenikar/emergency_reporting_system/pkg/logger"
	"github.com/shenikar/emergency_reporting_system/pkg/postgres"
	redisclient "github.com/shenikar/emergency_reporting_system/pkg/redis"
	"github.com/sirupsen/logrus"

	_ "github.com/shenikar/emergency_reporting_system/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title Emergency Reporting System API
// @version 1.0
// @description Authenticated emergency reporting with a live incident feed.
// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func runMigrations(cfg *config.Config, log *logrus.Logger) error {
	log.Info("Running database migrations...")

	migrationURL := cfg.DatabaseURL
	if !strings.HasPrefix(migrationURL, "pgx5://") {
		migrationURL = strings.Replace(migrationURL, "postgres://", "pgx5://", 1)
	}

	m, err := migrate.New(
		"file://migrations",
		migrationURL,
	)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Info("Database migrations applied successfully")
	return nil
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	log := logger.New(cfg.LogLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := runMigrations(cfg, log); err != nil {
		log.Fatalf("Failed to run database migrations: %v", err)
	}

	dbpool, err := postgres.NewPostgresDB(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to connect to PostgreSQL: %v", err)
	}
	defer dbpool.Close()
	log.Info("Successfully connected to PostgreSQL")

	redisClient, err := redisclient.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()
	log.Info("Successfully connected to Redis")

	// The Firebase app backs ID token verification and media storage; both
	// are optional per deployment.
	var fbApp *firebase.App
	if cfg.FirebaseCredentials != "" {
		fbApp, err = firebaseapp.NewApp(ctx, cfg.FirebaseCredentials, cfg.StorageBucket)
		if err != nil {
			log.Fatalf("Failed to initialize Firebase app: %v", err)
		}
	}

	// Token verification strategy. The legacy signup/login surface only
	// exists when accounts are local.
	var provider auth.Provider
	var jwtProvider *auth.JWTProvider
	switch cfg.AuthMode {
	case "firebase":
		provider, err = auth.NewFirebaseProvider(ctx, fbApp)
		if err != nil {
			log.Fatalf("Failed to initialize Firebase auth: %v", err)
		}
	default:
		jwtProvider = auth.NewJWTProvider(cfg.JWTSecret, cfg.JWTTTL)
		provider = jwtProvider
	}

	var resolver service.GeoResolver
	switch cfg.Geocoder {
	case "google":
		resolver, err = geocode.NewGoogleResolver(cfg.MapsAPIKey)
		if err != nil {
			log.Fatalf("Failed to initialize Google geocoder: %v", err)
		}
	default:
		resolver = geocode.NewNominatimResolver(cfg.NominatimURL, cfg.GeocodeTimeout)
	}

	var uploader service.MediaUploader = storage.DisabledUploader{}
	if fbApp != nil && cfg.StorageBucket != "" {
		uploader, err = storage.NewFirebaseUploader(ctx, fbApp, cfg.StorageBucket)
		if err != nil {
			log.Fatalf("Failed to initialize media storage: %v", err)
		}
	} else {
		log.Warn("Media storage not configured, submissions with attachments will be rejected")
	}

	incidentRepo := repository.NewIncidentRepository(dbpool, redisClient, cfg.FeedCacheTTL)

	// Live feed: seed the hub from the store, then keep it current through
	// the Redis event bridge.
	hub := feed.NewHub()
	defer hub.Close()

	snapshot, err := incidentRepo.List(ctx, cfg.FeedSnapshotLimit)
	if err != nil {
		log.Fatalf("Failed to seed feed snapshot: %v", err)
	}
	hub.Reset(snapshot)

	publisher := feed.NewRedisPublisher(redisClient)
	worker := feed.NewWorker(redisClient, hub, log)
	worker.Start(ctx)

	submissionService := service.NewSubmissionService(incidentRepo, resolver, uploader, publisher, log, cfg)

	handler := v1.NewHandler(submissionService, hub, provider, log, cfg)

	router := gin.Default()
	api := router.Group("/api/v1")
	handler.RegisterRoutes(api)

	if jwtProvider != nil {
		legacyHandler := legacy.NewHandler(repository.NewUserRepository(dbpool), jwtProvider, log)
		legacyHandler.RegisterRoutes(api)
	}

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	serverAddr := fmt.Sprintf(":%s", cfg.HTTPPort)

	srv := &http.Server{
		Addr:    serverAddr,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Error starting HTTP server: %v", err)
		}
	}()
	log.Infof("HTTP server started on port %s", cfg.HTTPPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Received shutdown signal, shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Info("Server gracefully stopped")
}
