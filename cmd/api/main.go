package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/vendorvet/vendorvet/internal/application"
	appassessments "github.com/vendorvet/vendorvet/internal/application/assessments"
	appreviews "github.com/vendorvet/vendorvet/internal/application/reviews"
	appstandards "github.com/vendorvet/vendorvet/internal/application/standards"
	"github.com/vendorvet/vendorvet/internal/config"
	"github.com/vendorvet/vendorvet/internal/domain/analysis"
	"github.com/vendorvet/vendorvet/internal/domain/assessment"
	"github.com/vendorvet/vendorvet/internal/domain/ingestion"
	"github.com/vendorvet/vendorvet/internal/domain/review"
	"github.com/vendorvet/vendorvet/internal/domain/standard"
	mysqlp "github.com/vendorvet/vendorvet/internal/infra/db/mysql"
	postgresp "github.com/vendorvet/vendorvet/internal/infra/db/postgres"
	"github.com/vendorvet/vendorvet/internal/infra/httpserver"
	"github.com/vendorvet/vendorvet/internal/infra/ingest"
	minioStore "github.com/vendorvet/vendorvet/internal/infra/storage"
	"github.com/vendorvet/vendorvet/internal/middleware"
)

func main() {
	// path config.yaml
	path := "config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		path = v
	}

	// load config
	cfg, err := config.Load(path)
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}

	ctx := context.Background()

	// connect database, driver from config
	var (
		db         *sql.DB
		reportRepo assessment.Repository
		stdRepo    standard.Repository
		reviewRepo review.Repository
		ingestRepo ingestion.Repository
	)
	switch cfg.Database.Driver {
	case "postgres":
		db, err = postgresp.Connect(ctx, cfg.PostgresDSN())
		if err != nil {
			log.Fatalf("postgres connect error: %v", err)
		}
		reportRepo = postgresp.NewReportRepository(db)
		stdRepo = postgresp.NewStandardRepository(db)
		reviewRepo = postgresp.NewReviewRepository(db)
		ingestRepo = postgresp.NewIngestErrorRepository(db)
	default:
		db, err = mysqlp.Connect(ctx, cfg.MySQLDSN())
		if err != nil {
			log.Fatalf("mysql connect error: %v", err)
		}
		reportRepo = mysqlp.NewReportRepository(db)
		stdRepo = mysqlp.NewStandardRepository(db)
		reviewRepo = mysqlp.NewReviewRepository(db)
		ingestRepo = mysqlp.NewIngestErrorRepository(db)
	}
	defer db.Close()

	// init minio
	store, err := minioStore.New(ctx,
		cfg.Minio.Endpoint,
		cfg.Minio.Region,
		cfg.Minio.BucketName,
		cfg.Minio.AccessKey,
		cfg.Minio.SecretKey,
		cfg.Minio.UseSSL,
	)
	if err != nil {
		log.Fatalf("minio init error: %v", err)
	}

	clock := application.SystemClock{}

	// init services
	standardSvc := &appstandards.Service{
		Repo:  stdRepo,
		Clock: clock,
	}
	assessSvc := &appassessments.Service{
		Repo:       reportRepo,
		Standards:  standardSvc,
		Ingester:   ingest.NewCSVIngester(),
		IngestLog:  ingestRepo,
		Artifacts:  store,
		Classifier: analysis.NewEngine(),
		Clock:      clock,
		Weights:    cfg.Scoring,
	}
	reviewSvc := &appreviews.Service{
		Repo:    reviewRepo,
		Reports: reportRepo,
		Clock:   clock,
	}

	// init router
	mux := chi.NewRouter()
	mux.Use(middleware.LoggingMiddleware)
	mux.Use(middleware.MetricsMiddleware)
	mux.Use(middleware.APIKeyAuth(cfg.Auth.APIKeys))
	mux.Use(middleware.RateLimitMiddleware(cfg.RateLimit.Capacity, cfg.RateLimit.RefillRate))
	mux.Mount("/", httpserver.NewRouter(assessSvc, standardSvc, reviewSvc, httpserver.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		HealthCheckers: map[string]middleware.HealthChecker{
			"database": &middleware.DatabaseHealthChecker{DB: db},
			"storage":  store,
		},
	}))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// run server
	go func() {
		log.Printf("server listening on %s driver=%s", addr, cfg.Database.Driver)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	log.Println("shutting down server...")

	ctx2, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx2); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}
