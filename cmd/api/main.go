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

	"github.com/tradesafe/docsentinel/internal/application"
	appfraud "github.com/tradesafe/docsentinel/internal/application/fraud"
	"github.com/tradesafe/docsentinel/internal/config"
	"github.com/tradesafe/docsentinel/internal/domain/audit"
	"github.com/tradesafe/docsentinel/internal/domain/documents"
	openaiClient "github.com/tradesafe/docsentinel/internal/infra/ai/openai"
	mysqlp "github.com/tradesafe/docsentinel/internal/infra/db/mysql"
	postgresp "github.com/tradesafe/docsentinel/internal/infra/db/postgres"
	"github.com/tradesafe/docsentinel/internal/infra/httpserver"
	minioStore "github.com/tradesafe/docsentinel/internal/infra/storage"
	"github.com/tradesafe/docsentinel/internal/middleware"
)

func main() {
	// path config.yaml
	path := "config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		path = v
	}

	cfg, err := config.Load(path)
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}

	ctx := context.Background()

	// connect database (mysql default, postgres optional)
	var (
		db           *sql.DB
		auditRepo    audit.Repository
		documentRepo documents.Repository
	)
	switch cfg.Database.Driver {
	case "", "mysql":
		db, err = mysqlp.Connect(ctx, cfg.MySQLDSN())
		if err != nil {
			log.Fatalf("mysql connect error: %v", err)
		}
		auditRepo = mysqlp.NewAuditRepository(db)
		documentRepo = mysqlp.NewDocumentRepository(db)
	case "postgres":
		db, err = postgresp.Connect(ctx, cfg.PostgresDSN())
		if err != nil {
			log.Fatalf("postgres connect error: %v", err)
		}
		auditRepo = postgresp.NewAuditRepository(db)
		documentRepo = postgresp.NewDocumentRepository(db)
	default:
		log.Fatalf("unknown database driver: %s", cfg.Database.Driver)
	}
	defer db.Close()

	// init service
	svc := &appfraud.Service{
		Audit:           auditRepo,
		Documents:       documentRepo,
		Clock:           application.SystemClock{},
		AnalyzerTimeout: time.Duration(cfg.Analysis.AnalyzerTimeoutSeconds) * time.Second,
	}

	// text generation is optional; the content analyzer degrades without it
	if cfg.OpenAI.APIKey != "" {
		svc.Generator = openaiClient.NewClient(cfg.OpenAI.APIKey, cfg.OpenAI.Model)
	} else {
		log.Println("openai api key not set; content analysis will degrade to manual review")
	}

	// report store is optional too
	if cfg.Minio.Endpoint != "" {
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
		svc.Reports = store
	}

	// reconciliation sweep for audit rows orphaned in processing
	sweepCtx, stopSweep := context.WithCancel(ctx)
	defer stopSweep()
	sweeper := &appfraud.Sweeper{
		Audit:      auditRepo,
		Interval:   time.Duration(cfg.Sweep.IntervalMinutes) * time.Minute,
		StaleAfter: time.Duration(cfg.Sweep.StaleAfterMinutes) * time.Minute,
	}
	go sweeper.Run(sweepCtx)

	// init router; auth runs first so request logs carry the caller name
	mux := chi.NewRouter()
	if len(cfg.Auth.APIKeys) > 0 {
		mux.Use(middleware.APIKeyAuth(cfg.Auth.APIKeys))
	}
	mux.Use(middleware.LoggingMiddleware)
	mux.Use(middleware.MetricsMiddleware)
	if cfg.RateLimit.Capacity > 0 {
		mux.Use(middleware.RateLimitMiddleware(cfg.RateLimit.Capacity, cfg.RateLimit.RefillRate))
	}
	health := middleware.HealthHandler(map[string]middleware.HealthChecker{
		"database": &middleware.DatabaseHealthChecker{DB: db},
	})
	mux.Mount("/", httpserver.NewRouter(svc, cfg.CORS.AllowedOrigins, health))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// run server
	go func() {
		log.Printf("server listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	log.Println("shutting down server...")
	stopSweep()

	ctx2, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx2); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}
