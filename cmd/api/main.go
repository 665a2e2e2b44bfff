package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Dan9191/spend-forecast/internal/config"
	"github.com/Dan9191/spend-forecast/internal/handler"
	"github.com/Dan9191/spend-forecast/internal/middleware"
	"github.com/Dan9191/spend-forecast/internal/repository"
	"github.com/Dan9191/spend-forecast/internal/scheduler"
	"github.com/Dan9191/spend-forecast/internal/service"
	"github.com/Dan9191/spend-forecast/internal/utils/email"
	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
)

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logLevel, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Load configuration
	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	// Stored history is optional; /predict works without it
	var repo service.HistoryRepository
	if cfg.DBConn != "" {
		db, err := sql.Open("postgres", cfg.DBConn)
		if err != nil {
			logger.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()
		if err := db.Ping(); err != nil {
			logger.Fatalf("Failed to ping database: %v", err)
		}
		repo = repository.NewRepository(db)
	} else {
		logger.Info("DB_CONN not set, stored history endpoints disabled")
	}

	// Initialize layers
	svc := service.NewService(repo, logger, cfg)
	h := handler.NewHandler(svc, logger, cfg.ForecastTimeout)

	if cfg.DigestEnabled() {
		digest := scheduler.NewDigest(svc, email.NewSender(cfg, logger), cfg.DigestRecipients, cfg.ForecastTimeout, logger)
		if err := digest.Start(cfg.DigestSchedule); err != nil {
			logger.Fatalf("Failed to start digest: %v", err)
		}
		defer digest.Stop()
	}

	// Setup router
	r := mux.NewRouter()
	r.Use(middleware.RequestID(), middleware.Logging(logger), middleware.Recover(logger))
	h.Register(r, repo != nil)

	c := cors.New(cors.Options{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", middleware.RequestIDHeader},
		ExposedHeaders: []string{middleware.RequestIDHeader},
	})

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      c.Handler(r),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.ForecastTimeout + 10*time.Second,
	}

	go func() {
		logger.Infof("Starting server on %s", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("Server failed: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Errorf("Graceful shutdown failed: %v", err)
	}
	logger.Info("Server stopped")
}
