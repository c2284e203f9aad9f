package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv" // Para cargar variables de entorno desde .env
	"github.com/kelydev/apiClinica/config"
	"github.com/kelydev/apiClinica/database"
	"github.com/kelydev/apiClinica/logger"
	"github.com/kelydev/apiClinica/middleware"
	"github.com/kelydev/apiClinica/routes"
	"github.com/kelydev/apiClinica/session"
	"github.com/rs/cors"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Cargar variables de entorno desde .env
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logger.Warningf("Error loading .env file: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("invalid configuration: %v", err)
	}
	logger.InitLogger(logger.ParseLevel(cfg.LogLevel))
	logger.Info("starting server...")

	db, err := database.InitDB(cfg.Database)
	if err != nil {
		logger.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	if cfg.Database.AutoMigrate {
		if err := database.Migrate(db); err != nil {
			logger.Fatalf("Failed to migrate database: %v", err)
		}
	}

	sessions := session.NewManager(
		session.NewStore(cfg.SessionTTL),
		session.NewCodec(cfg.SessionSecret, cfg.SessionTTL),
		cfg.CookieSecure,
	)

	r := routes.SetupRoutes(db, sessions, cfg)

	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           c.Handler(middleware.RequestLogger(r)),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Infof("listening on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("server error: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Errorf("graceful shutdown failed: %v", err)
	}
}
