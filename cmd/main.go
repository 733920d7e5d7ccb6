package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"
	"time"

	"yesfundme/internal/feed"
	"yesfundme/internal/handlers"
	"yesfundme/internal/logger"
	"yesfundme/internal/repository"
	"yesfundme/internal/repository/db"
	"yesfundme/internal/server"
	"yesfundme/internal/service"

	"github.com/spf13/viper"
)

const defaultTokenTTL = 24 * time.Hour

// @title           YesFundMe API
// @version         1.0
// @description     Crowdfunding platform: campaigns, donations and live funding feeds.
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// load config.yml first so the log level is honored
	if err := loadConfig(); err != nil {
		logger.Get(logger.InfoLevel).Fatalw("error reading config", "err", err)
	}

	log := logger.Get(viper.GetString("log.level"))

	// open DB
	database, err := openDB(log)
	if err != nil {
		log.Fatalw("failed to init sqlite", "err", err)
	}
	defer func() {
		if cerr := database.Close(); cerr != nil {
			log.Fatalw("failed to close sqlite", "err", cerr)
		}
	}()

	// wire dependencies
	repos := repository.NewRepository(database)
	hub := feed.NewHub()
	services := service.NewService(repos, authConfig(log), hub)
	apiHandler := handlers.NewHandler(services, log, hub)

	// context for background goroutines
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// start the live funding feed hub
	go hub.Run(ctx)

	// start HTTP server
	srv := &server.Server{}
	runHTTPServer(srv, viper.GetString("port"), apiHandler, log)

	// graceful shutdown
	waitForShutdown(cancel, srv, log)
}

func loadConfig() error {
	viper.AddConfigPath("configs") // configs/config.yml
	viper.SetConfigName("config")
	return viper.ReadInConfig()
}

// authConfig reads token signing settings, preferring the environment for
// the signing key so it stays out of config files.
func authConfig(log *logger.Logger) service.AuthConfig {
	key := os.Getenv("JWT_SIGNING_KEY")
	if key == "" {
		key = viper.GetString("auth.signing_key")
	}
	if key == "" {
		log.Fatalw("no signing key configured; set JWT_SIGNING_KEY or auth.signing_key")
	}

	ttl := viper.GetDuration("auth.token_ttl")
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return service.AuthConfig{SigningKey: key, TokenTTL: ttl}
}

// openDB initializes the SQLite database using configuration.
func openDB(log *logger.Logger) (*sql.DB, error) {
	dbPath := viper.GetString("db.path")
	if dbPath == "" {
		log.Infow("db.path not set in config; using default file", "default", "yesfundme.db")
		dbPath = "yesfundme.db"
	}
	return db.InitDB(dbPath)
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		if port == "" {
			port = "8080"
		}
		if err := srv.Run(port, handler.InitRoutes()); err != nil {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(cancel context.CancelFunc, srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	// stop background goroutines
	cancel()

	// allow in-flight requests to complete
	ctx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalw("server forced to shutdown", "err", err)
	}
}
