package main

//
//  @title           shipregistry API
//  @version         1.0
//  @description     Spaceship registry with filtering, paging and derived ratings.
//  @termsOfService  https://github.com/guttosm/shipregistry
//  @contact.name    API Support
//  @contact.url     https://github.com/guttosm/shipregistry
//  @license.name    MIT
//  @license.url     https://opensource.org/licenses/MIT
//  @host            localhost:8080
//  @BasePath        /
//  @schemes         http
//
//  @tag.name        ships
//  @tag.description Ship registry CRUD, filtering and paging
//
//  @tag.name        health
//  @tag.description Liveness and readiness probes

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/guttosm/shipregistry/config"
	"github.com/guttosm/shipregistry/db/migrations"
	_ "github.com/guttosm/shipregistry/docs" // swagger docs
	"github.com/guttosm/shipregistry/internal/app"
	"github.com/guttosm/shipregistry/internal/ingestion"
	"github.com/guttosm/shipregistry/internal/logger"
)

// startServer initializes and starts the HTTP server in a separate goroutine.
//
// Parameters:
//   - router (http.Handler): The HTTP router (Gin Engine) configured with all routes.
//   - port (string): The port where the server will listen for incoming requests.
//
// Returns:
//   - *http.Server: The initialized HTTP server instance.
func startServer(router http.Handler, port string) *http.Server {
	server := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.L().Info().Str("port", port).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.L().Fatal().Err(err).Msg("server failed to start")
		}
	}()

	return server
}

// gracefulShutdown gracefully terminates the HTTP server and cleans up resources
// when an OS interrupt signal (SIGINT, SIGTERM) is received.
//
// Parameters:
//   - ctx (context.Context): A context with timeout for graceful shutdown.
//   - server (*http.Server): The HTTP server instance to shut down.
//   - cleanup (func()): Cleanup callback to release resources (e.g., DB connections).
func gracefulShutdown(ctx context.Context, server *http.Server, cleanup func()) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	logger.L().Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.L().Fatal().Err(err).Msg("server forced to shutdown")
	}

	cleanup()
	logger.L().Info().Msg("server exited gracefully")
}

// runMigrate applies the embedded schema migrations to the configured database.
func runMigrate(ctx context.Context) error {
	if config.AppConfig.StorageDriver == config.StorageMemory {
		return errors.New("migrate mode needs STORAGE_DRIVER=postgres")
	}
	db, err := app.InitPostgres(config.AppConfig)
	if err != nil {
		return fmt.Errorf("db connect: %w", err)
	}
	defer func() { _ = db.Close() }()

	if err := migrations.Up(ctx, db); err != nil {
		return err
	}
	version, err := migrations.Version(ctx, db)
	if err != nil {
		return err
	}
	logger.L().Info().Int64("version", version).Msg("migrations applied")
	return nil
}

// runImport creates every ship listed in the fleet files under dir.
func runImport(ctx context.Context, dir string, parallel int) error {
	svc, cleanup, err := app.InitializeService()
	if err != nil {
		return err
	}
	defer cleanup()

	res, err := ingestion.ProcessDirectory(ctx, dir, svc, parallel)
	if err != nil {
		return fmt.Errorf("import failed after %d ships: %w", res.Ships, err)
	}
	return nil
}

// main is the entry point of the shipregistry application.
//
// Modes (selected via --mode flag):
//   - api:     Starts the REST API (default).
//   - migrate: Applies the embedded database migrations and exits.
//   - import:  Creates ships from the *.csv fleet files in --dir.
//
// Flags:
//   - --mode:     Execution mode ("api", "migrate" or "import"). Default: "api".
//   - --dir:      Directory containing .csv fleet files. Default: "./data/ships".
//   - --parallel: Files imported concurrently (0=auto, up to 4).
//   - --port:     Port for the API server. Defaults to value from config (SERVER_PORT).
func main() {
	ctx := context.Background()

	// Load configuration from environment or .env file
	config.LoadConfig()

	// Initialize JSON logger
	logger.Init()

	mode := flag.String("mode", "api", "Mode: api, migrate or import")
	dir := flag.String("dir", "./data/ships", "Directory with .csv fleet files")
	parallel := flag.Int("parallel", 0, "How many files to import concurrently (0=auto up to CPU, max 4)")
	port := flag.String("port", config.AppConfig.Server.Port, "Port for API mode")
	flag.Parse()

	switch *mode {
	case "api":
		logger.L().Info().Str("storage", config.AppConfig.StorageDriver).Msg("starting API server")

		router, cleanup, err := app.InitializeApp()
		if err != nil {
			logger.L().Fatal().Err(err).Msg("app init error")
		}

		server := startServer(router, *port)
		gracefulShutdown(ctx, server, cleanup)

	case "migrate":
		if err := runMigrate(ctx); err != nil {
			logger.L().Fatal().Err(err).Msg("migration failed")
		}

	case "import":
		logger.L().Info().Str("dir", *dir).Msg("running fleet import")
		if err := runImport(ctx, *dir, *parallel); err != nil {
			logger.L().Fatal().Err(err).Msg("import failed")
		}
		logger.L().Info().Msg("import completed successfully")

	default:
		logger.L().Fatal().Str("mode", *mode).Msg("unknown mode")
	}
}
