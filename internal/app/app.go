package app

import (
	"github.com/gin-gonic/gin"
	"github.com/guttosm/shipregistry/config"
	"github.com/guttosm/shipregistry/internal/api"
	"github.com/guttosm/shipregistry/internal/service"
)

// InitializeApp sets up all application dependencies and returns
// a fully configured Gin router, a cleanup function for graceful shutdown,
// and any error encountered during initialization.
//
// Responsibilities:
//   - Connects to PostgreSQL (unless STORAGE_DRIVER=memory) and optionally Redis.
//   - Builds the repository chain and the ship service.
//   - Creates the HTTP handler layer and configures the Gin router.
//   - Registers health and readiness probes.
//   - Provides a cleanup function to close resources (e.g., DB connection).
//
// Returns:
//   - *gin.Engine: the configured Gin HTTP router.
//   - func(): cleanup function to be executed on shutdown.
//   - error: any initialization error that occurred.
func InitializeApp() (*gin.Engine, func(), error) {
	cfg := config.AppConfig

	deps, cleanup, err := openDependencies(cfg)
	if err != nil {
		return nil, nil, err
	}

	svc := service.NewShipService(deps.repository(cfg))
	handler := api.NewHandler(svc)

	router := api.NewRouter(handler, api.RouterOptions{
		Prefix:             cfg.Server.APIPrefix,
		RateLimitPerMinute: cfg.Server.RateLimitPerMinute,
		CORSAllowedOrigins: cfg.Server.CORSAllowedOrigins,
	})

	api.NewHealthHandler(deps.checks()...).Register(router)

	return router, cleanup, nil
}
