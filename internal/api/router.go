package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/shipregistry/internal/middleware"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const requestTimeout = 10 * time.Second

// RouterOptions carries the HTTP settings taken from configuration.
type RouterOptions struct {
	Prefix             string   // e.g. "/rest"; empty mounts at the root
	RateLimitPerMinute int      // <= 0 disables limiting
	CORSAllowedOrigins []string // "*" allows any origin
}

// NewRouter creates a Gin engine with routes configured.
// It receives a Handler instance with all business logic already injected.
//
// Responsibilities:
//   - Registers global middlewares (RequestID, Logger, Recovery, ErrorHandler, RateLimiter, CORS).
//   - Adds request timeout handling (10 seconds).
//   - Mounts Swagger docs (/swagger/*any).
//   - Configures the ship routes under opts.Prefix.
//
// Note:
//   - Health and readiness endpoints (/healthz, /readyz) are registered in app.InitializeApp().
func NewRouter(handler *Handler, opts RouterOptions) *gin.Engine {
	router := gin.New()

	// ─── Middlewares ───────────────────────────────
	router.Use(
		middleware.RequestID(),
		middleware.RequestLogger(),
		middleware.RecoveryMiddleware(),
		middleware.ErrorHandler,
		middleware.CORS(opts.CORSAllowedOrigins),
		middleware.RateLimiter(opts.RateLimitPerMinute, time.Minute),
		middleware.Timeout(requestTimeout),
	)

	// ─── Swagger ──────────────────────────────────
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// ─── Ships ────────────────────────────────────
	ships := router.Group(opts.Prefix + "/ships")
	{
		ships.GET("", handler.ListShips)
		ships.GET("/count", handler.CountShips)
		ships.GET("/:id", handler.GetShip)
		ships.POST("", handler.CreateShip)
		ships.POST("/:id", handler.UpdateShip)
		ships.DELETE("/:id", handler.DeleteShip)
	}

	return router
}
