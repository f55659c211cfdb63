package handlers

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	portssvc "github.com/partbin/stockledger/internal/core/ports/services"
	"github.com/partbin/stockledger/internal/middleware"
	"github.com/partbin/stockledger/internal/platform/config"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	RegisterValidators()

	r.Use(cors.Default())

	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	setupAPIV1Routes(r, cfg, services)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	// Every v1 request must carry an actor identity for audit attribution.
	v1 := r.Group("/api/v1", middleware.ActorMiddleware())

	// Rate limit on write endpoints only; reads are unthrottled.
	writeLimiter := newWriteLimiter(cfg)

	registerMovementRoutes(v1, writeLimiter, services.Ledger)
	registerTransferRoutes(v1, writeLimiter, services.Transfer)
	registerAdjustmentRoutes(v1, writeLimiter, services.Adjustment)
	RegisterStockRoutes(v1, writeLimiter, services.Stock)
	registerPartRoutes(v1, services.Part)
	registerLocationRoutes(v1, services.Location)
}

func newWriteLimiter(cfg *config.Config) gin.HandlerFunc {
	rate := limiter.Rate{Period: cfg.WriteRateLimitPeriod, Limit: cfg.WriteRateLimitCount}
	store := memory.NewStore()
	return middleware.RateLimit(limiter.New(store, rate))
}
