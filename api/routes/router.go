// api/routes/router.go
package routes

import (
	"net/http"
	"time"

	_ "eventplanner/docs"
	"eventplanner/internal/auth"
	"eventplanner/internal/bookings"
	"eventplanner/internal/catalog"
	"eventplanner/internal/notifications"
	"eventplanner/internal/shared/config"
	"eventplanner/internal/shared/database"
	"eventplanner/pkg/cache"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Router holds all route dependencies
type Router struct {
	config    *config.Config
	db        *database.DB
	publisher notifications.Publisher
}

// NewRouter creates a new router instance
func NewRouter(cfg *config.Config, db *database.DB, publisher notifications.Publisher) *Router {
	if publisher == nil {
		publisher = notifications.NoopPublisher{}
	}
	return &Router{
		config:    cfg,
		db:        db,
		publisher: publisher,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	r.setupHealthRoutes(engine)

	engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := engine.Group(r.config.GetAPIBasePath())
	{
		r.setupAuthRoutes(api)
		r.setupBookingRoutes(api)
	}
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		health := r.db.HealthCheck(c.Request.Context())

		status, code := "healthy", http.StatusOK
		switch {
		case !health.Healthy():
			status, code = "unhealthy", http.StatusServiceUnavailable
		case health.Degraded():
			status = "degraded"
		}

		c.JSON(code, gin.H{
			"status":    status,
			"checks":    health,
			"timestamp": time.Now(),
			"service":   "eventplanner-bookings",
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})

	engine.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":      "operational",
			"api_version": r.config.APIVersion,
			"timestamp":   time.Now(),
		})
	})
}

// setupAuthRoutes configures authentication routes
func (r *Router) setupAuthRoutes(rg *gin.RouterGroup) {
	authRepo := auth.NewRepository(r.db.GetPostgreSQL())
	authService := auth.NewService(authRepo, r.config)
	authController := auth.NewController(authService)
	authRouter := auth.NewRouter(authController, r.config)

	authRouter.SetupRoutes(rg)
}

// setupBookingRoutes wires the booking engine and query service
func (r *Router) setupBookingRoutes(rg *gin.RouterGroup) {
	bookingRepo := bookings.NewRepository(r.db.GetPostgreSQL())
	catalogRepo := catalog.NewRepository(r.db.GetPostgreSQL())

	bookingService := bookings.NewService(bookingRepo, catalogRepo)
	bookingService.SetPublisher(r.publisher)

	queryService := bookings.NewQueryService(bookingRepo, catalogRepo, r.config.Booking.MaxPageSize)

	// Caching and slot locks need Redis
	if rdb := r.db.GetRedisClient(); rdb != nil {
		cacheService := cache.NewService(rdb)
		bookingService.SetCacheService(cacheService)
		bookingService.SetSlotLocker(bookings.NewRedisSlotLocker(rdb, r.config.Booking.SlotLockTTL, r.config.Booking.SlotLockWait))
		queryService.SetCacheService(cacheService)
	}

	bookingController := bookings.NewController(bookingService, queryService)
	bookings.NewRouter(bookingController, r.config).SetupRoutes(rg)
}
