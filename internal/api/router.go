package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/nekogravitycat/creator-booking-backend/internal/auth"
	"github.com/nekogravitycat/creator-booking-backend/internal/availability"
	availabilityHttp "github.com/nekogravitycat/creator-booking-backend/internal/availability/http"
	"github.com/nekogravitycat/creator-booking-backend/internal/booking"
	bookingHttp "github.com/nekogravitycat/creator-booking-backend/internal/booking/http"
	"github.com/nekogravitycat/creator-booking-backend/internal/builder"
	builderHttp "github.com/nekogravitycat/creator-booking-backend/internal/builder/http"
	"github.com/nekogravitycat/creator-booking-backend/internal/resource"
	resourceHttp "github.com/nekogravitycat/creator-booking-backend/internal/resource/http"
)

// Config holds what the router needs to mount every module.
type Config struct {
	IsProduction bool
	ProdOrigins  string
	Logger       *zap.Logger

	ResService     resource.Service
	AvailService   availability.Service
	BookingService booking.Service
	BuilderService builder.Service
	JWTManager     *auth.JWTManager
	RateLimiter    *RateLimiter
}

// NewRouter initializes the HTTP router engine.
// It assembles middleware (request id, logging, recovery, CORS) and registers each module's routes.
func NewRouter(cfg Config) *gin.Engine {
	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global Middleware:
	// - RequestID: Correlates log lines of one request.
	// - RequestLogger: Structured access log through zap.
	// - Recovery: Captures panics and returns a 500 error.
	r.Use(RequestID(), RequestLogger(cfg.Logger), gin.Recovery())

	// Configure CORS (Cross-Origin Resource Sharing).
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{
		"http://localhost:3000", // Web client
		"http://localhost:8081", // Swagger
	}
	if cfg.IsProduction {
		corsConfig.AllowOrigins = splitOrigins(cfg.ProdOrigins)
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", requestIDHeader}
	corsConfig.ExposeHeaders = []string{requestIDHeader}
	corsConfig.MaxAge = 12 * time.Hour
	r.Use(cors.New(corsConfig))

	// authMiddleware: Validates if the request contains a valid JWT.
	authMiddleware := auth.AuthRequired(cfg.JWTManager)
	// limiter: Throttles the calls that reach the booking ledger.
	limiter := cfg.RateLimiter.Middleware()

	// Initialize HTTP Handlers for each module (injecting Service dependencies).
	resHandler := resourceHttp.NewHandler(cfg.ResService)
	availHandler := availabilityHttp.NewHandler(cfg.AvailService)
	bookingHandler := bookingHttp.NewHandler(cfg.BookingService)
	builderHandler := builderHttp.NewHandler(cfg.BuilderService)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Register API routes under /v1
	v1 := r.Group("/v1")
	{
		resourceHttp.RegisterRoutes(v1, resHandler, authMiddleware)
		availabilityHttp.RegisterRoutes(v1, availHandler, authMiddleware, limiter)
		bookingHttp.RegisterRoutes(v1, bookingHandler, authMiddleware)
		builderHttp.RegisterRoutes(v1, builderHandler, authMiddleware, limiter)
	}

	return r
}

// splitOrigins parses the comma separated PROD_ORIGINS value.
func splitOrigins(s string) []string {
	var out []string
	for _, o := range strings.Split(s, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
