package app

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/nekogravitycat/creator-booking-backend/internal/api"
	"github.com/nekogravitycat/creator-booking-backend/internal/auth"
	"github.com/nekogravitycat/creator-booking-backend/internal/availability"
	"github.com/nekogravitycat/creator-booking-backend/internal/booking"
	"github.com/nekogravitycat/creator-booking-backend/internal/builder"
	"github.com/nekogravitycat/creator-booking-backend/internal/draft"
	"github.com/nekogravitycat/creator-booking-backend/internal/resource"
)

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction bool
	ProdOrigins  string
	Logger       *zap.Logger
	DBPool       *pgxpool.Pool
	Redis        *redis.Client
	JWTSecret    string
	JWTIssuer    string
	DraftTTL     time.Duration

	RateLimitPerMin int
	RateLimitBurst  int
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router      *gin.Engine
	JWTManager  *auth.JWTManager
	RateLimiter *api.RateLimiter
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg Config) *Container {
	// Init Components
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTIssuer, time.Hour)
	limiter := api.NewRateLimiter(cfg.RateLimitPerMin, cfg.RateLimitBurst)

	// Resource Catalog
	resRepo := resource.NewPgxRepository(cfg.DBPool)
	resService := resource.NewService(resRepo)

	// Availability Checker
	availRepo := availability.NewPgxRepository(cfg.DBPool)
	availService := availability.NewService(availRepo, cfg.Logger.Named("availability"))

	// Booking Persistence
	bookingRepo := booking.NewPgxRepository(cfg.DBPool)
	bookingService := booking.NewService(bookingRepo, resService, availService, cfg.Logger.Named("booking"))

	// Campaign Builder
	draftStore := draft.NewRedisStore(cfg.Redis, cfg.DraftTTL)
	builderService := builder.NewService(draftStore, resService, availService, bookingService, cfg.Logger.Named("builder"))

	// Router
	router := api.NewRouter(api.Config{
		IsProduction:   cfg.IsProduction,
		ProdOrigins:    cfg.ProdOrigins,
		Logger:         cfg.Logger.Named("http"),
		ResService:     resService,
		AvailService:   availService,
		BookingService: bookingService,
		BuilderService: builderService,
		JWTManager:     jwtManager,
		RateLimiter:    limiter,
	})

	return &Container{
		Router:      router,
		JWTManager:  jwtManager,
		RateLimiter: limiter,
	}
}
