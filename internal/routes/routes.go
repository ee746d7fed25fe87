package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BonisOleg/coresync-sub000/internal/audit"
	"github.com/BonisOleg/coresync-sub000/internal/clock"
	"github.com/BonisOleg/coresync-sub000/internal/config"
	"github.com/BonisOleg/coresync-sub000/internal/events"
	"github.com/BonisOleg/coresync-sub000/internal/handlers"
	infraRepo "github.com/BonisOleg/coresync-sub000/internal/infra/repository"
	"github.com/BonisOleg/coresync-sub000/internal/membership"
	"github.com/BonisOleg/coresync-sub000/internal/middleware"
	ucBooking "github.com/BonisOleg/coresync-sub000/internal/usecase/booking"
	ucConcierge "github.com/BonisOleg/coresync-sub000/internal/usecase/concierge"
)

func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	rdb *redis.Client,
	cfg *config.Config,
	logger *zap.Logger,
	eventsDispatcher *events.Dispatcher,
) {

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware())

	rateLimiter := middleware.NewRateLimiter(cfg.RateLimitPerMin)

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	clk := clock.NewSystem()

	bookingRepo := infraRepo.NewBookingGormRepository(db, cfg.LockTimeout)

	memberDirectory := membership.NewGormDirectory(db)
	tierClient := membership.NewRedisCache(rdb, memberDirectory, cfg.TierCacheTTL, logger)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger, logger)

	// ======================================================
	// USE CASES
	// ======================================================
	createBookingUC := ucBooking.NewCreateBooking(
		bookingRepo,
		tierClient,
		cfg.Policy,
		clk,
		eventsDispatcher,
		auditDispatcher,
		logger,
	)

	cancelBookingUC := ucBooking.NewCancelBooking(
		bookingRepo,
		cfg.Policy,
		clk,
		eventsDispatcher,
		auditDispatcher,
		logger,
	)

	rescheduleBookingUC := ucBooking.NewRescheduleBooking(
		createBookingUC,
		cfg.Policy,
		clk,
		auditDispatcher,
		logger,
	)

	transitionBookingUC := ucBooking.NewTransitionBooking(
		bookingRepo,
		clk,
		auditDispatcher,
		logger,
	)

	paymentCallbackUC := ucBooking.NewPaymentCallback(
		bookingRepo,
		clk,
		eventsDispatcher,
		logger,
	)

	availabilityUC := ucBooking.NewGetAvailability(
		bookingRepo,
		tierClient,
		cfg.Policy,
		clk,
		cfg.AlternativeDays,
		cfg.AlternativeLimit,
	)

	conciergeUC := ucConcierge.NewCreateRequest(
		bookingRepo,
		clk,
		auditDispatcher,
		logger,
	)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	catalogHandler := handlers.NewCatalogHandler(db)
	availabilityHandler := handlers.NewAvailabilityHandler(availabilityUC)

	bookingHandler := handlers.NewBookingHandler(
		db,
		createBookingUC,
		cancelBookingUC,
		rescheduleBookingUC,
		transitionBookingUC,
	)

	paymentWebhookHandler := handlers.NewPaymentWebhookHandler(paymentCallbackUC)
	conciergeHandler := handlers.NewConciergeHandler(conciergeUC)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	api.Use(rateLimiter.Limit())
	{
		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// COLLABORATOR CALLBACKS
		// ------------------------------
		api.POST("/webhooks/payment", paymentWebhookHandler.Handle)

		// ------------------------------
		// PRIVATE API
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/services", catalogHandler.ListServices)
			secured.GET("/rooms", catalogHandler.ListRooms)
			secured.GET("/technicians", catalogHandler.ListTechnicians)

			secured.GET("/availability", availabilityHandler.List)
			secured.GET("/availability/alternatives", availabilityHandler.Alternatives)

			// ------------------------------
			// BOOKINGS
			// ------------------------------
			secured.POST("/me/bookings", bookingHandler.Create)
			secured.GET("/me/bookings", bookingHandler.ListMine)
			secured.GET("/bookings/:reference", bookingHandler.GetByReference)
			secured.PATCH("/me/bookings/:id/cancel", bookingHandler.Cancel)
			secured.POST("/me/bookings/:id/reschedule", bookingHandler.Reschedule)

			secured.PATCH("/bookings/:id/begin", bookingHandler.Begin)
			secured.PATCH("/bookings/:id/complete", bookingHandler.Complete)
			secured.PATCH("/bookings/:id/no-show", bookingHandler.NoShow)

			secured.POST("/me/concierge-requests", conciergeHandler.Create)
		}
	}
}
