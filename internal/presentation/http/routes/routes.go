package routes

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/serendib-tours/booking-api/internal/config"
	"github.com/serendib-tours/booking-api/internal/domain/entity"
	domainRepo "github.com/serendib-tours/booking-api/internal/domain/repository"
	"github.com/serendib-tours/booking-api/internal/observability"
	"github.com/serendib-tours/booking-api/internal/presentation/http/handler"
	"github.com/serendib-tours/booking-api/internal/presentation/http/middleware"
	"github.com/serendib-tours/booking-api/pkg/clock"
	"github.com/serendib-tours/booking-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth      *handler.AuthHandler
	Quotation *handler.QuotationHandler
	Invoice   *handler.InvoiceHandler
	Catalog   *handler.CatalogHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
	RateLimiter     *middleware.ClientRateLimiter
	Metrics         *observability.Metrics
	Clock           clock.Clock
	Logger          *slog.Logger
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware(deps.Logger))
	router.Use(deps.Metrics.Middleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})
	if deps.Metrics != nil {
		router.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))
	}

	rateLimiter := deps.RateLimiter
	if rateLimiter == nil {
		rateLimiter = middleware.NewClientRateLimiter(middleware.NewRateLimiterConfig(
			deps.Cfg.RateLimit.Requests,
			time.Duration(deps.Cfg.RateLimit.Duration)*time.Second,
		))
	}
	idempotency := middleware.Idempotency(middleware.IdempotencyConfig{
		Repo:   deps.IdempotencyRepo,
		Clock:  deps.Clock,
		Logger: deps.Logger,
	})

	v1 := router.Group("/api/v1")
	{
		// Customer-facing routes, limited per client IP
		public := v1.Group("")
		public.Use(rateLimiter.Middleware())
		registerPublicRoutes(public, h, idempotency)

		// Back office, limited per user
		admin := v1.Group("/admin")
		admin.Use(middleware.AuthMiddleware(deps.JWTManager))
		admin.Use(middleware.RequireRole(entity.RoleAdmin, entity.RoleStaff))
		admin.Use(rateLimiter.Middleware())
		registerAdminRoutes(admin, h, idempotency)
	}

	return router
}

func registerPublicRoutes(public *gin.RouterGroup, h *Handlers, idempotency gin.HandlerFunc) {
	public.POST("/auth/login", h.Auth.Login)

	quotations := public.Group("/quotations/:reference")
	{
		quotations.GET("", h.Quotation.Get)
		quotations.POST("/accept", idempotency, h.Quotation.Accept)
		quotations.POST("/reject", idempotency, h.Quotation.Reject)
		quotations.GET("/invoice", h.Invoice.GetForQuotation)
	}

	public.GET("/invoices/:number", h.Invoice.Get)
}

func registerAdminRoutes(admin *gin.RouterGroup, h *Handlers, idempotency gin.HandlerFunc) {
	admin.GET("/me", h.Auth.Me)
	admin.POST("/users", middleware.RequireRole(entity.RoleAdmin), h.Auth.CreateUser)

	quotations := admin.Group("/quotations")
	{
		quotations.POST("", idempotency, h.Quotation.Create)
		quotations.GET("", h.Quotation.List)
		quotations.GET("/:reference", h.Quotation.AdminGet)
		quotations.POST("/:reference/send", h.Quotation.Send)
	}

	invoices := admin.Group("/invoices")
	{
		invoices.GET("", h.Invoice.List)
		invoices.GET("/:number", h.Invoice.Get)
		invoices.POST("/:number/payments", idempotency, h.Invoice.RecordPayment)
	}

	catalog := admin.Group("/catalog/:type")
	{
		catalog.GET("", h.Catalog.List)
		catalog.POST("", h.Catalog.Create)
		catalog.GET("/:id", h.Catalog.Get)
	}
}
