package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/serendib-tours/booking-api/internal/application/service"
	"github.com/serendib-tours/booking-api/internal/config"
	"github.com/serendib-tours/booking-api/internal/domain/entity"
	domainRepo "github.com/serendib-tours/booking-api/internal/domain/repository"
	"github.com/serendib-tours/booking-api/internal/infrastructure/cache"
	"github.com/serendib-tours/booking-api/internal/infrastructure/database"
	"github.com/serendib-tours/booking-api/internal/infrastructure/repository"
	"github.com/serendib-tours/booking-api/internal/infrastructure/repository/memory"
	"github.com/serendib-tours/booking-api/internal/observability"
	"github.com/serendib-tours/booking-api/internal/presentation/http/handler"
	"github.com/serendib-tours/booking-api/internal/presentation/http/middleware"
	"github.com/serendib-tours/booking-api/internal/presentation/http/routes"
	"github.com/serendib-tours/booking-api/pkg/clock"
	"github.com/serendib-tours/booking-api/pkg/utils"
)

// repositories is the storage backend selected by STORAGE_DRIVER
type repositories struct {
	quotations  domainRepo.QuotationRepository
	invoices    domainRepo.InvoiceRepository
	catalog     domainRepo.CatalogRepository
	admins      domainRepo.AdminUserRepository
	idempotency domainRepo.IdempotencyRepository
}

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	logLevel := slog.LevelInfo
	if cfg.App.Debug {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	clk := clock.System{}
	metrics := observability.NewMetrics()
	jwtManager := utils.NewJWTManager(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.ExpiryHours)

	repos := openRepositories(cfg)

	// Optional read-through cache in front of catalog lookups
	if cfg.Redis.Addr != "" {
		client, err := cache.New(ctx, cfg.Redis)
		if err != nil {
			log.Printf("Warning: Redis unavailable, catalog cache disabled: %v", err)
		} else {
			defer client.Close()
			repos.catalog = cache.NewCatalogRepository(repos.catalog, client, cfg.Redis.CatalogTTL, logger)
			log.Printf("Catalog cache enabled on %s", cfg.Redis.Addr)
		}
	}

	// Initialize services
	authService := service.NewAuthService(repos.admins, jwtManager, clk, logger)
	catalogService := service.NewCatalogService(repos.catalog)
	quotationService := service.NewQuotationService(repos.quotations, repos.invoices, repos.catalog, clk, cfg.Quotation, metrics, logger)
	invoiceService := service.NewInvoiceService(repos.invoices, repos.quotations, clk, cfg.Quotation, metrics, logger)

	if cfg.App.StorageDriver == config.StorageDriverMemory {
		seedMemoryAdmin(ctx, authService, cfg.Admin)
	}

	rateLimiter := middleware.NewClientRateLimiter(middleware.NewRateLimiterConfig(
		cfg.RateLimit.Requests,
		time.Duration(cfg.RateLimit.Duration)*time.Second,
	))
	defer rateLimiter.Stop()

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:      handler.NewAuthHandler(authService),
		Quotation: handler.NewQuotationHandler(quotationService),
		Invoice:   handler.NewInvoiceHandler(invoiceService),
		Catalog:   handler.NewCatalogHandler(catalogService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: repos.idempotency,
		RateLimiter:     rateLimiter,
		Metrics:         metrics,
		Clock:           clk,
		Logger:          logger,
	})

	go pruneIdempotencyKeys(ctx, repos.idempotency, clk, logger)

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
		log.Printf("Environment: %s, storage: %s", cfg.App.Env, cfg.App.StorageDriver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}
}

func openRepositories(cfg *config.Config) repositories {
	if cfg.App.StorageDriver == config.StorageDriverMemory {
		log.Println("Using in-memory storage, data is lost on restart")
		store := memory.NewStore()
		return repositories{
			quotations:  memory.NewQuotationRepository(store),
			invoices:    memory.NewInvoiceRepository(store),
			catalog:     memory.NewCatalogRepository(store),
			admins:      memory.NewAdminUserRepository(store),
			idempotency: memory.NewIdempotencyRepository(store),
		}
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database, cfg.App.Debug)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed the first back-office account
	if err := database.SeedAdmin(db, cfg.Admin); err != nil {
		log.Printf("Warning: Failed to seed admin user: %v", err)
	}

	return repositories{
		quotations:  repository.NewQuotationRepository(db),
		invoices:    repository.NewInvoiceRepository(db),
		catalog:     repository.NewCatalogRepository(db),
		admins:      repository.NewAdminUserRepository(db),
		idempotency: repository.NewIdempotencyRepository(db),
	}
}

func seedMemoryAdmin(ctx context.Context, authService *service.AuthService, cfg config.AdminConfig) {
	if cfg.Email == "" || cfg.Password == "" {
		log.Println("ADMIN_EMAIL or ADMIN_PASSWORD not set, skipping admin seed")
		return
	}
	name := cfg.Name
	if name == "" {
		name = "Administrator"
	}
	if _, err := authService.CreateUser(ctx, &service.CreateUserInput{
		Name:     name,
		Email:    cfg.Email,
		Password: cfg.Password,
		Role:     entity.RoleAdmin,
	}); err != nil {
		log.Printf("Warning: Failed to seed admin user: %v", err)
		return
	}
	log.Printf("Admin user created: %s", cfg.Email)
}

func pruneIdempotencyKeys(ctx context.Context, repo domainRepo.IdempotencyRepository, clk clock.Clock, logger *slog.Logger) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := repo.DeleteExpired(ctx, clk.Now()); err != nil {
				logger.Warn("failed to prune idempotency keys", slog.Any("error", err))
			}
		}
	}
}
