package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/serendib-tours/booking-api/internal/application/service"
	"github.com/serendib-tours/booking-api/internal/config"
	"github.com/serendib-tours/booking-api/internal/domain/entity"
	"github.com/serendib-tours/booking-api/internal/domain/enum"
	"github.com/serendib-tours/booking-api/internal/infrastructure/repository/memory"
	"github.com/serendib-tours/booking-api/internal/observability"
	"github.com/serendib-tours/booking-api/internal/presentation/http/handler"
	"github.com/serendib-tours/booking-api/internal/presentation/http/middleware"
	"github.com/serendib-tours/booking-api/pkg/clock"
	"github.com/serendib-tours/booking-api/pkg/utils"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Kind    string          `json:"kind"`
	Data    json.RawMessage `json:"data"`
}

type testServer struct {
	router *gin.Engine
	clock  *clock.Manual
	token  string
	tourID uint
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		App:       config.AppConfig{Name: "booking-api"},
		RateLimit: config.RateLimitConfig{Requests: 1000, Duration: 60},
		Quotation: config.QuotationConfig{
			ReferencePrefix:          "QT",
			InvoicePrefix:            "INV",
			ValidityDays:             14,
			DefaultDepositPercentage: decimal.NewFromInt(30),
			DefaultCurrency:          "USD",
		},
	}

	store := memory.NewStore()
	clk := clock.NewManual(time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC))
	jwtManager := utils.NewJWTManager("test-secret", "booking-api", time.Hour)
	metrics := observability.NewMetrics()

	quotationRepo := memory.NewQuotationRepository(store)
	invoiceRepo := memory.NewInvoiceRepository(store)
	catalogRepo := memory.NewCatalogRepository(store)
	adminRepo := memory.NewAdminUserRepository(store)

	catalogService := service.NewCatalogService(catalogRepo)
	authService := service.NewAuthService(adminRepo, jwtManager, clk, nil)

	rateLimiter := middleware.NewClientRateLimiter(middleware.NewRateLimiterConfig(1000, time.Minute))
	t.Cleanup(rateLimiter.Stop)

	router := Setup(&Handlers{
		Auth:      handler.NewAuthHandler(authService),
		Quotation: handler.NewQuotationHandler(service.NewQuotationService(quotationRepo, invoiceRepo, catalogRepo, clk, cfg.Quotation, metrics, nil)),
		Invoice:   handler.NewInvoiceHandler(service.NewInvoiceService(invoiceRepo, quotationRepo, clk, cfg.Quotation, metrics, nil)),
		Catalog:   handler.NewCatalogHandler(catalogService),
	}, &Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: memory.NewIdempotencyRepository(store),
		RateLimiter:     rateLimiter,
		Metrics:         metrics,
		Clock:           clk,
	})

	ctx := context.Background()
	_, err := authService.CreateUser(ctx, &service.CreateUserInput{
		Name: "Front Desk", Email: "desk@serendib.example", Password: "desk-password", Role: entity.RoleStaff,
	})
	require.NoError(t, err)

	tour, err := catalogService.CreateItem(ctx, &entity.CatalogItem{Type: enum.ServiceTypeTour, Tour: &entity.TourPackage{
		Name:           "Hill Country Escape",
		DurationDays:   3,
		PricePerPerson: decimal.NewFromInt(400),
		Itinerary:      datatypes.JSONSlice[entity.ItineraryDay]{{Day: 1, Title: "Kandy"}},
	}})
	require.NoError(t, err)

	srv := &testServer{router: router, clock: clk, tourID: tour.ID()}

	rec, env := srv.do(t, http.MethodPost, "/api/v1/auth/login", map[string]any{
		"email": "desk@serendib.example", "password": "desk-password",
	}, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var login struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &login))
	srv.token = login.AccessToken
	return srv
}

func (s *testServer) do(t *testing.T, method, path string, body any, headers map[string]string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 && rec.Header().Get("Content-Type") != "" {
		_ = json.Unmarshal(rec.Body.Bytes(), &env)
	}
	return rec, env
}

func (s *testServer) admin() map[string]string {
	return map[string]string{"Authorization": "Bearer " + s.token}
}

type quotationBody struct {
	Reference   string  `json:"reference"`
	Status      string  `json:"status"`
	Effective   string  `json:"effective_status"`
	TotalAmount float64 `json:"total_amount"`
	Deposit     float64 `json:"deposit_amount"`
	ViewCount   int     `json:"view_count"`
	StartDate   string  `json:"start_date"`
	EndDate     string  `json:"end_date"`
	Nights      int     `json:"nights"`
}

func decode[T any](t *testing.T, env envelope) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(env.Data, &out))
	return out
}

// sentQuotation creates and sends a two-adult tour quotation
func (s *testServer) sentQuotation(t *testing.T) quotationBody {
	t.Helper()
	rec, env := s.do(t, http.MethodPost, "/api/v1/admin/quotations", map[string]any{
		"customer_name":       "Amara Silva",
		"customer_email":      "amara@example.com",
		"service_type":        "tour",
		"service_id":          s.tourID,
		"start_date":          "2026-04-10",
		"adults":              2,
		"discount_percentage": "10",
	}, s.admin())
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[quotationBody](t, env)

	rec, env = s.do(t, http.MethodPost, "/api/v1/admin/quotations/"+created.Reference+"/send", nil, s.admin())
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	return decode[quotationBody](t, env)
}

func TestQuotationToPaidInvoice(t *testing.T) {
	s := newTestServer(t)
	q := s.sentQuotation(t)

	assert.Equal(t, "sent", q.Status)
	assert.Equal(t, 720.0, q.TotalAmount)
	assert.Equal(t, 216.0, q.Deposit)
	assert.Equal(t, "2026-04-10", q.StartDate)
	assert.Equal(t, "2026-04-12", q.EndDate)
	assert.Equal(t, 2, q.Nights)

	rec, env := s.do(t, http.MethodGet, "/api/v1/quotations/"+q.Reference, nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	viewed := decode[quotationBody](t, env)
	assert.Equal(t, "viewed", viewed.Status)
	assert.Equal(t, 1, viewed.ViewCount)
	assert.Empty(t, viewed.Effective, "customers only see status")

	rec, env = s.do(t, http.MethodPost, "/api/v1/quotations/"+q.Reference+"/accept", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "accepted", decode[quotationBody](t, env).Status)

	rec, env = s.do(t, http.MethodGet, "/api/v1/quotations/"+q.Reference+"/invoice", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	invoice := decode[struct {
		InvoiceNumber string  `json:"invoice_number"`
		TotalAmount   float64 `json:"total_amount"`
		Status        string  `json:"invoice_status"`
	}](t, env)
	assert.Equal(t, 720.0, invoice.TotalAmount)
	assert.Equal(t, "unpaid", invoice.Status)

	payments := "/api/v1/admin/invoices/" + invoice.InvoiceNumber + "/payments"
	rec, env = s.do(t, http.MethodPost, payments, map[string]any{"amount": "216.00", "payment_type": "card"}, s.admin())
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, string(env.Data), `"invoice_status":"partial"`)

	rec, env = s.do(t, http.MethodPost, payments, map[string]any{"amount": 600, "payment_type": "cash"}, s.admin())
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "overpayment_rejected", env.Kind)

	rec, env = s.do(t, http.MethodPost, payments, map[string]any{"amount": 504, "payment_type": "cash"}, s.admin())
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, string(env.Data), `"invoice_status":"paid"`)
}

func TestExpiredQuotationIsGone(t *testing.T) {
	s := newTestServer(t)
	q := s.sentQuotation(t)

	s.clock.Advance(15 * 24 * time.Hour)

	rec, env := s.do(t, http.MethodGet, "/api/v1/quotations/"+q.Reference, nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "expired", decode[quotationBody](t, env).Status)

	rec, env = s.do(t, http.MethodPost, "/api/v1/quotations/"+q.Reference+"/accept", nil, nil)
	assert.Equal(t, http.StatusGone, rec.Code)
	assert.Equal(t, "quotation_expired", env.Kind)

	rec, _ = s.do(t, http.MethodGet, "/api/v1/quotations/"+q.Reference+"/invoice", nil, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, env = s.do(t, http.MethodGet, "/api/v1/admin/quotations/"+q.Reference, nil, s.admin())
	require.Equal(t, http.StatusOK, rec.Code)
	stored := decode[quotationBody](t, env)
	assert.Equal(t, "viewed", stored.Status)
	assert.Equal(t, "expired", stored.Effective)
}

func TestAcceptReplaysWithIdempotencyKey(t *testing.T) {
	s := newTestServer(t)
	q := s.sentQuotation(t)
	headers := map[string]string{"Idempotency-Key": "accept-1"}

	first, _ := s.do(t, http.MethodPost, "/api/v1/quotations/"+q.Reference+"/accept", nil, headers)
	require.Equal(t, http.StatusOK, first.Code)

	second, _ := s.do(t, http.MethodPost, "/api/v1/quotations/"+q.Reference+"/accept", nil, headers)
	require.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, "true", second.Header().Get("X-Idempotency-Replayed"))
	assert.Equal(t, first.Body.String(), second.Body.String())

	rejected, env := s.do(t, http.MethodPost, "/api/v1/quotations/"+q.Reference+"/reject", nil, headers)
	assert.Equal(t, http.StatusConflict, rejected.Code, "key reused for another request")
	assert.Equal(t, "conflict", env.Kind)
}

func TestTransitionErrors(t *testing.T) {
	s := newTestServer(t)
	q := s.sentQuotation(t)

	rec, _ := s.do(t, http.MethodPost, "/api/v1/quotations/"+q.Reference+"/reject", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec, env := s.do(t, http.MethodPost, "/api/v1/quotations/"+q.Reference+"/accept", nil, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "invalid_transition", env.Kind)

	rec, env = s.do(t, http.MethodGet, "/api/v1/quotations/QT-00000000", nil, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not_found", env.Kind)
}

func TestCreateQuotationValidation(t *testing.T) {
	s := newTestServer(t)

	rec, env := s.do(t, http.MethodPost, "/api/v1/admin/quotations", map[string]any{
		"customer_name":  "Amara Silva",
		"customer_email": "amara@example.com",
		"service_type":   "cruise",
		"service_id":     1,
		"start_date":     "2026-04-10",
	}, s.admin())
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "unknown_service_type", env.Kind)

	rec, env = s.do(t, http.MethodPost, "/api/v1/admin/quotations", map[string]any{
		"customer_name":  "Amara Silva",
		"customer_email": "amara@example.com",
		"service_type":   "tour",
		"service_id":     s.tourID,
		"start_date":     "10/04/2026",
		"adults":         2,
	}, s.admin())
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "validation_failed", env.Kind)

	rec, env = s.do(t, http.MethodPost, "/api/v1/admin/quotations", map[string]any{
		"customer_name":      "Amara Silva",
		"customer_email":     "amara@example.com",
		"service_type":       "tour",
		"service_id":         s.tourID,
		"start_date":         "2026-04-10",
		"adults":             2,
		"deposit_percentage": 120,
	}, s.admin())
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "invalid_pricing_input", env.Kind)
}

func TestAdminRoutesRequireToken(t *testing.T) {
	s := newTestServer(t)

	rec, _ := s.do(t, http.MethodGet, "/api/v1/admin/quotations", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, _ = s.do(t, http.MethodGet, "/api/v1/admin/quotations", nil, map[string]string{"Authorization": "Bearer nope"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, _ = s.do(t, http.MethodPost, "/api/v1/admin/users", map[string]any{
		"name": "Intruder", "email": "x@serendib.example", "password": "password1", "role": "admin",
	}, s.admin())
	assert.Equal(t, http.StatusForbidden, rec.Code, "staff cannot create users")

	rec, env := s.do(t, http.MethodGet, "/api/v1/admin/me", nil, s.admin())
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(env.Data), `"role":"staff"`)
}

func TestListAndCatalogEndpoints(t *testing.T) {
	s := newTestServer(t)
	s.sentQuotation(t)
	s.sentQuotation(t)

	rec, env := s.do(t, http.MethodGet, "/api/v1/admin/quotations?per_page=1&status=sent", nil, s.admin())
	require.Equal(t, http.StatusOK, rec.Code)
	page := decode[struct {
		Items      []quotationBody `json:"items"`
		Pagination struct {
			Total      int64 `json:"total"`
			TotalPages int   `json:"total_pages"`
		} `json:"pagination"`
	}](t, env)
	assert.Len(t, page.Items, 1)
	assert.Equal(t, int64(2), page.Pagination.Total)
	assert.Equal(t, 2, page.Pagination.TotalPages)

	rec, _ = s.do(t, http.MethodGet, "/api/v1/admin/quotations?status=bogus", nil, s.admin())
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, env = s.do(t, http.MethodPost, "/api/v1/admin/catalog/hotel", map[string]any{
		"name": "Tea Estate Bungalow", "location": "Nuwara Eliya", "facilities": "Fireplace, Garden", "nightly_rate": "180.00",
	}, s.admin())
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec, _ = s.do(t, http.MethodGet, "/api/v1/admin/catalog/hotel/1", nil, s.admin())
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, env = s.do(t, http.MethodPost, "/api/v1/admin/catalog/boat", map[string]any{}, s.admin())
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "unknown_service_type", env.Kind)

	rec, _ = s.do(t, http.MethodGet, "/metrics", nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "booking_quotations_created_total")

	rec, _ = s.do(t, http.MethodGet, "/health", nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}
