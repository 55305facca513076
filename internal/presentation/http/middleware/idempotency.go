package middleware

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/serendib-tours/booking-api/internal/domain/entity"
	"github.com/serendib-tours/booking-api/internal/domain/repository"
	"github.com/serendib-tours/booking-api/internal/presentation/http/dto/response"
	"github.com/serendib-tours/booking-api/pkg/apperror"
	"github.com/serendib-tours/booking-api/pkg/clock"
)

const (
	// IdempotencyKeyHeader is the HTTP header for idempotency keys
	IdempotencyKeyHeader = "Idempotency-Key"
	// IdempotencyKeyTTL is how long keys are valid
	IdempotencyKeyTTL = 24 * time.Hour
)

// IdempotencyConfig holds configuration for the idempotency middleware
type IdempotencyConfig struct {
	Repo   repository.IdempotencyRepository
	Clock  clock.Clock
	Logger *slog.Logger
}

// responseWriter wraps gin.ResponseWriter to capture the response body
type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w responseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// Idempotency replays the stored response when a POST is retried with the
// same Idempotency-Key. Keys are scoped per caller (see ClientKey). Reusing
// a key for a different request is a conflict. Server errors are not stored
// so the client can retry them.
func Idempotency(config IdempotencyConfig) gin.HandlerFunc {
	if config.Clock == nil {
		config.Clock = clock.System{}
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}

	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		idempotencyKey := c.GetHeader(IdempotencyKeyHeader)
		if idempotencyKey == "" {
			c.Next()
			return
		}

		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			response.BadRequest(c, "Could not read request body")
			c.Abort()
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewReader(body))

		ctx := c.Request.Context()
		scope := ClientKey(c)
		endpoint := c.Request.Method + " " + c.FullPath()
		requestHash := hashRequest(c.Request.Method, c.Request.URL.Path, body)

		existing, err := config.Repo.GetByKey(ctx, idempotencyKey, scope)
		if err != nil {
			config.Logger.WarnContext(ctx, "idempotency lookup failed", slog.Any("error", err))
			c.Next()
			return
		}

		if existing != nil && existing.IsExpired(config.Clock.Now()) {
			if err := config.Repo.DeleteExpired(ctx, config.Clock.Now()); err != nil {
				config.Logger.WarnContext(ctx, "failed to purge idempotency keys", slog.Any("error", err))
			}
			existing = nil
		}

		if existing != nil {
			if existing.RequestHash != requestHash {
				response.Error(c, apperror.NewConflictError("Idempotency-Key was already used for a different request"))
				c.Abort()
				return
			}
			c.Header("X-Idempotency-Replayed", "true")
			c.Data(existing.ResponseCode, "application/json; charset=utf-8", []byte(existing.ResponseBody))
			c.Abort()
			return
		}

		blw := &responseWriter{body: bytes.NewBufferString(""), ResponseWriter: c.Writer}
		c.Writer = blw

		c.Next()

		if c.Writer.Status() >= http.StatusInternalServerError {
			return
		}

		now := config.Clock.Now()
		ikey := &entity.IdempotencyKey{
			Key:          idempotencyKey,
			Scope:        scope,
			Endpoint:     endpoint,
			RequestHash:  requestHash,
			ResponseCode: c.Writer.Status(),
			ResponseBody: blw.body.String(),
			CreatedAt:    now,
			ExpiresAt:    now.Add(IdempotencyKeyTTL),
		}
		if err := config.Repo.Create(ctx, ikey); err != nil {
			config.Logger.WarnContext(ctx, "failed to store idempotency key", slog.Any("error", err))
		}
	}
}

func hashRequest(method, path string, body []byte) string {
	h := sha256.New()
	h.Write([]byte(method))
	h.Write([]byte{0})
	h.Write([]byte(path))
	h.Write([]byte{0})
	h.Write(body)
	return hex.EncodeToString(h.Sum(nil))
}
