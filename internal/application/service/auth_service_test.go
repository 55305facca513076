package service

import (
	"context"
	"testing"
	"time"

	"github.com/serendib-tours/booking-api/internal/domain/entity"
	"github.com/serendib-tours/booking-api/internal/infrastructure/repository/memory"
	"github.com/serendib-tours/booking-api/pkg/apperror"
	"github.com/serendib-tours/booking-api/pkg/clock"
	"github.com/serendib-tours/booking-api/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthService(t *testing.T) (*AuthService, *utils.JWTManager) {
	t.Helper()
	jwtManager := utils.NewJWTManager("test-secret", "booking-api", time.Hour)
	svc := NewAuthService(memory.NewAdminUserRepository(memory.NewStore()), jwtManager, clock.NewManual(testNow), nil)
	return svc, jwtManager
}

func TestLoginIssuesToken(t *testing.T) {
	svc, jwtManager := newAuthService(t)
	ctx := context.Background()

	created, err := svc.CreateUser(ctx, &CreateUserInput{
		Name:     "Nimal Perera",
		Email:    "nimal@serendib.example",
		Password: "s3cret-pass",
		Role:     entity.RoleStaff,
	})
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", created.Password)

	out, err := svc.Login(ctx, &LoginInput{Email: "nimal@serendib.example", Password: "s3cret-pass"})
	require.NoError(t, err)
	assert.Equal(t, int64(3600), out.ExpiresIn)
	require.NotNil(t, out.User.LastLoginAt)
	assert.True(t, testNow.Equal(*out.User.LastLoginAt))

	claims, err := jwtManager.ValidateAccessToken(out.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, created.ID, claims.UserID)
	assert.Equal(t, entity.RoleStaff, claims.Role)

	profile, err := svc.GetProfile(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Nimal Perera", profile.Name)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, &CreateUserInput{
		Name: "Admin", Email: "admin@serendib.example", Password: "correct-horse", Role: entity.RoleAdmin,
	})
	require.NoError(t, err)

	_, err = svc.Login(ctx, &LoginInput{Email: "admin@serendib.example", Password: "wrong"})
	assert.ErrorIs(t, err, apperror.ErrInvalidCredentials)

	_, err = svc.Login(ctx, &LoginInput{Email: "ghost@serendib.example", Password: "correct-horse"})
	assert.ErrorIs(t, err, apperror.ErrInvalidCredentials)
}

func TestCreateUserRules(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, &CreateUserInput{Name: "X", Email: "x@serendib.example", Password: "password1", Role: "owner"})
	assert.ErrorIs(t, err, apperror.ErrUnprocessable)

	_, err = svc.CreateUser(ctx, &CreateUserInput{Name: "X", Email: "x@serendib.example", Password: "password1", Role: entity.RoleStaff})
	require.NoError(t, err)
	_, err = svc.CreateUser(ctx, &CreateUserInput{Name: "Y", Email: "x@serendib.example", Password: "password2", Role: entity.RoleStaff})
	assert.ErrorIs(t, err, apperror.ErrConflict)
}
