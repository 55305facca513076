package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/serendib-tours/booking-api/internal/domain/entity"
	"github.com/serendib-tours/booking-api/internal/domain/repository"
	"github.com/serendib-tours/booking-api/pkg/apperror"
	"github.com/serendib-tours/booking-api/pkg/clock"
	"github.com/serendib-tours/booking-api/pkg/utils"
)

// AuthService authenticates back-office users
type AuthService struct {
	userRepo   repository.AdminUserRepository
	jwtManager *utils.JWTManager
	clock      clock.Clock
	logger     *slog.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo repository.AdminUserRepository,
	jwtManager *utils.JWTManager,
	clk clock.Clock,
	logger *slog.Logger,
) *AuthService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthService{
		userRepo:   userRepo,
		jwtManager: jwtManager,
		clock:      clk,
		logger:     logger,
	}
}

// LoginInput represents the login input
type LoginInput struct {
	Email    string
	Password string
}

// LoginOutput represents the login output
type LoginOutput struct {
	User        *entity.AdminUser
	AccessToken string
	ExpiresIn   int64
}

// Login authenticates an admin user and returns an access token
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*LoginOutput, error) {
	user, err := s.userRepo.GetByEmail(ctx, strings.TrimSpace(input.Email))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.ErrInvalidCredentials
	}

	if !utils.CheckPasswordHash(input.Password, user.Password) {
		s.logger.WarnContext(ctx, "failed login", slog.String("email", user.Email))
		return nil, apperror.ErrInvalidCredentials
	}

	accessToken, err := s.jwtManager.GenerateAccessToken(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	if err := s.userRepo.UpdateLastLogin(ctx, user.ID, now); err != nil {
		s.logger.WarnContext(ctx, "failed to update last login", slog.Any("error", err))
	} else {
		user.LastLoginAt = &now
	}

	return &LoginOutput{
		User:        user,
		AccessToken: accessToken,
		ExpiresIn:   int64(s.jwtManager.AccessTokenExpiry().Seconds()),
	}, nil
}

// GetProfile returns the authenticated admin user
func (s *AuthService) GetProfile(ctx context.Context, userID uuid.UUID) (*entity.AdminUser, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NewNotFoundError("User")
	}
	return user, nil
}

// CreateUserInput represents a new back-office account
type CreateUserInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

// CreateUser registers a back-office account. Only admins may call it.
func (s *AuthService) CreateUser(ctx context.Context, input *CreateUserInput) (*entity.AdminUser, error) {
	if input.Role != entity.RoleAdmin && input.Role != entity.RoleStaff {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "role", Message: "must be admin or staff"},
		})
	}

	existing, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Email already registered")
	}

	hashedPassword, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &entity.AdminUser{
		Name:     input.Name,
		Email:    input.Email,
		Password: hashedPassword,
		Role:     input.Role,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
