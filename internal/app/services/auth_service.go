package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/seojin/tastemap/internal/app/models"
	"github.com/seojin/tastemap/internal/app/models/dto"
	"github.com/seojin/tastemap/internal/app/repositories"
	"github.com/seojin/tastemap/internal/pkg/apperrors"
	"github.com/seojin/tastemap/internal/pkg/auth"
	"github.com/seojin/tastemap/internal/pkg/session"
)

// AuthService defines the interface for authentication operations
type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.UserResponse, string, error)
	Logout(ctx context.Context, sid string) error
	GetMe(ctx context.Context, userID int64) (*dto.UserResponse, error)
	UpdateProfile(ctx context.Context, userID int64, req *dto.UpdateProfileRequest) (*dto.UserResponse, error)
}

// authServiceImpl implements AuthService
type authServiceImpl struct {
	userRepo *repositories.UserRepository
	sessions *session.Manager
	logger   zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo *repositories.UserRepository, sessions *session.Manager, logger zerolog.Logger) AuthService {
	return &authServiceImpl{
		userRepo: userRepo,
		sessions: sessions,
		logger:   logger,
	}
}

// Register creates a new user account
func (s *authServiceImpl) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error) {
	exists, err := s.userRepo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.ErrEmailAlreadyExists
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to hash password")
		return nil, err
	}

	user := &models.User{
		Email:    req.Email,
		Password: hash,
		Nickname: req.Nickname,
	}

	// The unique index still guards against a concurrent signup with the
	// same email between the check above and this insert.
	user, err = s.userRepo.CreateUser(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("userID", user.ID).Str("email", user.Email).Msg("User registered")

	return mapUserToResponse(user), nil
}

// Login verifies credentials and opens a session
func (s *authServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (*dto.UserResponse, string, error) {
	user, err := s.userRepo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if err == apperrors.ErrUserNotFound {
			return nil, "", apperrors.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		return nil, "", apperrors.ErrInvalidCredentials
	}

	sid, err := s.sessions.Create(ctx, user.ID)
	if err != nil {
		s.logger.Error().Err(err).Int64("userID", user.ID).Msg("Failed to create session")
		return nil, "", err
	}

	s.logger.Info().Int64("userID", user.ID).Msg("User logged in")

	return mapUserToResponse(user), sid, nil
}

// Logout ends the session. An unknown or missing session ID still succeeds.
func (s *authServiceImpl) Logout(ctx context.Context, sid string) error {
	return s.sessions.Destroy(ctx, sid)
}

// GetMe returns the caller's profile
func (s *authServiceImpl) GetMe(ctx context.Context, userID int64) (*dto.UserResponse, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return mapUserToResponse(user), nil
}

// UpdateProfile changes the caller's nickname or profile image
func (s *authServiceImpl) UpdateProfile(ctx context.Context, userID int64, req *dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Nickname != nil {
		user.Nickname = *req.Nickname
	}
	if req.ProfileImageURL != nil {
		user.ProfileImageURL = req.ProfileImageURL
	}

	if err := s.userRepo.UpdateProfile(ctx, userID, user.Nickname, user.ProfileImageURL); err != nil {
		return nil, err
	}

	return mapUserToResponse(user), nil
}

func mapUserToResponse(user *models.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:              user.ID,
		Email:           user.Email,
		Nickname:        user.Nickname,
		ProfileImageURL: user.ProfileImageURL,
		CreatedAt:       user.CreatedAt,
	}
}

func mapUserToBasic(user *models.User) *dto.UserBasicResponse {
	if user == nil {
		return nil
	}
	return &dto.UserBasicResponse{
		ID:       user.ID,
		Nickname: user.Nickname,
	}
}
