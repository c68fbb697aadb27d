package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/srs-go-api/internal/models"
	appErrors "github.com/noah-isme/srs-go-api/pkg/errors"
)

type authUserRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
	UpdateLastLogin(ctx context.Context, id string, ts time.Time) error
}

// AuthConfig defines configuration for authentication flows.
type AuthConfig struct {
	AccessTokenSecret string
	AccessTokenExpiry time.Duration
	Issuer            string
}

// AuthService is the authentication collaborator. Besides issuing and
// validating tokens it owns the three authentication audit triggers:
// LOGIN, LOGOUT and FAILED_LOGIN. Those writes are best-effort so an audit
// outage cannot lock users out.
type AuthService struct {
	repo      authUserRepository
	activity  *ActivityService
	validator *validator.Validate
	logger    *zap.Logger
	config    AuthConfig
}

// NewAuthService constructs an AuthService instance.
func NewAuthService(repo authUserRepository, activity *ActivityService, validate *validator.Validate, logger *zap.Logger, config AuthConfig) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &AuthService{repo: repo, activity: activity, validator: validate, logger: logger, config: config}
}

// Login authenticates a user and returns an issued token. Every failed
// attempt leaves one FAILED_LOGIN entry with no user reference.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid login payload")
	}

	user, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.recordFailedLogin(ctx, req)
			return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "invalid email or password")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch user")
	}

	if !user.Active {
		s.recordFailedLogin(ctx, req)
		return nil, appErrors.Clone(appErrors.ErrInactiveAccount, "account is inactive")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		s.recordFailedLogin(ctx, req)
		return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "invalid email or password")
	}

	accessToken, err := s.generateAccessToken(user)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create access token")
	}

	if err := s.repo.UpdateLastLogin(ctx, user.ID, time.Now().UTC()); err != nil {
		s.logger.Warn("failed to update last login", zap.Error(err))
	}

	if s.activity != nil {
		s.activity.RecordBestEffort(ctx, &user.ID, models.ActionLogin, "User logged in", req.IP, req.UserAgent)
	}

	return &models.LoginResponse{
		AccessToken: accessToken,
		ExpiresIn:   int64(s.config.AccessTokenExpiry.Seconds()),
		IssuedAt:    time.Now().UTC(),
		User: models.UserInfo{
			ID:       user.ID,
			Email:    user.Email,
			FullName: user.FullName,
			Roles:    user.RoleList(),
		},
	}, nil
}

// Logout records the logout event. Tokens are stateless, so this is purely
// an audit concern.
func (s *AuthService) Logout(ctx context.Context, principal models.Principal) {
	if s.activity != nil {
		userID := principal.UserID
		s.activity.RecordBestEffort(ctx, &userID, models.ActionLogout, "User logged out", principal.IP, principal.UserAgent)
	}
}

// ValidateToken parses and verifies an access token.
func (s *AuthService) ValidateToken(token string) (*models.JWTClaims, error) {
	claims := &models.JWTClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(s.config.AccessTokenSecret), nil
	})
	if err != nil || !parsed.Valid {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid or expired token")
	}
	return claims, nil
}

func (s *AuthService) recordFailedLogin(ctx context.Context, req models.LoginRequest) {
	if s.activity == nil {
		return
	}
	description := fmt.Sprintf("Failed login attempt for %s", req.Email)
	s.activity.RecordBestEffort(ctx, nil, models.ActionFailedLogin, description, req.IP, req.UserAgent)
}

func (s *AuthService) generateAccessToken(user *models.User) (string, error) {
	now := time.Now().UTC()
	claims := models.JWTClaims{
		UserID:   user.ID,
		Email:    user.Email,
		FullName: user.FullName,
		Roles:    user.RoleList(),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   user.ID,
			Issuer:    s.config.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.config.AccessTokenExpiry)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.AccessTokenSecret))
}
