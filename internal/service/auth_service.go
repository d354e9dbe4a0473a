package service

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"warga-be-svc/internal/config"
	"warga-be-svc/internal/models"
	"warga-be-svc/internal/repository"
	"warga-be-svc/pkg/logger"
)

// AuthService defines the interface for session operations
type AuthService interface {
	Login(email, password string) (string, *models.User, error)
	Logout(rawToken string) error
	ValidateToken(rawToken string) (*models.User, error)
	GetSession(userID uint) (*models.User, error)
	PurgeExpiredTokens(now time.Time) error
}

// authService implements AuthService
type authService struct {
	userRepo      repository.UserRepository
	blacklistRepo repository.TokenBlacklistRepository
	jwtConfig     config.JWTConfig
	logger        *logger.Logger
}

// NewAuthService creates a new instance of AuthService
func NewAuthService(
	userRepo repository.UserRepository,
	blacklistRepo repository.TokenBlacklistRepository,
	jwtConfig config.JWTConfig,
	logger *logger.Logger,
) AuthService {
	return &authService{
		userRepo:      userRepo,
		blacklistRepo: blacklistRepo,
		jwtConfig:     jwtConfig,
		logger:        logger,
	}
}

// Login verifies the credentials and issues a signed access token. A
// deactivated account is refused with an explanatory error and no token.
func (s *authService) Login(email, password string) (string, *models.User, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	if !user.IsActive() {
		s.logger.WithField("user_id", user.ID).Warn("Login attempt on deactivated account")
		return "", nil, ErrAccountDeactivated
	}

	token, err := s.generateToken(user)
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return token, user, nil
}

// Logout revokes the presented token until its natural expiry
func (s *authService) Logout(rawToken string) error {
	claims, err := s.parseClaims(rawToken)
	if err != nil {
		// An already-invalid token needs no blacklist entry
		return nil
	}

	expiresAt := time.Now().Add(time.Duration(s.jwtConfig.TTLHours) * time.Hour)
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		expiresAt = exp.Time
	}

	return s.blacklistRepo.Add(hashToken(rawToken), expiresAt)
}

// ValidateToken checks the blacklist, verifies the signature and expiry, and
// loads the user. A token for a deactivated account is blacklisted on sight
// (forced sign-out) and rejected with ErrAccountDeactivated.
func (s *authService) ValidateToken(rawToken string) (*models.User, error) {
	revoked, err := s.blacklistRepo.Exists(hashToken(rawToken))
	if err != nil {
		return nil, fmt.Errorf("failed to check token blacklist: %w", err)
	}
	if revoked {
		return nil, ErrTokenRevoked
	}

	claims, err := s.parseClaims(rawToken)
	if err != nil {
		return nil, err
	}

	userID, err := userIDFromClaims(claims)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if !user.IsActive() {
		if err := s.Logout(rawToken); err != nil {
			s.logger.WithError(err).WithField("user_id", user.ID).Error("Failed to blacklist token of deactivated account")
		}
		return nil, ErrAccountDeactivated
	}

	return user, nil
}

// GetSession returns the current user snapshot
func (s *authService) GetSession(userID uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

// PurgeExpiredTokens removes blacklist rows whose tokens have expired on
// their own and no longer need an explicit revocation record. Every logout
// and forced sign-out adds a row, so the scheduler runs this as a cleanup
// pass.
func (s *authService) PurgeExpiredTokens(now time.Time) error {
	return s.blacklistRepo.DeleteExpired(now)
}

// generateToken signs an HS256 access token with the user identity claims
func (s *authService) generateToken(user *models.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"role":    user.Role,
		"iat":     now.Unix(),
		"exp":     now.Add(time.Duration(s.jwtConfig.TTLHours) * time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtConfig.Secret))
}

// parseClaims verifies the token signature and expiry and returns its claims
func (s *authService) parseClaims(rawToken string) (jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(rawToken, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtConfig.Secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	return claims, nil
}

// userIDFromClaims extracts the user_id claim
func userIDFromClaims(claims jwt.MapClaims) (uint, error) {
	raw, ok := claims["user_id"]
	if !ok {
		return 0, fmt.Errorf("token carries no user_id claim")
	}

	id, ok := raw.(float64)
	if !ok || id <= 0 {
		return 0, fmt.Errorf("token carries an invalid user_id claim")
	}

	return uint(id), nil
}

// hashToken stores only a digest of the raw token in the blacklist
func hashToken(rawToken string) string {
	sum := sha256.Sum256([]byte(rawToken))
	return hex.EncodeToString(sum[:])
}
