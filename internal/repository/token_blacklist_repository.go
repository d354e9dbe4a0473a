package repository

import (
	"errors"
	"time"

	"warga-be-svc/internal/models"

	"gorm.io/gorm"
)

// TokenBlacklistRepository defines the interface for revoked-token storage
type TokenBlacklistRepository interface {
	Add(tokenHash string, expiresAt time.Time) error
	Exists(tokenHash string) (bool, error)
	DeleteExpired(now time.Time) error
}

// tokenBlacklistRepository implements TokenBlacklistRepository
type tokenBlacklistRepository struct {
	db *gorm.DB
}

// NewTokenBlacklistRepository creates a new instance of TokenBlacklistRepository
func NewTokenBlacklistRepository(db *gorm.DB) TokenBlacklistRepository {
	return &tokenBlacklistRepository{
		db: db,
	}
}

// Add stores a revoked token hash until its expiry
func (r *tokenBlacklistRepository) Add(tokenHash string, expiresAt time.Time) error {
	entry := &models.TokenBlacklist{
		TokenHash: tokenHash,
		ExpiresAt: expiresAt,
	}
	return r.db.Create(entry).Error
}

// Exists reports whether the token hash has been revoked
func (r *tokenBlacklistRepository) Exists(tokenHash string) (bool, error) {
	var entry models.TokenBlacklist

	err := r.db.Where("token_hash = ?", tokenHash).First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}

	return true, nil
}

// DeleteExpired removes blacklist entries whose tokens have already expired
func (r *tokenBlacklistRepository) DeleteExpired(now time.Time) error {
	return r.db.Where("expires_at < ?", now).Delete(&models.TokenBlacklist{}).Error
}
