package models

import "time"

// TokenBlacklist stores hashes of revoked access tokens until they expire
type TokenBlacklist struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	TokenHash string    `json:"-" gorm:"column:token_hash;uniqueIndex"`
	ExpiresAt time.Time `json:"expires_at" gorm:"column:expires_at;index"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName sets the insert table name for TokenBlacklist
func (TokenBlacklist) TableName() string {
	return "token_blacklists"
}
