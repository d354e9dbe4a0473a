package models

import (
	"time"
)

// Announcement represents the announcements table. Residents only read these;
// authoring happens in the admin tooling.
type Announcement struct {
	ID         uint      `json:"id" gorm:"primarykey"`
	DocumentID string    `json:"document_id" gorm:"column:document_id;uniqueIndex"`
	Title      string    `json:"title" gorm:"column:title"`
	Content    string    `json:"content" gorm:"column:content"`
	ImageURL   *string   `json:"image_url,omitempty" gorm:"column:image_url"`
	Active     bool      `json:"active" gorm:"column:active;default:true;index"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// TableName sets the insert table name for Announcement
func (Announcement) TableName() string {
	return "announcements"
}
