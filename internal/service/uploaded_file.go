package service

import (
	"path/filepath"
	"strings"
)

// UploadedFile carries one image received from the client into a submission
type UploadedFile struct {
	Name        string
	ContentType string
	Content     []byte
}

// Ext returns a safe lowercase file extension for building object keys
func (f *UploadedFile) Ext() string {
	ext := strings.ToLower(filepath.Ext(f.Name))
	if ext == "" {
		switch f.ContentType {
		case "image/jpeg":
			ext = ".jpg"
		case "image/png":
			ext = ".png"
		case "image/webp":
			ext = ".webp"
		default:
			ext = ".bin"
		}
	}
	return ext
}
