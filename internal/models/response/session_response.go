package response

import "warga-be-svc/internal/models"

// SessionResponse represents an authenticated session for API responses
type SessionResponse struct {
	Token      string `json:"token,omitempty"`
	UserID     uint   `json:"user_id"`
	DocumentID string `json:"document_id"`
	Email      string `json:"email"`
	FullName   string `json:"full_name"`
	UnitNumber string `json:"unit_number"`
	Role       string `json:"role"`
	Active     bool   `json:"active"`
}

// NewSessionResponse builds a SessionResponse; token may be empty for
// session lookups where the caller already holds one.
func NewSessionResponse(token string, user *models.User) *SessionResponse {
	return &SessionResponse{
		Token:      token,
		UserID:     user.ID,
		DocumentID: user.DocumentID,
		Email:      user.Email,
		FullName:   user.FullName,
		UnitNumber: user.UnitNumber,
		Role:       user.Role,
		Active:     user.IsActive(),
	}
}
