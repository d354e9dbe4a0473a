package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"warga-be-svc/internal/middleware"
	"warga-be-svc/internal/models/response"
	"warga-be-svc/internal/service"
	"warga-be-svc/pkg/logger"
	"warga-be-svc/pkg/utils"
)

// LoginRequest represents the login request body
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// AuthHandler handles authentication HTTP requests
type AuthHandler struct {
	authService service.AuthService
	logger      *logger.Logger
}

// NewAuthHandler creates a new AuthHandler instance
func NewAuthHandler(authService service.AuthService, logger *logger.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
	}
}

// Login authenticates a resident and issues a bearer token
// @Summary Login
// @Description Authenticate with email and password. Deactivated accounts are refused.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} utils.APIResponse{data=response.SessionResponse} "Session with token"
// @Failure 400 {object} utils.APIResponse "Invalid request"
// @Failure 401 {object} utils.APIResponse "Invalid credentials"
// @Failure 403 {object} utils.APIResponse "Account deactivated"
// @Router /api/v1/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Request body must be valid JSON", err)
		return
	}

	token, user, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrAccountDeactivated) {
			utils.ForbiddenResponse(c, "Your account has been deactivated. Please contact the administrator.")
			return
		}
		if errors.Is(err, service.ErrInvalidCredentials) {
			utils.UnauthorizedResponse(c, "Invalid email or password")
			return
		}
		h.logger.WithError(err).Error("Login failed")
		utils.InternalServerErrorResponse(c, "Failed to login", err)
		return
	}

	h.logger.WithField("user_id", user.ID).Info("User logged in")
	utils.SuccessResponse(c, "Login successful", response.NewSessionResponse(token, user))
}

// Logout revokes the current bearer token
// @Summary Logout
// @Description Revoke the presented token so it can no longer be used
// @Tags auth
// @Produce json
// @Success 200 {object} utils.APIResponse "Logged out"
// @Failure 401 {object} utils.APIResponse "Unauthorized"
// @Router /api/v1/auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	token := middleware.CurrentToken(c)
	if err := h.authService.Logout(token); err != nil {
		h.logger.WithError(err).Error("Failed to revoke token")
		utils.InternalServerErrorResponse(c, "Failed to logout", err)
		return
	}

	utils.SuccessResponse(c, "Logged out successfully", nil)
}

// GetSession returns the authenticated user's profile
// @Summary Get current session
// @Description Return the profile of the user owning the presented token
// @Tags auth
// @Produce json
// @Success 200 {object} utils.APIResponse{data=response.SessionResponse} "Current session"
// @Failure 401 {object} utils.APIResponse "Unauthorized"
// @Failure 403 {object} utils.APIResponse "Account deactivated"
// @Router /api/v1/auth/session [get]
func (h *AuthHandler) GetSession(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		utils.UnauthorizedResponse(c, "Authentication required")
		return
	}

	utils.SuccessResponse(c, "Session retrieved successfully", response.NewSessionResponse("", user))
}
