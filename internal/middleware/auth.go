package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"warga-be-svc/internal/models"
	"warga-be-svc/internal/service"
	"warga-be-svc/pkg/logger"
	"warga-be-svc/pkg/utils"
)

const (
	contextUserKey = "current_user"
)

// Auth gates every protected route on the session state. An invalid or
// revoked token yields 401; a valid token for a deactivated account is
// force-signed-out and yields 403 with an explanatory message.
func Auth(authService service.AuthService, log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		rawToken := extractBearerToken(c)
		if rawToken == "" {
			utils.UnauthorizedResponse(c, "Authorization token is required")
			c.Abort()
			return
		}

		user, err := authService.ValidateToken(rawToken)
		if err != nil {
			if errors.Is(err, service.ErrAccountDeactivated) {
				utils.ForbiddenResponse(c, "Your account has been deactivated. Please contact the administrator.")
			} else {
				log.WithError(err).Debug("Token validation failed")
				utils.UnauthorizedResponse(c, "Invalid or expired token")
			}
			c.Abort()
			return
		}

		c.Set(contextUserKey, user)
		c.Next()
	}
}

// CurrentUser returns the authenticated user set by Auth
func CurrentUser(c *gin.Context) *models.User {
	if value, exists := c.Get(contextUserKey); exists {
		if user, ok := value.(*models.User); ok {
			return user
		}
	}
	return nil
}

// CurrentToken returns the raw bearer token of the request
func CurrentToken(c *gin.Context) string {
	return extractBearerToken(c)
}

// extractBearerToken reads the Authorization header or the auth-token cookie
func extractBearerToken(c *gin.Context) string {
	header := strings.TrimSpace(c.GetHeader("Authorization"))
	if strings.HasPrefix(strings.ToLower(header), "bearer ") {
		return strings.TrimSpace(header[len("bearer "):])
	}

	if cookie, err := c.Cookie("auth-token"); err == nil {
		return strings.TrimSpace(cookie)
	}

	return ""
}
