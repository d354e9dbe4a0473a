package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"warga-be-svc/pkg/utils"
)

// ErrorHandler recovers from panics and turns them into a 500 response
func ErrorHandler() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		utils.InternalServerErrorResponse(c, "Internal server error", fmt.Errorf("%v", recovered))
		c.Abort()
	})
}

// NoRouteHandler responds to unknown paths
func NoRouteHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		utils.NotFoundResponse(c, fmt.Sprintf("Route %s %s not found", c.Request.Method, c.Request.URL.Path))
	}
}

// NoMethodHandler responds to known paths with the wrong method
func NoMethodHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, utils.APIResponse{
			Success: false,
			Message: fmt.Sprintf("Method %s not allowed on %s", c.Request.Method, c.Request.URL.Path),
		})
	}
}
