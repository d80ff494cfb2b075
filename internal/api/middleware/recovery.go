package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"github.com/osa911/hostelhub/internal/api/constants"
	"github.com/osa911/hostelhub/internal/api/dto/common"
	"github.com/osa911/hostelhub/internal/logging"
	"github.com/osa911/hostelhub/internal/utils"
)

// Recovery turns a panic into a 500 response and logs the stack trace
func Recovery(logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger.Error("[PANIC] %s %s | %s | %s | %v\n%s",
					c.Request.Method,
					c.Request.URL.Path,
					utils.GetRealIP(c),
					c.GetString(constants.ContextKeyRequestID),
					err,
					debug.Stack(),
				)

				c.AbortWithStatusJSON(http.StatusInternalServerError, common.NewErrorResponse(
					common.ErrCodeInternalServer, "Internal server error", nil))
			}
		}()

		c.Next()
	}
}
