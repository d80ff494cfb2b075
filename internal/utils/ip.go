package utils

import (
	"github.com/gin-gonic/gin"
)

// GetRealIP returns the client IP. Forwarding headers are honoured only when
// the request arrives from a proxy listed in the engine's trusted proxies.
func GetRealIP(c *gin.Context) string {
	return c.ClientIP()
}
