package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ragops/assistant-gateway/pkg/utils"
	"github.com/sirupsen/logrus"
)

// HeaderAPIKey is the request header carrying the caller's credential.
const HeaderAPIKey = "X-API-Key"

const detailInvalidAPIKey = "Invalid API Key"

// APIKeyAuth gates requests on the X-API-Key header. A present header must
// match the expected key exactly. A missing header is allowed unless
// requireKey is set — keyless access is the documented historical behavior,
// kept behind a flag rather than silently hardened.
func APIKeyAuth(expectedKey string, requireKey bool, logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(HeaderAPIKey)

		if key == "" {
			if requireKey {
				logger.WithField("ip_address", c.ClientIP()).Warn("Rejected request without API key")
				utils.AbortWithError(c, http.StatusUnauthorized, detailInvalidAPIKey)
				return
			}
			c.Next()
			return
		}

		if key != expectedKey {
			logger.WithField("ip_address", c.ClientIP()).Warn("Rejected request with invalid API key")
			utils.AbortWithError(c, http.StatusUnauthorized, detailInvalidAPIKey)
			return
		}

		c.Next()
	}
}
