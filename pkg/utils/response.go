package utils

import (
	"github.com/gin-gonic/gin"
)

// ErrorBody is the error shape every failing endpoint returns. Clients only
// ever see the detail string, never the underlying error.
type ErrorBody struct {
	Detail string `json:"detail"`
}

func ErrorResponse(c *gin.Context, code int, detail string) {
	c.JSON(code, ErrorBody{Detail: detail})
}

// AbortWithError is ErrorResponse for middleware, stopping the handler chain.
func AbortWithError(c *gin.Context, code int, detail string) {
	c.AbortWithStatusJSON(code, ErrorBody{Detail: detail})
}
