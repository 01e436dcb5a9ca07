package middleware

import (
	"errors"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"github.com/apistry/contract-gateway/internal/http/response"
	"github.com/apistry/contract-gateway/internal/platform/logger"
)

// Recovery funnels any panic to a generic 500. The full context stays in the
// server log; the client only sees the envelope and its correlation id.
func Recovery(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				if log != nil {
					log.Error("panic recovered",
						"panic", rec,
						"path", c.Request.URL.Path,
						"request_id", c.GetString("request_id"),
						"stack", string(debug.Stack()),
					)
				}
				response.Error(c, http.StatusInternalServerError, response.CodeInternalError,
					errors.New("internal server error"))
				c.Abort()
			}
		}()
		c.Next()
	}
}
