package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/apistry/contract-gateway/internal/platform/ctxutil"
)

const HeaderRequestID = "X-Request-Id"

// AttachRequestID honors an inbound correlation id or mints a new one, stores
// it on the request context, and echoes it on the response.
func AttachRequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		reqID := strings.TrimSpace(c.GetHeader(HeaderRequestID))
		if reqID == "" {
			reqID = uuid.New().String()
		}
		ctx := ctxutil.WithRequestID(c.Request.Context(), reqID)
		c.Request = c.Request.WithContext(ctx)
		c.Set("request_id", reqID)
		c.Writer.Header().Set(HeaderRequestID, reqID)
		c.Next()
	}
}
