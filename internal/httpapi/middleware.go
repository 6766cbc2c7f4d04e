package httpapi

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dmarovic/inflow/internal/observability"
)

const headerRequestID = "X-Request-ID"

// requestLogger tags each request with an id and logs method, path, status
// and latency on completion.
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		reqID := c.GetHeader(headerRequestID)
		if reqID == "" {
			reqID = uuid.NewString()
		}
		c.Header(headerRequestID, reqID)
		c.Request = c.Request.WithContext(
			observability.WithRequestID(c.Request.Context(), reqID))

		start := time.Now()
		c.Next()

		s.log.Info("http_request",
			"request_id", reqID,
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"latency_ms", time.Since(start).Milliseconds())
	}
}
