package httpserver

import (
	"crypto/subtle"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const requestIDKey = "request_id"

// requestID reuses the caller's X-Request-ID or generates one, and echoes it.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(RequestIDHeader))
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// RequestID returns the id assigned to the request.
func RequestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}

// trace opens a server span for the request, parented on any traceparent
// the caller sent.
func (s *Server) trace() gin.HandlerFunc {
	return func(c *gin.Context) {
		if s.tracer == nil {
			c.Next()
			return
		}

		carrier := make(map[string]string, 2)
		for _, h := range []string{"traceparent", "tracestate", "baggage"} {
			if v := c.GetHeader(h); v != "" {
				carrier[h] = v
			}
		}
		ctx := s.tracer.SetCarrierOnContext(c.Request.Context(), carrier)
		ctx, span := s.tracer.StartSpan(ctx, c.Request.Method+" "+c.FullPath())
		defer span.End()

		c.Request = c.Request.WithContext(ctx)
		c.Next()

		span.SetAttributes(map[string]interface{}{
			"http.status_code": c.Writer.Status(),
			"request_id":       RequestID(c),
		})
		if len(c.Errors) > 0 {
			span.RecordError(c.Errors.Last().Err)
		}
	}
}

// observe logs the request at debug level and records the request metrics.
func (s *Server) observe() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := c.Writer.Status()
		elapsed := time.Since(start)

		if s.requests != nil {
			s.requests.WithLabelValues(route, strconv.Itoa(status)).Inc()
		}
		if s.durations != nil {
			s.durations.WithLabelValues(route).Observe(elapsed.Seconds())
		}
		s.logDebug(c.Request.Context(), "HTTP request", map[string]interface{}{
			"method":      c.Request.Method,
			"route":       route,
			"status":      status,
			"duration_ms": elapsed.Milliseconds(),
			"request_id":  RequestID(c),
		})
	}
}

// apiKey rejects requests without one of the configured keys.
func apiKey(keys []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		got := strings.TrimSpace(c.GetHeader(APIKeyHeader))
		for _, k := range keys {
			if subtle.ConstantTimeCompare([]byte(got), []byte(k)) == 1 {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
	}
}
