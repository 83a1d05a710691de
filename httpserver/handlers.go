package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/aalemi-dev/live-events/liveevents"
	"github.com/gin-gonic/gin"
)

// PostEventRequest is the body of POST /v1/events.
type PostEventRequest struct {
	EventName    string                 `json:"event_name"`
	Payload      json.RawMessage        `json:"payload"`
	Time         string                 `json:"time,omitempty"`
	Context      map[string]interface{} `json:"context,omitempty"`
	PartitionKey string                 `json:"partition_key,omitempty"`
}

// PostEventResponse is returned with 202 Accepted.
type PostEventResponse struct {
	Status    string `json:"status"`
	RequestID string `json:"request_id"`
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestID(), s.observe(), s.trace())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/ready", s.handleReady)

	v1 := r.Group("/v1")
	if len(s.cfg.APIKeys) > 0 {
		v1.Use(apiKey(s.cfg.APIKeys))
	}
	v1.POST("/events", s.handlePostEvent)

	return r
}

func (s *Server) handleReady(c *gin.Context) {
	if s.readiness != nil && !s.readiness.Ready() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}

func (s *Server) handlePostEvent(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.cfg.MaxBodyBytes)

	var req PostEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "body_too_large"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON payload"})
		return
	}
	if req.EventName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "event_name required"})
		return
	}

	var at time.Time
	if req.Time != "" {
		parsed, err := time.Parse(time.RFC3339Nano, req.Time)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "time must be RFC3339"})
			return
		}
		at = parsed
	}

	ev := liveevents.Event{
		Name:         req.EventName,
		Time:         at,
		Context:      req.Context,
		PartitionKey: req.PartitionKey,
	}
	if len(req.Payload) > 0 {
		ev.Payload = req.Payload
	}

	ctx := c.Request.Context()
	if err := s.poster.PostEvent(ctx, ev); err != nil {
		status, code := statusFor(err)
		_ = c.Error(err)
		if status >= http.StatusInternalServerError {
			s.logWarn(ctx, "Live event not accepted", err, map[string]interface{}{
				"event":      req.EventName,
				"request_id": RequestID(c),
			})
		}
		c.JSON(status, gin.H{"error": code, "request_id": RequestID(c)})
		return
	}

	c.JSON(http.StatusAccepted, PostEventResponse{Status: "accepted", RequestID: RequestID(c)})
}
