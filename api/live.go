package api

import (
	"io"

	"github.com/avolkov/flightops/internal/tracker"
	"github.com/gin-gonic/gin"
)

// LiveHandler streams flight snapshots to viewers over SSE. Each viewer
// gets its own hub subscription; only updates published after the viewer
// connects are delivered.
type LiveHandler struct {
	hub *tracker.Hub
}

func NewLiveHandler(hub *tracker.Hub) *LiveHandler {
	return &LiveHandler{hub: hub}
}

func (h *LiveHandler) Register(router *gin.RouterGroup) {
	router.GET("/flights", h.stream)
}

func (h *LiveHandler) stream(c *gin.Context) {
	sub := h.hub.Subscribe(tracker.TopicFlightUpdates)
	defer h.hub.Unsubscribe(sub)

	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Stream(func(w io.Writer) bool {
		select {
		case snapshot, ok := <-sub.C:
			if !ok {
				return false
			}
			c.SSEvent("flight_update", gin.H{"flights": snapshot})
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
