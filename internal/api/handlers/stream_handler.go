package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/clinicbook/admin-console/internal/application/projections"
)

// StreamHandler handles Server-Sent Events for live dashboard updates.
type StreamHandler struct {
	aggregator *projections.Aggregator
}

// NewStreamHandler creates a new SSE handler
func NewStreamHandler(aggregator *projections.Aggregator) *StreamHandler {
	return &StreamHandler{aggregator: aggregator}
}

// StreamDashboard handles SSE connections for dashboard stat updates
// GET /api/stream/dashboard
func (h *StreamHandler) StreamDashboard(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		respondWithError(w, http.StatusInternalServerError, "streaming not supported")
		return
	}

	// Set headers for SSE
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	changes, unsubscribe := h.aggregator.Changes()
	defer unsubscribe()

	// Send the current snapshot so clients render before the first change.
	h.sendEvent(w, "dashboard", h.aggregator.Dashboard())
	flusher.Flush()

	// Keep connection alive and send events
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			log.Debug().Msg("client disconnected from dashboard stream")
			return
		case <-ticker.C:
			// Send heartbeat
			h.sendEvent(w, "heartbeat", map[string]interface{}{
				"timestamp": time.Now(),
			})
			flusher.Flush()
		case dashboard, ok := <-changes:
			if !ok {
				return
			}
			h.sendEvent(w, "dashboard", dashboard)
			flusher.Flush()
		}
	}
}

// sendEvent sends an SSE event to the client
func (h *StreamHandler) sendEvent(w http.ResponseWriter, eventType string, data interface{}) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal event data")
		return
	}

	fmt.Fprintf(w, "event: %s\n", eventType)
	fmt.Fprintf(w, "data: %s\n\n", jsonData)
}
