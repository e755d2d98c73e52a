package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"pawquest/internal/service"
)

// EventsHandler streams game events to the client over server-sent events
type EventsHandler struct {
	emitter *service.EventEmitter
}

// NewEventsHandler creates a new events handler
func NewEventsHandler(emitter *service.EventEmitter) *EventsHandler {
	return &EventsHandler{emitter: emitter}
}

// Stream handles GET /api/events. The subscription lives for the duration
// of the request; closing the connection unsubscribes.
func (h *EventsHandler) Stream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		respondWithError(w, http.StatusInternalServerError, "streaming unsupported", "", nil)
		return
	}

	id, events := h.emitter.Subscribe()
	defer h.emitter.Unsubscribe(id)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			data, err := json.Marshal(event)
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Type, data)
			flusher.Flush()
		}
	}
}
