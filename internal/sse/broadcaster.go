package sse

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/unotown/unotown/internal/model"
)

// Broadcaster fans game events out to the SSE clients of the event's area.
// It satisfies the area controller's Notifier interface.
type Broadcaster struct {
	hubManager *HubManager
	logger     *slog.Logger
}

// NewBroadcaster creates a new Broadcaster
func NewBroadcaster(hubManager *HubManager, logger *slog.Logger) *Broadcaster {
	return &Broadcaster{
		hubManager: hubManager,
		logger:     logger.With(slog.String("component", "sse-broadcaster")),
	}
}

// Notify broadcasts one event to the area's hub. The SSE event name is the
// event type and the data is the JSON-encoded event, snapshot included.
func (b *Broadcaster) Notify(ctx context.Context, event model.Event) {
	hub := b.hubManager.GetHub(event.AreaID)
	if hub == nil {
		// Nobody is watching this area
		return
	}

	data, err := json.Marshal(event)
	if err != nil {
		b.logger.Error("sse failed to encode event",
			slog.String("area", string(event.AreaID)),
			slog.String("event_type", string(event.Type)),
			slog.Any("error", err))
		return
	}

	hub.BroadcastEvent(string(event.Type), string(data))
}
