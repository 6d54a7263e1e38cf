package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/pukadigital/content-hub/internal/models"
)

// StreamName is the Redis stream resolution events are published to.
const StreamName = "content:resolution:events"

// EventType identifies a resolution lifecycle event.
type EventType string

const (
	// ResolutionDegraded is published when list resolution first falls
	// back to the local dataset.
	ResolutionDegraded EventType = "content.resolution.degraded"
	// ResolutionRecovered is published when the remote source starts
	// answering again after a degradation.
	ResolutionRecovered EventType = "content.resolution.recovered"
)

// ResolutionEvent describes a transition between content sources.
type ResolutionEvent struct {
	EventID   uuid.UUID         `json:"event_id"`
	EventType EventType         `json:"event_type"`
	Tenant    string            `json:"tenant"`
	Source    models.PostSource `json:"source"`
	LatencyMs int64             `json:"latency_ms,omitempty"`
	Reason    string            `json:"reason,omitempty"`
	Timestamp time.Time         `json:"timestamp"`
}
