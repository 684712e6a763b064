package entity

import (
	"time"

	"github.com/google/uuid"
)

// TelemetryEvent is a persisted domain event, kept for the live activity feed
// and offline analysis.
type TelemetryEvent struct {
	Id         uuid.UUID
	EventType  string
	Payload    map[string]interface{}
	OccurredAt time.Time
	CreatedAt  time.Time
}
