package dto

import (
	"time"

	"github.com/google/uuid"
)

type TelemetryEventResponse struct {
	Id         uuid.UUID              `json:"id"`
	EventType  string                 `json:"event_type"`
	Payload    map[string]interface{} `json:"payload"`
	OccurredAt time.Time              `json:"occurred_at"`
}
