package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type TelemetryEvent struct {
	Id         uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EventType  string         `gorm:"type:varchar(64);not null;index"`
	Payload    datatypes.JSON `gorm:"type:jsonb"`
	OccurredAt time.Time      `gorm:"not null;index"`
	CreatedAt  time.Time      `gorm:"autoCreateTime"`
}

func (TelemetryEvent) TableName() string {
	return "telemetry_events"
}
