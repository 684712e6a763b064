package mapper

import (
	"encoding/json"

	"film-assistant-be/internal/entity"
	"film-assistant-be/internal/model"
)

type TelemetryEventMapper struct{}

func NewTelemetryEventMapper() *TelemetryEventMapper {
	return &TelemetryEventMapper{}
}

func (m *TelemetryEventMapper) ToEntity(e *model.TelemetryEvent) *entity.TelemetryEvent {
	if e == nil {
		return nil
	}

	var payload map[string]interface{}
	if len(e.Payload) > 0 {
		// A payload that fails to parse is kept as nil rather than failing the read.
		_ = json.Unmarshal(e.Payload, &payload)
	}

	return &entity.TelemetryEvent{
		Id:         e.Id,
		EventType:  e.EventType,
		Payload:    payload,
		OccurredAt: e.OccurredAt,
		CreatedAt:  e.CreatedAt,
	}
}

func (m *TelemetryEventMapper) ToModel(e *entity.TelemetryEvent) (*model.TelemetryEvent, error) {
	if e == nil {
		return nil, nil
	}

	payload, err := json.Marshal(e.Payload)
	if err != nil {
		return nil, err
	}

	return &model.TelemetryEvent{
		Id:         e.Id,
		EventType:  e.EventType,
		Payload:    payload,
		OccurredAt: e.OccurredAt,
		CreatedAt:  e.CreatedAt,
	}, nil
}
