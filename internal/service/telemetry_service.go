package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"film-assistant-be/internal/dto"
	"film-assistant-be/internal/entity"
	"film-assistant-be/internal/pkg/logger"
	"film-assistant-be/internal/repository/specification"
	"film-assistant-be/internal/repository/unitofwork"
	"film-assistant-be/internal/websocket"
	"film-assistant-be/pkg/events"
	pkgNats "film-assistant-be/pkg/nats"
)

type ITelemetryService interface {
	// Start subscribes to the event stream and begins persisting and
	// broadcasting events.
	Start() error
	Recent(ctx context.Context, limit int) ([]*dto.TelemetryEventResponse, error)
}

type telemetryService struct {
	subscriber *pkgNats.Subscriber
	uowFactory unitofwork.RepositoryFactory
	hub        *websocket.Hub
	logger     logger.ILogger
}

func NewTelemetryService(
	subscriber *pkgNats.Subscriber,
	uowFactory unitofwork.RepositoryFactory,
	hub *websocket.Hub,
	log logger.ILogger,
) ITelemetryService {
	return &telemetryService{
		subscriber: subscriber,
		uowFactory: uowFactory,
		hub:        hub,
		logger:     log,
	}
}

func (t *telemetryService) Start() error {
	if t.subscriber == nil {
		t.logger.Warn("Telemetry", "No event subscriber configured, telemetry feed disabled", nil)
		return nil
	}
	return t.subscriber.Subscribe("events.>", "telemetry-recorder", t.handleEvent)
}

func (t *telemetryService) handleEvent(ctx context.Context, event events.Event) error {
	record := entity.TelemetryEvent{
		Id:         uuid.New(),
		EventType:  event.EventType(),
		Payload:    event.Payload(),
		OccurredAt: event.Timestamp(),
		CreatedAt:  time.Now(),
	}

	uow := t.uowFactory.NewUnitOfWork(ctx)
	if err := uow.TelemetryEventRepository().Create(ctx, &record); err != nil {
		return err
	}

	if t.hub != nil {
		t.hub.Broadcast(&record)
	}
	return nil
}

func (t *telemetryService) Recent(ctx context.Context, limit int) ([]*dto.TelemetryEventResponse, error) {
	if limit <= 0 {
		limit = 50
	}

	uow := t.uowFactory.NewUnitOfWork(ctx)
	records, err := uow.TelemetryEventRepository().FindAll(ctx,
		specification.OrderBy{Field: "occurred_at", Desc: true},
		specification.Pagination{Limit: limit},
	)
	if err != nil {
		return nil, err
	}

	out := make([]*dto.TelemetryEventResponse, len(records))
	for i, rec := range records {
		out[i] = &dto.TelemetryEventResponse{
			Id:         rec.Id,
			EventType:  rec.EventType,
			Payload:    rec.Payload,
			OccurredAt: rec.OccurredAt,
		}
	}
	return out, nil
}
