package contract

import (
	"context"

	"film-assistant-be/internal/entity"
	"film-assistant-be/internal/repository/specification"
)

type TelemetryEventRepository interface {
	Create(ctx context.Context, event *entity.TelemetryEvent) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.TelemetryEvent, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
