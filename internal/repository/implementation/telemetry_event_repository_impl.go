package implementation

import (
	"context"

	"gorm.io/gorm"

	"film-assistant-be/internal/entity"
	"film-assistant-be/internal/mapper"
	"film-assistant-be/internal/model"
	"film-assistant-be/internal/repository/contract"
	"film-assistant-be/internal/repository/specification"
)

type TelemetryEventRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.TelemetryEventMapper
}

func NewTelemetryEventRepository(db *gorm.DB) contract.TelemetryEventRepository {
	return &TelemetryEventRepositoryImpl{
		db:     db,
		mapper: mapper.NewTelemetryEventMapper(),
	}
}

func (r *TelemetryEventRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *TelemetryEventRepositoryImpl) Create(ctx context.Context, event *entity.TelemetryEvent) error {
	m, err := r.mapper.ToModel(event)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*event = *r.mapper.ToEntity(m)
	return nil
}

func (r *TelemetryEventRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.TelemetryEvent, error) {
	var models []*model.TelemetryEvent
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.TelemetryEvent, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities, nil
}

func (r *TelemetryEventRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	err := query.Model(&model.TelemetryEvent{}).Count(&count).Error
	return count, err
}
