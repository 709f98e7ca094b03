package implementation

import (
	"context"

	"event-discovery-be/internal/entity"
	"event-discovery-be/internal/mapper"
	"event-discovery-be/internal/model"
	"event-discovery-be/internal/repository/contract"

	"gorm.io/gorm"
)

type PlaceRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.PlaceMapper
}

func NewPlaceRepository(db *gorm.DB) contract.PlaceRepository {
	return &PlaceRepositoryImpl{
		db:     db,
		mapper: mapper.NewPlaceMapper(),
	}
}

func (r *PlaceRepositoryImpl) FindByNormalizedNameAndState(ctx context.Context, normalizedName, state string) ([]*entity.Place, error) {
	var models []*model.Place
	err := r.db.WithContext(ctx).
		Where("normalized_name = ? AND state = ?", normalizedName, state).
		Order("population DESC, name").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return r.toEntities(models), nil
}

func (r *PlaceRepositoryImpl) FindByNormalizedName(ctx context.Context, normalizedName string) ([]*entity.Place, error) {
	var models []*model.Place
	err := r.db.WithContext(ctx).
		Where("normalized_name = ?", normalizedName).
		Order("population DESC, state").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return r.toEntities(models), nil
}

func (r *PlaceRepositoryImpl) CreateBulk(ctx context.Context, places []*entity.Place) error {
	if len(places) == 0 {
		return nil
	}
	models := make([]*model.Place, len(places))
	for i, p := range places {
		models[i] = r.mapper.ToModel(p)
	}
	if err := r.db.WithContext(ctx).CreateInBatches(models, 500).Error; err != nil {
		return err
	}
	for i, m := range models {
		*places[i] = *r.mapper.ToEntity(m)
	}
	return nil
}

func (r *PlaceRepositoryImpl) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Place{}).Count(&count).Error
	return count, err
}

func (r *PlaceRepositoryImpl) toEntities(models []*model.Place) []*entity.Place {
	entities := make([]*entity.Place, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities
}
