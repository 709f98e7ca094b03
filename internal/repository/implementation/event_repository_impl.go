package implementation

import (
	"context"
	"errors"
	"time"

	"event-discovery-be/internal/entity"
	"event-discovery-be/internal/mapper"
	"event-discovery-be/internal/model"
	"event-discovery-be/internal/repository/contract"
	"event-discovery-be/pkg/geo"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type EventRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.EventMapper
}

func NewEventRepository(db *gorm.DB) contract.EventRepository {
	return &EventRepositoryImpl{
		db:     db,
		mapper: mapper.NewEventMapper(),
	}
}

func (r *EventRepositoryImpl) Create(ctx context.Context, event *entity.Event) error {
	m := r.mapper.ToModel(event)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*event = *r.mapper.ToEntity(m)
	return nil
}

func (r *EventRepositoryImpl) CreateBulk(ctx context.Context, events []*entity.Event) error {
	if len(events) == 0 {
		return nil
	}
	models := make([]*model.Event, len(events))
	for i, e := range events {
		models[i] = r.mapper.ToModel(e)
	}
	if err := r.db.WithContext(ctx).CreateInBatches(models, 100).Error; err != nil {
		return err
	}
	for i, m := range models {
		*events[i] = *r.mapper.ToEntity(m)
	}
	return nil
}

func (r *EventRepositoryImpl) Update(ctx context.Context, event *entity.Event) error {
	m := r.mapper.ToModel(event)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*event = *r.mapper.ToEntity(m)
	return nil
}

func (r *EventRepositoryImpl) UpdateEmbedding(ctx context.Context, id uuid.UUID, embedding []float32) error {
	return r.db.WithContext(ctx).
		Model(&model.Event{}).
		Where("id = ?", id).
		Update("embedding", pgvector.NewVector(embedding)).Error
}

func (r *EventRepositoryImpl) FindOne(ctx context.Context, id uuid.UUID) (*entity.Event, error) {
	var m model.Event
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *EventRepositoryImpl) FindByIds(ctx context.Context, ids []uuid.UUID) ([]*entity.Event, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var models []*model.Event
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&models).Error; err != nil {
		return nil, err
	}
	return r.toEntities(models), nil
}

func (r *EventRepositoryImpl) FindMissingEmbeddings(ctx context.Context, limit int) ([]*entity.Event, error) {
	if limit <= 0 {
		limit = 100
	}
	var models []*model.Event
	err := r.db.WithContext(ctx).
		Where("embedding IS NULL").
		Order("created_at").
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return r.toEntities(models), nil
}

func (r *EventRepositoryImpl) FindUpcoming(ctx context.Context, now time.Time, limit int) ([]*entity.Event, error) {
	if limit <= 0 {
		limit = 10
	}
	var models []*model.Event
	err := r.db.WithContext(ctx).
		Where("start_time > ?", now).
		Where("is_cancelled = false").
		Order("start_time").
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return r.toEntities(models), nil
}

// SearchSimilar runs the filtered pgvector similarity query.
// Cosine distance in pgvector is 1 - cosine_similarity, so the select
// computes 1 - (embedding <=> query_vector). The geo filter is two-phase:
// bounding box in SQL, exact Haversine cutoff on the reduced rows.
func (r *EventRepositoryImpl) SearchSimilar(ctx context.Context, embedding []float32, filter contract.SearchFilter, limit int) ([]*contract.ScoredEvent, error) {
	if limit <= 0 {
		limit = 10
	}

	type result struct {
		model.Event
		Similarity float64
	}
	var results []result

	queryVector := pgvector.NewVector(embedding)

	q := r.db.WithContext(ctx).
		Table("events").
		Select("events.*, 1 - (embedding <=> ?) as similarity", queryVector).
		Where("embedding IS NOT NULL")

	q = applyFilter(q, filter)

	err := q.Order("similarity DESC").
		Limit(limit).
		Scan(&results).Error
	if err != nil {
		return nil, err
	}

	geoFiltered := filter.Lat != nil && filter.Lng != nil
	radius := filter.RadiusMiles
	if radius <= 0 {
		radius = geo.DefaultRadiusMiles
	}

	scored := make([]*contract.ScoredEvent, 0, len(results))
	for _, res := range results {
		e := r.mapper.ToEntity(&res.Event)
		if geoFiltered {
			if !e.HasCoordinates() {
				continue
			}
			d := geo.HaversineMiles(*filter.Lat, *filter.Lng, *e.Latitude, *e.Longitude)
			if d > radius {
				continue
			}
		}
		scored = append(scored, &contract.ScoredEvent{Event: e, Similarity: res.Similarity})
	}
	return scored, nil
}

func applyFilter(q *gorm.DB, filter contract.SearchFilter) *gorm.DB {
	now := filter.Now
	if now.IsZero() {
		now = time.Now()
	}

	if filter.ExcludeCancelled {
		q = q.Where("is_cancelled = false")
	}
	if filter.ExcludeFull {
		q = q.Where("is_full = false")
	}
	if filter.OnlyFutureEvents {
		q = q.Where("start_time > ?", now)
	}

	// Explicit range overrides the generic look-ahead window.
	if filter.DateFrom != nil || filter.DateTo != nil {
		if filter.DateFrom != nil {
			q = q.Where("start_time >= ?", *filter.DateFrom)
		}
		if filter.DateTo != nil {
			q = q.Where("start_time <= ?", *filter.DateTo)
		}
	} else if filter.TimeFilterDays > 0 {
		q = q.Where("start_time <= ?", now.AddDate(0, 0, filter.TimeFilterDays))
	}

	if filter.IsVirtual != nil {
		q = q.Where("is_virtual = ?", *filter.IsVirtual)
	}

	if filter.Lat != nil && filter.Lng != nil {
		radius := filter.RadiusMiles
		if radius <= 0 {
			radius = geo.DefaultRadiusMiles
		}
		box := geo.NewBoundingBox(*filter.Lat, *filter.Lng, radius)
		q = q.Where("latitude BETWEEN ? AND ?", box.MinLat, box.MaxLat).
			Where("longitude BETWEEN ? AND ?", box.MinLng, box.MaxLng)
	} else if filter.LocationText != "" {
		q = q.Where("location ILIKE ?", "%"+filter.LocationText+"%")
	}

	return q
}

func (r *EventRepositoryImpl) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Event{}).Count(&count).Error
	return count, err
}

func (r *EventRepositoryImpl) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (r *EventRepositoryImpl) toEntities(models []*model.Event) []*entity.Event {
	entities := make([]*entity.Event, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities
}
