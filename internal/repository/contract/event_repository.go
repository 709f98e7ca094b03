package contract

import (
	"context"
	"time"

	"event-discovery-be/internal/entity"

	"github.com/google/uuid"
)

// ScoredEvent wraps an Event with its cosine similarity to the query vector.
type ScoredEvent struct {
	Event      *entity.Event
	Similarity float64 // 0.0 to 1.0 (1.0 = identical)
}

// SearchFilter is the boolean-AND predicate applied to the similarity query.
// Zero values mean "no constraint" unless noted.
type SearchFilter struct {
	Now              time.Time
	OnlyFutureEvents bool
	ExcludeCancelled bool
	ExcludeFull      bool
	// Explicit range; when set it overrides TimeFilterDays.
	DateFrom *time.Time
	DateTo   *time.Time
	// Generic look-ahead window in days from Now (ignored when <= 0).
	TimeFilterDays int
	// Substring match against the event location text.
	LocationText string
	// Geo filter: bounding box pre-filter in SQL, exact Haversine cutoff
	// applied on the reduced set. Events without coordinates are excluded.
	Lat         *float64
	Lng         *float64
	RadiusMiles float64
	IsVirtual   *bool
}

// DefaultSearchFilter returns the engine's default predicate: future,
// non-cancelled, non-full events only.
func DefaultSearchFilter(now time.Time) SearchFilter {
	return SearchFilter{
		Now:              now,
		OnlyFutureEvents: true,
		ExcludeCancelled: true,
		ExcludeFull:      true,
	}
}

type EventRepository interface {
	Create(ctx context.Context, event *entity.Event) error
	CreateBulk(ctx context.Context, events []*entity.Event) error
	Update(ctx context.Context, event *entity.Event) error
	UpdateEmbedding(ctx context.Context, id uuid.UUID, embedding []float32) error
	FindOne(ctx context.Context, id uuid.UUID) (*entity.Event, error)
	FindByIds(ctx context.Context, ids []uuid.UUID) ([]*entity.Event, error)
	// FindMissingEmbeddings returns events whose embedding column is null.
	FindMissingEmbeddings(ctx context.Context, limit int) ([]*entity.Event, error)
	// FindUpcoming is the degraded fallback path: future events ordered by
	// start time, no similarity involved.
	FindUpcoming(ctx context.Context, now time.Time, limit int) ([]*entity.Event, error)
	// SearchSimilar runs the filtered pgvector similarity query, returning
	// candidates ordered by descending similarity.
	SearchSimilar(ctx context.Context, embedding []float32, filter SearchFilter, limit int) ([]*ScoredEvent, error)
	Count(ctx context.Context) (int64, error)
	Ping(ctx context.Context) error
}
