package contract

import (
	"context"

	"event-discovery-be/internal/entity"
)

// PlaceRepository reads the canonical place reference table. The table is
// imported from Census Gazetteer data and treated as immutable at runtime;
// writes exist only for the seeding command.
type PlaceRepository interface {
	// FindByNormalizedNameAndState returns places matching both keys.
	FindByNormalizedNameAndState(ctx context.Context, normalizedName, state string) ([]*entity.Place, error)
	// FindByNormalizedName returns all same-named places across states,
	// ordered by population descending then state.
	FindByNormalizedName(ctx context.Context, normalizedName string) ([]*entity.Place, error)
	CreateBulk(ctx context.Context, places []*entity.Place) error
	Count(ctx context.Context) (int64, error)
}
