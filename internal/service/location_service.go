// FILE: internal/service/location_service.go
package service

import (
	"context"
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"event-discovery-be/internal/pkg/logger"
	"event-discovery-be/internal/repository/contract"
	"event-discovery-be/pkg/locations"
)

type ILocationService interface {
	// Resolve maps free-form location text to a canonical place. It always
	// returns a Match; an unresolved query comes back with confidence 0 and
	// no matched place rather than an error.
	Resolve(ctx context.Context, query string) (*locations.Match, error)
}

type locationService struct {
	placeRepository contract.PlaceRepository
	defaultState    string
	cache           *gocache.Cache
	log             logger.ILogger
}

func NewLocationService(placeRepository contract.PlaceRepository, defaultState string, log logger.ILogger) ILocationService {
	return &locationService{
		placeRepository: placeRepository,
		defaultState:    defaultState,
		cache:           gocache.New(30*time.Minute, 10*time.Minute),
		log:             log,
	}
}

func (s *locationService) Resolve(ctx context.Context, query string) (*locations.Match, error) {
	city, state := locations.Normalize(query)
	if city == "" {
		return &locations.Match{NormalizedQuery: city, StateUsed: state}, nil
	}

	cacheKey := fmt.Sprintf("%s|%s", city, state)
	if cached, found := s.cache.Get(cacheKey); found {
		match := cached.(locations.Match)
		return &match, nil
	}

	match, err := s.resolve(ctx, city, state)
	if err != nil {
		return nil, err
	}

	s.cache.Set(cacheKey, *match, gocache.DefaultExpiration)
	return match, nil
}

func (s *locationService) resolve(ctx context.Context, city, state string) (*locations.Match, error) {
	match := &locations.Match{NormalizedQuery: city, StateUsed: state}

	// Step 1: explicit state wins outright. The repository orders by
	// population, so the first hit is the principal place.
	if state != "" {
		places, err := s.placeRepository.FindByNormalizedNameAndState(ctx, city, state)
		if err != nil {
			return nil, err
		}
		if len(places) > 0 {
			match.MatchedPlace = places[0]
			match.Confidence = 1.0
			return match, nil
		}
	}

	// Step 2: no state given, try the configured home state first.
	if state == "" && s.defaultState != "" {
		places, err := s.placeRepository.FindByNormalizedNameAndState(ctx, city, s.defaultState)
		if err != nil {
			return nil, err
		}
		if len(places) > 0 {
			match.MatchedPlace = places[0]
			match.Confidence = 1.0
			match.StateUsed = s.defaultState
			return match, nil
		}
	}

	// Steps 3 and 4: match the name across all states. The effective state,
	// explicit or the configured default, stays on the match even when the
	// winner comes from another state.
	effectiveState := state
	if effectiveState == "" {
		effectiveState = s.defaultState
	}
	match.StateUsed = effectiveState

	candidates, err := s.placeRepository.FindByNormalizedName(ctx, city)
	if err != nil {
		return nil, err
	}

	switch len(candidates) {
	case 0:
		// Step 5: nothing matched.
		s.log.Debug("location", "Unresolved location query", map[string]interface{}{
			"city":  city,
			"state": state,
		})
		return match, nil
	case 1:
		match.MatchedPlace = candidates[0]
		match.Confidence = 0.9
		return match, nil
	}

	ranked := locations.RankPlaces(candidates, effectiveState)
	best := ranked[0]
	match.MatchedPlace = best
	match.IsAmbiguous = true
	match.Confidence = locations.AmbiguousConfidence(best)
	end := len(ranked)
	if end > 5 {
		end = 5
	}
	match.Alternatives = ranked[1:end]

	s.log.Debug("location", "Ambiguous location resolved", map[string]interface{}{
		"city":         city,
		"matched":      best.DisplayName(),
		"alternatives": len(match.Alternatives),
		"confidence":   match.Confidence,
	})
	return match, nil
}
