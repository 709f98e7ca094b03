// FILE: internal/service/retrieval_service.go
package service

import (
	"context"
	"fmt"
	"time"

	"event-discovery-be/internal/dto"
	"event-discovery-be/internal/pkg/logger"
	"event-discovery-be/internal/repository/contract"
	"event-discovery-be/pkg/embedding"
	"event-discovery-be/pkg/geo"
	"event-discovery-be/pkg/locations"
	"event-discovery-be/pkg/query"
	"event-discovery-be/pkg/ranking"
)

// defaultTimeWindowDays bounds the candidate window when the query carries
// no explicit dates.
const defaultTimeWindowDays = 30

type IRetrievalService interface {
	// Retrieve runs the full pipeline: date and location extraction, query
	// embedding, similarity search, and multi-factor ranking. A failed
	// similarity search degrades to time-ordered upcoming events with the
	// error surfaced in the result metadata.
	Retrieve(ctx context.Context, request dto.SearchRequest) (*ranking.Result, error)
}

type retrievalService struct {
	eventRepository contract.EventRepository
	locationService ILocationService
	embeddingClient *embedding.Client
	engine          *ranking.Engine
	defaultRadius   float64
	timeWindowDays  int
	log             logger.ILogger
}

func NewRetrievalService(
	eventRepository contract.EventRepository,
	locationService ILocationService,
	embeddingClient *embedding.Client,
	engine *ranking.Engine,
	defaultRadius float64,
	timeWindowDays int,
	log logger.ILogger,
) IRetrievalService {
	if defaultRadius <= 0 {
		defaultRadius = geo.DefaultRadiusMiles
	}
	if timeWindowDays <= 0 {
		timeWindowDays = defaultTimeWindowDays
	}
	return &retrievalService{
		eventRepository: eventRepository,
		locationService: locationService,
		embeddingClient: embeddingClient,
		engine:          engine,
		defaultRadius:   defaultRadius,
		timeWindowDays:  timeWindowDays,
		log:             log,
	}
}

func (s *retrievalService) Retrieve(ctx context.Context, request dto.SearchRequest) (*ranking.Result, error) {
	now := time.Now()

	topK := request.TopK
	if topK <= 0 {
		topK = ranking.DefaultMaxRecommended + ranking.DefaultMaxAdditional + ranking.DefaultMaxContext
	}

	radius := request.RadiusMiles
	if radius <= 0 {
		radius = s.defaultRadius
	}

	filter := contract.DefaultSearchFilter(now)
	filter.IsVirtual = request.IsVirtual

	metadata := ranking.Metadata{Query: request.Query}

	dates := query.ExtractDates(request.Query, now)
	if dates.HasDates() {
		filter.DateFrom = dates.DateFrom
		filter.DateTo = dates.DateTo
		metadata.DateFrom = dates.DateFrom
		metadata.DateTo = dates.DateTo
		metadata.DateConfidence = dates.Confidence
	} else {
		filter.TimeFilterDays = s.timeWindowDays
	}

	match := s.resolveLocation(ctx, request, &filter, radius)
	if match != nil && match.MatchedPlace != nil {
		metadata.LocationName = match.DisplayName()
		metadata.LocationConfidence = match.Confidence
	}

	queryVector, err := s.embeddingClient.EncodeOne(ctx, request.Query, true)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	metadata.EmbeddingMode = s.embeddingClient.Mode().String()

	// Over-fetch so ranking has room to reorder before the tiers cut.
	candidates, searchErr := s.searchCandidates(ctx, queryVector, filter, topK*2)
	if searchErr != nil {
		s.log.Error("retrieval", "Similarity search failed, serving upcoming events", map[string]interface{}{
			"error": searchErr.Error(),
			"query": request.Query,
		})
		metadata.Error = searchErr.Error()
		metadata.FallbackUsed = true

		upcoming, fallbackErr := s.eventRepository.FindUpcoming(ctx, now, topK)
		if fallbackErr != nil {
			return nil, fmt.Errorf("search events: %w", searchErr)
		}
		candidates = make([]ranking.Candidate, 0, len(upcoming))
		for _, event := range upcoming {
			candidates = append(candidates, ranking.Candidate{Event: *event, Similarity: 0.0})
		}
	}

	qc := ranking.QueryContext{
		Now:         now,
		RadiusMiles: radius,
		Tags:        request.Tags,
		HorizonDays: s.timeWindowDays,
	}
	if filter.Lat != nil && filter.Lng != nil {
		qc.Latitude = filter.Lat
		qc.Longitude = filter.Lng
	}

	result := s.engine.Rank(candidates, qc, request.WeightOverrides)
	metadata.Weights = result.Metadata.Weights
	result.Metadata = metadata

	s.log.Info("retrieval", "Query retrieved", map[string]interface{}{
		"query":       request.Query,
		"candidates":  result.TotalConsidered,
		"recommended": len(result.Recommended),
		"location":    metadata.LocationName,
		"has_dates":   dates.HasDates(),
		"fallback":    metadata.FallbackUsed,
	})
	return &result, nil
}

// resolveLocation picks the geo filter for the search. The explicit request
// location takes priority over hints mined from the query text. Resolution
// errors degrade to a location text filter instead of failing the search.
func (s *retrievalService) resolveLocation(ctx context.Context, request dto.SearchRequest, filter *contract.SearchFilter, radius float64) *locations.Match {
	hints := make([]string, 0, 4)
	if request.Location != "" {
		hints = append(hints, request.Location)
	}
	hints = append(hints, query.LocationHints(request.Query)...)
	if len(hints) == 0 {
		return nil
	}

	for _, hint := range hints {
		match, err := s.locationService.Resolve(ctx, hint)
		if err != nil {
			s.log.Warn("retrieval", "Location resolution failed, using text filter", map[string]interface{}{
				"hint":  hint,
				"error": err.Error(),
			})
			filter.LocationText = hint
			return nil
		}
		if lat, lng, ok := match.Coordinates(); ok && match.Confidence > 0 {
			filter.Lat = &lat
			filter.Lng = &lng
			filter.RadiusMiles = radius
			return match
		}
	}

	// Nothing resolved canonically; fall back to matching the first hint
	// against the raw event location text.
	filter.LocationText = hints[0]
	return nil
}

func (s *retrievalService) searchCandidates(ctx context.Context, queryVector []float32, filter contract.SearchFilter, limit int) ([]ranking.Candidate, error) {
	scored, err := s.eventRepository.SearchSimilar(ctx, queryVector, filter, limit)
	if err != nil {
		return nil, err
	}
	candidates := make([]ranking.Candidate, 0, len(scored))
	for _, hit := range scored {
		candidates = append(candidates, ranking.Candidate{Event: *hit.Event, Similarity: hit.Similarity})
	}
	return candidates, nil
}
