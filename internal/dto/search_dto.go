// FILE: internal/dto/search_dto.go
package dto

import (
	"time"

	"event-discovery-be/pkg/ranking"
)

type SearchRequest struct {
	Query           string             `json:"query" validate:"required,min=2,max=500"`
	Location        string             `json:"location,omitempty" validate:"omitempty,max=200"`
	RadiusMiles     float64            `json:"radius_miles,omitempty" validate:"omitempty,gt=0,lte=100"`
	TopK            int                `json:"top_k,omitempty" validate:"omitempty,gt=0,lte=50"`
	IsVirtual       *bool              `json:"is_virtual,omitempty"`
	Tags            []string           `json:"tags,omitempty" validate:"omitempty,max=10,dive,max=50"`
	WeightOverrides map[string]float64 `json:"weight_overrides,omitempty"`
}

type EventResponse struct {
	Id            string     `json:"id"`
	Title         string     `json:"title"`
	Description   string     `json:"description,omitempty"`
	Location      string     `json:"location,omitempty"`
	Organizer     string     `json:"organizer,omitempty"`
	StartTime     *time.Time `json:"start_time,omitempty"`
	EndTime       *time.Time `json:"end_time,omitempty"`
	Url           string     `json:"url,omitempty"`
	Tags          []string   `json:"tags,omitempty"`
	IsVirtual     bool       `json:"is_virtual"`
	Latitude      *float64   `json:"latitude,omitempty"`
	Longitude     *float64   `json:"longitude,omitempty"`
	Score         float64    `json:"score"`
	Similarity    float64    `json:"similarity"`
	DistanceMiles *float64   `json:"distance_miles,omitempty"`
	DaysUntil     *float64   `json:"days_until,omitempty"`
}

type SearchResponse struct {
	Recommended     []EventResponse  `json:"recommended"`
	Additional      []EventResponse  `json:"additional"`
	Context         []EventResponse  `json:"context"`
	TotalConsidered int              `json:"total_considered"`
	Metadata        ranking.Metadata `json:"metadata"`
}

func toEventResponse(ranked ranking.RankedEvent) EventResponse {
	event := ranked.Event
	return EventResponse{
		Id:            event.Id.String(),
		Title:         event.Title,
		Description:   event.Description,
		Location:      event.Location,
		Organizer:     event.Organizer,
		StartTime:     event.StartTime,
		EndTime:       event.EndTime,
		Url:           event.Url,
		Tags:          event.MetadataTags,
		IsVirtual:     event.IsVirtual,
		Latitude:      event.Latitude,
		Longitude:     event.Longitude,
		Score:         ranked.Score,
		Similarity:    ranked.Similarity,
		DistanceMiles: ranked.DistanceMiles,
		DaysUntil:     ranked.DaysUntil,
	}
}

func ToSearchResponse(result *ranking.Result) SearchResponse {
	response := SearchResponse{
		Recommended:     make([]EventResponse, 0, len(result.Recommended)),
		Additional:      make([]EventResponse, 0, len(result.Additional)),
		Context:         make([]EventResponse, 0, len(result.Context)),
		TotalConsidered: result.TotalConsidered,
		Metadata:        result.Metadata,
	}
	for _, ranked := range result.Recommended {
		response.Recommended = append(response.Recommended, toEventResponse(ranked))
	}
	for _, ranked := range result.Additional {
		response.Additional = append(response.Additional, toEventResponse(ranked))
	}
	for _, ranked := range result.Context {
		response.Context = append(response.Context, toEventResponse(ranked))
	}
	return response
}
