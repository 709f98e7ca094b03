package mapper

import (
	"encoding/json"
	"time"

	"event-discovery-be/internal/entity"
	"event-discovery-be/internal/model"

	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
)

type EventMapper struct{}

func NewEventMapper() *EventMapper {
	return &EventMapper{}
}

func (m *EventMapper) ToEntity(e *model.Event) *entity.Event {
	if e == nil {
		return nil
	}

	var startTime, createdAt, updatedAt *time.Time
	if !e.StartTime.IsZero() {
		t := e.StartTime
		startTime = &t
	}
	if !e.CreatedAt.IsZero() {
		t := e.CreatedAt
		createdAt = &t
	}
	if !e.UpdatedAt.IsZero() {
		t := e.UpdatedAt
		updatedAt = &t
	}

	var tags []string
	if len(e.MetadataTags) > 0 {
		// Malformed tag JSON degrades to no tags rather than failing the read.
		_ = json.Unmarshal(e.MetadataTags, &tags)
	}

	return &entity.Event{
		Id:             e.Id,
		ExternalId:     e.ExternalId,
		Title:          e.Title,
		Description:    e.Description,
		Location:       e.Location,
		Organizer:      e.Organizer,
		EventStatus:    e.EventStatus,
		AttendanceMode: e.AttendanceMode,
		StartTime:      startTime,
		EndTime:        e.EndTime,
		Url:            e.Url,
		MetadataTags:   tags,
		IsVirtual:      e.IsVirtual,
		IsCancelled:    e.IsCancelled,
		IsFull:         e.IsFull,
		Latitude:       e.Latitude,
		Longitude:      e.Longitude,
		Embedding:      e.Embedding.Slice(),
		CreatedAt:      createdAt,
		UpdatedAt:      updatedAt,
	}
}

func (m *EventMapper) ToModel(e *entity.Event) *model.Event {
	if e == nil {
		return nil
	}

	var tags datatypes.JSON
	if e.MetadataTags != nil {
		if raw, err := json.Marshal(e.MetadataTags); err == nil {
			tags = raw
		}
	}

	var startTime, createdAt, updatedAt time.Time
	if e.StartTime != nil {
		startTime = *e.StartTime
	}
	if e.CreatedAt != nil {
		createdAt = *e.CreatedAt
	}
	if e.UpdatedAt != nil {
		updatedAt = *e.UpdatedAt
	}

	return &model.Event{
		Id:             e.Id,
		ExternalId:     e.ExternalId,
		Title:          e.Title,
		Description:    e.Description,
		Location:       e.Location,
		Organizer:      e.Organizer,
		EventStatus:    e.EventStatus,
		AttendanceMode: e.AttendanceMode,
		StartTime:      startTime,
		EndTime:        e.EndTime,
		Url:            e.Url,
		MetadataTags:   tags,
		IsVirtual:      e.IsVirtual,
		IsCancelled:    e.IsCancelled,
		IsFull:         e.IsFull,
		Latitude:       e.Latitude,
		Longitude:      e.Longitude,
		Embedding:      pgvector.NewVector(e.Embedding),
		CreatedAt:      createdAt,
		UpdatedAt:      updatedAt,
	}
}
