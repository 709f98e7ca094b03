// FILE: internal/service/event_service.go
package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"event-discovery-be/internal/constant"
	"event-discovery-be/internal/dto"
	"event-discovery-be/internal/entity"
	"event-discovery-be/internal/pkg/logger"
	"event-discovery-be/internal/repository/contract"
)

type IEventService interface {
	// Ingest stores a batch of scraped events and queues each one for
	// embedding. Publish failures are logged, not fatal; backfill catches
	// events that never got a vector.
	Ingest(ctx context.Context, request dto.IngestEventsRequest) (*dto.IngestEventsResponse, error)
	// BackfillEmbeddings queues events whose embedding column is still null.
	BackfillEmbeddings(ctx context.Context, batchSize int) (*dto.BackfillResponse, error)
	GetEvent(ctx context.Context, id uuid.UUID) (*entity.Event, error)
}

type eventService struct {
	eventRepository  contract.EventRepository
	publisherService IPublisherService
	log              logger.ILogger
}

func NewEventService(
	eventRepository contract.EventRepository,
	publisherService IPublisherService,
	log logger.ILogger,
) IEventService {
	return &eventService{
		eventRepository:  eventRepository,
		publisherService: publisherService,
		log:              log,
	}
}

func (s *eventService) Ingest(ctx context.Context, request dto.IngestEventsRequest) (*dto.IngestEventsResponse, error) {
	now := time.Now()
	events := make([]*entity.Event, 0, len(request.Events))
	for _, item := range request.Events {
		status := item.EventStatus
		if status == "" {
			status = constant.EventStatusScheduled
		}
		attendance := item.AttendanceMode
		if attendance == "" {
			attendance = constant.AttendanceModeOffline
		}

		events = append(events, &entity.Event{
			Id:             uuid.New(),
			ExternalId:     item.ExternalId,
			Title:          item.Title,
			Description:    item.Description,
			Location:       item.Location,
			Organizer:      item.Organizer,
			EventStatus:    status,
			AttendanceMode: attendance,
			StartTime:      item.StartTime,
			EndTime:        item.EndTime,
			Url:            item.Url,
			MetadataTags:   item.Tags,
			IsVirtual:      item.IsVirtual || attendance == constant.AttendanceModeOnline,
			IsCancelled:    item.IsCancelled || status == constant.EventStatusCancelled,
			IsFull:         item.IsFull,
			Latitude:       item.Latitude,
			Longitude:      item.Longitude,
			CreatedAt:      &now,
		})
	}

	if err := s.eventRepository.CreateBulk(ctx, events); err != nil {
		return nil, err
	}

	published := 0
	for _, event := range events {
		if err := s.publishRefresh(ctx, event.Id); err != nil {
			s.log.Warn("event", "Failed to queue embedding refresh", map[string]interface{}{
				"event_id": event.Id.String(),
				"error":    err.Error(),
			})
			continue
		}
		published++
	}

	s.log.Info("event", "Events ingested", map[string]interface{}{
		"ingested":  len(events),
		"published": published,
	})
	return &dto.IngestEventsResponse{Ingested: len(events), Published: published}, nil
}

func (s *eventService) BackfillEmbeddings(ctx context.Context, batchSize int) (*dto.BackfillResponse, error) {
	if batchSize <= 0 {
		batchSize = 100
	}

	missing, err := s.eventRepository.FindMissingEmbeddings(ctx, batchSize)
	if err != nil {
		return nil, err
	}

	published := 0
	for _, event := range missing {
		if err := s.publishRefresh(ctx, event.Id); err != nil {
			s.log.Warn("event", "Failed to queue embedding backfill", map[string]interface{}{
				"event_id": event.Id.String(),
				"error":    err.Error(),
			})
			continue
		}
		published++
	}

	s.log.Info("event", "Embedding backfill queued", map[string]interface{}{
		"missing":   len(missing),
		"published": published,
	})
	return &dto.BackfillResponse{Published: published}, nil
}

func (s *eventService) GetEvent(ctx context.Context, id uuid.UUID) (*entity.Event, error) {
	return s.eventRepository.FindOne(ctx, id)
}

func (s *eventService) publishRefresh(ctx context.Context, id uuid.UUID) error {
	payload, err := json.Marshal(dto.PublishRefreshEventMessage{EventId: id})
	if err != nil {
		return err
	}
	return s.publisherService.Publish(ctx, payload)
}
