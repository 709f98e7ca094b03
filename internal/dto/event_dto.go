// FILE: internal/dto/event_dto.go
package dto

import "time"

type IngestEventRequest struct {
	ExternalId     string     `json:"external_id" validate:"required,max=200"`
	Title          string     `json:"title" validate:"required,max=255"`
	Description    string     `json:"description,omitempty"`
	Location       string     `json:"location,omitempty" validate:"omitempty,max=255"`
	Organizer      string     `json:"organizer,omitempty" validate:"omitempty,max=200"`
	StartTime      *time.Time `json:"start_time" validate:"required"`
	EndTime        *time.Time `json:"end_time,omitempty"`
	Url            string     `json:"url,omitempty" validate:"omitempty,url,max=500"`
	EventStatus    string     `json:"event_status,omitempty" validate:"omitempty,max=50"`
	AttendanceMode string     `json:"attendance_mode,omitempty" validate:"omitempty,max=50"`
	Tags           []string   `json:"tags,omitempty" validate:"omitempty,max=20,dive,max=50"`
	IsVirtual      bool       `json:"is_virtual,omitempty"`
	IsCancelled    bool       `json:"is_cancelled,omitempty"`
	IsFull         bool       `json:"is_full,omitempty"`
	Latitude       *float64   `json:"latitude,omitempty" validate:"omitempty,gte=-90,lte=90"`
	Longitude      *float64   `json:"longitude,omitempty" validate:"omitempty,gte=-180,lte=180"`
}

type IngestEventsRequest struct {
	Events []IngestEventRequest `json:"events" validate:"required,min=1,max=500,dive"`
}

type IngestEventsResponse struct {
	Ingested  int `json:"ingested"`
	Published int `json:"published"`
}

type BackfillResponse struct {
	Published int `json:"published"`
}
