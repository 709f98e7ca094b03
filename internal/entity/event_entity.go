package entity

import (
	"time"

	"github.com/google/uuid"
)

// Event is a discoverable activity with optional venue coordinates and a
// precomputed embedding of its searchable text.
type Event struct {
	Id             uuid.UUID
	ExternalId     string
	Title          string
	Description    string
	Location       string // fallback display location string
	Organizer      string
	EventStatus    string // scheduled / cancelled / postponed
	AttendanceMode string // offline / online / mixed
	StartTime      *time.Time
	EndTime        *time.Time
	Url            string
	MetadataTags   []string
	IsVirtual      bool
	IsCancelled    bool
	IsFull         bool
	Latitude       *float64
	Longitude      *float64
	Embedding      []float32
	CreatedAt      *time.Time
	UpdatedAt      *time.Time
}

// HasCoordinates reports whether the event venue has usable coordinates.
func (e *Event) HasCoordinates() bool {
	return e.Latitude != nil && e.Longitude != nil
}
