package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
)

type Event struct {
	Id             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ExternalId     string          `gorm:"type:varchar(255);index"`
	Title          string          `gorm:"type:varchar(255);not null"`
	Description    string          `gorm:"type:text"`
	Location       string          `gorm:"type:varchar(255)"`
	Organizer      string          `gorm:"type:varchar(200)"`
	EventStatus    string          `gorm:"type:varchar(50)"`
	AttendanceMode string          `gorm:"type:varchar(50)"`
	StartTime      time.Time       `gorm:"not null;index"`
	EndTime        *time.Time      ``
	Url            string          `gorm:"type:varchar(500)"`
	MetadataTags   datatypes.JSON  `gorm:"type:jsonb"`
	IsVirtual      bool            `gorm:"default:false"`
	IsCancelled    bool            `gorm:"default:false;index"`
	IsFull         bool            `gorm:"default:false"`
	Latitude       *float64        `gorm:"type:decimal(9,6)"`
	Longitude      *float64        `gorm:"type:decimal(9,6)"`
	Embedding      pgvector.Vector `gorm:"type:vector(384)"` // all-MiniLM-L6-v2 dimension
	CreatedAt      time.Time       `gorm:"autoCreateTime"`
	UpdatedAt      time.Time       `gorm:"autoUpdateTime"`
}

func (Event) TableName() string {
	return "events"
}
