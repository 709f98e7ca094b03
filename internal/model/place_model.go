package model

import (
	"time"

	"github.com/google/uuid"
)

type Place struct {
	Id             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	GeoId          string    `gorm:"type:varchar(10);uniqueIndex"`
	Name           string    `gorm:"type:varchar(200);index"`
	NormalizedName string    `gorm:"type:varchar(200);index:idx_places_norm_state"`
	State          string    `gorm:"type:varchar(2);index:idx_places_norm_state"`
	CountryCode    string    `gorm:"type:varchar(2);default:'US'"`
	Latitude       float64   `gorm:"type:decimal(9,6)"`
	Longitude      float64   `gorm:"type:decimal(9,6)"`
	Population     int64     `gorm:"default:0"`
	CreatedAt      time.Time `gorm:"autoCreateTime"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime"`
}

func (Place) TableName() string {
	return "places"
}
