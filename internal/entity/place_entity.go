package entity

import "github.com/google/uuid"

// Place is a canonical US place from the Census Gazetteer reference table.
// Read-only from the retrieval engine's point of view.
type Place struct {
	Id             uuid.UUID
	GeoId          string
	Name           string
	NormalizedName string
	State          string // USPS abbreviation, e.g. "MA"
	CountryCode    string
	Latitude       float64
	Longitude      float64
	Population     int64
}

func (p *Place) DisplayName() string {
	return p.Name + ", " + p.State
}
