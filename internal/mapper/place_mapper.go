package mapper

import (
	"event-discovery-be/internal/entity"
	"event-discovery-be/internal/model"
)

type PlaceMapper struct{}

func NewPlaceMapper() *PlaceMapper {
	return &PlaceMapper{}
}

func (m *PlaceMapper) ToEntity(p *model.Place) *entity.Place {
	if p == nil {
		return nil
	}
	return &entity.Place{
		Id:             p.Id,
		GeoId:          p.GeoId,
		Name:           p.Name,
		NormalizedName: p.NormalizedName,
		State:          p.State,
		CountryCode:    p.CountryCode,
		Latitude:       p.Latitude,
		Longitude:      p.Longitude,
		Population:     p.Population,
	}
}

func (m *PlaceMapper) ToModel(p *entity.Place) *model.Place {
	if p == nil {
		return nil
	}
	return &model.Place{
		Id:             p.Id,
		GeoId:          p.GeoId,
		Name:           p.Name,
		NormalizedName: p.NormalizedName,
		State:          p.State,
		CountryCode:    p.CountryCode,
		Latitude:       p.Latitude,
		Longitude:      p.Longitude,
		Population:     p.Population,
	}
}
