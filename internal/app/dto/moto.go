package dto

import (
	"time"

	domainmoto "motorent/internal/domain/moto"
)

type MotoSummary struct {
	ID        string    `json:"id"`
	Year      int       `json:"year"`
	Model     string    `json:"model"`
	Plate     string    `json:"plate"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type MotoCollection struct {
	Items []MotoSummary `json:"items"`
}

func MapMotoSummary(m *domainmoto.Motorcycle) MotoSummary {
	if m == nil {
		return MotoSummary{}
	}
	return MotoSummary{
		ID:        string(m.ID),
		Year:      m.Year,
		Model:     m.Model,
		Plate:     m.Plate,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func MapMotoCollection(motos []*domainmoto.Motorcycle) MotoCollection {
	items := make([]MotoSummary, 0, len(motos))
	for _, m := range motos {
		items = append(items, MapMotoSummary(m))
	}
	return MotoCollection{Items: items}
}
