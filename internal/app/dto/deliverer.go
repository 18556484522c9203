package dto

import (
	"time"

	domaindeliverer "motorent/internal/domain/deliverer"
)

type DelivererProfile struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	CNPJ        string    `json:"cnpj"`
	BirthDate   time.Time `json:"birth_date"`
	CNHNumber   string    `json:"cnh_number"`
	CNHType     string    `json:"cnh_type"`
	CNHImageURL string    `json:"cnh_image_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type AuthResponse struct {
	Deliverer DelivererProfile `json:"deliverer"`
	Token     string           `json:"token"`
}

func MapDelivererProfile(d *domaindeliverer.Deliverer) DelivererProfile {
	if d == nil {
		return DelivererProfile{}
	}
	return DelivererProfile{
		ID:          string(d.ID),
		Name:        d.Name,
		CNPJ:        d.CNPJ,
		BirthDate:   d.BirthDate,
		CNHNumber:   d.CNHNumber,
		CNHType:     string(d.CNHType),
		CNHImageURL: d.CNHImageURL,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

func NewAuthResponse(d *domaindeliverer.Deliverer, token string) AuthResponse {
	return AuthResponse{
		Deliverer: MapDelivererProfile(d),
		Token:     token,
	}
}
