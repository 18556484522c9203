package moto

import (
	"context"
	"errors"
	"strings"
	"time"

	"motorent/internal/domain/shared/events"
)

var (
	ErrIDRequired       = errors.New("moto: id is required")
	ErrPlateRequired    = errors.New("moto: plate is required")
	ErrModelRequired    = errors.New("moto: model is required")
	ErrInvalidYear      = errors.New("moto: year is invalid")
	ErrPlateAlreadyUsed = errors.New("moto: plate already used")
	ErrNotFound         = errors.New("moto: not found")
	ErrHasRents         = errors.New("moto: cannot remove a motorcycle with rents")
)

type ID string

type Motorcycle struct {
	ID        ID
	Year      int
	Model     string
	Plate     string
	CreatedAt time.Time
	UpdatedAt time.Time
	events.EventRecorder
}

type Repository interface {
	ByID(ctx context.Context, id ID) (*Motorcycle, error)
	ByPlate(ctx context.Context, plate string) (*Motorcycle, error)
	Search(ctx context.Context, platePrefix string) ([]*Motorcycle, error)
	Save(ctx context.Context, m *Motorcycle) error
	Delete(ctx context.Context, id ID) error
}

type CreateParams struct {
	ID        ID
	Year      int
	Model     string
	Plate     string
	CreatedAt time.Time
}

func NewMotorcycle(params CreateParams) (*Motorcycle, error) {
	id := strings.TrimSpace(string(params.ID))
	if id == "" {
		return nil, ErrIDRequired
	}
	model := strings.TrimSpace(params.Model)
	if model == "" {
		return nil, ErrModelRequired
	}
	plate := NormalizePlate(params.Plate)
	if plate == "" {
		return nil, ErrPlateRequired
	}
	if params.Year < 1900 {
		return nil, ErrInvalidYear
	}

	now := params.CreatedAt
	if now.IsZero() {
		now = time.Now()
	}
	now = now.UTC()

	m := &Motorcycle{
		ID:        ID(id),
		Year:      params.Year,
		Model:     model,
		Plate:     plate,
		CreatedAt: now,
		UpdatedAt: now,
	}
	m.Record(Registered{MotoID: m.ID, Year: m.Year, Model: m.Model, Plate: m.Plate, At: now})
	return m, nil
}

func (m *Motorcycle) UpdatePlate(plate string, now time.Time) error {
	plate = NormalizePlate(plate)
	if plate == "" {
		return ErrPlateRequired
	}
	m.Plate = plate
	if now.IsZero() {
		now = time.Now()
	}
	m.UpdatedAt = now.UTC()
	return nil
}

// NormalizePlate uppercases and strips separators so lookups are stable.
func NormalizePlate(raw string) string {
	raw = strings.ToUpper(strings.TrimSpace(raw))
	raw = strings.ReplaceAll(raw, "-", "")
	return strings.ReplaceAll(raw, " ", "")
}
