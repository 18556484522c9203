package moto

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"motorent/internal/app/outbox"
	domainmoto "motorent/internal/domain/moto"
	domainrent "motorent/internal/domain/rent"
	"motorent/internal/domain/shared/clock"
)

// Service maintains the motorcycle fleet registry.
type Service struct {
	Motos   domainmoto.Repository
	Rents   domainrent.Repository
	Outbox  outbox.Outbox
	Encoder outbox.EventEncoder
	Clock   clock.Clock
	Logger  *slog.Logger
}

type RegisterParams struct {
	Year  int
	Model string
	Plate string
}

func (s *Service) Register(ctx context.Context, params RegisterParams) (*domainmoto.Motorcycle, error) {
	plate := domainmoto.NormalizePlate(params.Plate)
	if existing, err := s.Motos.ByPlate(ctx, plate); err != nil && !errors.Is(err, domainmoto.ErrNotFound) {
		return nil, err
	} else if existing != nil {
		return nil, domainmoto.ErrPlateAlreadyUsed
	}

	m, err := domainmoto.NewMotorcycle(domainmoto.CreateParams{
		ID:        domainmoto.ID(uuid.NewString()),
		Year:      params.Year,
		Model:     params.Model,
		Plate:     plate,
		CreatedAt: s.now(),
	})
	if err != nil {
		return nil, err
	}
	if err := s.Motos.Save(ctx, m); err != nil {
		return nil, err
	}
	if err := outbox.RecordDomainEvents(ctx, s.Outbox, s.Encoder, m.PendingEvents()); err != nil {
		return nil, err
	}
	m.ClearEvents()

	if s.Logger != nil {
		s.Logger.Info("motorcycle registered", "moto_id", m.ID, "plate", m.Plate, "year", m.Year)
	}
	return m, nil
}

func (s *Service) Search(ctx context.Context, platePrefix string) ([]*domainmoto.Motorcycle, error) {
	return s.Motos.Search(ctx, domainmoto.NormalizePlate(platePrefix))
}

func (s *Service) UpdatePlate(ctx context.Context, id domainmoto.ID, plate string) (*domainmoto.Motorcycle, error) {
	normalized := domainmoto.NormalizePlate(plate)
	if existing, err := s.Motos.ByPlate(ctx, normalized); err != nil && !errors.Is(err, domainmoto.ErrNotFound) {
		return nil, err
	} else if existing != nil && existing.ID != id {
		return nil, domainmoto.ErrPlateAlreadyUsed
	}

	m, err := s.Motos.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := m.UpdatePlate(normalized, s.now()); err != nil {
		return nil, err
	}
	if err := s.Motos.Save(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

// Remove deletes a motorcycle that was never rented.
func (s *Service) Remove(ctx context.Context, id domainmoto.ID) error {
	if _, err := s.Motos.ByID(ctx, id); err != nil {
		return err
	}
	count, err := s.Rents.CountByMoto(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return domainmoto.ErrHasRents
	}
	return s.Motos.Delete(ctx, id)
}

func (s *Service) now() time.Time {
	if s.Clock != nil {
		return s.Clock.Now()
	}
	return time.Now()
}
