package deliverer

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"
	"time"

	domaindeliverer "motorent/internal/domain/deliverer"
	"motorent/internal/domain/shared/clock"
	"motorent/internal/domain/shared/fault"
)

// Uploader stores binary content and returns a public URL.
type Uploader interface {
	Upload(ctx context.Context, key string, reader io.Reader, contentType string) (string, error)
}

// Service manages deliverer profiles and CNH image attachments.
type Service struct {
	Deliverers domaindeliverer.Repository
	Storage    Uploader
	Clock      clock.Clock
	Logger     *slog.Logger
}

func (s *Service) Profile(ctx context.Context, id domaindeliverer.ID) (*domaindeliverer.Deliverer, error) {
	return s.Deliverers.ByID(ctx, id)
}

// AttachCNHImage validates and uploads the license picture, then stores its
// public URL on the deliverer. Only png and bmp are accepted.
func (s *Service) AttachCNHImage(ctx context.Context, id domaindeliverer.ID, filename string, reader io.Reader) (*domaindeliverer.Deliverer, error) {
	if s.Storage == nil {
		return nil, fault.BadRequest("cnh image storage is not configured")
	}
	contentType, ok := cnhContentType(filename)
	if !ok {
		return nil, fault.BadRequest("cnh image must be png or bmp")
	}

	d, err := s.Deliverers.ByID(ctx, id)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("cnh/%s%s", d.ID, strings.ToLower(path.Ext(filename)))
	url, err := s.Storage.Upload(ctx, key, reader, contentType)
	if err != nil {
		return nil, err
	}
	if err := d.SetCNHImage(url, s.now()); err != nil {
		return nil, err
	}
	if err := s.Deliverers.Save(ctx, d); err != nil {
		return nil, err
	}
	if s.Logger != nil {
		s.Logger.Info("cnh image attached", "deliverer_id", d.ID, "url", url)
	}
	return d, nil
}

func cnhContentType(filename string) (string, bool) {
	switch strings.ToLower(path.Ext(filename)) {
	case ".png":
		return "image/png", true
	case ".bmp":
		return "image/bmp", true
	default:
		return "", false
	}
}

func (s *Service) now() time.Time {
	if s.Clock != nil {
		return s.Clock.Now()
	}
	return time.Now()
}
