package deliverer

import (
	"context"
	"errors"
	"strings"
	"time"
)

var (
	ErrIDRequired          = errors.New("deliverer: id is required")
	ErrNameRequired        = errors.New("deliverer: name is required")
	ErrCNPJRequired        = errors.New("deliverer: cnpj is required")
	ErrCNHRequired         = errors.New("deliverer: cnh number is required")
	ErrInvalidLicenseType  = errors.New("deliverer: cnh type must be A, B or A+B")
	ErrPasswordHashMissing = errors.New("deliverer: password hash is required")
	ErrBirthDateRequired   = errors.New("deliverer: birth date is required")
	ErrCNHAlreadyUsed      = errors.New("deliverer: cnh number already used")
	ErrCNPJAlreadyUsed     = errors.New("deliverer: cnpj already used")
	ErrNotFound            = errors.New("deliverer: not found")
)

type ID string

// LicenseType enumerates the CNH categories a deliverer can hold.
type LicenseType string

const (
	LicenseA  LicenseType = "A"
	LicenseB  LicenseType = "B"
	LicenseAB LicenseType = "A+B"
)

type Deliverer struct {
	ID           ID
	Name         string
	CNPJ         string
	BirthDate    time.Time
	CNHNumber    string
	CNHType      LicenseType
	CNHImageURL  string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Repository interface {
	ByID(ctx context.Context, id ID) (*Deliverer, error)
	ByCNHNumber(ctx context.Context, cnh string) (*Deliverer, error)
	ByCNPJ(ctx context.Context, cnpj string) (*Deliverer, error)
	Save(ctx context.Context, d *Deliverer) error
}

type CreateParams struct {
	ID           ID
	Name         string
	CNPJ         string
	BirthDate    time.Time
	CNHNumber    string
	CNHType      LicenseType
	PasswordHash string
	CreatedAt    time.Time
}

func NewDeliverer(params CreateParams) (*Deliverer, error) {
	id := strings.TrimSpace(string(params.ID))
	if id == "" {
		return nil, ErrIDRequired
	}
	name := strings.TrimSpace(params.Name)
	if name == "" {
		return nil, ErrNameRequired
	}
	cnpj := normalizeDigits(params.CNPJ)
	if cnpj == "" {
		return nil, ErrCNPJRequired
	}
	cnh := normalizeDigits(params.CNHNumber)
	if cnh == "" {
		return nil, ErrCNHRequired
	}
	cnhType, ok := NormalizeLicenseType(string(params.CNHType))
	if !ok {
		return nil, ErrInvalidLicenseType
	}
	if strings.TrimSpace(params.PasswordHash) == "" {
		return nil, ErrPasswordHashMissing
	}
	if params.BirthDate.IsZero() {
		return nil, ErrBirthDateRequired
	}

	now := params.CreatedAt
	if now.IsZero() {
		now = time.Now()
	}
	now = now.UTC()

	return &Deliverer{
		ID:           ID(id),
		Name:         name,
		CNPJ:         cnpj,
		BirthDate:    params.BirthDate.UTC(),
		CNHNumber:    cnh,
		CNHType:      cnhType,
		PasswordHash: params.PasswordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// CanRentMotorcycle reports whether the CNH grants category A.
func (d *Deliverer) CanRentMotorcycle() bool {
	return d.CNHType == LicenseA || d.CNHType == LicenseAB
}

func (d *Deliverer) SetCNHImage(url string, now time.Time) error {
	url = strings.TrimSpace(url)
	if url == "" {
		return errors.New("deliverer: cnh image url is required")
	}
	d.CNHImageURL = url
	d.touch(now)
	return nil
}

func (d *Deliverer) SetPasswordHash(hash string, now time.Time) error {
	if strings.TrimSpace(hash) == "" {
		return ErrPasswordHashMissing
	}
	d.PasswordHash = hash
	d.touch(now)
	return nil
}

func (d *Deliverer) touch(now time.Time) {
	if now.IsZero() {
		now = time.Now()
	}
	d.UpdatedAt = now.UTC()
}

// NormalizeLicenseType accepts the accepted spellings of CNH categories.
func NormalizeLicenseType(raw string) (LicenseType, bool) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "A":
		return LicenseA, true
	case "B":
		return LicenseB, true
	case "A+B", "AB":
		return LicenseAB, true
	default:
		return "", false
	}
}

func normalizeDigits(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
