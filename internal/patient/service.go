package patient

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/clinicore/medical-appointments/internal/apperror"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneStrip   = regexp.MustCompile(`[\s\-()]`)
	phonePattern = regexp.MustCompile(`^\+?\d+$`)
)

func validEmail(email string) bool {
	return emailPattern.MatchString(strings.TrimSpace(email))
}

// validPhone accepts 1234567890, 123-456-7890, (123) 456-7890 and
// +1234567890 style numbers with at least ten digits.
func validPhone(phone string) bool {
	clean := phoneStrip.ReplaceAllString(phone, "")
	return len(clean) >= 10 && phonePattern.MatchString(clean)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create registers a patient. The stored email is trimmed and lowercased so
// uniqueness is case-insensitive.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Patient, error) {
	var missing []string
	for _, f := range []struct{ name, value string }{
		{"name", req.Name},
		{"email", req.Email},
		{"phone", req.Phone},
	} {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return nil, apperror.Validation("all fields are required", missing...)
	}

	if !validEmail(req.Email) {
		return nil, apperror.Validation("invalid email", "email")
	}
	if !validPhone(req.Phone) {
		return nil, apperror.Validation("invalid phone", "phone")
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	// Friendly pre-check; the unique constraint on email is what actually
	// guards against a racing registration.
	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return nil, apperror.Validation("email is already registered", "email")
	} else if !errors.Is(err, ErrPatientNotFound) {
		return nil, apperror.Storage("check email", err)
	}

	created, err := s.repo.Create(ctx, Patient{
		Name:  strings.TrimSpace(req.Name),
		Email: email,
		Phone: strings.TrimSpace(req.Phone),
	})
	if err != nil {
		if errors.Is(err, ErrEmailTaken) {
			return nil, apperror.Validation("email is already registered", "email")
		}
		return nil, apperror.Storage("create patient", err)
	}

	return created, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Patient, error) {
	patientID, err := uuid.Parse(id)
	if err != nil {
		return nil, apperror.NotFound("patient not found")
	}

	p, err := s.repo.GetByID(ctx, patientID)
	if err != nil {
		if errors.Is(err, ErrPatientNotFound) {
			return nil, apperror.NotFound("patient not found")
		}
		return nil, apperror.Storage("load patient", err)
	}
	return p, nil
}

func (s *Service) List(ctx context.Context) ([]Patient, error) {
	result, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperror.Storage("list patients", err)
	}
	if result == nil {
		result = []Patient{}
	}
	return result, nil
}

// Update applies the provided fields over the current row. Empty fields keep
// their stored value, matching partial updates from the owner.
func (s *Service) Update(ctx context.Context, id string, req UpdateRequest) (*Patient, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Email != "" && !validEmail(req.Email) {
		return nil, apperror.Validation("invalid email", "email")
	}
	if req.Phone != "" && !validPhone(req.Phone) {
		return nil, apperror.Validation("invalid phone", "phone")
	}

	next := *current
	if strings.TrimSpace(req.Name) != "" {
		next.Name = strings.TrimSpace(req.Name)
	}
	if req.Email != "" {
		email := strings.ToLower(strings.TrimSpace(req.Email))
		if email != current.Email {
			if other, err := s.repo.GetByEmail(ctx, email); err == nil && other.ID != current.ID {
				return nil, apperror.Validation("email is already registered", "email")
			} else if err != nil && !errors.Is(err, ErrPatientNotFound) {
				return nil, apperror.Storage("check email", err)
			}
		}
		next.Email = email
	}
	if req.Phone != "" {
		next.Phone = strings.TrimSpace(req.Phone)
	}

	updated, err := s.repo.Update(ctx, next)
	if err != nil {
		if errors.Is(err, ErrEmailTaken) {
			return nil, apperror.Validation("email is already registered", "email")
		}
		return nil, apperror.Storage("update patient", err)
	}
	return updated, nil
}

// Delete removes the patient and, through the cascade, their appointments.
func (s *Service) Delete(ctx context.Context, id string) error {
	patientID, err := uuid.Parse(id)
	if err != nil {
		return apperror.NotFound("patient not found")
	}

	err = s.repo.Delete(ctx, patientID)
	if err != nil {
		if errors.Is(err, ErrPatientNotFound) {
			return apperror.NotFound("patient not found")
		}
		return apperror.Storage("delete patient", err)
	}
	return nil
}
