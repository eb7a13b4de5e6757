package patient

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrPatientNotFound = errors.New("patient not found")

	// ErrEmailTaken is the unique-violation signal from the patients email
	// constraint.
	ErrEmailTaken = errors.New("email is already registered")
)

type Repository interface {
	Create(ctx context.Context, p Patient) (*Patient, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Patient, error)
	GetByEmail(ctx context.Context, email string) (*Patient, error)
	List(ctx context.Context) ([]Patient, error)
	Update(ctx context.Context, p Patient) (*Patient, error)

	// Delete removes the patient; appointments go with it via the FK cascade.
	Delete(ctx context.Context, id uuid.UUID) error
}
