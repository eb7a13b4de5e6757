package appointment

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrAppointmentNotFound = errors.New("appointment not found")

	// ErrSlotTaken is the storage layer's unique-violation signal: another
	// active appointment holds the same (doctor, date, time). It is the
	// authoritative conflict outcome under concurrent booking.
	ErrSlotTaken = errors.New("slot already has an active appointment")

	// ErrNotActive is returned by CancelActive when the row exists but its
	// status is no longer active.
	ErrNotActive = errors.New("appointment is not active")
)

// Repository contains all DB interactions needed by the service.
type Repository interface {
	PatientExists(ctx context.Context, id uuid.UUID) (bool, error)
	DoctorExists(ctx context.Context, id uuid.UUID) (bool, error)

	// FindActiveBySlot reports the active appointment occupying the slot, or
	// ErrAppointmentNotFound. Used for the friendly pre-check only; Insert's
	// unique index is what actually arbitrates races.
	FindActiveBySlot(ctx context.Context, doctorID uuid.UUID, date, time string) (*Appointment, error)

	// Insert creates the appointment as active and returns the joined record.
	// A unique violation on the active-slot index surfaces as ErrSlotTaken.
	Insert(ctx context.Context, b booking) (*Detail, error)

	GetDetail(ctx context.Context, id uuid.UUID) (*Detail, error)

	// CancelActive performs the conditional active -> cancelled update in a
	// single statement. ErrAppointmentNotFound if no such row,
	// ErrNotActive if the row exists but was not active.
	CancelActive(ctx context.Context, id uuid.UUID) error

	List(ctx context.Context, f Filters) ([]Detail, error)

	// DeleteAll removes every appointment and reports how many went away.
	DeleteAll(ctx context.Context) (int64, error)
}
