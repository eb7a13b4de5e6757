package appointment

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/clinicore/medical-appointments/internal/apperror"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Book validates the request, checks that both references resolve, and
// creates the appointment as active. The in-flight conflict pre-check gives
// the common case a friendly error; the insert's unique index is what makes
// the no-double-booking invariant hold when two requests race.
func (s *Service) Book(ctx context.Context, req BookingRequest) (*Detail, error) {
	b, err := validateBooking(req)
	if err != nil {
		return nil, err
	}

	ok, err := s.repo.PatientExists(ctx, b.PatientID)
	if err != nil {
		return nil, apperror.Storage("check patient", err)
	}
	if !ok {
		return nil, apperror.NotFound("patient not found", "patient_id")
	}

	ok, err = s.repo.DoctorExists(ctx, b.DoctorID)
	if err != nil {
		return nil, apperror.Storage("check doctor", err)
	}
	if !ok {
		return nil, apperror.NotFound("doctor not found", "doctor_id")
	}

	_, err = s.repo.FindActiveBySlot(ctx, b.DoctorID, b.Date, b.Time)
	switch {
	case err == nil:
		return nil, apperror.Conflict("time slot is already booked for this doctor", "time")
	case errors.Is(err, ErrAppointmentNotFound):
		// slot is free as far as this snapshot can tell
	default:
		return nil, apperror.Storage("check slot", err)
	}

	detail, err := s.repo.Insert(ctx, b)
	if err != nil {
		if errors.Is(err, ErrSlotTaken) {
			// A concurrent booking won the slot between check and insert.
			return nil, apperror.Conflict("time slot is already booked for this doctor", "time")
		}
		return nil, apperror.Storage("create appointment", err)
	}

	return detail, nil
}

// Get returns the joined appointment record.
func (s *Service) Get(ctx context.Context, id string) (*Detail, error) {
	apptID, err := uuid.Parse(id)
	if err != nil {
		return nil, apperror.NotFound("appointment not found")
	}

	detail, err := s.repo.GetDetail(ctx, apptID)
	if err != nil {
		if errors.Is(err, ErrAppointmentNotFound) {
			return nil, apperror.NotFound("appointment not found")
		}
		return nil, apperror.Storage("load appointment", err)
	}
	return detail, nil
}

// Cancel transitions an active appointment to cancelled. The transition is a
// single conditional update, so of two racing cancellations exactly one is
// the effective canceller and the other sees AlreadyCancelled.
func (s *Service) Cancel(ctx context.Context, id string) (*Detail, error) {
	apptID, err := uuid.Parse(id)
	if err != nil {
		return nil, apperror.NotFound("appointment not found")
	}

	err = s.repo.CancelActive(ctx, apptID)
	switch {
	case err == nil:
	case errors.Is(err, ErrAppointmentNotFound):
		return nil, apperror.NotFound("appointment not found")
	case errors.Is(err, ErrNotActive):
		return nil, apperror.AlreadyCancelled("appointment is already cancelled")
	default:
		return nil, apperror.Storage("cancel appointment", err)
	}

	detail, err := s.repo.GetDetail(ctx, apptID)
	if err != nil {
		return nil, apperror.Storage("reload appointment", err)
	}
	return detail, nil
}

// List returns appointments matching the filters, newest first.
func (s *Service) List(ctx context.Context, f Filters) ([]Detail, error) {
	if err := validateFilters(f); err != nil {
		return nil, err
	}

	result, err := s.repo.List(ctx, f)
	if err != nil {
		return nil, apperror.Storage("list appointments", err)
	}
	if result == nil {
		result = []Detail{}
	}
	return result, nil
}

// DeleteAll wipes the appointments table. Test and ops tooling only.
func (s *Service) DeleteAll(ctx context.Context) (int64, error) {
	count, err := s.repo.DeleteAll(ctx)
	if err != nil {
		return 0, apperror.Storage("delete all appointments", err)
	}
	return count, nil
}
