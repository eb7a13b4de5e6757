package appointment

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusActive    Status = "active"
	StatusCancelled Status = "cancelled"
)

// Appointment is one booked slot. Date and Time are opaque calendar values
// ("2025-01-10", "09:00"); the service never interprets them beyond format
// checks, and time zones do not apply.
type Appointment struct {
	ID          uuid.UUID
	PatientID   uuid.UUID
	DoctorID    uuid.UUID
	Date        string
	Time        string
	Reason      string
	Status      Status
	CreatedAt   time.Time
	CancelledAt *time.Time
}

// Detail is an appointment joined with the display fields callers render
// without a second round trip.
type Detail struct {
	Appointment
	PatientName     string
	PatientEmail    string
	PatientPhone    string
	DoctorName      string
	DoctorSpecialty string
}

// BookingRequest carries the raw, not-yet-validated fields of a booking
// attempt.
type BookingRequest struct {
	PatientID string
	DoctorID  string
	Date      string
	Time      string
	Reason    string
}

// booking is a BookingRequest that passed validation.
type booking struct {
	PatientID uuid.UUID
	DoctorID  uuid.UUID
	Date      string
	Time      string // normalized to HH:MM
	Reason    string
}

// Filters narrow List results. Empty fields do not filter; set fields are
// combined with AND.
type Filters struct {
	Status    string
	PatientID string
	DoctorID  string
	Date      string
}
