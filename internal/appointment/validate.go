package appointment

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/clinicore/medical-appointments/internal/apperror"
)

// timePattern accepts H:MM and HH:MM, 24-hour clock.
var timePattern = regexp.MustCompile(`^([01]?[0-9]|2[0-3]):([0-5][0-9])$`)

const dateLayout = "2006-01-02"

// validateBooking checks required fields and formats and returns the
// normalized booking. Missing fields are reported as a set; a format failure
// names the single offending field.
func validateBooking(req BookingRequest) (booking, error) {
	var missing []string
	for _, f := range []struct{ name, value string }{
		{"patient_id", req.PatientID},
		{"doctor_id", req.DoctorID},
		{"date", req.Date},
		{"time", req.Time},
	} {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return booking{}, apperror.Validation("all fields are required", missing...)
	}

	if _, err := time.Parse(dateLayout, strings.TrimSpace(req.Date)); err != nil {
		return booking{}, apperror.Validation("invalid date format (use YYYY-MM-DD)", "date")
	}

	m := timePattern.FindStringSubmatch(strings.TrimSpace(req.Time))
	if m == nil {
		return booking{}, apperror.Validation("invalid time format (use HH:MM)", "time")
	}

	patientID, err := uuid.Parse(strings.TrimSpace(req.PatientID))
	if err != nil {
		return booking{}, apperror.Validation("patient_id must be a valid UUID", "patient_id")
	}

	doctorID, err := uuid.Parse(strings.TrimSpace(req.DoctorID))
	if err != nil {
		return booking{}, apperror.Validation("doctor_id must be a valid UUID", "doctor_id")
	}

	return booking{
		PatientID: patientID,
		DoctorID:  doctorID,
		Date:      strings.TrimSpace(req.Date),
		Time:      normalizeTime(m[1], m[2]),
		Reason:    strings.TrimSpace(req.Reason),
	}, nil
}

// normalizeTime zero-pads the hour so "9:30" and "09:30" name the same slot.
func normalizeTime(hour, minute string) string {
	if len(hour) == 1 {
		hour = "0" + hour
	}
	return fmt.Sprintf("%s:%s", hour, minute)
}

// validateFilters parses the optional list filters. Set id fields must be
// UUIDs and date must be a calendar date.
func validateFilters(f Filters) error {
	if f.Status != "" && f.Status != string(StatusActive) && f.Status != string(StatusCancelled) {
		return apperror.Validation("status must be 'active' or 'cancelled'", "status")
	}
	if f.PatientID != "" {
		if _, err := uuid.Parse(f.PatientID); err != nil {
			return apperror.Validation("patient_id must be a valid UUID", "patient_id")
		}
	}
	if f.DoctorID != "" {
		if _, err := uuid.Parse(f.DoctorID); err != nil {
			return apperror.Validation("doctor_id must be a valid UUID", "doctor_id")
		}
	}
	if f.Date != "" {
		if _, err := time.Parse(dateLayout, f.Date); err != nil {
			return apperror.Validation("invalid date format (use YYYY-MM-DD)", "date")
		}
	}
	return nil
}
