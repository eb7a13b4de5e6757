package appointment

import (
	"sort"
	"testing"

	"github.com/google/uuid"

	"github.com/clinicore/medical-appointments/internal/apperror"
)

func validRequest() BookingRequest {
	return BookingRequest{
		PatientID: uuid.NewString(),
		DoctorID:  uuid.NewString(),
		Date:      "2025-01-10",
		Time:      "09:00",
		Reason:    "checkup",
	}
}

func TestValidateBooking_Valid(t *testing.T) {
	req := validRequest()
	b, err := validateBooking(req)
	if err != nil {
		t.Fatalf("validateBooking: %v", err)
	}
	if b.Date != "2025-01-10" || b.Time != "09:00" {
		t.Errorf("normalized = %q %q", b.Date, b.Time)
	}
	if b.Reason != "checkup" {
		t.Errorf("Reason = %q", b.Reason)
	}
}

func TestValidateBooking_ReasonOptional(t *testing.T) {
	req := validRequest()
	req.Reason = ""
	b, err := validateBooking(req)
	if err != nil {
		t.Fatalf("validateBooking: %v", err)
	}
	if b.Reason != "" {
		t.Errorf("Reason = %q, want empty", b.Reason)
	}
}

func TestValidateBooking_ReportsAllMissingFields(t *testing.T) {
	req := validRequest()
	req.Date = ""
	req.Time = "   "

	_, err := validateBooking(req)
	appErr := apperror.From(err)
	if appErr == nil || appErr.Kind != apperror.KindValidation {
		t.Fatalf("err = %v, want validation error", err)
	}

	got := append([]string(nil), appErr.Fields...)
	sort.Strings(got)
	want := []string{"date", "time"}
	if len(got) != len(want) {
		t.Fatalf("Fields = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Fields = %v, want %v", got, want)
		}
	}
}

func TestValidateBooking_DateFormat(t *testing.T) {
	for _, bad := range []string{"2025-13-01", "2025-02-30", "10/01/2025", "not-a-date"} {
		req := validRequest()
		req.Date = bad

		_, err := validateBooking(req)
		appErr := apperror.From(err)
		if appErr == nil || appErr.Kind != apperror.KindValidation {
			t.Errorf("date %q: err = %v, want validation error", bad, err)
			continue
		}
		if len(appErr.Fields) != 1 || appErr.Fields[0] != "date" {
			t.Errorf("date %q: Fields = %v, want [date]", bad, appErr.Fields)
		}
	}
}

func TestValidateBooking_TimeFormat(t *testing.T) {
	cases := []struct {
		in     string
		valid  bool
		normal string
	}{
		{"09:00", true, "09:00"},
		{"9:05", true, "09:05"},
		{"00:00", true, "00:00"},
		{"23:59", true, "23:59"},
		{"24:00", false, ""},
		{"12:60", false, ""},
		{"12", false, ""},
		{"12:5", false, ""},
		{"noon", false, ""},
	}

	for _, tc := range cases {
		req := validRequest()
		req.Time = tc.in

		b, err := validateBooking(req)
		if tc.valid {
			if err != nil {
				t.Errorf("time %q: unexpected error %v", tc.in, err)
				continue
			}
			if b.Time != tc.normal {
				t.Errorf("time %q: normalized to %q, want %q", tc.in, b.Time, tc.normal)
			}
			continue
		}

		appErr := apperror.From(err)
		if appErr == nil || appErr.Kind != apperror.KindValidation {
			t.Errorf("time %q: err = %v, want validation error", tc.in, err)
			continue
		}
		if len(appErr.Fields) != 1 || appErr.Fields[0] != "time" {
			t.Errorf("time %q: Fields = %v, want [time]", tc.in, appErr.Fields)
		}
	}
}

func TestValidateBooking_PastDateAccepted(t *testing.T) {
	// Past dates are deliberately not rejected here; see the service docs.
	req := validRequest()
	req.Date = "1999-12-31"
	if _, err := validateBooking(req); err != nil {
		t.Fatalf("past date rejected: %v", err)
	}
}

func TestValidateBooking_MalformedUUID(t *testing.T) {
	req := validRequest()
	req.PatientID = "42"

	_, err := validateBooking(req)
	appErr := apperror.From(err)
	if appErr == nil || appErr.Kind != apperror.KindValidation {
		t.Fatalf("err = %v, want validation error", err)
	}
	if len(appErr.Fields) != 1 || appErr.Fields[0] != "patient_id" {
		t.Errorf("Fields = %v, want [patient_id]", appErr.Fields)
	}
}

func TestValidateFilters(t *testing.T) {
	if err := validateFilters(Filters{}); err != nil {
		t.Errorf("empty filters: %v", err)
	}
	if err := validateFilters(Filters{Status: "cancelled", PatientID: uuid.NewString(), Date: "2025-01-10"}); err != nil {
		t.Errorf("valid filters: %v", err)
	}

	if err := validateFilters(Filters{Status: "pending"}); !apperror.IsKind(err, apperror.KindValidation) {
		t.Errorf("bad status: err = %v", err)
	}
	if err := validateFilters(Filters{DoctorID: "nope"}); !apperror.IsKind(err, apperror.KindValidation) {
		t.Errorf("bad doctor_id: err = %v", err)
	}
	if err := validateFilters(Filters{Date: "01-10-2025"}); !apperror.IsKind(err, apperror.KindValidation) {
		t.Errorf("bad date: err = %v", err)
	}
}
