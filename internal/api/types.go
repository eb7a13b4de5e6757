package api

import (
	"time"

	"github.com/google/uuid"

	"github.com/clinicore/medical-appointments/internal/appointment"
	"github.com/clinicore/medical-appointments/internal/doctor"
	"github.com/clinicore/medical-appointments/internal/patient"
)

type createPatientRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type updatePatientRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type patientResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
}

func toPatientResponse(p *patient.Patient) patientResponse {
	return patientResponse{
		ID:        p.ID,
		Name:      p.Name,
		Email:     p.Email,
		Phone:     p.Phone,
		CreatedAt: p.CreatedAt,
	}
}

type createDoctorRequest struct {
	Name      string `json:"name"`
	Specialty string `json:"specialty"`
}

type doctorResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Specialty string    `json:"specialty"`
	CreatedAt time.Time `json:"created_at"`
}

func toDoctorResponse(d *doctor.Doctor) doctorResponse {
	return doctorResponse{
		ID:        d.ID,
		Name:      d.Name,
		Specialty: d.Specialty,
		CreatedAt: d.CreatedAt,
	}
}

type createAppointmentRequest struct {
	PatientID string `json:"patient_id"`
	DoctorID  string `json:"doctor_id"`
	Date      string `json:"date"`
	Time      string `json:"time"`
	Reason    string `json:"reason"`
}

type appointmentResponse struct {
	ID              uuid.UUID  `json:"id"`
	PatientID       uuid.UUID  `json:"patient_id"`
	DoctorID        uuid.UUID  `json:"doctor_id"`
	Date            string     `json:"date"`
	Time            string     `json:"time"`
	Reason          string     `json:"reason"`
	Status          string     `json:"status"`
	CreatedAt       time.Time  `json:"created_at"`
	CancelledAt     *time.Time `json:"cancelled_at"`
	PatientName     string     `json:"patient_name"`
	PatientEmail    string     `json:"patient_email"`
	PatientPhone    string     `json:"patient_phone"`
	DoctorName      string     `json:"doctor_name"`
	DoctorSpecialty string     `json:"doctor_specialty"`
}

func toAppointmentResponse(d *appointment.Detail) appointmentResponse {
	return appointmentResponse{
		ID:              d.ID,
		PatientID:       d.PatientID,
		DoctorID:        d.DoctorID,
		Date:            d.Date,
		Time:            d.Time,
		Reason:          d.Reason,
		Status:          string(d.Status),
		CreatedAt:       d.CreatedAt,
		CancelledAt:     d.CancelledAt,
		PatientName:     d.PatientName,
		PatientEmail:    d.PatientEmail,
		PatientPhone:    d.PatientPhone,
		DoctorName:      d.DoctorName,
		DoctorSpecialty: d.DoctorSpecialty,
	}
}

type resetResponse struct {
	Deleted int64 `json:"deleted"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error  string   `json:"error"`
	Field  string   `json:"field,omitempty"`
	Fields []string `json:"fields,omitempty"`
}
