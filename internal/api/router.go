package api

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/clinicore/medical-appointments/internal/appointment"
	"github.com/clinicore/medical-appointments/internal/doctor"
	"github.com/clinicore/medical-appointments/internal/patient"
)

type PatientService interface {
	Create(ctx context.Context, req patient.CreateRequest) (*patient.Patient, error)
	Get(ctx context.Context, id string) (*patient.Patient, error)
	List(ctx context.Context) ([]patient.Patient, error)
	Update(ctx context.Context, id string, req patient.UpdateRequest) (*patient.Patient, error)
	Delete(ctx context.Context, id string) error
}

type DoctorService interface {
	Create(ctx context.Context, req doctor.CreateRequest) (*doctor.Doctor, error)
	Get(ctx context.Context, id string) (*doctor.Doctor, error)
	List(ctx context.Context) ([]doctor.Doctor, error)
}

type AppointmentService interface {
	Book(ctx context.Context, req appointment.BookingRequest) (*appointment.Detail, error)
	Get(ctx context.Context, id string) (*appointment.Detail, error)
	Cancel(ctx context.Context, id string) (*appointment.Detail, error)
	List(ctx context.Context, f appointment.Filters) ([]appointment.Detail, error)
	DeleteAll(ctx context.Context) (int64, error)
}

type RouterConfig struct {
	Patients     PatientService
	Doctors      DoctorService
	Appointments AppointmentService
	PgPool       *pgxpool.Pool
	Redis        *redis.Client
	Env          string
	Version      string
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(RequestIDMiddleware)
	r.Use(LoggingMiddleware)

	health := NewHealthHandler(cfg.PgPool, cfg.Redis, cfg.Env, cfg.Version)
	r.Get("/health", health.Health)
	r.Get("/health/ready", health.Readiness)

	r.Route("/patients", func(r chi.Router) {
		r.Post("/", createPatientHandler(cfg.Patients))
		r.Get("/", listPatientsHandler(cfg.Patients))
		r.Get("/{id}", getPatientHandler(cfg.Patients))
		r.Put("/{id}", updatePatientHandler(cfg.Patients))
		r.Delete("/{id}", deletePatientHandler(cfg.Patients))
	})

	r.Route("/doctors", func(r chi.Router) {
		r.Get("/", listDoctorsHandler(cfg.Doctors))
		r.Post("/", createDoctorHandler(cfg.Doctors))
		r.Get("/{id}", getDoctorHandler(cfg.Doctors))
	})

	r.Route("/appointments", func(r chi.Router) {
		r.Post("/", createAppointmentHandler(cfg.Appointments))
		r.Get("/", listAppointmentsHandler(cfg.Appointments))
		r.Post("/reset", resetAppointmentsHandler(cfg.Appointments))
		r.Get("/{id}", getAppointmentHandler(cfg.Appointments))
		r.Delete("/{id}", cancelAppointmentHandler(cfg.Appointments))
	})

	return r
}
