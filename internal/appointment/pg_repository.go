package appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// activeSlotConstraint is the partial unique index guarding one active
// appointment per (doctor_id, date, time).
const activeSlotConstraint = "appointments_active_slot_key"

const detailColumns = `
	a.id, a.patient_id, a.doctor_id,
	to_char(a.date, 'YYYY-MM-DD'), to_char(a.time, 'HH24:MI'),
	a.reason, a.status, a.created_at, a.cancelled_at,
	p.name, p.email, p.phone,
	d.name, d.specialty`

type PgRepository struct {
	pool *pgxpool.Pool
}

func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

func scanDetail(row pgx.Row) (*Detail, error) {
	var d Detail

	err := row.Scan(
		&d.ID,
		&d.PatientID,
		&d.DoctorID,
		&d.Date,
		&d.Time,
		&d.Reason,
		&d.Status,
		&d.CreatedAt,
		&d.CancelledAt,
		&d.PatientName,
		&d.PatientEmail,
		&d.PatientPhone,
		&d.DoctorName,
		&d.DoctorSpecialty,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAppointmentNotFound
		}
		return nil, err
	}

	return &d, nil
}

func (r *PgRepository) PatientExists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM patients WHERE id = $1)
	`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check patient exists: %w", err)
	}
	return exists, nil
}

func (r *PgRepository) DoctorExists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM doctors WHERE id = $1)
	`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check doctor exists: %w", err)
	}
	return exists, nil
}

func (r *PgRepository) FindActiveBySlot(ctx context.Context, doctorID uuid.UUID, date, slotTime string) (*Appointment, error) {
	var a Appointment
	err := r.pool.QueryRow(ctx, `
		SELECT id, patient_id, doctor_id,
		       to_char(date, 'YYYY-MM-DD'), to_char(time, 'HH24:MI'),
		       reason, status, created_at, cancelled_at
		FROM appointments
		WHERE doctor_id = $1 AND date = $2 AND time = $3 AND status = 'active'
	`, doctorID, date, slotTime).Scan(
		&a.ID, &a.PatientID, &a.DoctorID, &a.Date, &a.Time,
		&a.Reason, &a.Status, &a.CreatedAt, &a.CancelledAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAppointmentNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (r *PgRepository) Insert(ctx context.Context, b booking) (*Detail, error) {
	id := uuid.New()

	_, err := r.pool.Exec(ctx, `
		INSERT INTO appointments (id, patient_id, doctor_id, date, time, reason, status)
		VALUES ($1, $2, $3, $4, $5, $6, 'active')
	`, id, b.PatientID, b.DoctorID, b.Date, b.Time, b.Reason)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == activeSlotConstraint {
			return nil, ErrSlotTaken
		}
		return nil, fmt.Errorf("insert appointment: %w", err)
	}

	return r.GetDetail(ctx, id)
}

func (r *PgRepository) GetDetail(ctx context.Context, id uuid.UUID) (*Detail, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+detailColumns+`
		FROM appointments a
		JOIN patients p ON a.patient_id = p.id
		JOIN doctors d ON a.doctor_id = d.id
		WHERE a.id = $1
	`, id)
	return scanDetail(row)
}

func (r *PgRepository) CancelActive(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE appointments
		SET status = 'cancelled',
		    cancelled_at = now()
		WHERE id = $1
		  AND status = 'active'
	`, id)
	if err != nil {
		return fmt.Errorf("cancel appointment: %w", err)
	}
	if tag.RowsAffected() > 0 {
		return nil
	}

	// Lost the race or the id never existed; one read tells them apart.
	var status Status
	err = r.pool.QueryRow(ctx, `SELECT status FROM appointments WHERE id = $1`, id).Scan(&status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrAppointmentNotFound
		}
		return fmt.Errorf("read appointment status: %w", err)
	}
	return ErrNotActive
}

func (r *PgRepository) List(ctx context.Context, f Filters) ([]Detail, error) {
	query := `
		SELECT ` + detailColumns + `
		FROM appointments a
		JOIN patients p ON a.patient_id = p.id
		JOIN doctors d ON a.doctor_id = d.id
		WHERE 1=1`
	var args []any

	if f.Status != "" {
		args = append(args, f.Status)
		query += fmt.Sprintf(" AND a.status = $%d", len(args))
	}
	if f.PatientID != "" {
		args = append(args, f.PatientID)
		query += fmt.Sprintf(" AND a.patient_id = $%d", len(args))
	}
	if f.DoctorID != "" {
		args = append(args, f.DoctorID)
		query += fmt.Sprintf(" AND a.doctor_id = $%d", len(args))
	}
	if f.Date != "" {
		args = append(args, f.Date)
		query += fmt.Sprintf(" AND a.date = $%d", len(args))
	}

	query += " ORDER BY a.date DESC, a.time DESC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	defer rows.Close()

	var result []Detail
	for rows.Next() {
		d, err := scanDetail(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *d)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

func (r *PgRepository) DeleteAll(ctx context.Context) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM appointments`)
	if err != nil {
		return 0, fmt.Errorf("delete all appointments: %w", err)
	}
	return tag.RowsAffected(), nil
}
