package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// statements are idempotent so migrate can run on every deploy.
var statements = []string{
	`CREATE TABLE IF NOT EXISTS patients (
		id uuid PRIMARY KEY,
		name text NOT NULL,
		email text NOT NULL UNIQUE,
		phone text NOT NULL,
		created_at timestamptz NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS doctors (
		id uuid PRIMARY KEY,
		name text NOT NULL,
		specialty text NOT NULL,
		created_at timestamptz NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS appointments (
		id uuid PRIMARY KEY,
		patient_id uuid NOT NULL REFERENCES patients(id) ON DELETE CASCADE,
		doctor_id uuid NOT NULL REFERENCES doctors(id) ON DELETE CASCADE,
		date date NOT NULL,
		time time NOT NULL,
		reason text NOT NULL DEFAULT '',
		status text NOT NULL DEFAULT 'active' CHECK (status IN ('active', 'cancelled')),
		created_at timestamptz NOT NULL DEFAULT now(),
		cancelled_at timestamptz
	)`,
	// One active appointment per (doctor, date, time). Cancelled rows stay out
	// of the index, so a cancelled slot can be booked again.
	`CREATE UNIQUE INDEX IF NOT EXISTS appointments_active_slot_key
		ON appointments (doctor_id, date, time)
		WHERE status = 'active'`,
	`CREATE INDEX IF NOT EXISTS appointments_doctor_date_time_idx
		ON appointments (doctor_id, date, time)`,
	`CREATE INDEX IF NOT EXISTS appointments_patient_idx ON appointments (patient_id)`,
	`CREATE INDEX IF NOT EXISTS appointments_status_idx ON appointments (status)`,
}

// EnsureSchema creates the tables and indexes the service needs.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range statements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema statement: %w", err)
		}
	}
	return nil
}

// SeedDoctors inserts the default doctors when the table is empty.
func SeedDoctors(ctx context.Context, pool *pgxpool.Pool) error {
	var count int
	if err := pool.QueryRow(ctx, `SELECT COUNT(*) FROM doctors`).Scan(&count); err != nil {
		return fmt.Errorf("count doctors: %w", err)
	}
	if count > 0 {
		return nil
	}

	_, err := pool.Exec(ctx, `
		INSERT INTO doctors (id, name, specialty)
		VALUES
			(gen_random_uuid(), 'Dr. García', 'Medicina General'),
			(gen_random_uuid(), 'Dra. Martínez', 'Pediatría'),
			(gen_random_uuid(), 'Dr. López', 'Cardiología')
	`)
	if err != nil {
		return fmt.Errorf("seed doctors: %w", err)
	}
	return nil
}
