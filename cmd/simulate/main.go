// simulate fires concurrent bookings at the same (doctor, date, time) slot
// and checks that exactly one attempt per slot gets a 201 while the rest see
// 409. It is the contention check for the one-active-appointment invariant,
// run against a live api-server.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clinicore/medical-appointments/internal/db"
)

type simConfig struct {
	APIBaseURL  string
	PostgresDSN string
	Workers     int
	Slots       int
}

type slotResult struct {
	created   int
	conflicts int
	errors    int
	latencies []time.Duration
	mu        sync.Mutex
}

func (r *slotResult) record(status int, latency time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	switch status {
	case http.StatusCreated:
		r.created++
	case http.StatusConflict:
		r.conflicts++
	default:
		r.errors++
	}
	r.latencies = append(r.latencies, latency)
}

func (r *slotResult) percentile(p int) time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.latencies) == 0 {
		return 0
	}
	sorted := make([]time.Duration, len(r.latencies))
	copy(sorted, r.latencies)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	idx := len(sorted) * p / 100
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("simulate starting")

	cfg := loadConfig()
	log.Printf("config: api=%s workers=%d slots=%d", cfg.APIBaseURL, cfg.Workers, cfg.Slots)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := db.ConnectPostgres(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	patients, err := loadIDs(ctx, pool, `SELECT id FROM patients LIMIT $1`, cfg.Workers)
	if err != nil {
		log.Fatalf("load patients: %v", err)
	}
	if len(patients) < 2 {
		log.Fatal("need at least 2 patients; run the seed tool first")
	}

	doctors, err := loadIDs(ctx, pool, `SELECT id FROM doctors LIMIT $1`, 1)
	if err != nil || len(doctors) == 0 {
		log.Fatalf("load doctor: %v", err)
	}
	doctorID := doctors[0]

	client := &http.Client{Timeout: 10 * time.Second}
	failed := false

	for slot := 0; slot < cfg.Slots; slot++ {
		slotTime := fmt.Sprintf("%02d:00", 8+slot%10)
		date := time.Now().AddDate(0, 0, 1+slot/10).Format("2006-01-02")

		result := &slotResult{}
		var wg sync.WaitGroup
		for w := 0; w < cfg.Workers; w++ {
			wg.Add(1)
			patientID := patients[w%len(patients)]
			go func() {
				defer wg.Done()
				status, latency := book(client, cfg.APIBaseURL, patientID, doctorID, date, slotTime)
				result.record(status, latency)
			}()
		}
		wg.Wait()

		log.Printf("slot %s %s: created=%d conflicts=%d errors=%d p50=%s p95=%s",
			date, slotTime, result.created, result.conflicts, result.errors,
			result.percentile(50), result.percentile(95))

		if result.created != 1 {
			log.Printf("INVARIANT VIOLATED: slot %s %s got %d creations, want exactly 1",
				date, slotTime, result.created)
			failed = true
		}
	}

	if failed {
		os.Exit(1)
	}
	log.Println("simulate complete: every contended slot was booked exactly once")
}

func book(client *http.Client, baseURL string, patientID, doctorID uuid.UUID, date, slotTime string) (int, time.Duration) {
	body, _ := json.Marshal(map[string]string{
		"patient_id": patientID.String(),
		"doctor_id":  doctorID.String(),
		"date":       date,
		"time":       slotTime,
		"reason":     "load test",
	})

	start := time.Now()
	resp, err := client.Post(baseURL+"/appointments", "application/json", bytes.NewReader(body))
	latency := time.Since(start)
	if err != nil {
		log.Printf("request failed: %v", err)
		return 0, latency
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	return resp.StatusCode, latency
}

func loadIDs(ctx context.Context, pool *pgxpool.Pool, query string, limit int) ([]uuid.UUID, error) {
	rows, err := pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func loadConfig() simConfig {
	cfg := simConfig{
		APIBaseURL:  getEnv("API_BASE_URL", "http://localhost:8080"),
		PostgresDSN: os.Getenv("POSTGRES_DSN"),
		Workers:     getEnvInt("SIM_WORKERS", 20),
		Slots:       getEnvInt("SIM_SLOTS", 5),
	}
	if cfg.PostgresDSN == "" {
		log.Fatal("POSTGRES_DSN is required")
	}
	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
