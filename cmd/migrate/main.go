package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/clinicore/medical-appointments/internal/db"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("migrate starting")

	dsn := os.Getenv("POSTGRES_DSN")
	if dsn == "" {
		log.Fatal("POSTGRES_DSN is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := db.ConnectPostgres(ctx, dsn)
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	if err := db.EnsureSchema(ctx, pool); err != nil {
		log.Fatalf("ensure schema: %v", err)
	}
	log.Println("schema applied")

	if err := db.SeedDoctors(ctx, pool); err != nil {
		log.Fatalf("seed doctors: %v", err)
	}
	log.Println("default doctors in place")

	log.Println("migrate complete")
}
