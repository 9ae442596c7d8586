package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"genetic-route-service/internal/adapters/cities"
	"genetic-route-service/internal/adapters/repositories"
	"genetic-route-service/internal/config"
	"genetic-route-service/internal/platform/db"
	"log"
	"os"
	"strings"
)

// dbtool prepares a postgres database: it creates the schema and, given
// -dataset and a city file, stores the cities as a dataset the CLI can solve
// with "db:<dataset>".
func main() {
	config.LoadEnv()

	dataset := flag.String("dataset", "", "dataset name to seed from FILE")
	flag.Parse()

	databaseURL, err := config.Require("DATABASE_URL")
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	conn, err := db.Open(ctx, databaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	if err := initAndSeed(ctx, conn, *dataset, flag.Args()); err != nil {
		conn.Close()
		log.Fatal(err)
	}
}

func initAndSeed(ctx context.Context, conn *sql.DB, dataset string, files []string) error {
	log.Println("Initializing database schema...")
	if err := repositories.InitPostgresSchema(ctx, conn); err != nil {
		return fmt.Errorf("schema initialization failed: %w", err)
	}
	log.Println("Schema ready.")

	if strings.TrimSpace(dataset) == "" {
		if len(files) > 0 {
			return fmt.Errorf("%d files given without -dataset", len(files))
		}
		return nil
	}
	if len(files) != 1 {
		fmt.Fprintln(os.Stderr, "usage: dbtool -dataset NAME FILE")
		return fmt.Errorf("seeding %q needs exactly one file, got %d", dataset, len(files))
	}

	log.Printf("Seeding dataset=%s file=%s", dataset, files[0])
	src, err := cities.Open(files[0], nil)
	if err != nil {
		return fmt.Errorf("seeding failed: %w", err)
	}
	list, err := src.LoadCities(ctx)
	if err != nil {
		return fmt.Errorf("seeding failed: %w", err)
	}
	if err := repositories.SeedCities(ctx, conn, dataset, list); err != nil {
		return fmt.Errorf("seeding failed: %w", err)
	}
	log.Printf("Seeding complete. cities=%d", len(list))

	return nil
}
