// Command seed-trips inserts a trip with its countries. Trips and countries
// are provisioned outside the API, so operators use this to populate a
// database for development and demos.
//
// Usage:
//
//	go run scripts/seed-trips.go -name "Baltic cruise" -days-from-now 14 \
//	    -duration-days 7 -max-people 40 -countries "Poland,Lithuania"
package main

import (
	"database/sql"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	_ "github.com/lib/pq"
)

func main() {
	var (
		databaseURL  = flag.String("database-url", os.Getenv("DATABASE_URL"), "PostgreSQL connection string")
		name         = flag.String("name", "", "Trip name (required)")
		description  = flag.String("description", "", "Trip description")
		daysFromNow  = flag.Int("days-from-now", 14, "Days until the trip starts")
		durationDays = flag.Int("duration-days", 7, "Trip duration in days")
		maxPeople    = flag.Int("max-people", 30, "Maximum number of participants")
		countries    = flag.String("countries", "", "Comma-separated country names")
	)
	flag.Parse()

	if *databaseURL == "" {
		fmt.Fprintln(os.Stderr, "DATABASE_URL is required")
		os.Exit(1)
	}
	if *name == "" {
		fmt.Fprintln(os.Stderr, "-name is required")
		os.Exit(1)
	}

	db, err := sql.Open("postgres", *databaseURL)
	if err != nil {
		fmt.Fprintln(os.Stderr, "open database:", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		fmt.Fprintln(os.Stderr, "ping database:", err)
		os.Exit(1)
	}

	dateFrom := time.Now().UTC().AddDate(0, 0, *daysFromNow)
	dateTo := dateFrom.AddDate(0, 0, *durationDays)

	tx, err := db.Begin()
	if err != nil {
		fmt.Fprintln(os.Stderr, "begin transaction:", err)
		os.Exit(1)
	}
	defer tx.Rollback()

	var tripID int64
	err = tx.QueryRow(`
		INSERT INTO trips (name, description, date_from, date_to, max_people)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, *name, *description, dateFrom, dateTo, *maxPeople).Scan(&tripID)
	if err != nil {
		fmt.Fprintln(os.Stderr, "insert trip:", err)
		os.Exit(1)
	}

	for _, country := range splitCountries(*countries) {
		var countryID int64
		err = tx.QueryRow(`
			INSERT INTO countries (name) VALUES ($1)
			ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
			RETURNING id
		`, country).Scan(&countryID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "insert country %q: %v\n", country, err)
			os.Exit(1)
		}

		_, err = tx.Exec(`
			INSERT INTO country_trips (country_id, trip_id) VALUES ($1, $2)
			ON CONFLICT DO NOTHING
		`, countryID, tripID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "link country %q: %v\n", country, err)
			os.Exit(1)
		}
	}

	if err := tx.Commit(); err != nil {
		fmt.Fprintln(os.Stderr, "commit:", err)
		os.Exit(1)
	}

	fmt.Printf("trip %d %q: %s to %s\n", tripID, *name,
		dateFrom.Format(time.DateOnly), dateTo.Format(time.DateOnly))
}

func splitCountries(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
