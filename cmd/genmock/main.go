// Command genmock writes synthetic GSOD station CSV files for local runs
// and fixtures. Generated files exercise the normalizer's edge cases: clean
// rows, rows with unparseable dates, and rows with missing readings.
//
// Usage:
//
//	go run ./cmd/genmock -out data/raw/2025 -stations 5 -days 30
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"time"
)

var baseDate = time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)

func main() {
	out := flag.String("out", "data/raw/2025", "output directory for station CSVs")
	stations := flag.Int("stations", 5, "number of station files to generate")
	days := flag.Int("days", 30, "observations per station")
	seed := flag.Int64("seed", 1, "PRNG seed for reproducible fixtures")
	flag.Parse()

	if err := run(*out, *stations, *days, *seed); err != nil {
		log.Fatal(err)
	}
}

func run(dir string, stations, days int, seed int64) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}

	rng := rand.New(rand.NewSource(seed))
	for i := 0; i < stations; i++ {
		// GSOD-style USAF-WBAN identifier.
		stationID := fmt.Sprintf("%06d-99999", 100010+i*10)
		file := filepath.Join(dir, stationID+".csv")
		if err := writeStation(file, stationID, days, rng); err != nil {
			return fmt.Errorf("station %s: %w", stationID, err)
		}
		log.Printf("wrote %s", file)
	}
	return nil
}

func writeStation(file, stationID string, days int, rng *rand.Rand) error {
	f, err := os.Create(file)
	if err != nil {
		return err
	}

	w := csv.NewWriter(f)
	// Extra columns mirror real GSOD exports; the pipeline ignores them.
	if err := w.Write([]string{"STATION", "DATE", "TEMP", "MAX", "MIN", "PRCP"}); err != nil {
		f.Close()
		return err
	}

	for d := 0; d < days; d++ {
		date := baseDate.AddDate(0, 0, d).Format("2006-01-02")
		temp := -10 + rng.Float64()*35
		spread := 2 + rng.Float64()*8

		dateStr := date
		tempStr := fmt.Sprintf("%.1f", temp)
		maxStr := fmt.Sprintf("%.1f", temp+spread)
		minStr := fmt.Sprintf("%.1f", temp-spread)

		// Sprinkle the edge cases the normalizer must handle.
		switch {
		case d%11 == 7:
			dateStr = "N/A"
		case d%7 == 4:
			tempStr = ""
		case d%13 == 9:
			maxStr = "not-a-number"
		}

		row := []string{stationID, dateStr, tempStr, maxStr, minStr, "0.00"}
		if err := w.Write(row); err != nil {
			f.Close()
			return err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
