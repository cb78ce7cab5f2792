// Command genmock generates the mock reading fixtures used by the pipeline
// and integration test suites. It runs every raw record through the actual
// domain package so the converted fixture matches real pipeline output.
//
// Usage:
//
//	go run ./cmd/genmock \
//	  -raw-out data/mock/readings_raw.json \
//	  -converted-out data/mock/readings_converted.json
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/couchcryptid/temperature-etl-service/internal/domain"
	"github.com/jonboulle/clockwork"
)

var processedAt = time.Date(2024, time.April, 27, 6, 0, 0, 0, time.UTC)

// observation is one fixture row. The set covers the fixed points of both
// scales and the cases where truncating division rounds toward zero.
type observation struct {
	station string
	unit    domain.Unit
	value   int
	hour    int
}

var observations = []observation{
	{"KOUN", domain.Fahrenheit, 51, 15},
	{"KOUN", domain.Fahrenheit, 32, 16},
	{"KOUN", domain.Fahrenheit, 212, 17},
	{"KOUN", domain.Fahrenheit, -40, 18},
	{"KOUN", domain.Fahrenheit, 0, 19},
	{"KFWD", domain.Fahrenheit, 98, 15},
	{"KFWD", domain.Fahrenheit, 52, 16},
	{"KFWD", domain.Celsius, 0, 15},
	{"KFWD", domain.Celsius, 100, 16},
	{"KTSA", domain.Celsius, -40, 15},
	{"KTSA", domain.Celsius, 11, 16},
	{"KTSA", domain.Celsius, 12, 17},
	{"KTSA", domain.Celsius, 25, 18},
	{"KTSA", domain.Celsius, -1, 19},
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	rawOut := flag.String("raw-out", "data/mock/readings_raw.json", "output path for the raw reading fixture")
	convertedOut := flag.String("converted-out", "data/mock/readings_converted.json", "output path for the converted reading fixture")
	flag.Parse()

	domain.SetClock(clockwork.NewFakeClockAt(processedAt))
	defer domain.SetClock(nil)

	raw := make([]domain.RawReadingRecord, 0, len(observations))
	converted := make([]domain.Reading, 0, len(observations))

	for _, o := range observations {
		rec := domain.RawReadingRecord{
			Station:    o.station,
			Unit:       string(o.unit),
			Value:      &o.value,
			ObservedAt: time.Date(2024, time.April, 26, o.hour, 0, 0, 0, time.UTC).Format(time.RFC3339),
		}
		payload, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("marshal %s: %w", o.station, err)
		}

		reading, err := domain.ParseRawEvent(domain.RawEvent{Value: payload})
		if err != nil {
			return fmt.Errorf("parse %s: %w", o.station, err)
		}

		raw = append(raw, rec)
		converted = append(converted, domain.ConvertReading(reading))
	}

	if err := writeJSON(*rawOut, raw); err != nil {
		return fmt.Errorf("writing raw fixture: %w", err)
	}
	log.Printf("wrote raw fixture: %s (%d records)", *rawOut, len(raw))

	if err := writeJSON(*convertedOut, converted); err != nil {
		return fmt.Errorf("writing converted fixture: %w", err)
	}
	log.Printf("wrote converted fixture: %s", *convertedOut)
	return nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}
