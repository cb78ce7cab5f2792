// Command validate checks the mock reading fixtures for integrity: it re-runs
// conversion over the raw fixture, compares the result with the converted
// fixture, and verifies the reference points of both temperature scales.
//
// Usage:
//
//	go run ./cmd/validate \
//	  -raw-json data/mock/readings_raw.json \
//	  -converted-json data/mock/readings_converted.json
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/couchcryptid/temperature-etl-service/internal/domain"
	"github.com/jonboulle/clockwork"
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	rawJSON := flag.String("raw-json", "data/mock/readings_raw.json", "path to the raw reading fixture")
	convertedJSON := flag.String("converted-json", "data/mock/readings_converted.json", "path to the converted reading fixture")
	flag.Parse()

	os.Exit(run(*rawJSON, *convertedJSON))
}

func run(rawPath, convertedPath string) int {
	// Matches the clock genmock uses for processed_at.
	domain.SetClock(clockwork.NewFakeClockAt(
		time.Date(2024, time.April, 27, 6, 0, 0, 0, time.UTC),
	))
	defer domain.SetClock(nil)

	fmt.Println("=== Temperature Fixture Validation ===")

	raw, err := loadJSON[json.RawMessage](rawPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load raw JSON: %v\n", err)
		return 1
	}
	converted, err := loadJSON[domain.Reading](convertedPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load converted JSON: %v\n", err)
		return 1
	}

	phases := []*phase{
		validateReferencePoints(),
		validateConversion(raw, converted),
		validateSchema(converted),
	}

	fmt.Println()
	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Printf("  %-42s %s\n", p.name, status)
	}

	fmt.Printf("\nRecords: %d raw, %d converted\n", len(raw), len(converted))

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Printf("\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Printf("  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Println("\nAll validations passed.")
		return 0
	}
	fmt.Println("\nValidation FAILED.")
	return 1
}

func loadJSON[T any](path string) ([]T, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// ── Phase 1: Reference Points ──

type referencePoint struct {
	in, out int
}

var (
	fToC = []referencePoint{{32, 0}, {212, 100}, {-40, -40}, {50, 10}, {51, 10}, {52, 11}}
	cToF = []referencePoint{{0, 32}, {100, 212}, {-40, -40}, {10, 50}, {11, 51}, {12, 53}}
)

func validateReferencePoints() *phase {
	p := &phase{name: "Phase 1: Reference Points"}
	for _, rp := range fToC {
		if got := domain.FahrenheitToCelsius(rp.in); got != rp.out {
			p.errorf("FahrenheitToCelsius(%d) = %d, want %d", rp.in, got, rp.out)
		}
	}
	for _, rp := range cToF {
		if got := domain.CelsiusToFahrenheit(rp.in); got != rp.out {
			p.errorf("CelsiusToFahrenheit(%d) = %d, want %d", rp.in, got, rp.out)
		}
	}
	if got := domain.FahrenheitToCelsius(domain.CelsiusToFahrenheit(25)); got != 25 {
		p.errorf("round trip of 25°C = %d", got)
	}
	return p
}

// ── Phase 2: Conversion ──

func validateConversion(raw []json.RawMessage, converted []domain.Reading) *phase {
	p := &phase{name: "Phase 2: Conversion (raw vs converted)"}
	if len(raw) != len(converted) {
		p.errorf("count: %d raw, %d converted", len(raw), len(converted))
		return p
	}

	for i := range raw {
		parsed, err := domain.ParseRawEvent(domain.RawEvent{Value: raw[i]})
		if err != nil {
			p.errorf("raw record %d: %v", i, err)
			continue
		}
		want := domain.ConvertReading(parsed)
		got := converted[i]

		if got.ID != want.ID {
			p.errorf("record %d: id: expected %q, got %q", i, want.ID, got.ID)
		}
		if got.SourceUnit != want.SourceUnit {
			p.errorf("record %d: source_unit: expected %q, got %q", i, want.SourceUnit, got.SourceUnit)
		}
		if got.Fahrenheit != want.Fahrenheit || got.Celsius != want.Celsius {
			p.errorf("record %d: expected %d°F/%d°C, got %d°F/%d°C", i, want.Fahrenheit, want.Celsius, got.Fahrenheit, got.Celsius)
		}
		if !got.ObservedAt.Equal(want.ObservedAt) {
			p.errorf("record %d: observed_at: expected %s, got %s", i, want.ObservedAt.Format(time.RFC3339), got.ObservedAt.Format(time.RFC3339))
		}
	}
	return p
}

// ── Phase 3: Schema ──

func validateSchema(converted []domain.Reading) *phase {
	p := &phase{name: "Phase 3: Schema"}
	seen := map[string]bool{}
	for i, r := range converted {
		switch {
		case r.ID == "":
			p.errorf("record %d: missing id", i)
		case seen[r.ID]:
			p.errorf("record %d: duplicate id %q", i, r.ID)
		case r.Station != "" && !strings.HasPrefix(r.ID, strings.ToLower(r.Station)+"-"):
			p.errorf("record %d: id %q lacks station prefix", i, r.ID)
		}
		seen[r.ID] = true

		if r.SourceUnit != domain.Fahrenheit && r.SourceUnit != domain.Celsius {
			p.errorf("record %d: source_unit %q not in {F, C}", i, r.SourceUnit)
		}
		if r.ObservedAt.IsZero() {
			p.errorf("record %d: observed_at is zero", i)
		}
		if r.ProcessedAt.IsZero() {
			p.errorf("record %d: processed_at is zero", i)
		}
	}
	return p
}
