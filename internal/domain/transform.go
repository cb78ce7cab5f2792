package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ParseRawEvent deserializes a RawEvent's value into a Reading holding only
// the reported scale. The opposite scale is filled by ConvertReading.
func ParseRawEvent(raw RawEvent) (Reading, error) {
	var rec RawReadingRecord
	if err := json.Unmarshal(raw.Value, &rec); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field == "value" {
			return Reading{}, fmt.Errorf("parse raw event: %w: %s", ErrInvalidValue, typeErr.Value)
		}
		return Reading{}, fmt.Errorf("parse raw event: %w", err)
	}

	unit, err := ParseUnit(rec.Unit)
	if err != nil {
		return Reading{}, fmt.Errorf("parse raw event: %w", err)
	}

	if rec.Value == nil {
		return Reading{}, fmt.Errorf("parse raw event: %w: missing value", ErrInvalidValue)
	}
	value := *rec.Value

	station := strings.ToUpper(strings.TrimSpace(rec.Station))
	observedAt := parseObservedAt(raw.Timestamp, rec.ObservedAt)

	reading := Reading{
		ID:         generateID(station, unit, value, observedAt),
		Station:    station,
		SourceUnit: unit,
		ObservedAt: observedAt,
		RawPayload: raw.Value,
	}
	if unit == Celsius {
		reading.Celsius = value
	} else {
		reading.Fahrenheit = value
	}
	return reading, nil
}

// ConvertReading fills the scale the reading was not reported in and stamps
// ProcessedAt. The reported value is kept as-is.
func ConvertReading(r Reading) Reading {
	switch r.SourceUnit {
	case Fahrenheit:
		r.Celsius = FahrenheitToCelsius(r.Fahrenheit)
	case Celsius:
		r.Fahrenheit = CelsiusToFahrenheit(r.Celsius)
	}
	r.ProcessedAt = clock.Now()
	return r
}

// parseObservedAt reads an RFC 3339 timestamp, falling back to the message
// timestamp when the field is empty or malformed.
func parseObservedAt(fallback time.Time, s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return fallback.UTC()
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return fallback.UTC()
	}
	return t.UTC()
}

// generateID produces a deterministic ID so replays of the same observation
// map to the same sink key.
func generateID(station string, unit Unit, value int, observedAt time.Time) string {
	input := fmt.Sprintf("%s|%s|%d|%s", station, unit, value, observedAt.UTC().Format(time.RFC3339))
	hash := sha256.Sum256([]byte(input))
	short := hex.EncodeToString(hash[:8])
	if station == "" {
		return short
	}
	return strings.ToLower(station) + "-" + short
}
