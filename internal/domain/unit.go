package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Unit tags which scale a raw value was reported in.
type Unit string

const (
	Fahrenheit Unit = "F"
	Celsius    Unit = "C"
)

var (
	// ErrUnknownUnit is returned when a unit string names neither scale.
	ErrUnknownUnit = errors.New("unknown temperature unit")

	// ErrInvalidValue is returned when a reading has no whole-degree value.
	ErrInvalidValue = errors.New("invalid temperature value")
)

// ParseUnit accepts "F", "C", their lowercase forms, the full scale names,
// and a leading degree sign.
func ParseUnit(s string) (Unit, error) {
	u := strings.ToLower(strings.TrimSpace(s))
	u = strings.TrimPrefix(u, "°")
	switch u {
	case "f", "fahrenheit":
		return Fahrenheit, nil
	case "c", "celsius":
		return Celsius, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownUnit, s)
	}
}

// Convert returns value expressed in both scales, ordered (fahrenheit, celsius).
func (u Unit) Convert(value int) (int, int) {
	if u == Celsius {
		return CelsiusToFahrenheit(value), value
	}
	return value, FahrenheitToCelsius(value)
}
