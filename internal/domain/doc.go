// Package domain models temperature readings and the conversion between the
// Fahrenheit and Celsius scales.
//
// # Conversion
//
// Both directions work on whole degrees and use Go's truncating integer
// division, which rounds toward zero:
//
//	FahrenheitToCelsius(f) = (f - 32) * 5 / 9     51°F → 10°C, 0°F → -17°C
//	CelsiusToFahrenheit(c) = c * 9 / 5 + 32       11°C → 51°F, -1°C → 31°F
//
// A round trip C → F → C is lossless only where the intermediate division is
// exact, for example on every multiple of 5°C. Overflow on extreme inputs is
// not guarded.
//
// # Data Source
//
// Station collectors publish one flat JSON object per observation to the
// source topic:
//
//	{"station":"KOUN","unit":"F","value":51,"observed_at":"2024-04-26T15:10:00Z"}
//
// The unit may be spelled "F", "fahrenheit" or "°F" (any case), and likewise
// for Celsius. Values must be integers. When observed_at is absent the Kafka
// message timestamp is used.
//
// # ID Generation
//
// Reading IDs are truncated SHA-256 hashes of station|unit|value|observed_at,
// prefixed with the lowercased station code. See [generateID].
package domain
