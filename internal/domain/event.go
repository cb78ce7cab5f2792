package domain

import (
	"context"
	"time"
)

// RawReadingRecord is the flat JSON structure published by station collectors.
// Value is a pointer so a missing value can be told apart from zero degrees.
type RawReadingRecord struct {
	Station    string `json:"station"`
	Unit       string `json:"unit"`  // "F" or "C", see ParseUnit for accepted spellings
	Value      *int   `json:"value"` // whole degrees in Unit
	ObservedAt string `json:"observed_at,omitempty"`
}

// RawEvent represents an unprocessed message from the source topic.
type RawEvent struct {
	Key       []byte
	Value     []byte
	Headers   map[string]string
	Topic     string
	Partition int
	Offset    int64
	Timestamp time.Time
	Commit    func(ctx context.Context) error
}

// Reading is a temperature observation carried in both scales.
type Reading struct {
	ID          string    `json:"id"`
	Station     string    `json:"station,omitempty"`
	SourceUnit  Unit      `json:"source_unit"`
	Fahrenheit  int       `json:"fahrenheit"`
	Celsius     int       `json:"celsius"`
	ObservedAt  time.Time `json:"observed_at"`
	RawPayload  []byte    `json:"-"`
	ProcessedAt time.Time `json:"processed_at"`
}
