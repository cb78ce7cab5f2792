package pipeline

import (
	"context"

	"github.com/couchcryptid/temperature-etl-service/internal/domain"
)

// ReadingTransformer implements Transformer by parsing a raw reading and
// filling in the opposite temperature scale.
type ReadingTransformer struct{}

// NewTransformer creates a ReadingTransformer.
func NewTransformer() *ReadingTransformer {
	return &ReadingTransformer{}
}

func (t *ReadingTransformer) Transform(_ context.Context, raw domain.RawEvent) (domain.Reading, error) {
	reading, err := domain.ParseRawEvent(raw)
	if err != nil {
		return domain.Reading{}, err
	}
	return domain.ConvertReading(reading), nil
}
