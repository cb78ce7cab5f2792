package domain

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFahrenheitToCelsius(t *testing.T) {
	tests := []struct {
		name     string
		tempF    int
		expected int
	}{
		{"freezing point", 32, 0},
		{"boiling point", 212, 100},
		{"scales cross", -40, -40},
		{"exact", 50, 10},
		{"truncates 10.55", 51, 10},
		{"truncates 11.11", 52, 11},
		{"negative truncates toward zero", 0, -17},
		{"body temperature", 98, 36},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FahrenheitToCelsius(tt.tempF))
		})
	}
}

func TestCelsiusToFahrenheit(t *testing.T) {
	tests := []struct {
		name     string
		tempC    int
		expected int
	}{
		{"freezing point", 0, 32},
		{"boiling point", 100, 212},
		{"scales cross", -40, -40},
		{"exact", 10, 50},
		{"truncates 51.8", 11, 51},
		{"truncates 53.6", 12, 53},
		{"negative truncates toward zero", -1, 31},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CelsiusToFahrenheit(tt.tempC))
		})
	}
}

func TestRoundTrip(t *testing.T) {
	t.Run("25 survives", func(t *testing.T) {
		assert.Equal(t, 25, FahrenheitToCelsius(CelsiusToFahrenheit(25)))
	})

	t.Run("multiples of 5 survive", func(t *testing.T) {
		for c := -100; c <= 100; c += 5 {
			assert.Equal(t, c, FahrenheitToCelsius(CelsiusToFahrenheit(c)), "celsius %d", c)
		}
	})

	t.Run("truncation drifts", func(t *testing.T) {
		// 1°C -> 33°F -> 0°C
		assert.Equal(t, 0, FahrenheitToCelsius(CelsiusToFahrenheit(1)))
	})
}

func TestConvert_ConcurrentCallers(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for c := -50; c <= 50; c += 5 {
				assert.Equal(t, c, FahrenheitToCelsius(CelsiusToFahrenheit(c)))
			}
		}()
	}
	wg.Wait()
}
