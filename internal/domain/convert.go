package domain

// FahrenheitToCelsius converts a whole-degree Fahrenheit value to Celsius.
// Division truncates toward zero, so 51°F yields 10°C rather than 11.
func FahrenheitToCelsius(tempF int) int {
	return (tempF - 32) * 5 / 9
}

// CelsiusToFahrenheit converts a whole-degree Celsius value to Fahrenheit
// with the same truncating division as FahrenheitToCelsius.
func CelsiusToFahrenheit(tempC int) int {
	return tempC*9/5 + 32
}
