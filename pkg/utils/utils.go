package utils

import "math"

// RoundFloat rounds value to the given number of decimal places.
func RoundFloat(value float64, places int) float64 {
	factor := math.Pow(10, float64(places))
	return math.Round(value*factor) / factor
}

func ToPointer[T any](value T) *T {
	return &value
}
