package calories

import (
	"math"
	"strconv"
	"strings"
)

// Upper bounds for coerced input; larger values are treated as malformed
const (
	MaxQuantity        = 1000
	MaxDurationMinutes = 24 * 60
)

// ParseQuantity converts a raw quantity to a count in [1, MaxQuantity].
// Anything else becomes 1; ok reports whether raw was usable.
func ParseQuantity(raw string) (int, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 1, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 1 || v > MaxQuantity {
		return 1, false
	}
	return int(v), true
}

// ParseDuration converts raw minutes to an integer in [0, MaxDurationMinutes].
// Malformed, negative or oversized input becomes 0.
func ParseDuration(raw string) (int, bool) {
	raw = strings.TrimSpace(strings.TrimSuffix(strings.ToLower(strings.TrimSpace(raw)), "min"))
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	v = math.Round(v)
	if v < 0 || v > MaxDurationMinutes {
		return 0, false
	}
	return int(v), true
}

// ParseCalories converts a manually entered calorie value.
// Malformed input becomes 0 and negative values are clamped to 0.
func ParseCalories(raw string) (float64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	if v < 0 {
		return 0, false
	}
	return round1(v), true
}
