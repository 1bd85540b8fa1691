package treatment

import (
	"math"
	"strconv"
	"strings"
)

const (
	MinHeatLevel = 0
	MaxHeatLevel = 100

	MinPainLevel = 1
	MaxPainLevel = 10
)

// ValidateHeatLevel parses a raw heat/energy value and checks the
// clinical range [0, 100].
func ValidateHeatLevel(raw string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, ErrNotNumeric("heat_level")
	}
	// ParseFloat accepts "NaN" and "Inf"; neither is a clinical value.
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, ErrNotNumeric("heat_level")
	}
	if v < MinHeatLevel || v > MaxHeatLevel {
		return 0, ErrOutOfRange("heat_level")
	}
	return v, nil
}

// ValidatePainLevel parses an optional 1-10 pain rating. An empty
// value is allowed unless the clinic requires pain capture.
func ValidatePainLevel(raw string, required bool) (*int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		if required {
			return nil, ErrMissingField("pain_level")
		}
		return nil, nil
	}

	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, ErrNotNumeric("pain_level")
	}
	if v < MinPainLevel || v > MaxPainLevel {
		return nil, ErrOutOfRange("pain_level")
	}
	return &v, nil
}
