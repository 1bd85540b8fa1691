package treatment

import (
	"fmt"
	"strings"

	"github.com/SilkSkinClinic/clinic-scheduler/internal/models"
)

// ===============================
// Area capture
// ===============================

type AreaMode string

const (
	ModeSingle   AreaMode = "single"
	ModeFullBody AreaMode = "full_body"
)

func IsValidAreaMode(m string) bool {
	return m == string(ModeSingle) || m == string(ModeFullBody)
}

// AreaEntry holds raw operator input for one treated area. Values stay
// strings until the guard parses them.
type AreaEntry struct {
	AreaName  string `json:"area_name"`
	HeatLevel string `json:"heat_level"`
	PainLevel string `json:"pain_level"`

	// Set in full-body mode: the name comes from the catalog and
	// cannot be edited.
	NameFixed bool `json:"name_fixed"`
}

// ParsedArea is a validated entry ready to be persisted.
type ParsedArea struct {
	AreaName  string
	HeatLevel float64
	PainLevel *int
}

// InitAreas rebuilds the area list for a mode. Switching discards all
// previous input: single mode starts with one blank row, full-body
// mode pre-populates one fixed row per active catalog entry.
func InitAreas(mode AreaMode, catalog []models.BodyAreaConfig) []AreaEntry {
	if mode != ModeFullBody {
		return []AreaEntry{{}}
	}

	entries := make([]AreaEntry, 0, len(catalog))
	for _, area := range catalog {
		if !area.IsActive {
			continue
		}
		entries = append(entries, AreaEntry{
			AreaName:  area.AreaName,
			NameFixed: true,
		})
	}
	return entries
}

// ParseAreas validates every entry and returns the typed rows. The
// first invalid field blocks with a field-scoped error.
func ParseAreas(entries []AreaEntry, requirePain bool) ([]ParsedArea, error) {
	if len(entries) == 0 {
		return nil, ErrMissingField("areas")
	}

	parsed := make([]ParsedArea, 0, len(entries))
	for i, entry := range entries {
		name := strings.TrimSpace(entry.AreaName)
		if name == "" {
			return nil, ErrMissingField(fmt.Sprintf("areas[%d].area_name", i))
		}

		heat, err := ValidateHeatLevel(entry.HeatLevel)
		if err != nil {
			return nil, scopeToEntry(err, i)
		}

		pain, err := ValidatePainLevel(entry.PainLevel, requirePain)
		if err != nil {
			return nil, scopeToEntry(err, i)
		}

		parsed = append(parsed, ParsedArea{
			AreaName:  name,
			HeatLevel: heat,
			PainLevel: pain,
		})
	}

	return parsed, nil
}

func scopeToEntry(err error, index int) error {
	if ve, ok := AsValidation(err); ok {
		ve.Field = fmt.Sprintf("areas[%d].%s", index, ve.Field)
		return ve
	}
	return err
}
