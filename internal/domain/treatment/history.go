package treatment

import "time"

// ClosedAreaRow is one treated area belonging to a closed appointment
// of the client, as read from persistence.
type ClosedAreaRow struct {
	AreaName    string
	HeatLevel   float64
	ScheduledAt time.Time
}

// History answers, per body area, how many times the client was
// treated there and what intensity was used last. It is derived from
// closed-appointment rows only and must be rebuilt at every workflow
// start, never stored.
type History struct {
	counts   map[string]int
	lastHeat map[string]float64
	lastAt   map[string]time.Time
}

func BuildHistory(rows []ClosedAreaRow) History {
	h := History{
		counts:   make(map[string]int, len(rows)),
		lastHeat: make(map[string]float64, len(rows)),
		lastAt:   make(map[string]time.Time, len(rows)),
	}

	for _, row := range rows {
		h.counts[row.AreaName]++

		at, seen := h.lastAt[row.AreaName]
		if !seen || row.ScheduledAt.After(at) {
			h.lastAt[row.AreaName] = row.ScheduledAt
			h.lastHeat[row.AreaName] = row.HeatLevel
		}
	}

	return h
}

// TreatmentNumberFor returns the 1-based sequence number the next
// treatment of the area will carry.
func (h History) TreatmentNumberFor(areaName string) int {
	return h.counts[areaName] + 1
}

// LastHeatLevelFor returns the intensity of the most recently
// scheduled closed treatment of the area, if any.
func (h History) LastHeatLevelFor(areaName string) (float64, bool) {
	v, ok := h.lastHeat[areaName]
	return v, ok
}
