package treatment

import (
	"testing"
	"time"
)

func day(d int) time.Time {
	return time.Date(2026, time.March, d, 10, 0, 0, 0, time.UTC)
}

func TestBuildHistory_CountsAndLastHeat(t *testing.T) {
	h := BuildHistory([]ClosedAreaRow{
		{AreaName: "legs", HeatLevel: 20, ScheduledAt: day(1)},
		{AreaName: "legs", HeatLevel: 25, ScheduledAt: day(15)},
		{AreaName: "arms", HeatLevel: 18, ScheduledAt: day(3)},
	})

	if got := h.TreatmentNumberFor("legs"); got != 3 {
		t.Fatalf("expected next legs treatment to be 3, got %d", got)
	}
	if got := h.TreatmentNumberFor("arms"); got != 2 {
		t.Fatalf("expected next arms treatment to be 2, got %d", got)
	}

	last, ok := h.LastHeatLevelFor("legs")
	if !ok || last != 25 {
		t.Fatalf("expected last legs heat 25, got %v (ok=%v)", last, ok)
	}
}

func TestBuildHistory_OrderIndependent(t *testing.T) {
	// Most recent schedule wins even when rows arrive out of order.
	h := BuildHistory([]ClosedAreaRow{
		{AreaName: "back", HeatLevel: 30, ScheduledAt: day(20)},
		{AreaName: "back", HeatLevel: 22, ScheduledAt: day(5)},
	})

	last, ok := h.LastHeatLevelFor("back")
	if !ok || last != 30 {
		t.Fatalf("expected last back heat 30, got %v (ok=%v)", last, ok)
	}
}

func TestHistory_UntreatedArea(t *testing.T) {
	h := BuildHistory(nil)

	if got := h.TreatmentNumberFor("chin"); got != 1 {
		t.Fatalf("expected first treatment to be 1, got %d", got)
	}
	if _, ok := h.LastHeatLevelFor("chin"); ok {
		t.Fatal("expected no prior heat level for untreated area")
	}
}
