package calendar

import (
	"testing"
	"time"

	"github.com/SilkSkinClinic/clinic-scheduler/internal/models"
)

func uintPtr(v uint) *uint { return &v }

func sampleAppointments() []models.Appointment {
	at := func(d, h int) time.Time {
		return time.Date(2026, time.September, d, h, 0, 0, 0, time.UTC)
	}

	return []models.Appointment{
		{ID: 1, TreatmentType: "laser", PaymentStatus: "paid", ScheduledAt: at(15, 9), StaffMemberID: uintPtr(1)},
		{ID: 2, TreatmentType: "electrolysis", PaymentStatus: "debt", ScheduledAt: at(15, 11), StaffMemberID: uintPtr(2)},
		{ID: 3, TreatmentType: "laser", PaymentStatus: "debt", ScheduledAt: at(16, 9), StaffMemberID: uintPtr(1)},
		{ID: 4, TreatmentType: "laser", PaymentStatus: "unset", ScheduledAt: at(16, 14), StaffMemberID: nil},
	}
}

func TestFilter(t *testing.T) {
	now := time.Date(2026, time.September, 15, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		crit    Criteria
		wantIDs []uint
	}{
		{
			name:    "no criteria",
			crit:    Criteria{},
			wantIDs: []uint{1, 2, 3, 4},
		},
		{
			name:    "type all passes everything",
			crit:    Criteria{Type: TypeAll},
			wantIDs: []uint{1, 2, 3, 4},
		},
		{
			name:    "by type",
			crit:    Criteria{Type: "electrolysis"},
			wantIDs: []uint{2},
		},
		{
			name:    "debt only",
			crit:    Criteria{DebtOnly: true},
			wantIDs: []uint{2, 3},
		},
		{
			name:    "today only",
			crit:    Criteria{TodayOnly: true},
			wantIDs: []uint{1, 2},
		},
		{
			name:    "by staff",
			crit:    Criteria{StaffID: uintPtr(1)},
			wantIDs: []uint{1, 3},
		},
		{
			name:    "staff filter drops unassigned",
			crit:    Criteria{StaffID: uintPtr(99)},
			wantIDs: []uint{},
		},
		{
			name:    "criteria combine with AND",
			crit:    Criteria{Type: "laser", DebtOnly: true},
			wantIDs: []uint{3},
		},
		{
			name:    "all criteria",
			crit:    Criteria{Type: "electrolysis", DebtOnly: true, TodayOnly: true, StaffID: uintPtr(2)},
			wantIDs: []uint{2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(sampleAppointments(), tt.crit, now)

			if len(got) != len(tt.wantIDs) {
				t.Fatalf("expected %d appointments, got %d", len(tt.wantIDs), len(got))
			}
			for i, ap := range got {
				if ap.ID != tt.wantIDs[i] {
					t.Fatalf("expected id %d at position %d, got %d", tt.wantIDs[i], i, ap.ID)
				}
			}
		})
	}
}

func TestFilter_PreservesOrder(t *testing.T) {
	now := time.Date(2026, time.September, 15, 10, 0, 0, 0, time.UTC)

	got := Filter(sampleAppointments(), Criteria{Type: "laser"}, now)

	for i := 1; i < len(got); i++ {
		if got[i].ID < got[i-1].ID {
			t.Fatal("expected input order to be preserved")
		}
	}
}
