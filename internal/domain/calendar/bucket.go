package calendar

import (
	"time"

	"github.com/SilkSkinClinic/clinic-scheduler/internal/models"
)

// ===============================
// Day / week bucketing
// ===============================

// UnassignedStaffID keys the single catch-all column used when the
// clinic has no staff list.
const UnassignedStaffID uint = 0

// CellKey addresses one presentation cell: (staff, hour-of-day) in the
// day view, (staff, weekday) in the week view.
type CellKey struct {
	StaffID uint `json:"staff_id"`
	Slot    int  `json:"slot"`
}

// BucketByStaffAndHour groups a day's appointments into
// (staff, hour) cells. With an empty staff list everything lands in
// the unassigned bucket; otherwise only appointments assigned to a
// listed staff member are placed.
func BucketByStaffAndHour(
	appointments []models.Appointment,
	staff []models.User,
	day time.Time,
) map[CellKey][]models.Appointment {

	cells := make(map[CellKey][]models.Appointment)

	for _, ap := range appointments {
		at := ap.ScheduledAt.In(day.Location())
		if !SameDay(day, at) {
			continue
		}

		staffID, ok := resolveStaffBucket(ap, staff)
		if !ok {
			continue
		}

		key := CellKey{StaffID: staffID, Slot: at.Hour()}
		cells[key] = append(cells[key], ap)
	}

	return cells
}

// BucketByStaffAndWeekday groups a week's appointments into
// (staff, weekday) cells. Slots are 0 (Sunday) .. 6 (Saturday).
func BucketByStaffAndWeekday(
	appointments []models.Appointment,
	staff []models.User,
	week Window,
) map[CellKey][]models.Appointment {

	cells := make(map[CellKey][]models.Appointment)

	for _, ap := range appointments {
		at := ap.ScheduledAt.In(week.Start.Location())
		if at.Before(week.Start) || at.After(week.End) {
			continue
		}

		staffID, ok := resolveStaffBucket(ap, staff)
		if !ok {
			continue
		}

		key := CellKey{StaffID: staffID, Slot: int(at.Weekday())}
		cells[key] = append(cells[key], ap)
	}

	return cells
}

func resolveStaffBucket(ap models.Appointment, staff []models.User) (uint, bool) {
	if len(staff) == 0 {
		return UnassignedStaffID, true
	}

	if ap.StaffMemberID == nil {
		return 0, false
	}

	for _, s := range staff {
		if s.ID == *ap.StaffMemberID {
			return s.ID, true
		}
	}

	return 0, false
}
