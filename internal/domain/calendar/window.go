package calendar

import (
	"time"

	"github.com/SilkSkinClinic/clinic-scheduler/internal/httperr"
)

// ===============================
// View granularity
// ===============================

type Granularity string

const (
	GranularityMonth Granularity = "month"
	GranularityWeek  Granularity = "week"
	GranularityDay   Granularity = "day"
)

func IsValidGranularity(g string) bool {
	switch Granularity(g) {
	case GranularityMonth, GranularityWeek, GranularityDay:
		return true
	}
	return false
}

// Window is the inclusive query range of a calendar view.
type Window struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// ===============================
// Resolution
// ===============================

// WindowFor computes the query window for a reference date.
//
//	month: whole-week-padded grid around the reference month
//	week:  the calendar week containing the reference date
//	day:   00:00:00.000 .. 23:59:59.999 of the reference date
//
// Week boundaries follow the clinic's configured week-start weekday.
func WindowFor(ref time.Time, g Granularity, weekStart time.Weekday) (Window, error) {
	switch g {
	case GranularityMonth:
		monthStart := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, ref.Location())
		monthEnd := monthStart.AddDate(0, 1, -1)
		return Window{
			Start: startOfWeek(monthStart, weekStart),
			End:   endOfDay(endOfWeekDay(monthEnd, weekStart)),
		}, nil

	case GranularityWeek:
		start := startOfWeek(ref, weekStart)
		return Window{
			Start: start,
			End:   endOfDay(start.AddDate(0, 0, 6)),
		}, nil

	case GranularityDay:
		start := startOfDay(ref)
		return Window{
			Start: start,
			End:   endOfDay(ref),
		}, nil
	}

	return Window{}, httperr.ErrBusiness("invalid_view")
}

// Navigate advances the reference date by one view unit in either
// direction (+1 or -1).
func Navigate(ref time.Time, g Granularity, direction int) time.Time {
	switch g {
	case GranularityMonth:
		return ref.AddDate(0, direction, 0)
	case GranularityWeek:
		return ref.AddDate(0, 0, 7*direction)
	default:
		return ref.AddDate(0, 0, direction)
	}
}

// Today resets the reference date regardless of granularity.
func Today(now time.Time) time.Time {
	return now
}

// ===============================
// Day/week helpers
// ===============================

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return startOfDay(t).AddDate(0, 0, 1).Add(-time.Millisecond)
}

func startOfWeek(t time.Time, weekStart time.Weekday) time.Time {
	day := startOfDay(t)
	offset := (int(day.Weekday()) - int(weekStart) + 7) % 7
	return day.AddDate(0, 0, -offset)
}

// endOfWeekDay returns the last day (00:00) of the week containing t.
func endOfWeekDay(t time.Time, weekStart time.Weekday) time.Time {
	return startOfWeek(t, weekStart).AddDate(0, 0, 6)
}

// SameDay reports whether two instants fall on the same calendar day
// in the location of the first.
func SameDay(a, b time.Time) bool {
	b = b.In(a.Location())
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
