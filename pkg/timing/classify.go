package timing

import (
	"time"

	"botanica/entities"
)

// Classify maps a task's date window (or fallback month) and a caller-supplied
// clock to a Bucket. Pure: never reads the system clock, so the bucket of a
// task migrates day by day without any write to the row.
func Classify(t *entities.CareTask, now time.Time) Bucket {
	today := truncateDay(now)

	if t.WindowStart != nil && t.WindowEnd != nil {
		start := truncateDay(*t.WindowStart)
		end := truncateDay(*t.WindowEnd)

		switch {
		case end.Before(today):
			return Overdue
		case !start.After(today.AddDate(0, 0, 1)) && !end.Before(today):
			return Today
		case !start.After(today.AddDate(0, 0, 7)):
			return ThisWeek
		case !start.After(lastDayOfMonth(today)):
			return ThisMonth
		default:
			return Upcoming
		}
	}

	// Month-only fallback. This path can never yield Today or ThisWeek;
	// the window-based path is the only source of those buckets.
	switch m := int(today.Month()); {
	case t.ScheduledMonth < m:
		return Overdue
	case t.ScheduledMonth == m:
		return ThisMonth
	default:
		return Upcoming
	}
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func lastDayOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, t.Location())
}
