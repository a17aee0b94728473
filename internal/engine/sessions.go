package engine

import (
	"time"

	"planora-backend/internal/models"
)

// SplitIntoSessions cuts each adjusted slot into fixed-length study sessions
// separated by breaks. Session edges sit on a quarter-hour grid: the first
// session of a slot starts at the slot start rounded forward, and when the
// tail of a slot still holds at least one full session length, a final
// session runs to the slot end rounded backward. Sub-quarter-hour leftovers
// are discarded and sessions never cross slot boundaries.
func SplitIntoSessions(slots []models.TimeSlot, prefs Preferences) []models.StudySession {
	sessionLen := time.Duration(prefs.SessionMinutes) * time.Minute
	breakLen := time.Duration(prefs.BreakMinutes) * time.Minute
	loc := prefs.Location
	if loc == nil {
		loc = time.UTC
	}

	var sessions []models.StudySession
	for _, slot := range slots {
		start := roundToQuarterHour(slot.Start, true, loc)
		end := start.Add(sessionLen)

		for end.Before(slot.End) {
			sessions = append(sessions, models.StudySession{Start: start, End: end, ExamIndex: -1})
			start = end.Add(breakLen)
			end = start.Add(sessionLen)
		}

		// The next full session no longer fits inside the slot, but the gap
		// up to the slot end may still hold one session's worth of time.
		if slot.End.Sub(start) >= sessionLen {
			sessions = append(sessions, models.StudySession{
				Start:     start,
				End:       roundToQuarterHour(slot.End, false, loc),
				ExamIndex: -1,
			})
		}
	}

	return sessions
}

// roundToQuarterHour snaps t's minutes to the 15-minute grid, forward or
// backward. Exact quarter-hour values are left untouched; 46-59 rounds
// forward into the next hour.
func roundToQuarterHour(t time.Time, forward bool, loc *time.Location) time.Time {
	local := t.In(loc)
	minute := local.Minute()

	switch {
	case minute > 0 && minute < 15:
		if forward {
			return withMinute(local, 15)
		}
		return withMinute(local, 0)
	case minute > 15 && minute < 30:
		if forward {
			return withMinute(local, 30)
		}
		return withMinute(local, 15)
	case minute > 30 && minute < 45:
		if forward {
			return withMinute(local, 45)
		}
		return withMinute(local, 30)
	case minute > 45:
		if forward {
			return withMinute(local.Add(time.Hour), 0)
		}
		return withMinute(local, 45)
	}
	return t
}

func withMinute(t time.Time, minute int) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, t.Hour(), minute, t.Second(), 0, t.Location())
}
