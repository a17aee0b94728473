package engine

import (
	"fmt"
	"time"

	"planora-backend/internal/models"
)

// AdjustToStudyWindow clips every raw free slot against the learner's
// recurring daily study window. A slot spanning several days (a free weekend,
// say) comes out as one clipped interval per day, so no slot ever covers the
// hours outside the window. Intersections shorter than the minimum session
// length are dropped.
func AdjustToStudyWindow(raw []models.TimeSlot, prefs Preferences) ([]models.TimeSlot, error) {
	startHour, startMinute, err := splitWindowTime(prefs.StudyStartTime)
	if err != nil {
		return nil, err
	}
	endHour, endMinute, err := splitWindowTime(prefs.StudyEndTime)
	if err != nil {
		return nil, err
	}

	loc := prefs.Location
	if loc == nil {
		loc = time.UTC
	}
	minMinutes := prefs.minSessionMinutes()

	var adjusted []models.TimeSlot
	for _, slot := range raw {
		if !slot.Start.Before(slot.End) {
			return nil, fmt.Errorf("%w: slot start %s is not before slot end %s",
				ErrInvalidInput, slot.Start.Format(time.RFC3339), slot.End.Format(time.RFC3339))
		}

		// First occurrence of the window, projected onto the slot's own
		// calendar day in the learner's time zone.
		windowStart := atClockTime(slot.Start, startHour, startMinute, loc)
		windowEnd := atClockTime(slot.Start, endHour, endMinute, loc)

		selectedStart := slot.Start
		if windowStart.After(selectedStart) {
			selectedStart = windowStart
		}
		selectedEnd := slot.End
		if windowEnd.Before(selectedEnd) {
			selectedEnd = windowEnd
		}

		if wholeMinutes(selectedStart, selectedEnd) >= minMinutes {
			adjusted = append(adjusted, models.TimeSlot{Start: selectedStart, End: selectedEnd})
		}

		// Full-day windows while the next day's window still fits inside the
		// slot, then one last partial day up to the slot end. Days advance in
		// fixed 24h steps, not calendar days: across a DST transition the
		// window's clock time shifts by the offset change. Inherited
		// semantics; do not swap in AddDate.
		windowStart = windowStart.Add(24 * time.Hour)
		windowEnd = windowEnd.Add(24 * time.Hour)
		for windowEnd.Before(slot.End) {
			adjusted = append(adjusted, models.TimeSlot{Start: windowStart, End: windowEnd})
			windowStart = windowStart.Add(24 * time.Hour)
			windowEnd = windowEnd.Add(24 * time.Hour)
		}

		if windowStart.Before(slot.End) && wholeMinutes(windowStart, slot.End) >= minMinutes {
			adjusted = append(adjusted, models.TimeSlot{Start: windowStart, End: slot.End})
		}
	}

	return adjusted, nil
}

// splitWindowTime unpacks an hour*100+minute preference integer.
func splitWindowTime(v int) (hour, minute int, err error) {
	hour = v / 100
	minute = v % 100
	if v < 0 || hour > 23 || minute > 59 {
		return 0, 0, fmt.Errorf("%w: %04d is not a valid clock time", ErrInvalidPreference, v)
	}
	return hour, minute, nil
}

// atClockTime pins the given clock time onto t's calendar day in loc.
func atClockTime(t time.Time, hour, minute int, loc *time.Location) time.Time {
	local := t.In(loc)
	year, month, day := local.Date()
	return time.Date(year, month, day, hour, minute, 0, 0, loc)
}

// wholeMinutes is negative when from is after to, which callers rely on to
// reject empty intersections.
func wholeMinutes(from, to time.Time) int {
	return int(to.Sub(from) / time.Minute)
}
