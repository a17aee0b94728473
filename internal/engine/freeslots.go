package engine

import (
	"fmt"
	"time"

	"planora-backend/internal/models"
)

// FreeSlots extracts the gaps between the learner's busy events inside the
// scan window [scanStart, scanEnd). The busy list must be sorted ascending by
// start, already filtered to timed events from calendars other than the study
// calendar. The exam list (ascending) only tells the extractor when to stop:
// free time past the last exam is useless, so scanning ends once a gap closes
// exactly at the last exam's instant.
func FreeSlots(busy []models.CalendarEvent, scanStart, scanEnd time.Time, exams []models.Exam) ([]models.TimeSlot, error) {
	if !scanStart.Before(scanEnd) {
		return nil, fmt.Errorf("%w: scan start %s is not before scan end %s",
			ErrInvalidInput, scanStart.Format(time.RFC3339), scanEnd.Format(time.RFC3339))
	}
	if len(exams) == 0 {
		return nil, ErrEmptyExamSet
	}

	if len(busy) == 0 {
		return []models.TimeSlot{{Start: scanStart, End: scanEnd}}, nil
	}

	var slots []models.TimeSlot
	if scanStart.Before(busy[0].Start) {
		slots = append(slots, models.TimeSlot{Start: scanStart, End: busy[0].Start})
	}

	lastExamAt := exams[len(exams)-1].DateTime
	for i := 0; i+1 < len(busy); i++ {
		endOfCurrent := busy[i].End
		startOfNext := busy[i+1].Start
		if endOfCurrent.Before(startOfNext) {
			slots = append(slots, models.TimeSlot{Start: endOfCurrent, End: startOfNext})
			if startOfNext.Equal(lastExamAt) {
				// Free time past the last exam is useless.
				return slots, nil
			}
		}
	}

	// Tail gap after the last busy event, truncated at the last exam.
	tail := scanEnd
	if lastExamAt.Before(tail) {
		tail = lastExamAt
	}
	if lastEnd := busy[len(busy)-1].End; lastEnd.Before(tail) {
		slots = append(slots, models.TimeSlot{Start: lastEnd, End: tail})
	}

	return slots, nil
}
