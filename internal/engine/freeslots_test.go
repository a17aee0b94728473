package engine

import (
	"errors"
	"testing"
	"time"

	"planora-backend/internal/models"
)

// Monday 2026-03-02, the base day for all engine tests.
var testDay = time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)

// at returns a timestamp on testDay+dayOffset at the given clock time.
func at(dayOffset, hour, minute int) time.Time {
	return testDay.AddDate(0, 0, dayOffset).Add(
		time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
}

func busyEvent(start, end time.Time) models.CalendarEvent {
	return models.CalendarEvent{Summary: "busy", Start: start, End: end}
}

func examFor(course models.Course, dateTime time.Time) models.Exam {
	return models.Exam{Course: course, DateTime: dateTime}
}

var testCourse = models.Course{
	Name:                       "Operating Systems",
	DifficultyLevel:            2,
	Credits:                    3,
	RecommendedStudyTime:       5,
	Subjects:                   []string{"A", "B"},
	SubjectsPracticePercentage: 100,
}

func TestFreeSlots_EmptyBusyList(t *testing.T) {
	exams := []models.Exam{examFor(testCourse, at(2, 9, 0))}

	slots, err := FreeSlots(nil, at(0, 8, 0), at(2, 9, 0), exams)
	if err != nil {
		t.Fatalf("FreeSlots failed: %v", err)
	}

	if len(slots) != 1 {
		t.Fatalf("Expected 1 slot, got %d", len(slots))
	}
	if !slots[0].Start.Equal(at(0, 8, 0)) || !slots[0].End.Equal(at(2, 9, 0)) {
		t.Errorf("Expected the whole scan window, got [%v, %v)", slots[0].Start, slots[0].End)
	}
}

func TestFreeSlots_GapsBetweenEvents(t *testing.T) {
	busy := []models.CalendarEvent{
		busyEvent(at(0, 9, 0), at(0, 10, 0)),
		busyEvent(at(0, 14, 0), at(0, 15, 0)),
	}
	exams := []models.Exam{examFor(testCourse, at(2, 9, 0))}

	slots, err := FreeSlots(busy, at(0, 8, 0), at(2, 9, 0), exams)
	if err != nil {
		t.Fatalf("FreeSlots failed: %v", err)
	}

	expected := []models.TimeSlot{
		{Start: at(0, 8, 0), End: at(0, 9, 0)},
		{Start: at(0, 10, 0), End: at(0, 14, 0)},
		{Start: at(0, 15, 0), End: at(2, 9, 0)},
	}
	if len(slots) != len(expected) {
		t.Fatalf("Expected %d slots, got %d: %v", len(expected), len(slots), slots)
	}
	for i, want := range expected {
		if !slots[i].Start.Equal(want.Start) || !slots[i].End.Equal(want.End) {
			t.Errorf("Slot %d: expected [%v, %v), got [%v, %v)",
				i, want.Start, want.End, slots[i].Start, slots[i].End)
		}
	}
}

func TestFreeSlots_NoLeadingGapWhenEventStartsAtScanStart(t *testing.T) {
	busy := []models.CalendarEvent{
		busyEvent(at(0, 8, 0), at(0, 10, 0)),
		busyEvent(at(0, 12, 0), at(0, 13, 0)),
	}
	exams := []models.Exam{examFor(testCourse, at(1, 9, 0))}

	slots, err := FreeSlots(busy, at(0, 8, 0), at(1, 9, 0), exams)
	if err != nil {
		t.Fatalf("FreeSlots failed: %v", err)
	}

	if len(slots) == 0 || !slots[0].Start.Equal(at(0, 10, 0)) {
		t.Errorf("Expected first slot to start at 10:00, got %v", slots)
	}
}

func TestFreeSlots_StopsAtLastExam(t *testing.T) {
	// The gap between the second and third event closes exactly at the exam;
	// nothing after it matters.
	busy := []models.CalendarEvent{
		busyEvent(at(0, 9, 0), at(0, 10, 0)),
		busyEvent(at(0, 12, 0), at(0, 13, 0)),
		busyEvent(at(1, 9, 0), at(1, 11, 0)),
		busyEvent(at(1, 14, 0), at(1, 15, 0)),
	}
	exams := []models.Exam{examFor(testCourse, at(1, 9, 0))}

	slots, err := FreeSlots(busy, at(0, 8, 0), at(2, 0, 0), exams)
	if err != nil {
		t.Fatalf("FreeSlots failed: %v", err)
	}

	last := slots[len(slots)-1]
	if !last.End.Equal(at(1, 9, 0)) {
		t.Errorf("Expected scan to stop at the exam instant, last slot ends %v", last.End)
	}
}

func TestFreeSlots_TailTruncatedAtLastExam(t *testing.T) {
	busy := []models.CalendarEvent{busyEvent(at(0, 9, 0), at(0, 10, 0))}
	exams := []models.Exam{examFor(testCourse, at(1, 9, 0))}

	slots, err := FreeSlots(busy, at(0, 8, 0), at(3, 0, 0), exams)
	if err != nil {
		t.Fatalf("FreeSlots failed: %v", err)
	}

	last := slots[len(slots)-1]
	if !last.Start.Equal(at(0, 10, 0)) || !last.End.Equal(at(1, 9, 0)) {
		t.Errorf("Expected tail slot [day0 10:00, day1 09:00), got [%v, %v)", last.Start, last.End)
	}
}

func TestFreeSlots_InvalidScanWindow(t *testing.T) {
	exams := []models.Exam{examFor(testCourse, at(1, 9, 0))}

	_, err := FreeSlots(nil, at(1, 0, 0), at(0, 0, 0), exams)
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput, got %v", err)
	}

	_, err = FreeSlots(nil, at(1, 0, 0), at(1, 0, 0), exams)
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput for empty window, got %v", err)
	}
}

func TestFreeSlots_SortedAndNonOverlapping(t *testing.T) {
	busy := []models.CalendarEvent{
		busyEvent(at(0, 9, 0), at(0, 10, 0)),
		busyEvent(at(0, 10, 0), at(0, 11, 0)), // back to back, no gap
		busyEvent(at(0, 13, 0), at(0, 14, 0)),
	}
	exams := []models.Exam{examFor(testCourse, at(1, 9, 0))}

	slots, err := FreeSlots(busy, at(0, 8, 0), at(1, 9, 0), exams)
	if err != nil {
		t.Fatalf("FreeSlots failed: %v", err)
	}

	for i := 1; i < len(slots); i++ {
		if slots[i].Start.Before(slots[i-1].End) {
			t.Errorf("Slots %d and %d overlap: %v %v", i-1, i, slots[i-1], slots[i])
		}
	}

	// Union of free slots plus busy intervals covers the window up to the exam.
	var covered time.Duration
	for _, s := range slots {
		covered += s.End.Sub(s.Start)
	}
	for _, b := range busy {
		covered += b.End.Sub(b.Start)
	}
	if want := at(1, 9, 0).Sub(at(0, 8, 0)); covered != want {
		t.Errorf("Expected union to cover %v, got %v", want, covered)
	}
}
