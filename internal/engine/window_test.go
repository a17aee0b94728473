package engine

import (
	"errors"
	"testing"
	"time"

	"planora-backend/internal/models"
)

func testPrefs() Preferences {
	return Preferences{
		StudyStartTime: 800,
		StudyEndTime:   2200,
		SessionMinutes: 60,
		BreakMinutes:   15,
		Location:       time.UTC,
	}
}

func TestAdjustToStudyWindow_ClipsSingleDaySlot(t *testing.T) {
	slots := []models.TimeSlot{{Start: at(0, 6, 0), End: at(0, 23, 30)}}

	adjusted, err := AdjustToStudyWindow(slots, testPrefs())
	if err != nil {
		t.Fatalf("AdjustToStudyWindow failed: %v", err)
	}

	if len(adjusted) != 1 {
		t.Fatalf("Expected 1 slot, got %d", len(adjusted))
	}
	if !adjusted[0].Start.Equal(at(0, 8, 0)) || !adjusted[0].End.Equal(at(0, 22, 0)) {
		t.Errorf("Expected [08:00, 22:00), got [%v, %v)", adjusted[0].Start, adjusted[0].End)
	}
}

func TestAdjustToStudyWindow_SplitsMultiDayGap(t *testing.T) {
	// Free from Friday 15:00 until Monday 09:00: expect a partial Friday, two
	// full weekend days and a partial Monday.
	slots := []models.TimeSlot{{Start: at(0, 15, 0), End: at(3, 9, 0)}}

	adjusted, err := AdjustToStudyWindow(slots, testPrefs())
	if err != nil {
		t.Fatalf("AdjustToStudyWindow failed: %v", err)
	}

	expected := []models.TimeSlot{
		{Start: at(0, 15, 0), End: at(0, 22, 0)},
		{Start: at(1, 8, 0), End: at(1, 22, 0)},
		{Start: at(2, 8, 0), End: at(2, 22, 0)},
		{Start: at(3, 8, 0), End: at(3, 9, 0)},
	}
	if len(adjusted) != len(expected) {
		t.Fatalf("Expected %d slots, got %d: %v", len(expected), len(adjusted), adjusted)
	}
	for i, want := range expected {
		if !adjusted[i].Start.Equal(want.Start) || !adjusted[i].End.Equal(want.End) {
			t.Errorf("Slot %d: expected [%v, %v), got [%v, %v)",
				i, want.Start, want.End, adjusted[i].Start, adjusted[i].End)
		}
	}
}

func TestAdjustToStudyWindow_DropsShortIntersections(t *testing.T) {
	// 21:30-22:00 is inside the window but shorter than one session.
	slots := []models.TimeSlot{{Start: at(0, 21, 30), End: at(0, 23, 0)}}

	adjusted, err := AdjustToStudyWindow(slots, testPrefs())
	if err != nil {
		t.Fatalf("AdjustToStudyWindow failed: %v", err)
	}
	if len(adjusted) != 0 {
		t.Errorf("Expected no slots, got %v", adjusted)
	}
}

func TestAdjustToStudyWindow_SlotOutsideWindow(t *testing.T) {
	// Entirely inside sleeping hours.
	slots := []models.TimeSlot{{Start: at(0, 23, 0), End: at(1, 5, 0)}}

	adjusted, err := AdjustToStudyWindow(slots, testPrefs())
	if err != nil {
		t.Fatalf("AdjustToStudyWindow failed: %v", err)
	}
	if len(adjusted) != 0 {
		t.Errorf("Expected no slots, got %v", adjusted)
	}
}

func TestAdjustToStudyWindow_MinuteGranularWindow(t *testing.T) {
	prefs := testPrefs()
	prefs.StudyStartTime = 830
	prefs.StudyEndTime = 2145

	slots := []models.TimeSlot{{Start: at(0, 7, 0), End: at(0, 23, 0)}}

	adjusted, err := AdjustToStudyWindow(slots, prefs)
	if err != nil {
		t.Fatalf("AdjustToStudyWindow failed: %v", err)
	}
	if len(adjusted) != 1 {
		t.Fatalf("Expected 1 slot, got %d", len(adjusted))
	}
	if !adjusted[0].Start.Equal(at(0, 8, 30)) || !adjusted[0].End.Equal(at(0, 21, 45)) {
		t.Errorf("Expected [08:30, 21:45), got [%v, %v)", adjusted[0].Start, adjusted[0].End)
	}
}

func TestAdjustToStudyWindow_InvalidPreferences(t *testing.T) {
	tests := []struct {
		name  string
		start int
		end   int
	}{
		{"hour too large", 2400, 2200},
		{"minute too large", 800, 2171},
		{"negative", -100, 2200},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			prefs := testPrefs()
			prefs.StudyStartTime = tc.start
			prefs.StudyEndTime = tc.end

			_, err := AdjustToStudyWindow([]models.TimeSlot{{Start: at(0, 8, 0), End: at(0, 12, 0)}}, prefs)
			if !errors.Is(err, ErrInvalidPreference) {
				t.Errorf("Expected ErrInvalidPreference, got %v", err)
			}
		})
	}
}

func TestAdjustToStudyWindow_DegenerateSlot(t *testing.T) {
	_, err := AdjustToStudyWindow([]models.TimeSlot{{Start: at(0, 12, 0), End: at(0, 12, 0)}}, testPrefs())
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput, got %v", err)
	}
}

func TestAdjustToStudyWindow_NeverLeavesWindow(t *testing.T) {
	prefs := testPrefs()
	slots := []models.TimeSlot{
		{Start: at(0, 5, 0), End: at(1, 23, 0)},
		{Start: at(2, 9, 30), End: at(4, 10, 0)},
	}

	adjusted, err := AdjustToStudyWindow(slots, prefs)
	if err != nil {
		t.Fatalf("AdjustToStudyWindow failed: %v", err)
	}

	for _, s := range adjusted {
		startClock := s.Start.Hour()*100 + s.Start.Minute()
		endClock := s.End.Hour()*100 + s.End.Minute()
		if startClock < prefs.StudyStartTime {
			t.Errorf("Slot starts before the daily window: %v", s.Start)
		}
		if endClock > prefs.StudyEndTime {
			t.Errorf("Slot ends after the daily window: %v", s.End)
		}
		if s.Minutes() < prefs.SessionMinutes {
			t.Errorf("Slot shorter than the minimum session: %v", s)
		}
	}
}
