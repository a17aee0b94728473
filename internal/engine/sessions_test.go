package engine

import (
	"testing"
	"time"

	"planora-backend/internal/models"
)

func TestRoundToQuarterHour(t *testing.T) {
	tests := []struct {
		name    string
		minute  int
		forward bool
		want    time.Time
	}{
		{"1-14 forward", 7, true, at(0, 10, 15)},
		{"1-14 backward", 7, false, at(0, 10, 0)},
		{"16-29 forward", 20, true, at(0, 10, 30)},
		{"16-29 backward", 20, false, at(0, 10, 15)},
		{"31-44 forward", 40, true, at(0, 10, 45)},
		{"31-44 backward", 40, false, at(0, 10, 30)},
		{"46-59 forward crosses hour", 50, true, at(0, 11, 0)},
		{"46-59 backward", 50, false, at(0, 10, 45)},
		{"exact quarter untouched forward", 45, true, at(0, 10, 45)},
		{"exact quarter untouched backward", 30, false, at(0, 10, 30)},
		{"on the hour untouched", 0, true, at(0, 10, 0)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := roundToQuarterHour(at(0, 10, tc.minute), tc.forward, time.UTC)
			if !got.Equal(tc.want) {
				t.Errorf("Expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestSplitIntoSessions_Cadence(t *testing.T) {
	// 14-hour day, 60-minute sessions on a 75-minute cadence.
	slots := []models.TimeSlot{{Start: at(0, 8, 0), End: at(0, 22, 0)}}

	sessions := SplitIntoSessions(slots, testPrefs())

	if len(sessions) != 11 {
		t.Fatalf("Expected 11 sessions, got %d", len(sessions))
	}
	if !sessions[0].Start.Equal(at(0, 8, 0)) || !sessions[0].End.Equal(at(0, 9, 0)) {
		t.Errorf("First session: expected [08:00, 09:00), got [%v, %v)", sessions[0].Start, sessions[0].End)
	}
	if !sessions[1].Start.Equal(at(0, 9, 15)) {
		t.Errorf("Second session: expected start 09:15, got %v", sessions[1].Start)
	}
	if !sessions[10].End.Equal(at(0, 21, 30)) {
		t.Errorf("Last session: expected end 21:30, got %v", sessions[10].End)
	}
}

func TestSplitIntoSessions_RoundsSlotStartForward(t *testing.T) {
	slots := []models.TimeSlot{{Start: at(0, 8, 5), End: at(0, 10, 30)}}

	sessions := SplitIntoSessions(slots, testPrefs())

	if len(sessions) != 2 {
		t.Fatalf("Expected 2 sessions, got %d", len(sessions))
	}
	if !sessions[0].Start.Equal(at(0, 8, 15)) {
		t.Errorf("Expected first session to start at 08:15, got %v", sessions[0].Start)
	}
}

func TestSplitIntoSessions_DiscardsShortLeftover(t *testing.T) {
	// 08:00-10:10: one full session fits, the 55-minute leftover after the
	// break does not.
	slots := []models.TimeSlot{{Start: at(0, 8, 0), End: at(0, 10, 10)}}

	sessions := SplitIntoSessions(slots, testPrefs())

	if len(sessions) != 1 {
		t.Fatalf("Expected 1 session, got %d: %v", len(sessions), sessions)
	}
}

func TestSplitIntoSessions_Properties(t *testing.T) {
	prefs := testPrefs()
	slots := []models.TimeSlot{
		{Start: at(0, 8, 5), End: at(0, 14, 50)},
		{Start: at(1, 8, 0), End: at(1, 22, 0)},
		{Start: at(2, 9, 40), End: at(2, 11, 0)},
	}

	sessions := SplitIntoSessions(slots, prefs)
	sessionLen := time.Duration(prefs.SessionMinutes) * time.Minute

	for i, s := range sessions {
		if s.End.Sub(s.Start) < sessionLen {
			t.Errorf("Session %d shorter than %v: [%v, %v)", i, sessionLen, s.Start, s.End)
		}
		if i > 0 && s.Start.Before(sessions[i-1].End) {
			t.Errorf("Sessions %d and %d overlap", i-1, i)
		}
		inSlot := false
		for _, slot := range slots {
			if !s.Start.Before(slot.Start) && !s.End.After(slot.End) {
				inSlot = true
				break
			}
		}
		if !inSlot {
			t.Errorf("Session %d crosses a slot boundary: [%v, %v)", i, s.Start, s.End)
		}
	}
}
