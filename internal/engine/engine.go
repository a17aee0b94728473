package engine

import (
	"time"

	"planora-backend/internal/models"
)

// Preferences are the planning knobs one run needs, with the learner's time
// zone already resolved. The engine never consults the wall clock; every
// instant it works with comes from its inputs.
type Preferences struct {
	StudyStartTime    int // hour*100+minute, e.g. 800
	StudyEndTime      int // hour*100+minute, e.g. 2200
	SessionMinutes    int
	BreakMinutes      int
	MinSessionMinutes int
	Location          *time.Location
}

func (p Preferences) minSessionMinutes() int {
	if p.MinSessionMinutes > 0 {
		return p.MinSessionMinutes
	}
	return p.SessionMinutes
}

// Plan is the outcome of one generation: the sessions that still need to be
// published and the previously published events that became stale.
type Plan struct {
	Sessions []models.StudySession  `json:"sessions"`
	ToCreate []models.StudySession  `json:"to_create"`
	ToDelete []models.CalendarEvent `json:"to_delete"`
}

// BuildPlan runs the whole pipeline for one learner: free-slot extraction,
// study-window adjustment, session segmentation, proportional budget
// allocation, course and subject assignment, and reconciliation against the
// previous generation's published events. Pure computation; the caller owns
// all I/O.
func BuildPlan(busy []models.CalendarEvent, exams []models.Exam, oldEvents []models.CalendarEvent,
	scanStart, scanEnd time.Time, prefs Preferences) (*Plan, error) {

	if len(exams) == 0 {
		return nil, ErrEmptyExamSet
	}

	free, err := FreeSlots(busy, scanStart, scanEnd, exams)
	if err != nil {
		return nil, err
	}

	adjusted, err := AdjustToStudyWindow(free, prefs)
	if err != nil {
		return nil, err
	}

	sessions := SplitIntoSessions(adjusted, prefs)

	proportions, err := ExamProportions(exams)
	if err != nil {
		return nil, err
	}
	budgets := DistributeSessions(proportions, len(sessions))

	assigned := AssignCourses(sessions, budgets, exams)
	AssignSubjects(assigned, exams)

	toCreate, toDelete := Reconcile(assigned, oldEvents)

	return &Plan{Sessions: assigned, ToCreate: toCreate, ToDelete: toDelete}, nil
}
