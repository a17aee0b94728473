package models

import "time"

// TimeSlot is a half-open interval [Start, End). Slots produced by the
// planning pipeline are always sorted ascending by Start and non-overlapping.
type TimeSlot struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Minutes returns the slot length in whole minutes.
func (s TimeSlot) Minutes() int {
	return int(s.End.Sub(s.Start) / time.Minute)
}

// Exam ties a catalog course to the instant its exam takes place.
// Callers hand exams to the engine sorted ascending by DateTime.
type Exam struct {
	Course   Course    `json:"course"`
	DateTime time.Time `json:"date_time"`
}

// StudySession is one block of study time. CourseName, ExamIndex and
// Description are filled in by the assignment stages; ExamIndex refers to the
// position of the exam in the run's ascending exam list and is -1 until a
// course has been assigned.
type StudySession struct {
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	CourseName  string    `json:"course_name,omitempty"`
	ExamIndex   int       `json:"-"`
	Description string    `json:"description,omitempty"`
}

// CalendarEvent is a busy event fetched from one of the learner's remote
// calendars. All-day events carry Date (ISO yyyy-mm-dd) instead of timed
// Start/End instants.
type CalendarEvent struct {
	ID          string    `json:"id"`
	CalendarID  string    `json:"calendar_id"`
	Summary     string    `json:"summary"`
	Description string    `json:"description,omitempty"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	AllDay      bool      `json:"all_day"`
	Date        string    `json:"date,omitempty"`
}
