package models

import (
	"time"

	"github.com/google/uuid"
)

// PlanRun records one completed generation: how many session events were
// created on the study calendar and how many stale ones were removed.
type PlanRun struct {
	ID              uuid.UUID `json:"id"`
	UserID          uuid.UUID `json:"user_id"`
	ScanStart       time.Time `json:"scan_start"`
	ScanEnd         time.Time `json:"scan_end"`
	SessionsCreated int       `json:"sessions_created"`
	EventsDeleted   int       `json:"events_deleted"`
	CreatedAt       time.Time `json:"created_at"`
}

// ScanResult is what /plan/scan returns when the calendars contain full-day
// events the service cannot clear on its own. The client answers with one
// boolean per event on /plan/generate: true means "study during this event",
// which frees the day; false keeps it busy.
type ScanResult struct {
	Generated        bool            `json:"generated"`
	UnresolvedEvents []CalendarEvent `json:"unresolved_events,omitempty"`
	Run              *PlanRun        `json:"run,omitempty"`
}
