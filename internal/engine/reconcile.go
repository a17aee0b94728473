package engine

import "planora-backend/internal/models"

// SessionTitlePrefix prefixes every event the service publishes so its own
// events are recognizable on later scans.
const SessionTitlePrefix = "Planora: "

// SessionTitle renders the calendar title for a study session.
func SessionTitle(courseName string) string {
	return SessionTitlePrefix + courseName
}

// Reconcile diffs freshly computed sessions against the events the previous
// generation published, both sorted ascending by start. An old event exactly
// matching a new session (start, end, rendered title, description) removes
// that session from the create set; an old event overlapping a new session
// without matching it is queued for deletion, and one new session can
// invalidate several stale events. Old events touching no new session are
// left alone.
// The result bounds remote mutations to the delta between generations.
func Reconcile(sessions []models.StudySession, oldEvents []models.CalendarEvent) ([]models.StudySession, []models.CalendarEvent) {
	var toDelete []models.CalendarEvent
	duplicate := make([]bool, len(sessions))

	i, j := 0, 0
	for i < len(sessions) && j < len(oldEvents) {
		session := sessions[i]
		old := oldEvents[j]

		switch {
		case session.End.Before(old.Start):
			// New session entirely precedes the old event; keep it for
			// creation and move on.
			i++

		case session.Start.After(old.End):
			// Old event precedes the session and collides with nothing;
			// it is not ours to delete on this pass.
			j++

		case session.Start.Equal(old.Start) && session.End.Equal(old.End) &&
			SessionTitle(session.CourseName) == old.Summary &&
			session.Description == old.Description:
			duplicate[i] = true
			i++
			j++

		default:
			toDelete = append(toDelete, old)
			j++
		}
	}

	toCreate := make([]models.StudySession, 0, len(sessions))
	for idx := range sessions {
		if !duplicate[idx] {
			toCreate = append(toCreate, sessions[idx])
		}
	}
	return toCreate, toDelete
}
