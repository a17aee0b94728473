package gcal

import (
	"context"
	"fmt"
	"log"
	"time"

	"google.golang.org/api/calendar/v3"

	"planora-backend/internal/engine"
	"planora-backend/internal/models"
)

// EnsureStudyCalendar returns the id of the learner's study calendar,
// creating it when it was never made or when the learner deleted it.
func (s *Service) EnsureStudyCalendar(ctx context.Context, user *models.User) (string, error) {
	client, err := s.calendarClient(ctx, user)
	if err != nil {
		return "", err
	}

	if user.StudyCalendarID != "" {
		if _, err := client.Calendars.Get(user.StudyCalendarID).Context(ctx).Do(); err == nil {
			return user.StudyCalendarID, nil
		}
		// Calendar was deleted by the user; fall through and recreate.
	}

	created, err := client.Calendars.Insert(&calendar.Calendar{
		Summary:  s.cfg.StudyCalendarSummary,
		TimeZone: s.cfg.TimeZone,
	}).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to create study calendar: %w", err)
	}

	user.StudyCalendarID = created.Id
	if err := s.tokens.SetStudyCalendarID(ctx, user.ID, created.Id); err != nil {
		return "", fmt.Errorf("failed to persist study calendar id: %w", err)
	}

	return created.Id, nil
}

// Publish applies a reconciled plan delta to the study calendar: stale events
// are deleted, new sessions inserted. Each call gets one retry; a partial
// failure is reported alongside the counts so the next run can re-diff.
func (s *Service) Publish(ctx context.Context, user *models.User, calendarID string, toCreate []models.StudySession, toDelete []models.CalendarEvent) (created, deleted int, err error) {
	client, err := s.calendarClient(ctx, user)
	if err != nil {
		return 0, 0, err
	}

	for _, stale := range toDelete {
		if delErr := withOneRetry(func() error {
			return client.Events.Delete(calendarID, stale.ID).Context(ctx).Do()
		}); delErr != nil {
			return created, deleted, fmt.Errorf("failed to delete stale event %q: %w", stale.Summary, delErr)
		}
		deleted++
	}

	for _, session := range toCreate {
		event := &calendar.Event{
			Summary:     engine.SessionTitle(session.CourseName),
			Description: session.Description,
			Start: &calendar.EventDateTime{
				DateTime: session.Start.Format(time.RFC3339),
				TimeZone: s.cfg.TimeZone,
			},
			End: &calendar.EventDateTime{
				DateTime: session.End.Format(time.RFC3339),
				TimeZone: s.cfg.TimeZone,
			},
		}

		if insErr := withOneRetry(func() error {
			_, callErr := client.Events.Insert(calendarID, event).Context(ctx).Do()
			return callErr
		}); insErr != nil {
			return created, deleted, fmt.Errorf("failed to insert session %q: %w", event.Summary, insErr)
		}
		created++
	}

	return created, deleted, nil
}

func withOneRetry(call func() error) error {
	err := call()
	if err == nil {
		return nil
	}
	log.Printf("calendar call failed, retrying once: %v", err)
	return call()
}
