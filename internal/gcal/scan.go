package gcal

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"google.golang.org/api/calendar/v3"

	"planora-backend/internal/models"
)

// ScanOutput is everything one pass over the learner's calendars yields,
// each list sorted ascending by start.
type ScanOutput struct {
	Busy      []models.CalendarEvent
	FullDay   []models.CalendarEvent
	OldEvents []models.CalendarEvent
	Exams     []models.Exam
}

// Scan walks every calendar in the learner's list over [start, end) and
// classifies what it finds. The study calendar's own events are collected
// separately for reconciliation and never count as busy time; events in the
// exams calendar whose summary carries the exam keyword are matched against
// the course catalog.
func (s *Service) Scan(ctx context.Context, user *models.User, start, end time.Time, courses []models.Course, loc *time.Location) (*ScanOutput, error) {
	client, err := s.calendarClient(ctx, user)
	if err != nil {
		return nil, err
	}

	calendarList, err := client.CalendarList.List().Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list calendars: %w", err)
	}

	out := &ScanOutput{}

	for _, entry := range calendarList.Items {
		events, err := client.Events.List(entry.Id).
			TimeMin(start.Format(time.RFC3339)).
			TimeMax(end.Format(time.RFC3339)).
			SingleEvents(true).
			OrderBy("startTime").
			Context(ctx).
			Do()
		if err != nil {
			return nil, fmt.Errorf("failed to list events of calendar %q: %w", entry.Summary, err)
		}

		if entry.Summary == s.cfg.StudyCalendarSummary {
			for _, event := range events.Items {
				converted, ok := convertEvent(event, entry.Id, loc)
				if ok {
					out.OldEvents = append(out.OldEvents, converted)
				}
			}
			continue
		}

		if entry.Summary == s.cfg.ExamsCalendarName {
			for _, event := range events.Items {
				if event.Start == nil || !strings.Contains(event.Summary, s.cfg.ExamKeyword) {
					continue
				}
				course, found := matchCourse(event.Summary, courses)
				if !found {
					continue
				}
				at, parseErr := time.Parse(time.RFC3339, event.Start.DateTime)
				if parseErr != nil {
					continue
				}
				out.Exams = append(out.Exams, models.Exam{Course: course, DateTime: at})
			}
		}

		for _, event := range events.Items {
			converted, ok := convertEvent(event, entry.Id, loc)
			if !ok {
				continue
			}
			if converted.AllDay {
				out.FullDay = append(out.FullDay, converted)
			} else {
				out.Busy = append(out.Busy, converted)
			}
		}
	}

	sortByStart(out.Busy)
	sortByStart(out.FullDay)
	sortByStart(out.OldEvents)
	sort.Slice(out.Exams, func(i, j int) bool { return out.Exams[i].DateTime.Before(out.Exams[j].DateTime) })

	return out, nil
}

// matchCourse recovers a catalog course from an exam event summary. Summaries
// put the course name last, so words are accumulated from the end until the
// concatenation matches a catalog name.
func matchCourse(summary string, courses []models.Course) (models.Course, bool) {
	words := strings.Fields(summary)
	candidate := ""

	for i := len(words) - 1; i >= 0; i-- {
		candidate = strings.TrimSpace(words[i] + " " + candidate)
		for _, course := range courses {
			if course.Name == candidate {
				return course, true
			}
		}
	}

	return models.Course{}, false
}

func convertEvent(event *calendar.Event, calendarID string, loc *time.Location) (models.CalendarEvent, bool) {
	if event.Start == nil || event.End == nil {
		return models.CalendarEvent{}, false
	}

	converted := models.CalendarEvent{
		ID:          event.Id,
		CalendarID:  calendarID,
		Summary:     event.Summary,
		Description: event.Description,
	}

	if event.Start.Date != "" {
		start, err := time.ParseInLocation("2006-01-02", event.Start.Date, loc)
		if err != nil {
			return models.CalendarEvent{}, false
		}
		end, err := time.ParseInLocation("2006-01-02", event.End.Date, loc)
		if err != nil {
			end = start.AddDate(0, 0, 1)
		}
		converted.AllDay = true
		converted.Date = event.Start.Date
		converted.Start = start
		converted.End = end
		return converted, true
	}

	start, err := time.Parse(time.RFC3339, event.Start.DateTime)
	if err != nil {
		return models.CalendarEvent{}, false
	}
	end, err := time.Parse(time.RFC3339, event.End.DateTime)
	if err != nil {
		return models.CalendarEvent{}, false
	}

	converted.Start = start
	converted.End = end
	return converted, true
}

func sortByStart(events []models.CalendarEvent) {
	sort.Slice(events, func(i, j int) bool { return events[i].Start.Before(events[j].Start) })
}
