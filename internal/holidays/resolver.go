package holidays

import (
	"context"
	"errors"
	"fmt"

	"planora-backend/internal/models"
)

// ErrDecisionCountMismatch reports a decisions slice that does not cover
// every unresolved full-day event.
var ErrDecisionCountMismatch = errors.New("decisions do not cover every unresolved event")

// Resolver decides what full-day calendar events mean for a plan run. Events
// on public holidays are settled automatically from the learner's preference;
// the rest need a per-event decision from the learner.
type Resolver struct {
	client  *Client
	country string
}

func NewResolver(client *Client, country string) *Resolver {
	return &Resolver{client: client, country: country}
}

// Resolve splits full-day events into those that stay busy and those the
// caller has to decide on. A full-day event on a holiday date is dropped when
// the learner studies on holidays and kept busy otherwise; every other
// full-day event is returned as unresolved.
func (r *Resolver) Resolve(ctx context.Context, fullDay []models.CalendarEvent, studyOnHolidays bool) (busy, unresolved []models.CalendarEvent, err error) {
	if len(fullDay) == 0 {
		return nil, nil, nil
	}

	holidaySet, err := r.holidaySetFor(ctx, fullDay)
	if err != nil {
		return nil, nil, err
	}

	for _, event := range fullDay {
		if _, isHoliday := holidaySet[event.Date]; isHoliday {
			if !studyOnHolidays {
				busy = append(busy, event)
			}
			continue
		}
		unresolved = append(unresolved, event)
	}

	return busy, unresolved, nil
}

func (r *Resolver) holidaySetFor(ctx context.Context, events []models.CalendarEvent) (map[string]struct{}, error) {
	years := map[int]struct{}{}
	for _, event := range events {
		if !event.Start.IsZero() {
			years[event.Start.Year()] = struct{}{}
		}
	}

	merged := map[string]struct{}{}
	for year := range years {
		dates, err := r.client.HolidayDates(ctx, r.country, year)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve holidays for %d: %w", year, err)
		}
		for d := range dates {
			merged[d] = struct{}{}
		}
	}

	return merged, nil
}

// ApplyDecisions folds the learner's per-event answers over the unresolved
// list, in order. A true decision means the learner studies through the
// event, freeing the day; false keeps the event busy.
func ApplyDecisions(unresolved []models.CalendarEvent, decisions []bool) ([]models.CalendarEvent, error) {
	if len(decisions) < len(unresolved) {
		return nil, ErrDecisionCountMismatch
	}

	var busy []models.CalendarEvent
	for i, event := range unresolved {
		if !decisions[i] {
			busy = append(busy, event)
		}
	}
	return busy, nil
}
