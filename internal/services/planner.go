package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"planora-backend/internal/engine"
	"planora-backend/internal/gcal"
	"planora-backend/internal/holidays"
	"planora-backend/internal/models"
	"planora-backend/internal/repository"
)

const planLockTTL = 2 * time.Minute

// PlannerService drives a whole plan run: scanning the learner's calendars,
// settling full-day events, running the scheduling engine and publishing the
// resulting delta to the study calendar.
type PlannerService struct {
	userRepo   *repository.UserRepo
	courseRepo *repository.CourseRepo
	runRepo    *repository.PlanRunRepo
	calendar   *gcal.Service
	resolver   *holidays.Resolver
	redis      *redis.Client
	pubsub     *redis.Client
}

func NewPlannerService(
	userRepo *repository.UserRepo,
	courseRepo *repository.CourseRepo,
	runRepo *repository.PlanRunRepo,
	calendar *gcal.Service,
	resolver *holidays.Resolver,
	redisClient *redis.Client,
	pubsubClient *redis.Client,
) *PlannerService {
	return &PlannerService{
		userRepo:   userRepo,
		courseRepo: courseRepo,
		runRepo:    runRepo,
		calendar:   calendar,
		resolver:   resolver,
		redis:      redisClient,
		pubsub:     pubsubClient,
	}
}

// Scan inspects the learner's calendars over [start, end). When every
// full-day event can be settled automatically it generates the plan right
// away; otherwise the unresolved events come back for per-event decisions.
func (s *PlannerService) Scan(ctx context.Context, userID uuid.UUID, start, end time.Time) (*models.ScanResult, error) {
	if !start.Before(end) {
		return nil, &ValidationError{Fields: map[string]string{"start": "Scan start must precede scan end"}}
	}

	unlock, err := s.acquireLock(ctx, userID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	user, scan, loc, err := s.scanCalendars(ctx, userID, start, end)
	if err != nil {
		return nil, err
	}

	holidayBusy, unresolved, err := s.resolver.Resolve(ctx, scan.FullDay, user.Preferences.StudyOnHolidays)
	if err != nil {
		return nil, err
	}

	if len(unresolved) > 0 {
		return &models.ScanResult{Generated: false, UnresolvedEvents: unresolved}, nil
	}

	return s.generate(ctx, user, scan, holidayBusy, start, end, loc)
}

// Generate re-scans and runs the engine, folding the learner's answers for
// the previously unresolved full-day events into the busy set.
func (s *PlannerService) Generate(ctx context.Context, userID uuid.UUID, start, end time.Time, decisions []bool) (*models.ScanResult, error) {
	if !start.Before(end) {
		return nil, &ValidationError{Fields: map[string]string{"start": "Scan start must precede scan end"}}
	}

	unlock, err := s.acquireLock(ctx, userID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	user, scan, loc, err := s.scanCalendars(ctx, userID, start, end)
	if err != nil {
		return nil, err
	}

	holidayBusy, unresolved, err := s.resolver.Resolve(ctx, scan.FullDay, user.Preferences.StudyOnHolidays)
	if err != nil {
		return nil, err
	}

	decided, err := holidays.ApplyDecisions(unresolved, decisions)
	if err != nil {
		if errors.Is(err, holidays.ErrDecisionCountMismatch) {
			return nil, &ValidationError{Fields: map[string]string{
				"decisions": fmt.Sprintf("Expected %d decisions, got %d", len(unresolved), len(decisions)),
			}}
		}
		return nil, err
	}

	return s.generate(ctx, user, scan, append(holidayBusy, decided...), start, end, loc)
}

// ListRuns returns the learner's recent plan runs, newest first.
func (s *PlannerService) ListRuns(ctx context.Context, userID uuid.UUID, limit int) ([]models.PlanRun, error) {
	return s.runRepo.ListByUser(ctx, userID, limit)
}

func (s *PlannerService) scanCalendars(ctx context.Context, userID uuid.UUID, start, end time.Time) (*models.User, *gcal.ScanOutput, *time.Location, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, nil, nil, err
	}

	loc, err := time.LoadLocation(user.Preferences.TimeZone)
	if err != nil {
		return nil, nil, nil, &ValidationError{Fields: map[string]string{"time_zone": "Unknown time zone"}}
	}

	courses, err := s.courseRepo.List(ctx)
	if err != nil {
		return nil, nil, nil, err
	}

	scan, err := s.calendar.Scan(ctx, user, start, end, courses, loc)
	if err != nil {
		return nil, nil, nil, err
	}

	if len(scan.Exams) == 0 {
		return nil, nil, nil, &ConflictError{Message: "No upcoming exams found in the exams calendar"}
	}

	return user, scan, loc, nil
}

func (s *PlannerService) generate(ctx context.Context, user *models.User, scan *gcal.ScanOutput, extraBusy []models.CalendarEvent, start, end time.Time, loc *time.Location) (*models.ScanResult, error) {
	busy := make([]models.CalendarEvent, 0, len(scan.Busy)+len(extraBusy))
	busy = append(busy, scan.Busy...)
	busy = append(busy, extraBusy...)
	sort.Slice(busy, func(i, j int) bool { return busy[i].Start.Before(busy[j].Start) })

	prefs := engine.Preferences{
		StudyStartTime:    user.Preferences.StudyStartTime,
		StudyEndTime:      user.Preferences.StudyEndTime,
		SessionMinutes:    user.Preferences.SessionMinutes,
		BreakMinutes:      user.Preferences.BreakMinutes,
		MinSessionMinutes: user.Preferences.MinSessionMinutes,
		Location:          loc,
	}

	plan, err := engine.BuildPlan(busy, scan.Exams, scan.OldEvents, start, end, prefs)
	if err != nil {
		switch {
		case errors.Is(err, engine.ErrEmptyExamSet):
			return nil, &ConflictError{Message: "No upcoming exams found in the exams calendar"}
		case errors.Is(err, engine.ErrInvalidPreference), errors.Is(err, engine.ErrInvalidInput):
			return nil, &ValidationError{Fields: map[string]string{"preferences": err.Error()}}
		}
		return nil, err
	}

	calendarID, err := s.calendar.EnsureStudyCalendar(ctx, user)
	if err != nil {
		return nil, err
	}

	created, deleted, err := s.calendar.Publish(ctx, user, calendarID, plan.ToCreate, plan.ToDelete)
	if err != nil {
		// Partial publishes are safe: the next run re-diffs the calendar.
		return nil, fmt.Errorf("publish stopped after %d created, %d deleted: %w", created, deleted, err)
	}

	run := &models.PlanRun{
		UserID:          user.ID,
		ScanStart:       start,
		ScanEnd:         end,
		SessionsCreated: created,
		EventsDeleted:   deleted,
	}
	if err := s.runRepo.Create(ctx, run); err != nil {
		return nil, err
	}

	s.notify(ctx, user.ID, run)

	return &models.ScanResult{Generated: true, Run: run}, nil
}

func (s *PlannerService) acquireLock(ctx context.Context, userID uuid.UUID) (func(), error) {
	key := "plan_lock:" + userID.String()

	acquired, err := s.redis.SetNX(ctx, key, "1", planLockTTL).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to acquire plan lock: %w", err)
	}
	if !acquired {
		return nil, &ConflictError{Message: "A plan run is already in progress for this account"}
	}

	return func() { s.redis.Del(context.Background(), key) }, nil
}

func (s *PlannerService) notify(ctx context.Context, userID uuid.UUID, run *models.PlanRun) {
	payload, err := json.Marshal(map[string]any{
		"type": "plan_generated",
		"run":  run,
	})
	if err != nil {
		return
	}

	if err := s.pubsub.Publish(ctx, "plan_updates:"+userID.String(), payload).Err(); err != nil {
		log.Printf("failed to publish plan update for user %s: %v", userID, err)
	}
}
