package gcal

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"planora-backend/internal/models"
)

// Refresh a little before Google says the token dies.
const tokenExpirySkew = 5 * time.Minute

// TokenStore persists what the calendar layer learns about a user: refreshed
// access tokens and the id of the created study calendar.
type TokenStore interface {
	UpdateGoogleAccessToken(ctx context.Context, userID uuid.UUID, accessToken string, expiry time.Time) error
	SetStudyCalendarID(ctx context.Context, userID uuid.UUID, calendarID string) error
}

type Config struct {
	ClientID             string
	ClientSecret         string
	ExamsCalendarName    string
	ExamKeyword          string
	StudyCalendarSummary string
	TimeZone             string
}

// Service wraps the Google Calendar API for one deployment: scanning a
// learner's calendars, maintaining the study calendar, publishing sessions.
type Service struct {
	cfg    Config
	tokens TokenStore
}

func NewService(cfg Config, tokens TokenStore) *Service {
	return &Service{cfg: cfg, tokens: tokens}
}

func (s *Service) oauthConfig() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     s.cfg.ClientID,
		ClientSecret: s.cfg.ClientSecret,
		Endpoint:     google.Endpoint,
		Scopes:       []string{calendar.CalendarScope},
	}
}

// ensureAccessToken makes sure the user carries a usable access token,
// refreshing through the OAuth endpoint and persisting the result when the
// stored one is missing or within the expiry skew.
func (s *Service) ensureAccessToken(ctx context.Context, user *models.User) error {
	if user.GoogleRefreshToken == "" {
		return fmt.Errorf("user %s has no Google refresh token", user.ID)
	}

	if user.GoogleAccessToken != "" && time.Until(user.GoogleTokenExpiry) > tokenExpirySkew {
		return nil
	}

	source := s.oauthConfig().TokenSource(ctx, &oauth2.Token{RefreshToken: user.GoogleRefreshToken})
	token, err := source.Token()
	if err != nil {
		return fmt.Errorf("failed to refresh Google access token: %w", err)
	}

	user.GoogleAccessToken = token.AccessToken
	user.GoogleTokenExpiry = token.Expiry

	if err := s.tokens.UpdateGoogleAccessToken(ctx, user.ID, token.AccessToken, token.Expiry); err != nil {
		return fmt.Errorf("failed to persist refreshed access token: %w", err)
	}

	return nil
}

func (s *Service) calendarClient(ctx context.Context, user *models.User) (*calendar.Service, error) {
	if err := s.ensureAccessToken(ctx, user); err != nil {
		return nil, err
	}

	source := oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: user.GoogleAccessToken,
		Expiry:      user.GoogleTokenExpiry,
	})

	client, err := calendar.NewService(ctx, option.WithTokenSource(source))
	if err != nil {
		return nil, fmt.Errorf("failed to build calendar client: %w", err)
	}

	return client, nil
}
