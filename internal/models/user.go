package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID                 uuid.UUID   `json:"id"`
	Email              string      `json:"email"`
	PasswordHash       string      `json:"-"`
	FullName           string      `json:"full_name"`
	GoogleRefreshToken string      `json:"-"`
	GoogleAccessToken  string      `json:"-"`
	GoogleTokenExpiry  time.Time   `json:"-"`
	StudyCalendarID    string      `json:"study_calendar_id,omitempty"`
	Preferences        Preferences `json:"preferences"`
	CreatedAt          time.Time   `json:"created_at"`
	LastLoginAt        *time.Time  `json:"last_login_at"`
}

// Preferences are the per-learner planning knobs. StudyStartTime and
// StudyEndTime are hour*100+minute integers (800 means 08:00); minute parts
// above 59 are rejected before any slot computation.
type Preferences struct {
	StudyStartTime    int    `json:"study_start_time"`
	StudyEndTime      int    `json:"study_end_time"`
	SessionMinutes    int    `json:"session_minutes"`
	BreakMinutes      int    `json:"break_minutes"`
	MinSessionMinutes int    `json:"min_session_minutes"`
	TimeZone          string `json:"time_zone"`
	StudyOnHolidays   bool   `json:"study_on_holidays"`
}

type RegisterRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthTokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// GoogleTokenRequest carries the offline refresh token the frontend obtains
// from the Google consent flow.
type GoogleTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type APIError struct {
	Code      string            `json:"code"`
	Message   string            `json:"message"`
	Fields    map[string]string `json:"fields,omitempty"`
	RequestID string            `json:"request_id,omitempty"`
}

type ErrorResponse struct {
	Error APIError `json:"error"`
}
