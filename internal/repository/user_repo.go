package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"planora-backend/internal/models"
)

type UserRepo struct {
	pool *pgxpool.Pool
}

func NewUserRepo(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

const userColumns = `id, email, password_hash, full_name,
	COALESCE(google_refresh_token, ''), COALESCE(google_access_token, ''),
	COALESCE(google_token_expiry, 'epoch'::timestamptz),
	COALESCE(study_calendar_id, ''),
	study_start_time, study_end_time, session_minutes, break_minutes,
	min_session_minutes, time_zone, study_on_holidays,
	created_at, last_login_at`

func scanUser(row interface{ Scan(...any) error }) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(
		&user.ID, &user.Email, &user.PasswordHash, &user.FullName,
		&user.GoogleRefreshToken, &user.GoogleAccessToken, &user.GoogleTokenExpiry,
		&user.StudyCalendarID,
		&user.Preferences.StudyStartTime, &user.Preferences.StudyEndTime,
		&user.Preferences.SessionMinutes, &user.Preferences.BreakMinutes,
		&user.Preferences.MinSessionMinutes, &user.Preferences.TimeZone,
		&user.Preferences.StudyOnHolidays,
		&user.CreatedAt, &user.LastLoginAt,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (r *UserRepo) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (id, email, password_hash, full_name,
			study_start_time, study_end_time, session_minutes, break_minutes,
			min_session_minutes, time_zone, study_on_holidays)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING created_at`

	user.ID = uuid.New()
	p := user.Preferences

	return r.pool.QueryRow(ctx, query,
		user.ID, user.Email, user.PasswordHash, user.FullName,
		p.StudyStartTime, p.StudyEndTime, p.SessionMinutes, p.BreakMinutes,
		p.MinSessionMinutes, p.TimeZone, p.StudyOnHolidays,
	).Scan(&user.CreatedAt)
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return scanUser(r.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`, email))
}

func (r *UserRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return scanUser(r.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

func (r *UserRepo) UpdateLastLogin(ctx context.Context, userID uuid.UUID) error {
	_, err := r.pool.Exec(ctx, "UPDATE users SET last_login_at = $1 WHERE id = $2", time.Now(), userID)
	return err
}

func (r *UserRepo) UpdateProfile(ctx context.Context, user *models.User) error {
	_, err := r.pool.Exec(ctx,
		"UPDATE users SET full_name = $1, email = $2 WHERE id = $3",
		user.FullName, user.Email, user.ID,
	)
	return err
}

func (r *UserRepo) UpdatePreferences(ctx context.Context, userID uuid.UUID, p models.Preferences) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE users SET
			study_start_time = $1, study_end_time = $2,
			session_minutes = $3, break_minutes = $4, min_session_minutes = $5,
			time_zone = $6, study_on_holidays = $7
		WHERE id = $8`,
		p.StudyStartTime, p.StudyEndTime, p.SessionMinutes, p.BreakMinutes,
		p.MinSessionMinutes, p.TimeZone, p.StudyOnHolidays, userID,
	)
	return err
}

func (r *UserRepo) SetGoogleRefreshToken(ctx context.Context, userID uuid.UUID, refreshToken string) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE users SET google_refresh_token = $1,
			google_access_token = NULL, google_token_expiry = NULL
		WHERE id = $2`, refreshToken, userID)
	return err
}

func (r *UserRepo) UpdateGoogleAccessToken(ctx context.Context, userID uuid.UUID, accessToken string, expiry time.Time) error {
	_, err := r.pool.Exec(ctx,
		"UPDATE users SET google_access_token = $1, google_token_expiry = $2 WHERE id = $3",
		accessToken, expiry, userID)
	return err
}

func (r *UserRepo) SetStudyCalendarID(ctx context.Context, userID uuid.UUID, calendarID string) error {
	_, err := r.pool.Exec(ctx,
		"UPDATE users SET study_calendar_id = $1 WHERE id = $2", calendarID, userID)
	return err
}

func (r *UserRepo) Delete(ctx context.Context, userID uuid.UUID) error {
	_, err := r.pool.Exec(ctx, "DELETE FROM users WHERE id = $1", userID)
	return err
}
