package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"planora-backend/internal/models"
)

type PlanRunRepo struct {
	pool *pgxpool.Pool
}

func NewPlanRunRepo(pool *pgxpool.Pool) *PlanRunRepo {
	return &PlanRunRepo{pool: pool}
}

func (r *PlanRunRepo) Create(ctx context.Context, run *models.PlanRun) error {
	query := `
		INSERT INTO plan_runs (id, user_id, scan_start, scan_end, sessions_created, events_deleted)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at`

	run.ID = uuid.New()

	return r.pool.QueryRow(ctx, query,
		run.ID, run.UserID, run.ScanStart, run.ScanEnd,
		run.SessionsCreated, run.EventsDeleted,
	).Scan(&run.CreatedAt)
}

func (r *PlanRunRepo) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]models.PlanRun, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, scan_start, scan_end, sessions_created, events_deleted, created_at
		FROM plan_runs
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	runs := make([]models.PlanRun, 0)
	for rows.Next() {
		var run models.PlanRun
		if scanErr := rows.Scan(
			&run.ID, &run.UserID, &run.ScanStart, &run.ScanEnd,
			&run.SessionsCreated, &run.EventsDeleted, &run.CreatedAt,
		); scanErr != nil {
			return nil, scanErr
		}
		runs = append(runs, run)
	}

	return runs, rows.Err()
}
