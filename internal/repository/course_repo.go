package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"planora-backend/internal/models"
)

type CourseRepo struct {
	pool *pgxpool.Pool
}

func NewCourseRepo(pool *pgxpool.Pool) *CourseRepo {
	return &CourseRepo{pool: pool}
}

const courseColumns = `id, name, difficulty_level, credits, recommended_study_time,
	subjects, subjects_practice_percentage, created_at`

func scanCourse(row interface{ Scan(...any) error }) (*models.Course, error) {
	course := &models.Course{}
	err := row.Scan(
		&course.ID, &course.Name, &course.DifficultyLevel, &course.Credits,
		&course.RecommendedStudyTime, &course.Subjects,
		&course.SubjectsPracticePercentage, &course.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return course, nil
}

func (r *CourseRepo) Create(ctx context.Context, course *models.Course) error {
	query := `
		INSERT INTO courses (id, name, difficulty_level, credits,
			recommended_study_time, subjects, subjects_practice_percentage)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at`

	course.ID = uuid.New()

	return r.pool.QueryRow(ctx, query,
		course.ID, course.Name, course.DifficultyLevel, course.Credits,
		course.RecommendedStudyTime, course.Subjects, course.SubjectsPracticePercentage,
	).Scan(&course.CreatedAt)
}

func (r *CourseRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Course, error) {
	return scanCourse(r.pool.QueryRow(ctx,
		`SELECT `+courseColumns+` FROM courses WHERE id = $1`, id))
}

func (r *CourseRepo) GetByName(ctx context.Context, name string) (*models.Course, error) {
	return scanCourse(r.pool.QueryRow(ctx,
		`SELECT `+courseColumns+` FROM courses WHERE name = $1`, name))
}

func (r *CourseRepo) List(ctx context.Context) ([]models.Course, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+courseColumns+` FROM courses ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	courses := make([]models.Course, 0)
	for rows.Next() {
		course, scanErr := scanCourse(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		courses = append(courses, *course)
	}

	return courses, rows.Err()
}

func (r *CourseRepo) Update(ctx context.Context, course *models.Course) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE courses SET
			name = $1, difficulty_level = $2, credits = $3,
			recommended_study_time = $4, subjects = $5, subjects_practice_percentage = $6
		WHERE id = $7`,
		course.Name, course.DifficultyLevel, course.Credits,
		course.RecommendedStudyTime, course.Subjects,
		course.SubjectsPracticePercentage, course.ID,
	)
	return err
}

func (r *CourseRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, "DELETE FROM courses WHERE id = $1", id)
	return err
}
