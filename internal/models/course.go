package models

import (
	"time"

	"github.com/google/uuid"
)

// Course is a catalog entry. Name is the unique key the scheduler matches
// exam events against. Subjects keeps the syllabus order the course staff
// published it in.
type Course struct {
	ID                         uuid.UUID `json:"id"`
	Name                       string    `json:"name"`
	DifficultyLevel            int       `json:"difficulty_level"`
	Credits                    int       `json:"credits"`
	RecommendedStudyTime       int       `json:"recommended_study_time"`
	Subjects                   []string  `json:"subjects"`
	SubjectsPracticePercentage int       `json:"subjects_practice_percentage"`
	CreatedAt                  time.Time `json:"created_at"`
}

type CreateCourseRequest struct {
	Name                       string   `json:"name"`
	DifficultyLevel            int      `json:"difficulty_level"`
	Credits                    int      `json:"credits"`
	RecommendedStudyTime       int      `json:"recommended_study_time"`
	Subjects                   []string `json:"subjects"`
	SubjectsPracticePercentage int      `json:"subjects_practice_percentage"`
}
