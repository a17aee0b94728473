package engine

import (
	"math"

	"planora-backend/internal/models"
)

// ExamProportions computes each exam's share of the total study time. An
// exam's weight is credits + difficulty level + recommended study hours of
// its course; the share is its weight over the weight sum. Maps are keyed by
// the exam's index in the caller's ascending exam list, so two exams for
// courses with identical metadata stay distinguishable.
func ExamProportions(exams []models.Exam) (map[int]float64, error) {
	if len(exams) == 0 {
		return nil, ErrEmptyExamSet
	}

	weights := make(map[int]int, len(exams))
	weightSum := 0
	for i, exam := range exams {
		w := exam.Course.Credits + exam.Course.DifficultyLevel + exam.Course.RecommendedStudyTime
		weights[i] = w
		weightSum += w
	}

	proportions := make(map[int]float64, len(exams))
	for i, w := range weights {
		proportions[i] = float64(w) / float64(weightSum)
	}
	return proportions, nil
}

// DistributeSessions turns proportions into per-exam session budgets using
// round-half-up. Budgets are rounded independently, so their sum may drift a
// little from totalSessions; the drift is never corrected here, the
// assignment stage absorbs it.
func DistributeSessions(proportions map[int]float64, totalSessions int) map[int]int {
	budgets := make(map[int]int, len(proportions))
	for i, p := range proportions {
		budgets[i] = int(math.Round(float64(totalSessions) * p))
	}
	return budgets
}
