package engine

import (
	"testing"

	"planora-backend/internal/models"
)

func plainSessions(times ...[2]int) []models.StudySession {
	// times are {dayOffset, hour} pairs; every session is one hour long.
	sessions := make([]models.StudySession, 0, len(times))
	for _, tt := range times {
		sessions = append(sessions, models.StudySession{
			Start:     at(tt[0], tt[1], 0),
			End:       at(tt[0], tt[1]+1, 0),
			ExamIndex: -1,
		})
	}
	return sessions
}

func TestAssignCourses_SingleExamTakesEverything(t *testing.T) {
	exams := []models.Exam{examFor(testCourse, at(2, 9, 0))}
	sessions := plainSessions([2]int{0, 8}, [2]int{0, 10}, [2]int{1, 8}, [2]int{1, 10})

	assigned := AssignCourses(sessions, map[int]int{0: 4}, exams)

	if len(assigned) != 4 {
		t.Fatalf("Expected 4 surviving sessions, got %d", len(assigned))
	}
	for i, s := range assigned {
		if s.CourseName != testCourse.Name || s.ExamIndex != 0 {
			t.Errorf("Session %d: expected course %q, got %q (exam %d)",
				i, testCourse.Name, s.CourseName, s.ExamIndex)
		}
		if !s.Start.Before(exams[0].DateTime) {
			t.Errorf("Session %d starts after its exam", i)
		}
	}
}

func TestAssignCourses_BackwardGreedyFill(t *testing.T) {
	// Exam 0 on day 2, exam 1 on day 4. Sessions closest to each exam's date
	// are consumed by that exam first.
	examEarly := examFor(courseWeighted("Early", 2, 2, 2), at(2, 9, 0))
	examLate := examFor(courseWeighted("Late", 2, 2, 2), at(4, 9, 0))
	exams := []models.Exam{examEarly, examLate}

	sessions := plainSessions(
		[2]int{0, 8}, [2]int{0, 12},
		[2]int{1, 8}, [2]int{1, 20},
		[2]int{3, 8}, [2]int{3, 10},
	)

	assigned := AssignCourses(sessions, map[int]int{0: 4, 1: 2}, exams)

	if len(assigned) != 6 {
		t.Fatalf("Expected 6 surviving sessions, got %d", len(assigned))
	}

	// The two sessions on day 3 fall between the exams and belong to the
	// late exam; everything earlier belongs to the early exam.
	for i, s := range assigned[:4] {
		if s.ExamIndex != 0 {
			t.Errorf("Session %d: expected early exam, got exam %d", i, s.ExamIndex)
		}
	}
	for i, s := range assigned[4:] {
		if s.ExamIndex != 1 {
			t.Errorf("Session %d: expected late exam, got exam %d", 4+i, s.ExamIndex)
		}
	}
}

func TestAssignCourses_DropsSessionsBeforeEveryDemandWindow(t *testing.T) {
	examEarly := examFor(courseWeighted("Early", 2, 2, 2), at(2, 9, 0))
	examLate := examFor(courseWeighted("Late", 2, 2, 2), at(4, 9, 0))
	exams := []models.Exam{examEarly, examLate}

	sessions := plainSessions(
		[2]int{0, 8}, [2]int{0, 12}, [2]int{1, 8}, // only one of these survives
		[2]int{1, 20},
		[2]int{3, 8}, [2]int{3, 10},
	)

	assigned := AssignCourses(sessions, map[int]int{0: 1, 1: 2}, exams)

	if len(assigned) != 3 {
		t.Fatalf("Expected 3 surviving sessions, got %d: %v", len(assigned), assigned)
	}
	if assigned[0].ExamIndex != 0 || !assigned[0].Start.Equal(at(1, 20, 0)) {
		t.Errorf("Expected the session nearest the early exam to survive, got %v", assigned[0])
	}
	if assigned[1].ExamIndex != 1 || assigned[2].ExamIndex != 1 {
		t.Errorf("Expected the day-3 sessions on the late exam, got %v", assigned[1:])
	}
}

func TestAssignCourses_UnexhaustedBudgetKeepsClaiming(t *testing.T) {
	exams := []models.Exam{examFor(testCourse, at(2, 9, 0))}
	sessions := plainSessions([2]int{0, 8}, [2]int{0, 10}, [2]int{1, 8})

	// Budget larger than the session supply: nothing is dropped.
	assigned := AssignCourses(sessions, map[int]int{0: 10}, exams)

	if len(assigned) != 3 {
		t.Fatalf("Expected 3 sessions, got %d", len(assigned))
	}
}

func TestAssignCourses_BudgetBound(t *testing.T) {
	examEarly := examFor(courseWeighted("Early", 2, 2, 2), at(2, 9, 0))
	examLate := examFor(courseWeighted("Late", 2, 2, 2), at(4, 9, 0))
	exams := []models.Exam{examEarly, examLate}
	budgets := map[int]int{0: 2, 1: 3}

	sessions := plainSessions(
		[2]int{0, 8}, [2]int{0, 12}, [2]int{1, 8}, [2]int{1, 20},
		[2]int{3, 8}, [2]int{3, 10}, [2]int{3, 12},
	)

	assigned := AssignCourses(sessions, budgets, exams)

	counts := map[int]int{}
	for _, s := range assigned {
		counts[s.ExamIndex]++
	}
	// Exam 1 has only 3 sessions inside its window even though more exist
	// before exam 0's date; exam 0 stops at its budget of 2.
	if counts[1] != 3 {
		t.Errorf("Expected 3 sessions for the late exam, got %d", counts[1])
	}
	if counts[0] != 2 {
		t.Errorf("Expected 2 sessions for the early exam, got %d", counts[0])
	}
}

func TestAssignCourses_KeepsChronologicalOrder(t *testing.T) {
	exams := []models.Exam{examFor(testCourse, at(2, 9, 0))}
	sessions := plainSessions([2]int{0, 8}, [2]int{0, 10}, [2]int{1, 8}, [2]int{1, 10})

	assigned := AssignCourses(sessions, map[int]int{0: 4}, exams)

	for i := 1; i < len(assigned); i++ {
		if assigned[i].Start.Before(assigned[i-1].Start) {
			t.Errorf("Sessions out of order at %d", i)
		}
	}
}
