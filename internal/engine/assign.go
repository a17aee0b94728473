package engine

import "planora-backend/internal/models"

// AssignCourses walks the session list from last to first, giving each
// session to the nearest exam whose date it precedes. A LIFO stack holds the
// exams currently "in scope": it starts with the latest exam, and whenever
// the scan passes another exam's date walking backward, that exam is pushed
// on top and claims the sessions that follow (i.e. the earlier ones). Each
// claim decrements the exam's session budget; a spent exam is popped so older
// sessions fall through to the next open demand window. Sessions older than
// every exam's window are dropped.
//
// The scan builds the surviving list fresh instead of removing elements from
// the input in place; sessions keep their chronological order in the result.
func AssignCourses(sessions []models.StudySession, budgets map[int]int, exams []models.Exam) []models.StudySession {
	if len(exams) == 0 {
		return nil
	}

	remaining := make(map[int]int, len(budgets))
	for i, n := range budgets {
		remaining[i] = n
	}

	cursor := len(exams) - 1
	stack := []int{cursor}
	cursor--

	survivors := make([]models.StudySession, 0, len(sessions))
	for i := len(sessions) - 1; i >= 0; i-- {
		if cursor > -1 && sessions[i].Start.Before(exams[cursor].DateTime) {
			stack = append(stack, cursor)
			cursor--
		}

		if len(stack) == 0 {
			continue // older than every demand window, dropped
		}

		top := stack[len(stack)-1]
		sessions[i].CourseName = exams[top].Course.Name
		sessions[i].ExamIndex = top

		remaining[top]--
		if remaining[top] == 0 {
			stack = stack[:len(stack)-1]
		}

		survivors = append(survivors, sessions[i])
	}

	// The backward scan appended newest-first; flip back to chronological.
	for l, r := 0, len(survivors)-1; l < r; l, r = l+1, r-1 {
		survivors[l], survivors[r] = survivors[r], survivors[l]
	}
	return survivors
}
