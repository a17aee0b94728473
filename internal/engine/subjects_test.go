package engine

import (
	"testing"

	"planora-backend/internal/models"
)

func assignedSessions(examIndex, n int) []models.StudySession {
	sessions := make([]models.StudySession, n)
	for i := range sessions {
		sessions[i] = models.StudySession{
			Start:     at(0, 8+i, 0),
			End:       at(0, 9+i, 0),
			ExamIndex: examIndex,
		}
	}
	return sessions
}

func examWithSubjects(subjects []string, practicePercentage int) models.Exam {
	course := testCourse
	course.Subjects = subjects
	course.SubjectsPracticePercentage = practicePercentage
	return examFor(course, at(5, 9, 0))
}

func descriptions(sessions []models.StudySession) []string {
	out := make([]string, len(sessions))
	for i, s := range sessions {
		out[i] = s.Description
	}
	return out
}

func TestAssignSubjects_OneSubjectPerSession(t *testing.T) {
	exams := []models.Exam{examWithSubjects([]string{"Sets", "Relations", "Graphs"}, 100)}
	sessions := assignedSessions(0, 3)

	AssignSubjects(sessions, exams)

	want := []string{"Sets", "Relations", "Graphs"}
	for i, w := range want {
		if sessions[i].Description != w {
			t.Errorf("Session %d: expected %q, got %q", i, w, sessions[i].Description)
		}
	}
}

func TestAssignSubjects_MoreSubjectsThanSessions(t *testing.T) {
	// 5 subjects over 3 sessions: ceil(5/3)=2 per session, last chunk
	// truncated to the single remaining subject.
	exams := []models.Exam{examWithSubjects([]string{"S1", "S2", "S3", "S4", "S5"}, 100)}
	sessions := assignedSessions(0, 3)

	AssignSubjects(sessions, exams)

	want := []string{"S1 , S2", "S3 , S4", "S5"}
	got := descriptions(sessions)
	for i, w := range want {
		if got[i] != w {
			t.Errorf("Session %d: expected %q, got %q", i, w, got[i])
		}
	}
}

func TestAssignSubjects_MoreSessionsThanSubjects(t *testing.T) {
	// 2 subjects over 4 sessions: each subject repeats across two sessions.
	exams := []models.Exam{examWithSubjects([]string{"A", "B"}, 100)}
	sessions := assignedSessions(0, 4)

	AssignSubjects(sessions, exams)

	want := []string{"A", "A", "B", "B"}
	got := descriptions(sessions)
	for i, w := range want {
		if got[i] != w {
			t.Errorf("Session %d: expected %q, got %q", i, w, got[i])
		}
	}
}

func TestAssignSubjects_ReviewTail(t *testing.T) {
	// 50% practice over 4 sessions: head of ceil(2)=2 subject sessions, two
	// review sessions at the end.
	exams := []models.Exam{examWithSubjects([]string{"A", "B"}, 50)}
	sessions := assignedSessions(0, 4)

	AssignSubjects(sessions, exams)

	want := []string{"A", "B", ReviewDescription, ReviewDescription}
	got := descriptions(sessions)
	for i, w := range want {
		if got[i] != w {
			t.Errorf("Session %d: expected %q, got %q", i, w, got[i])
		}
	}
}

func TestAssignSubjects_ZeroPracticePercentage(t *testing.T) {
	exams := []models.Exam{examWithSubjects([]string{"A", "B"}, 0)}
	sessions := assignedSessions(0, 3)

	AssignSubjects(sessions, exams)

	for i, s := range sessions {
		if s.Description != ReviewDescription {
			t.Errorf("Session %d: expected review description, got %q", i, s.Description)
		}
	}
}

func TestAssignSubjects_NoSubjects(t *testing.T) {
	exams := []models.Exam{examWithSubjects(nil, 100)}
	sessions := assignedSessions(0, 2)

	AssignSubjects(sessions, exams)

	for i, s := range sessions {
		if s.Description != ReviewDescription {
			t.Errorf("Session %d: expected review description, got %q", i, s.Description)
		}
	}
}

func TestAssignSubjects_MultipleExamGroups(t *testing.T) {
	exams := []models.Exam{
		examWithSubjects([]string{"A1", "A2"}, 100),
		examWithSubjects([]string{"B1"}, 100),
	}

	sessions := []models.StudySession{
		{Start: at(0, 8, 0), End: at(0, 9, 0), ExamIndex: 0},
		{Start: at(0, 10, 0), End: at(0, 11, 0), ExamIndex: 1},
		{Start: at(0, 12, 0), End: at(0, 13, 0), ExamIndex: 0},
	}

	AssignSubjects(sessions, exams)

	if sessions[0].Description != "A1" || sessions[2].Description != "A2" {
		t.Errorf("Exam 0 subjects misassigned: %v", descriptions(sessions))
	}
	if sessions[1].Description != "B1" {
		t.Errorf("Exam 1 subject misassigned: %q", sessions[1].Description)
	}
}
