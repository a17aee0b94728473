package engine

import (
	"math"
	"strings"

	"planora-backend/internal/models"
)

// ReviewDescription labels the tail sessions of each exam group, the ones
// left after the subject-practice head.
const ReviewDescription = "Review - practice past exams"

// AssignSubjects distributes each course's subjects over the sessions
// assigned to its exam. The chronologically first
// ceil(n * practicePercentage/100) sessions of a group cover the subjects;
// the rest become generic review. Within the head, the subjects-per-session
// ratio picks one of three regimes: a fractional ratio repeats one subject
// across several sessions, advancing whenever the accumulated ratio crosses
// an integer; a ratio of one maps subjects to sessions in order; a ratio
// above one packs a ceil-sized chunk of subjects into each session, the last
// chunk truncated to whatever remains.
func AssignSubjects(sessions []models.StudySession, exams []models.Exam) {
	groups := make([][]*models.StudySession, len(exams))
	for i := range sessions {
		idx := sessions[i].ExamIndex
		if idx < 0 || idx >= len(exams) {
			continue
		}
		groups[idx] = append(groups[idx], &sessions[i])
	}

	for examIndex, exam := range exams {
		group := groups[examIndex]
		if len(group) == 0 {
			continue
		}

		subjects := exam.Course.Subjects
		if len(subjects) == 0 {
			for _, session := range group {
				session.Description = ReviewDescription
			}
			continue
		}

		practiceShare := float64(exam.Course.SubjectsPracticePercentage) * 0.01
		headCount := int(math.Ceil(float64(len(group)) * practiceShare))

		subjectsPerSession := float64(len(subjects)) / float64(headCount)
		if subjectsPerSession >= 1 {
			subjectsPerSession = math.Ceil(subjectsPerSession)
		}

		subjectIndex := 0
		fractionCounter := 0.0
		nextInteger := 1

		for j, session := range group {
			if j >= headCount {
				session.Description = ReviewDescription
				continue
			}

			switch {
			case subjectsPerSession < 1:
				// More sessions than subjects: a subject spans several
				// sessions, moving on at each integer crossing.
				session.Description = subjects[subjectIndex]
				fractionCounter += subjectsPerSession
				if int(fractionCounter) == nextInteger {
					subjectIndex++
					nextInteger++
				}

			case subjectsPerSession == 1:
				session.Description = subjects[subjectIndex]
				subjectIndex++

			default:
				// More subjects than sessions: a contiguous chunk per
				// session, truncated at the end of the subject list.
				chunk := int(subjectsPerSession)
				var b strings.Builder
				k := 0
				for ; k < chunk && subjectIndex+k < len(subjects); k++ {
					if k != 0 {
						b.WriteString(" , ")
					}
					b.WriteString(subjects[subjectIndex+k])
				}
				session.Description = b.String()
				subjectIndex += k
			}
		}
	}
}
