package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"planora-backend/internal/models"
	"planora-backend/internal/repository"
)

type CourseHandler struct {
	courseRepo *repository.CourseRepo
}

func NewCourseHandler(courseRepo *repository.CourseRepo) *CourseHandler {
	return &CourseHandler{courseRepo: courseRepo}
}

func (h *CourseHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateCourseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	if fields := validateCourse(req); len(fields) > 0 {
		writeJSON(w, http.StatusBadRequest, errorRespWithFields("VALIDATION_ERROR", "Validation failed", fields, r))
		return
	}

	if _, err := h.courseRepo.GetByName(r.Context(), req.Name); err == nil {
		writeJSON(w, http.StatusConflict, errorResp("CONFLICT", "A course with this name already exists", r))
		return
	}

	course := &models.Course{
		Name:                       req.Name,
		DifficultyLevel:            req.DifficultyLevel,
		Credits:                    req.Credits,
		RecommendedStudyTime:       req.RecommendedStudyTime,
		Subjects:                   req.Subjects,
		SubjectsPracticePercentage: req.SubjectsPracticePercentage,
	}

	if err := h.courseRepo.Create(r.Context(), course); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to create course", r))
		return
	}

	writeJSON(w, http.StatusCreated, course)
}

func (h *CourseHandler) List(w http.ResponseWriter, r *http.Request) {
	courses, err := h.courseRepo.List(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to list courses", r))
		return
	}

	writeJSON(w, http.StatusOK, courses)
}

func (h *CourseHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid course ID", r))
		return
	}

	course, err := h.courseRepo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "Course not found", r))
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to load course", r))
		return
	}

	writeJSON(w, http.StatusOK, course)
}

func (h *CourseHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid course ID", r))
		return
	}

	var req models.CreateCourseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	if fields := validateCourse(req); len(fields) > 0 {
		writeJSON(w, http.StatusBadRequest, errorRespWithFields("VALIDATION_ERROR", "Validation failed", fields, r))
		return
	}

	course, err := h.courseRepo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "Course not found", r))
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to load course", r))
		return
	}

	course.Name = req.Name
	course.DifficultyLevel = req.DifficultyLevel
	course.Credits = req.Credits
	course.RecommendedStudyTime = req.RecommendedStudyTime
	course.Subjects = req.Subjects
	course.SubjectsPracticePercentage = req.SubjectsPracticePercentage

	if err := h.courseRepo.Update(r.Context(), course); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to update course", r))
		return
	}

	writeJSON(w, http.StatusOK, course)
}

func (h *CourseHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid course ID", r))
		return
	}

	if err := h.courseRepo.Delete(r.Context(), id); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to delete course", r))
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Course deleted"})
}

func validateCourse(req models.CreateCourseRequest) map[string]string {
	fields := make(map[string]string)

	if req.Name == "" {
		fields["name"] = "Name is required"
	}
	if req.DifficultyLevel < 0 {
		fields["difficulty_level"] = "Must not be negative"
	}
	if req.Credits < 0 {
		fields["credits"] = "Must not be negative"
	}
	if req.RecommendedStudyTime < 0 {
		fields["recommended_study_time"] = "Must not be negative"
	}
	if req.SubjectsPracticePercentage < 0 || req.SubjectsPracticePercentage > 100 {
		fields["subjects_practice_percentage"] = "Must be between 0 and 100"
	}

	return fields
}
