package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"planora-backend/internal/middleware"
	"planora-backend/internal/models"
	"planora-backend/internal/repository"
)

type UserHandler struct {
	userRepo *repository.UserRepo
}

func NewUserHandler(userRepo *repository.UserRepo) *UserHandler {
	return &UserHandler{userRepo: userRepo}
}

func (h *UserHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	user, err := h.userRepo.GetByID(r.Context(), userID)
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "User not found", r))
		return
	}

	writeJSON(w, http.StatusOK, user)
}

func (h *UserHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req struct {
		FullName string `json:"full_name"`
		Email    string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	user, err := h.userRepo.GetByID(r.Context(), userID)
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "User not found", r))
		return
	}

	if req.FullName != "" {
		user.FullName = req.FullName
	}
	if req.Email != "" {
		user.Email = req.Email
	}

	if err := h.userRepo.UpdateProfile(r.Context(), user); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to update profile", r))
		return
	}

	writeJSON(w, http.StatusOK, user)
}

func (h *UserHandler) GetPreferences(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	user, err := h.userRepo.GetByID(r.Context(), userID)
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "User not found", r))
		return
	}

	writeJSON(w, http.StatusOK, user.Preferences)
}

func (h *UserHandler) UpdatePreferences(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var prefs models.Preferences
	if err := json.NewDecoder(r.Body).Decode(&prefs); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	if fields := validatePreferences(prefs); len(fields) > 0 {
		writeJSON(w, http.StatusBadRequest, errorRespWithFields("VALIDATION_ERROR", "Validation failed", fields, r))
		return
	}

	if err := h.userRepo.UpdatePreferences(r.Context(), userID, prefs); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to update preferences", r))
		return
	}

	writeJSON(w, http.StatusOK, prefs)
}

func (h *UserHandler) SetGoogleToken(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req models.GoogleTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.RefreshToken == "" {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "refresh_token is required", r))
		return
	}

	if err := h.userRepo.SetGoogleRefreshToken(r.Context(), userID, req.RefreshToken); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to store Google token", r))
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Google account connected"})
}

// validatePreferences rejects study windows the scheduler cannot work with
// before anything reaches the engine.
func validatePreferences(p models.Preferences) map[string]string {
	fields := make(map[string]string)

	if !validWindowTime(p.StudyStartTime) {
		fields["study_start_time"] = "Must be an HHMM integer between 0000 and 2359"
	}
	if !validWindowTime(p.StudyEndTime) {
		fields["study_end_time"] = "Must be an HHMM integer between 0000 and 2359"
	}
	if len(fields) == 0 && p.StudyStartTime >= p.StudyEndTime {
		fields["study_end_time"] = "Study window must end after it starts"
	}
	if p.SessionMinutes <= 0 {
		fields["session_minutes"] = "Must be positive"
	}
	if p.BreakMinutes < 0 {
		fields["break_minutes"] = "Must not be negative"
	}
	if p.MinSessionMinutes < 0 {
		fields["min_session_minutes"] = "Must not be negative"
	}
	if p.MinSessionMinutes > p.SessionMinutes {
		fields["min_session_minutes"] = "Must not exceed session_minutes"
	}
	if _, err := time.LoadLocation(p.TimeZone); err != nil {
		fields["time_zone"] = "Unknown time zone"
	}

	return fields
}

func validWindowTime(v int) bool {
	return v >= 0 && v/100 <= 23 && v%100 <= 59
}
