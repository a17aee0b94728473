package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"planora-backend/internal/middleware"
	"planora-backend/internal/services"
)

type PlanHandler struct {
	planner *services.PlannerService
}

func NewPlanHandler(planner *services.PlannerService) *PlanHandler {
	return &PlanHandler{planner: planner}
}

// Scan kicks off a calendar scan over the requested window. When full-day
// events need decisions the response carries them with generated=false.
func (h *PlanHandler) Scan(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	start, end, ok := parseWindow(w, r)
	if !ok {
		return
	}

	result, err := h.planner.Scan(r.Context(), userID, start, end)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// Generate runs a full generation, applying the caller's decisions for the
// full-day events a previous scan reported.
func (h *PlanHandler) Generate(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	start, end, ok := parseWindow(w, r)
	if !ok {
		return
	}

	var req struct {
		Decisions []bool `json:"decisions"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	result, err := h.planner.Generate(r.Context(), userID, start, end, req.Decisions)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (h *PlanHandler) ListRuns(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, _ = strconv.Atoi(raw)
	}

	runs, err := h.planner.ListRuns(r.Context(), userID, limit)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to list plan runs", r))
		return
	}

	writeJSON(w, http.StatusOK, runs)
}

func parseWindow(w http.ResponseWriter, r *http.Request) (time.Time, time.Time, bool) {
	startRaw := r.URL.Query().Get("start")
	endRaw := r.URL.Query().Get("end")

	start, errStart := time.Parse(time.RFC3339, startRaw)
	end, errEnd := time.Parse(time.RFC3339, endRaw)
	if errStart != nil || errEnd != nil {
		writeJSON(w, http.StatusBadRequest,
			errorResp("VALIDATION_ERROR", "start and end must be RFC3339 timestamps", r))
		return time.Time{}, time.Time{}, false
	}

	return start, end, true
}
