package handler

import (
	"encoding/json"
	"net/http"

	"github.com/mwalczyk/sleep-sentinel/internal/api/validation"
	"github.com/mwalczyk/sleep-sentinel/internal/domain"
	"github.com/mwalczyk/sleep-sentinel/internal/service"
	"github.com/mwalczyk/sleep-sentinel/pkg/problem"
)

type SettingsHandler struct {
	nights service.NightService
}

func NewSettingsHandler(nights service.NightService) *SettingsHandler {
	return &SettingsHandler{nights: nights}
}

// Get handles GET /v1/settings
// @Summary Get settings
// @Description Fetch the current target schedule, tolerance and reminder settings.
// @Tags settings
// @Produce json
// @Success 200 {object} domain.Settings "Current settings"
// @Router /settings [get]
func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(h.nights.Settings())
}

// Update handles PUT /v1/settings
// @Summary Update settings
// @Description Partially update settings. Omitted fields keep their current value. Changing the target bedtime reschedules the reminder.
// @Tags settings
// @Accept json
// @Produce json
// @Param request body domain.UpdateSettingsRequest true "Fields to update"
// @Success 200 {object} domain.Settings "Updated settings"
// @Failure 400 {object} problem.Problem "Invalid request body"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /settings [put]
func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req domain.UpdateSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		problem.BadRequest("Invalid JSON body").Write(w)
		return
	}

	if fieldErrors := validation.Validate(req); fieldErrors != nil {
		problem.ValidationError("Request body contains invalid fields", fieldErrors).Write(w)
		return
	}

	settings, err := h.nights.UpdateSettings(req)
	if err != nil {
		problem.InternalError("Failed to update settings").Write(w)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(settings)
}
