package handler

import (
	"encoding/json"
	"net/http"

	"github.com/mwalczyk/sleep-sentinel/internal/api/validation"
	"github.com/mwalczyk/sleep-sentinel/internal/domain"
	"github.com/mwalczyk/sleep-sentinel/internal/service"
	"github.com/mwalczyk/sleep-sentinel/internal/source"
	"github.com/mwalczyk/sleep-sentinel/pkg/problem"
)

type MotionHandler struct {
	activities *source.ActivityLog
	motion     service.MotionService
}

func NewMotionHandler(activities *source.ActivityLog, motion service.MotionService) *MotionHandler {
	return &MotionHandler{activities: activities, motion: motion}
}

// Ingest handles POST /v1/activities
// @Summary Ingest motion activities
// @Description Append raw motion activities and run motion fusion, which may fill absent fields of the current night with a low-confidence inferred estimate.
// @Tags nights
// @Accept json
// @Produce json
// @Param request body domain.IngestActivitiesRequest true "Raw motion activities"
// @Success 202 "Activities recorded and fusion applied"
// @Failure 400 {object} problem.Problem "Invalid request body"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /activities [post]
func (h *MotionHandler) Ingest(w http.ResponseWriter, r *http.Request) {
	var req domain.IngestActivitiesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		problem.BadRequest("Invalid JSON body").Write(w)
		return
	}

	if fieldErrors := validation.Validate(req); fieldErrors != nil {
		problem.ValidationError("Request body contains invalid fields", fieldErrors).Write(w)
		return
	}

	activities := make([]source.Activity, 0, len(req.Activities))
	for _, in := range req.Activities {
		activities = append(activities, source.Activity{
			Timestamp:  in.Timestamp,
			Stationary: in.Stationary,
			Walking:    in.Walking,
			Running:    in.Running,
			Automotive: in.Automotive,
			Cycling:    in.Cycling,
		})
	}

	h.activities.Append(activities...)

	if err := h.motion.RunFusion(r.Context()); err != nil {
		problem.InternalError("Failed to apply motion fusion").Write(w)
		return
	}

	w.WriteHeader(http.StatusAccepted)
}
