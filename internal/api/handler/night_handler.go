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

type NightHandler struct {
	nights  service.NightService
	journal *source.Journal
	sync    service.SyncService
}

func NewNightHandler(nights service.NightService, journal *source.Journal, sync service.SyncService) *NightHandler {
	return &NightHandler{nights: nights, journal: journal, sync: sync}
}

// List handles GET /v1/nights
// @Summary List nights
// @Description Fetch the canonical night collection, sorted by date descending (newest first).
// @Tags nights
// @Produce json
// @Success 200 {array} domain.NightResponse "Night records"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /nights [get]
func (h *NightHandler) List(w http.ResponseWriter, r *http.Request) {
	nights := h.nights.Nights()

	responses := make([]domain.NightResponse, 0, len(nights))
	for _, n := range nights {
		responses = append(responses, n.ToResponse())
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(responses)
}

// Ingest handles POST /v1/samples
// @Summary Ingest raw samples
// @Description Append raw sleep samples to the journal and run one delta sync so they reach the night collection.
// @Tags nights
// @Accept json
// @Produce json
// @Param request body domain.IngestSamplesRequest true "Raw samples"
// @Success 202 {object} domain.SyncResponse "Applied delta"
// @Failure 400 {object} problem.Problem "Invalid request body"
// @Failure 409 {object} problem.Problem "A sync is already in progress"
// @Failure 502 {object} problem.Problem "Sample source unavailable"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /samples [post]
func (h *NightHandler) Ingest(w http.ResponseWriter, r *http.Request) {
	var req domain.IngestSamplesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		problem.BadRequest("Invalid JSON body").Write(w)
		return
	}

	if fieldErrors := validation.Validate(req); fieldErrors != nil {
		problem.ValidationError("Request body contains invalid fields", fieldErrors).Write(w)
		return
	}

	samples := make([]source.Sample, 0, len(req.Samples))
	for _, in := range req.Samples {
		category, ok := source.CategoryFromString(in.Type)
		if !ok {
			problem.BadRequest("Unknown sample type: " + in.Type).Write(w)
			return
		}
		samples = append(samples, source.Sample{
			Category: category,
			Start:    in.Start,
			End:      in.End,
			Source:   in.Source,
		})
	}

	h.journal.Append(samples...)

	response, err := h.sync.FetchDelta(r.Context())
	if err != nil {
		writeSyncError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(response)
}
