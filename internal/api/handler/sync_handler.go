package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mwalczyk/sleep-sentinel/internal/domain"
	"github.com/mwalczyk/sleep-sentinel/internal/service"
	"github.com/mwalczyk/sleep-sentinel/pkg/problem"
)

type SyncHandler struct {
	sync service.SyncService
}

func NewSyncHandler(sync service.SyncService) *SyncHandler {
	return &SyncHandler{sync: sync}
}

// Trigger handles POST /v1/sync
// @Summary Trigger a delta sync
// @Description Run one cursor-bounded delta fetch against the sample source and reconcile the result into the night collection.
// @Tags sync
// @Produce json
// @Success 200 {object} domain.SyncResponse "Applied delta"
// @Failure 409 {object} problem.Problem "A sync is already in progress"
// @Failure 502 {object} problem.Problem "Sample source unavailable"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /sync [post]
func (h *SyncHandler) Trigger(w http.ResponseWriter, r *http.Request) {
	response, err := h.sync.FetchDelta(r.Context())
	if err != nil {
		writeSyncError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// Reset handles POST /v1/reset
// @Summary Reset all data
// @Description Cancel any in-flight sync, clear the night collection and sync cursor, and wipe persisted state.
// @Tags sync
// @Produce json
// @Success 204 "All data cleared"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /reset [post]
func (h *SyncHandler) Reset(w http.ResponseWriter, r *http.Request) {
	if err := h.sync.ResetAll(); err != nil {
		problem.InternalError("Failed to reset data").Write(w)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// writeSyncError maps delta-fetch failures onto problem responses.
func writeSyncError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrSyncInProgress):
		problem.Conflict("A sync is already in progress").Write(w)
	case errors.Is(err, domain.ErrSyncCancelled):
		problem.Conflict("The sync was cancelled by a reset").Write(w)
	case errors.Is(err, domain.ErrSourceUnavailable):
		problem.BadGateway("The sample source is unavailable").Write(w)
	default:
		problem.InternalError("Failed to sync samples").Write(w)
	}
}
