package http

import (
	"encoding/json"
	"net/http"

	"github.com/MKhiriev/go-lite-wallet/internal/logger"
	"github.com/MKhiriev/go-lite-wallet/internal/utils"
	"github.com/MKhiriev/go-lite-wallet/models"
)

type sendResponse struct {
	SendID string `json:"send_id"`
}

// send submits the job and answers 202 once the engine accepted it. The
// outcome is read from GET /api/send/progress.
func (h *Handler) send(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var job models.SendJob
	if err := json.NewDecoder(r.Body).Decode(&job); err != nil {
		log.Err(err).Str("func", "*Handler.send").Msg("Invalid JSON was passed")
		utils.WriteError(w, ErrInvalidJSON.Error(), http.StatusBadRequest)
		return
	}

	handle, err := h.services.SendTracker.Start(r.Context(), job, nil)
	if err != nil {
		log.Err(err).Str("func", "*Handler.send").Msg("send was not submitted")
		utils.WriteError(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, sendResponse{SendID: handle.ID()}, http.StatusAccepted)
}

func (h *Handler) getSendProgress(w http.ResponseWriter, r *http.Request) {
	progress := h.services.State.Snapshot().SendProgress
	if progress == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	utils.WriteJSON(w, progress, http.StatusOK)
}
