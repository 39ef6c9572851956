package http

import (
	"encoding/json"
	"net/http"

	"github.com/MKhiriev/go-lite-wallet/internal/logger"
	"github.com/MKhiriev/go-lite-wallet/internal/utils"
)

type serverRequest struct {
	ServerURI string `json:"server_uri"`
}

type serverResponse struct {
	// ServerURI is the endpoint used on next start.
	ServerURI string `json:"server_uri"`
	// Active is the endpoint the running session is connected to.
	Active string `json:"active"`
}

func (h *Handler) getServer(w http.ResponseWriter, r *http.Request) {
	active := h.services.SyncCoordinator.Endpoint()

	uri, err := h.services.Settings.ServerURI(r.Context(), active)
	if err != nil {
		logger.FromRequest(r).Err(err).Str("func", "*Handler.getServer").Msg("error reading server setting")
		utils.WriteError(w, "error reading server setting", statusFromError(err))
		return
	}

	utils.WriteJSON(w, serverResponse{ServerURI: uri, Active: active}, http.StatusOK)
}

// setServer stores the endpoint; it takes effect when the wallet is next
// opened.
func (h *Handler) setServer(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var req serverRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Str("func", "*Handler.setServer").Msg("Invalid JSON was passed")
		utils.WriteError(w, ErrInvalidJSON.Error(), http.StatusBadRequest)
		return
	}

	if err := h.services.Settings.SetServerURI(r.Context(), req.ServerURI); err != nil {
		log.Err(err).Str("func", "*Handler.setServer").Msg("error storing server setting")
		utils.WriteError(w, err.Error(), statusFromError(err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
