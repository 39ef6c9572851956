package http

import (
	"net/http"
	"strconv"

	"github.com/MKhiriev/go-lite-wallet/internal/logger"
	"github.com/MKhiriev/go-lite-wallet/internal/utils"
	"github.com/MKhiriev/go-lite-wallet/models"
)

type addressesResponse struct {
	WithBalance []models.AddressBalance `json:"with_balance"`
	All         []models.AddressDetail  `json:"all"`
}

type syncResponse struct {
	State      models.CoordinatorState `json:"state"`
	Status     models.SyncStatus       `json:"status"`
	Progress   float64                 `json:"progress"`
	LastError  string                  `json:"last_error,omitempty"`
	ServerURI  string                  `json:"server_uri"`
	LastHeight int64                   `json:"last_height"`
	LastTxID   string                  `json:"last_txid"`
}

func (h *Handler) getSnapshot(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, h.services.State.Snapshot(), http.StatusOK)
}

func (h *Handler) getInfo(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, h.services.State.Snapshot().Info, http.StatusOK)
}

func (h *Handler) getBalance(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, h.services.State.Snapshot().Balance, http.StatusOK)
}

func (h *Handler) getAddresses(w http.ResponseWriter, r *http.Request) {
	snap := h.services.State.Snapshot()
	utils.WriteJSON(w, addressesResponse{
		WithBalance: emptyIfNil(snap.AddressesWithBalance),
		All:         emptyIfNil(snap.Addresses),
	}, http.StatusOK)
}

func (h *Handler) getTransactions(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, emptyIfNil(h.services.State.Snapshot().Transactions), http.StatusOK)
}

func (h *Handler) getWalletSettings(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, h.services.State.Snapshot().Settings, http.StatusOK)
}

func (h *Handler) getSyncStatus(w http.ResponseWriter, r *http.Request) {
	snap := h.services.State.Snapshot()
	height, txid := h.services.SyncCoordinator.LastObserved()

	utils.WriteJSON(w, syncResponse{
		State:      snap.State,
		Status:     snap.SyncStatus,
		Progress:   snap.SyncStatus.Progress(),
		LastError:  snap.LastError,
		ServerURI:  h.services.SyncCoordinator.Endpoint(),
		LastHeight: height,
		LastTxID:   txid,
	}, http.StatusOK)
}

// refresh runs a refresh inline. ?full=true forces an engine sync even when
// no new block arrived.
func (h *Handler) refresh(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	full := false
	if raw := r.URL.Query().Get("full"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			log.Err(err).Str("func", "*Handler.refresh").Msg("invalid full parameter")
			utils.WriteError(w, ErrInvalidQueryParam.Error(), http.StatusBadRequest)
			return
		}
		full = parsed
	}

	if err := h.services.SyncCoordinator.Refresh(r.Context(), full); err != nil {
		log.Err(err).Str("func", "*Handler.refresh").Bool("full", full).Msg("refresh failed")
		utils.WriteError(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, h.services.State.Snapshot(), http.StatusOK)
}

func (h *Handler) rescan(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	if err := h.services.WalletLifecycle.Rescan(r.Context(), nil); err != nil {
		log.Err(err).Str("func", "*Handler.rescan").Msg("rescan failed")
		utils.WriteError(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, h.services.State.Snapshot().SyncStatus, http.StatusOK)
}

func emptyIfNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
