package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/MKhiriev/go-lite-wallet/internal/logger"
	"github.com/MKhiriev/go-lite-wallet/internal/utils"
	"github.com/MKhiriev/go-lite-wallet/models"
	"github.com/go-chi/chi/v5"
)

type passwordRequest struct {
	Password string `json:"password"`
}

type newAddressRequest struct {
	Type models.AddressType `json:"type"`
}

type importRequest struct {
	Key      string `json:"key"`
	Birthday string `json:"birthday"`
}

type optionRequest struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type keysResponse struct {
	Address    string `json:"address"`
	PrivateKey string `json:"private_key"`
	ViewingKey string `json:"viewing_key"`
}

func (h *Handler) encrypt(w http.ResponseWriter, r *http.Request) {
	h.withPassword(w, r, "*Handler.encrypt", h.services.WalletService.Encrypt)
}

func (h *Handler) decrypt(w http.ResponseWriter, r *http.Request) {
	h.withPassword(w, r, "*Handler.decrypt", h.services.WalletService.Decrypt)
}

func (h *Handler) unlock(w http.ResponseWriter, r *http.Request) {
	h.withPassword(w, r, "*Handler.unlock", h.services.WalletService.Unlock)
}

func (h *Handler) lock(w http.ResponseWriter, r *http.Request) {
	if err := h.services.WalletService.Lock(r.Context()); err != nil {
		logger.FromRequest(r).Err(err).Str("func", "*Handler.lock").Msg("error locking wallet")
		utils.WriteError(w, err.Error(), statusFromError(err))
		return
	}
	utils.WriteJSON(w, h.services.State.Snapshot().Info, http.StatusOK)
}

func (h *Handler) withPassword(w http.ResponseWriter, r *http.Request, fn string, action func(ctx context.Context, password string) error) {
	log := logger.FromRequest(r)

	var req passwordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Str("func", fn).Msg("Invalid JSON was passed")
		utils.WriteError(w, ErrInvalidJSON.Error(), http.StatusBadRequest)
		return
	}

	if err := action(r.Context(), req.Password); err != nil {
		log.Err(err).Str("func", fn).Msg("wallet action failed")
		utils.WriteError(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, h.services.State.Snapshot().Info, http.StatusOK)
}

func (h *Handler) newAddress(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var req newAddressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Str("func", "*Handler.newAddress").Msg("Invalid JSON was passed")
		utils.WriteError(w, ErrInvalidJSON.Error(), http.StatusBadRequest)
		return
	}

	switch req.Type {
	case models.AddressTypeUnified, models.AddressTypeSapling, models.AddressTypeTransparent:
	default:
		utils.WriteError(w, ErrUnknownAddressType.Error(), http.StatusBadRequest)
		return
	}

	addr, err := h.services.WalletService.NewAddress(r.Context(), req.Type)
	if err != nil {
		log.Err(err).Str("func", "*Handler.newAddress").Msg("error creating address")
		utils.WriteError(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, models.AddressDetail{Address: addr, Type: req.Type}, http.StatusCreated)
}

func (h *Handler) getSeed(w http.ResponseWriter, r *http.Request) {
	seed, err := h.services.WalletService.Seed(r.Context())
	if err != nil {
		logger.FromRequest(r).Err(err).Str("func", "*Handler.getSeed").Msg("error reading seed")
		utils.WriteError(w, err.Error(), statusFromError(err))
		return
	}
	utils.WriteJSON(w, seed, http.StatusOK)
}

func (h *Handler) getKeys(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	address := chi.URLParam(r, "address")

	privateKey, err := h.services.WalletService.PrivateKey(r.Context(), address)
	if err != nil {
		log.Err(err).Str("func", "*Handler.getKeys").Msg("error exporting private key")
		utils.WriteError(w, err.Error(), statusFromError(err))
		return
	}
	viewingKey, err := h.services.WalletService.ViewingKey(r.Context(), address)
	if err != nil {
		log.Err(err).Str("func", "*Handler.getKeys").Msg("error exporting viewing key")
		utils.WriteError(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, keysResponse{Address: address, PrivateKey: privateKey, ViewingKey: viewingKey}, http.StatusOK)
}

func (h *Handler) importKey(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var req importRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Str("func", "*Handler.importKey").Msg("Invalid JSON was passed")
		utils.WriteError(w, ErrInvalidJSON.Error(), http.StatusBadRequest)
		return
	}

	res, err := h.services.WalletService.ImportKey(r.Context(), req.Key, req.Birthday)
	if err != nil {
		log.Err(err).Str("func", "*Handler.importKey").Msg("error importing key")
		utils.WriteError(w, err.Error(), statusFromError(err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(res))
}

func (h *Handler) getDefaultFee(w http.ResponseWriter, r *http.Request) {
	fee, err := h.services.WalletService.DefaultFee(r.Context())
	if err != nil {
		logger.FromRequest(r).Err(err).Str("func", "*Handler.getDefaultFee").Msg("error reading default fee")
		utils.WriteError(w, err.Error(), statusFromError(err))
		return
	}
	utils.WriteJSON(w, map[string]int64{"fee": int64(fee)}, http.StatusOK)
}

func (h *Handler) setWalletOption(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var req optionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
		log.Err(err).Str("func", "*Handler.setWalletOption").Msg("Invalid JSON was passed")
		utils.WriteError(w, ErrInvalidJSON.Error(), http.StatusBadRequest)
		return
	}

	if err := h.services.WalletService.SetWalletOption(r.Context(), req.Name, req.Value); err != nil {
		log.Err(err).Str("func", "*Handler.setWalletOption").Str("option", req.Name).Msg("error setting wallet option")
		utils.WriteError(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, h.services.State.Snapshot().Settings, http.StatusOK)
}
