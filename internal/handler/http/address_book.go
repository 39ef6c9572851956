package http

import (
	"encoding/json"
	"net/http"

	"github.com/MKhiriev/go-lite-wallet/internal/logger"
	"github.com/MKhiriev/go-lite-wallet/internal/utils"
	"github.com/MKhiriev/go-lite-wallet/models"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) listAddressBook(w http.ResponseWriter, r *http.Request) {
	entries, err := h.services.AddressBook.List(r.Context())
	if err != nil {
		logger.FromRequest(r).Err(err).Str("func", "*Handler.listAddressBook").Msg("error listing address book")
		utils.WriteError(w, "error listing address book", statusFromError(err))
		return
	}
	utils.WriteJSON(w, emptyIfNil(entries), http.StatusOK)
}

func (h *Handler) addAddressBookEntry(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var entry models.AddressBookEntry
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		log.Err(err).Str("func", "*Handler.addAddressBookEntry").Msg("Invalid JSON was passed")
		utils.WriteError(w, ErrInvalidJSON.Error(), http.StatusBadRequest)
		return
	}

	if err := h.services.AddressBook.Add(r.Context(), entry); err != nil {
		log.Err(err).Str("func", "*Handler.addAddressBookEntry").Msg("error saving address book entry")
		utils.WriteError(w, err.Error(), statusFromError(err))
		return
	}

	w.WriteHeader(http.StatusCreated)
}

func (h *Handler) removeAddressBookEntry(w http.ResponseWriter, r *http.Request) {
	label := chi.URLParam(r, "label")

	if err := h.services.AddressBook.Remove(r.Context(), label); err != nil {
		logger.FromRequest(r).Err(err).Str("func", "*Handler.removeAddressBookEntry").Str("label", label).Msg("error removing address book entry")
		utils.WriteError(w, err.Error(), statusFromError(err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
