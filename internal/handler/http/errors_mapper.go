package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/MKhiriev/go-lite-wallet/internal/engine"
	"github.com/MKhiriev/go-lite-wallet/internal/service"
	"github.com/MKhiriev/go-lite-wallet/internal/store"
)

// errorStatuses is checked in order. A joined error can match several
// targets, so request errors come first, then coordination errors, then
// engine and storage failures.
var errorStatuses = []struct {
	target error
	status int
}{
	{ErrInvalidJSON, http.StatusBadRequest},
	{ErrInvalidQueryParam, http.StatusBadRequest},
	{ErrUnknownAddressType, http.StatusBadRequest},
	{service.ErrEmptySendJob, http.StatusBadRequest},
	{service.ErrInvalidAddress, http.StatusBadRequest},
	{service.ErrInvalidAmount, http.StatusBadRequest},
	{service.ErrInvalidBirthday, http.StatusBadRequest},
	{service.ErrInvalidLabel, http.StatusBadRequest},
	{service.ErrInvalidServer, http.StatusBadRequest},
	{service.ErrEntryNotFound, http.StatusNotFound},
	{service.ErrNoKeyExported, http.StatusNotFound},

	{service.ErrRefreshInFlight, http.StatusConflict},
	{service.ErrSendInProgress, http.StatusConflict},
	{service.ErrSyncTimeout, http.StatusGatewayTimeout},
	{service.ErrSyncAborted, http.StatusBadGateway},

	{engine.ErrOperationFailed, http.StatusUnprocessableEntity},
	{engine.ErrMalformedResult, http.StatusBadGateway},

	{store.ErrBuildingSQLQuery, http.StatusInternalServerError},
	{store.ErrExecutingQuery, http.StatusInternalServerError},
	{store.ErrExecutingStatement, http.StatusInternalServerError},
	{store.ErrScanningRows, http.StatusInternalServerError},

	{context.DeadlineExceeded, http.StatusGatewayTimeout},
}

func statusFromError(err error) int {
	for _, e := range errorStatuses {
		if errors.Is(err, e.target) {
			return e.status
		}
	}
	// the engine rejected the command itself
	if engine.IsEngineError(err) {
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}
