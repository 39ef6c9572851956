package http

import (
	"net/http"

	"github.com/MKhiriev/go-lite-wallet/internal/utils"
)

type versionResponse struct {
	Version string `json:"version"`
	Date    string `json:"build_date"`
	Commit  string `json:"build_commit"`
}

func (h *Handler) getVersion(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	build := h.services.AppInfoService.GetBuildInfo(ctx)

	utils.WriteJSON(w, versionResponse{
		Version: h.services.AppInfoService.GetAppVersion(ctx),
		Date:    build.BuildDate(),
		Commit:  build.BuildCommit(),
	}, http.StatusOK)
}
