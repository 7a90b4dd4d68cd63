package handler

import (
	"net/http"

	"github.com/rmaestri/shop-manager-api/internal/domain"
	"github.com/rmaestri/shop-manager-api/internal/usecases/storing"
	"github.com/rmaestri/shop-manager-api/pkg/middleware"
)

func GetSettings(service *storing.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tc := middleware.TenantFromRequest(r)

		settings, err := service.GetSettings(r.Context(), tc)
		if err != nil {
			writeStorageError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, settings)
	}
}

func SaveSettings(service *storing.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var settings domain.TenantSettings
		if !decodeBody(w, r, &settings) {
			return
		}

		tc := middleware.TenantFromRequest(r)
		if err := service.SaveSettings(r.Context(), tc, &settings); err != nil {
			writeStorageError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, settings)
	}
}
