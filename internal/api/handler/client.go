package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"github.com/rmaestri/shop-manager-api/internal/domain"
	"github.com/rmaestri/shop-manager-api/internal/usecases/storing"
	"github.com/rmaestri/shop-manager-api/pkg/middleware"
)

func ListClients(service *storing.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tc := middleware.TenantFromRequest(r)

		clients, err := service.GetClients(r.Context(), tc)
		if err != nil {
			writeStorageError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, clients)
	}
}

func CreateClient(service *storing.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var client domain.Client
		if !decodeBody(w, r, &client) {
			return
		}

		tc := middleware.TenantFromRequest(r)
		ok, err := service.AddClient(r.Context(), tc, &client)
		if err != nil {
			writeStorageError(w, err)
			return
		}
		if !ok {
			writeStorageError(w, storing.ErrMissingRequiredData)
			return
		}

		writeJSON(w, http.StatusCreated, client)
	}
}

func UpdateClient(service *storing.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		var patch domain.ClientPatch
		if !decodeBody(w, r, &patch) {
			return
		}

		tc := middleware.TenantFromRequest(r)
		ok, err := service.UpdateClient(r.Context(), tc, domain.ID(id), patch)
		writeUpdateOutcome(w, ok, err)
	}
}

func DeleteClient(service *storing.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		tc := middleware.TenantFromRequest(r)
		ok, err := service.DeleteClient(r.Context(), tc, domain.ID(id))
		writeUpdateOutcome(w, ok, err)
	}
}

// NextClientNumber reserva o próximo número sequencial de cliente do tenant
func NextClientNumber(service *storing.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tc := middleware.TenantFromRequest(r)

		n, err := service.NextClientNumber(r.Context(), tc)
		if err != nil {
			writeStorageError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, map[string]int64{"number": n})
	}
}
