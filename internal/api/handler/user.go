package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"github.com/rmaestri/shop-manager-api/internal/domain"
	"github.com/rmaestri/shop-manager-api/internal/usecases/storing"
	"github.com/rmaestri/shop-manager-api/pkg/middleware"
)

func ListUsers(service *storing.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tc := middleware.TenantFromRequest(r)

		// Master com ?all=true enxerga usuários de todos os tenants
		var (
			users []*domain.User
			err   error
		)
		if r.URL.Query().Get("all") == "true" {
			users, err = service.GetGlobalUsers(r.Context(), tc)
		} else {
			users, err = service.GetUsers(r.Context(), tc)
		}
		if err != nil {
			writeStorageError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, users)
	}
}

func CreateUser(service *storing.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var user domain.User
		if !decodeBody(w, r, &user) {
			return
		}

		tc := middleware.TenantFromRequest(r)
		ok, err := service.AddUser(r.Context(), tc, &user)
		if err != nil {
			writeStorageError(w, err)
			return
		}
		if !ok {
			writeStorageError(w, storing.ErrMissingRequiredData)
			return
		}

		user.PasswordHash = ""
		writeJSON(w, http.StatusCreated, user)
	}
}

func UpdateUser(service *storing.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		var patch domain.UserPatch
		if !decodeBody(w, r, &patch) {
			return
		}

		tc := middleware.TenantFromRequest(r)
		ok, err := service.UpdateUser(r.Context(), tc, domain.ID(id), patch)
		writeUpdateOutcome(w, ok, err)
	}
}

func DeleteUser(service *storing.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		tc := middleware.TenantFromRequest(r)
		ok, err := service.DeleteUser(r.Context(), tc, domain.ID(id))
		writeUpdateOutcome(w, ok, err)
	}
}
