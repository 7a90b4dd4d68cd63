package handler

import (
	"context"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"github.com/rmaestri/shop-manager-api/internal/domain"
	"github.com/rmaestri/shop-manager-api/internal/tenant"
	"github.com/rmaestri/shop-manager-api/internal/usecases/storing"
	"github.com/rmaestri/shop-manager-api/pkg/middleware"
)

// As entidades de catálogo compartilham o mesmo contrato de CRUD simples,
// então os handlers são gerados a partir das operações da orquestração.

func listCatalog[T any](list func(context.Context, tenant.Context) ([]T, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tc := middleware.TenantFromRequest(r)

		records, err := list(r.Context(), tc)
		if err != nil {
			writeStorageError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, records)
	}
}

func createCatalog[T any](add func(context.Context, tenant.Context, *T) (bool, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var record T
		if !decodeBody(w, r, &record) {
			return
		}

		tc := middleware.TenantFromRequest(r)
		ok, err := add(r.Context(), tc, &record)
		if err != nil {
			writeStorageError(w, err)
			return
		}
		if !ok {
			writeStorageError(w, storing.ErrMissingRequiredData)
			return
		}

		writeJSON(w, http.StatusCreated, record)
	}
}

func deleteCatalog(remove func(context.Context, tenant.Context, domain.ID) (bool, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		tc := middleware.TenantFromRequest(r)
		ok, err := remove(r.Context(), tc, domain.ID(id))
		writeUpdateOutcome(w, ok, err)
	}
}
