package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"github.com/rmaestri/shop-manager-api/internal/domain"
	"github.com/rmaestri/shop-manager-api/internal/usecases/storing"
	"github.com/rmaestri/shop-manager-api/pkg/middleware"
)

func ListTransactions(service *storing.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tc := middleware.TenantFromRequest(r)

		transactions, err := service.GetTransactions(r.Context(), tc)
		if err != nil {
			writeStorageError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, transactions)
	}
}

func CreateTransaction(service *storing.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var txn domain.Transaction
		if !decodeBody(w, r, &txn) {
			return
		}

		tc := middleware.TenantFromRequest(r)
		ok, err := service.AddTransaction(r.Context(), tc, &txn)
		if err != nil {
			writeStorageError(w, err)
			return
		}
		if !ok {
			writeStorageError(w, storing.ErrMissingRequiredData)
			return
		}

		writeJSON(w, http.StatusCreated, txn)
	}
}

func UpdateTransaction(service *storing.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		var patch domain.TransactionPatch
		if !decodeBody(w, r, &patch) {
			return
		}

		tc := middleware.TenantFromRequest(r)
		ok, err := service.UpdateTransaction(r.Context(), tc, domain.ID(id), patch)
		writeUpdateOutcome(w, ok, err)
	}
}

func DeleteTransaction(service *storing.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		tc := middleware.TenantFromRequest(r)
		ok, err := service.DeleteTransaction(r.Context(), tc, domain.ID(id))
		writeUpdateOutcome(w, ok, err)
	}
}
